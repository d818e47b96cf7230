package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joy095/propertyops/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{utils.ErrInvalidInput, http.StatusBadRequest, CodeInvalidInput},
		{utils.ErrInvalidDateRange, http.StatusUnprocessableEntity, CodeInvalidDateRange},
		{utils.ErrCapacityExceeded, http.StatusUnprocessableEntity, CodeCapacityExceeded},
		{utils.ErrRoomUnavailable, http.StatusConflict, CodeRoomUnavailable},
		{utils.ErrInvalidTransition, http.StatusConflict, CodeInvalidTransition},
		{utils.ErrAmountExceedsBalance, http.StatusUnprocessableEntity, CodeAmountExceedsBalance},
		{utils.ErrNotFound, http.StatusNotFound, CodeNotFound},
		{utils.ErrConflict, http.StatusConflict, CodeConflict},
		{utils.ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code := Classify(fmt.Errorf("wrapped: %w", tt.err))
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		Success(c, http.StatusOK, gin.H{"amount": decimal.RequireFromString("10.50")})

		assert.JSONEq(t, `{"status":"success","data":{"amount":10.5}}`, w.Body.String())
	})

	t.Run("InternalErrorHidesDetail", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
		Error(c, errors.New("connection refused to 10.0.0.1"))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		var env Envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, StatusError, env.Status)
		assert.Equal(t, "internal server error", env.Error.Message)
	})

	t.Run("DomainError", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
		Error(c, fmt.Errorf("%w: room is booked", utils.ErrRoomUnavailable))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"status":"error","error":{"code":"ROOM_UNAVAILABLE","message":"room unavailable: room is booked"}}`, w.Body.String())
	})
}

func TestDescribeBindError(t *testing.T) {
	type body struct {
		Email  string `json:"email" binding:"required,email"`
		Adults int    `json:"adults" binding:"min=1"`
	}
	gin.SetMode(gin.TestMode)

	var b body
	err := binding(t, `{}`, &b)
	assert.Equal(t, "Email is required; Adults must be at least 1", DescribeBindError(err))

	err = binding(t, `{"email":"nope","adults":0}`, &b)
	assert.Equal(t, "Email must be a valid email; Adults must be at least 1", DescribeBindError(err))

	err = binding(t, `{"email":`, &b)
	assert.NotEmpty(t, DescribeBindError(err))
}

func binding(t *testing.T, raw string, out any) error {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	return c.ShouldBindJSON(out)
}
