// Package response writes the JSON envelope shared by every endpoint and maps
// core errors to HTTP statuses.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joy095/propertyops/logger"
	"github.com/joy095/propertyops/utils"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Envelope struct {
	Status string     `json:"status"`
	Data   any        `json:"data,omitempty"`
	Error  *ErrorBody `json:"error,omitempty"`
}

// Error codes as they appear in the envelope.
const (
	CodeInvalidInput         = "INVALID_INPUT"
	CodeInvalidDateRange     = "INVALID_DATE_RANGE"
	CodeCapacityExceeded     = "CAPACITY_EXCEEDED"
	CodeRoomUnavailable      = "ROOM_UNAVAILABLE"
	CodeInvalidTransition    = "INVALID_TRANSITION"
	CodeAmountExceedsBalance = "AMOUNT_EXCEEDS_BALANCE"
	CodeNotFound             = "NOT_FOUND"
	CodeConflict             = "CONFLICT"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeRateLimited          = "RATE_LIMITED"
	CodeInternal             = "INTERNAL_ERROR"
)

var errorTable = []struct {
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
	{utils.ErrUserIDNotFound, http.StatusUnauthorized, CodeUnauthorized},
}

// Classify returns the HTTP status and code for err.
func Classify(err error) (int, string) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return e.status, e.code
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Status: StatusSuccess, Data: data})
}

func Fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Envelope{Status: StatusError, Error: &ErrorBody{Code: code, Message: message}})
}

// Error writes err in the envelope. Unclassified errors are logged and their
// detail is hidden from the caller.
func Error(c *gin.Context, err error) {
	status, code := Classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.ErrorLogger.Errorf("Unhandled error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		message = "internal server error"
	}
	Fail(c, status, code, message)
}

// BindError reports a request body that failed to bind or validate.
func BindError(c *gin.Context, err error) {
	Fail(c, http.StatusBadRequest, CodeInvalidInput, DescribeBindError(err))
}

// DescribeBindError turns binding errors into one readable line.
func DescribeBindError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, describeField(fe))
		}
		return strings.Join(parts, "; ")
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "malformed JSON body"
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s has the wrong type", typeErr.Field)
	}
	return err.Error()
}

func describeField(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "uuid":
		return field + " must be a UUID"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
