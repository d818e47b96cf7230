package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustomRate(t *testing.T) {
	tests := []struct {
		in     string
		limit  int64
		period time.Duration
		ok     bool
	}{
		{"10-2m", 10, 2 * time.Minute, true},
		{"120-1m", 120, time.Minute, true},
		{"20-10s", 20, 10 * time.Second, true},
		{"5-1h", 5, time.Hour, true},
		{"5-1d", 0, 0, false},
		{"x-1m", 0, 0, false},
		{"0-1m", 0, 0, false},
		{"10", 0, 0, false},
		{"10-m", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			rate, err := ParseCustomRate(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.limit, rate.Limit)
			assert.Equal(t, tt.period, rate.Period)
		})
	}
}

func hit(r *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestNewRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store, err := NewLimiterStore(nil)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/limited", NewRateLimiter(store, "2-1m", "test"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusTooManyRequests, hit(r))
}

func TestCombinedRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store, err := NewLimiterStore(nil)
	require.NoError(t, err)

	calls := 0
	r := gin.New()
	r.GET("/limited", CombinedRateLimiter(store, "combined", "3-1m", "1-1h"), func(c *gin.Context) {
		calls++
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusTooManyRequests, hit(r))
	assert.Equal(t, 1, calls)
}

func TestInvalidRatePassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store, err := NewLimiterStore(nil)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/limited", NewRateLimiter(store, "bogus", "test"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(r))
	}
}
