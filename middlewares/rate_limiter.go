package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joy095/propertyops/logger"
	"github.com/joy095/propertyops/utils"
	"github.com/joy095/propertyops/utils/response"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// Example route using NewRateLimiter
// r.POST("/bookings", middleware.NewRateLimiter(store, "10-2m", "createBooking"), handler)

// Example route using CombinedRateLimiter
// r.POST("/payments", middleware.CombinedRateLimiter(store, "payments", "5-1m", "20-10m"), handler)

const rateLimitPrefix = "propertyops:rate"

// NewLimiterStore picks a Redis-backed store when rdb is set so limits are
// shared between replicas, and an in-process store otherwise.
func NewLimiterStore(rdb *redis.Client) (limiter.Store, error) {
	if rdb == nil {
		return memorystore.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitPrefix,
			CleanUpInterval: time.Minute,
		}), nil
	}
	store, err := redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix:   rateLimitPrefix,
		MaxRetry: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
	}
	return store, nil
}

// clientKey identifies the caller: the authenticated subject when there is
// one, the client IP otherwise.
func clientKey(c *gin.Context) string {
	if actor, err := utils.GetActorFromContext(c); err == nil {
		return "sub:" + actor
	}
	return "ip:" + c.ClientIP()
}

// ParseCustomRate allows formats like "10-2m", "30-20m", "5-1h", "20-10s", etc.
func ParseCustomRate(rateStr string) (limiter.Rate, error) {
	parts := strings.Split(strings.TrimSpace(rateStr), "-")
	if len(parts) != 2 {
		return limiter.Rate{}, fmt.Errorf("invalid rate format: %s", rateStr)
	}

	limit, err := strconv.Atoi(parts[0])
	if err != nil || limit <= 0 {
		return limiter.Rate{}, fmt.Errorf("invalid limit: %s", parts[0])
	}

	durationStr := parts[1]
	var unit time.Duration
	switch {
	case strings.HasSuffix(durationStr, "s"):
		unit = time.Second
	case strings.HasSuffix(durationStr, "m"):
		unit = time.Minute
	case strings.HasSuffix(durationStr, "h"):
		unit = time.Hour
	default:
		return limiter.Rate{}, fmt.Errorf("unsupported period: %s", durationStr)
	}

	n, err := strconv.Atoi(durationStr[:len(durationStr)-1])
	if err != nil || n <= 0 {
		return limiter.Rate{}, fmt.Errorf("invalid duration: %s", durationStr)
	}

	return limiter.Rate{
		Period: time.Duration(n) * unit,
		Limit:  int64(limit),
	}, nil
}

func limitReached(c *gin.Context) {
	logger.WarnLogger.Warnf("Rate limit reached for %s on %s", clientKey(c), c.FullPath())
	response.Fail(c, http.StatusTooManyRequests, response.CodeRateLimited, "too many requests")
}

func limiterError(c *gin.Context, err error) {
	logger.ErrorLogger.Errorf("Rate limiter error: %v", err)
	c.Next()
}

// NewRateLimiter creates middleware with custom periods like "10-2m" for a
// specific route. An invalid rate disables limiting for the route.
func NewRateLimiter(store limiter.Store, rateStr, routeID string) gin.HandlerFunc {
	rate, err := ParseCustomRate(rateStr)
	if err != nil {
		logger.ErrorLogger.Errorf("Error parsing rate for route %s: %v", routeID, err)
		return func(c *gin.Context) {
			c.Next()
		}
	}

	instance := limiter.New(store, rate)
	return ginmiddleware.NewMiddleware(instance,
		ginmiddleware.WithKeyGetter(func(c *gin.Context) string {
			return routeID + ":" + clientKey(c)
		}),
		ginmiddleware.WithLimitReachedHandler(limitReached),
		ginmiddleware.WithErrorHandler(limiterError),
	)
}

// CombinedRateLimiter applies several rates to one route; any of them can reject.
func CombinedRateLimiter(store limiter.Store, routeID string, rateStrings ...string) gin.HandlerFunc {
	instances := make([]*limiter.Limiter, 0, len(rateStrings))
	for _, rateStr := range rateStrings {
		rate, err := ParseCustomRate(rateStr)
		if err != nil {
			logger.ErrorLogger.Errorf("Error parsing rate for route %s: %v", routeID, err)
			continue
		}
		instances = append(instances, limiter.New(store, rate))
	}

	return func(c *gin.Context) {
		for i, instance := range instances {
			key := fmt.Sprintf("%s_%d:%s", routeID, i, clientKey(c))
			lctx, err := instance.Get(c.Request.Context(), key)
			if err != nil {
				logger.ErrorLogger.Errorf("Rate limiter error: %v", err)
				continue
			}
			if lctx.Reached {
				c.Header("Retry-After", strconv.FormatInt(max(lctx.Reset-time.Now().Unix(), 1), 10))
				limitReached(c)
				return
			}
		}
		c.Next()
	}
}
