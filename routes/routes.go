package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joy095/propertyops/logger"
	middleware "github.com/joy095/propertyops/middlewares"
	"github.com/joy095/propertyops/middlewares/auth"
	"github.com/joy095/propertyops/middlewares/cors"
	logger_middleware "github.com/joy095/propertyops/middlewares/logger"
	"github.com/joy095/propertyops/services/calendar_service"
	"github.com/joy095/propertyops/services/inventory_service"
	"github.com/joy095/propertyops/services/payment_service"
	"github.com/joy095/propertyops/services/reservation_service"
	"github.com/joy095/propertyops/services/task_service"
	"github.com/ulule/limiter/v3"
)

// Dependencies carries everything the HTTP layer needs. A nil LimiterStore
// disables rate limiting.
type Dependencies struct {
	Inventory    *inventory_service.InventoryService
	Reservations *reservation_service.ReservationService
	Payments     *payment_service.PaymentService
	Tasks        *task_service.TaskService
	Calendar     *calendar_service.CalendarService

	LimiterStore   limiter.Store
	RateLimit      string
	JWTSecret      []byte
	AllowedOrigins []string
}

// rate returns a per-route limiter, or a no-op when limiting is disabled.
func (d *Dependencies) rate(routeID string, rates ...string) gin.HandlerFunc {
	if d.LimiterStore == nil || len(rates) == 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if len(rates) == 1 {
		return middleware.NewRateLimiter(d.LimiterStore, rates[0], routeID)
	}
	return middleware.CombinedRateLimiter(d.LimiterStore, routeID, rates...)
}

func (d *Dependencies) authenticated() gin.HandlerFunc {
	return auth.AuthMiddleware(d.JWTSecret)
}

// NewRouter builds the gin engine with the global middleware chain and every route.
func NewRouter(deps *Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.CorsMiddleware(deps.AllowedOrigins))
	r.Use(logger_middleware.GinLogger())

	RegisterRoutes(r, deps)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "ok from propertyops",
		})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r
}

// RegisterRoutes mounts every domain route group on router.
func RegisterRoutes(router *gin.Engine, deps *Dependencies) {
	if deps.LimiterStore != nil && deps.RateLimit != "" {
		router.Use(deps.rate("global", deps.RateLimit))
	}

	RegisterRoomRoutes(router, deps)
	RegisterBookingRoutes(router, deps)
	RegisterPaymentRoutes(router, deps)
	RegisterCalendarRoutes(router, deps)
	RegisterTaskRoutes(router, deps)

	logger.InfoLogger.Info("Routes registered")
}
