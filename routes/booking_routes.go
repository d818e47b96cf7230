package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/joy095/propertyops/controllers/booking_controller"
	"github.com/joy095/propertyops/controllers/payment_controller"
)

// RegisterBookingRoutes registers all booking-related routes
func RegisterBookingRoutes(router *gin.Engine, deps *Dependencies) {
	bookingController := booking_controller.NewBookingController(deps.Reservations, deps.Payments)

	router.GET("/bookings", bookingController.ListBookings)
	router.GET("/bookings/:id", bookingController.GetBooking)
	router.GET("/bookings/:id/balance", bookingController.GetBalance)

	// Protected routes
	protected := router.Group("/bookings")
	protected.Use(deps.authenticated())
	{
		protected.POST("", deps.rate("create-booking", "20-1m", "300-1h"), bookingController.CreateBooking)
		protected.PATCH("/:id", deps.rate("update-booking", "30-1m"), bookingController.UpdateBooking)
		protected.PATCH("/:id/status", deps.rate("booking-status", "60-1m"), bookingController.UpdateBookingStatus)
	}
}

func RegisterPaymentRoutes(router *gin.Engine, deps *Dependencies) {
	paymentController := payment_controller.NewPaymentController(deps.Payments)

	router.GET("/payments/booking/:id", paymentController.ListPayments)

	protected := router.Group("/payments")
	protected.Use(deps.authenticated())
	{
		protected.POST("", deps.rate("record-payment", "20-1m", "300-1h"), paymentController.RecordPayment)
		protected.PATCH("/:id/status", deps.rate("payment-status", "30-1m"), paymentController.UpdatePaymentStatus)
	}
}
