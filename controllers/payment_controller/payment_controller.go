package payment_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joy095/propertyops/logger"
	"github.com/joy095/propertyops/models/payment_models"
	"github.com/joy095/propertyops/services/payment_service"
	"github.com/joy095/propertyops/utils"
	"github.com/joy095/propertyops/utils/response"
	"github.com/shopspring/decimal"
)

type PaymentController struct {
	Payments *payment_service.PaymentService
}

func NewPaymentController(payments *payment_service.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

// RecordPaymentRequest takes the amount as a JSON number or a decimal string.
type RecordPaymentRequest struct {
	BookingID     string          `json:"bookingId" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method" binding:"required"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transactionId" binding:"max=128"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RecordPayment handles POST /payments.
func (pc *PaymentController) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnLogger.Warnf("Invalid payment payload: %v", err)
		response.BindError(c, err)
		return
	}

	bookingID, err := utils.ParseBodyID("bookingId", req.BookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	method, err := payment_models.ParsePaymentMethod(req.Method)
	if err != nil {
		response.Error(c, err)
		return
	}
	var status payment_models.PaymentStatus
	if req.Status != "" {
		status = payment_models.ParsePaymentStatus(req.Status)
	}

	payment, err := pc.Payments.RecordPayment(c.Request.Context(), payment_service.RecordPaymentInput{
		BookingID:     bookingID,
		Amount:        req.Amount,
		Method:        method,
		Status:        status,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, payment)
}

// ListPayments handles GET /payments/booking/:id.
func (pc *PaymentController) ListPayments(c *gin.Context) {
	bookingID, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	payments, err := pc.Payments.ListPayments(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, payments)
}

// UpdatePaymentStatus handles PATCH /payments/:id/status.
func (pc *PaymentController) UpdatePaymentStatus(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	payment, err := pc.Payments.UpdatePaymentStatus(c.Request.Context(), id, payment_models.ParsePaymentStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, payment)
}
