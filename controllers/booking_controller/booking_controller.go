package booking_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joy095/propertyops/logger"
	"github.com/joy095/propertyops/models/booking_models"
	"github.com/joy095/propertyops/models/guest_models"
	"github.com/joy095/propertyops/services/payment_service"
	"github.com/joy095/propertyops/services/reservation_service"
	"github.com/joy095/propertyops/utils"
	"github.com/joy095/propertyops/utils/response"
)

// BookingController exposes the reservation engine over HTTP.
type BookingController struct {
	Reservations *reservation_service.ReservationService
	Payments     *payment_service.PaymentService
}

func NewBookingController(reservations *reservation_service.ReservationService, payments *payment_service.PaymentService) *BookingController {
	return &BookingController{Reservations: reservations, Payments: payments}
}

type GuestRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
}

type RoomRef struct {
	ID string `json:"id"`
}

// CreateBookingRequest accepts the room either as roomId or as room.id.
type CreateBookingRequest struct {
	Guest           GuestRequest `json:"guest"`
	RoomID          string       `json:"roomId"`
	Room            *RoomRef     `json:"room"`
	CheckIn         string       `json:"checkIn" binding:"required"`
	CheckOut        string       `json:"checkOut" binding:"required"`
	Adults          int          `json:"adults" binding:"max=100"`
	Children        int          `json:"children" binding:"min=0,max=100"`
	SpecialRequests string       `json:"specialRequests"`
}

type UpdateBookingRequest struct {
	RoomID          *string `json:"roomId"`
	CheckIn         *string `json:"checkIn"`
	CheckOut        *string `json:"checkOut"`
	Adults          *int    `json:"adults" binding:"omitempty,max=100"`
	Children        *int    `json:"children" binding:"omitempty,min=0,max=100"`
	SpecialRequests *string `json:"specialRequests"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (req *CreateBookingRequest) input(clock utils.Clock) (reservation_service.CreateBookingInput, error) {
	var in reservation_service.CreateBookingInput

	rawRoom := req.RoomID
	if rawRoom == "" && req.Room != nil {
		rawRoom = req.Room.ID
	}
	roomID, err := utils.ParseBodyID("roomId", rawRoom)
	if err != nil {
		return in, err
	}
	checkIn, err := clock.ParseDate(req.CheckIn)
	if err != nil {
		return in, err
	}
	checkOut, err := clock.ParseDate(req.CheckOut)
	if err != nil {
		return in, err
	}

	return reservation_service.CreateBookingInput{
		Guest: guest_models.Guest{
			FirstName: req.Guest.FirstName,
			LastName:  req.Guest.LastName,
			Email:     req.Guest.Email,
			Phone:     req.Guest.Phone,
		},
		RoomID:          roomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Adults:          req.Adults,
		Children:        req.Children,
		SpecialRequests: req.SpecialRequests,
	}, nil
}

func (req *UpdateBookingRequest) patch(clock utils.Clock) (booking_models.BookingPatch, error) {
	patch := booking_models.BookingPatch{
		Adults:          req.Adults,
		Children:        req.Children,
		SpecialRequests: req.SpecialRequests,
	}
	if req.RoomID != nil {
		id, err := utils.ParseBodyID("roomId", *req.RoomID)
		if err != nil {
			return patch, err
		}
		patch.RoomID = &id
	}
	if req.CheckIn != nil {
		d, err := clock.ParseDate(*req.CheckIn)
		if err != nil {
			return patch, err
		}
		patch.CheckIn = &d
	}
	if req.CheckOut != nil {
		d, err := clock.ParseDate(*req.CheckOut)
		if err != nil {
			return patch, err
		}
		patch.CheckOut = &d
	}
	return patch, nil
}

// CreateBooking handles POST /bookings.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	logger.InfoLogger.Info("CreateBooking called")

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnLogger.Warnf("Invalid create booking payload: %v", err)
		response.BindError(c, err)
		return
	}
	in, err := req.input(bc.Reservations.Clock())
	if err != nil {
		response.Error(c, err)
		return
	}

	booking, err := bc.Reservations.CreateBooking(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, booking)
}

// ListBookings handles GET /bookings with optional roomId, guestId, status,
// from and to (check-in date bounds, inclusive).
func (bc *BookingController) ListBookings(c *gin.Context) {
	var filter booking_models.BookingFilter

	if raw := c.Query("roomId"); raw != "" {
		id, err := utils.ParseBodyID("roomId", raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.RoomID = &id
	}
	if raw := c.Query("guestId"); raw != "" {
		id, err := utils.ParseBodyID("guestId", raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.GuestID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := booking_models.ParseBookingStatus(raw)
		if !status.Valid() {
			response.Fail(c, http.StatusBadRequest, response.CodeInvalidInput, "unknown booking status "+raw)
			return
		}
		filter.Statuses = []booking_models.BookingStatus{status}
	}
	clock := bc.Reservations.Clock()
	from, err := clock.ParseOptionalDate(c.Query("from"))
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := clock.ParseOptionalDate(c.Query("to"))
	if err != nil {
		response.Error(c, err)
		return
	}
	filter.CheckInFrom, filter.CheckInTo = from, to

	bookings, err := bc.Reservations.ListBookings(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return uuid.Nil, false
	}
	return id, true
}

// GetBooking handles GET /bookings/:id.
func (bc *BookingController) GetBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	booking, err := bc.Reservations.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

// UpdateBooking handles PATCH /bookings/:id.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	patch, err := req.patch(bc.Reservations.Clock())
	if err != nil {
		response.Error(c, err)
		return
	}

	booking, err := bc.Reservations.UpdateBooking(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

// UpdateBookingStatus handles PATCH /bookings/:id/status.
func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if actor, err := utils.GetActorFromContext(c); err == nil {
		logger.InfoLogger.Infof("Booking %s status change to %s requested by %s", id, req.Status, actor)
	}

	booking, err := bc.Reservations.TransitionStatus(c.Request.Context(), id, booking_models.ParseBookingStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

// GetBalance handles GET /bookings/:id/balance.
func (bc *BookingController) GetBalance(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	balance, err := bc.Payments.Balance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, balance)
}
