package booking_models

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/joy095/propertyops/models/guest_models"
	"github.com/joy095/propertyops/models/room_models"
	"github.com/shopspring/decimal"
)

// Booking is a guest's reservation of one room for [CheckIn, CheckOut).
type Booking struct {
	ID              uuid.UUID       `json:"id"`
	GuestID         uuid.UUID       `json:"guestId"`
	RoomID          uuid.UUID       `json:"roomId"`
	CheckIn         civil.Date      `json:"checkIn"`
	CheckOut        civil.Date      `json:"checkOut"`
	Status          BookingStatus   `json:"status"`
	Adults          int             `json:"adults"`
	Children        int             `json:"children"`
	SpecialRequests string          `json:"specialRequests,omitempty"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewBooking creates a PENDING booking. Validation belongs to the reservation service.
func NewBooking(guestID, roomID uuid.UUID, checkIn, checkOut civil.Date, adults, children int, specialRequests string, total decimal.Decimal, now time.Time) (*Booking, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for booking: %w", err)
	}
	return &Booking{
		ID:              id,
		GuestID:         guestID,
		RoomID:          roomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Status:          BookingStatusPending,
		Adults:          adults,
		Children:        children,
		SpecialRequests: specialRequests,
		TotalAmount:     total,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Nights is the number of whole nights booked.
func (b *Booking) Nights() int {
	return b.CheckOut.DaysSince(b.CheckIn)
}

// Range returns the booked interval.
func (b *Booking) Range() DateRange {
	return DateRange{Start: b.CheckIn, End: b.CheckOut}
}

// BookingView is a booking with its guest and room resolved for callers.
type BookingView struct {
	Booking
	NightCount int                 `json:"nights"`
	Guest      *guest_models.Guest `json:"guest,omitempty"`
	Room       *room_models.Room   `json:"room,omitempty"`
}

// BookingPatch holds the optional fields of an update. Nil means unchanged.
type BookingPatch struct {
	RoomID          *uuid.UUID
	CheckIn         *civil.Date
	CheckOut        *civil.Date
	Adults          *int
	Children        *int
	SpecialRequests *string
}

// Apply returns a copy of b with the patch applied.
func (p BookingPatch) Apply(b Booking) Booking {
	if p.RoomID != nil {
		b.RoomID = *p.RoomID
	}
	if p.CheckIn != nil {
		b.CheckIn = *p.CheckIn
	}
	if p.CheckOut != nil {
		b.CheckOut = *p.CheckOut
	}
	if p.Adults != nil {
		b.Adults = *p.Adults
	}
	if p.Children != nil {
		b.Children = *p.Children
	}
	if p.SpecialRequests != nil {
		b.SpecialRequests = *p.SpecialRequests
	}
	return b
}

// BookingFilter narrows booking listings. Zero fields match everything.
type BookingFilter struct {
	RoomID      *uuid.UUID
	GuestID     *uuid.UUID
	Statuses    []BookingStatus
	CheckInFrom *civil.Date // inclusive
	CheckInTo   *civil.Date // inclusive
	Overlapping *DateRange
	ExcludeID   *uuid.UUID
}

// Matches reports whether b satisfies every set field of f.
func (f BookingFilter) Matches(b *Booking) bool {
	if f.RoomID != nil && b.RoomID != *f.RoomID {
		return false
	}
	if f.GuestID != nil && b.GuestID != *f.GuestID {
		return false
	}
	if f.ExcludeID != nil && b.ID == *f.ExcludeID {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if b.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.CheckInFrom != nil && b.CheckIn.Before(*f.CheckInFrom) {
		return false
	}
	if f.CheckInTo != nil && b.CheckIn.After(*f.CheckInTo) {
		return false
	}
	if f.Overlapping != nil && !f.Overlapping.Overlaps(b.Range()) {
		return false
	}
	return true
}

// TotalAmount prices a stay: basePrice per night.
func TotalAmount(basePrice decimal.Decimal, checkIn, checkOut civil.Date) decimal.Decimal {
	return basePrice.Mul(decimal.NewFromInt(int64(checkOut.DaysSince(checkIn))))
}
