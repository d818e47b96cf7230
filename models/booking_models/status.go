package booking_models

import (
	"fmt"
	"strings"

	"github.com/joy095/propertyops/utils"
)

// BookingStatus is a state in the booking lifecycle.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusCheckedIn  BookingStatus = "CHECKED_IN"
	BookingStatusCheckedOut BookingStatus = "CHECKED_OUT"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
	BookingStatusNoShow     BookingStatus = "NO_SHOW"
)

// AllBookingStatuses lists every state in lifecycle order.
var AllBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCheckedIn,
	BookingStatusCheckedOut,
	BookingStatusCancelled,
	BookingStatusNoShow,
}

// ActiveBookingStatuses hold the room; only these take part in overlap checks.
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCheckedIn,
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCheckedIn, BookingStatusCancelled, BookingStatusNoShow},
	BookingStatusCheckedIn: {BookingStatusCheckedOut},
}

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	for _, known := range AllBookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s BookingStatus) IsTerminal() bool {
	return s.Valid() && len(bookingTransitions[s]) == 0
}

// CanTransitionTo reports whether s -> target is an allowed edge.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, next := range bookingTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// CheckTransition returns ErrInvalidTransition unless s -> target is allowed.
func (s BookingStatus) CheckTransition(target BookingStatus) error {
	if !s.CanTransitionTo(target) {
		return fmt.Errorf("%w: booking cannot move from %s to %s", utils.ErrInvalidTransition, s, target)
	}
	return nil
}

// ParseBookingStatus normalises a status supplied by a caller. Unknown values
// are returned as-is so the transition check rejects them.
func ParseBookingStatus(s string) BookingStatus {
	return BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
}
