package calendar_models

import (
	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// EventType is the source of a calendar event.
type EventType string

const (
	EventTypeBooking      EventType = "BOOKING"
	EventTypeMaintenance  EventType = "MAINTENANCE"
	EventTypeHousekeeping EventType = "HOUSEKEEPING"
)

// Precedence orders events of the same day: bookings, then maintenance, then housekeeping.
func (t EventType) Precedence() int {
	switch t {
	case EventTypeBooking:
		return 0
	case EventTypeMaintenance:
		return 1
	case EventTypeHousekeeping:
		return 2
	}
	return 3
}

// CalendarEvent is a read-only projection; it is rebuilt on every query.
type CalendarEvent struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Date        civil.Date `json:"date"`
	Type        EventType  `json:"type"`
	Description string     `json:"description,omitempty"`
	RefID       uuid.UUID  `json:"refId"`
	RoomID      uuid.UUID  `json:"roomId"`
}

// Less orders events by date, then type precedence, then id.
func Less(a, b CalendarEvent) bool {
	if a.Date != b.Date {
		return a.Date.Before(b.Date)
	}
	if pa, pb := a.Type.Precedence(), b.Type.Precedence(); pa != pb {
		return pa < pb
	}
	return a.ID < b.ID
}
