// Package store persists rooms, guests, bookings, payments and tasks.
//
// Stores enforce nothing beyond identity and uniqueness (plus the overlap
// exclusion constraint in PostgreSQL); lifecycle rules and locking live in the
// services. Every read returns copies, and list results are never nil.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/joy095/propertyops/models/booking_models"
	"github.com/joy095/propertyops/models/guest_models"
	"github.com/joy095/propertyops/models/housekeeping_models"
	"github.com/joy095/propertyops/models/maintenance_models"
	"github.com/joy095/propertyops/models/payment_models"
	"github.com/joy095/propertyops/models/room_models"
)

type RoomStore interface {
	CreateRoomType(ctx context.Context, rt *room_models.RoomType) error
	GetRoomType(ctx context.Context, id uuid.UUID) (*room_models.RoomType, error)
	ListRoomTypes(ctx context.Context) ([]room_models.RoomType, error)
	CreateRoom(ctx context.Context, room *room_models.Room) error
	GetRoom(ctx context.Context, id uuid.UUID) (*room_models.Room, error)
	ListRooms(ctx context.Context, filter room_models.RoomFilter) ([]room_models.Room, error)
}

type GuestStore interface {
	// UpsertGuest inserts g, or updates the contact details of the guest with
	// the same email and returns that record.
	UpsertGuest(ctx context.Context, g *guest_models.Guest) (*guest_models.Guest, error)
	GetGuest(ctx context.Context, id uuid.UUID) (*guest_models.Guest, error)
}

type BookingStore interface {
	InsertBooking(ctx context.Context, b *booking_models.Booking) error
	UpdateBooking(ctx context.Context, b *booking_models.Booking) error
	GetBooking(ctx context.Context, id uuid.UUID) (*booking_models.Booking, error)
	// ListBookings orders by check-in, then creation time.
	ListBookings(ctx context.Context, filter booking_models.BookingFilter) ([]booking_models.Booking, error)
}

type PaymentStore interface {
	InsertPayment(ctx context.Context, p *payment_models.Payment) error
	UpdatePayment(ctx context.Context, p *payment_models.Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*payment_models.Payment, error)
	// ListPayments orders by creation time, then id.
	ListPayments(ctx context.Context, bookingID uuid.UUID) ([]payment_models.Payment, error)
}

type HousekeepingStore interface {
	InsertHousekeeping(ctx context.Context, t *housekeeping_models.HousekeepingTask) error
	UpdateHousekeeping(ctx context.Context, t *housekeeping_models.HousekeepingTask) error
	GetHousekeeping(ctx context.Context, id uuid.UUID) (*housekeeping_models.HousekeepingTask, error)
	ListHousekeeping(ctx context.Context, filter housekeeping_models.HousekeepingFilter) ([]housekeeping_models.HousekeepingTask, error)
}

type MaintenanceStore interface {
	InsertMaintenance(ctx context.Context, t *maintenance_models.MaintenanceTask) error
	UpdateMaintenance(ctx context.Context, t *maintenance_models.MaintenanceTask) error
	GetMaintenance(ctx context.Context, id uuid.UUID) (*maintenance_models.MaintenanceTask, error)
	ListMaintenance(ctx context.Context, filter maintenance_models.MaintenanceFilter) ([]maintenance_models.MaintenanceTask, error)
}

// Store is the full persistence surface.
type Store interface {
	RoomStore
	GuestStore
	BookingStore
	PaymentStore
	HousekeepingStore
	MaintenanceStore
	Close()
}
