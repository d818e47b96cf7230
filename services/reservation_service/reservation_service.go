// Package reservation_service owns the booking lifecycle: validation,
// availability, pricing and status transitions.
package reservation_service

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/joy095/propertyops/logger"
	"github.com/joy095/propertyops/models/booking_models"
	"github.com/joy095/propertyops/models/guest_models"
	"github.com/joy095/propertyops/models/payment_models"
	"github.com/joy095/propertyops/models/room_models"
	"github.com/joy095/propertyops/services/inventory_service"
	"github.com/joy095/propertyops/services/lock_service"
	"github.com/joy095/propertyops/store"
	"github.com/joy095/propertyops/utils"
)

type ReservationService struct {
	store       store.Store
	inventory   *inventory_service.InventoryService
	locker      lock_service.Locker
	clock       utils.Clock
	lockTimeout time.Duration
}

func NewReservationService(s store.Store, inventory *inventory_service.InventoryService, locker lock_service.Locker, clock utils.Clock, lockTimeout time.Duration) *ReservationService {
	return &ReservationService{
		store:       s,
		inventory:   inventory,
		locker:      locker,
		clock:       clock,
		lockTimeout: lockTimeout,
	}
}

// Clock returns the property clock used for calendar dates.
func (s *ReservationService) Clock() utils.Clock { return s.clock }

// CreateBookingInput carries a new reservation. The guest is matched by email.
type CreateBookingInput struct {
	Guest           guest_models.Guest
	RoomID          uuid.UUID
	CheckIn         civil.Date
	CheckOut        civil.Date
	Adults          int
	Children        int
	SpecialRequests string
}

// lock takes keys, bounding only the wait by lockTimeout.
func (s *ReservationService) lock(ctx context.Context, keys ...string) (func(), error) {
	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}
	return lock_service.LockAll(ctx, s.locker, keys...)
}

func checkDates(checkIn, checkOut civil.Date) error {
	if !checkIn.IsValid() || !checkOut.IsValid() {
		return fmt.Errorf("%w: dates are required", utils.ErrInvalidDateRange)
	}
	if !(booking_models.DateRange{Start: checkIn, End: checkOut}).Valid() {
		return fmt.Errorf("%w: check-in %s must be before check-out %s", utils.ErrInvalidDateRange, checkIn, checkOut)
	}
	return nil
}

func checkCapacity(rt *room_models.RoomType, adults, children int) error {
	if adults < 1 {
		return fmt.Errorf("%w: at least one adult is required", utils.ErrCapacityExceeded)
	}
	if children < 0 {
		return fmt.Errorf("%w: children cannot be negative", utils.ErrCapacityExceeded)
	}
	// Compared without adding so huge counts cannot wrap around.
	if adults > rt.Capacity || children > rt.Capacity-adults {
		return fmt.Errorf("%w: %d adults and %d children exceed room capacity of %d", utils.ErrCapacityExceeded, adults, children, rt.Capacity)
	}
	return nil
}

// checkAvailable fails when an active booking other than exclude overlaps r on roomID.
func (s *ReservationService) checkAvailable(ctx context.Context, roomID uuid.UUID, r booking_models.DateRange, exclude *uuid.UUID) error {
	clashes, err := s.store.ListBookings(ctx, booking_models.BookingFilter{
		RoomID:      &roomID,
		Statuses:    booking_models.ActiveBookingStatuses,
		Overlapping: &r,
		ExcludeID:   exclude,
	})
	if err != nil {
		return err
	}
	if len(clashes) > 0 {
		return fmt.Errorf("%w: room is booked from %s to %s", utils.ErrRoomUnavailable, clashes[0].CheckIn, clashes[0].CheckOut)
	}
	return nil
}

// CreateBooking validates and stores a PENDING booking.
func (s *ReservationService) CreateBooking(ctx context.Context, in CreateBookingInput) (*booking_models.BookingView, error) {
	logger.InfoLogger.Infof("Attempting to create booking for room %s from %s to %s", in.RoomID, in.CheckIn, in.CheckOut)

	if err := checkDates(in.CheckIn, in.CheckOut); err != nil {
		return nil, err
	}
	if today := s.clock.Today(); in.CheckIn.Before(today) {
		return nil, fmt.Errorf("%w: check-in %s is in the past", utils.ErrInvalidDateRange, in.CheckIn)
	}

	guest := in.Guest
	guest.ID = uuid.Nil
	if err := guest.Normalize(); err != nil {
		return nil, err
	}

	room, err := s.inventory.ResolveRoom(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if err := checkCapacity(room.RoomType, in.Adults, in.Children); err != nil {
		return nil, err
	}

	unlock, err := s.lock(ctx, lock_service.RoomKey(room.ID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := s.checkAvailable(ctx, room.ID, booking_models.DateRange{Start: in.CheckIn, End: in.CheckOut}, nil); err != nil {
		logger.WarnLogger.Warnf("Booking rejected for room %s: %v", room.Number, err)
		return nil, err
	}

	now := s.clock.Now()
	guest.CreatedAt, guest.UpdatedAt = now, now
	saved, err := s.store.UpsertGuest(ctx, &guest)
	if err != nil {
		return nil, err
	}

	total := booking_models.TotalAmount(room.RoomType.BasePrice, in.CheckIn, in.CheckOut)
	b, err := booking_models.NewBooking(saved.ID, room.ID, in.CheckIn, in.CheckOut, in.Adults, in.Children, in.SpecialRequests, total, now)
	if err != nil {
		return nil, err
	}
	if err := s.store.InsertBooking(ctx, b); err != nil {
		return nil, err
	}

	logger.InfoLogger.Infof("Booking %s created for room %s, total %s", b.ID, room.Number, total)
	return &booking_models.BookingView{Booking: *b, NightCount: b.Nights(), Guest: saved, Room: room}, nil
}

// TransitionStatus moves a booking along its lifecycle.
func (s *ReservationService) TransitionStatus(ctx context.Context, id uuid.UUID, target booking_models.BookingStatus) (*booking_models.BookingView, error) {
	logger.InfoLogger.Infof("Attempting to move booking %s to %s", id, target)

	current, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := current.Status.CheckTransition(target); err != nil {
		return nil, err
	}

	unlock, err := s.lock(ctx, lock_service.RoomKey(current.RoomID), lock_service.BookingKey(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	b, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.RoomID != current.RoomID {
		return nil, fmt.Errorf("%w: booking %s moved rooms during the update", utils.ErrConflict, id)
	}
	if err := b.Status.CheckTransition(target); err != nil {
		return nil, err
	}
	if target == booking_models.BookingStatusCheckedIn {
		if err := s.checkAvailable(ctx, b.RoomID, b.Range(), &b.ID); err != nil {
			return nil, err
		}
	}

	b.Status = target
	b.UpdatedAt = s.clock.Now()
	if err := s.store.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	logger.InfoLogger.Infof("Booking %s is now %s", id, target)
	return s.view(ctx, *b, newViewCache())
}

// UpdateBooking applies patch to a non-terminal booking and re-prices it.
func (s *ReservationService) UpdateBooking(ctx context.Context, id uuid.UUID, patch booking_models.BookingPatch) (*booking_models.BookingView, error) {
	logger.InfoLogger.Infof("Attempting to update booking %s", id)

	current, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: booking %s is %s", utils.ErrInvalidTransition, id, current.Status)
	}

	keys := []string{lock_service.RoomKey(current.RoomID), lock_service.BookingKey(id)}
	if patch.RoomID != nil {
		keys = append(keys, lock_service.RoomKey(*patch.RoomID))
	}
	unlock, err := s.lock(ctx, keys...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	b, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.RoomID != current.RoomID {
		return nil, fmt.Errorf("%w: booking %s moved rooms during the update", utils.ErrConflict, id)
	}
	if b.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: booking %s is %s", utils.ErrInvalidTransition, id, b.Status)
	}

	updated := patch.Apply(*b)
	if err := checkDates(updated.CheckIn, updated.CheckOut); err != nil {
		return nil, err
	}
	if updated.CheckIn != b.CheckIn && updated.CheckIn.Before(s.clock.Today()) {
		return nil, fmt.Errorf("%w: check-in %s is in the past", utils.ErrInvalidDateRange, updated.CheckIn)
	}

	room, err := s.inventory.ResolveRoom(ctx, updated.RoomID)
	if err != nil {
		return nil, err
	}
	if err := checkCapacity(room.RoomType, updated.Adults, updated.Children); err != nil {
		return nil, err
	}
	if err := s.checkAvailable(ctx, updated.RoomID, updated.Range(), &updated.ID); err != nil {
		return nil, err
	}

	updated.TotalAmount = booking_models.TotalAmount(room.RoomType.BasePrice, updated.CheckIn, updated.CheckOut)
	payments, err := s.store.ListPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	if paid := payment_models.PaidSum(payments); updated.TotalAmount.LessThan(paid) {
		return nil, fmt.Errorf("%w: new total %s is below the %s already paid", utils.ErrAmountExceedsBalance, updated.TotalAmount, paid)
	}

	updated.UpdatedAt = s.clock.Now()
	if err := s.store.UpdateBooking(ctx, &updated); err != nil {
		return nil, err
	}

	logger.InfoLogger.Infof("Booking %s updated, total %s", id, updated.TotalAmount)
	cache := newViewCache()
	cache.rooms[room.ID] = room
	return s.view(ctx, updated, cache)
}

func (s *ReservationService) GetBooking(ctx context.Context, id uuid.UUID) (*booking_models.BookingView, error) {
	b, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, *b, newViewCache())
}

// ListBookings returns bookings ordered by check-in with guests and rooms resolved.
func (s *ReservationService) ListBookings(ctx context.Context, filter booking_models.BookingFilter) ([]booking_models.BookingView, error) {
	bookings, err := s.store.ListBookings(ctx, filter)
	if err != nil {
		return nil, err
	}
	cache := newViewCache()
	out := make([]booking_models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		v, err := s.view(ctx, b, cache)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

type viewCache struct {
	guests map[uuid.UUID]*guest_models.Guest
	rooms  map[uuid.UUID]*room_models.Room
}

func newViewCache() *viewCache {
	return &viewCache{
		guests: make(map[uuid.UUID]*guest_models.Guest),
		rooms:  make(map[uuid.UUID]*room_models.Room),
	}
}

func (s *ReservationService) view(ctx context.Context, b booking_models.Booking, cache *viewCache) (*booking_models.BookingView, error) {
	guest, ok := cache.guests[b.GuestID]
	if !ok {
		g, err := s.store.GetGuest(ctx, b.GuestID)
		if err != nil {
			return nil, fmt.Errorf("booking %s guest: %w", b.ID, err)
		}
		guest = g
		cache.guests[b.GuestID] = g
	}
	room, ok := cache.rooms[b.RoomID]
	if !ok {
		r, err := s.inventory.ResolveRoom(ctx, b.RoomID)
		if err != nil {
			return nil, fmt.Errorf("booking %s room: %w", b.ID, err)
		}
		room = r
		cache.rooms[b.RoomID] = r
	}
	return &booking_models.BookingView{Booking: b, NightCount: b.Nights(), Guest: guest, Room: room}, nil
}
