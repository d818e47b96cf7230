// Package inventory_service manages room types and rooms and projects each
// room's status from its bookings and maintenance tasks.
package inventory_service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/joy095/propertyops/logger"
	"github.com/joy095/propertyops/models/booking_models"
	"github.com/joy095/propertyops/models/maintenance_models"
	"github.com/joy095/propertyops/models/room_models"
	"github.com/joy095/propertyops/store"
	"github.com/joy095/propertyops/utils"
	"github.com/shopspring/decimal"
)

type InventoryService struct {
	store store.Store
	clock utils.Clock
}

func NewInventoryService(s store.Store, clock utils.Clock) *InventoryService {
	return &InventoryService{store: s, clock: clock}
}

func (s *InventoryService) CreateRoomType(ctx context.Context, name, description string, basePrice decimal.Decimal, capacity int) (*room_models.RoomType, error) {
	logger.InfoLogger.Infof("Attempting to create room type %s", name)

	rt, err := room_models.NewRoomType(name, description, basePrice, capacity)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateRoomType(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *InventoryService) ListRoomTypes(ctx context.Context) ([]room_models.RoomType, error) {
	return s.store.ListRoomTypes(ctx)
}

func (s *InventoryService) CreateRoom(ctx context.Context, number string, roomTypeID uuid.UUID) (*room_models.Room, error) {
	logger.InfoLogger.Infof("Attempting to create room %s", number)

	room, err := room_models.NewRoom(number, roomTypeID)
	if err != nil {
		return nil, err
	}
	rt, err := s.store.GetRoomType(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	room.RoomType = rt
	room.Status = room_models.RoomStatusAvailable
	return room, nil
}

// ResolveRoom returns the room with its type attached but no status. The
// reservation engine uses it for capacity and pricing.
func (s *InventoryService) ResolveRoom(ctx context.Context, id uuid.UUID) (*room_models.Room, error) {
	room, err := s.store.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	rt, err := s.store.GetRoomType(ctx, room.RoomTypeID)
	if err != nil {
		return nil, fmt.Errorf("room %s has no room type: %w", room.Number, err)
	}
	room.RoomType = rt
	return room, nil
}

// GetRoom returns the room with its type and today's status.
func (s *InventoryService) GetRoom(ctx context.Context, id uuid.UUID) (*room_models.Room, error) {
	room, err := s.ResolveRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	statuses, err := s.statuses(ctx, &room.ID)
	if err != nil {
		return nil, err
	}
	room.Status = statuses.of(room.ID)
	return room, nil
}

// ListRooms returns rooms ordered by number with today's status. A status
// filter is applied after projection.
func (s *InventoryService) ListRooms(ctx context.Context, filter room_models.RoomFilter) ([]room_models.Room, error) {
	rooms, err := s.store.ListRooms(ctx, filter)
	if err != nil {
		return nil, err
	}
	types, err := s.store.ListRoomTypes(ctx)
	if err != nil {
		return nil, err
	}
	typeByID := make(map[uuid.UUID]room_models.RoomType, len(types))
	for _, rt := range types {
		typeByID[rt.ID] = rt
	}
	statuses, err := s.statuses(ctx, nil)
	if err != nil {
		return nil, err
	}

	out := make([]room_models.Room, 0, len(rooms))
	for _, room := range rooms {
		if rt, ok := typeByID[room.RoomTypeID]; ok {
			room.RoomType = &rt
		}
		room.Status = statuses.of(room.ID)
		if filter.Status != "" && room.Status != filter.Status {
			continue
		}
		out = append(out, room)
	}
	return out, nil
}

// occupancy is what the projection needs to know about one room today.
type occupancy struct {
	checkedIn   bool
	booked      bool
	maintenance bool
}

type statusIndex map[uuid.UUID]occupancy

func (idx statusIndex) of(roomID uuid.UUID) room_models.RoomStatus {
	return deriveStatus(idx[roomID])
}

// deriveStatus ranks a checked-in guest above open maintenance, and open
// maintenance above any other booking covering today.
func deriveStatus(o occupancy) room_models.RoomStatus {
	switch {
	case o.checkedIn:
		return room_models.RoomStatusOccupied
	case o.maintenance:
		return room_models.RoomStatusMaintenance
	case o.booked:
		return room_models.RoomStatusOccupied
	}
	return room_models.RoomStatusAvailable
}

// statuses indexes today's bookings and open maintenance, for one room or all.
func (s *InventoryService) statuses(ctx context.Context, roomID *uuid.UUID) (statusIndex, error) {
	window := booking_models.Day(s.clock.Today())
	bookings, err := s.store.ListBookings(ctx, booking_models.BookingFilter{
		RoomID:      roomID,
		Statuses:    booking_models.ActiveBookingStatuses,
		Overlapping: &window,
	})
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.ListMaintenance(ctx, maintenance_models.MaintenanceFilter{
		RoomID:   roomID,
		Statuses: maintenance_models.OpenMaintenanceStatuses,
	})
	if err != nil {
		return nil, err
	}

	idx := make(statusIndex)
	for _, b := range bookings {
		o := idx[b.RoomID]
		if b.Status == booking_models.BookingStatusCheckedIn {
			o.checkedIn = true
		} else {
			o.booked = true
		}
		idx[b.RoomID] = o
	}
	for _, t := range tasks {
		o := idx[t.RoomID]
		o.maintenance = true
		idx[t.RoomID] = o
	}
	return idx, nil
}
