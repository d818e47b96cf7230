package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/joy095/propertyops/models/booking_models"
	"github.com/joy095/propertyops/models/guest_models"
	"github.com/joy095/propertyops/models/housekeeping_models"
	"github.com/joy095/propertyops/models/maintenance_models"
	"github.com/joy095/propertyops/models/payment_models"
	"github.com/joy095/propertyops/models/room_models"
	"github.com/joy095/propertyops/utils"
)

// MemoryStore keeps everything in process. It is the default when no
// DATABASE_URL is configured and the backing store for tests.
type MemoryStore struct {
	mu           sync.RWMutex
	roomTypes    map[uuid.UUID]room_models.RoomType
	rooms        map[uuid.UUID]room_models.Room
	guests       map[uuid.UUID]guest_models.Guest
	guestByEmail map[string]uuid.UUID
	bookings     map[uuid.UUID]booking_models.Booking
	payments     map[uuid.UUID]payment_models.Payment
	housekeeping map[uuid.UUID]housekeeping_models.HousekeepingTask
	maintenance  map[uuid.UUID]maintenance_models.MaintenanceTask
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		roomTypes:    make(map[uuid.UUID]room_models.RoomType),
		rooms:        make(map[uuid.UUID]room_models.Room),
		guests:       make(map[uuid.UUID]guest_models.Guest),
		guestByEmail: make(map[string]uuid.UUID),
		bookings:     make(map[uuid.UUID]booking_models.Booking),
		payments:     make(map[uuid.UUID]payment_models.Payment),
		housekeeping: make(map[uuid.UUID]housekeeping_models.HousekeepingTask),
		maintenance:  make(map[uuid.UUID]maintenance_models.MaintenanceTask),
	}
}

func (s *MemoryStore) Close() {}

func notFound(kind string, id uuid.UUID) error {
	return fmt.Errorf("%w: %s %s", utils.ErrNotFound, kind, id)
}

// --- rooms ---

func (s *MemoryStore) CreateRoomType(_ context.Context, rt *room_models.RoomType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.roomTypes[rt.ID]; exists {
		return fmt.Errorf("%w: room type %s already exists", utils.ErrConflict, rt.ID)
	}
	s.roomTypes[rt.ID] = *rt
	return nil
}

func (s *MemoryStore) GetRoomType(_ context.Context, id uuid.UUID) (*room_models.RoomType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rt, ok := s.roomTypes[id]
	if !ok {
		return nil, notFound("room type", id)
	}
	return &rt, nil
}

func (s *MemoryStore) ListRoomTypes(_ context.Context) ([]room_models.RoomType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]room_models.RoomType, 0, len(s.roomTypes))
	for _, rt := range s.roomTypes {
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) CreateRoom(_ context.Context, room *room_models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roomTypes[room.RoomTypeID]; !ok {
		return notFound("room type", room.RoomTypeID)
	}
	for _, existing := range s.rooms {
		if strings.EqualFold(existing.Number, room.Number) {
			return fmt.Errorf("%w: room number %s already exists", utils.ErrConflict, room.Number)
		}
	}
	stored := *room
	stored.RoomType = nil
	stored.Status = ""
	s.rooms[room.ID] = stored
	return nil
}

func (s *MemoryStore) GetRoom(_ context.Context, id uuid.UUID) (*room_models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, notFound("room", id)
	}
	return &room, nil
}

func (s *MemoryStore) ListRooms(_ context.Context, filter room_models.RoomFilter) ([]room_models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]room_models.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		if filter.RoomTypeID != nil && room.RoomTypeID != *filter.RoomTypeID {
			continue
		}
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// --- guests ---

func (s *MemoryStore) UpsertGuest(_ context.Context, g *guest_models.Guest) (*guest_models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.guestByEmail[g.Email]; ok {
		existing := s.guests[id]
		existing.FirstName = g.FirstName
		existing.LastName = g.LastName
		existing.Phone = g.Phone
		existing.UpdatedAt = g.UpdatedAt
		s.guests[id] = existing
		return &existing, nil
	}
	stored := *g
	s.guests[g.ID] = stored
	s.guestByEmail[g.Email] = g.ID
	return &stored, nil
}

func (s *MemoryStore) GetGuest(_ context.Context, id uuid.UUID) (*guest_models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.guests[id]
	if !ok {
		return nil, notFound("guest", id)
	}
	return &g, nil
}

// --- bookings ---

func (s *MemoryStore) InsertBooking(_ context.Context, b *booking_models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[b.ID]; ok {
		return fmt.Errorf("%w: booking %s already exists", utils.ErrConflict, b.ID)
	}
	s.bookings[b.ID] = *b
	return nil
}

func (s *MemoryStore) UpdateBooking(_ context.Context, b *booking_models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[b.ID]; !ok {
		return notFound("booking", b.ID)
	}
	s.bookings[b.ID] = *b
	return nil
}

func (s *MemoryStore) GetBooking(_ context.Context, id uuid.UUID) (*booking_models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, notFound("booking", id)
	}
	return &b, nil
}

func (s *MemoryStore) ListBookings(_ context.Context, filter booking_models.BookingFilter) ([]booking_models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]booking_models.Booking, 0)
	for _, b := range s.bookings {
		if filter.Matches(&b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CheckIn != out[j].CheckIn {
			return out[i].CheckIn.Before(out[j].CheckIn)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// --- payments ---

func (s *MemoryStore) InsertPayment(_ context.Context, p *payment_models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[p.BookingID]; !ok {
		return notFound("booking", p.BookingID)
	}
	s.payments[p.ID] = *p
	return nil
}

func (s *MemoryStore) UpdatePayment(_ context.Context, p *payment_models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[p.ID]; !ok {
		return notFound("payment", p.ID)
	}
	s.payments[p.ID] = *p
	return nil
}

func (s *MemoryStore) GetPayment(_ context.Context, id uuid.UUID) (*payment_models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, notFound("payment", id)
	}
	return &p, nil
}

func (s *MemoryStore) ListPayments(_ context.Context, bookingID uuid.UUID) ([]payment_models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]payment_models.Payment, 0)
	for _, p := range s.payments {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// --- housekeeping ---

func (s *MemoryStore) InsertHousekeeping(_ context.Context, t *housekeeping_models.HousekeepingTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[t.RoomID]; !ok {
		return notFound("room", t.RoomID)
	}
	s.housekeeping[t.ID] = *t
	return nil
}

func (s *MemoryStore) UpdateHousekeeping(_ context.Context, t *housekeeping_models.HousekeepingTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.housekeeping[t.ID]; !ok {
		return notFound("housekeeping task", t.ID)
	}
	s.housekeeping[t.ID] = *t
	return nil
}

func (s *MemoryStore) GetHousekeeping(_ context.Context, id uuid.UUID) (*housekeeping_models.HousekeepingTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.housekeeping[id]
	if !ok {
		return nil, notFound("housekeeping task", id)
	}
	return &t, nil
}

func (s *MemoryStore) ListHousekeeping(_ context.Context, filter housekeeping_models.HousekeepingFilter) ([]housekeeping_models.HousekeepingTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]housekeeping_models.HousekeepingTask, 0)
	for _, t := range s.housekeeping {
		if filter.Matches(&t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// --- maintenance ---

func (s *MemoryStore) InsertMaintenance(_ context.Context, t *maintenance_models.MaintenanceTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[t.RoomID]; !ok {
		return notFound("room", t.RoomID)
	}
	s.maintenance[t.ID] = *t
	return nil
}

func (s *MemoryStore) UpdateMaintenance(_ context.Context, t *maintenance_models.MaintenanceTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.maintenance[t.ID]; !ok {
		return notFound("maintenance task", t.ID)
	}
	s.maintenance[t.ID] = *t
	return nil
}

func (s *MemoryStore) GetMaintenance(_ context.Context, id uuid.UUID) (*maintenance_models.MaintenanceTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.maintenance[id]
	if !ok {
		return nil, notFound("maintenance task", id)
	}
	return &t, nil
}

func (s *MemoryStore) ListMaintenance(_ context.Context, filter maintenance_models.MaintenanceFilter) ([]maintenance_models.MaintenanceTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]maintenance_models.MaintenanceTask, 0)
	for _, t := range s.maintenance {
		if filter.Matches(&t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
