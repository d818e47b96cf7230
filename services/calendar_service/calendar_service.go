// Package calendar_service projects bookings and tasks onto calendar days.
package calendar_service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/joy095/propertyops/logger"
	"github.com/joy095/propertyops/models/booking_models"
	"github.com/joy095/propertyops/models/calendar_models"
	"github.com/joy095/propertyops/models/housekeeping_models"
	"github.com/joy095/propertyops/models/maintenance_models"
	"github.com/joy095/propertyops/models/room_models"
	"github.com/joy095/propertyops/store"
	"github.com/joy095/propertyops/utils"
	"golang.org/x/sync/errgroup"
)

type CalendarService struct {
	store store.Store
	clock utils.Clock
}

func NewCalendarService(s store.Store, clock utils.Clock) *CalendarService {
	return &CalendarService{store: s, clock: clock}
}

func (s *CalendarService) Clock() utils.Clock { return s.clock }

// GetEvents returns the events dated within [start, end], both inclusive.
// Bookings are dated by check-in and tasks by the property-local day they were
// created. Results are rebuilt from the store on every call.
func (s *CalendarService) GetEvents(ctx context.Context, start, end civil.Date) ([]calendar_models.CalendarEvent, error) {
	if !start.IsValid() || !end.IsValid() {
		return nil, fmt.Errorf("%w: start and end dates are required", utils.ErrInvalidDateRange)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: start %s is after end %s", utils.ErrInvalidDateRange, start, end)
	}
	logger.DebugLogger.Debugf("Building calendar from %s to %s", start, end)

	from := s.clock.StartOf(start)
	before := s.clock.StartOf(end.AddDays(1))

	var (
		rooms        []room_models.Room
		bookings     []booking_models.Booking
		maintenance  []maintenance_models.MaintenanceTask
		housekeeping []housekeeping_models.HousekeepingTask
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rooms, err = s.store.ListRooms(gctx, room_models.RoomFilter{})
		return err
	})
	g.Go(func() (err error) {
		bookings, err = s.store.ListBookings(gctx, booking_models.BookingFilter{CheckInFrom: &start, CheckInTo: &end})
		return err
	})
	g.Go(func() (err error) {
		maintenance, err = s.store.ListMaintenance(gctx, maintenance_models.MaintenanceFilter{CreatedFrom: &from, CreatedBefore: &before})
		return err
	})
	g.Go(func() (err error) {
		housekeeping, err = s.store.ListHousekeeping(gctx, housekeeping_models.HousekeepingFilter{CreatedFrom: &from, CreatedBefore: &before})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	roomNumbers := make(map[uuid.UUID]string, len(rooms))
	for _, r := range rooms {
		roomNumbers[r.ID] = r.Number
	}
	roomLabel := func(id uuid.UUID) string {
		if n, ok := roomNumbers[id]; ok {
			return "Room " + n
		}
		return "Room ?"
	}

	events := make([]calendar_models.CalendarEvent, 0, len(bookings)+len(maintenance)+len(housekeeping))

	guestNames := make(map[uuid.UUID]string)
	for _, b := range bookings {
		name, ok := guestNames[b.GuestID]
		if !ok {
			guest, err := s.store.GetGuest(ctx, b.GuestID)
			if err != nil {
				return nil, fmt.Errorf("calendar booking %s guest: %w", b.ID, err)
			}
			name = guest.FullName()
			guestNames[b.GuestID] = name
		}
		events = append(events, calendar_models.CalendarEvent{
			ID:          "booking-" + b.ID.String(),
			Title:       name + " - " + roomLabel(b.RoomID),
			Date:        b.CheckIn,
			Type:        calendar_models.EventTypeBooking,
			Description: fmt.Sprintf("%s, %d night(s), %s", b.Status, b.Nights(), b.CheckOut),
			RefID:       b.ID,
			RoomID:      b.RoomID,
		})
	}

	for _, t := range maintenance {
		events = append(events, calendar_models.CalendarEvent{
			ID:          "maintenance-" + t.ID.String(),
			Title:       titleCase(string(t.Type)) + " - " + roomLabel(t.RoomID),
			Date:        s.clock.DateOf(t.CreatedAt),
			Type:        calendar_models.EventTypeMaintenance,
			Description: t.Description,
			RefID:       t.ID,
			RoomID:      t.RoomID,
		})
	}

	for _, t := range housekeeping {
		events = append(events, calendar_models.CalendarEvent{
			ID:          "housekeeping-" + t.ID.String(),
			Title:       "Housekeeping - " + roomLabel(t.RoomID),
			Date:        s.clock.DateOf(t.CreatedAt),
			Type:        calendar_models.EventTypeHousekeeping,
			Description: t.Notes,
			RefID:       t.ID,
			RoomID:      t.RoomID,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return calendar_models.Less(events[i], events[j])
	})
	return events, nil
}

// titleCase turns "REPAIR" into "Repair".
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return s[:1] + strings.ToLower(s[1:])
}
