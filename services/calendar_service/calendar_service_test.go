package calendar_service

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"
	"github.com/joy095/propertyops/models/booking_models"
	"github.com/joy095/propertyops/models/calendar_models"
	"github.com/joy095/propertyops/models/guest_models"
	"github.com/joy095/propertyops/models/housekeeping_models"
	"github.com/joy095/propertyops/models/maintenance_models"
	"github.com/joy095/propertyops/models/room_models"
	"github.com/joy095/propertyops/store"
	"github.com/joy095/propertyops/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func march(d int) civil.Date {
	return civil.Date{Year: 2024, Month: time.March, Day: d}
}

type calendarFixture struct {
	svc   *CalendarService
	store *store.MemoryStore
	room  *room_models.Room
	guest *guest_models.Guest
}

func newCalendarFixture(t *testing.T) *calendarFixture {
	t.Helper()
	ctx := context.Background()
	s := store.NewMemoryStore()

	rt, err := room_models.NewRoomType("Double", "", decimal.NewFromInt(100), 2)
	require.NoError(t, err)
	require.NoError(t, s.CreateRoomType(ctx, rt))
	room, err := room_models.NewRoom("12", rt.ID)
	require.NoError(t, err)
	require.NoError(t, s.CreateRoom(ctx, room))

	g := &guest_models.Guest{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
	require.NoError(t, g.Normalize())
	saved, err := s.UpsertGuest(ctx, g)
	require.NoError(t, err)

	clock := utils.FixedClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.UTC)
	return &calendarFixture{svc: NewCalendarService(s, clock), store: s, room: room, guest: saved}
}

func (f *calendarFixture) booking(t *testing.T, in, out civil.Date) *booking_models.Booking {
	t.Helper()
	b, err := booking_models.NewBooking(f.guest.ID, f.room.ID, in, out, 1, 0, "", decimal.NewFromInt(100), time.Now())
	require.NoError(t, err)
	require.NoError(t, f.store.InsertBooking(context.Background(), b))
	return b
}

func (f *calendarFixture) maintenance(t *testing.T, created time.Time) *maintenance_models.MaintenanceTask {
	t.Helper()
	task, err := maintenance_models.NewMaintenanceTask(f.room.ID, maintenance_models.MaintenanceTypeRepair, "Leaking tap", "", created)
	require.NoError(t, err)
	require.NoError(t, f.store.InsertMaintenance(context.Background(), task))
	return task
}

func (f *calendarFixture) housekeeping(t *testing.T, created time.Time) *housekeeping_models.HousekeepingTask {
	t.Helper()
	task, err := housekeeping_models.NewHousekeepingTask(f.room.ID, "Deep clean", "", created)
	require.NoError(t, err)
	require.NoError(t, f.store.InsertHousekeeping(context.Background(), task))
	return task
}

func TestGetEventsMarch(t *testing.T) {
	ctx := context.Background()
	f := newCalendarFixture(t)

	inside := f.booking(t, march(10), march(12))
	f.booking(t, civil.Date{Year: 2024, Month: 2, Day: 28}, march(2)) // checks in before the window
	last := f.booking(t, march(31), civil.Date{Year: 2024, Month: 4, Day: 2})
	f.booking(t, civil.Date{Year: 2024, Month: 4, Day: 1}, civil.Date{Year: 2024, Month: 4, Day: 3})

	hk := f.housekeeping(t, time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	mt := f.maintenance(t, time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC))
	f.maintenance(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	events, err := f.svc.GetEvents(ctx, march(1), march(31))
	require.NoError(t, err)

	want := []calendar_models.CalendarEvent{
		{
			ID:          "booking-" + inside.ID.String(),
			Title:       "Jane Doe - Room 12",
			Date:        march(10),
			Type:        calendar_models.EventTypeBooking,
			Description: "PENDING, 2 night(s), 2024-03-12",
			RefID:       inside.ID,
			RoomID:      f.room.ID,
		},
		{
			ID:          "maintenance-" + mt.ID.String(),
			Title:       "Repair - Room 12",
			Date:        march(10),
			Type:        calendar_models.EventTypeMaintenance,
			Description: "Leaking tap",
			RefID:       mt.ID,
			RoomID:      f.room.ID,
		},
		{
			ID:          "housekeeping-" + hk.ID.String(),
			Title:       "Housekeeping - Room 12",
			Date:        march(10),
			Type:        calendar_models.EventTypeHousekeeping,
			Description: "Deep clean",
			RefID:       hk.ID,
			RoomID:      f.room.ID,
		},
		{
			ID:          "booking-" + last.ID.String(),
			Title:       "Jane Doe - Room 12",
			Date:        march(31),
			Type:        calendar_models.EventTypeBooking,
			Description: "PENDING, 2 night(s), 2024-04-02",
			RefID:       last.ID,
			RoomID:      f.room.ID,
		},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("GetEvents mismatch (-want +got):\n%s", diff)
	}

	again, err := f.svc.GetEvents(ctx, march(1), march(31))
	require.NoError(t, err)
	if diff := cmp.Diff(events, again); diff != "" {
		t.Errorf("GetEvents not idempotent (-first +second):\n%s", diff)
	}
}

func TestGetEventsSingleDay(t *testing.T) {
	f := newCalendarFixture(t)
	b := f.booking(t, march(5), march(6))

	events, err := f.svc.GetEvents(context.Background(), march(5), march(5))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, b.ID, events[0].RefID)
}

func TestGetEventsSameDayOrdersByID(t *testing.T) {
	f := newCalendarFixture(t)
	for i := 0; i < 5; i++ {
		f.housekeeping(t, time.Date(2024, 3, 3, 8, i, 0, 0, time.UTC))
	}

	events, err := f.svc.GetEvents(context.Background(), march(3), march(3))
	require.NoError(t, err)
	require.Len(t, events, 5)
	for i := 1; i < len(events); i++ {
		assert.Less(t, events[i-1].ID, events[i].ID)
	}
}

func TestGetEventsInvalidRange(t *testing.T) {
	f := newCalendarFixture(t)
	_, err := f.svc.GetEvents(context.Background(), march(10), march(9))
	assert.ErrorIs(t, err, utils.ErrInvalidDateRange)
}

func TestGetEventsUsesPropertyTimezone(t *testing.T) {
	ctx := context.Background()
	f := newCalendarFixture(t)
	loc := time.FixedZone("UTC+10", 10*3600)
	f.svc = NewCalendarService(f.store, utils.FixedClock(time.Date(2024, 3, 1, 0, 0, 0, 0, loc), loc))

	// 20:00 UTC on the 9th is the 10th at the property.
	task := f.housekeeping(t, time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC))

	events, err := f.svc.GetEvents(ctx, march(10), march(10))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, task.ID, events[0].RefID)
	assert.Equal(t, march(10), events[0].Date)

	none, err := f.svc.GetEvents(ctx, march(9), march(9))
	require.NoError(t, err)
	assert.Empty(t, none)
}
