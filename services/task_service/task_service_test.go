package task_service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joy095/propertyops/models/housekeeping_models"
	"github.com/joy095/propertyops/models/maintenance_models"
	"github.com/joy095/propertyops/models/room_models"
	"github.com/joy095/propertyops/services/lock_service"
	"github.com/joy095/propertyops/store"
	"github.com/joy095/propertyops/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*TaskService, *room_models.Room) {
	t.Helper()
	ctx := context.Background()
	s := store.NewMemoryStore()
	rt, err := room_models.NewRoomType("Suite", "", decimal.NewFromInt(300), 4)
	require.NoError(t, err)
	require.NoError(t, s.CreateRoomType(ctx, rt))
	room, err := room_models.NewRoom("501", rt.ID)
	require.NoError(t, err)
	require.NoError(t, s.CreateRoom(ctx, room))
	return NewTaskService(s, lock_service.NewLocalLocker(), utils.FixedClock(now, time.UTC), time.Second), room
}

func TestHousekeepingLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, room := setup(t)

	task, err := svc.CreateHousekeeping(ctx, room.ID, " turn-down ", "")
	require.NoError(t, err)
	assert.Equal(t, housekeeping_models.HousekeepingStatusPending, task.Status)
	assert.Equal(t, "turn-down", task.Notes)

	_, err = svc.UpdateHousekeepingStatus(ctx, task.ID, housekeeping_models.HousekeepingStatusCompleted, nil)
	assert.ErrorIs(t, err, utils.ErrInvalidTransition)

	maria := "maria"
	task, err = svc.UpdateHousekeepingStatus(ctx, task.ID, housekeeping_models.HousekeepingStatusInProgress, &maria)
	require.NoError(t, err)
	assert.Equal(t, "maria", task.AssignedTo)

	task, err = svc.UpdateHousekeepingStatus(ctx, task.ID, housekeeping_models.HousekeepingStatusCompleted, nil)
	require.NoError(t, err)
	assert.Equal(t, "maria", task.AssignedTo)

	_, err = svc.UpdateHousekeepingStatus(ctx, task.ID, housekeeping_models.HousekeepingStatusSkipped, nil)
	assert.ErrorIs(t, err, utils.ErrInvalidTransition)

	t.Run("SkipFromPending", func(t *testing.T) {
		other, err := svc.CreateHousekeeping(ctx, room.ID, "", "")
		require.NoError(t, err)
		_, err = svc.UpdateHousekeepingStatus(ctx, other.ID, housekeeping_models.HousekeepingStatusSkipped, nil)
		assert.NoError(t, err)
	})

	t.Run("UnknownRoom", func(t *testing.T) {
		_, err := svc.CreateHousekeeping(ctx, uuid.New(), "", "")
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("Filter", func(t *testing.T) {
		done, err := svc.ListHousekeeping(ctx, housekeeping_models.HousekeepingFilter{Status: housekeeping_models.HousekeepingStatusCompleted})
		require.NoError(t, err)
		assert.Len(t, done, 1)

		all, err := svc.ListHousekeeping(ctx, housekeeping_models.HousekeepingFilter{RoomID: &room.ID})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestMaintenanceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, room := setup(t)

	t.Run("HappyPath", func(t *testing.T) {
		task, err := svc.CreateMaintenance(ctx, room.ID, maintenance_models.MaintenanceTypeRepair, "Broken AC", "")
		require.NoError(t, err)
		assert.Equal(t, maintenance_models.MaintenanceStatusReported, task.Status)

		for _, next := range []maintenance_models.MaintenanceStatus{
			maintenance_models.MaintenanceStatusAssigned,
			maintenance_models.MaintenanceStatusInProgress,
			maintenance_models.MaintenanceStatusCompleted,
		} {
			task, err = svc.UpdateMaintenanceStatus(ctx, task.ID, next, nil)
			require.NoError(t, err)
			assert.Equal(t, next, task.Status)
		}

		_, err = svc.UpdateMaintenanceStatus(ctx, task.ID, maintenance_models.MaintenanceStatusCancelled, nil)
		assert.ErrorIs(t, err, utils.ErrInvalidTransition)
	})

	t.Run("CancelFromAnyOpenState", func(t *testing.T) {
		for _, steps := range [][]maintenance_models.MaintenanceStatus{
			nil,
			{maintenance_models.MaintenanceStatusAssigned},
			{maintenance_models.MaintenanceStatusAssigned, maintenance_models.MaintenanceStatusInProgress},
		} {
			task, err := svc.CreateMaintenance(ctx, room.ID, maintenance_models.MaintenanceTypeInspection, "Check smoke alarm", "")
			require.NoError(t, err)
			for _, st := range steps {
				_, err = svc.UpdateMaintenanceStatus(ctx, task.ID, st, nil)
				require.NoError(t, err)
			}
			_, err = svc.UpdateMaintenanceStatus(ctx, task.ID, maintenance_models.MaintenanceStatusCancelled, nil)
			assert.NoError(t, err)
		}
	})

	t.Run("SkipAhead", func(t *testing.T) {
		task, err := svc.CreateMaintenance(ctx, room.ID, maintenance_models.MaintenanceTypeRoutine, "Filters", "")
		require.NoError(t, err)
		_, err = svc.UpdateMaintenanceStatus(ctx, task.ID, maintenance_models.MaintenanceStatusCompleted, nil)
		assert.ErrorIs(t, err, utils.ErrInvalidTransition)
	})

	t.Run("Validation", func(t *testing.T) {
		_, err := svc.CreateMaintenance(ctx, room.ID, "PAINTING", "Walls", "")
		assert.ErrorIs(t, err, utils.ErrInvalidInput)
		_, err = svc.CreateMaintenance(ctx, room.ID, maintenance_models.MaintenanceTypeRepair, "  ", "")
		assert.ErrorIs(t, err, utils.ErrInvalidInput)
		_, err = svc.CreateMaintenance(ctx, uuid.New(), maintenance_models.MaintenanceTypeRepair, "Door", "")
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("Filter", func(t *testing.T) {
		open, err := svc.ListMaintenance(ctx, maintenance_models.MaintenanceFilter{Statuses: maintenance_models.OpenMaintenanceStatuses})
		require.NoError(t, err)
		assert.Len(t, open, 1)

		repairs, err := svc.ListMaintenance(ctx, maintenance_models.MaintenanceFilter{Type: maintenance_models.MaintenanceTypeRepair})
		require.NoError(t, err)
		assert.Len(t, repairs, 1)
	})
}
