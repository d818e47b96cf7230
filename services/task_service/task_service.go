// Package task_service runs the housekeeping and maintenance queues.
package task_service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joy095/propertyops/logger"
	"github.com/joy095/propertyops/models/housekeeping_models"
	"github.com/joy095/propertyops/models/maintenance_models"
	"github.com/joy095/propertyops/services/lock_service"
	"github.com/joy095/propertyops/store"
	"github.com/joy095/propertyops/utils"
)

const (
	housekeepingLockKind = "housekeeping"
	maintenanceLockKind  = "maintenance"
)

type TaskService struct {
	store       store.Store
	locker      lock_service.Locker
	clock       utils.Clock
	lockTimeout time.Duration
}

func NewTaskService(s store.Store, locker lock_service.Locker, clock utils.Clock, lockTimeout time.Duration) *TaskService {
	return &TaskService{store: s, locker: locker, clock: clock, lockTimeout: lockTimeout}
}

func (s *TaskService) lock(ctx context.Context, key string) (func(), error) {
	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}
	return s.locker.Lock(ctx, key)
}

// --- housekeeping ---

func (s *TaskService) CreateHousekeeping(ctx context.Context, roomID uuid.UUID, notes, assignedTo string) (*housekeeping_models.HousekeepingTask, error) {
	logger.InfoLogger.Infof("Attempting to create housekeeping task for room %s", roomID)

	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	task, err := housekeeping_models.NewHousekeepingTask(roomID, notes, assignedTo, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.store.InsertHousekeeping(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) ListHousekeeping(ctx context.Context, filter housekeeping_models.HousekeepingFilter) ([]housekeeping_models.HousekeepingTask, error) {
	return s.store.ListHousekeeping(ctx, filter)
}

// UpdateHousekeepingStatus transitions a task; a non-nil assignedTo replaces the assignee.
func (s *TaskService) UpdateHousekeepingStatus(ctx context.Context, id uuid.UUID, target housekeeping_models.HousekeepingStatus, assignedTo *string) (*housekeeping_models.HousekeepingTask, error) {
	logger.InfoLogger.Infof("Attempting to move housekeeping task %s to %s", id, target)

	unlock, err := s.lock(ctx, lock_service.TaskKey(housekeepingLockKind, id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	task, err := s.store.GetHousekeeping(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := task.Status.CheckTransition(target); err != nil {
		return nil, err
	}
	task.Status = target
	if assignedTo != nil {
		task.AssignedTo = *assignedTo
	}
	task.UpdatedAt = s.clock.Now()
	if err := s.store.UpdateHousekeeping(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// --- maintenance ---

func (s *TaskService) CreateMaintenance(ctx context.Context, roomID uuid.UUID, taskType maintenance_models.MaintenanceType, description, assignedTo string) (*maintenance_models.MaintenanceTask, error) {
	logger.InfoLogger.Infof("Attempting to create %s maintenance task for room %s", taskType, roomID)

	if _, err := maintenance_models.ParseMaintenanceType(string(taskType)); err != nil {
		return nil, err
	}
	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	task, err := maintenance_models.NewMaintenanceTask(roomID, taskType, description, assignedTo, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.store.InsertMaintenance(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) ListMaintenance(ctx context.Context, filter maintenance_models.MaintenanceFilter) ([]maintenance_models.MaintenanceTask, error) {
	return s.store.ListMaintenance(ctx, filter)
}

// UpdateMaintenanceStatus transitions a task; a non-nil assignedTo replaces the assignee.
func (s *TaskService) UpdateMaintenanceStatus(ctx context.Context, id uuid.UUID, target maintenance_models.MaintenanceStatus, assignedTo *string) (*maintenance_models.MaintenanceTask, error) {
	logger.InfoLogger.Infof("Attempting to move maintenance task %s to %s", id, target)

	unlock, err := s.lock(ctx, lock_service.TaskKey(maintenanceLockKind, id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	task, err := s.store.GetMaintenance(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := task.Status.CheckTransition(target); err != nil {
		return nil, err
	}
	task.Status = target
	if assignedTo != nil {
		task.AssignedTo = *assignedTo
	}
	task.UpdatedAt = s.clock.Now()
	if err := s.store.UpdateMaintenance(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
