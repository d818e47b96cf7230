package maintenance_models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joy095/propertyops/utils"
)

// MaintenanceType classifies the work.
type MaintenanceType string

const (
	MaintenanceTypeRepair      MaintenanceType = "REPAIR"
	MaintenanceTypeReplacement MaintenanceType = "REPLACEMENT"
	MaintenanceTypeInspection  MaintenanceType = "INSPECTION"
	MaintenanceTypeRoutine     MaintenanceType = "ROUTINE"
	MaintenanceTypeEmergency   MaintenanceType = "EMERGENCY"
)

// ParseMaintenanceType validates a type supplied by a caller.
func ParseMaintenanceType(s string) (MaintenanceType, error) {
	switch t := MaintenanceType(strings.ToUpper(strings.TrimSpace(s))); t {
	case MaintenanceTypeRepair, MaintenanceTypeReplacement, MaintenanceTypeInspection, MaintenanceTypeRoutine, MaintenanceTypeEmergency:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown maintenance type %q", utils.ErrInvalidInput, s)
}

// MaintenanceStatus is a state of a maintenance task.
type MaintenanceStatus string

const (
	MaintenanceStatusReported   MaintenanceStatus = "REPORTED"
	MaintenanceStatusAssigned   MaintenanceStatus = "ASSIGNED"
	MaintenanceStatusInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceStatusCompleted  MaintenanceStatus = "COMPLETED"
	MaintenanceStatusCancelled  MaintenanceStatus = "CANCELLED"
)

// OpenMaintenanceStatuses are the non-terminal states; an open task puts its
// room into maintenance.
var OpenMaintenanceStatuses = []MaintenanceStatus{
	MaintenanceStatusReported,
	MaintenanceStatusAssigned,
	MaintenanceStatusInProgress,
}

var maintenanceTransitions = map[MaintenanceStatus][]MaintenanceStatus{
	MaintenanceStatusReported:   {MaintenanceStatusAssigned, MaintenanceStatusCancelled},
	MaintenanceStatusAssigned:   {MaintenanceStatusInProgress, MaintenanceStatusCancelled},
	MaintenanceStatusInProgress: {MaintenanceStatusCompleted, MaintenanceStatusCancelled},
}

func ParseMaintenanceStatus(s string) MaintenanceStatus {
	return MaintenanceStatus(strings.ToUpper(strings.TrimSpace(s)))
}

func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceStatusReported, MaintenanceStatusAssigned, MaintenanceStatusInProgress, MaintenanceStatusCompleted, MaintenanceStatusCancelled:
		return true
	}
	return false
}

func (s MaintenanceStatus) CheckTransition(target MaintenanceStatus) error {
	for _, next := range maintenanceTransitions[s] {
		if next == target {
			return nil
		}
	}
	return fmt.Errorf("%w: maintenance task cannot move from %s to %s", utils.ErrInvalidTransition, s, target)
}

// MaintenanceTask is repair or upkeep work on a room.
type MaintenanceTask struct {
	ID          uuid.UUID         `json:"id"`
	RoomID      uuid.UUID         `json:"roomId"`
	Type        MaintenanceType   `json:"type"`
	Description string            `json:"description"`
	Status      MaintenanceStatus `json:"status"`
	AssignedTo  string            `json:"assignedTo,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func NewMaintenanceTask(roomID uuid.UUID, taskType MaintenanceType, description, assignedTo string, now time.Time) (*MaintenanceTask, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: maintenance description is required", utils.ErrInvalidInput)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for maintenance task: %w", err)
	}
	return &MaintenanceTask{
		ID:          id,
		RoomID:      roomID,
		Type:        taskType,
		Description: description,
		Status:      MaintenanceStatusReported,
		AssignedTo:  strings.TrimSpace(assignedTo),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// MaintenanceFilter narrows listings; CreatedFrom is inclusive, CreatedBefore exclusive.
type MaintenanceFilter struct {
	RoomID        *uuid.UUID
	Type          MaintenanceType
	Statuses      []MaintenanceStatus
	CreatedFrom   *time.Time
	CreatedBefore *time.Time
}

func (f MaintenanceFilter) Matches(t *MaintenanceTask) bool {
	if f.RoomID != nil && t.RoomID != *f.RoomID {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if t.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.CreatedFrom != nil && t.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedBefore != nil && !t.CreatedAt.Before(*f.CreatedBefore) {
		return false
	}
	return true
}
