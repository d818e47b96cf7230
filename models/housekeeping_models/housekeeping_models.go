package housekeeping_models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joy095/propertyops/utils"
)

type HousekeepingStatus string

const (
	HousekeepingStatusPending    HousekeepingStatus = "PENDING"
	HousekeepingStatusInProgress HousekeepingStatus = "IN_PROGRESS"
	HousekeepingStatusCompleted  HousekeepingStatus = "COMPLETED"
	HousekeepingStatusSkipped    HousekeepingStatus = "SKIPPED"
)

var housekeepingTransitions = map[HousekeepingStatus][]HousekeepingStatus{
	HousekeepingStatusPending:    {HousekeepingStatusInProgress, HousekeepingStatusSkipped},
	HousekeepingStatusInProgress: {HousekeepingStatusCompleted, HousekeepingStatusSkipped},
}

func ParseHousekeepingStatus(s string) HousekeepingStatus {
	return HousekeepingStatus(strings.ToUpper(strings.TrimSpace(s)))
}

func (s HousekeepingStatus) Valid() bool {
	switch s {
	case HousekeepingStatusPending, HousekeepingStatusInProgress, HousekeepingStatusCompleted, HousekeepingStatusSkipped:
		return true
	}
	return false
}

func (s HousekeepingStatus) CheckTransition(target HousekeepingStatus) error {
	for _, next := range housekeepingTransitions[s] {
		if next == target {
			return nil
		}
	}
	return fmt.Errorf("%w: housekeeping task cannot move from %s to %s", utils.ErrInvalidTransition, s, target)
}

// HousekeepingTask is a cleaning job for a room.
type HousekeepingTask struct {
	ID         uuid.UUID          `json:"id"`
	RoomID     uuid.UUID          `json:"roomId"`
	Status     HousekeepingStatus `json:"status"`
	Notes      string             `json:"notes,omitempty"`
	AssignedTo string             `json:"assignedTo,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

func NewHousekeepingTask(roomID uuid.UUID, notes, assignedTo string, now time.Time) (*HousekeepingTask, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for housekeeping task: %w", err)
	}
	return &HousekeepingTask{
		ID:         id,
		RoomID:     roomID,
		Status:     HousekeepingStatusPending,
		Notes:      strings.TrimSpace(notes),
		AssignedTo: strings.TrimSpace(assignedTo),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// HousekeepingFilter narrows listings; CreatedFrom is inclusive, CreatedBefore exclusive.
type HousekeepingFilter struct {
	RoomID        *uuid.UUID
	Status        HousekeepingStatus
	CreatedFrom   *time.Time
	CreatedBefore *time.Time
}

func (f HousekeepingFilter) Matches(t *HousekeepingTask) bool {
	if f.RoomID != nil && t.RoomID != *f.RoomID {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.CreatedFrom != nil && t.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedBefore != nil && !t.CreatedAt.Before(*f.CreatedBefore) {
		return false
	}
	return true
}
