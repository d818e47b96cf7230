package room_models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joy095/propertyops/utils"
	"github.com/shopspring/decimal"
)

// RoomStatus is the projected occupancy state of a room.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "AVAILABLE"
	RoomStatusOccupied    RoomStatus = "OCCUPIED"
	RoomStatusMaintenance RoomStatus = "MAINTENANCE"
)

// ParseRoomStatus validates a status coming from a request.
func ParseRoomStatus(s string) (RoomStatus, error) {
	switch st := RoomStatus(strings.ToUpper(s)); st {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown room status %q", utils.ErrInvalidInput, s)
}

// RoomType defines pricing and occupancy ceiling for its rooms.
type RoomType struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	Capacity    int             `json:"capacity"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewRoomType validates and builds a RoomType.
func NewRoomType(name, description string, basePrice decimal.Decimal, capacity int) (*RoomType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: room type name is required", utils.ErrInvalidInput)
	}
	if basePrice.IsNegative() {
		return nil, fmt.Errorf("%w: base price must not be negative", utils.ErrInvalidInput)
	}
	if err := utils.CheckCents("base price", basePrice); err != nil {
		return nil, err
	}
	if capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", utils.ErrInvalidInput)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for room type: %w", err)
	}
	return &RoomType{
		ID:          id,
		Name:        name,
		Description: description,
		BasePrice:   basePrice,
		Capacity:    capacity,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Room is a bookable unit. Status is never stored: it is filled in by the
// inventory service on read. RoomType is resolved from RoomTypeID on read.
type Room struct {
	ID         uuid.UUID  `json:"id"`
	Number     string     `json:"number"`
	RoomTypeID uuid.UUID  `json:"roomTypeId"`
	RoomType   *RoomType  `json:"roomType,omitempty"`
	Status     RoomStatus `json:"status,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// NewRoom validates and builds a Room.
func NewRoom(number string, roomTypeID uuid.UUID) (*Room, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, fmt.Errorf("%w: room number is required", utils.ErrInvalidInput)
	}
	if roomTypeID == uuid.Nil {
		return nil, fmt.Errorf("%w: room type is required", utils.ErrInvalidInput)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for room: %w", err)
	}
	return &Room{
		ID:         id,
		Number:     number,
		RoomTypeID: roomTypeID,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// RoomFilter narrows room listings. Status is applied after projection.
type RoomFilter struct {
	RoomTypeID *uuid.UUID
	Status     RoomStatus
}
