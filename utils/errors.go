// utils/errors.go
package utils

import "errors"

// Error kinds returned by the core. Callers match them with errors.Is; the
// concrete error usually wraps one of these with detail.
var (
	ErrInvalidDateRange     = errors.New("invalid date range")
	ErrCapacityExceeded     = errors.New("capacity exceeded")
	ErrRoomUnavailable      = errors.New("room unavailable")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrAmountExceedsBalance = errors.New("amount exceeds balance")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrInvalidInput         = errors.New("invalid input")

	ErrUserIDNotFound = errors.New("authentication required: user ID not found")
	ErrUnauthorized   = errors.New("unauthorized access")
)
