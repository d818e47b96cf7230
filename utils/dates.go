package utils

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// ParseDate accepts an ISO-8601 date ("2024-01-10") or date-time and returns
// the calendar date it names at the property. A date-time with an offset or
// "Z" is an instant and is converted to the property's zone first; one without
// an offset keeps its own calendar date.
func (c Clock) ParseDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if d, err := civil.ParseDate(s); err == nil {
		return d, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return c.DateOf(t), nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return civil.DateOf(t), nil
		}
	}
	return civil.Date{}, fmt.Errorf("%w: %q is not an ISO-8601 date", ErrInvalidInput, s)
}

// ParseOptionalDate is ParseDate for optional fields; empty yields nil.
func (c Clock) ParseOptionalDate(s string) (*civil.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := c.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ParseID parses a UUID from a path segment. Malformed ids can never match a
// record, so they are reported as not found.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrNotFound, s)
	}
	return id, nil
}

// ParseBodyID parses a UUID supplied in a request body.
func ParseBodyID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a UUID", ErrInvalidInput, field)
	}
	return id, nil
}
