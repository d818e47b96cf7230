package utils

import (
	"time"

	"cloud.google.com/go/civil"
)

// Clock tells the core what "now" and "today" are for the property.
// The zero value uses the wall clock in UTC.
type Clock struct {
	now func() time.Time
	loc *time.Location
}

// NewClock returns a wall clock evaluated in loc.
func NewClock(loc *time.Location) Clock {
	return Clock{now: time.Now, loc: loc}
}

// FixedClock always reports t. Used by tests and tooling.
func FixedClock(t time.Time, loc *time.Location) Clock {
	return Clock{now: func() time.Time { return t }, loc: loc}
}

// Now returns the current instant in UTC.
func (c Clock) Now() time.Time {
	if c.now == nil {
		return time.Now().UTC()
	}
	return c.now().UTC()
}

// Location is the property's time zone.
func (c Clock) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Today is the current calendar date at the property.
func (c Clock) Today() civil.Date {
	return c.DateOf(c.Now())
}

// DateOf converts an instant to the property's calendar date.
func (c Clock) DateOf(t time.Time) civil.Date {
	return civil.DateOf(t.In(c.Location()))
}

// StartOf is midnight of d at the property.
func (c Clock) StartOf(d civil.Date) time.Time {
	return d.In(c.Location())
}
