package booking_models

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
)

func day(d int) civil.Date {
	return civil.Date{Year: 2024, Month: 3, Day: d}
}

func TestDateRangeValid(t *testing.T) {
	assert.True(t, DateRange{Start: day(1), End: day(2)}.Valid())
	assert.False(t, DateRange{Start: day(2), End: day(2)}.Valid())
	assert.False(t, DateRange{Start: day(3), End: day(2)}.Valid())
	assert.False(t, DateRange{Start: civil.Date{Year: 2024, Month: 2, Day: 30}, End: day(2)}.Valid())
}

func TestDateRangeOverlaps(t *testing.T) {
	stay := DateRange{Start: day(10), End: day(12)}
	assert.True(t, stay.Overlaps(DateRange{Start: day(11), End: day(13)}))
	assert.True(t, stay.Overlaps(Day(day(10))))
	assert.False(t, stay.Overlaps(DateRange{Start: day(12), End: day(14)}), "check-out day is free")
	assert.False(t, stay.Overlaps(DateRange{Start: day(8), End: day(10)}))
}
