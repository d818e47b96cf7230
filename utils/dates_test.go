package utils

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockParseDate(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	clock := FixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), berlin)

	tests := []struct {
		in   string
		want civil.Date
	}{
		{"2024-01-10", civil.Date{Year: 2024, Month: 1, Day: 10}},
		{" 2024-01-10 ", civil.Date{Year: 2024, Month: 1, Day: 10}},
		{"2024-01-09T23:00:00.000Z", civil.Date{Year: 2024, Month: 1, Day: 10}},
		{"2024-01-09T22:59:59Z", civil.Date{Year: 2024, Month: 1, Day: 9}},
		{"2024-01-10T00:30:00+01:00", civil.Date{Year: 2024, Month: 1, Day: 10}},
		{"2024-01-10T00:30:00-05:00", civil.Date{Year: 2024, Month: 1, Day: 10}},
		{"2024-01-09T23:00:00", civil.Date{Year: 2024, Month: 1, Day: 9}},
		{"2024-01-09T23:00:00.250", civil.Date{Year: 2024, Month: 1, Day: 9}},
		{"2024-01-09 23:00:00", civil.Date{Year: 2024, Month: 1, Day: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := clock.ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "01/04/2024", "2024-13-01", "tomorrow"} {
		_, err := clock.ParseDate(bad)
		assert.True(t, errors.Is(err, ErrInvalidInput), "%q: %v", bad, err)
	}
}

func TestZeroClockParsesInUTC(t *testing.T) {
	got, err := Clock{}.ParseDate("2024-01-09T23:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 9}, got)
}

func TestParseOptionalDate(t *testing.T) {
	d, err := Clock{}.ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = Clock{}.ParseOptionalDate("2024-02-29")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, civil.Date{Year: 2024, Month: 2, Day: 29}, *d)

	_, err = Clock{}.ParseOptionalDate("2023-02-29")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
