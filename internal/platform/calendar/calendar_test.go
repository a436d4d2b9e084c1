// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package calendar_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/habitrack/internal/platform/calendar"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	location, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return location
}

/*
TestDayKey_SameLocalDay verifies that every instant of one local day maps to
the same key, including instants that fall on a different UTC date.
*/
func TestDayKey_SameLocalDay(t *testing.T) {
	location := newYork(t)
	cal := calendar.New(clockwork.NewFakeClock(), location)

	start := time.Date(2024, 3, 15, 0, 0, 0, 0, location)
	end := time.Date(2024, 3, 15, 23, 59, 59, 999, location)

	assert.Equal(t, "2024-03-15", cal.DayKey(start))
	assert.Equal(t, "2024-03-15", cal.DayKey(end))

	// 02:30 UTC on the 16th is still the 15th in New York.
	assert.Equal(t, "2024-03-15", cal.DayKey(time.Date(2024, 3, 16, 2, 30, 0, 0, time.UTC)))
}

/*
TestLastNDays verifies the window is n consecutive ascending keys ending today.
*/
func TestLastNDays(t *testing.T) {
	location := newYork(t)

	tests := []struct {
		name string
		now  time.Time
		want []string
	}{
		{
			name: "plain week",
			now:  time.Date(2024, 3, 20, 12, 0, 0, 0, location),
			want: []string{"2024-03-14", "2024-03-15", "2024-03-16", "2024-03-17", "2024-03-18", "2024-03-19", "2024-03-20"},
		},
		{
			name: "spring forward",
			now:  time.Date(2024, 3, 12, 0, 30, 0, 0, location),
			want: []string{"2024-03-06", "2024-03-07", "2024-03-08", "2024-03-09", "2024-03-10", "2024-03-11", "2024-03-12"},
		},
		{
			name: "fall back late evening",
			now:  time.Date(2024, 11, 4, 23, 30, 0, 0, location),
			want: []string{"2024-10-29", "2024-10-30", "2024-10-31", "2024-11-01", "2024-11-02", "2024-11-03", "2024-11-04"},
		},
		{
			name: "leap day",
			now:  time.Date(2024, 3, 2, 8, 0, 0, 0, location),
			want: []string{"2024-02-25", "2024-02-26", "2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := calendar.New(clockwork.NewFakeClockAt(tt.now), location)

			got := cal.LastNDays(7)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, cal.Today(), got[len(got)-1])
		})
	}
}

func TestLastNDays_NonPositive(t *testing.T) {
	cal := calendar.New(clockwork.NewFakeClock(), time.UTC)

	assert.Empty(t, cal.LastNDays(0))
	assert.Empty(t, cal.LastNDays(-3))
}

/*
TestParse_RoundTrip verifies that parsing yields local midnight and that
re-keying gives back the identical string for every day of a year.
*/
func TestParse_RoundTrip(t *testing.T) {
	location := newYork(t)
	cal := calendar.New(clockwork.NewFakeClock(), location)

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, location)
	for i := 0; i < 366; i++ {
		key := day.Format(calendar.KeyLayout)

		parsed, err := cal.Parse(key)
		require.NoError(t, err)
		assert.Equal(t, key, cal.DayKey(parsed))
		assert.Equal(t, 0, parsed.Hour(), key)
		assert.Equal(t, location, parsed.Location())

		day = day.AddDate(0, 0, 1)
	}
}

func TestParse_IsLocalNotUTC(t *testing.T) {
	cal := calendar.New(clockwork.NewFakeClock(), time.FixedZone("UTC+9", 9*60*60))

	parsed, err := cal.Parse("2024-03-15")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 14, 15, 0, 0, 0, time.UTC), parsed.UTC())
}

func TestParse_Invalid(t *testing.T) {
	cal := calendar.New(clockwork.NewFakeClock(), time.UTC)

	for _, key := range []string{"", "2024-3-5", "2024-02-30", "2023-02-29", "15/03/2024", "2024-03-15T00:00:00Z", "yesterday"} {
		_, err := cal.Parse(key)
		assert.ErrorIs(t, err, calendar.ErrInvalidDay, key)
	}
}

/*
TestDayRange verifies the half-open range, including a 23-hour DST day.
*/
func TestDayRange(t *testing.T) {
	location := newYork(t)
	cal := calendar.New(clockwork.NewFakeClock(), location)

	start, end, err := cal.DayRange("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, 23*time.Hour, end.Sub(start))
	assert.Equal(t, "2024-03-11", cal.DayKey(end))

	start, end, err = cal.DayRange("2024-11-03")
	require.NoError(t, err)
	assert.Equal(t, 25*time.Hour, end.Sub(start))

	_, _, err = cal.DayRange("nope")
	assert.ErrorIs(t, err, calendar.ErrInvalidDay)
}

func TestTodayAndYesterday(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 0, 15, 0, 0, time.UTC))
	cal := calendar.New(clock, time.UTC)

	assert.Equal(t, "2024-03-01", cal.Today())
	assert.Equal(t, "2024-02-29", cal.Yesterday())

	clock.Advance(24 * time.Hour)
	assert.Equal(t, "2024-03-02", cal.Today())
}

func TestAddDays(t *testing.T) {
	cal := calendar.New(clockwork.NewFakeClock(), time.UTC)

	key, err := cal.AddDays("2024-12-31", 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", key)

	key, err = cal.AddDays("2024-03-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", key)
}

func TestDaysInMonth(t *testing.T) {
	cal := calendar.New(clockwork.NewFakeClock(), time.UTC)

	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		got := cal.DaysInMonth(time.Date(tt.year, tt.month, 10, 12, 0, 0, 0, time.UTC))
		assert.Equal(t, tt.want, got, "%d-%02d", tt.year, tt.month)
	}
}
