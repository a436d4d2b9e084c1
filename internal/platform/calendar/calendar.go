// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package calendar converts instants into local calendar-day keys.

A day key is the 'YYYY-MM-DD' form of a date in the server's calendar
location (APP_TIMEZONE, or the process local zone). Time-of-day is always
discarded, and a parsed key always means local midnight, never UTC midnight.

Usage:

	cal := calendar.New(clockwork.NewRealClock(), time.Local)
	today := cal.Today()           // "2024-03-15"
	week := cal.LastNDays(7)       // oldest first, ends at today
	start, end, _ := cal.DayRange(today)

Every time-dependent computation in Habitrack reads "now" through a [Calendar]
so tests can pin the clock.
*/
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// KeyLayout is the [time] layout of a day key.
const KeyLayout = "2006-01-02"

// ErrInvalidDay is returned for strings that are not a real YYYY-MM-DD date.
var ErrInvalidDay = errors.New("calendar: invalid day, expected YYYY-MM-DD")

// Calendar binds a clock to the location that defines a calendar day.
type Calendar struct {
	clock    clockwork.Clock
	location *time.Location
}

// New creates a Calendar. A nil clock means the real clock and a nil location
// means [time.Local].
func New(clock clockwork.Clock, location *time.Location) *Calendar {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if location == nil {
		location = time.Local
	}
	return &Calendar{clock: clock, location: location}
}

// Now returns the current instant in the calendar location.
func (c *Calendar) Now() time.Time {
	return c.clock.Now().In(c.location)
}

// Location returns the zone that defines a calendar day.
func (c *Calendar) Location() *time.Location {
	return c.location
}

// # Keys

// DayKey returns the local calendar day of t as YYYY-MM-DD.
func (c *Calendar) DayKey(t time.Time) string {
	return t.In(c.location).Format(KeyLayout)
}

// Today returns the day key of the current instant.
func (c *Calendar) Today() string {
	return c.DayKey(c.clock.Now())
}

// Yesterday returns the day key before today.
func (c *Calendar) Yesterday() string {
	return c.DayKey(c.Midnight(c.clock.Now()).AddDate(0, 0, -1))
}

// LastNDays returns the n day keys ending at and including today, oldest first.
func (c *Calendar) LastNDays(n int) []string {
	if n <= 0 {
		return []string{}
	}

	today := c.Midnight(c.clock.Now())
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		// AddDate on the date parts keeps each step one calendar day across DST.
		keys[i] = c.DayKey(today.AddDate(0, 0, i-(n-1)))
	}
	return keys
}

// # Parsing

// Midnight returns local midnight of the calendar day containing t.
func (c *Calendar) Midnight(t time.Time) time.Time {
	local := t.In(c.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.location)
}

// Parse returns local midnight of the given day key.
func (c *Calendar) Parse(key string) (time.Time, error) {
	if len(key) != len(KeyLayout) {
		return time.Time{}, ErrInvalidDay
	}

	day, err := time.ParseInLocation(KeyLayout, key, c.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, key)
	}
	return day, nil
}

// DayRange returns the half-open interval [start, end) covering a day key.
func (c *Calendar) DayRange(key string) (time.Time, time.Time, error) {
	start, err := c.Parse(key)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := time.Date(start.Year(), start.Month(), start.Day()+1, 0, 0, 0, 0, c.location)
	return start, end, nil
}

// AddDays shifts a day key by n calendar days.
func (c *Calendar) AddDays(key string, n int) (string, error) {
	day, err := c.Parse(key)
	if err != nil {
		return "", err
	}
	return c.DayKey(day.AddDate(0, 0, n)), nil
}

// DaysInMonth returns the number of days in the month containing t.
func (c *Calendar) DaysInMonth(t time.Time) int {
	local := t.In(c.location)
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(local.Year(), local.Month()+1, 0, 0, 0, 0, 0, c.location).Day()
}
