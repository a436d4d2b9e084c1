// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package habit_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/habitrack/internal/habit"
	"github.com/taibuivan/habitrack/internal/platform/calendar"
)

func TestMonthly_Percent(t *testing.T) {
	tests := []struct {
		name    string
		monthly habit.Monthly
		want    int
	}{
		{"truncates", habit.Monthly{Completed: 10, DaysInMonth: 30}, 33},
		{"zero", habit.Monthly{Completed: 0, DaysInMonth: 31}, 0},
		{"full month", habit.Monthly{Completed: 31, DaysInMonth: 31}, 100},
		{"capped", habit.Monthly{Completed: 35, DaysInMonth: 30}, 100},
		{"no days", habit.Monthly{Completed: 1, DaysInMonth: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.monthly.Percent())
		})
	}
}

/*
TestMonthlyProgress verifies that only distinct days of the current month
count and that February follows leap years.
*/
func TestMonthlyProgress(t *testing.T) {
	now := time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC)
	cal := calendar.New(clockwork.NewFakeClockAt(now), time.UTC)

	completions := completionsOn(t, cal,
		"2024-02-01", "2024-02-01", "2024-02-19", "2024-02-20",
		"2024-01-31", "2023-02-20",
	)

	monthly := habit.MonthlyProgress(completions, cal)
	assert.Equal(t, 3, monthly.Completed)
	assert.Equal(t, 29, monthly.DaysInMonth)
	assert.Equal(t, 10, monthly.Percent())
}

func TestMonthly_MarshalJSON(t *testing.T) {
	encoded, err := json.Marshal(habit.Monthly{Completed: 10, DaysInMonth: 30})
	require.NoError(t, err)
	assert.JSONEq(t, `{"completed":10,"days_in_month":30,"percent":33}`, string(encoded))
}
