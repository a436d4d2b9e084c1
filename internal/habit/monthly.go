// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package habit

import (
	"encoding/json"

	"github.com/taibuivan/habitrack/internal/platform/calendar"
)

// Monthly is the completion count of the current calendar month.
type Monthly struct {
	Completed   int `json:"completed"`
	DaysInMonth int `json:"days_in_month"`
}

// Percent returns Completed over DaysInMonth as a truncated integer
// percentage, capped at 100.
func (m Monthly) Percent() int {
	if m.DaysInMonth <= 0 {
		return 0
	}
	return min(100, m.Completed*100/m.DaysInMonth)
}

// MarshalJSON includes the derived percentage.
func (m Monthly) MarshalJSON() ([]byte, error) {
	type plain Monthly
	return json.Marshal(struct {
		plain
		Percent int `json:"percent"`
	}{plain(m), m.Percent()})
}

// MonthlyProgress counts distinct completed days in the current month.
func MonthlyProgress(completions []*Completion, cal *calendar.Calendar) Monthly {
	now := cal.Now()
	prefix := now.Format("2006-01")

	completed := 0
	for day := range daySet(completions, cal) {
		if day[:len(prefix)] == prefix {
			completed++
		}
	}

	return Monthly{Completed: completed, DaysInMonth: cal.DaysInMonth(now)}
}
