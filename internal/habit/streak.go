// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package habit

import "github.com/taibuivan/habitrack/internal/platform/calendar"

/*
CurrentStreak counts consecutive completed days ending at today, or at
yesterday when today is not done yet. A gap of one full day resets it to 0.

Duplicates and ordering of the input do not matter.
*/
func CurrentStreak(completions []*Completion, cal *calendar.Calendar) int {
	days := daySet(completions, cal)
	if len(days) == 0 {
		return 0
	}

	// ── 1. Anchor ──
	cursor := cal.Midnight(cal.Now())
	if _, ok := days[cal.DayKey(cursor)]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
		if _, ok := days[cal.DayKey(cursor)]; !ok {
			return 0
		}
	}

	// ── 2. Walk back ──
	streak := 0
	for {
		if _, ok := days[cal.DayKey(cursor)]; !ok {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}
