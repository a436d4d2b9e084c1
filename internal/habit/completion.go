// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package habit

import (
	"github.com/taibuivan/habitrack/internal/platform/calendar"
	"github.com/taibuivan/habitrack/pkg/slice"
)

// IsCompletedOn reports whether any completion falls on the given day key.
func IsCompletedOn(completions []*Completion, dayKey string, cal *calendar.Calendar) bool {
	for _, completion := range completions {
		if cal.DayKey(completion.Day) == dayKey {
			return true
		}
	}
	return false
}

// daySet collapses completions into the set of local day keys they cover.
func daySet(completions []*Completion, cal *calendar.Calendar) map[string]struct{} {
	return slice.Set(completions, func(completion *Completion) string {
		return cal.DayKey(completion.Day)
	})
}

// stamp fills the serialized Date of each completion.
func stamp(completions []*Completion, cal *calendar.Calendar) []*Completion {
	for _, completion := range completions {
		completion.Date = cal.DayKey(completion.Day)
	}
	return completions
}
