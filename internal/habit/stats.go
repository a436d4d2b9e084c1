// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package habit

import "github.com/taibuivan/habitrack/internal/platform/calendar"

// # Read Models

// DayStatus is one cell of the recent-days grid.
type DayStatus struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// Stats are derived from a habit's full completion set at read time.
type Stats struct {
	Streak         int         `json:"streak"`
	CompletedToday bool        `json:"completed_today"`
	Monthly        Monthly     `json:"monthly"`
	LastSevenDays  []DayStatus `json:"last_seven_days"`
}

// HabitView is a habit as returned by the API.
type HabitView struct {
	*Habit
	Completions []*Completion `json:"completions"`
	Stats       Stats         `json:"stats"`
}

// Dashboard summarizes every habit of one user for the current day.
type Dashboard struct {
	Date           string       `json:"date"`
	TotalHabits    int          `json:"total_habits"`
	CompletedToday int          `json:"completed_today"`
	BestStreak     int          `json:"best_streak"`
	Habits         []*HabitView `json:"habits"`
}

// ComputeStats derives all statistics of one habit.
func ComputeStats(completions []*Completion, cal *calendar.Calendar) Stats {
	days := daySet(completions, cal)

	week := cal.LastNDays(WeekWindow)
	grid := make([]DayStatus, len(week))
	for i, key := range week {
		_, done := days[key]
		grid[i] = DayStatus{Date: key, Completed: done}
	}

	_, today := days[cal.Today()]

	return Stats{
		Streak:         CurrentStreak(completions, cal),
		CompletedToday: today,
		Monthly:        MonthlyProgress(completions, cal),
		LastSevenDays:  grid,
	}
}

// recent returns at most limit completions. Input is sorted day-descending.
func recent(completions []*Completion, limit int) []*Completion {
	if len(completions) > limit {
		return completions[:limit]
	}
	return completions
}
