// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package habit implements habits, their daily completions, and the statistics
derived from them (current streak, monthly progress, last-seven-days grid).

# Architecture

  - Entities: [Habit] and [Completion] (this file).
  - Repository: storage contract with PostgreSQL and SQLite implementations.
  - Service: ownership-scoped use cases and stats assembly.
  - Handler: chi routes under /api/v1/habits and /api/v1/dashboard.

Statistics are never stored. They are recomputed from the completion set on
every read, because "today" moves under them.
*/
package habit

import "time"

// # Domain Entities

// Habit is a recurring activity owned by exactly one user.
type Habit struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Completion marks a habit as done on one local calendar day.
//
// Day is the instant of local midnight. Date is its YYYY-MM-DD key, filled in
// by the service before the value leaves the package.
type Completion struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Day       time.Time `json:"-"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// # Constraints

const (
	// DefaultColor is applied when a habit is created without a color.
	DefaultColor = "#3b82f6"

	// MaxTitleLength is the maximum number of characters in a title.
	MaxTitleLength = 100

	// MaxDescriptionLength is the maximum number of characters in a description.
	MaxDescriptionLength = 500

	// RecentCompletionLimit is how many completions a habit listing embeds.
	RecentCompletionLimit = 30

	// WeekWindow is the length of the recent-days grid.
	WeekWindow = 7
)

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldColor       = "color"
	FieldDate        = "date"
	FieldHabitID     = "habitID"
)
