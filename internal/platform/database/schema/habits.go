// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// HabitsTable represents the 'habits' table
type HabitsTable struct {
	Table       string
	ID          string
	UserID      string
	Title       string
	Description string
	Color       string
	CreatedAt   string
	UpdatedAt   string
}

// Habits is the schema definition for habits
var Habits = HabitsTable{
	Table:       "habits",
	ID:          "id",
	UserID:      "userid",
	Title:       "title",
	Description: "description",
	Color:       "color",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t HabitsTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Title, t.Description, t.Color, t.CreatedAt, t.UpdatedAt}
}

// CompletionsTable represents the 'completions' table
type CompletionsTable struct {
	Table     string
	ID        string
	HabitID   string
	Day       string
	CreatedAt string
}

// Completions is the schema definition for completions
var Completions = CompletionsTable{
	Table:     "completions",
	ID:        "id",
	HabitID:   "habitid",
	Day:       "day",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t CompletionsTable) Columns() []string {
	return []string{t.ID, t.HabitID, t.Day, t.CreatedAt}
}
