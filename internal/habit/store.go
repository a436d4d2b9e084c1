// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package habit

import (
	"context"
	"time"
)

// # Data Access

// Repository defines the data access contract for habits and completions.
//
// Every mutation that a user triggers carries the owner id in its filter, so
// a write can never land on another user's habit even if the service's prior
// ownership check raced with a concurrent change.
type Repository interface {

	/*
		CreateHabit persists a brand-new habit.

		Parameters:
		  - context: context.Context
		  - habit: *Habit

		Returns:
		  - error: Persistence failures
	*/
	CreateHabit(context context.Context, habit *Habit) error

	/*
		FindHabitByID returns the habit with the given ID regardless of owner.

		Returns:
		  - *Habit: Hydrated entity
		  - error: dberr.ErrNotFound when absent
	*/
	FindHabitByID(context context.Context, id string) (*Habit, error)

	/*
		ListHabitsByOwner returns the user's habits, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []*Habit: Possibly empty list
		  - error: Database retrieval failures
	*/
	ListHabitsByOwner(context context.Context, userID string) ([]*Habit, error)

	/*
		UpdateHabit writes title, description, color and updated-at.
		The filter is (id, owner); a miss yields dberr.ErrNotFound.
	*/
	UpdateHabit(context context.Context, habit *Habit) error

	/*
		DeleteHabit removes a habit and, by cascade, its completions.
		The filter is (id, owner); a miss yields dberr.ErrNotFound.
	*/
	DeleteHabit(context context.Context, userID, habitID string) error

	/*
		RecordCompletion inserts a completion unless one already exists for
		(habit, day), then returns the visible row for that pair.

		Parameters:
		  - context: context.Context
		  - userID: string (owner filter)
		  - completion: *Completion (ID, HabitID, Day, CreatedAt)

		Returns:
		  - *Completion: The stored completion (new or pre-existing)
		  - error: dberr.ErrNotFound when the habit is absent or not owned
	*/
	RecordCompletion(context context.Context, userID string, completion *Completion) (*Completion, error)

	/*
		DeleteCompletions removes every completion of the habit whose day lies
		in [start, end). Deleting nothing is not an error.

		Returns:
		  - int64: Number of removed rows
		  - error: Persistence failures
	*/
	DeleteCompletions(context context.Context, userID, habitID string, start, end time.Time) (int64, error)

	/*
		ListCompletions returns a habit's completions, most recent day first.
		A limit <= 0 returns all of them.
	*/
	ListCompletions(context context.Context, habitID string, limit int) ([]*Completion, error)

	/*
		ListCompletionsByOwner returns the completions of every habit owned by
		the user, most recent day first.
	*/
	ListCompletionsByOwner(context context.Context, userID string) ([]*Completion, error)
}
