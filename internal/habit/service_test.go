// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package habit_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/habitrack/internal/habit"
	"github.com/taibuivan/habitrack/internal/platform/apperr"
	"github.com/taibuivan/habitrack/internal/platform/calendar"
	"github.com/taibuivan/habitrack/internal/platform/metrics"
	"github.com/taibuivan/habitrack/internal/platform/migration"
	"github.com/taibuivan/habitrack/internal/platform/sqlite"
	"github.com/taibuivan/habitrack/pkg/pointer"
	"github.com/taibuivan/habitrack/pkg/uuid"
)

type fixture struct {
	service *habit.Service
	clock   *clockwork.FakeClock
	db      *sqlx.DB
}

// newFixture migrates a fresh SQLite database and pins the clock to
// 2024-03-15 09:30 UTC.
func newFixture(t *testing.T) fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "habitrack.db")

	require.NoError(t, migration.RunUp("sqlite://"+path, logger))

	db, err := sqlite.Open(context.Background(), path, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC))
	cal := calendar.New(clock, time.UTC)

	return fixture{
		service: habit.NewService(habit.NewSQLiteRepository(db), cal, metrics.New(), logger),
		clock:   clock,
		db:      db,
	}
}

// seedUser inserts a bare user row and returns its id.
func (f fixture) seedUser(t *testing.T) string {
	t.Helper()
	id := uuid.New()
	_, err := f.db.Exec(
		`INSERT INTO users (id, email, passwordhash, name, createdat, updatedat) VALUES (?, ?, ?, ?, ?, ?)`,
		id, id+"@example.com", "x", "Tester", 0, 0,
	)
	require.NoError(t, err)
	return id
}

func (f fixture) seedHabit(t *testing.T, userID, title string) *habit.HabitView {
	t.Helper()
	view, err := f.service.CreateHabit(context.Background(), userID, habit.HabitInput{Title: pointer.To(title)})
	require.NoError(t, err)
	return view
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, code), "want %s, got %v", code, err)
}

/*
TestCreateHabit covers defaults, normalization and validation.
*/
func TestCreateHabit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t)

	view, err := f.service.CreateHabit(ctx, userID, habit.HabitInput{
		Title:       pointer.To("  Read   daily "),
		Description: pointer.To(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Read daily", view.Title)
	assert.Equal(t, habit.DefaultColor, view.Color)
	assert.Nil(t, view.Description)
	assert.Equal(t, 0, view.Stats.Streak)
	assert.Len(t, view.Stats.LastSevenDays, habit.WeekWindow)
	assert.NotNil(t, view.Completions)

	tests := []struct {
		name  string
		input habit.HabitInput
	}{
		{"missing title", habit.HabitInput{}},
		{"blank title", habit.HabitInput{Title: pointer.To("   ")}},
		{"bad color", habit.HabitInput{Title: pointer.To("Run"), Color: pointer.To("blue")}},
		{"short color", habit.HabitInput{Title: pointer.To("Run"), Color: pointer.To("#fff")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateHabit(ctx, userID, tt.input)
			assertCode(t, err, apperr.CodeValidation)
		})
	}
}

/*
TestRecordCompletion_Idempotent verifies that recording the same day twice
leaves exactly one completion.
*/
func TestRecordCompletion_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t)
	created := f.seedHabit(t, userID, "Meditate")

	first, err := f.service.RecordCompletion(ctx, userID, created.ID, "2024-03-14")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-14", first.Date)

	second, err := f.service.RecordCompletion(ctx, userID, created.ID, "2024-03-14")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	view, err := f.service.GetHabit(ctx, userID, created.ID)
	require.NoError(t, err)
	require.Len(t, view.Completions, 1)
	assert.Equal(t, "2024-03-14", view.Completions[0].Date)
}

func TestRecordCompletion_DefaultsToToday(t *testing.T) {
	f := newFixture(t)
	userID := f.seedUser(t)
	created := f.seedHabit(t, userID, "Walk")

	completion, err := f.service.RecordCompletion(context.Background(), userID, created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", completion.Date)
}

func TestRecordCompletion_InvalidDay(t *testing.T) {
	f := newFixture(t)
	userID := f.seedUser(t)
	created := f.seedHabit(t, userID, "Walk")

	for _, day := range []string{"2024-02-30", "15-03-2024", "2024-3-5", "tomorrow"} {
		t.Run(day, func(t *testing.T) {
			_, err := f.service.RecordCompletion(context.Background(), userID, created.ID, day)
			assertCode(t, err, apperr.CodeValidation)
		})
	}
}

/*
TestDeleteCompletion verifies the record/delete round trip and that deleting
an absent day is a no-op.
*/
func TestDeleteCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t)
	created := f.seedHabit(t, userID, "Stretch")

	_, err := f.service.RecordCompletion(ctx, userID, created.ID, "2024-03-15")
	require.NoError(t, err)
	_, err = f.service.RecordCompletion(ctx, userID, created.ID, "2024-03-14")
	require.NoError(t, err)

	removed, err := f.service.DeleteCompletion(ctx, userID, created.ID, "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = f.service.DeleteCompletion(ctx, userID, created.ID, "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)

	view, err := f.service.GetHabit(ctx, userID, created.ID)
	require.NoError(t, err)
	require.Len(t, view.Completions, 1)
	assert.Equal(t, "2024-03-14", view.Completions[0].Date)
	assert.False(t, view.Stats.CompletedToday)
	assert.Equal(t, 1, view.Stats.Streak)

	_, err = f.service.DeleteCompletion(ctx, userID, created.ID, "")
	assertCode(t, err, apperr.CodeValidation)

	_, err = f.service.DeleteCompletion(ctx, userID, created.ID, "2024-13-01")
	assertCode(t, err, apperr.CodeValidation)
}

/*
TestOwnership verifies that another user's habit yields FORBIDDEN without
mutation and that an unknown habit yields NOT_FOUND.
*/
func TestOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t)
	intruder := f.seedUser(t)
	created := f.seedHabit(t, owner, "Journal")

	_, err := f.service.RecordCompletion(ctx, owner, created.ID, "2024-03-15")
	require.NoError(t, err)

	_, err = f.service.GetHabit(ctx, intruder, created.ID)
	assertCode(t, err, apperr.CodeForbidden)

	_, err = f.service.UpdateHabit(ctx, intruder, created.ID, habit.HabitInput{Title: pointer.To("Hacked")})
	assertCode(t, err, apperr.CodeForbidden)

	_, err = f.service.RecordCompletion(ctx, intruder, created.ID, "2024-03-14")
	assertCode(t, err, apperr.CodeForbidden)

	_, err = f.service.DeleteCompletion(ctx, intruder, created.ID, "2024-03-15")
	assertCode(t, err, apperr.CodeForbidden)

	err = f.service.DeleteHabit(ctx, intruder, created.ID)
	assertCode(t, err, apperr.CodeForbidden)

	view, err := f.service.GetHabit(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Journal", view.Title)
	assert.Len(t, view.Completions, 1)

	_, err = f.service.RecordCompletion(ctx, owner, uuid.New(), "2024-03-15")
	assertCode(t, err, apperr.CodeNotFound)

	_, err = f.service.GetHabit(ctx, owner, uuid.New())
	assertCode(t, err, apperr.CodeNotFound)

	list, err := f.service.ListHabits(ctx, intruder)
	require.NoError(t, err)
	assert.Empty(t, list)
}

/*
TestUpdateHabit verifies partial updates: nil fields are kept and an empty
description clears the stored one.
*/
func TestUpdateHabit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t)

	created, err := f.service.CreateHabit(ctx, userID, habit.HabitInput{
		Title:       pointer.To("Swim"),
		Description: pointer.To("Pool at 7"),
		Color:       pointer.To("#10B981"),
	})
	require.NoError(t, err)
	assert.Equal(t, "#10b981", created.Color)

	f.clock.Advance(time.Minute)

	updated, err := f.service.UpdateHabit(ctx, userID, created.ID, habit.HabitInput{Color: pointer.To("#ef4444")})
	require.NoError(t, err)
	assert.Equal(t, "Swim", updated.Title)
	assert.Equal(t, "#ef4444", updated.Color)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Pool at 7", *updated.Description)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	cleared, err := f.service.UpdateHabit(ctx, userID, created.ID, habit.HabitInput{Description: pointer.To("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.Description)

	_, err = f.service.UpdateHabit(ctx, userID, created.ID, habit.HabitInput{Title: pointer.To("")})
	assertCode(t, err, apperr.CodeValidation)
}

/*
TestDeleteHabit_Cascade verifies that completions go with their habit.
*/
func TestDeleteHabit_Cascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t)
	created := f.seedHabit(t, userID, "Floss")

	for _, day := range []string{"2024-03-13", "2024-03-14", "2024-03-15"} {
		_, err := f.service.RecordCompletion(ctx, userID, created.ID, day)
		require.NoError(t, err)
	}

	require.NoError(t, f.service.DeleteHabit(ctx, userID, created.ID))

	var remaining int
	require.NoError(t, f.db.Get(&remaining, `SELECT COUNT(*) FROM completions WHERE habitid = ?`, created.ID))
	assert.Equal(t, 0, remaining)

	_, err := f.service.GetHabit(ctx, userID, created.ID)
	assertCode(t, err, apperr.CodeNotFound)

	err = f.service.DeleteHabit(ctx, userID, created.ID)
	assertCode(t, err, apperr.CodeNotFound)
}

/*
TestListHabits_Stats verifies stats derived from stored completions.
*/
func TestListHabits_Stats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t)
	created := f.seedHabit(t, userID, "Code")

	for _, day := range []string{"2024-03-15", "2024-03-14", "2024-03-13", "2024-03-10", "2024-02-29"} {
		_, err := f.service.RecordCompletion(ctx, userID, created.ID, day)
		require.NoError(t, err)
	}

	views, err := f.service.ListHabits(ctx, userID)
	require.NoError(t, err)
	require.Len(t, views, 1)

	stats := views[0].Stats
	assert.Equal(t, 3, stats.Streak)
	assert.True(t, stats.CompletedToday)
	assert.Equal(t, 4, stats.Monthly.Completed)
	assert.Equal(t, 31, stats.Monthly.DaysInMonth)
	assert.Equal(t, 12, stats.Monthly.Percent())

	assert.Equal(t, []habit.DayStatus{
		{Date: "2024-03-09", Completed: false},
		{Date: "2024-03-10", Completed: true},
		{Date: "2024-03-11", Completed: false},
		{Date: "2024-03-12", Completed: false},
		{Date: "2024-03-13", Completed: true},
		{Date: "2024-03-14", Completed: true},
		{Date: "2024-03-15", Completed: true},
	}, stats.LastSevenDays)

	// Most recent day first.
	assert.Equal(t, "2024-03-15", views[0].Completions[0].Date)
	assert.Equal(t, "2024-02-29", views[0].Completions[4].Date)
}

/*
TestListHabits_StreakBeyondRecentWindow verifies that stats use the whole
history even when only the most recent completions are embedded.
*/
func TestListHabits_StreakBeyondRecentWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t)
	created := f.seedHabit(t, userID, "Daily")

	cal := calendar.New(f.clock, time.UTC)
	for i := 0; i < 40; i++ {
		day, err := cal.AddDays(cal.Today(), -i)
		require.NoError(t, err)
		_, err = f.service.RecordCompletion(ctx, userID, created.ID, day)
		require.NoError(t, err)
	}

	views, err := f.service.ListHabits(ctx, userID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Len(t, views[0].Completions, habit.RecentCompletionLimit)
	assert.Equal(t, 40, views[0].Stats.Streak)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t)

	first := f.seedHabit(t, userID, "Read")
	f.clock.Advance(time.Second)
	f.seedHabit(t, userID, "Write")

	for _, day := range []string{"2024-03-15", "2024-03-14"} {
		_, err := f.service.RecordCompletion(ctx, userID, first.ID, day)
		require.NoError(t, err)
	}

	dashboard, err := f.service.Dashboard(ctx, userID, 0)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", dashboard.Date)
	assert.Equal(t, 2, dashboard.TotalHabits)
	assert.Equal(t, 1, dashboard.CompletedToday)
	assert.Equal(t, 2, dashboard.BestStreak)
	require.Len(t, dashboard.Habits, 2)
	assert.Equal(t, "Write", dashboard.Habits[0].Title)

	limited, err := f.service.Dashboard(ctx, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, limited.TotalHabits)
	assert.Len(t, limited.Habits, 1)
}
