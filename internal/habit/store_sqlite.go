// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package habit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/taibuivan/habitrack/internal/platform/database/schema"
	"github.com/taibuivan/habitrack/internal/platform/dberr"
	"github.com/taibuivan/habitrack/pkg/pointer"
	"github.com/taibuivan/habitrack/pkg/slice"
)

// SQLiteRepository implements [Repository] over an sqlx handle.
//
// Timestamps are stored as unix milliseconds and days as unix seconds of
// local midnight.
type SQLiteRepository struct {
	db *sqlx.DB
}

// NewSQLiteRepository creates a new SQLite-backed Repository.
func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// # Row Mapping

type habitRow struct {
	ID          string         `db:"id"`
	UserID      string         `db:"userid"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Color       string         `db:"color"`
	CreatedAt   int64          `db:"createdat"`
	UpdatedAt   int64          `db:"updatedat"`
}

func (row habitRow) toHabit() *Habit {
	habit := &Habit{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Color:     row.Color,
		CreatedAt: time.UnixMilli(row.CreatedAt),
		UpdatedAt: time.UnixMilli(row.UpdatedAt),
	}
	if row.Description.Valid {
		habit.Description = pointer.To(row.Description.String)
	}
	return habit
}

type completionRow struct {
	ID        string `db:"id"`
	HabitID   string `db:"habitid"`
	Day       int64  `db:"day"`
	CreatedAt int64  `db:"createdat"`
}

func (row completionRow) toCompletion() *Completion {
	return &Completion{
		ID:        row.ID,
		HabitID:   row.HabitID,
		Day:       time.Unix(row.Day, 0),
		CreatedAt: time.UnixMilli(row.CreatedAt),
	}
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// # Habits

func (repository *SQLiteRepository) CreateHabit(context context.Context, habit *Habit) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		schema.Habits.Table, habitColumns,
	)

	_, err := repository.db.ExecContext(context, query,
		habit.ID, habit.UserID, habit.Title, nullable(habit.Description), habit.Color,
		habit.CreatedAt.UnixMilli(), habit.UpdatedAt.UnixMilli(),
	)
	return dberr.Wrap(err, "insert_habit")
}

func (repository *SQLiteRepository) FindHabitByID(context context.Context, id string) (*Habit, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`,
		habitColumns, schema.Habits.Table, schema.Habits.ID,
	)

	var row habitRow
	if err := repository.db.GetContext(context, &row, query, id); err != nil {
		return nil, dberr.Wrap(err, "find_habit")
	}
	return row.toHabit(), nil
}

func (repository *SQLiteRepository) ListHabitsByOwner(context context.Context, userID string) ([]*Habit, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ? ORDER BY %s DESC, %s DESC`,
		habitColumns, schema.Habits.Table, schema.Habits.UserID, schema.Habits.CreatedAt, schema.Habits.ID,
	)

	var rows []habitRow
	if err := repository.db.SelectContext(context, &rows, query, userID); err != nil {
		return nil, dberr.Wrap(err, "list_habits")
	}

	return slice.Map(rows, habitRow.toHabit), nil
}

func (repository *SQLiteRepository) UpdateHabit(context context.Context, habit *Habit) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = ?, %s = ?, %s = ?, %s = ? WHERE %s = ? AND %s = ?`,
		schema.Habits.Table,
		schema.Habits.Title, schema.Habits.Description, schema.Habits.Color, schema.Habits.UpdatedAt,
		schema.Habits.ID, schema.Habits.UserID,
	)

	result, err := repository.db.ExecContext(context, query,
		habit.Title, nullable(habit.Description), habit.Color, habit.UpdatedAt.UnixMilli(),
		habit.ID, habit.UserID,
	)
	return requireAffected(result, err, "update_habit")
}

func (repository *SQLiteRepository) DeleteHabit(context context.Context, userID, habitID string) error {
	tx, err := repository.db.BeginTxx(context, nil)
	if err != nil {
		return dberr.Wrap(err, "delete_habit_begin")
	}
	defer func() { _ = tx.Rollback() }()

	// Explicit child delete; the foreign key cascade covers it too when the
	// connection has foreign_keys enabled.
	deleteCompletions := fmt.Sprintf(`
		DELETE FROM %s WHERE %s IN (SELECT %s FROM %s WHERE %s = ? AND %s = ?)`,
		schema.Completions.Table, schema.Completions.HabitID,
		schema.Habits.ID, schema.Habits.Table, schema.Habits.ID, schema.Habits.UserID,
	)
	if _, err := tx.ExecContext(context, deleteCompletions, habitID, userID); err != nil {
		return dberr.Wrap(err, "delete_habit_completions")
	}

	deleteHabit := fmt.Sprintf(`DELETE FROM %s WHERE %s = ? AND %s = ?`,
		schema.Habits.Table, schema.Habits.ID, schema.Habits.UserID,
	)
	result, err := tx.ExecContext(context, deleteHabit, habitID, userID)
	if err := requireAffected(result, err, "delete_habit"); err != nil {
		return err
	}

	return dberr.Wrap(tx.Commit(), "delete_habit_commit")
}

// # Completions

func (repository *SQLiteRepository) RecordCompletion(context context.Context, userID string, completion *Completion) (*Completion, error) {
	// The WHERE clause is mandatory here: it keeps SQLite from parsing
	// ON CONFLICT as a join constraint.
	insert := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s)
		SELECT ?, h.%[4]s, ?, ?
		FROM %[3]s h
		WHERE h.%[4]s = ? AND h.%[5]s = ?
		ON CONFLICT (%[6]s, %[7]s) DO NOTHING`,
		schema.Completions.Table, completionColumns,
		schema.Habits.Table, schema.Habits.ID, schema.Habits.UserID,
		schema.Completions.HabitID, schema.Completions.Day,
	)

	if _, err := repository.db.ExecContext(context, insert,
		completion.ID, completion.Day.Unix(), completion.CreatedAt.UnixMilli(), completion.HabitID, userID,
	); err != nil {
		return nil, dberr.Wrap(err, "insert_completion")
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s FROM %s c
		JOIN %s h ON h.%s = c.%s
		WHERE c.%s = ? AND c.%s = ? AND h.%s = ?`,
		schema.Qualified("c", schema.Completions.Columns()...), schema.Completions.Table,
		schema.Habits.Table, schema.Habits.ID, schema.Completions.HabitID,
		schema.Completions.HabitID, schema.Completions.Day, schema.Habits.UserID,
	)

	var row completionRow
	if err := repository.db.GetContext(context, &row, selectQuery, completion.HabitID, completion.Day.Unix(), userID); err != nil {
		return nil, dberr.Wrap(err, "find_completion")
	}
	return row.toCompletion(), nil
}

func (repository *SQLiteRepository) DeleteCompletions(context context.Context, userID, habitID string, start, end time.Time) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = ? AND %s >= ? AND %s < ?
		  AND EXISTS (SELECT 1 FROM %s h WHERE h.%s = ? AND h.%s = ?)`,
		schema.Completions.Table,
		schema.Completions.HabitID, schema.Completions.Day, schema.Completions.Day,
		schema.Habits.Table, schema.Habits.ID, schema.Habits.UserID,
	)

	result, err := repository.db.ExecContext(context, query, habitID, start.Unix(), end.Unix(), habitID, userID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_completions")
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, dberr.Wrap(err, "delete_completions")
	}
	return removed, nil
}

func (repository *SQLiteRepository) ListCompletions(context context.Context, habitID string, limit int) ([]*Completion, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ? ORDER BY %s DESC`,
		completionColumns, schema.Completions.Table, schema.Completions.HabitID, schema.Completions.Day,
	)
	args := []any{habitID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	return repository.selectCompletions(context, "list_completions", query, args...)
}

func (repository *SQLiteRepository) ListCompletionsByOwner(context context.Context, userID string) ([]*Completion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s c
		JOIN %s h ON h.%s = c.%s
		WHERE h.%s = ?
		ORDER BY c.%s DESC`,
		schema.Qualified("c", schema.Completions.Columns()...), schema.Completions.Table,
		schema.Habits.Table, schema.Habits.ID, schema.Completions.HabitID,
		schema.Habits.UserID, schema.Completions.Day,
	)

	return repository.selectCompletions(context, "list_owner_completions", query, userID)
}

func (repository *SQLiteRepository) selectCompletions(context context.Context, action, query string, args ...any) ([]*Completion, error) {
	var rows []completionRow
	if err := repository.db.SelectContext(context, &rows, query, args...); err != nil {
		return nil, dberr.Wrap(err, action)
	}

	return slice.Map(rows, completionRow.toCompletion), nil
}

// requireAffected maps a zero-row write to dberr.ErrNotFound.
func requireAffected(result sql.Result, err error, action string) error {
	if err != nil {
		return dberr.Wrap(err, action)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return dberr.Wrap(err, action)
	}
	if affected == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
