// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package habit

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/habitrack/internal/platform/database/schema"
	"github.com/taibuivan/habitrack/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over a pgx pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL-backed Repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	habitColumns      = schema.List(schema.Habits.Columns()...)
	completionColumns = schema.List(schema.Completions.Columns()...)
)

func scanHabit(row pgx.Row) (*Habit, error) {
	habit := &Habit{}
	err := row.Scan(&habit.ID, &habit.UserID, &habit.Title, &habit.Description, &habit.Color, &habit.CreatedAt, &habit.UpdatedAt)
	return habit, err
}

func scanCompletion(row pgx.Row) (*Completion, error) {
	completion := &Completion{}
	err := row.Scan(&completion.ID, &completion.HabitID, &completion.Day, &completion.CreatedAt)
	return completion, err
}

func (repository *PostgresRepository) CreateHabit(context context.Context, habit *Habit) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.Habits.Table, habitColumns,
	)

	_, err := repository.db.Exec(context, query,
		habit.ID, habit.UserID, habit.Title, habit.Description, habit.Color, habit.CreatedAt, habit.UpdatedAt,
	)
	return dberr.Wrap(err, "insert_habit")
}

func (repository *PostgresRepository) FindHabitByID(context context.Context, id string) (*Habit, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		habitColumns, schema.Habits.Table, schema.Habits.ID,
	)

	habit, err := scanHabit(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_habit")
	}
	return habit, nil
}

func (repository *PostgresRepository) ListHabitsByOwner(context context.Context, userID string) ([]*Habit, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC, %s DESC`,
		habitColumns, schema.Habits.Table, schema.Habits.UserID, schema.Habits.CreatedAt, schema.Habits.ID,
	)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_habits")
	}
	defer rows.Close()

	habits := []*Habit{}
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_habit")
		}
		habits = append(habits, habit)
	}

	return habits, dberr.Wrap(rows.Err(), "list_habits")
}

func (repository *PostgresRepository) UpdateHabit(context context.Context, habit *Habit) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $3, %s = $4, %s = $5, %s = $6 WHERE %s = $1 AND %s = $2`,
		schema.Habits.Table,
		schema.Habits.Title, schema.Habits.Description, schema.Habits.Color, schema.Habits.UpdatedAt,
		schema.Habits.ID, schema.Habits.UserID,
	)

	tag, err := repository.db.Exec(context, query,
		habit.ID, habit.UserID, habit.Title, habit.Description, habit.Color, habit.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_habit")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteHabit(context context.Context, userID, habitID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Habits.Table, schema.Habits.ID, schema.Habits.UserID,
	)

	// completions go with it through ON DELETE CASCADE
	tag, err := repository.db.Exec(context, query, habitID, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_habit")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) RecordCompletion(context context.Context, userID string, completion *Completion) (*Completion, error) {
	insert := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s)
		SELECT $1, h.%[4]s, $3, $4
		FROM %[3]s h
		WHERE h.%[4]s = $2 AND h.%[5]s = $5
		ON CONFLICT (%[6]s, %[7]s) DO NOTHING`,
		schema.Completions.Table, completionColumns,
		schema.Habits.Table, schema.Habits.ID, schema.Habits.UserID,
		schema.Completions.HabitID, schema.Completions.Day,
	)

	if _, err := repository.db.Exec(context, insert,
		completion.ID, completion.HabitID, completion.Day, completion.CreatedAt, userID,
	); err != nil {
		return nil, dberr.Wrap(err, "insert_completion")
	}

	// Read back whichever row won, scoped by owner again.
	selectQuery := fmt.Sprintf(`
		SELECT %s FROM %s c
		JOIN %s h ON h.%s = c.%s
		WHERE c.%s = $1 AND c.%s = $2 AND h.%s = $3`,
		schema.Qualified("c", schema.Completions.Columns()...), schema.Completions.Table,
		schema.Habits.Table, schema.Habits.ID, schema.Completions.HabitID,
		schema.Completions.HabitID, schema.Completions.Day, schema.Habits.UserID,
	)

	stored, err := scanCompletion(repository.db.QueryRow(context, selectQuery, completion.HabitID, completion.Day, userID))
	if err != nil {
		return nil, dberr.Wrap(err, "find_completion")
	}
	return stored, nil
}

func (repository *PostgresRepository) DeleteCompletions(context context.Context, userID, habitID string, start, end time.Time) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1 AND %s >= $3 AND %s < $4
		  AND EXISTS (SELECT 1 FROM %s h WHERE h.%s = $1 AND h.%s = $2)`,
		schema.Completions.Table,
		schema.Completions.HabitID, schema.Completions.Day, schema.Completions.Day,
		schema.Habits.Table, schema.Habits.ID, schema.Habits.UserID,
	)

	tag, err := repository.db.Exec(context, query, habitID, userID, start, end)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_completions")
	}
	return tag.RowsAffected(), nil
}

func (repository *PostgresRepository) ListCompletions(context context.Context, habitID string, limit int) ([]*Completion, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		completionColumns, schema.Completions.Table, schema.Completions.HabitID, schema.Completions.Day,
	)
	args := []any{habitID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	return repository.queryCompletions(context, "list_completions", query, args...)
}

func (repository *PostgresRepository) ListCompletionsByOwner(context context.Context, userID string) ([]*Completion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s c
		JOIN %s h ON h.%s = c.%s
		WHERE h.%s = $1
		ORDER BY c.%s DESC`,
		schema.Qualified("c", schema.Completions.Columns()...), schema.Completions.Table,
		schema.Habits.Table, schema.Habits.ID, schema.Completions.HabitID,
		schema.Habits.UserID, schema.Completions.Day,
	)

	return repository.queryCompletions(context, "list_owner_completions", query, userID)
}

func (repository *PostgresRepository) queryCompletions(context context.Context, action, query string, args ...any) ([]*Completion, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	completions := []*Completion{}
	for rows.Next() {
		completion, err := scanCompletion(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_completion")
		}
		completions = append(completions, completion)
	}

	return completions, dberr.Wrap(rows.Err(), action)
}
