// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/taibuivan/habitrack/internal/platform/database/schema"
	"github.com/taibuivan/habitrack/internal/platform/dberr"
	"github.com/taibuivan/habitrack/pkg/pointer"
)

// SQLiteUserRepository implements [UserRepository] over an sqlx handle.
type SQLiteUserRepository struct {
	db *sqlx.DB
}

// NewSQLiteUserRepository creates a new SQLite implementation of the UserRepository.
func NewSQLiteUserRepository(db *sqlx.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

type userRow struct {
	ID           string         `db:"id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"passwordhash"`
	Name         string         `db:"name"`
	Tagline      sql.NullString `db:"tagline"`
	Image        sql.NullString `db:"image"`
	CreatedAt    int64          `db:"createdat"`
	UpdatedAt    int64          `db:"updatedat"`
}

func (row userRow) toUser() *User {
	user := &User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Name:         row.Name,
		CreatedAt:    time.UnixMilli(row.CreatedAt),
		UpdatedAt:    time.UnixMilli(row.UpdatedAt),
	}
	if row.Tagline.Valid {
		user.Tagline = pointer.To(row.Tagline.String)
	}
	if row.Image.Valid {
		user.Image = pointer.To(row.Image.String)
	}
	return user
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (repository *SQLiteUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		schema.Users.Table, userColumns,
	)

	_, err := repository.db.ExecContext(context, query,
		user.ID, user.Email, user.PasswordHash, user.Name,
		nullable(user.Tagline), nullable(user.Image),
		user.CreatedAt.UnixMilli(), user.UpdatedAt.UnixMilli(),
	)
	return dberr.Wrap(err, "insert_user")
}

func (repository *SQLiteUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findOne(context, "find_user_by_id", schema.Users.ID, id)
}

func (repository *SQLiteUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, "find_user_by_email", schema.Users.Email, email)
}

func (repository *SQLiteUserRepository) findOne(context context.Context, action, column, value string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`, userColumns, schema.Users.Table, column)

	var row userRow
	if err := repository.db.GetContext(context, &row, query, value); err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return row.toUser(), nil
}

func (repository *SQLiteUserRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = ?, %s = ?, %s = ?, %s = ?, %s = ? WHERE %s = ?`,
		schema.Users.Table,
		schema.Users.Email, schema.Users.Name, schema.Users.Tagline, schema.Users.Image, schema.Users.UpdatedAt,
		schema.Users.ID,
	)

	result, err := repository.db.ExecContext(context, query,
		user.Email, user.Name, nullable(user.Tagline), nullable(user.Image), user.UpdatedAt.UnixMilli(), user.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_user")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return dberr.Wrap(err, "update_user")
	}
	if affected == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
