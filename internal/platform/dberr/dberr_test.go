// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/habitrack/internal/platform/apperr"
	"github.com/taibuivan/habitrack/internal/platform/dberr"
)

/*
TestWrap verifies how storage errors are classified into API errors.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"pgx no rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"sql no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), apperr.CodeNotFound},
		{"pg unique violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, apperr.CodeConflict},
		{"pg other", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, apperr.CodeInternal},
		{"unknown", errors.New("connection reset"), apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_action")
			assert.True(t, apperr.HasCode(wrapped, tt.code))
		})
	}
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
}

func TestWrap_InternalKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	wrapped := dberr.Wrap(cause, "habit_insert")

	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, apperr.As(wrapped).Cause.Error(), "habit_insert")
}
