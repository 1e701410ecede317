package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbranch/crud-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{
			name:    "nil stays nil",
			err:     nil,
			wantErr: nil,
		},
		{
			name:    "no rows becomes not found",
			err:     sql.ErrNoRows,
			wantErr: store.ErrNotFound,
		},
		{
			name:    "wrapped no rows becomes not found",
			err:     fmt.Errorf("scan: %w", sql.ErrNoRows),
			wantErr: store.ErrNotFound,
		},
		{
			name:    "unique violation becomes duplicate",
			err:     &pgconn.PgError{Code: "23505"},
			wantErr: store.ErrDuplicate,
		},
		{
			name:    "foreign key violation becomes invalid entity",
			err:     &pgconn.PgError{Code: "23503", ConstraintName: "contacts_organization_id_fkey"},
			wantErr: store.ErrInvalidEntity,
		},
		{
			name:    "check violation becomes invalid entity",
			err:     &pgconn.PgError{Code: "23514"},
			wantErr: store.ErrInvalidEntity,
		},
		{
			name:    "not null violation becomes invalid entity",
			err:     &pgconn.PgError{Code: "23502", ColumnName: "email"},
			wantErr: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tt.err)
			if tt.wantErr == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.wantErr)
		})
	}
}

func TestMapError_UnknownErrorPassesThrough(t *testing.T) {
	t.Parallel()

	err := errors.New("connection refused")
	assert.Equal(t, err, MapError(err))

	pgErr := &pgconn.PgError{Code: "57014"} // query_canceled
	assert.Equal(t, error(pgErr), MapError(pgErr))
}

func TestIsViolationHelpers(t *testing.T) {
	t.Parallel()

	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	notFound := errors.New("target not found")

	t.Run("affected rows pass", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), notFound))
	})

	t.Run("zero rows return the not-found error", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), notFound), notFound)
	})

	t.Run("result errors propagate", func(t *testing.T) {
		t.Parallel()
		result := sqlmock.NewErrorResult(errors.New("driver broke"))
		err := CheckRowsAffected(result, notFound)
		require.Error(t, err)
		assert.NotErrorIs(t, err, notFound)
	})

	t.Run("nil result errors", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, CheckRowsAffected(nil, notFound))
	})
}
