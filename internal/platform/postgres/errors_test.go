package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/studystack/studystack-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil passes through", err: nil, want: nil},
		{name: "no rows becomes not found", err: sql.ErrNoRows, want: store.ErrNotFound},
		{
			name: "unique violation becomes duplicate",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "decks_pkey"},
			want: store.ErrDuplicate,
		},
		{
			name: "foreign key violation becomes invalid entity",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "fk_card"},
			want: store.ErrInvalidEntity,
		},
		{
			name: "check violation becomes invalid entity",
			err:  &pgconn.PgError{Code: "23514", ConstraintName: "mastery_range"},
			want: store.ErrInvalidEntity,
		},
		{
			name: "not null violation becomes invalid entity",
			err:  &pgconn.PgError{Code: "23502", ColumnName: "name"},
			want: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapErrorPreservesUnknownErrors(t *testing.T) {
	t.Parallel()

	original := fmt.Errorf("network partition")
	assert.Equal(t, original, MapError(original))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
}
