package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want violation
	}{
		{"nil", nil, violationNone},
		{"plain error", errors.New("connection reset"), violationNone},
		{"pq unique", &pq.Error{Code: "23505"}, violationUnique},
		{"pq foreign key", &pq.Error{Code: "23503"}, violationForeignKey},
		{"pq check", &pq.Error{Code: "23514"}, violationOther},
		{"pq syntax", &pq.Error{Code: "42601"}, violationNone},
		{"pq wrapped", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), violationUnique},
		{"sqlite primary key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, violationUnique},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, violationUnique},
		{"sqlite foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, violationForeignKey},
		{"sqlite not null", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, violationOther},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, violationNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, constraintViolation(tt.err))
		})
	}
}

func TestClassifyWriteError(t *testing.T) {
	ctx := context.Background()
	repo := NewTrailRepository(newTestDB(t))
	require.NoError(t, repo.Create(ctx, sampleTrail(1, 10)))

	unclear := &pq.Error{Code: "23514"}

	t.Run("unclear violation on taken id", func(t *testing.T) {
		err := repo.classifyWriteError(ctx, sampleTrail(1, 10), unclear, true, "create")
		assert.ErrorIs(t, err, ErrDuplicateTrailID)
	})

	t.Run("unclear violation on unknown location", func(t *testing.T) {
		err := repo.classifyWriteError(ctx, sampleTrail(2, 999), unclear, true, "create")
		assert.ErrorIs(t, err, ErrUnknownLocation)
	})

	t.Run("unclear violation on update ignores id", func(t *testing.T) {
		err := repo.classifyWriteError(ctx, sampleTrail(1, 10), unclear, false, "update")
		assert.NotErrorIs(t, err, ErrDuplicateTrailID)
		assert.ErrorIs(t, err, unclear)
	})

	t.Run("persistence failure is wrapped", func(t *testing.T) {
		cause := errors.New("disk full")
		err := repo.classifyWriteError(ctx, sampleTrail(2, 10), cause, true, "create")
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "disk full")
	})
}
