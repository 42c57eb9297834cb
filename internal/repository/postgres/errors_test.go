package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"job-board-backend/internal/domain"
)

func TestMapError(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), domain.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation}, domain.ErrConflict},
		{"foreign key violation", &pgconn.PgError{Code: pgForeignKeyViolation}, domain.ErrNotFound},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	checkViolation := &pgconn.PgError{Code: "23514"}
	assert.Same(t, checkViolation, mapError(checkViolation))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now\\`, escapeLike(`50% off_now\`))
	assert.Equal(t, "golang", escapeLike("golang"))
}

func TestNormalizeSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL"}, normalizeSkills([]string{" Go ", "go", "", "SQL", "sql"}))
	assert.Empty(t, normalizeSkills(nil))
}

type fakeRow struct {
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *time.Time:
			*p = r.values[i].(time.Time)
		case *string:
			*p = r.values[i].(string)
		}
	}
	return nil
}

func TestPrefixScanner(t *testing.T) {
	added := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var (
		id    int64
		at    time.Time
		title string
	)
	s := prefixScanner{row: fakeRow{values: []any{int64(9), added, "Go developer"}}, prefix: []any{&id, &at}}

	assert.NoError(t, s.Scan(&title))
	assert.Equal(t, int64(9), id)
	assert.Equal(t, added, at)
	assert.Equal(t, "Go developer", title)
}
