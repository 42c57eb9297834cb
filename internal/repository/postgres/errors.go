package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"job-board-backend/internal/domain"
)

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB is the part of *pgxpool.Pool the repositories use.
type DB interface {
	querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// lockRow takes a FOR UPDATE lock on the row selected by query. A missing
// row is ErrNotFound.
func lockRow(ctx context.Context, q querier, query string, id int64) error {
	var locked int64
	return mapError(q.QueryRow(ctx, query, id).Scan(&locked))
}

// execAll runs each statement with id as its only argument.
func execAll(ctx context.Context, q querier, id int64, stmts ...string) error {
	for _, stmt := range stmts {
		if _, err := q.Exec(ctx, stmt, id); err != nil {
			return mapError(err)
		}
	}
	return nil
}

// mapError translates driver errors into domain sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return domain.ErrConflict
		case pgForeignKeyViolation:
			return domain.ErrNotFound
		}
	}
	return err
}
