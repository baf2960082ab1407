package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/lib/pq"
)

// queryer is satisfied by both *sql.DB and *sql.Tx so read helpers can run
// inside or outside a unit of work.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func execRequiredRows(ctx context.Context, q queryer, query string, args ...any) (int64, error) {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", commons.ErrPersistence, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read rows affected: %w", err)
	}
	if rows == 0 {
		return 0, commons.ErrRecordNotFound
	}
	return rows, nil
}

// notFound turns sql.ErrNoRows into commons.ErrRecordNotFound and wraps
// anything else as a persistence failure.
func notFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return commons.ErrRecordNotFound
	}
	return fmt.Errorf("%s: %w: %v", op, commons.ErrPersistence, err)
}

func collect[T any](rows *sql.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
