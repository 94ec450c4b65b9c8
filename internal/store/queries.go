package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/registry/internal/domain"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries holds the typed reads and writes shared by Store and Tx.
type Queries struct {
	db dbtx
}

// Empty reports whether the registry holds no persons and no vehicles.
func (q *Queries) Empty(ctx context.Context) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM persons) + (SELECT COUNT(*) FROM vehicles)
	`).Scan(&n)
	if err != nil {
		return false, classify("count records", err)
	}
	return n == 0, nil
}

// Table is a generic result set with every cell rendered as text.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ReadTable runs a query and renders every cell as text. NULL renders as "".
// Returns an empty (not nil) Rows slice when nothing matches.
func (q *Queries) ReadTable(ctx context.Context, query string, args ...any) (Table, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Table{}, fmt.Errorf("read table: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Table{}, fmt.Errorf("read table: columns: %w", err)
	}

	out := Table{Columns: cols, Rows: [][]string{}}
	for rows.Next() {
		cells := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Table{}, fmt.Errorf("read table: scan: %w", err)
		}
		row := make([]string, len(cols))
		for i, c := range cells {
			row[i] = c.String
		}
		out.Rows = append(out.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return Table{}, fmt.Errorf("read table: iterate: %w", err)
	}
	return out, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// parseDate converts a stored ISO date column.
func parseDate(column, value string) (time.Time, error) {
	t, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("column %s: %w", column, err)
	}
	return t, nil
}
