package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Sentinel errors for storage facts. Queries return these wrapped so the
// workflow layer can translate them into domain errors.
var (
	// ErrNotFound: the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict: a UNIQUE, CHECK or FOREIGN KEY constraint rejected a write.
	ErrConflict = errors.New("conflict")
)

// classify wraps err with ErrNotFound or ErrConflict when it is one of
// those facts, prefixing op for context.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%s: %w: %w", op, ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
