package store

import (
	"context"
	"fmt"
)

// Sequence names. Each numbered entity draws from its own sequence.
const (
	SeqBirths        = "births"
	SeqMarriages     = "marriages"
	SeqRegistrations = "registrations"
	SeqTickets       = "tickets"
)

// sequenceSources maps each sequence to the table and column it numbers.
var sequenceSources = []struct {
	name, table, column string
}{
	{SeqBirths, "births", "regno"},
	{SeqMarriages, "marriages", "regno"},
	{SeqRegistrations, "registrations", "regno"},
	{SeqTickets, "tickets", "tno"},
}

// SequenceNames lists every sequence in a fixed order.
func SequenceNames() []string {
	names := make([]string, len(sequenceSources))
	for i, src := range sequenceSources {
		names[i] = src.name
	}
	return names
}

// NextNumber issues the next value of a sequence. Committed values are
// strictly increasing; a number drawn in a transaction that rolls back is
// returned to the sequence along with everything else.
// Returns ErrNotFound for an unknown sequence name.
func (q *Queries) NextNumber(ctx context.Context, name string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `
		UPDATE sequences SET value = value + 1
		WHERE name = ?
		RETURNING value
	`, name).Scan(&n)
	if err != nil {
		return 0, classify(fmt.Sprintf("next number %q", name), err)
	}
	return n, nil
}

// CurrentNumber returns the last value issued by a sequence (0 if none).
func (q *Queries) CurrentNumber(ctx context.Context, name string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT value FROM sequences WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return 0, classify(fmt.Sprintf("current number %q", name), err)
	}
	return n, nil
}

// SyncSequences moves every sequence past the highest number already
// present in its table. Used after bulk loads that insert explicit numbers.
// Never moves a sequence backwards.
func (q *Queries) SyncSequences(ctx context.Context) error {
	for _, src := range sequenceSources {
		// Table and column names are package constants, not input.
		query := fmt.Sprintf(`
			UPDATE sequences
			SET value = max(value, (SELECT COALESCE(MAX(%s), 0) FROM %s))
			WHERE name = ?
		`, src.column, src.table)
		if _, err := q.db.ExecContext(ctx, query, src.name); err != nil {
			return fmt.Errorf("sync sequence %q: %w", src.name, err)
		}
	}
	return nil
}
