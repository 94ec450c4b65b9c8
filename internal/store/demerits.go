package store

import (
	"context"
	"fmt"

	"github.com/roach88/registry/internal/domain"
)

// InsertDemeritNotice writes a demerit notice. At most one notice per
// person per date.
func (q *Queries) InsertDemeritNotice(ctx context.Context, d domain.DemeritNotice) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO demerit_notices (ddate, person_id, points, description)
		VALUES (?, ?, ?, ?)
	`, domain.FormatDate(d.Date), d.PersonID, d.Points, d.Description)
	return classify("insert demerit notice", err)
}

// DemeritNoticesForPerson returns a person's notices, newest first.
func (q *Queries) DemeritNoticesForPerson(ctx context.Context, personID string) ([]domain.DemeritNotice, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT d.ddate, d.person_id, p.fname, p.lname, d.points, d.description
		FROM demerit_notices d
		JOIN persons p ON p.id = d.person_id
		WHERE d.person_id = ?
		ORDER BY d.ddate DESC
	`, personID)
	if err != nil {
		return nil, fmt.Errorf("demerit notices: %w", err)
	}
	defer rows.Close()

	notices := []domain.DemeritNotice{}
	for rows.Next() {
		var d domain.DemeritNotice
		var ddate string
		if err := rows.Scan(&ddate, &d.PersonID, &d.Person.First, &d.Person.Last, &d.Points, &d.Description); err != nil {
			return nil, fmt.Errorf("demerit notices: %w", err)
		}
		if d.Date, err = parseDate("ddate", ddate); err != nil {
			return nil, fmt.Errorf("demerit notices: %w", err)
		}
		notices = append(notices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("demerit notices: iterate: %w", err)
	}
	return notices, nil
}
