package store

import (
	"context"
	"fmt"

	"github.com/roach88/registry/internal/domain"
)

const personColumns = `id, fname, lname, bdate, bplace, address, phone`

// InsertPerson writes a new person row. p.ID must already be assigned.
func (q *Queries) InsertPerson(ctx context.Context, p domain.Person) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO persons (`+personColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		p.Name.First,
		p.Name.Last,
		domain.FormatDate(p.BirthDate),
		p.BirthPlace,
		p.Address,
		p.Phone,
	)
	return classify("insert person", err)
}

// GetPerson reads a person by id.
// Returns ErrNotFound if no such person exists.
func (q *Queries) GetPerson(ctx context.Context, id string) (domain.Person, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+personColumns+` FROM persons WHERE id = ?
	`, id)
	p, err := scanPerson(row)
	if err != nil {
		return domain.Person{}, classify("get person", err)
	}
	return p, nil
}

// FindPersonsByName returns every person with exactly this name pair
// (case-sensitive), oldest id first. UUIDv7 ids sort by creation time.
func (q *Queries) FindPersonsByName(ctx context.Context, name domain.NamePair) ([]domain.Person, error) {
	return q.findPersons(ctx, "find persons", `
		SELECT `+personColumns+` FROM persons
		WHERE fname = ? AND lname = ?
		ORDER BY id ASC
	`, name.First, name.Last)
}

// FindPersonsByNameFold is FindPersonsByName with case-insensitive matching.
func (q *Queries) FindPersonsByNameFold(ctx context.Context, name domain.NamePair) ([]domain.Person, error) {
	return q.findPersons(ctx, "find persons (case-insensitive)", `
		SELECT `+personColumns+` FROM persons
		WHERE fname = ? COLLATE NOCASE AND lname = ? COLLATE NOCASE
		ORDER BY id ASC
	`, name.First, name.Last)
}

func (q *Queries) findPersons(ctx context.Context, op, query string, args ...any) ([]domain.Person, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	persons := []domain.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate: %w", op, err)
	}
	return persons, nil
}

func scanPerson(s scanner) (domain.Person, error) {
	var p domain.Person
	var bdate string
	if err := s.Scan(&p.ID, &p.Name.First, &p.Name.Last, &bdate, &p.BirthPlace, &p.Address, &p.Phone); err != nil {
		return domain.Person{}, err
	}
	d, err := parseDate("bdate", bdate)
	if err != nil {
		return domain.Person{}, err
	}
	p.BirthDate = d
	return p, nil
}
