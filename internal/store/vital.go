package store

import (
	"context"

	"github.com/roach88/registry/internal/domain"
)

// InsertBirth writes a birth registration. Newborn and both parents must
// already exist as persons.
func (q *Queries) InsertBirth(ctx context.Context, b domain.BirthRecord) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO births (regno, person_id, regdate, regplace, gender, father_id, mother_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		b.RegNo,
		b.NewbornID,
		domain.FormatDate(b.RegDate),
		b.RegPlace,
		string(b.Gender),
		b.FatherID,
		b.MotherID,
	)
	return classify("insert birth", err)
}

// GetBirth reads a birth registration with the names of everyone involved.
// Returns ErrNotFound if no such registration exists.
func (q *Queries) GetBirth(ctx context.Context, regno int64) (domain.BirthRecord, error) {
	var b domain.BirthRecord
	var regdate, gender string
	err := q.db.QueryRowContext(ctx, `
		SELECT b.regno, b.person_id, n.fname, n.lname, b.regdate, b.regplace, b.gender,
		       b.father_id, f.fname, f.lname, b.mother_id, m.fname, m.lname
		FROM births b
		JOIN persons n ON n.id = b.person_id
		JOIN persons f ON f.id = b.father_id
		JOIN persons m ON m.id = b.mother_id
		WHERE b.regno = ?
	`, regno).Scan(
		&b.RegNo, &b.NewbornID, &b.Newborn.First, &b.Newborn.Last, &regdate, &b.RegPlace, &gender,
		&b.FatherID, &b.Father.First, &b.Father.Last, &b.MotherID, &b.Mother.First, &b.Mother.Last,
	)
	if err != nil {
		return domain.BirthRecord{}, classify("get birth", err)
	}
	if b.RegDate, err = parseDate("regdate", regdate); err != nil {
		return domain.BirthRecord{}, classify("get birth", err)
	}
	b.Gender = domain.Gender(gender)
	return b, nil
}

// InsertMarriage writes a marriage registration. Both partners must exist.
func (q *Queries) InsertMarriage(ctx context.Context, m domain.MarriageRecord) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO marriages (regno, regdate, regplace, p1_id, p2_id)
		VALUES (?, ?, ?, ?, ?)
	`,
		m.RegNo,
		domain.FormatDate(m.RegDate),
		m.RegPlace,
		m.Partner1ID,
		m.Partner2ID,
	)
	return classify("insert marriage", err)
}

// GetMarriage reads a marriage registration with both partners' names.
// Returns ErrNotFound if no such registration exists.
func (q *Queries) GetMarriage(ctx context.Context, regno int64) (domain.MarriageRecord, error) {
	var m domain.MarriageRecord
	var regdate string
	err := q.db.QueryRowContext(ctx, `
		SELECT m.regno, m.regdate, m.regplace, m.p1_id, a.fname, a.lname, m.p2_id, b.fname, b.lname
		FROM marriages m
		JOIN persons a ON a.id = m.p1_id
		JOIN persons b ON b.id = m.p2_id
		WHERE m.regno = ?
	`, regno).Scan(
		&m.RegNo, &regdate, &m.RegPlace,
		&m.Partner1ID, &m.Partner1.First, &m.Partner1.Last,
		&m.Partner2ID, &m.Partner2.First, &m.Partner2.Last,
	)
	if err != nil {
		return domain.MarriageRecord{}, classify("get marriage", err)
	}
	if m.RegDate, err = parseDate("regdate", regdate); err != nil {
		return domain.MarriageRecord{}, classify("get marriage", err)
	}
	return m, nil
}
