package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/registry/internal/domain"
)

const registrationSelect = `
		SELECT r.regno, r.regdate, r.expiry, r.plate, r.vin, r.owner_id, p.fname, p.lname
		FROM registrations r
		JOIN persons p ON p.id = r.owner_id`

// InsertVehicle writes a vehicle row.
func (q *Queries) InsertVehicle(ctx context.Context, v domain.Vehicle) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO vehicles (vin, make, model, year, color)
		VALUES (?, ?, ?, ?, ?)
	`, v.VIN, v.Make, v.Model, v.Year, v.Color)
	return classify("insert vehicle", err)
}

// GetVehicle reads a vehicle by VIN.
// Returns ErrNotFound if no such vehicle exists.
func (q *Queries) GetVehicle(ctx context.Context, vin string) (domain.Vehicle, error) {
	var v domain.Vehicle
	err := q.db.QueryRowContext(ctx, `
		SELECT vin, make, model, year, color FROM vehicles WHERE vin = ?
	`, vin).Scan(&v.VIN, &v.Make, &v.Model, &v.Year, &v.Color)
	if err != nil {
		return domain.Vehicle{}, classify("get vehicle", err)
	}
	return v, nil
}

// InsertRegistration writes a registration row. Vehicle and owner must exist.
func (q *Queries) InsertRegistration(ctx context.Context, r domain.Registration) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO registrations (regno, regdate, expiry, plate, vin, owner_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		r.RegNo,
		domain.FormatDate(r.RegDate),
		domain.FormatDate(r.Expiry),
		r.Plate,
		r.VIN,
		r.OwnerID,
	)
	return classify("insert registration", err)
}

// GetRegistration reads a registration with its owner's name.
// Returns ErrNotFound if no such registration exists.
func (q *Queries) GetRegistration(ctx context.Context, regno int64) (domain.Registration, error) {
	row := q.db.QueryRowContext(ctx, registrationSelect+`
		WHERE r.regno = ?
	`, regno)
	r, err := scanRegistration(row)
	if err != nil {
		return domain.Registration{}, classify("get registration", err)
	}
	return r, nil
}

// LatestRegistrationForVIN returns the registration of vin with the latest
// expiry; ties go to the highest regno.
// Returns ErrNotFound if the vehicle has never been registered.
func (q *Queries) LatestRegistrationForVIN(ctx context.Context, vin string) (domain.Registration, error) {
	row := q.db.QueryRowContext(ctx, registrationSelect+`
		WHERE r.vin = ?
		ORDER BY r.expiry DESC, r.regno DESC
		LIMIT 1
	`, vin)
	r, err := scanRegistration(row)
	if err != nil {
		return domain.Registration{}, classify("latest registration", err)
	}
	return r, nil
}

// RegistrationsByOwner returns every registration held by a person,
// ordered by regno.
func (q *Queries) RegistrationsByOwner(ctx context.Context, ownerID string) ([]domain.Registration, error) {
	rows, err := q.db.QueryContext(ctx, registrationSelect+`
		WHERE r.owner_id = ?
		ORDER BY r.regno ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("registrations by owner: %w", err)
	}
	defer rows.Close()

	regs := []domain.Registration{}
	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("registrations by owner: %w", err)
		}
		regs = append(regs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("registrations by owner: iterate: %w", err)
	}
	return regs, nil
}

// UpdateExpiry sets a registration's expiry date.
// Returns ErrNotFound if no row was updated.
func (q *Queries) UpdateExpiry(ctx context.Context, regno int64, expiry time.Time) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE registrations SET expiry = ? WHERE regno = ?
	`, domain.FormatDate(expiry), regno)
	if err != nil {
		return classify("update expiry", err)
	}
	return requireOneRow("update expiry", res)
}

// ReassignRegistration rewrites a registration in place for a new owner:
// new regno, owner, registration date and expiry. Tickets issued against
// the old regno follow it (ON UPDATE CASCADE).
// Returns ErrNotFound if oldRegNo does not exist.
func (q *Queries) ReassignRegistration(ctx context.Context, oldRegNo int64, r domain.Registration) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE registrations
		SET regno = ?, owner_id = ?, regdate = ?, expiry = ?
		WHERE regno = ?
	`,
		r.RegNo,
		r.OwnerID,
		domain.FormatDate(r.RegDate),
		domain.FormatDate(r.Expiry),
		oldRegNo,
	)
	if err != nil {
		return classify("reassign registration", err)
	}
	return requireOneRow("reassign registration", res)
}

func scanRegistration(s scanner) (domain.Registration, error) {
	var r domain.Registration
	var regdate, expiry string
	if err := s.Scan(&r.RegNo, &regdate, &expiry, &r.Plate, &r.VIN, &r.OwnerID, &r.Owner.First, &r.Owner.Last); err != nil {
		return domain.Registration{}, err
	}
	var err error
	if r.RegDate, err = parseDate("regdate", regdate); err != nil {
		return domain.Registration{}, err
	}
	if r.Expiry, err = parseDate("expiry", expiry); err != nil {
		return domain.Registration{}, err
	}
	return r, nil
}

// requireOneRow turns a zero-row UPDATE into ErrNotFound.
func requireOneRow(op string, res interface{ RowsAffected() (int64, error) }) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
