package store

import (
	"context"
	"fmt"

	"github.com/roach88/registry/internal/domain"
)

// InsertTicket writes a ticket. The registration must exist.
func (q *Queries) InsertTicket(ctx context.Context, t domain.Ticket) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO tickets (tno, regno, fine, violation, vdate)
		VALUES (?, ?, ?, ?, ?)
	`, t.TNo, t.RegNo, t.Fine, t.Violation, domain.FormatDate(t.VDate))
	return classify("insert ticket", err)
}

// GetTicket reads a ticket by number.
// Returns ErrNotFound if no such ticket exists.
func (q *Queries) GetTicket(ctx context.Context, tno int64) (domain.Ticket, error) {
	var t domain.Ticket
	var vdate string
	err := q.db.QueryRowContext(ctx, `
		SELECT tno, regno, fine, violation, vdate FROM tickets WHERE tno = ?
	`, tno).Scan(&t.TNo, &t.RegNo, &t.Fine, &t.Violation, &vdate)
	if err != nil {
		return domain.Ticket{}, classify("get ticket", err)
	}
	if t.VDate, err = parseDate("vdate", vdate); err != nil {
		return domain.Ticket{}, classify("get ticket", err)
	}
	return t, nil
}

// UpdateFine sets a ticket's outstanding balance.
// Returns ErrNotFound if no such ticket exists.
func (q *Queries) UpdateFine(ctx context.Context, tno, fine int64) error {
	res, err := q.db.ExecContext(ctx, `UPDATE tickets SET fine = ? WHERE tno = ?`, fine, tno)
	if err != nil {
		return classify("update fine", err)
	}
	return requireOneRow("update fine", res)
}

// InsertPayment records a payment and returns its generated id.
func (q *Queries) InsertPayment(ctx context.Context, p domain.Payment) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO payments (tno, pdate, amount) VALUES (?, ?, ?)
	`, p.TNo, domain.FormatDate(p.PDate), p.Amount)
	if err != nil {
		return 0, classify("insert payment", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert payment: last insert id: %w", err)
	}
	return id, nil
}

// PaymentsForTicket returns a ticket's payments in the order they were made.
func (q *Queries) PaymentsForTicket(ctx context.Context, tno int64) ([]domain.Payment, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, tno, pdate, amount FROM payments
		WHERE tno = ?
		ORDER BY id ASC
	`, tno)
	if err != nil {
		return nil, fmt.Errorf("payments for ticket: %w", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var p domain.Payment
		var pdate string
		if err := rows.Scan(&p.ID, &p.TNo, &pdate, &p.Amount); err != nil {
			return nil, fmt.Errorf("payments for ticket: %w", err)
		}
		if p.PDate, err = parseDate("pdate", pdate); err != nil {
			return nil, fmt.Errorf("payments for ticket: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("payments for ticket: iterate: %w", err)
	}
	return payments, nil
}

// CountTicketsByOwner counts tickets across every registration the person holds.
func (q *Queries) CountTicketsByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(t.tno)
		FROM tickets t
		JOIN registrations r ON r.regno = t.regno
		WHERE r.owner_id = ?
	`, ownerID).Scan(&n)
	if err != nil {
		return 0, classify("count tickets", err)
	}
	return n, nil
}

// TicketDetailsByOwner lists tickets across every registration the person
// holds, newest violation first, with the vehicle's make and model.
func (q *Queries) TicketDetailsByOwner(ctx context.Context, ownerID string) ([]domain.TicketDetail, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT t.tno, t.regno, t.fine, t.violation, t.vdate, v.make, v.model
		FROM tickets t
		JOIN registrations r ON r.regno = t.regno
		JOIN vehicles v ON v.vin = r.vin
		WHERE r.owner_id = ?
		ORDER BY t.vdate DESC, t.tno DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ticket details: %w", err)
	}
	defer rows.Close()

	details := []domain.TicketDetail{}
	for rows.Next() {
		var d domain.TicketDetail
		var vdate string
		if err := rows.Scan(&d.TNo, &d.RegNo, &d.Fine, &d.Violation, &vdate, &d.Make, &d.Model); err != nil {
			return nil, fmt.Errorf("ticket details: %w", err)
		}
		if d.VDate, err = parseDate("vdate", vdate); err != nil {
			return nil, fmt.Errorf("ticket details: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ticket details: iterate: %w", err)
	}
	return details, nil
}
