package registry

import (
	"context"
	"math"
	"time"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/store"
	"github.com/roach88/registry/internal/validate"
)

// TicketRequest carries an officer's ticket. A zero VDate means today.
type TicketRequest struct {
	RegNo     int64
	VDate     time.Time
	Violation string
	Fine      int64
}

// IssueTicket records a ticket against a registration. Only officers may
// issue tickets. Ticket numbers are strictly increasing and unique.
func (s *Service) IssueTicket(ctx context.Context, actor domain.User, req TicketRequest) (domain.Ticket, error) {
	if err := authorize(actor, domain.RoleOfficer, "issue a ticket"); err != nil {
		return domain.Ticket{}, err
	}
	violation, err := validate.Text("violation", req.Violation)
	if err != nil {
		return domain.Ticket{}, err
	}
	if req.Fine < 0 {
		return domain.Ticket{}, domain.NewValidationError("fine", "must be a non-negative whole number")
	}
	if req.Fine > validate.MaxAmount {
		return domain.Ticket{}, domain.NewValidationError("fine", "must not exceed 1000000000")
	}

	var t domain.Ticket
	err = s.inTx(ctx, func(tx *store.Tx) error {
		if _, err := tx.GetRegistration(ctx, req.RegNo); err != nil {
			return notFound(err, "registration", req.RegNo)
		}
		tno, err := tx.NextNumber(ctx, store.SeqTickets)
		if err != nil {
			return err
		}
		t = domain.Ticket{
			TNo:       tno,
			RegNo:     req.RegNo,
			Fine:      req.Fine,
			Violation: violation,
			VDate:     dateOrToday(req.VDate, s.Today()),
		}
		return tx.InsertTicket(ctx, t)
	})
	if err != nil {
		return domain.Ticket{}, wrap("issue ticket", err)
	}

	s.log.Info("ticket issued",
		"tno", t.TNo,
		"regno", t.RegNo,
		"fine", t.Fine,
		"officer", actor.UID)
	return t, nil
}

// LookupTicket returns a ticket with its outstanding balance.
func (s *Service) LookupTicket(ctx context.Context, tno int64) (domain.Ticket, error) {
	t, err := s.store.GetTicket(ctx, tno)
	if err != nil {
		return domain.Ticket{}, wrap("lookup ticket", notFound(err, "ticket", tno))
	}
	return t, nil
}

// TicketPayments returns the payments made on a ticket, oldest first.
func (s *Service) TicketPayments(ctx context.Context, tno int64) ([]domain.Payment, error) {
	if _, err := s.store.GetTicket(ctx, tno); err != nil {
		return nil, wrap("ticket payments", notFound(err, "ticket", tno))
	}
	payments, err := s.store.PaymentsForTicket(ctx, tno)
	if err != nil {
		return nil, wrap("ticket payments", err)
	}
	return payments, nil
}

// Receipt is the outcome of a payment.
type Receipt struct {
	Payment domain.Payment `json:"payment"`
	Balance int64          `json:"balance"`
}

// ProcessPayment applies a payment dated today to a ticket. The fine is
// decremented by amount and may go negative; overpayment is accepted.
// amount is at most validate.MaxAmount.
// The balance update and the payment row are written together.
func (s *Service) ProcessPayment(ctx context.Context, tno, amount int64) (Receipt, error) {
	if amount <= 0 {
		return Receipt{}, domain.NewValidationError("amount", "must be a positive whole number")
	}
	if amount > validate.MaxAmount {
		return Receipt{}, domain.NewValidationError("amount", "must not exceed 1000000000")
	}

	var out Receipt
	err := s.inTx(ctx, func(tx *store.Tx) error {
		t, err := tx.GetTicket(ctx, tno)
		if err != nil {
			return notFound(err, "ticket", tno)
		}

		if t.Fine < math.MinInt64+amount {
			return domain.NewValidationError("amount", "balance would overflow")
		}
		balance := t.Fine - amount
		if err := tx.UpdateFine(ctx, tno, balance); err != nil {
			return err
		}
		p := domain.Payment{TNo: tno, PDate: s.Today(), Amount: amount}
		if p.ID, err = tx.InsertPayment(ctx, p); err != nil {
			return err
		}
		out = Receipt{Payment: p, Balance: balance}
		return nil
	})
	if err != nil {
		return Receipt{}, wrap("process payment", err)
	}

	s.log.Info("payment applied",
		"tno", tno,
		"amount", amount,
		"balance", out.Balance)
	return out, nil
}
