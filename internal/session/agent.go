package session

import (
	"context"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/registry"
	"github.com/roach88/registry/internal/report"
	"github.com/roach88/registry/internal/validate"
)

func (s *Session) agentCommands() []command {
	return []command{
		{"a", "Register a birth", s.registerBirth},
		{"b", "Register a marriage", s.registerMarriage},
		{"c", "Renew a vehicle registration", s.renewRegistration},
		{"d", "Process a bill of sale", s.billOfSale},
		{"e", "Process a payment", s.processPayment},
		{"f", "Get a driver abstract", s.driverAbstract},
		{"g", "View users", s.view("users")},
		{"h", "View persons", s.view("persons")},
		{"i", "View births", s.view("births")},
		{"j", "View marriages", s.view("marriages")},
		{"k", "View vehicle registrations", s.view("registrations")},
		{"l", "View tickets", s.view("tickets")},
		{"m", "View payments", s.view("payments")},
	}
}

func (s *Session) registerBirth(ctx context.Context) error {
	var (
		req registry.BirthRequest
		err error
	)
	if req.Newborn, err = s.askName("Newborn's"); err != nil {
		return err
	}
	if req.Gender, err = askValid(s.p, "Gender (M/F): ", validate.Gender); err != nil {
		return err
	}
	if req.BirthDate, err = askValid(s.p, "Birth date (YYYY-MM-DD): ", field(validate.Date, "birth date")); err != nil {
		return err
	}
	if req.BirthPlace, err = askValid(s.p, "Birth place: ", field(validate.Place, "birth place")); err != nil {
		return err
	}
	if req.Father, err = s.askName("Father's"); err != nil {
		return err
	}
	if req.Mother, err = s.askName("Mother's"); err != nil {
		return err
	}

	b, err := s.svc.RegisterBirth(ctx, s.user, req, s)
	if err != nil {
		return err
	}
	s.printf("\n%s Birth registered %s\n", banner, banner)
	s.printf("Registration %d: %s, born to %s and %s\n", b.RegNo, b.Newborn, b.Mother, b.Father)

	newborn, err := s.svc.Person(ctx, b.NewbornID)
	if err != nil {
		return err
	}
	s.printf("Recorded at %s, phone %s\n", newborn.Address, newborn.Phone)
	return nil
}

func (s *Session) registerMarriage(ctx context.Context) error {
	var (
		req registry.MarriageRequest
		err error
	)
	if req.Partner1, err = s.askName("Partner 1's"); err != nil {
		return err
	}
	if req.Partner2, err = s.askName("Partner 2's"); err != nil {
		return err
	}

	m, err := s.svc.RegisterMarriage(ctx, s.user, req, s)
	if err != nil {
		return err
	}
	s.printf("\n%s Marriage registered %s\n", banner, banner)
	s.printf("Registration %d: %s and %s\n", m.RegNo, m.Partner1, m.Partner2)
	return nil
}

func (s *Session) renewRegistration(ctx context.Context) error {
	regno, err := askValid(s.p, "Registration number: ", field(validate.Number, "registration number"))
	if err != nil {
		return err
	}
	r, err := s.svc.RenewRegistration(ctx, regno)
	if err != nil {
		return err
	}
	report.Renewal(s.out, r)
	return nil
}

func (s *Session) billOfSale(ctx context.Context) error {
	var (
		req registry.TransferRequest
		err error
	)
	if req.VIN, err = askValid(s.p, "Vehicle VIN: ", field(validate.Text, "vin")); err != nil {
		return err
	}
	if req.CurrentOwner, err = s.askName("Current owner's"); err != nil {
		return err
	}
	if req.NewOwner, err = s.askName("New owner's"); err != nil {
		return err
	}

	reg, err := s.svc.TransferOwnership(ctx, req, s)
	if err != nil {
		return err
	}
	s.printf("\n%s Bill of sale processed %s\n", banner, banner)
	s.printf("Registration %d: plate %s now owned by %s, expires %s\n",
		reg.RegNo, reg.Plate, reg.Owner, domain.FormatDate(reg.Expiry))
	return nil
}

// processPayment reads one amount; a malformed amount or "exit" rejects
// the payment instead of asking again.
func (s *Session) processPayment(ctx context.Context) error {
	tno, err := askValid(s.p, "Ticket number: ", field(validate.Number, "ticket number"))
	if err != nil {
		return err
	}
	t, err := s.svc.LookupTicket(ctx, tno)
	if err != nil {
		return err
	}
	s.printf("Ticket %d: %s on %s, outstanding balance %d\n",
		t.TNo, t.Violation, domain.FormatDate(t.VDate), t.Fine)
	payments, err := s.svc.TicketPayments(ctx, tno)
	if err != nil {
		return err
	}
	if len(payments) > 0 {
		s.printf("Payments so far:\n")
		for _, p := range payments {
			s.printf("  %s  paid %d\n", domain.FormatDate(p.PDate), p.Amount)
		}
	}

	raw, err := s.p.ask("Amount to pay (type exit to cancel): ")
	if err != nil {
		return err
	}
	amount, err := validate.Amount(raw)
	if err != nil {
		return err
	}
	rcpt, err := s.svc.ProcessPayment(ctx, tno, amount)
	if err != nil {
		return err
	}
	s.printf("\n%s Payment of %d applied %s\n", banner, rcpt.Payment.Amount, banner)
	s.printf("Outstanding balance: %d\n", rcpt.Balance)
	return nil
}

func (s *Session) driverAbstract(ctx context.Context) error {
	name, err := s.askName("Driver's")
	if err != nil {
		return err
	}
	detailed, err := askValid(s.p, "Do you want a comprehensive ticket report? (y/n): ", yesNo)
	if err != nil {
		return err
	}
	a, err := s.svc.DriverAbstract(ctx, name, detailed, s)
	if err != nil {
		return err
	}
	s.printf("\n")
	report.Abstract(s.out, a)
	return nil
}

func (s *Session) view(table string) func(context.Context) error {
	return func(ctx context.Context) error {
		t, err := s.svc.List(ctx, table)
		if err != nil {
			return err
		}
		s.printf("\n")
		report.Table(s.out, t)
		return nil
	}
}
