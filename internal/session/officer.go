package session

import (
	"context"
	"strings"
	"time"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/registry"
	"github.com/roach88/registry/internal/report"
	"github.com/roach88/registry/internal/validate"
)

func (s *Session) officerCommands() []command {
	return []command{
		{"a", "Issue a ticket", s.issueTicket},
		{"b", "Find a car owner", s.findOwner},
		{"c", "View tickets", s.view("tickets")},
		{"d", "View vehicle registrations", s.view("registrations")},
	}
}

// issueTicket asks for a registration until one exists or the officer
// types exit, then records one ticket against it.
func (s *Session) issueTicket(ctx context.Context) error {
	var detail registry.RegistrationDetail
	for {
		raw, err := s.p.ask("Registration number (type exit to cancel): ")
		if err != nil {
			return err
		}
		if strings.EqualFold(strings.TrimSpace(raw), validate.ExitWord) {
			return nil
		}
		regno, err := validate.Number("registration number", raw)
		if err != nil {
			s.printf("Invalid input! %s\n", describe(err))
			continue
		}
		detail, err = s.svc.DescribeRegistration(ctx, regno)
		if domain.IsNotFound(err) {
			s.printf("Registration %d not found.\n", regno)
			continue
		}
		if err != nil {
			return err
		}
		break
	}

	v, r := detail.Vehicle, detail.Registration
	s.printf("Registration %d: %s %s %d %s, plate %s, owner %s\n",
		r.RegNo, v.Make, v.Model, v.Year, v.Color, r.Plate, r.Owner)

	req := registry.TicketRequest{RegNo: r.RegNo}
	var err error
	if req.VDate, err = askValid(s.p, "Violation date (YYYY-MM-DD, blank for today): ", optionalDate); err != nil {
		return err
	}
	if req.Violation, err = askValid(s.p, "Violation: ", field(validate.Text, "violation")); err != nil {
		return err
	}
	if req.Fine, err = askValid(s.p, "Fine amount: ", validate.Fine); err != nil {
		return err
	}

	t, err := s.svc.IssueTicket(ctx, s.user, req)
	if err != nil {
		return err
	}
	s.printf("\n%s Ticket %d issued %s\n", banner, t.TNo, banner)
	s.printf("%s on %s, fine %d\n", t.Violation, domain.FormatDate(t.VDate), t.Fine)
	return nil
}

// optionalDate leaves the date zero on a blank answer; the service then
// uses today.
func optionalDate(s string) (time.Time, error) {
	return validate.OptionalDate("violation date", s, time.Time{})
}

func (s *Session) findOwner(ctx context.Context) error {
	var (
		q   registry.OwnerQuery
		err error
	)
	if q.Make, err = s.p.ask("Make (blank for any): "); err != nil {
		return err
	}
	if q.Model, err = s.p.ask("Model (blank for any): "); err != nil {
		return err
	}
	if q.Year, err = askValid(s.p, "Year (blank for any): ", optionalYear); err != nil {
		return err
	}
	if q.Color, err = s.p.ask("Color (blank for any): "); err != nil {
		return err
	}
	if q.Plate, err = s.p.ask("Plate (blank for any): "); err != nil {
		return err
	}

	matches, err := s.svc.FindOwner(ctx, q)
	if err != nil {
		return err
	}
	s.printf("\n")
	switch {
	case len(matches) == 0:
		s.printf("No matching vehicles.\n")
	case len(matches) >= registry.SummaryThreshold:
		s.printf("%d matching vehicles:\n", len(matches))
		report.OwnerSummary(s.out, matches)
		n, err := askValid(s.p, "Which vehicle? ", pick(len(matches)))
		if err != nil {
			return err
		}
		report.OwnerDetail(s.out, matches[n-1])
	default:
		for _, m := range matches {
			report.OwnerDetail(s.out, m)
		}
	}
	return nil
}

func optionalYear(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return validate.Year(s)
}
