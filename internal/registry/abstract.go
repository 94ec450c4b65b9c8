package registry

import (
	"context"
	"time"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/store"
)

// RecentWindow is how far back the "recent" demerit totals look.
const RecentWindow = 730 * 24 * time.Hour

// Abstract is a driver's record.
type Abstract struct {
	Person        domain.Person         `json:"person"`
	Registrations int                   `json:"registrations"`
	TicketCount   int                   `json:"ticket_count"`
	Detailed      bool                  `json:"detailed"`
	Tickets       []domain.TicketDetail `json:"tickets,omitempty"`

	LifetimePoints  int `json:"lifetime_points"`
	LifetimeNotices int `json:"lifetime_notices"`

	// Cutoff is exclusive: only notices dated after it are recent.
	Cutoff        time.Time `json:"cutoff"`
	RecentPoints  int       `json:"recent_points"`
	RecentNotices int       `json:"recent_notices"`
}

// DriverAbstract compiles a driver's record. The name is matched without
// regard to case. detailed adds the per-ticket listing, newest violation
// first.
//
// The report is all-or-nothing: an unknown driver, or one who holds no
// registrations, fails with a not-found error and no partial output.
func (s *Service) DriverAbstract(ctx context.Context, name domain.NamePair, detailed bool, source PersonSource) (Abstract, error) {
	name, err := checkName("driver's", name)
	if err != nil {
		return Abstract{}, err
	}

	var out Abstract
	err = s.inTx(ctx, func(tx *store.Tx) error {
		p, err := findExisting(ctx, tx, name, true, source)
		if err != nil {
			return err
		}
		regs, err := tx.RegistrationsByOwner(ctx, p.ID)
		if err != nil {
			return err
		}
		if len(regs) == 0 {
			return domain.NewNotFoundError("registrations for driver", p.Name.String())
		}

		a := Abstract{Person: p, Registrations: len(regs), Detailed: detailed}
		if a.TicketCount, err = tx.CountTicketsByOwner(ctx, p.ID); err != nil {
			return err
		}
		if detailed {
			if a.Tickets, err = tx.TicketDetailsByOwner(ctx, p.ID); err != nil {
				return err
			}
		}

		notices, err := tx.DemeritNoticesForPerson(ctx, p.ID)
		if err != nil {
			return err
		}
		a.Cutoff = domain.DateOf(s.Today().Add(-RecentWindow))
		for _, n := range notices {
			a.LifetimePoints += n.Points
			a.LifetimeNotices++
			if n.Date.After(a.Cutoff) {
				a.RecentPoints += n.Points
				a.RecentNotices++
			}
		}
		out = a
		return nil
	})
	if err != nil {
		return Abstract{}, wrap("driver abstract", err)
	}

	s.log.Info("driver abstract compiled",
		"person", out.Person.ID,
		"tickets", out.TicketCount,
		"points", out.LifetimePoints)
	return out, nil
}
