package registry

import (
	"context"
	"strings"
	"time"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/store"
)

// RenewalBranch names the rule applied by a renewal.
type RenewalBranch string

const (
	// BranchExpiringToday: expiry is today; the new expiry is today + 1 year.
	BranchExpiringToday RenewalBranch = "expiring-today"

	// BranchExpired: expiry has passed; the new expiry is today + 1 year.
	BranchExpired RenewalBranch = "expired"

	// BranchStillValid: expiry is in the future; the new expiry is the old
	// expiry + 1 year, keeping the original cycle.
	BranchStillValid RenewalBranch = "still-valid"
)

// Renewal is the outcome of a successful renewal.
type Renewal struct {
	RegNo     int64         `json:"regno"`
	OldExpiry time.Time     `json:"old_expiry"`
	NewExpiry time.Time     `json:"new_expiry"`
	Branch    RenewalBranch `json:"branch"`
}

// NextExpiry applies the renewal rule to an expiry date.
// Renewing early keeps the cycle anchored on the old expiry; renewing on
// the day or late restarts it from today.
func NextExpiry(expiry, today time.Time) (time.Time, RenewalBranch) {
	expiry, today = domain.DateOf(expiry), domain.DateOf(today)
	switch {
	case expiry.Equal(today):
		return domain.AddYear(today), BranchExpiringToday
	case expiry.Before(today):
		return domain.AddYear(today), BranchExpired
	default:
		return domain.AddYear(expiry), BranchStillValid
	}
}

// RenewRegistration extends a registration by one year.
// Returns a not-found error if regno does not exist.
func (s *Service) RenewRegistration(ctx context.Context, regno int64) (Renewal, error) {
	var out Renewal
	err := s.inTx(ctx, func(tx *store.Tx) error {
		reg, err := tx.GetRegistration(ctx, regno)
		if err != nil {
			return notFound(err, "registration", regno)
		}

		newExpiry, branch := NextExpiry(reg.Expiry, s.Today())
		if err := tx.UpdateExpiry(ctx, regno, newExpiry); err != nil {
			return err
		}
		out = Renewal{RegNo: regno, OldExpiry: reg.Expiry, NewExpiry: newExpiry, Branch: branch}
		return nil
	})
	if err != nil {
		return Renewal{}, wrap("renew registration", err)
	}

	s.log.Info("registration renewed",
		"regno", regno,
		"branch", string(out.Branch),
		"expiry", domain.FormatDate(out.NewExpiry))
	return out, nil
}

// TransferRequest carries a bill of sale.
type TransferRequest struct {
	VIN          string
	CurrentOwner domain.NamePair
	NewOwner     domain.NamePair
}

// TransferOwnership processes a bill of sale.
//
// The vehicle's current registration (latest expiry) is rewritten in
// place for the new owner: a fresh registration number, registration date
// today and expiry one year out. Tickets follow the renumbered row.
//
// The transfer is refused, with nothing changed, when the vehicle or its
// registration is unknown, when the new owner is not on record, or when
// the claimed current owner is not the registered one.
func (s *Service) TransferOwnership(ctx context.Context, req TransferRequest, source PersonSource) (domain.Registration, error) {
	vin := strings.TrimSpace(req.VIN)
	if vin == "" {
		return domain.Registration{}, domain.NewValidationError("vin", "must not be empty")
	}
	claimed, err := checkName("current owner's", req.CurrentOwner)
	if err != nil {
		return domain.Registration{}, err
	}
	buyer, err := checkName("new owner's", req.NewOwner)
	if err != nil {
		return domain.Registration{}, err
	}

	var (
		oldRegNo int64
		out      domain.Registration
	)
	err = s.inTx(ctx, func(tx *store.Tx) error {
		if _, err := tx.GetVehicle(ctx, vin); err != nil {
			return notFound(err, "vehicle", vin)
		}
		reg, err := tx.LatestRegistrationForVIN(ctx, vin)
		if err != nil {
			return notFound(err, "registration for vehicle", vin)
		}
		newOwner, err := findExisting(ctx, tx, buyer, false, source)
		if err != nil {
			return err
		}
		if !reg.Owner.Equal(claimed) {
			return domain.NewOwnerMismatchError(claimed, reg.Owner)
		}

		regno, err := tx.NextNumber(ctx, store.SeqRegistrations)
		if err != nil {
			return err
		}
		today := s.Today()
		oldRegNo = reg.RegNo
		out = reg
		out.RegNo = regno
		out.OwnerID = newOwner.ID
		out.Owner = newOwner.Name
		out.RegDate = today
		out.Expiry = domain.AddYear(today)
		if err := tx.ReassignRegistration(ctx, oldRegNo, out); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Registration{}, wrap("transfer ownership", err)
	}

	s.log.Info("ownership transferred",
		"vin", vin,
		"old_regno", oldRegNo,
		"regno", out.RegNo,
		"owner", out.Owner.String())
	return out, nil
}

// RegistrationDetail is a registration with the vehicle it covers.
type RegistrationDetail struct {
	Registration domain.Registration `json:"registration"`
	Vehicle      domain.Vehicle      `json:"vehicle"`
}

// DescribeRegistration looks up a registration and its vehicle.
func (s *Service) DescribeRegistration(ctx context.Context, regno int64) (RegistrationDetail, error) {
	var out RegistrationDetail
	err := s.inTx(ctx, func(tx *store.Tx) error {
		reg, err := tx.GetRegistration(ctx, regno)
		if err != nil {
			return notFound(err, "registration", regno)
		}
		v, err := tx.GetVehicle(ctx, reg.VIN)
		if err != nil {
			return notFound(err, "vehicle", reg.VIN)
		}
		out = RegistrationDetail{Registration: reg, Vehicle: v}
		return nil
	})
	if err != nil {
		return RegistrationDetail{}, wrap("describe registration", err)
	}
	return out, nil
}
