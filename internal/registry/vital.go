package registry

import (
	"context"
	"time"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/store"
	"github.com/roach88/registry/internal/validate"
)

// BirthRequest carries the operator's answers for a birth registration.
type BirthRequest struct {
	Newborn    domain.NamePair
	Gender     domain.Gender
	BirthDate  time.Time
	BirthPlace string
	Father     domain.NamePair
	Mother     domain.NamePair
}

func (r BirthRequest) normalize() (BirthRequest, error) {
	var err error
	if r.Newborn, err = checkName("newborn's", r.Newborn); err != nil {
		return r, err
	}
	if r.Gender, err = validate.Gender(string(r.Gender)); err != nil {
		return r, err
	}
	if r.BirthDate.IsZero() {
		return r, domain.NewValidationError("birth date", "must be a date in YYYY-MM-DD form")
	}
	r.BirthDate = domain.DateOf(r.BirthDate)
	if r.BirthPlace, err = validate.Place("birth place", r.BirthPlace); err != nil {
		return r, err
	}
	if r.Father, err = checkName("father's", r.Father); err != nil {
		return r, err
	}
	if r.Mother, err = checkName("mother's", r.Mother); err != nil {
		return r, err
	}
	return r, nil
}

// RegisterBirth records a newborn, creating either parent if they are not
// yet on record. The newborn takes the mother's address and phone. The
// registration is dated today at the acting agent's city.
//
// Steps, all in one transaction:
//  1. next number from the births sequence
//  2. resolve or create the mother
//  3. resolve or create the father
//  4. insert the newborn as a new person
//  5. insert the birth record
func (s *Service) RegisterBirth(ctx context.Context, actor domain.User, req BirthRequest, source PersonSource) (domain.BirthRecord, error) {
	if err := authorize(actor, domain.RoleAgent, "register a birth"); err != nil {
		return domain.BirthRecord{}, err
	}
	req, err := req.normalize()
	if err != nil {
		return domain.BirthRecord{}, err
	}

	var rec domain.BirthRecord
	err = s.inTx(ctx, func(tx *store.Tx) error {
		regno, err := tx.NextNumber(ctx, store.SeqBirths)
		if err != nil {
			return err
		}

		mother, _, err := s.resolveOrCreate(ctx, tx, req.Mother, source)
		if err != nil {
			return err
		}
		father, _, err := s.resolveOrCreate(ctx, tx, req.Father, source)
		if err != nil {
			return err
		}

		newborn := domain.Person{
			ID:   s.ids.Generate(),
			Name: req.Newborn,
			PersonDetails: domain.PersonDetails{
				BirthDate:  req.BirthDate,
				BirthPlace: req.BirthPlace,
				Address:    mother.Address,
				Phone:      mother.Phone,
			},
		}
		if err := tx.InsertPerson(ctx, newborn); err != nil {
			return err
		}

		rec = domain.BirthRecord{
			RegNo:     regno,
			NewbornID: newborn.ID,
			Newborn:   newborn.Name,
			RegDate:   s.Today(),
			RegPlace:  actor.City,
			Gender:    req.Gender,
			FatherID:  father.ID,
			Father:    father.Name,
			MotherID:  mother.ID,
			Mother:    mother.Name,
		}
		return tx.InsertBirth(ctx, rec)
	})
	if err != nil {
		return domain.BirthRecord{}, wrap("register birth", err)
	}

	s.log.Info("birth registered",
		"regno", rec.RegNo,
		"newborn", rec.Newborn.String(),
		"agent", actor.UID)
	return rec, nil
}

// MarriageRequest names the two partners of a marriage.
type MarriageRequest struct {
	Partner1 domain.NamePair
	Partner2 domain.NamePair
}

// RegisterMarriage records a marriage, creating either partner if they
// are not yet on record. The same pair may marry more than once.
func (s *Service) RegisterMarriage(ctx context.Context, actor domain.User, req MarriageRequest, source PersonSource) (domain.MarriageRecord, error) {
	if err := authorize(actor, domain.RoleAgent, "register a marriage"); err != nil {
		return domain.MarriageRecord{}, err
	}
	p1, err := checkName("partner 1", req.Partner1)
	if err != nil {
		return domain.MarriageRecord{}, err
	}
	p2, err := checkName("partner 2", req.Partner2)
	if err != nil {
		return domain.MarriageRecord{}, err
	}

	var rec domain.MarriageRecord
	err = s.inTx(ctx, func(tx *store.Tx) error {
		regno, err := tx.NextNumber(ctx, store.SeqMarriages)
		if err != nil {
			return err
		}
		partner1, _, err := s.resolveOrCreate(ctx, tx, p1, source)
		if err != nil {
			return err
		}
		partner2, _, err := s.resolveOrCreate(ctx, tx, p2, source)
		if err != nil {
			return err
		}

		rec = domain.MarriageRecord{
			RegNo:      regno,
			RegDate:    s.Today(),
			RegPlace:   actor.City,
			Partner1ID: partner1.ID,
			Partner1:   partner1.Name,
			Partner2ID: partner2.ID,
			Partner2:   partner2.Name,
		}
		return tx.InsertMarriage(ctx, rec)
	})
	if err != nil {
		return domain.MarriageRecord{}, wrap("register marriage", err)
	}

	s.log.Info("marriage registered",
		"regno", rec.RegNo,
		"partner1", rec.Partner1.String(),
		"partner2", rec.Partner2.String())
	return rec, nil
}
