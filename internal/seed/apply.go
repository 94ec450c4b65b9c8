package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/store"
)

// IDGenerator issues person ids for seeded persons.
type IDGenerator interface {
	Generate() string
}

// Counts reports how many rows of each kind a seed wrote.
type Counts struct {
	Persons       int `json:"persons"`
	Users         int `json:"users"`
	Births        int `json:"births"`
	Marriages     int `json:"marriages"`
	Vehicles      int `json:"vehicles"`
	Registrations int `json:"registrations"`
	Tickets       int `json:"tickets"`
	Payments      int `json:"payments"`
	Demerits      int `json:"demerits"`
}

// Apply writes d into st in one transaction and then moves every sequence
// past the numbers the seed used. Nothing is written if any record fails.
func Apply(ctx context.Context, st *store.Store, d *Data, ids IDGenerator, log *slog.Logger) (Counts, error) {
	var c Counts
	err := st.InTx(ctx, func(tx *store.Tx) error {
		a := &applier{tx: tx, ids: ids, persons: make(map[string]domain.Person)}
		if err := a.apply(ctx, d, &c); err != nil {
			return err
		}
		return tx.SyncSequences(ctx)
	})
	if err != nil {
		return Counts{}, fmt.Errorf("apply seed: %w", err)
	}
	log.Info("seed applied",
		"persons", c.Persons,
		"vehicles", c.Vehicles,
		"registrations", c.Registrations,
		"tickets", c.Tickets)
	return c, nil
}

type applier struct {
	tx      *store.Tx
	ids     IDGenerator
	persons map[string]domain.Person
}

func (a *applier) apply(ctx context.Context, d *Data, c *Counts) error {
	for i, sp := range d.Persons {
		if err := a.person(ctx, i, sp); err != nil {
			return err
		}
		c.Persons++
	}
	for i, su := range d.Users {
		p, err := a.lookup("users", i, su.Person)
		if err != nil {
			return err
		}
		u := domain.User{
			UID:      su.UID,
			Password: su.Password,
			Role:     domain.Role(su.Role),
			PersonID: p.ID,
			City:     su.City,
		}
		if err := a.tx.InsertUser(ctx, u); err != nil {
			return fmt.Errorf("users[%d]: %w", i, err)
		}
		c.Users++
	}
	for i, sb := range d.Births {
		if err := a.birth(ctx, i, sb); err != nil {
			return err
		}
		c.Births++
	}
	for i, sm := range d.Marriages {
		if err := a.marriage(ctx, i, sm); err != nil {
			return err
		}
		c.Marriages++
	}
	for i, v := range d.Vehicles {
		if err := a.tx.InsertVehicle(ctx, v); err != nil {
			return fmt.Errorf("vehicles[%d]: %w", i, err)
		}
		c.Vehicles++
	}
	for i, sr := range d.Registrations {
		if err := a.registration(ctx, i, sr); err != nil {
			return err
		}
		c.Registrations++
	}
	for i, tk := range d.Tickets {
		vdate, err := date("tickets", i, "vdate", tk.VDate)
		if err != nil {
			return err
		}
		t := domain.Ticket{TNo: tk.TNo, RegNo: tk.RegNo, Fine: tk.Fine, Violation: tk.Violation, VDate: vdate}
		if err := a.tx.InsertTicket(ctx, t); err != nil {
			return fmt.Errorf("tickets[%d]: %w", i, err)
		}
		c.Tickets++
	}
	for i, sp := range d.Payments {
		pdate, err := date("payments", i, "pdate", sp.PDate)
		if err != nil {
			return err
		}
		if _, err := a.tx.InsertPayment(ctx, domain.Payment{TNo: sp.TNo, PDate: pdate, Amount: sp.Amount}); err != nil {
			return fmt.Errorf("payments[%d]: %w", i, err)
		}
		c.Payments++
	}
	for i, sd := range d.Demerits {
		p, err := a.lookup("demerits", i, sd.Person)
		if err != nil {
			return err
		}
		ddate, err := date("demerits", i, "date", sd.Date)
		if err != nil {
			return err
		}
		n := domain.DemeritNotice{Date: ddate, PersonID: p.ID, Points: sd.Points, Description: sd.Description}
		if err := a.tx.InsertDemeritNotice(ctx, n); err != nil {
			return fmt.Errorf("demerits[%d]: %w", i, err)
		}
		c.Demerits++
	}
	return nil
}

func (a *applier) person(ctx context.Context, i int, sp Person) error {
	if _, dup := a.persons[sp.Key]; dup {
		return fmt.Errorf("persons[%d]: duplicate key %q", i, sp.Key)
	}
	bdate, err := date("persons", i, "birth_date", sp.BirthDate)
	if err != nil {
		return err
	}
	p := domain.Person{
		ID:   a.ids.Generate(),
		Name: domain.NamePair{First: sp.First, Last: sp.Last},
		PersonDetails: domain.PersonDetails{
			BirthDate:  bdate,
			BirthPlace: sp.BirthPlace,
			Address:    sp.Address,
			Phone:      sp.Phone,
		},
	}
	if err := a.tx.InsertPerson(ctx, p); err != nil {
		return fmt.Errorf("persons[%d]: %w", i, err)
	}
	a.persons[sp.Key] = p
	return nil
}

func (a *applier) birth(ctx context.Context, i int, sb Birth) error {
	newborn, err := a.lookup("births", i, sb.Newborn)
	if err != nil {
		return err
	}
	father, err := a.lookup("births", i, sb.Father)
	if err != nil {
		return err
	}
	mother, err := a.lookup("births", i, sb.Mother)
	if err != nil {
		return err
	}
	regdate, err := date("births", i, "regdate", sb.RegDate)
	if err != nil {
		return err
	}
	b := domain.BirthRecord{
		RegNo:     sb.RegNo,
		NewbornID: newborn.ID,
		RegDate:   regdate,
		RegPlace:  sb.RegPlace,
		Gender:    domain.Gender(sb.Gender),
		FatherID:  father.ID,
		MotherID:  mother.ID,
	}
	if err := a.tx.InsertBirth(ctx, b); err != nil {
		return fmt.Errorf("births[%d]: %w", i, err)
	}
	return nil
}

func (a *applier) marriage(ctx context.Context, i int, sm Marriage) error {
	p1, err := a.lookup("marriages", i, sm.Partner1)
	if err != nil {
		return err
	}
	p2, err := a.lookup("marriages", i, sm.Partner2)
	if err != nil {
		return err
	}
	regdate, err := date("marriages", i, "regdate", sm.RegDate)
	if err != nil {
		return err
	}
	m := domain.MarriageRecord{
		RegNo:      sm.RegNo,
		RegDate:    regdate,
		RegPlace:   sm.RegPlace,
		Partner1ID: p1.ID,
		Partner2ID: p2.ID,
	}
	if err := a.tx.InsertMarriage(ctx, m); err != nil {
		return fmt.Errorf("marriages[%d]: %w", i, err)
	}
	return nil
}

func (a *applier) registration(ctx context.Context, i int, sr Registration) error {
	owner, err := a.lookup("registrations", i, sr.Owner)
	if err != nil {
		return err
	}
	regdate, err := date("registrations", i, "regdate", sr.RegDate)
	if err != nil {
		return err
	}
	expiry, err := date("registrations", i, "expiry", sr.Expiry)
	if err != nil {
		return err
	}
	r := domain.Registration{
		RegNo:   sr.RegNo,
		RegDate: regdate,
		Expiry:  expiry,
		Plate:   sr.Plate,
		VIN:     sr.VIN,
		OwnerID: owner.ID,
	}
	if err := a.tx.InsertRegistration(ctx, r); err != nil {
		return fmt.Errorf("registrations[%d]: %w", i, err)
	}
	return nil
}

func (a *applier) lookup(list string, i int, key string) (domain.Person, error) {
	p, ok := a.persons[key]
	if !ok {
		return domain.Person{}, fmt.Errorf("%s[%d]: unknown person key %q", list, i, key)
	}
	return p, nil
}

// date parses a seeded date. The schema checks the shape; this rejects
// impossible calendar days.
func date(list string, i int, field, s string) (time.Time, error) {
	t, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s[%d].%s: %w", list, i, field, err)
	}
	return t, nil
}
