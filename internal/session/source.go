package session

import (
	"context"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/registry"
	"github.com/roach88/registry/internal/validate"
)

var _ registry.PersonSource = (*Session)(nil)

// PersonDetails prompts for the details of a person not yet on record.
func (s *Session) PersonDetails(_ context.Context, name domain.NamePair) (domain.PersonDetails, error) {
	s.printf("\n%s is not on record. Please enter their details.\n", name)

	var (
		d   domain.PersonDetails
		err error
	)
	if d.BirthDate, err = askValid(s.p, "Birth date (YYYY-MM-DD): ", field(validate.Date, "birth date")); err != nil {
		return d, err
	}
	if d.BirthPlace, err = askValid(s.p, "Birth place: ", field(validate.Place, "birth place")); err != nil {
		return d, err
	}
	if d.Address, err = askValid(s.p, "Address: ", field(validate.Place, "address")); err != nil {
		return d, err
	}
	if d.Phone, err = askValid(s.p, "Phone (###-###-####): ", validate.Phone); err != nil {
		return d, err
	}
	return d, nil
}

// ChoosePerson lists persons sharing a name and asks which one is meant.
func (s *Session) ChoosePerson(_ context.Context, name domain.NamePair, candidates []domain.Person) (domain.Person, error) {
	s.printf("\nSeveral persons are named %s:\n", name)
	for i, c := range candidates {
		s.printf("  %d) born %s in %s, lives at %s, phone %s\n",
			i+1, domain.FormatDate(c.BirthDate), c.BirthPlace, c.Address, c.Phone)
	}
	n, err := askValid(s.p, "Which person? ", pick(len(candidates)))
	if err != nil {
		return domain.Person{}, err
	}
	return candidates[n-1], nil
}

// askName prompts for a first and last name, e.g. "Mother's first name: ".
func (s *Session) askName(who string) (domain.NamePair, error) {
	first, err := askValid(s.p, who+" first name: ", field(validate.Name, who+" first name"))
	if err != nil {
		return domain.NamePair{}, err
	}
	last, err := askValid(s.p, who+" last name: ", field(validate.Name, who+" last name"))
	if err != nil {
		return domain.NamePair{}, err
	}
	return domain.NamePair{First: first, Last: last}, nil
}

// field binds the field name of a two-argument validator.
func field[T any](fn func(field, s string) (T, error), name string) func(string) (T, error) {
	return func(s string) (T, error) {
		return fn(name, s)
	}
}
