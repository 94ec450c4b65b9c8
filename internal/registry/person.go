package registry

import (
	"context"
	"time"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/store"
	"github.com/roach88/registry/internal/validate"
)

// PersonSource supplies operator input that a workflow needs midway.
//
// The session implements it by prompting; tests implement it with canned
// answers. Both methods are called inside the workflow's transaction, and
// an error from either aborts the workflow with nothing written.
type PersonSource interface {
	// PersonDetails is asked for the details of a person not yet on record.
	PersonDetails(ctx context.Context, name domain.NamePair) (domain.PersonDetails, error)

	// ChoosePerson is asked to pick one of several persons sharing a name.
	// The returned person must be one of candidates.
	ChoosePerson(ctx context.Context, name domain.NamePair, candidates []domain.Person) (domain.Person, error)
}

// Person reads a person by id.
func (s *Service) Person(ctx context.Context, id string) (domain.Person, error) {
	p, err := s.store.GetPerson(ctx, id)
	if err != nil {
		return domain.Person{}, wrap("get person", notFound(err, "person", id))
	}
	return p, nil
}

// ResolveOrCreatePerson returns the person recorded under name, creating
// one from source.PersonDetails if there is none. The lookup is exact and
// case-sensitive. Calling it twice with the same name never creates a
// second row.
func (s *Service) ResolveOrCreatePerson(ctx context.Context, name domain.NamePair, source PersonSource) (domain.Person, bool, error) {
	name, err := checkName("person's", name)
	if err != nil {
		return domain.Person{}, false, err
	}

	var (
		p       domain.Person
		created bool
	)
	err = s.inTx(ctx, func(tx *store.Tx) error {
		var err error
		p, created, err = s.resolveOrCreate(ctx, tx, name, source)
		return err
	})
	if err != nil {
		return domain.Person{}, false, wrap("resolve person", err)
	}
	return p, created, nil
}

func (s *Service) resolveOrCreate(ctx context.Context, tx *store.Tx, name domain.NamePair, source PersonSource) (domain.Person, bool, error) {
	matches, err := tx.FindPersonsByName(ctx, name)
	if err != nil {
		return domain.Person{}, false, err
	}
	if len(matches) > 0 {
		p, err := choose(ctx, source, name, matches)
		return p, false, err
	}

	details, err := source.PersonDetails(ctx, name)
	if err != nil {
		return domain.Person{}, false, err
	}
	details, err = checkDetails(details)
	if err != nil {
		return domain.Person{}, false, err
	}

	p := domain.Person{ID: s.ids.Generate(), Name: name, PersonDetails: details}
	if err := tx.InsertPerson(ctx, p); err != nil {
		return domain.Person{}, false, err
	}
	s.log.Debug("person created", "id", p.ID, "name", name.String())
	return p, true, nil
}

// findExisting resolves name to a recorded person without creating one.
// fold selects case-insensitive matching.
func findExisting(ctx context.Context, tx *store.Tx, name domain.NamePair, fold bool, source PersonSource) (domain.Person, error) {
	var (
		matches []domain.Person
		err     error
	)
	if fold {
		matches, err = tx.FindPersonsByNameFold(ctx, name)
	} else {
		matches, err = tx.FindPersonsByName(ctx, name)
	}
	if err != nil {
		return domain.Person{}, err
	}
	if len(matches) == 0 {
		return domain.Person{}, domain.NewNotFoundError("person", name.String())
	}
	return choose(ctx, source, name, matches)
}

// choose returns the single candidate, or asks source to disambiguate.
func choose(ctx context.Context, source PersonSource, name domain.NamePair, candidates []domain.Person) (domain.Person, error) {
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	picked, err := source.ChoosePerson(ctx, name, candidates)
	if err != nil {
		return domain.Person{}, err
	}
	for _, c := range candidates {
		if c.ID == picked.ID {
			return c, nil
		}
	}
	return domain.Person{}, domain.NewValidationError("person", "choice is not one of the candidates for "+name.String())
}

// checkDetails validates person details supplied by a PersonSource.
func checkDetails(d domain.PersonDetails) (domain.PersonDetails, error) {
	if d.BirthDate.IsZero() {
		return d, domain.NewValidationError("birth date", "must be a date in YYYY-MM-DD form")
	}
	d.BirthDate = domain.DateOf(d.BirthDate)
	var err error
	if d.BirthPlace, err = validate.Place("birth place", d.BirthPlace); err != nil {
		return d, err
	}
	if d.Address, err = validate.Place("address", d.Address); err != nil {
		return d, err
	}
	if d.Phone, err = validate.Phone(d.Phone); err != nil {
		return d, err
	}
	return d, nil
}

// checkName re-applies name validation to a pair built by a caller.
func checkName(prefix string, n domain.NamePair) (domain.NamePair, error) {
	return validate.NamePair(prefix, n.First, n.Last)
}

// dateOrToday returns d truncated to a date, or today if d is zero.
func dateOrToday(d, today time.Time) time.Time {
	if d.IsZero() {
		return today
	}
	return domain.DateOf(d)
}
