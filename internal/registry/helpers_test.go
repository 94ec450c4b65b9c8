package registry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/store"
	"github.com/roach88/registry/internal/testutil"
)

const testToday = "2024-06-01"

var (
	testAgent   = domain.User{UID: "agent1", Role: domain.RoleAgent, City: "Edmonton"}
	testOfficer = domain.User{UID: "cop1", Role: domain.RoleOfficer, City: "Calgary"}
)

type fixture struct {
	t     *testing.T
	ctx   context.Context
	store *store.Store
	clock *testutil.FixedClock
	svc   *Service
}

// newFixture opens an in-memory store and a Service pinned to testToday.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	clk := testutil.NewFixedClockOn(testToday)
	svc := New(st,
		WithClock(clk),
		WithIDGenerator(testutil.NewSequentialGenerator("p")),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return &fixture{t: t, ctx: context.Background(), store: st, clock: clk, svc: svc}
}

func (f *fixture) date(s string) time.Time {
	f.t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(f.t, err)
	return d
}

// person inserts a person directly, bypassing the workflows.
func (f *fixture) person(id, first, last, address, phone string) domain.Person {
	f.t.Helper()
	p := domain.Person{
		ID:   id,
		Name: domain.NamePair{First: first, Last: last},
		PersonDetails: domain.PersonDetails{
			BirthDate:  f.date("1970-01-01"),
			BirthPlace: "Edmonton",
			Address:    address,
			Phone:      phone,
		},
	}
	require.NoError(f.t, f.store.InsertPerson(f.ctx, p))
	return p
}

func (f *fixture) vehicle(vin, mk, model string, year int, color string) {
	f.t.Helper()
	require.NoError(f.t, f.store.InsertVehicle(f.ctx, domain.Vehicle{
		VIN: vin, Make: mk, Model: model, Year: year, Color: color,
	}))
}

func (f *fixture) registration(regno int64, vin, plate, ownerID, regdate, expiry string) {
	f.t.Helper()
	require.NoError(f.t, f.store.InsertRegistration(f.ctx, domain.Registration{
		RegNo: regno, RegDate: f.date(regdate), Expiry: f.date(expiry),
		Plate: plate, VIN: vin, OwnerID: ownerID,
	}))
}

func (f *fixture) ticket(tno, regno, fine int64, violation, vdate string) {
	f.t.Helper()
	require.NoError(f.t, f.store.InsertTicket(f.ctx, domain.Ticket{
		TNo: tno, RegNo: regno, Fine: fine, Violation: violation, VDate: f.date(vdate),
	}))
}

func (f *fixture) demerit(date, personID string, points int, desc string) {
	f.t.Helper()
	require.NoError(f.t, f.store.InsertDemeritNotice(f.ctx, domain.DemeritNotice{
		Date: f.date(date), PersonID: personID, Points: points, Description: desc,
	}))
}

// sync advances sequences past directly inserted rows.
func (f *fixture) sync() {
	f.t.Helper()
	require.NoError(f.t, f.store.SyncSequences(f.ctx))
}

func (f *fixture) count(table string) int {
	f.t.Helper()
	var n int
	require.NoError(f.t, f.store.DB().QueryRowContext(f.ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func (f *fixture) current(seq string) int64 {
	f.t.Helper()
	n, err := f.store.CurrentNumber(f.ctx, seq)
	require.NoError(f.t, err)
	return n
}

// fakeSource answers PersonSource calls from canned data and records them.
type fakeSource struct {
	details map[string]domain.PersonDetails
	pick    func(candidates []domain.Person) domain.Person

	asked  []string
	chosen []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{details: map[string]domain.PersonDetails{}}
}

func (s *fakeSource) with(name string, d domain.PersonDetails) *fakeSource {
	s.details[name] = d
	return s
}

func (s *fakeSource) PersonDetails(_ context.Context, name domain.NamePair) (domain.PersonDetails, error) {
	s.asked = append(s.asked, name.String())
	d, ok := s.details[name.String()]
	if !ok {
		return domain.PersonDetails{}, errors.New("no details for " + name.String())
	}
	return d, nil
}

func (s *fakeSource) ChoosePerson(_ context.Context, name domain.NamePair, candidates []domain.Person) (domain.Person, error) {
	s.chosen = append(s.chosen, name.String())
	if s.pick == nil {
		return candidates[0], nil
	}
	return s.pick(candidates), nil
}

func details(t *testing.T, bdate, place, address, phone string) domain.PersonDetails {
	t.Helper()
	d, err := domain.ParseDate(bdate)
	require.NoError(t, err)
	return domain.PersonDetails{BirthDate: d, BirthPlace: place, Address: address, Phone: phone}
}
