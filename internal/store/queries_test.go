package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/registry/internal/domain"
)

func TestFindPersonsByName_ExactAndFold(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestPerson(t, s, "p-1", "Minnie", "Mouse")
	createTestPerson(t, s, "p-2", "Minnie", "Mouse")
	createTestPerson(t, s, "p-3", "Mickey", "Mouse")

	exact, err := s.FindPersonsByName(ctx, domain.NamePair{First: "Minnie", Last: "Mouse"})
	require.NoError(t, err)
	require.Len(t, exact, 2)
	assert.Equal(t, "p-1", exact[0].ID)
	assert.Equal(t, "p-2", exact[1].ID)

	none, err := s.FindPersonsByName(ctx, domain.NamePair{First: "minnie", Last: "mouse"})
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)

	folded, err := s.FindPersonsByNameFold(ctx, domain.NamePair{First: "MICKEY", Last: "mouse"})
	require.NoError(t, err)
	require.Len(t, folded, 1)
	assert.Equal(t, "p-3", folded[0].ID)
}

func TestGetPerson_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetPerson(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindUser(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestPerson(t, s, "p-1", "John", "Wick")
	require.NoError(t, s.InsertUser(ctx, domain.User{
		UID: "jwick", Password: "password", Role: domain.RoleAgent, PersonID: "p-1", City: "Edmonton",
	}))

	u, err := s.FindUser(ctx, "jwick", "password")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAgent, u.Role)
	assert.Equal(t, domain.NamePair{First: "John", Last: "Wick"}, u.Name)
	assert.Equal(t, "Edmonton", u.City)

	_, err = s.FindUser(ctx, "jwick", "wrong")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBirthAndMarriageRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestPerson(t, s, "father", "Walt", "Disney")
	createTestPerson(t, s, "mother", "Lillian", "Disney")
	createTestPerson(t, s, "baby", "Diane", "Disney")

	require.NoError(t, s.InsertBirth(ctx, domain.BirthRecord{
		RegNo: 1, NewbornID: "baby", RegDate: mustDate(t, "2024-06-01"), RegPlace: "Edmonton",
		Gender: domain.GenderFemale, FatherID: "father", MotherID: "mother",
	}))
	b, err := s.GetBirth(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Diane Disney", b.Newborn.String())
	assert.Equal(t, "Walt Disney", b.Father.String())
	assert.Equal(t, "Lillian Disney", b.Mother.String())
	assert.Equal(t, domain.GenderFemale, b.Gender)

	require.NoError(t, s.InsertMarriage(ctx, domain.MarriageRecord{
		RegNo: 7, RegDate: mustDate(t, "1925-07-13"), RegPlace: "Lewiston",
		Partner1ID: "father", Partner2ID: "mother",
	}))
	m, err := s.GetMarriage(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "1925-07-13", domain.FormatDate(m.RegDate))
	assert.Equal(t, "Lillian Disney", m.Partner2.String())

	_, err = s.GetMarriage(ctx, 8)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLatestRegistrationForVIN(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestPerson(t, s, "p-1", "Donald", "Duck")
	createTestPerson(t, s, "p-2", "Mickey", "Mouse")
	createTestRegistration(t, s, 300, "230", "p-1", "2016-12-19")
	createTestRegistration(t, s, 303, "230", "p-2", "2019-12-19")

	r, err := s.LatestRegistrationForVIN(ctx, "230")
	require.NoError(t, err)
	assert.Equal(t, int64(303), r.RegNo)
	assert.Equal(t, "Mickey Mouse", r.Owner.String())

	_, err = s.LatestRegistrationForVIN(ctx, "999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReassignRegistration_TicketsFollow(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestPerson(t, s, "p-1", "Donald", "Duck")
	createTestPerson(t, s, "p-2", "Daisy", "Duck")
	createTestRegistration(t, s, 301, "210", "p-1", "2019-10-19")
	require.NoError(t, s.InsertTicket(ctx, domain.Ticket{
		TNo: 110, RegNo: 301, Fine: 300, Violation: "ran a red light", VDate: mustDate(t, "2019-04-29"),
	}))

	err := s.ReassignRegistration(ctx, 301, domain.Registration{
		RegNo: 400, OwnerID: "p-2", RegDate: mustDate(t, "2024-06-01"), Expiry: mustDate(t, "2025-06-01"),
	})
	require.NoError(t, err)

	r, err := s.GetRegistration(ctx, 400)
	require.NoError(t, err)
	assert.Equal(t, "p-2", r.OwnerID)
	assert.Equal(t, "ABC123", r.Plate)
	assert.Equal(t, "2025-06-01", domain.FormatDate(r.Expiry))

	ticket, err := s.GetTicket(ctx, 110)
	require.NoError(t, err)
	assert.Equal(t, int64(400), ticket.RegNo)

	err = s.ReassignRegistration(ctx, 301, r)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateExpiry_NotFound(t *testing.T) {
	s := createTestStore(t)

	err := s.UpdateExpiry(context.Background(), 12345, mustDate(t, "2030-01-01"))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTicketsAndPayments(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestPerson(t, s, "p-1", "Daisy", "Duck")
	createTestRegistration(t, s, 302, "220", "p-1", "2019-11-03")
	require.NoError(t, s.InsertTicket(ctx, domain.Ticket{
		TNo: 110, RegNo: 302, Fine: 300, Violation: "ran a red light", VDate: mustDate(t, "2019-04-29"),
	}))
	require.NoError(t, s.InsertTicket(ctx, domain.Ticket{
		TNo: 111, RegNo: 302, Fine: 50, Violation: "parking", VDate: mustDate(t, "2020-01-15"),
	}))

	// Two payments on the same day both persist.
	for _, amount := range []int64{100, 25} {
		_, err := s.InsertPayment(ctx, domain.Payment{TNo: 110, PDate: mustDate(t, "2024-06-01"), Amount: amount})
		require.NoError(t, err)
	}
	payments, err := s.PaymentsForTicket(ctx, 110)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, int64(100), payments[0].Amount)
	assert.Equal(t, int64(25), payments[1].Amount)

	require.NoError(t, s.UpdateFine(ctx, 110, -5))
	ticket, err := s.GetTicket(ctx, 110)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), ticket.Fine)

	n, err := s.CountTicketsByOwner(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	details, err := s.TicketDetailsByOwner(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, int64(111), details[0].TNo, "newest violation first")
	assert.Equal(t, "Tesla", details[0].Make)
	assert.Equal(t, "Model 3", details[0].Model)

	_, err = s.InsertPayment(ctx, domain.Payment{TNo: 999, PDate: mustDate(t, "2024-06-01"), Amount: 1})
	assert.ErrorIs(t, err, ErrConflict, "payment for unknown ticket violates foreign key")
}

func TestDemeritNotices(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestPerson(t, s, "p-1", "Minnie", "Mouse")

	require.NoError(t, s.InsertDemeritNotice(ctx, domain.DemeritNotice{
		Date: mustDate(t, "2017-12-12"), PersonID: "p-1", Points: 5, Description: "speeding",
	}))
	require.NoError(t, s.InsertDemeritNotice(ctx, domain.DemeritNotice{
		Date: mustDate(t, "2024-01-02"), PersonID: "p-1", Points: 2, Description: "rolling stop",
	}))

	err := s.InsertDemeritNotice(ctx, domain.DemeritNotice{
		Date: mustDate(t, "2024-01-02"), PersonID: "p-1", Points: 1, Description: "duplicate day",
	})
	assert.ErrorIs(t, err, ErrConflict)

	notices, err := s.DemeritNoticesForPerson(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, notices, 2)
	assert.Equal(t, 2, notices[0].Points, "newest first")
	assert.Equal(t, "Minnie Mouse", notices[1].Person.String())
}

func TestNextNumber_StrictlyIncreasing(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 20; i++ {
		n, err := s.NextNumber(ctx, SeqTickets)
		require.NoError(t, err)
		assert.Greater(t, n, last)
		last = n
	}
	cur, err := s.CurrentNumber(ctx, SeqTickets)
	require.NoError(t, err)
	assert.Equal(t, last, cur)

	// Sequences are independent.
	n, err := s.NextNumber(ctx, SeqBirths)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.NextNumber(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSyncSequences_NeverMovesBackwards(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestPerson(t, s, "p-1", "Donald", "Duck")
	createTestRegistration(t, s, 50, "230", "p-1", "2020-01-01")

	require.NoError(t, s.SyncSequences(ctx))
	cur, err := s.CurrentNumber(ctx, SeqRegistrations)
	require.NoError(t, err)
	assert.Equal(t, int64(50), cur)

	for i := 0; i < 100; i++ {
		_, err := s.NextNumber(ctx, SeqRegistrations)
		require.NoError(t, err)
	}
	require.NoError(t, s.SyncSequences(ctx))
	cur, err = s.CurrentNumber(ctx, SeqRegistrations)
	require.NoError(t, err)
	assert.Equal(t, int64(150), cur)
}

func TestReadTable(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestPerson(t, s, "p-1", "Donald", "Duck")

	table, err := s.ReadTable(ctx, "SELECT fname, lname, NULL AS missing FROM persons WHERE id = ?", "p-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"fname", "lname", "missing"}, table.Columns)
	assert.Equal(t, [][]string{{"Donald", "Duck", ""}}, table.Rows)

	empty, err := s.ReadTable(ctx, "SELECT * FROM vehicles")
	require.NoError(t, err)
	assert.NotNil(t, empty.Rows)
	assert.Empty(t, empty.Rows)
}

func TestEmpty(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	empty, err := s.Empty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	createTestPerson(t, s, "p-1", "Donald", "Duck")
	empty, err = s.Empty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestSequenceNames(t *testing.T) {
	assert.Equal(t, []string{SeqBirths, SeqMarriages, SeqRegistrations, SeqTickets}, SequenceNames())
}
