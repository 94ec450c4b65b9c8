package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/store"
)

func TestNextExpiry(t *testing.T) {
	today := mustParse(t, "2024-06-01")
	tests := []struct {
		name       string
		expiry     string
		wantExpiry string
		wantBranch RenewalBranch
	}{
		{"expiring today", "2024-06-01", "2025-06-01", BranchExpiringToday},
		{"expired", "2024-01-01", "2025-06-01", BranchExpired},
		{"still valid", "2024-12-01", "2025-12-01", BranchStillValid},
		{"leap day expired", "2024-02-29", "2025-06-01", BranchExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, branch := NextExpiry(mustParse(t, tt.expiry), today)
			assert.Equal(t, tt.wantExpiry, domain.FormatDate(got))
			assert.Equal(t, tt.wantBranch, branch)
		})
	}
}

func TestRenewRegistration(t *testing.T) {
	tests := []struct {
		expiry     string
		wantExpiry string
		wantBranch RenewalBranch
	}{
		{"2024-06-01", "2025-06-01", BranchExpiringToday},
		{"2024-01-01", "2025-06-01", BranchExpired},
		{"2024-12-01", "2025-12-01", BranchStillValid},
	}
	for _, tt := range tests {
		t.Run(tt.expiry, func(t *testing.T) {
			f := newFixture(t)
			f.person("p-1", "Donald", "Duck", "1 Pond Rd", "780-555-0100")
			f.vehicle("V1", "Ford", "Focus", 2015, "blue")
			f.registration(300, "V1", "ABC123", "p-1", "2023-06-01", tt.expiry)

			r, err := f.svc.RenewRegistration(f.ctx, 300)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBranch, r.Branch)
			assert.Equal(t, tt.expiry, domain.FormatDate(r.OldExpiry))
			assert.Equal(t, tt.wantExpiry, domain.FormatDate(r.NewExpiry))

			stored, err := f.store.GetRegistration(f.ctx, 300)
			require.NoError(t, err)
			assert.Equal(t, tt.wantExpiry, domain.FormatDate(stored.Expiry))
		})
	}
}

func TestRenewRegistration_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RenewRegistration(f.ctx, 999)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Contains(t, err.Error(), "registration 999 not found")
}

// transferFixture: Donald owns V1 under regno 301 (and held it earlier
// under 300); one ticket sits on 301. Daisy is the buyer.
func transferFixture(t *testing.T) *fixture {
	f := newFixture(t)
	f.person("p-donald", "Donald", "Duck", "1 Pond Rd", "780-555-0100")
	f.person("p-daisy", "Daisy", "Duck", "2 Pond Rd", "780-555-0101")
	f.vehicle("V1", "Ford", "Focus", 2015, "blue")
	f.registration(300, "V1", "OLD111", "p-donald", "2021-01-01", "2022-01-01")
	f.registration(301, "V1", "ABC123", "p-donald", "2023-07-01", "2024-07-01")
	f.ticket(400, 301, 120, "speeding", "2024-03-03")
	f.sync()
	return f
}

func transferRequest() TransferRequest {
	return TransferRequest{
		VIN:          "V1",
		CurrentOwner: domain.NamePair{First: "Donald", Last: "Duck"},
		NewOwner:     domain.NamePair{First: "Daisy", Last: "Duck"},
	}
}

func TestTransferOwnership(t *testing.T) {
	f := transferFixture(t)

	reg, err := f.svc.TransferOwnership(f.ctx, transferRequest(), newFakeSource())
	require.NoError(t, err)

	assert.Equal(t, int64(302), reg.RegNo, "next value of the registrations sequence")
	assert.Equal(t, "p-daisy", reg.OwnerID)
	assert.Equal(t, "2024-06-01", domain.FormatDate(reg.RegDate))
	assert.Equal(t, "2025-06-01", domain.FormatDate(reg.Expiry))
	assert.Equal(t, "ABC123", reg.Plate)

	_, err = f.store.GetRegistration(f.ctx, 301)
	assert.ErrorIs(t, err, store.ErrNotFound, "row renumbered in place")
	stored, err := f.store.GetRegistration(f.ctx, 302)
	require.NoError(t, err)
	assert.Equal(t, reg, stored)

	ticket, err := f.store.GetTicket(f.ctx, 400)
	require.NoError(t, err)
	assert.Equal(t, int64(302), ticket.RegNo, "ticket follows the registration")

	old, err := f.store.GetRegistration(f.ctx, 300)
	require.NoError(t, err)
	assert.Equal(t, "p-donald", old.OwnerID, "history untouched")
	assert.Equal(t, 2, f.count("registrations"))
}

func TestTransferOwnership_TicketsCountAgainstBuyer(t *testing.T) {
	f := transferFixture(t)

	_, err := f.svc.TransferOwnership(f.ctx, transferRequest(), newFakeSource())
	require.NoError(t, err)

	buyer, err := f.svc.DriverAbstract(f.ctx, transferRequest().NewOwner, true, newFakeSource())
	require.NoError(t, err)
	assert.Equal(t, 1, buyer.TicketCount, "the seller's ticket moved with the registration")
	require.Len(t, buyer.Tickets, 1)
	assert.Equal(t, int64(400), buyer.Tickets[0].TNo)

	seller, err := f.svc.DriverAbstract(f.ctx, transferRequest().CurrentOwner, false, newFakeSource())
	require.NoError(t, err)
	assert.Equal(t, 1, seller.Registrations, "only the older registration remains")
	assert.Equal(t, 0, seller.TicketCount)
}

func TestTransferOwnership_RepeatedTransfersStayUnique(t *testing.T) {
	f := transferFixture(t)

	first, err := f.svc.TransferOwnership(f.ctx, transferRequest(), newFakeSource())
	require.NoError(t, err)

	back := TransferRequest{VIN: "V1", CurrentOwner: transferRequest().NewOwner, NewOwner: transferRequest().CurrentOwner}
	second, err := f.svc.TransferOwnership(f.ctx, back, newFakeSource())
	require.NoError(t, err)

	assert.NotEqual(t, first.RegNo, second.RegNo)
	assert.Equal(t, "p-donald", second.OwnerID)
}

func TestTransferOwnership_OwnerMismatchChangesNothing(t *testing.T) {
	f := transferFixture(t)
	before, err := f.store.GetRegistration(f.ctx, 301)
	require.NoError(t, err)

	req := transferRequest()
	req.CurrentOwner = domain.NamePair{First: "Scrooge", Last: "Mcduck"}
	_, err = f.svc.TransferOwnership(f.ctx, req, newFakeSource())
	require.Error(t, err)
	assert.True(t, domain.IsOwnerMismatch(err))

	after, err := f.store.GetRegistration(f.ctx, 301)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, int64(301), f.current(store.SeqRegistrations), "no number consumed")
}

func TestTransferOwnership_NotFound(t *testing.T) {
	f := transferFixture(t)

	req := transferRequest()
	req.VIN = "NOPE"
	_, err := f.svc.TransferOwnership(f.ctx, req, newFakeSource())
	assert.True(t, domain.IsNotFound(err))
	assert.Contains(t, err.Error(), "vehicle NOPE")

	req = transferRequest()
	req.NewOwner = domain.NamePair{First: "Gyro", Last: "Gearloose"}
	_, err = f.svc.TransferOwnership(f.ctx, req, newFakeSource())
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, 2, f.count("persons"), "new owner is never created")

	f.vehicle("V2", "Kia", "Rio", 2020, "red")
	req = transferRequest()
	req.VIN = "V2"
	_, err = f.svc.TransferOwnership(f.ctx, req, newFakeSource())
	assert.True(t, domain.IsNotFound(err))
}

func TestTransferOwnership_DuplicateBuyerIsDisambiguated(t *testing.T) {
	f := transferFixture(t)
	f.person("p-daisy2", "Daisy", "Duck", "3 Pond Rd", "780-555-0102")

	src := newFakeSource()
	src.pick = func(c []domain.Person) domain.Person { return c[1] }

	reg, err := f.svc.TransferOwnership(f.ctx, transferRequest(), src)
	require.NoError(t, err)
	assert.Equal(t, "p-daisy2", reg.OwnerID)
}

func TestDescribeRegistration(t *testing.T) {
	f := transferFixture(t)

	d, err := f.svc.DescribeRegistration(f.ctx, 301)
	require.NoError(t, err)
	assert.Equal(t, "Donald Duck", d.Registration.Owner.String())
	assert.Equal(t, "Focus", d.Vehicle.Model)

	_, err = f.svc.DescribeRegistration(f.ctx, 12)
	assert.True(t, domain.IsNotFound(err))
}

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := domain.ParseDate(s)
	require.NoError(t, err)
	return v
}
