package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/queryir"
)

func ownerFixture(t *testing.T) *fixture {
	f := newFixture(t)
	f.person("p-1", "Donald", "Duck", "1 Pond Rd", "780-555-0100")
	f.person("p-2", "Daisy", "Duck", "2 Pond Rd", "780-555-0101")
	for _, v := range []struct {
		vin, color string
		year       int
	}{
		{"T1", "red", 2017}, {"T2", "red", 2018}, {"T3", "black", 2019}, {"T4", "white", 2019},
	} {
		f.vehicle(v.vin, "Tesla", "Model 3", v.year, v.color)
	}
	f.vehicle("F1", "Ford", "Focus", 2015, "red")
	f.vehicle("U1", "Kia", "Rio", 2020, "green") // never registered

	f.registration(300, "T1", "OLD001", "p-1", "2019-01-01", "2020-01-01")
	f.registration(301, "T1", "NEW001", "p-2", "2020-01-01", "2025-01-01")
	f.registration(302, "T2", "TES002", "p-1", "2023-01-01", "2024-10-01")
	f.registration(303, "T3", "TES003", "p-1", "2023-01-01", "2024-10-01")
	f.registration(304, "T4", "TES004", "p-2", "2023-01-01", "2024-10-01")
	f.registration(305, "F1", "FRD001", "p-2", "2023-01-01", "2024-10-01")
	return f
}

func TestFindOwner_UsesLatestRegistration(t *testing.T) {
	f := ownerFixture(t)

	matches, err := f.svc.FindOwner(f.ctx, OwnerQuery{Make: "tesla", Year: 2017})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "T1", matches[0].Vehicle.VIN)
	assert.Equal(t, int64(301), matches[0].Registration.RegNo)
	assert.Equal(t, "Daisy Duck", matches[0].Registration.Owner.String())
}

func TestFindOwner_PlateMatchesCurrentRegistrationOnly(t *testing.T) {
	f := ownerFixture(t)

	matches, err := f.svc.FindOwner(f.ctx, OwnerQuery{Plate: "OLD001"})
	require.NoError(t, err)
	assert.Empty(t, matches, "a superseded plate no longer identifies the vehicle")

	matches, err = f.svc.FindOwner(f.ctx, OwnerQuery{Plate: "NEW001"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "T1", matches[0].Vehicle.VIN)
	assert.Equal(t, int64(301), matches[0].Registration.RegNo)
}

func TestFindOwner_ManyMatches(t *testing.T) {
	f := ownerFixture(t)

	matches, err := f.svc.FindOwner(f.ctx, OwnerQuery{Make: "TESLA", Model: "model 3"})
	require.NoError(t, err)
	require.Len(t, matches, 4)
	assert.GreaterOrEqual(t, len(matches), SummaryThreshold)

	vins := make([]string, len(matches))
	for i, m := range matches {
		vins[i] = m.Vehicle.VIN
	}
	assert.Equal(t, []string{"T1", "T2", "T3", "T4"}, vins, "one entry per VIN, ordered")
}

func TestFindOwner_ColorAndPlate(t *testing.T) {
	f := ownerFixture(t)

	matches, err := f.svc.FindOwner(f.ctx, OwnerQuery{Color: "Red"})
	require.NoError(t, err)
	assert.Len(t, matches, 3)

	matches, err = f.svc.FindOwner(f.ctx, OwnerQuery{Plate: "FRD001"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Focus", matches[0].Vehicle.Model)

	matches, err = f.svc.FindOwner(f.ctx, OwnerQuery{Plate: "frd001"})
	require.NoError(t, err)
	assert.Empty(t, matches, "plates match exactly")
}

func TestFindOwner_NoCriteriaListsEveryRegisteredVehicle(t *testing.T) {
	f := ownerFixture(t)

	matches, err := f.svc.FindOwner(f.ctx, OwnerQuery{})
	require.NoError(t, err)
	assert.Len(t, matches, 5, "the unregistered Kia has no owner")
}

func TestFindOwner_HostileInputIsJustAValue(t *testing.T) {
	f := ownerFixture(t)

	matches, err := f.svc.FindOwner(f.ctx, OwnerQuery{Make: `Tesla" OR "1"="1`})
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Equal(t, 6, f.count("vehicles"))
}

func TestOwnerQuery_Predicate(t *testing.T) {
	assert.Nil(t, OwnerQuery{Make: "  "}.Predicate())

	p := OwnerQuery{Make: "Tesla", Year: 2019, Plate: "ABC123"}.Predicate()
	assert.Equal(t, `make =~ "Tesla" AND year = 2019 AND plate = "ABC123"`, queryir.Describe(p))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	f.person("p-1", "John", "Wick", "1 Main St", "780-555-0100")
	require.NoError(t, f.store.InsertUser(f.ctx, domain.User{
		UID: "jwick", Password: "dog_lover", Role: domain.RoleOfficer, PersonID: "p-1", City: "Calgary",
	}))

	u, err := f.svc.Login(f.ctx, "jwick", "dog_lover")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOfficer, u.Role)
	assert.Equal(t, "John Wick", u.Name.String())

	_, err = f.svc.Login(f.ctx, "jwick", "cat_lover")
	assert.True(t, domain.IsNotFound(err))

	_, err = f.svc.Login(f.ctx, "jwick", "' OR 1=1 --")
	assert.True(t, domain.IsValidation(err))
}

func TestList(t *testing.T) {
	f := ownerFixture(t)

	table, err := f.svc.List(f.ctx, "registrations")
	require.NoError(t, err)
	assert.Equal(t, []string{"regno", "regdate", "expiry", "plate", "vin", "fname", "lname"}, table.Columns)
	require.Len(t, table.Rows, 6)
	assert.Equal(t, "300", table.Rows[0][0])
	assert.Equal(t, "Donald", table.Rows[0][5])

	filtered, err := f.svc.List(f.ctx, "vehicles", queryir.Eq("color", queryir.String("red")))
	require.NoError(t, err)
	assert.Len(t, filtered.Rows, 3)
}

func TestList_EveryTableCompiles(t *testing.T) {
	f := ownerFixture(t)

	for _, name := range ListTables {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.List(f.ctx, name)
			assert.NoError(t, err)
		})
	}
}

func TestList_Rejections(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.List(f.ctx, "sqlite_master")
	assert.True(t, domain.IsValidation(err))

	_, err = f.svc.List(f.ctx, "users", queryir.Eq("pwd", queryir.String("x")))
	assert.True(t, domain.IsValidation(err), "password column is not exposed")
}
