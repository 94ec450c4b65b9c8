package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/registry/internal/domain"
)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

// createTestPerson inserts a person with placeholder details.
func createTestPerson(t *testing.T, s *Store, id, first, last string) domain.Person {
	t.Helper()
	p := domain.Person{
		ID:   id,
		Name: domain.NamePair{First: first, Last: last},
		PersonDetails: domain.PersonDetails{
			BirthDate:  mustDate(t, "1970-01-01"),
			BirthPlace: "Edmonton, AB",
			Address:    "1 Main St",
			Phone:      "780-555-0100",
		},
	}
	if err := s.InsertPerson(context.Background(), p); err != nil {
		t.Fatalf("InsertPerson(%s) failed: %v", id, err)
	}
	return p
}

// createTestRegistration inserts a vehicle (if absent) and a registration.
func createTestRegistration(t *testing.T, s *Store, regno int64, vin, ownerID, expiry string) domain.Registration {
	t.Helper()
	ctx := context.Background()
	if _, err := s.GetVehicle(ctx, vin); err != nil {
		v := domain.Vehicle{VIN: vin, Make: "Tesla", Model: "Model 3", Year: 2019, Color: "black"}
		if err := s.InsertVehicle(ctx, v); err != nil {
			t.Fatalf("InsertVehicle(%s) failed: %v", vin, err)
		}
	}
	r := domain.Registration{
		RegNo:   regno,
		RegDate: mustDate(t, "2019-01-01"),
		Expiry:  mustDate(t, expiry),
		Plate:   "ABC123",
		VIN:     vin,
		OwnerID: ownerID,
	}
	if err := s.InsertRegistration(ctx, r); err != nil {
		t.Fatalf("InsertRegistration(%d) failed: %v", regno, err)
	}
	return r
}
