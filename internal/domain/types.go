package domain

import (
	"strings"
	"time"
)

// NamePair is a person's first and last name.
type NamePair struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// String returns "First Last".
func (n NamePair) String() string {
	return strings.TrimSpace(n.First + " " + n.Last)
}

// Equal reports whether both names match exactly (case-sensitive).
func (n NamePair) Equal(other NamePair) bool {
	return n.First == other.First && n.Last == other.Last
}

// PersonDetails holds the fields captured when a person is first recorded.
type PersonDetails struct {
	BirthDate  time.Time `json:"birth_date"`
	BirthPlace string    `json:"birth_place"`
	Address    string    `json:"address"`
	Phone      string    `json:"phone"`
}

// Person is a row of the persons table.
type Person struct {
	ID   string   `json:"id"`
	Name NamePair `json:"name"`
	PersonDetails
}

// Role selects which workflows an operator may run.
type Role string

const (
	RoleAgent   Role = "agent"
	RoleOfficer Role = "officer"
)

// User is an operator account linked to a person.
type User struct {
	UID      string   `json:"uid"`
	Password string   `json:"-"`
	Role     Role     `json:"role"`
	PersonID string   `json:"person_id"`
	Name     NamePair `json:"name"`
	City     string   `json:"city"`
}

// Gender of a newborn as recorded on a birth registration.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// BirthRecord is a registered birth. Parents and newborn are persons.
type BirthRecord struct {
	RegNo     int64     `json:"regno"`
	NewbornID string    `json:"newborn_id"`
	Newborn   NamePair  `json:"newborn"`
	RegDate   time.Time `json:"regdate"`
	RegPlace  string    `json:"regplace"`
	Gender    Gender    `json:"gender"`
	FatherID  string    `json:"father_id"`
	Father    NamePair  `json:"father"`
	MotherID  string    `json:"mother_id"`
	Mother    NamePair  `json:"mother"`
}

// MarriageRecord is a registered marriage between two persons.
type MarriageRecord struct {
	RegNo      int64     `json:"regno"`
	RegDate    time.Time `json:"regdate"`
	RegPlace   string    `json:"regplace"`
	Partner1ID string    `json:"partner1_id"`
	Partner1   NamePair  `json:"partner1"`
	Partner2ID string    `json:"partner2_id"`
	Partner2   NamePair  `json:"partner2"`
}

// Vehicle is identified by its VIN.
type Vehicle struct {
	VIN   string `json:"vin"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	Color string `json:"color"`
}

// Registration ties a vehicle to an owner for a period.
// Several registrations may exist per VIN; the one with the latest expiry
// is the current one.
type Registration struct {
	RegNo   int64     `json:"regno"`
	RegDate time.Time `json:"regdate"`
	Expiry  time.Time `json:"expiry"`
	Plate   string    `json:"plate"`
	VIN     string    `json:"vin"`
	OwnerID string    `json:"owner_id"`
	Owner   NamePair  `json:"owner"`
}

// Ticket is a fine issued against a registration. Fine is the outstanding
// balance and decreases as payments are applied; it may go negative.
type Ticket struct {
	TNo       int64     `json:"tno"`
	RegNo     int64     `json:"regno"`
	Fine      int64     `json:"fine"`
	Violation string    `json:"violation"`
	VDate     time.Time `json:"vdate"`
}

// Payment is an amount applied to a ticket on a date.
type Payment struct {
	ID     int64     `json:"id"`
	TNo    int64     `json:"tno"`
	PDate  time.Time `json:"pdate"`
	Amount int64     `json:"amount"`
}

// DemeritNotice carries points against a person. It is not linked to a
// specific ticket.
type DemeritNotice struct {
	Date        time.Time `json:"date"`
	PersonID    string    `json:"person_id"`
	Person      NamePair  `json:"person"`
	Points      int       `json:"points"`
	Description string    `json:"description"`
}

// TicketDetail is a ticket together with the vehicle it was issued against.
type TicketDetail struct {
	Ticket
	Make  string `json:"make"`
	Model string `json:"model"`
}
