// Package domain defines the records kept by the registry and the error
// taxonomy shared by the store, the workflows and the operator session.
//
// Persons are identified by a surrogate id (UUIDv7). The first/last name
// pair is an attribute, not a key: two different people may share a name,
// and every dependent record (births, marriages, registrations, demerit
// notices, users) references the surrogate id.
//
// Dates are calendar dates without a time of day. They are carried as
// time.Time values at UTC midnight and persisted as ISO "YYYY-MM-DD" text.
package domain
