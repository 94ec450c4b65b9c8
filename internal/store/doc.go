// Package store provides SQLite-backed storage for the registry.
//
// The schema (schema.sql) holds persons, users, births, marriages,
// vehicles, registrations, tickets, payments, demerit notices and a
// sequences table that issues every registration and ticket number.
//
// # Transactions
//
// Every workflow runs inside Store.InTx. The callback receives a *Tx
// exposing the same typed queries as *Store; returning an error rolls
// back every write made through it. Store and Tx share one implementation
// (Queries) over a small dbtx interface.
//
// # Numbering
//
// Numbers come from NextNumber, an UPDATE ... RETURNING on the sequences
// row, never from COUNT(*) or MAX()+1 over the entity table. Numbers are
// strictly increasing and never reused, even if rows are later removed.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON: Enforce referential integrity
//   - a single open connection (one operator session per process)
package store
