// Package queryir provides a small query intermediate representation for
// the registry's read-only lookups (find a car owner, table listings).
//
// A query is a Select over a named logical source with an optional filter
// built from Compare and And predicates. Field names are logical: the SQL
// backend (internal/querysql) maps them to columns of a fixed source
// whitelist, and every value is bound as a parameter. Operator-supplied
// text therefore never reaches the query text.
//
// SEALED INTERFACES:
//
// Predicate and Value are sealed interfaces using the marker method
// pattern. Only types in this package implement them, so backends can
// type switch exhaustively:
//
//	switch p := pred.(type) {
//	case Compare:
//	    // field <op> ?
//	case And:
//	    // conjunction
//	}
//
// The fragment deliberately excludes OR, NULL comparisons, subqueries and
// aggregations. Listings that need them are written as store queries.
package queryir
