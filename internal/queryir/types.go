package queryir

import (
	"strconv"
	"strings"
)

// Select reads Fields from a logical source, filtered and ordered.
//
// Example:
//
//	Select{
//	  From:   "owners",
//	  Fields: []string{"vin", "make", "plate"},
//	  Filter: And{Predicates: []Predicate{
//	    Compare{Field: "make", Op: OpEqFold, Value: String("tesla")},
//	    Compare{Field: "year", Op: OpGe, Value: Int(2018)},
//	  }},
//	}
//
// Backends always append the source's key to the ordering, so results are
// deterministic even when OrderBy is empty.
type Select struct {
	From    string    // Logical source name (e.g., "owners", "tickets")
	Fields  []string  // Projected fields, in output order
	Filter  Predicate // WHERE conditions (nil = no filter)
	OrderBy []Order   // Leading sort keys
}

// Order is one sort key.
type Order struct {
	Field string
	Desc  bool
}

// Predicate represents a filter condition.
//
// Predicate types:
//   - Compare: field <op> literal
//   - And: all predicates must be true
type Predicate interface {
	predicateNode() // Marker method - seals interface to this package
}

// Op is a comparison operator.
type Op string

const (
	OpEq     Op = "="
	OpNe     Op = "<>"
	OpLt     Op = "<"
	OpLe     Op = "<="
	OpGt     Op = ">"
	OpGe     Op = ">="
	OpEqFold Op = "=~" // case-insensitive equality
)

// Valid reports whether op is one of the known operators.
func (op Op) Valid() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe, OpEqFold:
		return true
	}
	return false
}

// Compare represents a field-op-literal predicate.
//
//	Compare{Field: "color", Op: OpEq, Value: String("red")}
//
// Translates to SQL:
//
//	v.color = ?   -- params: ["red"]
type Compare struct {
	Field string
	Op    Op
	Value Value
}

func (Compare) predicateNode() {}

// And represents a conjunction. An empty And is always true.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Value is a literal compared against a field.
type Value interface {
	valueNode()
}

// String is a text literal.
type String string

func (String) valueNode() {}

// Int is an integer literal.
type Int int64

func (Int) valueNode() {}

// Eq is shorthand for an equality comparison.
func Eq(field string, v Value) Compare {
	return Compare{Field: field, Op: OpEq, Value: v}
}

// EqFold is shorthand for a case-insensitive equality comparison.
func EqFold(field, s string) Compare {
	return Compare{Field: field, Op: OpEqFold, Value: String(s)}
}

// Where builds an And from the non-nil predicates, or nil if none remain.
// It lets callers collect optional criteria without special-casing.
func Where(preds ...Predicate) Predicate {
	kept := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return And{Predicates: kept}
}

// Describe renders a predicate for logs, e.g. `make =~ "tesla" AND year >= 2018`.
func Describe(p Predicate) string {
	switch pred := p.(type) {
	case nil:
		return "true"
	case Compare:
		return pred.Field + " " + string(pred.Op) + " " + describeValue(pred.Value)
	case And:
		if len(pred.Predicates) == 0 {
			return "true"
		}
		parts := make([]string, len(pred.Predicates))
		for i, sub := range pred.Predicates {
			parts[i] = Describe(sub)
		}
		return strings.Join(parts, " AND ")
	default:
		return "?"
	}
}

func describeValue(v Value) string {
	switch val := v.(type) {
	case String:
		return `"` + string(val) + `"`
	case Int:
		return strconv.FormatInt(int64(val), 10)
	default:
		return "?"
	}
}
