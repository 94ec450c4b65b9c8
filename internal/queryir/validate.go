package queryir

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationResult lists the problems found in a query.
type ValidationResult struct {
	// Problems is empty when the query is valid.
	Problems []string
}

// Valid reports whether no problems were found.
func (r ValidationResult) Valid() bool {
	return len(r.Problems) == 0
}

// Err returns the problems as one error, or nil if the query is valid.
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return errors.New("invalid query: " + strings.Join(r.Problems, "; "))
}

// Validate checks a query against the fields its source exposes.
//
// Rules:
//  1. From must be set and Fields must be non-empty (no SELECT *)
//  2. Every projected, filtered and ordered field must be in known
//  3. Every operator must be known and every value non-nil
//
// Validate is a pure function with no side effects.
func Validate(q Select, known []string) ValidationResult {
	v := &validator{
		known:    make(map[string]bool, len(known)),
		problems: []string{},
	}
	for _, f := range known {
		v.known[f] = true
	}
	v.validateSelect(q)
	return ValidationResult{Problems: v.problems}
}

// validator accumulates problems during traversal.
type validator struct {
	known    map[string]bool
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) checkField(role, field string) {
	if !v.known[field] {
		v.addProblem("unknown %s field %q", role, field)
	}
}

func (v *validator) validateSelect(sel Select) {
	if sel.From == "" {
		v.addProblem("missing source")
	}
	if len(sel.Fields) == 0 {
		v.addProblem("no fields selected")
	}
	for _, f := range sel.Fields {
		v.checkField("selected", f)
	}
	for _, o := range sel.OrderBy {
		v.checkField("order", o.Field)
	}
	if sel.Filter != nil {
		v.validatePredicate(sel.Filter)
	}
}

// validatePredicate recursively validates a predicate node.
func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case Compare:
		v.checkField("filter", pred.Field)
		if !pred.Op.Valid() {
			v.addProblem("unknown operator %q on %q", pred.Op, pred.Field)
		}
		if pred.Value == nil {
			v.addProblem("field %q compared to nil", pred.Field)
		}
		if _, isInt := pred.Value.(Int); isInt && pred.Op == OpEqFold {
			v.addProblem("case-insensitive comparison of integer field %q", pred.Field)
		}
	case And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	default:
		v.addProblem("unknown predicate type: %T", p)
	}
}
