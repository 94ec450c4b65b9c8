package harness

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/registry/internal/queryir"
	"github.com/roach88/registry/internal/registry"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

func assertOutputContains(transcript string, a Assertion) error {
	if strings.Contains(transcript, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("output containing %q", a.Text),
		Actual:   "no match in transcript",
	}
}

func assertOutputNotContains(transcript string, a Assertion) error {
	n := strings.Count(transcript, a.Text)
	if n == 0 {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("output without %q", a.Text),
		Actual:   fmt.Sprintf("%d occurrence(s)", n),
	}
}

// assertRowCount counts matching rows through the service's listing, so
// tables and fields are checked against the same whitelist operators use.
func assertRowCount(ctx context.Context, svc *registry.Service, a Assertion) error {
	preds, err := wherePredicates(a.Where)
	if err != nil {
		return err
	}
	t, err := svc.List(ctx, a.Table, preds...)
	if err != nil {
		return err
	}
	if len(t.Rows) == a.Count {
		return nil
	}

	where := queryir.Describe(queryir.Where(preds...))
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("%d row(s) in %s where %s", a.Count, a.Table, where),
		Actual:   fmt.Sprintf("%d", len(t.Rows)),
	}
}

// wherePredicates converts equality filters to predicates, sorted by field
// so failure messages are stable.
func wherePredicates(where map[string]any) ([]queryir.Predicate, error) {
	fields := make([]string, 0, len(where))
	for f := range where {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	preds := make([]queryir.Predicate, 0, len(fields))
	for _, f := range fields {
		switch v := where[f].(type) {
		case string:
			preds = append(preds, queryir.Eq(f, queryir.String(v)))
		case int:
			preds = append(preds, queryir.Eq(f, queryir.Int(v)))
		default:
			return nil, fmt.Errorf("where.%s: unsupported value %v", f, v)
		}
	}
	return preds, nil
}
