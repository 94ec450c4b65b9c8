// Package querysql compiles queryir queries to parameterized SQLite SQL.
package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/registry/internal/queryir"
)

// Column maps a logical field to the SQL expression that produces it.
type Column struct {
	Field string
	Expr  string
}

// Source is a whitelisted logical source: a fixed FROM clause (which may
// contain joins) and the columns it exposes.
type Source struct {
	Name    string
	From    string
	Columns []Column

	// Key lists the fields that make a row unique. They are appended to
	// every ORDER BY as a deterministic tiebreaker.
	Key []string
}

// Fields returns the source's field names in declaration order.
func (s Source) Fields() []string {
	fields := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		fields[i] = c.Field
	}
	return fields
}

func (s Source) expr(field string) (string, bool) {
	for _, c := range s.Columns {
		if c.Field == field {
			return c.Expr, true
		}
	}
	return "", false
}

// SQLCompiler compiles queryir.Select queries against a set of sources.
//
// CRITICAL: ALL queries include ORDER BY ending in the source key, so
// results are deterministic.
// CRITICAL: All values are parameterized (never interpolated); field names
// only reach SQL through the source whitelist.
type SQLCompiler struct {
	sources map[string]Source
}

// NewSQLCompiler creates a compiler for the given sources. A later source
// with the same name replaces an earlier one.
func NewSQLCompiler(sources ...Source) *SQLCompiler {
	c := &SQLCompiler{sources: make(map[string]Source, len(sources))}
	for _, s := range sources {
		c.sources[s.Name] = s
	}
	return c
}

// Source looks up a registered source by name.
func (c *SQLCompiler) Source(name string) (Source, bool) {
	s, ok := c.sources[name]
	return s, ok
}

// Compile converts a query to parameterized SQL.
// Returns (sql, params, error) tuple.
func (c *SQLCompiler) Compile(q queryir.Select) (string, []any, error) {
	src, ok := c.sources[q.From]
	if !ok {
		return "", nil, fmt.Errorf("unknown source %q", q.From)
	}
	if err := queryir.Validate(q, src.Fields()).Err(); err != nil {
		return "", nil, err
	}

	selectClause := compileFields(src, q.Fields)

	var whereClause string
	var params []any
	if q.Filter != nil {
		filterSQL, filterParams, err := compilePredicate(src, q.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		whereClause = " WHERE " + filterSQL
		params = filterParams
	}

	orderByClause := " ORDER BY " + stableOrderKey(src, q.OrderBy)

	sql := fmt.Sprintf("SELECT %s FROM %s%s%s",
		selectClause,
		src.From,
		whereClause,
		orderByClause)

	return sql, params, nil
}

// compileFields builds the SELECT list. Example: "v.make AS make".
func compileFields(src Source, fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		expr, _ := src.expr(f)
		if expr == f {
			parts[i] = f
		} else {
			parts[i] = fmt.Sprintf("%s AS %s", expr, f)
		}
	}
	return strings.Join(parts, ", ")
}

// stableOrderKey returns the ORDER BY list: the requested keys followed by
// any source key fields not already present.
// COLLATE BINARY keeps text ordering identical across SQLite builds.
func stableOrderKey(src Source, orders []queryir.Order) string {
	seen := make(map[string]bool, len(orders)+len(src.Key))
	var parts []string
	add := func(field string, desc bool) {
		if seen[field] {
			return
		}
		seen[field] = true
		expr, _ := src.expr(field)
		dir := "ASC"
		if desc {
			dir = "DESC"
		}
		parts = append(parts, fmt.Sprintf("%s COLLATE BINARY %s", expr, dir))
	}
	for _, o := range orders {
		add(o.Field, o.Desc)
	}
	for _, k := range src.Key {
		add(k, false)
	}
	return strings.Join(parts, ", ")
}

// compilePredicate compiles a predicate to a WHERE fragment.
// CRITICAL: Values NEVER interpolated - always use ? placeholders.
func compilePredicate(src Source, p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case queryir.Compare:
		return compileCompare(src, pred)
	case queryir.And:
		return compileAnd(src, pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileCompare compiles "field <op> ?". OpEqFold uses NOCASE collation.
func compileCompare(src Source, cmp queryir.Compare) (string, []any, error) {
	expr, ok := src.expr(cmp.Field)
	if !ok {
		return "", nil, fmt.Errorf("unknown field %q", cmp.Field)
	}
	param, err := valueToParam(cmp.Value)
	if err != nil {
		return "", nil, fmt.Errorf("field %q: %w", cmp.Field, err)
	}

	if cmp.Op == queryir.OpEqFold {
		return fmt.Sprintf("%s = ? COLLATE NOCASE", expr), []any{param}, nil
	}
	return fmt.Sprintf("%s %s ?", expr, cmp.Op), []any{param}, nil
}

// compileAnd compiles a conjunction. An empty And is always true.
func compileAnd(src Source, and queryir.And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil
	}

	var sqlParts []string
	var allParams []any
	for _, pred := range and.Predicates {
		sql, params, err := compilePredicate(src, pred)
		if err != nil {
			return "", nil, err
		}
		if _, nested := pred.(queryir.And); nested {
			sql = "(" + sql + ")"
		}
		sqlParts = append(sqlParts, sql)
		allParams = append(allParams, params...)
	}

	return strings.Join(sqlParts, " AND "), allParams, nil
}

// valueToParam converts a queryir.Value to a Go native SQL parameter.
func valueToParam(v queryir.Value) (any, error) {
	switch val := v.(type) {
	case queryir.String:
		return string(val), nil
	case queryir.Int:
		return int64(val), nil
	default:
		return nil, fmt.Errorf("unsupported value type for SQL parameter: %T", v)
	}
}
