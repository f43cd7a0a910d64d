// Package query models list filters as an explicit list of predicate
// clauses combined with AND, plus pagination and ordering.
//
// A Filter can only be built for a tenant: ForTenant seeds the tenant and
// soft-delete clauses, so every evaluation path carries them. Persistence
// adapters translate logical field names to their own storage.
package query

import (
	"errors"
	"strings"
)

type Op int

const (
	// OpEq is exact equality.
	OpEq Op = iota
	// OpContains is a case-insensitive substring match.
	OpContains
	// OpIsNull matches an unset value.
	OpIsNull
	// OpAnyContains is OpContains OR-ed across Fields.
	OpAnyContains
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpContains:
		return "contains"
	case OpIsNull:
		return "is_null"
	case OpAnyContains:
		return "any_contains"
	default:
		return "unknown"
	}
}

const (
	FieldTenant    = "empresaId"
	FieldDeletedAt = "deletedAt"
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
)

var ErrMissingTenant = errors.New("query filter requires a tenant")

type Clause struct {
	Field  string
	Op     Op
	Value  any
	Fields []string
}

type Filter struct {
	tenantID string
	clauses  []Clause
}

func ForTenant(tenantID string) Filter {
	tenantID = strings.TrimSpace(tenantID)
	return Filter{
		tenantID: tenantID,
		clauses: []Clause{
			{Field: FieldTenant, Op: OpEq, Value: tenantID},
			{Field: FieldDeletedAt, Op: OpIsNull},
		},
	}
}

func (f Filter) TenantID() string {
	return f.tenantID
}

// Clauses returns a copy so callers cannot drop the tenant clause.
func (f Filter) Clauses() []Clause {
	out := make([]Clause, len(f.clauses))
	copy(out, f.clauses)
	return out
}

// Validate rejects filters without a tenant.
func (f Filter) Validate() error {
	if f.tenantID == "" {
		return ErrMissingTenant
	}
	return nil
}

// Eq adds an equality clause; empty values are skipped.
func (f Filter) Eq(field string, value string) Filter {
	value = strings.TrimSpace(value)
	if value == "" {
		return f
	}
	return f.with(Clause{Field: field, Op: OpEq, Value: value})
}

func (f Filter) Contains(field string, term string) Filter {
	term = strings.TrimSpace(term)
	if term == "" {
		return f
	}
	return f.with(Clause{Field: field, Op: OpContains, Value: term})
}

// Search adds one clause matching term in any of fields.
func (f Filter) Search(term string, fields ...string) Filter {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return f
	}
	return f.with(Clause{Op: OpAnyContains, Value: term, Fields: append([]string(nil), fields...)})
}

// Applied lists the caller-supplied clauses as field=value pairs, for logs.
func (f Filter) Applied() map[string]any {
	out := make(map[string]any)
	for _, c := range f.clauses {
		switch {
		case c.Field == FieldTenant || c.Field == FieldDeletedAt:
			continue
		case c.Op == OpAnyContains:
			out["search"] = c.Value
		default:
			out[c.Field] = c.Value
		}
	}
	return out
}

func (f Filter) with(c Clause) Filter {
	next := Filter{tenantID: f.tenantID, clauses: make([]Clause, 0, len(f.clauses)+1)}
	next.clauses = append(next.clauses, f.clauses...)
	next.clauses = append(next.clauses, c)
	return next
}

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type Page struct {
	Number   int
	Limit    int
	SortBy   string
	SortDesc bool
}

func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// NormalizedSort falls back to createdAt.
func (p Page) NormalizedSort() string {
	if strings.TrimSpace(p.SortBy) == "" {
		return FieldCreatedAt
	}
	return p.SortBy
}

// EscapeLike escapes LIKE wildcards so a term matches literally.
func EscapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
