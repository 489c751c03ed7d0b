package store

import (
	"fmt"
	"strings"
)

// Predicate filters runs.
//
// This is a sealed interface: only Equals and And implement it, so the
// compiler can switch over every case.
type Predicate interface {
	predicateNode()
}

// Equals matches runs whose column Field equals Value.
//
// Translates to SQL:
//
//	status = ?
type Equals struct {
	Field string
	Value any
}

func (Equals) predicateNode() {}

// And is a conjunction. An empty And matches every run.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// RunQuery selects runs, newest first.
type RunQuery struct {
	Filter Predicate // nil = every run
	Limit  int       // <= 0 = no limit
}

// filterableColumns are the runs columns a predicate may reference.
// Field names are interpolated, so anything else is rejected.
var filterableColumns = map[string]bool{
	"id":           true,
	"source_hash":  true,
	"features":     true,
	"status":       true,
	"error_code":   true,
	"program_hash": true,
	"tool_version": true,
	"ir_version":   true,
}

// Where builds an And of Equals predicates from column/value pairs,
// skipping empty values. Pairs are applied in argument order.
func Where(pairs ...string) Predicate {
	if len(pairs)%2 != 0 {
		panic("store.Where: odd number of arguments")
	}
	and := And{}
	for i := 0; i < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		and.Predicates = append(and.Predicates, Equals{Field: pairs[i], Value: pairs[i+1]})
	}
	return and
}

// compileQuery renders q as parameterized SQL. Values are never
// interpolated; every query orders by seq so results are deterministic.
func compileQuery(q RunQuery) (string, []any, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + runColumns + " FROM runs")

	var params []any
	if q.Filter != nil {
		where, whereParams, err := compilePredicate(q.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		sb.WriteString(" WHERE " + where)
		params = whereParams
	}

	sb.WriteString(" ORDER BY seq DESC")

	limit := q.Limit
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	sb.WriteString(" LIMIT ?")
	params = append(params, limit)

	return sb.String(), params, nil
}

func compilePredicate(p Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case Equals:
		return compileEquals(pred)
	case *Equals:
		return compileEquals(*pred)
	case And:
		return compileAnd(pred)
	case *And:
		return compileAnd(*pred)
	case nil:
		return "1 = 1", nil, nil
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

func compileEquals(eq Equals) (string, []any, error) {
	if !filterableColumns[eq.Field] {
		return "", nil, fmt.Errorf("unknown run field %q", eq.Field)
	}
	value := eq.Value
	if status, ok := value.(Status); ok {
		value = string(status)
	}
	return eq.Field + " = ?", []any{value}, nil
}

func compileAnd(and And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil
	}

	parts := make([]string, 0, len(and.Predicates))
	var params []any
	for _, pred := range and.Predicates {
		sql, predParams, err := compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		params = append(params, predParams...)
	}
	return strings.Join(parts, " AND "), params, nil
}
