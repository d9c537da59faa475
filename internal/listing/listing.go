// Package listing is the shared pagination/filter/sort layer behind every
// list endpoint. Each entity declares a Schema of allowed columns; Build
// turns a generic request into SQL fragments and the page envelope carries
// the result with its metadata.
package listing

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Pagination defaults. PageSize is capped server-side.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Filter is an equality predicate on a single column. When Predicate is
// set it overrides the default "column = $n" form; it must contain exactly
// one %s, replaced with the bound placeholder. Column is still checked
// against the schema allow-list.
type Filter struct {
	Column    string
	Value     any
	Predicate string
}

// Range bounds a column between exclusive limits. Either side may be nil.
type Range struct {
	Column string
	After  *time.Time
	Before *time.Time
}

// Params is the generic list request shared by all entities.
type Params struct {
	Page      int
	PageSize  int
	Filters   []Filter
	Ranges    []Range
	Search    string
	SortBy    string
	SortOrder string
}

func (p Params) page() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}

func (p Params) pageSize() int {
	if p.PageSize < 1 {
		return DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return p.PageSize
}

// Schema is the per-entity field metadata the builder is parameterized by.
// Equality and Range hold column names; Searchable holds the text columns
// the free-text search is matched against; Sortable maps API field names
// to column names.
type Schema struct {
	Equality    []string
	Range       []string
	Searchable  []string
	Sortable    map[string]string
	DefaultSort string
}

// Query is what Build produces: fragments to append to a SELECT or COUNT.
type Query struct {
	Where   string
	OrderBy string
	Limit   int
	Offset  int
	Args    []any
}

// Tail returns the full suffix for the page SELECT.
func (q Query) Tail() string {
	return fmt.Sprintf("%s%s LIMIT %d OFFSET %d", q.Where, q.OrderBy, q.Limit, q.Offset)
}

// Build translates params into SQL fragments. Filters and ranges on columns
// outside the allow-lists are dropped silently; an unknown sortBy falls back
// to the schema default. Equality filters and range bounds are AND-combined;
// the search term is matched case-insensitively against every searchable
// column, OR-combined, and AND-ed with the rest.
func (s Schema) Build(p Params) Query {
	var conds []string
	var args []any

	for _, f := range p.Filters {
		if !slices.Contains(s.Equality, f.Column) {
			continue
		}
		args = append(args, f.Value)
		ph := fmt.Sprintf("$%d", len(args))
		if f.Predicate != "" {
			conds = append(conds, fmt.Sprintf(f.Predicate, ph))
		} else {
			conds = append(conds, f.Column+" = "+ph)
		}
	}

	for _, r := range p.Ranges {
		if !slices.Contains(s.Range, r.Column) {
			continue
		}
		if r.After != nil {
			args = append(args, *r.After)
			conds = append(conds, fmt.Sprintf("%s > $%d", r.Column, len(args)))
		}
		if r.Before != nil {
			args = append(args, *r.Before)
			conds = append(conds, fmt.Sprintf("%s < $%d", r.Column, len(args)))
		}
	}

	if p.Search != "" && len(s.Searchable) > 0 {
		args = append(args, "%"+p.Search+"%")
		ph := fmt.Sprintf("$%d", len(args))
		ors := make([]string, 0, len(s.Searchable))
		for _, col := range s.Searchable {
			ors = append(ors, col+" ILIKE "+ph)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	sortCol, ok := s.Sortable[p.SortBy]
	if !ok {
		sortCol = s.DefaultSort
	}
	order := "DESC"
	if strings.EqualFold(p.SortOrder, "ASC") {
		order = "ASC"
	}

	size := p.pageSize()
	return Query{
		Where:   where,
		OrderBy: " ORDER BY " + sortCol + " " + order,
		Limit:   size,
		Offset:  (p.page() - 1) * size,
		Args:    args,
	}
}
