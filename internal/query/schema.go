package query

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned when a request names a filter or sort key the schema lacks.
var ErrUnknownKey = errors.New("query: unknown key")

// Schema binds a record type to the fields a list screen can search, filter and sort by.
type Schema[T any] struct {
	Text        []func(T) string
	Fields      map[string]func(T) string
	Sorts       map[string]func(a, b T) int
	DefaultSort string
}

// Params is what a list screen sends: the search box, equality filters and the sort.
type Params struct {
	Q       string
	Filters map[string]string
	Sort    string
	Order   Direction
}

// Apply runs text filter, equality filters and sort in that order.
func Apply[T any](items []T, schema Schema[T], p Params) ([]T, error) {
	out := FilterByText(items, p.Q, schema.Text...)

	for name, value := range p.Filters {
		field, ok := schema.Fields[name]
		if !ok {
			return nil, fmt.Errorf("%w: filter %q", ErrUnknownKey, name)
		}
		out = FilterByEquality(out, field, value)
	}

	sortKey := p.Sort
	if sortKey == "" {
		sortKey = schema.DefaultSort
	}
	if sortKey == "" {
		return out, nil
	}
	compare, ok := schema.Sorts[sortKey]
	if !ok {
		return nil, fmt.Errorf("%w: sort %q", ErrUnknownKey, sortKey)
	}
	return SortBy(out, compare, p.Order), nil
}
