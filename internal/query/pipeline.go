// Package query holds the pure filter, sort and partition functions screens apply to
// store snapshots. No function here modifies its input.
package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// All is the equality filter sentinel that matches every item.
const All = "all"

// Direction is a sort order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// ParseDirection accepts asc/desc in any case. An empty string is ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("%w: sort order %q", ErrUnknownKey, s)
}

// FilterByText keeps items where any field contains q as a case-insensitive substring.
// A blank query keeps everything.
func FilterByText[T any](items []T, q string, fields ...func(T) string) []T {
	q = strings.TrimSpace(q)
	if q == "" {
		return clone(items)
	}
	folder := cases.Fold()
	needle := folder.String(q)

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields {
			if strings.Contains(folder.String(field(item)), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// FilterByEquality keeps items whose field equals value. The All sentinel and the empty
// value keep everything.
func FilterByEquality[T any](items []T, field func(T) string, value string) []T {
	if value == "" || value == All {
		return clone(items)
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if field(item) == value {
			out = append(out, item)
		}
	}
	return out
}

// SortBy returns a stably sorted copy. Descending inverts cmp, so equal items keep
// their input order in both directions.
func SortBy[T any](items []T, compare func(a, b T) int, dir Direction) []T {
	out := clone(items)
	if dir == Descending {
		slices.SortStableFunc(out, func(a, b T) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(out, compare)
	}
	return out
}

// Partition splits items into those matching pred and the rest, keeping input order in
// both. Every item lands in exactly one of the two.
func Partition[T any](items []T, pred func(T) bool) (matching, rest []T) {
	matching = make([]T, 0, len(items))
	rest = make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			matching = append(matching, item)
		} else {
			rest = append(rest, item)
		}
	}
	return matching, rest
}

// By builds a comparator from a key function.
func By[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
