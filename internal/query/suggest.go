package query

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// Suggest returns the candidates within maxDistance edits of term, closest first. It backs
// the "did you mean" line shown when a catalog search comes back empty.
func Suggest(term string, candidates []string, maxDistance int) []string {
	term = strings.TrimSpace(term)
	if term == "" {
		return []string{}
	}
	folder := cases.Fold()
	needle := folder.String(term)

	type scored struct {
		value    string
		distance int
	}
	var matches []scored
	seen := make(map[string]bool)
	for _, c := range candidates {
		folded := folder.String(c)
		if c == "" || seen[folded] {
			continue
		}
		seen[folded] = true
		if d := levenshtein.ComputeDistance(needle, folded); d <= maxDistance {
			matches = append(matches, scored{value: c, distance: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.value)
	}
	return out
}
