// Package suggest finds the closest known name for a misspelled one.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxRatio is the largest edit distance, relative to the longer name, that
// still counts as a likely typo.
const maxRatio = 0.4

// Closest returns the candidate nearest to name by case-insensitive edit
// distance. It reports false when no candidate is close enough.
func Closest(name string, candidates []string) (string, bool) {
	best := ""
	bestRatio := maxRatio
	for _, c := range candidates {
		r := ratio(name, c)
		if r < bestRatio {
			best, bestRatio = c, r
		}
	}
	return best, best != ""
}

func ratio(a, b string) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(strings.ToUpper(a), strings.ToUpper(b))
	return float64(dist) / float64(longest)
}
