package reconcile

import "github.com/agext/levenshtein"

// Similarity returns a normalized character similarity between two strings
// in [0,100], 100 meaning identical.
func Similarity(a, b string) float64 {
	return levenshtein.Similarity(a, b, nil) * 100
}

// bestMatch scores a candidate against every reference entry and returns the
// best one. Ties are resolved by reference-list order: only a strictly
// greater score replaces the current best, so equal-scoring entries resolve
// deterministically to the earlier one.
func bestMatch(candidate string, refs []string) (string, float64) {
	var (
		best      string
		bestScore float64 = -1
	)
	for _, ref := range refs {
		if score := Similarity(candidate, ref); score > bestScore {
			best = ref
			bestScore = score
		}
	}
	if bestScore < 0 {
		return "", 0
	}
	return best, bestScore
}
