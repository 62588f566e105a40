// Package merchant extracts counterparty names from statement narrations
// and resolves them against a canonical merchant list.
package merchant

import (
	"math"
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Similarity scores how alike two text fragments are on a 0-100 scale.
// Both sides are lowercased and token-sorted before computing Levenshtein
// distance, so word order does not matter. Containment of one side in the
// other short-circuits to 100.
func Similarity(a, b string) int {
	sa, sb := tokenSort(a), tokenSort(b)
	if sa == "" || sb == "" {
		return 0
	}
	if sa == sb || strings.Contains(sa, sb) || strings.Contains(sb, sa) {
		return 100
	}

	// DefaultOptionsWithSub charges substitutions 1 like insertions and
	// deletions; the plain DefaultOptions charges 2 and would deflate every
	// score on the 0-100 scale.
	ra, rb := []rune(sa), []rune(sb)
	dist := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptionsWithSub)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	score := int(math.Round((1 - float64(dist)/float64(maxLen)) * 100))
	if score < 0 {
		return 0
	}
	return score
}

// tokenSort lowercases, splits on non-alphanumerics, sorts the tokens and
// rejoins them.
func tokenSort(s string) string {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
