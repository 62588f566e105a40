package merchant

import "strings"

// DefaultThreshold is the minimum fuzzy similarity accepted when resolving
// a merchant. Lower values (say 70) produce false positives: an unrelated
// "Sweep to OD Account" narration starts matching short merchant names.
const DefaultThreshold = 85

// Normalizer resolves raw merchant text against a canonical merchant list.
// The list is read-only after construction, so one Normalizer is safe to
// share across ingestion runs.
type Normalizer struct {
	canonical []string
	threshold int
}

// NewNormalizer builds a Normalizer. A non-positive threshold falls back to
// DefaultThreshold.
func NewNormalizer(canonical []string, threshold int) *Normalizer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Normalizer{canonical: canonical, threshold: threshold}
}

// Normalize resolves merchantRaw (falling back to the full description when
// the extraction produced nothing) against the canonical list:
//
//	exact containment of a canonical name  -> score 100
//	containment of a canonical word (>=4)  -> score 95
//	fuzzy token-sort similarity            -> accepted only at or above the threshold
//
// When nothing clears the threshold the canonical name is empty and the
// best score seen is returned for diagnostics.
func (n *Normalizer) Normalize(merchantRaw, description string) (string, int) {
	raw := strings.ToLower(strings.TrimSpace(merchantRaw))
	if raw == "" {
		raw = strings.ToLower(strings.TrimSpace(description))
	}
	if raw == "" {
		return "", 0
	}

	for _, c := range n.canonical {
		if strings.Contains(raw, strings.ToLower(c)) {
			return c, 100
		}
	}

	for _, c := range n.canonical {
		for _, word := range strings.Fields(strings.ToLower(c)) {
			if len(word) >= 4 && strings.Contains(raw, word) {
				return c, 95
			}
		}
	}

	best, bestScore := "", 0
	for _, c := range n.canonical {
		if s := Similarity(raw, c); s > bestScore {
			best, bestScore = c, s
		}
	}
	if bestScore >= n.threshold {
		return best, bestScore
	}
	return "", bestScore
}
