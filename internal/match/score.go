package match

import (
	fuzzywuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"courseaudit/internal/scan"
)

// ScoreMax is the score of an exact match after normalization.
const ScoreMax = 100

// Score combines token-sort and partial similarity into one ratio in
// [0, 100]. Identical strings after normalization short-circuit to
// ScoreMax without fuzzy scoring.
func Score(a, b string) int {
	return scoreNormalized(scan.Normalize(a), scan.Normalize(b))
}

// scoreNormalized expects both inputs already normalized.
func scoreNormalized(a, b string) int {
	if a == b {
		if a == "" {
			return 0
		}
		return ScoreMax
	}
	if a == "" || b == "" {
		return 0
	}
	score := fuzzywuzzy.TokenSortRatio(a, b)
	if partial := fuzzywuzzy.PartialRatio(a, b); partial > score {
		score = partial
	}
	return clampScore(score)
}

// tokenSimilarity is the single-metric scorer used by the fuzzy lookup
// tiers. Exact equality still short-circuits to ScoreMax.
func tokenSimilarity(a, b string) int {
	if a == b {
		if a == "" {
			return 0
		}
		return ScoreMax
	}
	if a == "" || b == "" {
		return 0
	}
	return clampScore(fuzzywuzzy.TokenSortRatio(a, b))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > ScoreMax {
		return ScoreMax
	}
	return score
}
