package match

import (
	"sort"
	"strings"

	"courseaudit/internal/index"
	"courseaudit/internal/scan"
)

// Tier identifies the matching stage that produced a result.
type Tier string

const (
	TierExact           Tier = "exact"
	TierRestrictedFuzzy Tier = "restricted-fuzzy"
	TierFullFuzzy       Tier = "full-fuzzy"
	TierPathComponent   Tier = "path-component"
)

// Path components shorter than this are too short to score meaningfully.
const minComponentLen = 3

// The restricted fuzzy pool must hold at least this many keys to be
// trusted; smaller pools trigger the full-fuzzy pass.
const minRestrictedPool = 5

// Query is one match request. Threshold is the inclusive lower bound for
// acceptance, clamped to [0, 100].
type Query struct {
	Raw        string
	Normalized string
	Threshold  int
}

// NewQuery normalizes raw and clamps threshold.
func NewQuery(raw string, threshold int) Query {
	return Query{
		Raw:        raw,
		Normalized: scan.Normalize(raw),
		Threshold:  clampScore(threshold),
	}
}

// Result is one accepted candidate.
type Result struct {
	Path  string
	Score int
	Tier  Tier
}

// MatchPaths is the path-component policy: every entry's path is scored by
// its best-matching component and entries at or above the query threshold
// are returned sorted by score descending, ties in discovery order. The
// result is computed once per query and is reusable across any number of
// FindAsset refinements.
func MatchPaths(q Query, entries []scan.Entry) []Result {
	if q.Normalized == "" {
		return nil
	}

	var results []Result
	for _, entry := range entries {
		score := scorePathComponents(q.Normalized, entry.Path)
		if score >= q.Threshold {
			results = append(results, Result{Path: entry.Path, Score: score, Tier: TierPathComponent})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// scorePathComponents returns the best similarity between the query and
// any single path component at least minComponentLen runes long.
func scorePathComponents(normalizedQuery, path string) int {
	components := strings.FieldsFunc(scan.Normalize(path), func(r rune) bool {
		return r == '/' || r == '\\'
	})

	best := 0
	for _, component := range components {
		if len([]rune(component)) < minComponentLen {
			continue
		}
		if score := scoreNormalized(normalizedQuery, component); score > best {
			best = score
			if best == ScoreMax {
				break
			}
		}
	}
	return best
}

// FindAsset narrows pre-filtered candidates to the best path that also
// carries one of the hint keywords anywhere in its full path. When no
// candidate carries a hint, the highest-scoring candidate is still
// returned: the course folder exists even if the asset subfolder was not
// identified. An empty candidate list reports not found.
func FindAsset(candidates []Result, hints []string) (bool, string) {
	if len(candidates) == 0 {
		return false, ""
	}
	if len(hints) == 0 {
		return true, candidates[0].Path
	}

	for _, candidate := range candidates {
		lowered := scan.Normalize(candidate.Path)
		for _, hint := range hints {
			if hint = scan.Normalize(hint); hint != "" && strings.Contains(lowered, hint) {
				return true, candidate.Path
			}
		}
	}
	return true, candidates[0].Path
}

// LookupBest is the indexed policy: exact key hit, then restricted fuzzy,
// then full fuzzy when the restricted pool holds fewer than
// minRestrictedPool keys. A miss across all tiers is (Result{}, false),
// never an error.
func LookupBest(q Query, snapshot *index.Snapshot) (Result, bool) {
	if q.Normalized == "" || snapshot == nil {
		return Result{}, false
	}

	// Exact tier: the mapping is keyed by both names and stems, so one
	// lookup covers both, regardless of threshold.
	if entries := snapshot.Get(q.Normalized); len(entries) > 0 {
		return Result{Path: entries[0].Path, Score: ScoreMax, Tier: TierExact}, true
	}

	pool, poolSize := restrictedPool(q.Normalized, snapshot.Keys())
	bestKey, bestScore := bestFuzzyKey(q.Normalized, pool)
	if poolSize >= minRestrictedPool {
		if bestScore >= q.Threshold && bestKey != "" {
			return Result{
				Path:  snapshot.Get(bestKey)[0].Path,
				Score: bestScore,
				Tier:  TierRestrictedFuzzy,
			}, true
		}
		return Result{}, false
	}

	// The restricted filter cannot be trusted on a pool this small: the
	// true best match may have been excluded. Widen to every key.
	bestKey, bestScore = bestFuzzyKey(q.Normalized, snapshot.Keys())
	if bestScore >= q.Threshold && bestKey != "" {
		return Result{
			Path:  snapshot.Get(bestKey)[0].Path,
			Score: bestScore,
			Tier:  TierFullFuzzy,
		}, true
	}
	return Result{}, false
}

// restrictedPool selects keys sharing the query's first rune whose rune
// length is within max(3, len/2) of the query's.
func restrictedPool(normalizedQuery string, keys []string) ([]string, int) {
	queryRunes := []rune(normalizedQuery)
	first := queryRunes[0]
	window := len(queryRunes) / 2
	if window < 3 {
		window = 3
	}

	var pool []string
	for _, key := range keys {
		keyRunes := []rune(key)
		if len(keyRunes) == 0 || keyRunes[0] != first {
			continue
		}
		delta := len(keyRunes) - len(queryRunes)
		if delta < 0 {
			delta = -delta
		}
		if delta <= window {
			pool = append(pool, key)
		}
	}
	return pool, len(pool)
}

// bestFuzzyKey scores the query against every key with the token
// similarity metric. Keys are visited in insertion order and only a
// strictly greater score replaces the incumbent, so equal-scoring keys
// resolve to the first discovered.
func bestFuzzyKey(normalizedQuery string, keys []string) (string, int) {
	bestKey, bestScore := "", -1
	for _, key := range keys {
		if score := tokenSimilarity(normalizedQuery, key); score > bestScore {
			bestKey, bestScore = key, score
		}
	}
	return bestKey, bestScore
}
