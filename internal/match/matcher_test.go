package match

import (
	"testing"
	"time"

	"courseaudit/internal/index"
	"courseaudit/internal/scan"
)

func entriesFromPaths(paths ...string) []scan.Entry {
	entries := make([]scan.Entry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, scan.NewEntry(p, scan.KindDirectory))
	}
	return entries
}

func snapshotFromPaths(paths ...string) *index.Snapshot {
	return index.NewSnapshot("fp", time.Now(), entriesFromPaths(paths...))
}

func TestScoreDeterministicAndBounded(t *testing.T) {
	pairs := [][2]string{
		{"Discrete Mathematics", "discrete mathematics"},
		{"Games Video", "Video Games"},
		{"Video Games", "Video Games - Technology and Society"},
		{"completely unrelated", "zzzz"},
		{"", "anything"},
	}
	for _, pair := range pairs {
		first := Score(pair[0], pair[1])
		second := Score(pair[0], pair[1])
		if first != second {
			t.Errorf("Score(%q, %q) not deterministic: %d vs %d", pair[0], pair[1], first, second)
		}
		if first < 0 || first > ScoreMax {
			t.Errorf("Score(%q, %q) = %d, outside [0, 100]", pair[0], pair[1], first)
		}
	}
}

func TestScoreExactAfterNormalization(t *testing.T) {
	if got := Score("MyApp", "myapp"); got != ScoreMax {
		t.Errorf("case-insensitive exact match = %d, want 100", got)
	}
	if got := Score("", ""); got != 0 {
		t.Errorf("empty vs empty = %d, want 0", got)
	}
}

func TestScoreHandlesReorderedWords(t *testing.T) {
	if got := Score("Games Video", "Video Games"); got != ScoreMax {
		t.Errorf("token-sort should fully match reordered words, got %d", got)
	}
}

func TestScoreHandlesTruncatedPrefix(t *testing.T) {
	got := Score("Video Games", "Video Games - Technology and Society")
	if got < 90 {
		t.Errorf("partial similarity for a prefix = %d, want >= 90", got)
	}
}

func TestMatchPathsScenarioCourseFolder(t *testing.T) {
	entries := entriesFromPaths(
		"/mnt/a/Courses/Discrete Mathematics/Final Videos/lecture1.mp4",
		"/mnt/a/Courses/Organic Chemistry/notes.pdf",
	)
	results := MatchPaths(NewQuery("Discrete Mathematics", 75), entries)
	if len(results) == 0 {
		t.Fatal("no results for a course with an exactly named folder")
	}
	if results[0].Path != "/mnt/a/Courses/Discrete Mathematics/Final Videos/lecture1.mp4" {
		t.Errorf("best path = %s", results[0].Path)
	}
	if results[0].Score < 75 {
		t.Errorf("score = %d, want >= 75", results[0].Score)
	}
	if results[0].Tier != TierPathComponent {
		t.Errorf("tier = %s, want path-component", results[0].Tier)
	}
}

func TestMatchPathsThresholdEnforced(t *testing.T) {
	entries := entriesFromPaths("/mnt/a/Gardening Tips/intro.mp4")
	for _, result := range MatchPaths(NewQuery("Quantum Field Theory", 75), entries) {
		if result.Score < 75 {
			t.Errorf("emitted result below threshold: %+v", result)
		}
	}
}

func TestMatchPathsStableTieBreak(t *testing.T) {
	entries := entriesFromPaths(
		"/mnt/a/Math 101",
		"/mnt/b/Math 101",
	)
	results := MatchPaths(NewQuery("Math 101", 75), entries)
	if len(results) != 2 {
		t.Fatalf("result count = %d, want 2", len(results))
	}
	if results[0].Score != results[1].Score {
		t.Fatalf("scores differ: %d vs %d", results[0].Score, results[1].Score)
	}
	if results[0].Path != "/mnt/a/Math 101" || results[1].Path != "/mnt/b/Math 101" {
		t.Errorf("tie not broken by discovery order: %s then %s", results[0].Path, results[1].Path)
	}
}

func TestMatchPathsSkipsShortComponents(t *testing.T) {
	// Every component is under three runes, so nothing is scorable.
	entries := entriesFromPaths("/a/b/c")
	if results := MatchPaths(NewQuery("ab", 1), entries); len(results) != 0 {
		t.Errorf("short components produced results: %v", results)
	}
}

func TestMatchPathsEmptyCatalogue(t *testing.T) {
	if results := MatchPaths(NewQuery("anything", 0), nil); len(results) != 0 {
		t.Errorf("empty catalogue produced results: %v", results)
	}
}

func TestFindAssetPrefersHintedPath(t *testing.T) {
	candidates := []Result{
		{Path: "/mnt/a/Discrete Mathematics", Score: 100},
		{Path: "/mnt/a/Discrete Mathematics/Final Videos", Score: 95},
	}
	found, path := FindAsset(candidates, []string{"video"})
	if !found || path != "/mnt/a/Discrete Mathematics/Final Videos" {
		t.Errorf("FindAsset = (%v, %s), want hinted path", found, path)
	}
}

func TestFindAssetFallsBackToBestCandidate(t *testing.T) {
	candidates := []Result{
		{Path: "/mnt/a/Discrete Mathematics", Score: 100},
	}
	found, path := FindAsset(candidates, []string{"ppt", "slide"})
	if !found || path != "/mnt/a/Discrete Mathematics" {
		t.Errorf("FindAsset = (%v, %s), want best-candidate fallback", found, path)
	}
}

func TestFindAssetNoCandidates(t *testing.T) {
	if found, path := FindAsset(nil, []string{"video"}); found || path != "" {
		t.Error("empty candidates must report not found")
	}
}

func TestFindAssetNoHints(t *testing.T) {
	candidates := []Result{{Path: "/mnt/a/Top", Score: 90}, {Path: "/mnt/a/Second", Score: 80}}
	if found, path := FindAsset(candidates, nil); !found || path != "/mnt/a/Top" {
		t.Error("no hints must return the top candidate")
	}
}

func TestLookupBestExactTier(t *testing.T) {
	snap := snapshotFromPaths("/mnt/a/MyApp.exe", "/mnt/a/other.txt")

	// Scenario: case-different query hits the name key exactly.
	result, found := LookupBest(NewQuery("MyApp.EXE", 90), snap)
	if !found || result.Score != ScoreMax || result.Tier != TierExact {
		t.Fatalf("name lookup = %+v found=%v", result, found)
	}

	// Stem key resolves too.
	result, found = LookupBest(NewQuery("MyApp", 90), snap)
	if !found || result.Score != ScoreMax || result.Tier != TierExact {
		t.Fatalf("stem lookup = %+v found=%v", result, found)
	}
	if result.Path != "/mnt/a/MyApp.exe" {
		t.Errorf("path = %s", result.Path)
	}
}

func TestLookupBestExactBeatsThreshold(t *testing.T) {
	snap := snapshotFromPaths("/mnt/a/myapp.exe")
	// Threshold may be anything; an exact hit always scores 100.
	if _, found := LookupBest(NewQuery("myapp", 100), snap); !found {
		t.Fatal("exact match must ignore the fuzzy threshold")
	}
}

func TestLookupBestRestrictedFuzzyTier(t *testing.T) {
	snap := snapshotFromPaths(
		"/mnt/a/myapps",
		"/mnt/a/myapp2",
		"/mnt/a/myapp3",
		"/mnt/a/mapple",
		"/mnt/a/mats",
		"/mnt/a/unrelated",
	)
	result, found := LookupBest(NewQuery("myapp", 75), snap)
	if !found {
		t.Fatal("expected a fuzzy match")
	}
	if result.Tier != TierRestrictedFuzzy {
		t.Errorf("tier = %s, want restricted-fuzzy", result.Tier)
	}
	if result.Score < 75 || result.Score >= ScoreMax {
		t.Errorf("score = %d, want threshold <= score < 100", result.Score)
	}
}

func TestLookupBestTierWidening(t *testing.T) {
	// The only key sharing the query's first character scores poorly; the
	// true match is a word-reordered name excluded by the restricted
	// filter. With fewer than five restricted keys the full tier must run
	// and surface it.
	snap := snapshotFromPaths(
		"/mnt/a/zebra docs",
		"/mnt/a/documentary zebra",
	)
	result, found := LookupBest(NewQuery("zebra documentary", 90), snap)
	if !found {
		t.Fatal("full-fuzzy tier did not run or did not match")
	}
	if result.Tier != TierFullFuzzy {
		t.Errorf("tier = %s, want full-fuzzy", result.Tier)
	}
	if result.Path != "/mnt/a/documentary zebra" {
		t.Errorf("path = %s, want the word-reordered match", result.Path)
	}
	if result.Score != ScoreMax {
		t.Errorf("token-sort of reordered words = %d, want 100", result.Score)
	}
}

func TestLookupBestThresholdEnforced(t *testing.T) {
	snap := snapshotFromPaths(
		"/mnt/a/maple",
		"/mnt/a/mantis",
		"/mnt/a/marble",
		"/mnt/a/mallet",
		"/mnt/a/magnet",
	)
	if result, found := LookupBest(NewQuery("mxqzw", 95), snap); found {
		t.Fatalf("accepted %+v below a 95 threshold", result)
	}
}

func TestLookupBestEmptyIndex(t *testing.T) {
	snap := index.NewSnapshot("fp", time.Now(), nil)
	if _, found := LookupBest(NewQuery("anything", 0), snap); found {
		t.Fatal("empty index must report not found")
	}
	if _, found := LookupBest(NewQuery("", 0), snap); found {
		t.Fatal("empty query must report not found")
	}
}

func TestNewQueryClampsThreshold(t *testing.T) {
	if q := NewQuery("x", 150); q.Threshold != 100 {
		t.Errorf("threshold = %d, want clamp to 100", q.Threshold)
	}
	if q := NewQuery("x", -5); q.Threshold != 0 {
		t.Errorf("threshold = %d, want clamp to 0", q.Threshold)
	}
	if q := NewQuery("  MiXeD  ", 50); q.Normalized != "mixed" {
		t.Errorf("normalized = %q, want %q", q.Normalized, "mixed")
	}
}
