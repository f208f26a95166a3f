package audit

import (
	"context"
	"strings"
	"testing"
	"time"

	"courseaudit/internal/drivelink"
	"courseaudit/internal/index"
	"courseaudit/internal/scan"
	"courseaudit/internal/sheet"
)

type cannedChecker struct {
	statuses map[string]drivelink.Status
}

func (c cannedChecker) Check(_ context.Context, link string) drivelink.Status {
	if strings.TrimSpace(link) == "" {
		return drivelink.StatusNoLink
	}
	if status, ok := c.statuses[link]; ok {
		return status
	}
	return drivelink.StatusAvailable
}

func testSnapshot() *index.Snapshot {
	paths := []string{
		"/mnt/a/Discrete Mathematics",
		"/mnt/a/Discrete Mathematics/Course Outline",
		"/mnt/a/Discrete Mathematics/PPT Slides",
		"/mnt/a/Discrete Mathematics/Written Quizzes",
		"/mnt/a/Discrete Mathematics/Final Videos",
		"/mnt/a/Discrete Mathematics/Raw Footage",
	}
	entries := make([]scan.Entry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, scan.NewEntry(p, scan.KindDirectory))
	}
	return index.NewSnapshot("fp", time.Now(), entries)
}

func TestRunMatchedCourseIsFullyCovered(t *testing.T) {
	runner := NewRunner(75, drivelink.Disabled{}, nil)
	courses := []sheet.Course{{Name: "Discrete Mathematics"}}

	results, summary, err := runner.Run(context.Background(), courses, testSnapshot())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("result count = %d", len(results))
	}

	result := results[0]
	if got := result.Coverage(); got != CoverageFull {
		t.Errorf("coverage = %s, want full", got)
	}
	if summary.Full != 1 || summary.None != 0 || summary.Partial != 0 {
		t.Errorf("summary = %+v", summary)
	}

	videos := result.Assets["Final Videos"]
	if !videos.FoundLocally || videos.LocalPath != "/mnt/a/Discrete Mathematics/Final Videos" {
		t.Errorf("Final Videos = %+v, want the hinted subfolder", videos)
	}
	outline := result.Assets["Course Outline"]
	if !outline.FoundLocally || outline.LocalPath != "/mnt/a/Discrete Mathematics/Course Outline" {
		t.Errorf("Course Outline = %+v", outline)
	}
	if videos.DriveStatus != drivelink.StatusNoLink {
		t.Errorf("drive status without a link = %s", videos.DriveStatus)
	}
}

func TestRunUnmatchedCourseGetsSuggestions(t *testing.T) {
	runner := NewRunner(75, drivelink.Disabled{}, nil)
	courses := []sheet.Course{{Name: "Quantum Basket Weaving"}}

	results, summary, err := runner.Run(context.Background(), courses, testSnapshot())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	result := results[0]
	if got := result.Coverage(); got != CoverageNone {
		t.Errorf("coverage = %s, want none", got)
	}
	if summary.None != 1 {
		t.Errorf("summary = %+v", summary)
	}
	for label, asset := range result.Assets {
		if asset.FoundLocally {
			t.Errorf("asset %q found for an unmatched course: %+v", label, asset)
		}
	}
	if len(result.Suggestions) > maxSuggestions {
		t.Errorf("suggestion count = %d", len(result.Suggestions))
	}
}

func TestRunBrokenLinkDowngradesCoverage(t *testing.T) {
	link := "https://drive.google.com/file/d/brokenbrokenbroken/view"
	checker := cannedChecker{statuses: map[string]drivelink.Status{link: drivelink.StatusBroken}}
	runner := NewRunner(75, checker, nil)
	courses := []sheet.Course{{
		Name:       "Discrete Mathematics",
		AssetLinks: map[string]string{"Final Videos": link},
	}}

	results, summary, err := runner.Run(context.Background(), courses, testSnapshot())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := results[0].Coverage(); got != CoveragePartial {
		t.Errorf("coverage = %s, want partial", got)
	}
	if summary.Partial != 1 || summary.LiveLinks != 0 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestRunCountsLiveLinks(t *testing.T) {
	link := "https://drive.google.com/drive/folders/livelivelive12"
	runner := NewRunner(75, cannedChecker{}, nil)
	courses := []sheet.Course{{
		Name:       "Discrete Mathematics",
		AssetLinks: map[string]string{"Course Outline": link},
	}}

	results, summary, err := runner.Run(context.Background(), courses, testSnapshot())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.LiveLinks != 1 {
		t.Errorf("live links = %d, want 1", summary.LiveLinks)
	}
	if got := results[0].Coverage(); got != CoverageFull {
		t.Errorf("coverage = %s, want full (the only checked link is live)", got)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(75, drivelink.Disabled{}, nil)
	_, _, err := runner.Run(ctx, []sheet.Course{{Name: "Anything"}}, testSnapshot())
	if err == nil {
		t.Fatal("expected a context error")
	}
}

func TestRunEmptySnapshot(t *testing.T) {
	runner := NewRunner(75, drivelink.Disabled{}, nil)
	results, summary, err := runner.Run(context.Background(), []sheet.Course{{Name: "Anything"}}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 || summary.None != 1 {
		t.Errorf("results = %d, summary = %+v", len(results), summary)
	}
}

func TestAssetLabelsOrder(t *testing.T) {
	labels := AssetLabels()
	if len(labels) != len(AssetColumns) {
		t.Fatalf("label count = %d", len(labels))
	}
	if labels[0] != "Course Outline" || labels[len(labels)-1] != "Course Artifacts Link" {
		t.Errorf("labels = %v", labels)
	}
}
