package audit

import (
	"context"
	"log/slog"

	"github.com/sahilm/fuzzy"

	"courseaudit/internal/drivelink"
	"courseaudit/internal/index"
	"courseaudit/internal/logging"
	"courseaudit/internal/match"
	"courseaudit/internal/scan"
	"courseaudit/internal/sheet"
)

// Unmatched courses get at most this many name suggestions.
const maxSuggestions = 3

// AssetResult is the audit outcome for one asset type within one course.
type AssetResult struct {
	FoundLocally bool
	LocalPath    string
	DriveStatus  drivelink.Status
}

// Coverage classifies how much of a course was found.
type Coverage int

const (
	CoverageNone Coverage = iota
	CoveragePartial
	CoverageFull
)

func (c Coverage) String() string {
	switch c {
	case CoverageFull:
		return "full"
	case CoveragePartial:
		return "partial"
	default:
		return "none"
	}
}

// CourseResult is the full audit outcome for one course.
type CourseResult struct {
	Course sheet.Course
	// Assets maps an asset column label to its result.
	Assets map[string]AssetResult
	// Suggestions holds index keys close to the course name when no
	// local candidate cleared the threshold.
	Suggestions []string
}

// Coverage is full when every asset was found locally and every checked
// Drive link is live, none when nothing was found anywhere, and partial
// otherwise.
func (r CourseResult) Coverage() Coverage {
	localFound := 0
	driveLive, driveChecked := 0, 0
	for _, col := range AssetColumns {
		asset := r.Assets[col.Label]
		if asset.FoundLocally {
			localFound++
		}
		switch asset.DriveStatus {
		case drivelink.StatusNoLink, drivelink.StatusNotChecked:
		case drivelink.StatusAvailable:
			driveLive++
			driveChecked++
		default:
			driveChecked++
		}
	}

	switch {
	case localFound == len(AssetColumns) && driveLive == driveChecked:
		return CoverageFull
	case localFound == 0 && driveLive == 0:
		return CoverageNone
	default:
		return CoveragePartial
	}
}

// Summary aggregates one audit run.
type Summary struct {
	Courses     int
	Full        int
	Partial     int
	None        int
	LocalAssets int
	LiveLinks   int
}

// Runner audits courses against an index snapshot.
type Runner struct {
	threshold int
	checker   drivelink.Checker
	logger    *slog.Logger
}

// NewRunner builds a Runner. A nil checker disables link probing and a
// nil logger discards output.
func NewRunner(threshold int, checker drivelink.Checker, logger *slog.Logger) *Runner {
	if checker == nil {
		checker = drivelink.Disabled{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		threshold: threshold,
		checker:   checker,
		logger:    logging.NewComponentLogger(logger, "audit"),
	}
}

// Run audits every course. The candidate set is computed once per course
// and reused across all asset columns. Run stops early only on context
// cancellation.
func (r *Runner) Run(ctx context.Context, courses []sheet.Course, snapshot *index.Snapshot) ([]CourseResult, Summary, error) {
	summary := Summary{Courses: len(courses)}
	results := make([]CourseResult, 0, len(courses))

	var catalogue []scan.Entry
	if snapshot != nil {
		catalogue = snapshot.Entries()
	}
	for _, course := range courses {
		if err := ctx.Err(); err != nil {
			return results, summary, err
		}

		query := match.NewQuery(course.Name, r.threshold)
		candidates := match.MatchPaths(query, catalogue)

		result := CourseResult{
			Course: course,
			Assets: make(map[string]AssetResult, len(AssetColumns)),
		}
		for _, col := range AssetColumns {
			asset := AssetResult{}
			if found, path := match.FindAsset(candidates, col.Hints); found {
				asset.FoundLocally = true
				asset.LocalPath = path
				summary.LocalAssets++
			}
			asset.DriveStatus = r.checker.Check(ctx, course.AssetLinks[col.Label])
			if asset.DriveStatus == drivelink.StatusAvailable {
				summary.LiveLinks++
			}
			result.Assets[col.Label] = asset
		}

		if len(candidates) == 0 && snapshot != nil {
			result.Suggestions = suggestNames(query.Normalized, snapshot.Keys())
			r.logger.Info("no local match for course",
				logging.String(logging.FieldQuery, course.Name),
				logging.Any("suggestions", result.Suggestions))
		}

		switch result.Coverage() {
		case CoverageFull:
			summary.Full++
		case CoveragePartial:
			summary.Partial++
		default:
			summary.None++
		}
		results = append(results, result)
	}
	return results, summary, nil
}

// suggestNames returns up to maxSuggestions index keys closest to the
// normalized course name.
func suggestNames(name string, keys []string) []string {
	matches := fuzzy.Find(name, keys)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}
