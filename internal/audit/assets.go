package audit

// AssetColumn describes one audited asset type: the sheet column label
// that carries its Drive link, a short key used in report column names,
// and the keywords that identify its subfolder among course candidates.
type AssetColumn struct {
	Label string
	Key   string
	Hints []string
}

// AssetColumns is the fixed audit surface, in report column order.
// Course Artifacts has no hints, so it resolves to the best course
// candidate directly.
var AssetColumns = []AssetColumn{
	{Label: "Course Outline", Key: "Course_Outline", Hints: []string{"outline", "syllabus", "cod"}},
	{Label: "PPTs", Key: "PPTs", Hints: []string{"ppt", "slide", "presentation"}},
	{Label: "Written Assets (PQ, GQ, DP)", Key: "Written_Assets", Hints: []string{"written", "pq", "gq", "quiz", "discussion"}},
	{Label: "Final Videos", Key: "Final_Videos", Hints: []string{"final", "video", "mp4", "mov", "mkv", "avi"}},
	{Label: "Raw Videos", Key: "Raw_Videos", Hints: []string{"raw", "footage", "rushes"}},
	{Label: "Course Artifacts Link", Key: "Course_Artifacts", Hints: nil},
}

// AssetLabels returns the column labels in order, for sheet parsing.
func AssetLabels() []string {
	labels := make([]string, len(AssetColumns))
	for i, col := range AssetColumns {
		labels[i] = col.Label
	}
	return labels
}
