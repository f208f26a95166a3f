package sheet

// Course is one row parsed from a workbook or CSV file.
type Course struct {
	Name       string
	Semester   string
	Term       string
	Status     string
	SourceFile string
	Row        int
	// AssetLinks maps an asset column label to the Drive URL found behind
	// that cell, when one exists.
	AssetLinks map[string]string
}

// Columns names the header labels for the course identity columns.
type Columns struct {
	Course   string
	Semester string
	Term     string
	Status   string
}
