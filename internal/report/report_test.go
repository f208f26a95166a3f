package report

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"courseaudit/internal/audit"
	"courseaudit/internal/drivelink"
	"courseaudit/internal/sheet"
)

func sampleResults() []audit.CourseResult {
	found := audit.AssetResult{
		FoundLocally: true,
		LocalPath:    "/mnt/a/Discrete Mathematics/Final Videos",
		DriveStatus:  drivelink.StatusNoLink,
	}
	full := audit.CourseResult{
		Course: sheet.Course{Name: "Discrete Mathematics", Semester: "Fall 2025", Term: "T1", Status: "Active"},
		Assets: make(map[string]audit.AssetResult, len(audit.AssetColumns)),
	}
	for _, col := range audit.AssetColumns {
		full.Assets[col.Label] = found
	}

	none := audit.CourseResult{
		Course: sheet.Course{Name: "Quantum Basket Weaving"},
		Assets: make(map[string]audit.AssetResult, len(audit.AssetColumns)),
	}
	for _, col := range audit.AssetColumns {
		none.Assets[col.Label] = audit.AssetResult{DriveStatus: drivelink.StatusNoLink}
	}
	return []audit.CourseResult{full, none}
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "audit_report.xlsx")
	if err := Write(sampleResults(), path, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows("Audit Report")
	if err != nil {
		t.Fatalf("read report sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("row count = %d, want header + 2 courses", len(rows))
	}

	header := rows[0]
	wantCols := 4 + 3*len(audit.AssetColumns)
	if len(header) != wantCols {
		t.Fatalf("header width = %d, want %d", len(header), wantCols)
	}
	if header[0] != "Course" || header[4] != "Course_Outline_Local" {
		t.Errorf("header = %v", header[:5])
	}

	first := rows[1]
	if first[0] != "Discrete Mathematics" || first[4] != "Yes" {
		t.Errorf("first data row = %v", first[:5])
	}
	second := rows[2]
	if second[0] != "Quantum Basket Weaving" || second[4] != "No" {
		t.Errorf("second data row = %v", second[:5])
	}
}

func TestWriteEmptyResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := Write(nil, path, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows("Audit Report")
	if err != nil {
		t.Fatalf("read report sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("row count = %d, want header only", len(rows))
	}
}
