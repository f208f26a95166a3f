package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"courseaudit/internal/audit"
	"courseaudit/internal/logging"
)

const sheetName = "Audit Report"

// Coverage fill colours, matching the usual spreadsheet conventions for
// good, warning, and bad.
const (
	fillGreen  = "C6EFCE"
	fillYellow = "FFEB9C"
	fillRed    = "FFC7CE"
)

const maxColumnWidth = 60

// Write renders results into a colour-coded workbook at path, creating
// parent directories as needed.
func Write(results []audit.CourseResult, path string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "report")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	file := excelize.NewFile()
	defer file.Close()
	if err := file.SetSheetName(file.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("name report sheet: %w", err)
	}

	headers := headerRow()
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	for col, header := range headers {
		axis, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := file.SetCellValue(sheetName, axis, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	fills, err := coverageStyles(file)
	if err != nil {
		return err
	}

	for i, result := range results {
		rowNum := i + 2
		row := dataRow(result)
		for col, value := range row {
			axis, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return fmt.Errorf("report cell: %w", err)
			}
			if err := file.SetCellValue(sheetName, axis, value); err != nil {
				return fmt.Errorf("write row %d: %w", rowNum, err)
			}
			if len(value) > widths[col] {
				widths[col] = len(value)
			}
		}

		first, _ := excelize.CoordinatesToCellName(1, rowNum)
		last, _ := excelize.CoordinatesToCellName(len(row), rowNum)
		if err := file.SetCellStyle(sheetName, first, last, fills[result.Coverage()]); err != nil {
			return fmt.Errorf("style row %d: %w", rowNum, err)
		}
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := file.SetCellStyle(sheetName, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		w := width + 4
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		if err := file.SetColWidth(sheetName, name, name, float64(w)); err != nil {
			return fmt.Errorf("size column %s: %w", name, err)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	logger.Info("report written",
		logging.String("path", path),
		logging.Int("courses", len(results)))
	return nil
}

func headerRow() []string {
	headers := []string{"Course", "Semester", "Term", "Status"}
	for _, col := range audit.AssetColumns {
		headers = append(headers,
			col.Key+"_Local",
			col.Key+"_Local_Path",
			col.Key+"_Drive")
	}
	return headers
}

func dataRow(result audit.CourseResult) []string {
	row := []string{
		result.Course.Name,
		result.Course.Semester,
		result.Course.Term,
		result.Course.Status,
	}
	for _, col := range audit.AssetColumns {
		asset := result.Assets[col.Label]
		found := "No"
		if asset.FoundLocally {
			found = "Yes"
		}
		row = append(row, found, asset.LocalPath, string(asset.DriveStatus))
	}
	return row
}

func coverageStyles(file *excelize.File) (map[audit.Coverage]int, error) {
	styles := make(map[audit.Coverage]int, 3)
	for coverage, colour := range map[audit.Coverage]string{
		audit.CoverageFull:    fillGreen,
		audit.CoveragePartial: fillYellow,
		audit.CoverageNone:    fillRed,
	} {
		id, err := file.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{colour}, Pattern: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("coverage style: %w", err)
		}
		styles[coverage] = id
	}
	return styles, nil
}
