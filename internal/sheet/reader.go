package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"courseaudit/internal/logging"
	"courseaudit/internal/scan"
)

// Placeholder course names that spreadsheets commonly leave behind.
var skipNames = map[string]bool{
	"":     true,
	"nan":  true,
	"none": true,
	"n/a":  true,
}

// Reader parses course rows out of .xlsx and .csv files.
type Reader struct {
	columns      Columns
	assetColumns []string
	logger       *slog.Logger
}

// NewReader builds a Reader for the given identity column labels and asset
// column labels. A nil logger discards output.
func NewReader(columns Columns, assetColumns []string, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Reader{
		columns:      columns,
		assetColumns: assetColumns,
		logger:       logging.NewComponentLogger(logger, "sheet"),
	}
}

// ReadDir discovers every .xlsx and .csv file under dir (recursively, in
// sorted path order), parses them, and returns the deduplicated course
// list. Files that fail to parse are logged and skipped; a missing
// directory is an error.
func (r *Reader) ReadDir(dir string) ([]Course, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("sheet directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("sheet directory %s: not a directory", dir)
	}

	var files []string
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx", ".csv":
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("discover sheet files in %s: %w", dir, walkErr)
	}
	sort.Strings(files)

	if len(files) == 0 {
		r.logger.Warn("no .xlsx/.csv files found", logging.String("dir", dir))
		return nil, nil
	}

	var all []Course
	for _, path := range files {
		courses, err := r.ReadFile(path)
		if err != nil {
			r.logger.Error("cannot parse sheet file",
				logging.String("path", path),
				logging.Error(err))
			continue
		}
		linked := 0
		for _, course := range courses {
			if len(course.AssetLinks) > 0 {
				linked++
			}
		}
		r.logger.Info("parsed sheet file",
			logging.String("path", path),
			logging.Int("courses", len(courses)),
			logging.Int("with_links", linked))
		all = append(all, courses...)
	}
	return Dedupe(all), nil
}

// ReadFile parses a single .xlsx or .csv file.
func (r *Reader) ReadFile(path string) ([]Course, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return r.readWorkbook(path)
	case ".csv":
		return r.readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported sheet format %q", filepath.Ext(path))
	}
}

// Dedupe keeps the first occurrence of each normalized course name.
func Dedupe(courses []Course) []Course {
	seen := make(map[string]bool, len(courses))
	unique := make([]Course, 0, len(courses))
	for _, course := range courses {
		key := scan.Normalize(course.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, course)
	}
	return unique
}

func (r *Reader) readWorkbook(path string) ([]Course, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Header label to 1-based column index.
	colIdx := make(map[string]int, len(rows[0]))
	for i, label := range rows[0] {
		if label = strings.TrimSpace(label); label != "" {
			colIdx[label] = i + 1
		}
	}
	if _, ok := colIdx[r.columns.Course]; !ok {
		r.logger.Warn("course column not found",
			logging.String("column", r.columns.Course),
			logging.String("path", path))
		return nil, nil
	}

	cellValue := func(row []string, label string) string {
		idx, ok := colIdx[label]
		if !ok || idx > len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx-1])
	}

	courses := make([]Course, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		name := cellValue(row, r.columns.Course)
		if skipNames[scan.Normalize(name)] {
			continue
		}

		links := make(map[string]string)
		for _, label := range r.assetColumns {
			idx, ok := colIdx[label]
			if !ok {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(idx, rowNum)
			if err != nil {
				continue
			}
			has, target, err := file.GetCellHyperLink(sheetName, axis)
			if err == nil && has {
				if target = strings.TrimSpace(target); target != "" {
					links[label] = target
				}
			}
		}

		courses = append(courses, Course{
			Name:       name,
			Semester:   cellValue(row, r.columns.Semester),
			Term:       cellValue(row, r.columns.Term),
			Status:     cellValue(row, r.columns.Status),
			SourceFile: filepath.Base(path),
			Row:        rowNum,
			AssetLinks: links,
		})
	}
	return courses, nil
}

// readCSV accepts the workbook column layout with asset URLs written
// directly into the cells, since CSV has no hyperlink layer.
func (r *Reader) readCSV(path string) ([]Course, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, label := range header {
		if label = strings.TrimSpace(label); label != "" {
			colIdx[label] = i + 1
		}
	}
	if _, ok := colIdx[r.columns.Course]; !ok {
		r.logger.Warn("course column not found",
			logging.String("column", r.columns.Course),
			logging.String("path", path))
		return nil, nil
	}

	cellValue := func(row []string, label string) string {
		idx, ok := colIdx[label]
		if !ok || idx > len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx-1])
	}

	var courses []Course
	for rowNum := 2; ; rowNum++ {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read csv row %d: %w", rowNum, err)
		}

		name := cellValue(row, r.columns.Course)
		if skipNames[scan.Normalize(name)] {
			continue
		}

		links := make(map[string]string)
		for _, label := range r.assetColumns {
			value := cellValue(row, label)
			if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
				links[label] = value
			}
		}

		courses = append(courses, Course{
			Name:       name,
			Semester:   cellValue(row, r.columns.Semester),
			Term:       cellValue(row, r.columns.Term),
			Status:     cellValue(row, r.columns.Status),
			SourceFile: filepath.Base(path),
			Row:        rowNum,
			AssetLinks: links,
		})
	}
	return courses, nil
}
