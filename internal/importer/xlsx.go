// Package importer reads course rows from uploaded spreadsheets.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stemsi/portfolio-backend/internal/gpa"
	"github.com/xuri/excelize/v2"
)

var (
	ErrInvalidSpreadsheet = errors.New("invalid spreadsheet")
	ErrNoSheet            = errors.New("spreadsheet does not contain any sheets")
)

// ReadCourses reads course entries from the first sheet of an xlsx file.
// Column A holds the course name and column B the marks. A first row whose
// marks cell holds non-numeric text is treated as a header. Blank rows are
// skipped. Validation errors carry the 0-based sheet row as their index.
func ReadCourses(r io.Reader) ([]gpa.CourseEntry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpreadsheet, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoSheet
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	entries := make([]gpa.CourseEntry, 0, len(rows))
	for i, row := range rows {
		name, marks := cell(row, 0), cell(row, 1)
		if name == "" && marks == "" {
			continue
		}
		if i == 0 && isHeader(marks) {
			continue
		}

		entry, err := gpa.ParseEntry(i, name, marks)
		if err != nil {
			return nil, fmt.Errorf("sheet row %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// isHeader reports whether a first-row marks cell is a column label. A blank
// cell is not a label; that row is a course with its marks missing.
func isHeader(marks string) bool {
	if marks == "" {
		return false
	}
	_, err := strconv.ParseFloat(marks, 64)
	return err != nil
}
