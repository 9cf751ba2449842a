package importer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stemsi/portfolio-backend/internal/gpa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadCoursesWithHeader(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"Course", "Marks"},
		{"Math", 95},
		{},
		{"CS", 85},
	})

	entries, err := ReadCourses(buf)
	require.NoError(t, err)
	assert.Equal(t, []gpa.CourseEntry{{Name: "Math", Marks: 95}, {Name: "CS", Marks: 85}}, entries)
}

func TestReadCoursesWithoutHeader(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"Physics", 72.5},
	})

	entries, err := ReadCourses(buf)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 72.5, entries[0].Marks)
}

func TestReadCoursesInvalidRow(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"Course", "Marks"},
		{"Math", 95},
		{"CS", 140},
	})

	_, err := ReadCourses(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheet row 3")

	var ve *gpa.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 2, ve.Index)
	assert.Equal(t, gpa.FieldMarks, ve.Field)
}

func TestReadCoursesIndexFollowsSheetRow(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"Course", "Marks"},
		{},
		{"Math", 95},
		{},
		{"CS", "eighty"},
	})

	_, err := ReadCourses(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheet row 5")

	var ve *gpa.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 4, ve.Index)
	assert.Equal(t, gpa.FieldMarks, ve.Field)
}

func TestReadCoursesFirstRowMissingMarks(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"Math"},
		{"CS", 85},
	})

	entries, err := ReadCourses(buf)
	assert.Nil(t, entries)

	var ve *gpa.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 0, ve.Index)
	assert.Equal(t, gpa.FieldMarks, ve.Field)
}

func TestReadCoursesNotASpreadsheet(t *testing.T) {
	_, err := ReadCourses(strings.NewReader("name,marks\nMath,95\n"))
	assert.ErrorIs(t, err, ErrInvalidSpreadsheet)
}
