// Package gpa converts course marks into a grade-point average and an
// honours classification. Everything here is a pure function of its input.
package gpa

import (
	"math"
	"strconv"
	"strings"
)

// Mark bounds accepted by Compute.
const (
	MinMarks = 0.0
	MaxMarks = 100.0
)

// Field names reported in a ValidationError.
const (
	FieldName  = "name"
	FieldMarks = "marks"
)

// CourseEntry is one (course name, mark) pair submitted for calculation.
type CourseEntry struct {
	Name  string  `json:"name"`
	Marks float64 `json:"marks"`
}

// Result is the outcome of a successful calculation.
type Result struct {
	GPA            float64        `json:"gpa"`
	Classification Classification `json:"classification"`
	CourseCount    int            `json:"course_count"`
}

// Display formats the GPA with exactly two decimals, e.g. "2.00".
func (r Result) Display() string {
	return strconv.FormatFloat(r.GPA, 'f', 2, 64)
}

// GradePoints maps a mark to its grade point. Any input maps to a value;
// callers validate the range beforehand.
func GradePoints(marks float64) float64 {
	return float64(halfPoints(marks)) / 2
}

// halfPoints returns the grade point in units of 0.5 so that sums and means
// can be computed without floating point drift.
func halfPoints(marks float64) int {
	for _, band := range gradeBands {
		if marks >= band.MinMarks {
			return band.halfPoints
		}
	}
	return 0
}

// Classify maps an average grade point to its honours label.
func Classify(gpa float64) Classification {
	for _, band := range classBands {
		if gpa >= band.MinGPA {
			return band.Label
		}
	}
	return Fail
}

// Validate checks a single entry. index is only used for error reporting.
func Validate(index int, e CourseEntry) error {
	if strings.TrimSpace(e.Name) == "" {
		return &ValidationError{Index: index, Field: FieldName, Reason: "course name is required"}
	}
	if math.IsNaN(e.Marks) || math.IsInf(e.Marks, 0) {
		return &ValidationError{Index: index, Field: FieldMarks, Reason: "marks must be a number"}
	}
	if e.Marks < MinMarks || e.Marks > MaxMarks {
		return &ValidationError{Index: index, Field: FieldMarks, Reason: "marks must be between 0 and 100"}
	}
	return nil
}

// Compute validates every entry and returns the rounded mean grade point and
// its classification. The first invalid entry aborts the whole batch.
//
// The mean is rounded to two decimals half away from zero. Grade points are
// multiples of 0.5, so the rounding is done exactly in integer arithmetic.
func Compute(entries []CourseEntry) (Result, error) {
	if len(entries) == 0 {
		return Result{}, ErrEmptyBatch
	}

	total := 0
	for i, e := range entries {
		if err := Validate(i, e); err != nil {
			return Result{}, err
		}
		total += halfPoints(e.Marks)
	}

	n := len(entries)
	// mean*100 = total*50/n, rounded half up (all terms are non-negative).
	cents := (100*total + n) / (2 * n)
	gpa := float64(cents) / 100

	return Result{
		GPA:            gpa,
		Classification: Classify(gpa),
		CourseCount:    n,
	}, nil
}

// ParseEntry builds a CourseEntry from raw form text. An empty or
// non-numeric marks value is reported against the marks field.
func ParseEntry(index int, name, marksText string) (CourseEntry, error) {
	name = strings.TrimSpace(name)
	marksText = strings.TrimSpace(marksText)

	if name == "" {
		return CourseEntry{}, &ValidationError{Index: index, Field: FieldName, Reason: "course name is required"}
	}
	if marksText == "" {
		return CourseEntry{}, &ValidationError{Index: index, Field: FieldMarks, Reason: "marks are required"}
	}

	marks, err := strconv.ParseFloat(marksText, 64)
	if err != nil {
		return CourseEntry{}, &ValidationError{Index: index, Field: FieldMarks, Reason: "marks must be a number"}
	}

	e := CourseEntry{Name: name, Marks: marks}
	if err := Validate(index, e); err != nil {
		return CourseEntry{}, err
	}
	return e, nil
}
