package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/portfolio-backend/internal/gpa"
	"github.com/stemsi/portfolio-backend/internal/importer"
	"github.com/stemsi/portfolio-backend/internal/model"
)

// GPAService adapts request payloads to the GPA engine.
type GPAService struct {
	log zerolog.Logger
}

func NewGPAService(log zerolog.Logger) *GPAService {
	return &GPAService{
		log: log.With().Str("component", "gpa_service").Logger(),
	}
}

// Calculate converts the request rows and runs the engine. Rows are checked
// in order, name before marks, and the first failure aborts the batch.
func (s *GPAService) Calculate(ctx context.Context, courses []model.CourseInput) (gpa.Result, error) {
	entries := make([]gpa.CourseEntry, 0, len(courses))
	for i, c := range courses {
		e, err := courseEntry(i, c)
		if err != nil {
			return gpa.Result{}, err
		}
		entries = append(entries, e)
	}
	return s.compute(ctx, entries)
}

func courseEntry(index int, c model.CourseInput) (gpa.CourseEntry, error) {
	text, err := c.MarksText()
	if err != nil {
		if strings.TrimSpace(c.Name) == "" {
			return gpa.ParseEntry(index, c.Name, "")
		}
		return gpa.CourseEntry{}, &gpa.ValidationError{Index: index, Field: gpa.FieldMarks, Reason: err.Error()}
	}
	return gpa.ParseEntry(index, c.Name, text)
}

// Import reads course rows from an xlsx upload and runs the engine.
func (s *GPAService) Import(ctx context.Context, r io.Reader) (gpa.Result, error) {
	entries, err := importer.ReadCourses(r)
	if err != nil {
		return gpa.Result{}, err
	}
	return s.compute(ctx, entries)
}

// Scale exposes the grading tables.
func (s *GPAService) Scale() gpa.GradingScale {
	return gpa.Scale()
}

func (s *GPAService) compute(ctx context.Context, entries []gpa.CourseEntry) (gpa.Result, error) {
	res, err := gpa.Compute(entries)
	if err != nil {
		s.log.Debug().Err(err).Int("courses", len(entries)).Msg("GPA calculation rejected")
		return gpa.Result{}, err
	}

	s.log.Debug().
		Int("courses", res.CourseCount).
		Float64("gpa", res.GPA).
		Str("classification", string(res.Classification)).
		Msg("GPA calculated")
	return res, nil
}

// ValidationFields renders an engine validation error as a field map keyed
// by the request path of the offending value, e.g. "courses[1].marks".
func ValidationFields(err error) map[string]string {
	var ve *gpa.ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	key := fmt.Sprintf("courses[%d].%s", ve.Index, ve.Field)
	return map[string]string{key: ve.Reason}
}

// SheetValidationFields is ValidationFields for imports. Keys carry the
// 1-based sheet row as shown by spreadsheet apps, e.g. "sheet_rows[4].marks".
func SheetValidationFields(err error) map[string]string {
	var ve *gpa.ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	key := fmt.Sprintf("sheet_rows[%d].%s", ve.Index+1, ve.Field)
	return map[string]string{key: ve.Reason}
}
