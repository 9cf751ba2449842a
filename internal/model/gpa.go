package model

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/stemsi/portfolio-backend/internal/gpa"
)

// ErrMarksNotNumber is returned by MarksText for booleans, arrays and objects.
var ErrMarksNotNumber = errors.New("marks must be a number")

// CourseInput is one course row in a calculate request. Marks is kept raw so
// that numbers, numeric strings and wrong types can all be reported against
// the marks field instead of failing the whole payload.
type CourseInput struct {
	Name  string          `json:"name"`
	Marks json.RawMessage `json:"marks"`
}

// MarksText returns the marks as text for gpa.ParseEntry. A missing or null
// value yields "".
func (c CourseInput) MarksText() (string, error) {
	raw := bytes.TrimSpace(c.Marks)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	switch b := raw[0]; {
	case b == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", ErrMarksNotNumber
		}
		return s, nil
	case b == '-' || (b >= '0' && b <= '9'):
		return string(raw), nil
	default:
		return "", ErrMarksNotNumber
	}
}

// CalculateGPARequest is the payload for a one-shot GPA calculation.
type CalculateGPARequest struct {
	Courses []CourseInput `json:"courses"`
}

// GPAResponse is the rendered calculation result.
type GPAResponse struct {
	GPA            float64            `json:"gpa"`
	GPADisplay     string             `json:"gpa_display"`
	Classification gpa.Classification `json:"classification"`
	CourseCount    int                `json:"course_count"`
}

// NewGPAResponse renders an engine result.
func NewGPAResponse(r gpa.Result) GPAResponse {
	return GPAResponse{
		GPA:            r.GPA,
		GPADisplay:     r.Display(),
		Classification: r.Classification,
		CourseCount:    r.CourseCount,
	}
}
