package gpa

// Classification is an honours label derived from an average grade point.
type Classification string

const (
	FirstClass  Classification = "First Class Honours"
	UpperSecond Classification = "Second Class Honours (Upper Division)"
	LowerSecond Classification = "Second Class Honours (Lower Division)"
	Pass        Classification = "Pass"
	Fail        Classification = "Fail"
)

// GradeBand maps marks at or above MinMarks to a grade point.
type GradeBand struct {
	MinMarks    float64 `json:"min_marks"`
	GradePoints float64 `json:"grade_points"`
	halfPoints  int
}

// ClassBand maps an average at or above MinGPA to a label.
type ClassBand struct {
	MinGPA float64        `json:"min_gpa"`
	Label  Classification `json:"label"`
}

// Bands are ordered highest first; the first match wins.
var gradeBands = []GradeBand{
	{MinMarks: 90, GradePoints: 4.0, halfPoints: 8},
	{MinMarks: 80, GradePoints: 3.5, halfPoints: 7},
	{MinMarks: 70, GradePoints: 3.0, halfPoints: 6},
	{MinMarks: 60, GradePoints: 2.5, halfPoints: 5},
	{MinMarks: 50, GradePoints: 2.0, halfPoints: 4},
}

var classBands = []ClassBand{
	{MinGPA: 3.7, Label: FirstClass},
	{MinGPA: 3.0, Label: UpperSecond},
	{MinGPA: 2.5, Label: LowerSecond},
	{MinGPA: 2.0, Label: Pass},
}

// GradingScale describes both threshold tables. Marks below the lowest grade
// band score 0.0; averages below the lowest class band are classified Fail.
type GradingScale struct {
	GradeBands []GradeBand `json:"grade_bands"`
	ClassBands []ClassBand `json:"class_bands"`
	Fallback   struct {
		GradePoints    float64        `json:"grade_points"`
		Classification Classification `json:"classification"`
	} `json:"fallback"`
}

// Scale returns a copy of the grading tables.
func Scale() GradingScale {
	var s GradingScale
	s.GradeBands = append([]GradeBand(nil), gradeBands...)
	s.ClassBands = append([]ClassBand(nil), classBands...)
	s.Fallback.GradePoints = 0
	s.Fallback.Classification = Fail
	return s
}
