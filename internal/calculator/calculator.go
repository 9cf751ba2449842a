// Package calculator holds the mutable presentation state around the GPA
// engine: an editable list of course rows and a result panel.
package calculator

import (
	"errors"

	"github.com/google/uuid"
	"github.com/stemsi/portfolio-backend/internal/gpa"
)

var (
	ErrLastRow     = errors.New("at least one course row must remain")
	ErrRowNotFound = errors.New("course row not found")
)

// Row is a course row as typed by the user. Marks stays raw text until submit.
type Row struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Marks string `json:"marks"`
}

// Editor is the ordered list of course rows. It never holds fewer than one row.
type Editor struct {
	rows  []Row
	newID func() string
}

// NewEditor returns an editor with a single empty row.
func NewEditor() *Editor {
	e := &Editor{newID: func() string { return uuid.NewString() }}
	e.Reset()
	return e
}

// AddRow appends an empty row and returns it.
func (e *Editor) AddRow() Row {
	r := Row{ID: e.newID()}
	e.rows = append(e.rows, r)
	return r
}

// UpdateRow replaces the text of an existing row.
func (e *Editor) UpdateRow(id, name, marks string) error {
	for i := range e.rows {
		if e.rows[i].ID == id {
			e.rows[i].Name = name
			e.rows[i].Marks = marks
			return nil
		}
	}
	return ErrRowNotFound
}

// RemoveRow deletes a row unless it is the only one left.
func (e *Editor) RemoveRow(id string) error {
	idx := -1
	for i := range e.rows {
		if e.rows[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrRowNotFound
	}
	if len(e.rows) <= 1 {
		return ErrLastRow
	}
	e.rows = append(e.rows[:idx], e.rows[idx+1:]...)
	return nil
}

// Rows returns a snapshot of the current rows.
func (e *Editor) Rows() []Row {
	return append([]Row(nil), e.rows...)
}

// Reset drops every row and starts over with one empty row.
func (e *Editor) Reset() {
	e.rows = []Row{{ID: e.newID()}}
}

// Entries parses the snapshot into engine input. The first row that fails
// to parse aborts with a *gpa.ValidationError.
func (e *Editor) Entries() ([]gpa.CourseEntry, error) {
	entries := make([]gpa.CourseEntry, 0, len(e.rows))
	for i, r := range e.rows {
		entry, err := gpa.ParseEntry(i, r.Name, r.Marks)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Panel is the result area. It is hidden until a calculation succeeds.
type Panel struct {
	Visible bool        `json:"visible"`
	Result  *gpa.Result `json:"result,omitempty"`
}

// State is everything a client needs to render the calculator.
type State struct {
	Rows  []Row `json:"rows"`
	Panel Panel `json:"panel"`
}

// Calculator ties an Editor to a Panel. It is not safe for concurrent use;
// each client session owns its own instance.
type Calculator struct {
	editor *Editor
	panel  Panel
}

func New() *Calculator {
	return &Calculator{editor: NewEditor()}
}

func (c *Calculator) Editor() *Editor {
	return c.editor
}

// Submit runs the engine over the current rows. On failure the panel keeps
// whatever it showed before.
func (c *Calculator) Submit() (gpa.Result, error) {
	entries, err := c.editor.Entries()
	if err != nil {
		return gpa.Result{}, err
	}

	res, err := gpa.Compute(entries)
	if err != nil {
		return gpa.Result{}, err
	}

	c.panel = Panel{Visible: true, Result: &res}
	return res, nil
}

// Reset hides the panel and restores a single empty row.
func (c *Calculator) Reset() {
	c.panel = Panel{}
	c.editor.Reset()
}

func (c *Calculator) State() State {
	return State{Rows: c.editor.Rows(), Panel: c.panel}
}
