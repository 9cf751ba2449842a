package calculator

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stemsi/portfolio-backend/internal/gpa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator() *Calculator {
	n := 0
	c := &Calculator{editor: &Editor{newID: func() string {
		n++
		return "row-" + strconv.Itoa(n)
	}}}
	c.editor.Reset()
	return c
}

func TestEditorStartsWithOneRow(t *testing.T) {
	e := NewEditor()
	rows := e.Rows()
	require.Len(t, rows, 1)
	assert.NotEmpty(t, rows[0].ID)
	assert.Empty(t, rows[0].Name)
	assert.Empty(t, rows[0].Marks)
}

func TestEditorRemoveKeepsLastRow(t *testing.T) {
	c := newTestCalculator()
	e := c.Editor()

	added := e.AddRow()
	assert.Equal(t, "row-2", added.ID)
	require.Len(t, e.Rows(), 2)

	require.NoError(t, e.RemoveRow("row-1"))
	require.Len(t, e.Rows(), 1)

	assert.ErrorIs(t, e.RemoveRow("row-2"), ErrLastRow)
	assert.Len(t, e.Rows(), 1)

	assert.ErrorIs(t, e.RemoveRow("missing"), ErrRowNotFound)
	assert.ErrorIs(t, e.UpdateRow("missing", "x", "1"), ErrRowNotFound)
}

func TestEditorRowsIsSnapshot(t *testing.T) {
	c := newTestCalculator()
	rows := c.Editor().Rows()
	rows[0].Name = "mutated"
	assert.Empty(t, c.Editor().Rows()[0].Name)
}

func TestCalculatorSubmit(t *testing.T) {
	c := newTestCalculator()
	e := c.Editor()
	require.NoError(t, e.UpdateRow("row-1", "Math", "95"))
	second := e.AddRow()
	require.NoError(t, e.UpdateRow(second.ID, "CS", "85"))

	res, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, 3.75, res.GPA)
	assert.Equal(t, gpa.FirstClass, res.Classification)

	st := c.State()
	assert.True(t, st.Panel.Visible)
	require.NotNil(t, st.Panel.Result)
	assert.Equal(t, res, *st.Panel.Result)
}

func TestCalculatorSubmitFailureKeepsPanel(t *testing.T) {
	c := newTestCalculator()
	require.NoError(t, c.Editor().UpdateRow("row-1", "Math", "55"))
	_, err := c.Submit()
	require.NoError(t, err)

	extra := c.Editor().AddRow()
	require.NoError(t, c.Editor().UpdateRow(extra.ID, "Art", "abc"))

	_, err = c.Submit()
	var ve *gpa.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 1, ve.Index)
	assert.Equal(t, gpa.FieldMarks, ve.Field)

	st := c.State()
	assert.True(t, st.Panel.Visible)
	assert.Equal(t, 2.0, st.Panel.Result.GPA)
}

func TestCalculatorSubmitEmptyRow(t *testing.T) {
	c := newTestCalculator()
	_, err := c.Submit()
	assert.ErrorIs(t, err, gpa.ErrValidation)
	assert.False(t, c.State().Panel.Visible)
}

func TestCalculatorReset(t *testing.T) {
	c := newTestCalculator()
	require.NoError(t, c.Editor().UpdateRow("row-1", "Math", "90"))
	c.Editor().AddRow()
	c.Editor().AddRow()
	require.NoError(t, c.Editor().RemoveRow("row-3"))
	require.NoError(t, c.Editor().UpdateRow("row-2", "CS", "70"))
	_, err := c.Submit()
	require.NoError(t, err)

	c.Reset()
	st := c.State()
	assert.False(t, st.Panel.Visible)
	assert.Nil(t, st.Panel.Result)
	require.Len(t, st.Rows, 1)
	assert.Empty(t, st.Rows[0].Name)
	assert.Empty(t, st.Rows[0].Marks)
}
