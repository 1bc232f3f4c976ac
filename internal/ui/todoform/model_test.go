package todoform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dayboard/internal/model"
)

func TestStartCreateResetsFields(t *testing.T) {
	m := New(80, 24)
	m.fb.title = "stale"

	m.StartCreate("2025-03-12")
	assert.False(t, m.Editing())
	assert.Equal(t, model.TodoInput{
		Priority: model.PriorityMedium,
		Status:   model.StatusPending,
		Date:     "2025-03-12",
	}, m.Input())
	assert.NotEmpty(t, m.View())
}

func TestStartEditLoadsTodo(t *testing.T) {
	m := New(80, 24)
	todo := model.Todo{
		ID:          9,
		Title:       "write report",
		Description: "  q1 numbers ",
		Status:      model.StatusDone,
		Priority:    model.PriorityHigh,
		Date:        "2025-03-14",
	}

	m.StartEdit(todo)
	require.True(t, m.Editing())

	in := m.Input()
	assert.Equal(t, "q1 numbers", in.Description)
	assert.Equal(t, model.StatusDone, in.Status)

	msg := m.handleSubmit()()
	assert.Equal(t, SubmitMsg{ID: 9, Input: in}, msg)
}

func TestValidators(t *testing.T) {
	assert.Error(t, validateRequired("Title")("  "))
	assert.NoError(t, validateRequired("Title")("x"))
	assert.Error(t, validateDate("14/03/2025"))
	assert.Error(t, validateDate(""))
	assert.NoError(t, validateDate("2025-03-14"))
}
