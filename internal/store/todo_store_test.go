package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/store"
	"github.com/nhle/dayboard/tests/testutil"
)

func addTodo(t *testing.T, s *store.SQLiteStore, title, date string) model.Todo {
	t.Helper()
	todo, err := s.AddTodo(context.Background(), model.TodoInput{Title: title, Date: date})
	require.NoError(t, err)
	return todo
}

func TestAddTodoAppliesDefaults(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	todo, err := s.AddTodo(ctx, model.TodoInput{Title: "  Buy milk ", Date: "2025-03-10"})
	require.NoError(t, err)

	assert.Positive(t, todo.ID)
	assert.Equal(t, "Buy milk", todo.Title)
	assert.Equal(t, model.StatusPending, todo.Status)
	assert.Equal(t, model.PriorityMedium, todo.Priority)

	got, err := s.GetTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo, got)
}

func TestAddTodoAssignsDistinctIDs(t *testing.T) {
	s := testutil.NewTestStore(t)

	a := addTodo(t, s, "a", "2025-03-10")
	b := addTodo(t, s, "b", "2025-03-10")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAddTodoRejectsInvalidInput(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input model.TodoInput
	}{
		{"blank title", model.TodoInput{Title: "   ", Date: "2025-03-10"}},
		{"bad status", model.TodoInput{Title: "x", Status: "archived", Date: "2025-03-10"}},
		{"bad priority", model.TodoInput{Title: "x", Priority: "urgent", Date: "2025-03-10"}},
		{"bad date", model.TodoInput{Title: "x", Date: "10/03/2025"}},
		{"missing date", model.TodoInput{Title: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddTodo(ctx, tt.input)
			require.ErrorIs(t, err, model.ErrValidation)
		})
	}

	all, err := s.GetAllTodos(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdateTodoReplacesFields(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	todo := addTodo(t, s, "draft", "2025-03-10")

	updated, err := s.UpdateTodo(ctx, todo.ID, model.TodoInput{
		Title:       "final",
		Description: "ship it",
		Status:      model.StatusDone,
		Priority:    model.PriorityHigh,
		Date:        "2025-03-11",
	})
	require.NoError(t, err)

	got, err := s.GetTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.Equal(t, "ship it", got.Description)
	assert.True(t, got.Done())
}

func TestUpdateMissingTodoReturnsNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.UpdateTodo(ctx, 999, model.TodoInput{Title: "x", Date: "2025-03-10"})
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.UpdateTodoStatus(ctx, 999, model.StatusDone)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.RescheduleTodo(ctx, 999, "2025-03-10")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetTodo(ctx, 999)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateTodoStatusTogglesOnlyStatus(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	todo := addTodo(t, s, "walk", "2025-03-10")

	require.NoError(t, s.UpdateTodoStatus(ctx, todo.ID, model.StatusDone))
	got, err := s.GetTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, got.Status)
	assert.Equal(t, "walk", got.Title)

	require.ErrorIs(t, s.UpdateTodoStatus(ctx, todo.ID, "later"), model.ErrValidation)
}

func TestRescheduleTodo(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	todo := addTodo(t, s, "call", "2025-03-01")

	moved, err := s.RescheduleTodo(ctx, todo.ID, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", moved.Date)
	assert.Equal(t, todo.Title, moved.Title)

	_, err = s.RescheduleTodo(ctx, todo.ID, "tomorrow")
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestDeleteTodoIsIdempotent(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	todo := addTodo(t, s, "gone", "2025-03-10")

	deleted, err := s.DeleteTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	all, err := s.GetAllTodos(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetTodosByDate(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	a := addTodo(t, s, "a", "2025-03-10")
	addTodo(t, s, "b", "2025-03-11")
	c := addTodo(t, s, "c", "2025-03-10")

	got, err := s.GetTodosByDate(ctx, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, []model.Todo{a, c}, got)

	got, err = s.GetTodosByDate(ctx, "2025-01-01")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetTodosByDateRangeIsInclusive(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	addTodo(t, s, "before", "2025-03-09")
	first := addTodo(t, s, "first", "2025-03-10")
	mid := addTodo(t, s, "mid", "2025-03-12")
	last := addTodo(t, s, "last", "2025-03-15")
	addTodo(t, s, "after", "2025-03-16")

	got, err := s.GetTodosByDateRange(ctx, "2025-03-10", "2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, []model.Todo{first, mid, last}, got)

	single, err := s.GetTodosByDateRange(ctx, "2025-03-12", "2025-03-12")
	require.NoError(t, err)
	assert.Equal(t, []model.Todo{mid}, single)
}

func TestGetTodosByDateRangeRejectsBadBounds(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.GetTodosByDateRange(ctx, "2025-03-15", "2025-03-10")
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = s.GetTodosByDateRange(ctx, "march", "2025-03-10")
	require.ErrorIs(t, err, model.ErrValidation)
}
