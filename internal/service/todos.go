package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/store"
)

// TodoService handles todo requests.
type TodoService struct {
	store  store.TodoStore
	logger *zap.Logger
	today  func() string
}

// GetAll returns every todo.
func (s *TodoService) GetAll(ctx context.Context) ([]model.Todo, error) {
	return s.store.GetAllTodos(ctx)
}

// GetByDate returns the todos scheduled on date.
func (s *TodoService) GetByDate(ctx context.Context, date string) ([]model.Todo, error) {
	return s.store.GetTodosByDate(ctx, date)
}

// GetToday returns the todos scheduled for today.
func (s *TodoService) GetToday(ctx context.Context) ([]model.Todo, error) {
	return s.store.GetTodosByDate(ctx, s.today())
}

// GetByDateRange returns the todos with start <= date <= end.
func (s *TodoService) GetByDateRange(ctx context.Context, start, end string) ([]model.Todo, error) {
	return s.store.GetTodosByDateRange(ctx, start, end)
}

// Add creates a todo. An empty date means today.
func (s *TodoService) Add(ctx context.Context, in model.TodoInput) (model.Todo, error) {
	if in.Date == "" {
		in.Date = s.today()
	}
	todo, err := s.store.AddTodo(ctx, in)
	if err != nil {
		return model.Todo{}, err
	}
	s.logger.Debug("todo added", zap.Int64("id", todo.ID), zap.String("date", todo.Date))
	return todo, nil
}

// Update replaces a todo's fields.
func (s *TodoService) Update(ctx context.Context, id int64, in model.TodoInput) (model.Todo, error) {
	todo, err := s.store.UpdateTodo(ctx, id, in)
	if err != nil {
		return model.Todo{}, err
	}
	s.logger.Debug("todo updated", zap.Int64("id", id))
	return todo, nil
}

// UpdateStatus sets a todo's status.
func (s *TodoService) UpdateStatus(ctx context.Context, id int64, status model.Status) (Result, error) {
	if err := s.store.UpdateTodoStatus(ctx, id, status); err != nil {
		return Result{}, err
	}
	s.logger.Debug("todo status set", zap.Int64("id", id), zap.String("status", string(status)))
	return Result{Success: true}, nil
}

// Toggle flips a todo between pending and done and returns the new state.
func (s *TodoService) Toggle(ctx context.Context, id int64) (model.Todo, error) {
	todo, err := s.store.GetTodo(ctx, id)
	if err != nil {
		return model.Todo{}, err
	}
	todo.Status = todo.Status.Toggle()
	if err := s.store.UpdateTodoStatus(ctx, id, todo.Status); err != nil {
		return model.Todo{}, err
	}
	return todo, nil
}

// Delete removes a todo. Success is false when no such todo existed.
func (s *TodoService) Delete(ctx context.Context, id int64) (Result, error) {
	deleted, err := s.store.DeleteTodo(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if deleted {
		s.logger.Debug("todo deleted", zap.Int64("id", id))
	}
	return Result{Success: deleted}, nil
}

// MoveToToday reschedules a todo for today.
func (s *TodoService) MoveToToday(ctx context.Context, id int64) (model.Todo, error) {
	return s.store.RescheduleTodo(ctx, id, s.today())
}

// MoveToTomorrow reschedules a todo for the day after today.
func (s *TodoService) MoveToTomorrow(ctx context.Context, id int64) (model.Todo, error) {
	tomorrow, err := model.AddDays(s.today(), 1)
	if err != nil {
		return model.Todo{}, fmt.Errorf("computing tomorrow: %w", err)
	}
	return s.store.RescheduleTodo(ctx, id, tomorrow)
}
