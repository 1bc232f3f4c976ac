package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nhle/dayboard/internal/model"
)

// todoColumns is the select list shared by every todo query.
const todoColumns = "id, title, description, status, priority, date"

// AddTodo validates and inserts a new todo, returning it with its
// newly assigned id.
func (s *SQLiteStore) AddTodo(ctx context.Context, in model.TodoInput) (model.Todo, error) {
	db, err := s.conn()
	if err != nil {
		return model.Todo{}, err
	}

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return model.Todo{}, err
	}

	result, err := db.ExecContext(ctx, `
		INSERT INTO todos (title, description, status, priority, date)
		VALUES (?, ?, ?, ?, ?)`,
		in.Title, in.Description, in.Status, in.Priority, in.Date,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("creating todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Todo{}, fmt.Errorf("reading new todo id: %w", err)
	}
	return in.Todo(id), nil
}

// UpdateTodo replaces every mutable field of the todo with the given id.
func (s *SQLiteStore) UpdateTodo(ctx context.Context, id int64, in model.TodoInput) (model.Todo, error) {
	db, err := s.conn()
	if err != nil {
		return model.Todo{}, err
	}

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return model.Todo{}, err
	}

	result, err := db.ExecContext(ctx, `
		UPDATE todos SET
			title = ?, description = ?, status = ?, priority = ?, date = ?
		WHERE id = ?`,
		in.Title, in.Description, in.Status, in.Priority, in.Date,
		id,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("updating todo %d: %w", id, err)
	}
	if err := expectRow(result, "todo", id); err != nil {
		return model.Todo{}, err
	}
	return in.Todo(id), nil
}

// UpdateTodoStatus sets only the status column.
func (s *SQLiteStore) UpdateTodoStatus(ctx context.Context, id int64, status model.Status) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if !status.Valid() {
		return model.NewValidationError("status", "must be pending or done")
	}

	result, err := db.ExecContext(ctx,
		"UPDATE todos SET status = ? WHERE id = ?", status, id,
	)
	if err != nil {
		return fmt.Errorf("updating status of todo %d: %w", id, err)
	}
	return expectRow(result, "todo", id)
}

// RescheduleTodo moves a todo to another day.
func (s *SQLiteStore) RescheduleTodo(ctx context.Context, id int64, date string) (model.Todo, error) {
	db, err := s.conn()
	if err != nil {
		return model.Todo{}, err
	}
	if _, err := model.ParseDate(date); err != nil {
		return model.Todo{}, model.NewValidationError("date", "must be YYYY-MM-DD")
	}

	result, err := db.ExecContext(ctx,
		"UPDATE todos SET date = ? WHERE id = ?", date, id,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("rescheduling todo %d: %w", id, err)
	}
	if err := expectRow(result, "todo", id); err != nil {
		return model.Todo{}, err
	}
	return s.GetTodo(ctx, id)
}

// DeleteTodo removes a todo by id. Deleting a missing id is not an error;
// the returned bool reports whether a row was removed.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id int64) (bool, error) {
	db, err := s.conn()
	if err != nil {
		return false, err
	}

	result, err := db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting todo %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting todo %d: %w", id, err)
	}
	return rows > 0, nil
}

// GetTodo retrieves a single todo by id.
func (s *SQLiteStore) GetTodo(ctx context.Context, id int64) (model.Todo, error) {
	db, err := s.conn()
	if err != nil {
		return model.Todo{}, err
	}

	var todo model.Todo
	err = db.GetContext(ctx, &todo,
		"SELECT "+todoColumns+" FROM todos WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Todo{}, fmt.Errorf("todo %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Todo{}, fmt.Errorf("getting todo %d: %w", id, err)
	}
	return todo, nil
}

// GetAllTodos returns every todo in insertion order.
func (s *SQLiteStore) GetAllTodos(ctx context.Context) ([]model.Todo, error) {
	return s.selectTodos(ctx, "querying todos",
		"SELECT "+todoColumns+" FROM todos ORDER BY id")
}

// GetTodosByDate returns the todos scheduled exactly on date.
func (s *SQLiteStore) GetTodosByDate(ctx context.Context, date string) ([]model.Todo, error) {
	if _, err := model.ParseDate(date); err != nil {
		return nil, model.NewValidationError("date", "must be YYYY-MM-DD")
	}
	return s.selectTodos(ctx, "querying todos for "+date,
		"SELECT "+todoColumns+" FROM todos WHERE date = ? ORDER BY id", date)
}

// GetTodosByDateRange returns todos with start <= date <= end. Both bounds
// are inclusive; YYYY-MM-DD strings order the same as the days they name.
func (s *SQLiteStore) GetTodosByDateRange(ctx context.Context, start, end string) ([]model.Todo, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	return s.selectTodos(ctx, fmt.Sprintf("querying todos %s..%s", start, end),
		"SELECT "+todoColumns+" FROM todos WHERE date >= ? AND date <= ? ORDER BY date, id",
		start, end)
}

func (s *SQLiteStore) selectTodos(ctx context.Context, op, query string, args ...any) ([]model.Todo, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	todos := []model.Todo{}
	if err := db.SelectContext(ctx, &todos, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return todos, nil
}

// validateRange checks both bounds are dates and start <= end.
func validateRange(start, end string) error {
	var errs []model.FieldError
	if _, err := model.ParseDate(start); err != nil {
		errs = append(errs, model.FieldError{Field: "start", Message: "must be YYYY-MM-DD"})
	}
	if _, err := model.ParseDate(end); err != nil {
		errs = append(errs, model.FieldError{Field: "end", Message: "must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return model.NewValidationErrors(errs)
	}
	if start > end {
		return model.NewValidationError("start", "must not be after end")
	}
	return nil
}

// expectRow turns a zero-row update into ErrNotFound.
func expectRow(result sql.Result, entity string, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d: %w", entity, id, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return nil
}
