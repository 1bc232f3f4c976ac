package store

import (
	"context"
	"errors"

	"github.com/nhle/dayboard/internal/model"
)

var (
	// ErrNotFound is returned when an update targets an id with no row.
	ErrNotFound = errors.New("not found")

	// ErrNotInitialized is returned by calls made on a closed or
	// unopened store. It signals a programming error, not a runtime
	// condition to recover from.
	ErrNotInitialized = errors.New("store not initialized")
)

// TodoStore is the todo half of the data access layer.
type TodoStore interface {
	AddTodo(ctx context.Context, in model.TodoInput) (model.Todo, error)
	UpdateTodo(ctx context.Context, id int64, in model.TodoInput) (model.Todo, error)
	UpdateTodoStatus(ctx context.Context, id int64, status model.Status) error
	RescheduleTodo(ctx context.Context, id int64, date string) (model.Todo, error)
	DeleteTodo(ctx context.Context, id int64) (bool, error)
	GetTodo(ctx context.Context, id int64) (model.Todo, error)
	GetAllTodos(ctx context.Context) ([]model.Todo, error)
	GetTodosByDate(ctx context.Context, date string) ([]model.Todo, error)
	GetTodosByDateRange(ctx context.Context, start, end string) ([]model.Todo, error)
}

// NoteStore persists quick notes.
type NoteStore interface {
	GetAllNotes(ctx context.Context) ([]model.Note, error)
	AddNote(ctx context.Context, content string) (model.Note, error)
	UpdateNote(ctx context.Context, id int64, content string) error
	DeleteNote(ctx context.Context, id int64) (bool, error)
}

// UserStore persists the local user.
type UserStore interface {
	GetUser(ctx context.Context) (model.User, error)
	CreateUser(ctx context.Context, in model.UserInput) (model.User, error)
	UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (model.User, error)
	UserExists(ctx context.Context) (bool, error)
}

// SessionStore persists pomodoro history.
type SessionStore interface {
	AddPomodoroSession(ctx context.Context, session model.PomodoroSession) (model.PomodoroSession, error)
	GetPomodoroSessionsByDay(ctx context.Context, day string) ([]model.PomodoroSession, error)
	CountPomodoroSessions(ctx context.Context, start, end string) (int, error)
}

// Store defines the full persistence interface of the application.
type Store interface {
	TodoStore
	NoteStore
	UserStore
	SessionStore
	Close() error
}
