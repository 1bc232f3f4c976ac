package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/ui/todolist"
)

// createTodo persists a new todo and reports through todolist.ChangedMsg
// so the list and dashboard reload.
func (m Model) createTodo(in model.TodoInput) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		todo, err := svc.Todos().Add(context.Background(), in)
		if err != nil {
			return todolist.ChangedMsg{Err: err}
		}
		return todolist.ChangedMsg{Status: "Added: " + todo.Title}
	}
}

// updateTodo persists the edited fields of todo id.
func (m Model) updateTodo(id int64, in model.TodoInput) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		todo, err := svc.Todos().Update(context.Background(), id, in)
		if err != nil {
			return todolist.ChangedMsg{Err: err}
		}
		return todolist.ChangedMsg{Status: "Saved: " + todo.Title}
	}
}

// remind summarizes what is left for today, what is important soon and
// what slipped.
func (m Model) remind() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx := context.Background()
		board, err := svc.Dashboard(ctx)
		if err != nil {
			return todolist.ChangedMsg{Err: err}
		}
		left := board.Progress.Total - board.Progress.Done
		return todolist.ChangedMsg{Status: fmt.Sprintf(
			"Reminder: %d left today, %d important, %d overdue",
			left, len(board.Important), len(board.Overdue),
		)}
	}
}
