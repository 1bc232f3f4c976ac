package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/ui/command"
)

// executeCommand handles a command from the command palette.
func (m *Model) executeCommand(cmd command.CommandMsg) tea.Cmd {
	switch cmd.Name {
	case "add", "todo":
		if cmd.Args == "" {
			m.switchTo(ViewTodoForm)
			return m.todoForm.StartCreate(m.todoList.Date())
		}
		return m.createTodo(model.TodoInput{
			Title:    cmd.Args,
			Priority: model.PriorityMedium,
			Status:   model.StatusPending,
			Date:     m.todoList.Date(),
		})

	case "note":
		if cmd.Args == "" {
			m.setStatus("Usage: note <text>")
			return nil
		}
		return m.notes.Add(cmd.Args)

	case "goto":
		date, err := m.resolveDate(cmd.Args)
		if err != nil {
			m.fail("going to date", err)
			return nil
		}
		m.clearStatus()
		return m.todoList.SetDate(date)

	case "today":
		m.clearStatus()
		return m.todoList.SetDate(m.svc.Today())

	case "tomorrow", "yesterday":
		date, _ := m.resolveDate(cmd.Name)
		m.clearStatus()
		return m.todoList.SetDate(date)

	case "work":
		return m.enterWorkMode()

	case "help":
		m.switchTo(ViewHelp)
		return nil

	case "refresh":
		m.clearStatus()
		return m.refresh()

	case "quit":
		return m.quit()

	default:
		m.setStatus(fmt.Sprintf("Unknown command: %s", cmd.Name))
		return nil
	}
}

// resolveDate accepts YYYY-MM-DD or one of today, tomorrow, yesterday.
func (m Model) resolveDate(arg string) (string, error) {
	today := m.svc.Today()
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return model.AddDays(today, 1)
	case "yesterday":
		return model.AddDays(today, -1)
	}
	if _, err := model.ParseDate(arg); err != nil {
		return "", model.NewValidationError("date", "must be YYYY-MM-DD")
	}
	return arg, nil
}
