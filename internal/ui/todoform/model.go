package todoform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/theme"
)

// SubmitMsg is dispatched when the form is completed. ID is zero for a
// new todo.
type SubmitMsg struct {
	ID    int64
	Input model.TodoInput
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	priority    model.Priority
	status      model.Status
	date        string
}

// Model is the Bubble Tea model for the todo create/edit form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	editID int64
	width  int
	height int
}

// New creates a new todo form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{priority: model.PriorityMedium, status: model.StatusPending},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for a new todo on date.
func (m *Model) StartCreate(date string) tea.Cmd {
	m.editID = 0
	*m.fb = formBindings{
		priority: model.PriorityMedium,
		status:   model.StatusPending,
		date:     date,
	}
	m.form = m.buildForm(false)
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing todo.
func (m *Model) StartEdit(todo model.Todo) tea.Cmd {
	m.editID = todo.ID
	*m.fb = formBindings{
		title:       todo.Title,
		description: todo.Description,
		priority:    todo.Priority,
		status:      todo.Status,
		date:        todo.Date,
	}
	m.form = m.buildForm(true)
	return m.form.Init()
}

// Editing reports whether the form edits an existing todo.
func (m Model) Editing() bool { return m.editID != 0 }

// Update handles messages for the todo form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		return m, m.handleSubmit()
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the todo form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Todo"
	if m.Editing() {
		titleText = "Edit Todo"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm(edit bool) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[model.Priority]().
			Title("Priority").
			Options(
				huh.NewOption("High", model.PriorityHigh),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("Low", model.PriorityLow),
			).
			Value(&m.fb.priority),
		huh.NewInput().
			Title("Date").
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.date).
			Validate(validateDate),
	}
	if edit {
		fields = append(fields,
			huh.NewSelect[model.Status]().
				Title("Status").
				Options(
					huh.NewOption("Pending", model.StatusPending),
					huh.NewOption("Done", model.StatusDone),
				).
				Value(&m.fb.status),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

// Input returns the current field values as a todo input.
func (m Model) Input() model.TodoInput {
	return model.TodoInput{
		Title:       strings.TrimSpace(m.fb.title),
		Description: strings.TrimSpace(m.fb.description),
		Priority:    m.fb.priority,
		Status:      m.fb.status,
		Date:        strings.TrimSpace(m.fb.date),
	}
}

func (m Model) handleSubmit() tea.Cmd {
	msg := SubmitMsg{ID: m.editID, Input: m.Input()}
	return func() tea.Msg { return msg }
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-4, 10)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := model.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
