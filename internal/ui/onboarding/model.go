// Package onboarding is the first-run form that asks for the user's name
// and, optionally, an email address.
package onboarding

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/service"
	"github.com/nhle/dayboard/internal/theme"
)

// DoneMsg reports the outcome of saving the onboarding answers.
type DoneMsg struct {
	User model.User
	Err  error
}

// SkipMsg is sent when the user aborts the form.
type SkipMsg struct{}

type answers struct {
	name  string
	email string
}

// Model wraps the onboarding form.
type Model struct {
	svc    *service.Service
	form   *huh.Form
	in     *answers
	width  int
	height int
}

// New creates the onboarding form.
func New(svc *service.Service, width, height int) Model {
	m := Model{svc: svc, in: &answers{}, width: width, height: height}
	m.form = m.buildForm()
	return m
}

// Init focuses the first field.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Input returns the answers entered so far.
func (m Model) Input() model.UserInput {
	return model.UserInput{
		Name:  strings.TrimSpace(m.in.name),
		Email: strings.TrimSpace(m.in.email),
	}
}

// Update forwards messages to the form and saves on completion.
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
		return m, m.Save()
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return SkipMsg{} }
	}
	return m, cmd
}

// Save returns a tea.Cmd that stores the answers.
func (m Model) Save() tea.Cmd {
	svc, in := m.svc, m.Input()
	return func() tea.Msg {
		u, err := svc.User().CompleteOnboarding(context.Background(), in)
		return DoneMsg{User: u, Err: err}
	}
}

// View renders the welcome text and form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	title := theme.HeaderStyle.Render("Welcome to Dayboard")
	intro := theme.HelpStyle.Render("A few details before your first day.")

	body := lipgloss.JoinVertical(lipgloss.Left, title, "", intro, "", m.form.View())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(min(60, max(30, width-8)))
	}
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What should we call you?").
				Value(&m.in.name).
				Validate(validateName),
			huh.NewInput().
				Title("Email").
				Description("Optional").
				Value(&m.in.email).
				Validate(validateEmail),
		),
	).WithWidth(min(60, max(30, m.width-8)))
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return fmt.Errorf("not a valid email address")
	}
	return nil
}
