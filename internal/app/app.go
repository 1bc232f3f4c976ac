package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/keys"
	"github.com/nhle/dayboard/internal/pomodoro"
	"github.com/nhle/dayboard/internal/schedule"
	"github.com/nhle/dayboard/internal/service"
	"github.com/nhle/dayboard/internal/theme"
	"github.com/nhle/dayboard/internal/ui"
	"github.com/nhle/dayboard/internal/ui/command"
	"github.com/nhle/dayboard/internal/ui/heatmap"
	helpview "github.com/nhle/dayboard/internal/ui/help"
	"github.com/nhle/dayboard/internal/ui/notes"
	"github.com/nhle/dayboard/internal/ui/onboarding"
	workview "github.com/nhle/dayboard/internal/ui/pomodoro"
	"github.com/nhle/dayboard/internal/ui/sidebar"
	"github.com/nhle/dayboard/internal/ui/todoform"
	"github.com/nhle/dayboard/internal/ui/todolist"
)

// heatmapHeight is the month row, seven weekday rows and the legend.
const heatmapHeight = 9

// notesHeight is the number of rows given to the notes panel.
const notesHeight = 8

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewTodoForm
	ViewCommand
	ViewHelp
	ViewOnboarding
	ViewWork
)

// Pane is the dashboard panel that receives keys.
type Pane int

const (
	PaneTodos Pane = iota
	PaneNotes
)

// boardLoadedMsg carries a freshly loaded dashboard.
type boardLoadedMsg struct {
	board service.Board
	err   error
}

// onboardingCheckedMsg reports whether the first-run form is needed.
type onboardingCheckedMsg struct {
	needed bool
	err    error
}

// sessionRecordedMsg is sent after a pomodoro session is stored.
type sessionRecordedMsg struct {
	err error
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the service layer.
type Model struct {
	currentView  ViewState
	previousView ViewState
	focus        Pane
	layout       ui.Layout
	svc          *service.Service
	scheduler    *schedule.Scheduler
	logger       *zap.Logger
	keys         *keys.KeyMap
	todoList     todolist.Model
	todoForm     todoform.Model
	notes        notes.Model
	helpView     helpview.Model
	commandView  command.Model
	onboarding   onboarding.Model
	work         workview.Model
	board        service.Board
	status       string
	statusErr    bool
	ready        bool
}

// New creates the root model. sched may be nil, in which case no
// background jobs run.
func New(svc *service.Service, sched *schedule.Scheduler, timer *pomodoro.Timer, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	k := keys.DefaultKeyMap()
	return Model{
		currentView: ViewDashboard,
		svc:         svc,
		scheduler:   sched,
		logger:      logger.Named("ui"),
		keys:        k,
		todoList:    todolist.New(svc, k, 80, 20),
		todoForm:    todoform.New(80, 24),
		notes:       notes.New(svc, k, 40, notesHeight),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
		onboarding:  onboarding.New(svc, 80, 24),
		work:        workview.New(timer, k, 80, 24),
	}
}

// Init loads the day, the notes and the dashboard, checks whether the
// user still needs onboarding and starts the scheduler.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.todoList.Init(),
		m.notes.Init(),
		m.loadBoard(),
		m.checkOnboarding(),
	}
	if m.scheduler != nil {
		cmds = append(cmds, m.scheduler.Start())
	}
	return tea.Batch(cmds...)
}

// CurrentView returns the active view.
func (m Model) CurrentView() ViewState { return m.currentView }

// Board returns the last loaded dashboard.
func (m Model) Board() service.Board { return m.board }

// Status returns the status bar message and whether it is an error.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.resize()
		// Forward so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case boardLoadedMsg:
		if msg.err != nil {
			m.fail("loading dashboard", msg.err)
			return m, nil
		}
		m.board = msg.board
		return m, nil

	case onboardingCheckedMsg:
		if msg.err != nil {
			m.fail("checking onboarding", msg.err)
			return m, nil
		}
		if msg.needed {
			m.switchTo(ViewOnboarding)
			return m, m.onboarding.Init()
		}
		return m, nil

	case onboarding.DoneMsg:
		if msg.Err != nil {
			m.fail("saving profile", msg.Err)
			m.onboarding = onboarding.New(m.svc, m.layout.Width, m.layout.ContentHeight())
			return m, m.onboarding.Init()
		}
		m.currentView = ViewDashboard
		m.setStatus(fmt.Sprintf("Welcome, %s!", msg.User.Name))
		return m, m.loadBoard()

	case onboarding.SkipMsg:
		m.currentView = ViewDashboard
		return m, nil

	case todolist.LoadedMsg:
		if msg.Err != nil {
			m.fail("loading todos", msg.Err)
		}
		var cmd tea.Cmd
		m.todoList, cmd = m.todoList.Update(msg)
		return m, cmd

	case todolist.ChangedMsg:
		if msg.Err != nil {
			m.fail("updating todo", msg.Err)
			return m, m.todoList.Load()
		}
		m.setStatus(msg.Status)
		return m, tea.Batch(m.todoList.Load(), m.loadBoard())

	case todolist.EditMsg:
		m.switchTo(ViewTodoForm)
		if msg.Todo != nil {
			return m, m.todoForm.StartEdit(*msg.Todo)
		}
		return m, m.todoForm.StartCreate(msg.Date)

	case todoform.SubmitMsg:
		m.currentView = ViewDashboard
		if msg.ID == 0 {
			return m, m.createTodo(msg.Input)
		}
		return m, m.updateTodo(msg.ID, msg.Input)

	case todoform.CancelMsg:
		m.currentView = ViewDashboard
		return m, nil

	case notes.LoadedMsg:
		if msg.Err != nil {
			m.fail("loading notes", msg.Err)
		}
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd

	case notes.ChangedMsg:
		if msg.Err != nil {
			m.fail("saving note", msg.Err)
			return m, m.notes.Load()
		}
		m.setStatus(msg.Status)
		return m, m.notes.Load()

	case workview.SessionDoneMsg:
		return m, m.recordSession(msg)

	case sessionRecordedMsg:
		if msg.err != nil {
			m.fail("recording pomodoro", msg.err)
			return m, nil
		}
		m.setStatus("Pomodoro recorded")
		return m, m.loadBoard()

	case schedule.RolloverMsg:
		m.logger.Info("day rollover", zap.String("date", msg.Date))
		return m, tea.Batch(
			m.todoList.SetDate(msg.Date),
			m.loadBoard(),
			m.waitForSchedule(),
		)

	case schedule.ReminderMsg:
		return m, tea.Batch(m.remind(), m.waitForSchedule())

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(msg)

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		if m.capturesInput() {
			break
		}
		if next, cmd, ok := m.handleGlobalKeys(msg); ok {
			return next, cmd
		}
	}

	return m.updateActiveView(msg)
}

// capturesInput reports whether the active view owns every key, so
// global shortcuts must not fire.
func (m Model) capturesInput() bool {
	switch m.currentView {
	case ViewTodoForm, ViewCommand, ViewOnboarding:
		return true
	case ViewDashboard:
		return m.focus == PaneNotes && m.notes.Editing()
	}
	return false
}

func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch m.currentView {
	case ViewHelp:
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
			return m, nil, true
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, m.quit(), true
		}
		return m, nil, false

	case ViewWork:
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.WorkMode):
			m.currentView = ViewDashboard
			return m, nil, true
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit(), true
		case key.Matches(msg, m.keys.Help):
			m.switchTo(ViewHelp)
			return m, nil, true
		}
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit(), true
	case key.Matches(msg, m.keys.Help):
		m.switchTo(ViewHelp)
		return m, nil, true
	case key.Matches(msg, m.keys.Command):
		m.switchTo(ViewCommand)
		return m, m.commandView.Focus(), true
	case key.Matches(msg, m.keys.NextPane):
		if m.focus == PaneTodos {
			m.focus = PaneNotes
		} else {
			m.focus = PaneTodos
		}
		return m, nil, true
	case key.Matches(msg, m.keys.Refresh):
		m.clearStatus()
		return m, m.refresh(), true
	case key.Matches(msg, m.keys.WorkMode):
		return m, m.enterWorkMode(), true
	}
	return m, nil, false
}

// updateActiveView dispatches the message to the currently active view.
// Non-key messages also reach the work-mode timer so it keeps ticking in
// the background.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if _, isKey := msg.(tea.KeyMsg); !isKey && m.currentView != ViewWork {
		var cmd tea.Cmd
		m.work, cmd = m.work.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewDashboard:
		if m.focus == PaneNotes {
			m.notes, cmd = m.notes.Update(msg)
		} else {
			m.todoList, cmd = m.todoList.Update(msg)
		}
	case ViewTodoForm:
		m.todoForm, cmd = m.todoForm.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewOnboarding:
		m.onboarding, cmd = m.onboarding.Update(msg)
	case ViewWork:
		m.work, cmd = m.work.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) switchTo(v ViewState) {
	if m.currentView == v {
		return
	}
	m.previousView = m.currentView
	m.currentView = v
}

func (m *Model) resize() {
	h := m.layout.ContentHeight()
	mainW := m.layout.MainWidth()
	sideW := m.layout.SideWidth()

	notesW := sideW
	listH := h - heatmapHeight - 4
	if sideW == 0 {
		notesW = mainW
		listH -= notesHeight + 2
	}

	m.todoList.SetSize(max(10, mainW-4), max(3, listH))
	m.notes.SetSize(max(10, notesW-4), notesHeight)
	m.todoForm.SetSize(m.layout.Width, h)
	m.helpView.SetSize(m.layout.Width, h)
	m.commandView.SetSize(m.layout.Width, h)
	m.onboarding.SetSize(m.layout.Width, h)
	m.work.SetSize(m.layout.Width, h)
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.title(), m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewTodoForm:
		return m.todoForm.View()
	case ViewCommand:
		return lipgloss.JoinVertical(lipgloss.Left, m.commandView.View(), m.renderDashboard())
	case ViewHelp:
		return m.helpView.View()
	case ViewOnboarding:
		return m.onboarding.View()
	case ViewWork:
		return m.work.View()
	default:
		return m.renderDashboard()
	}
}

func (m Model) renderDashboard() string {
	mainW := m.layout.MainWidth()
	sideW := m.layout.SideWidth()

	todos := m.panelStyle(PaneTodos).Width(max(0, mainW-2)).Render(m.todoList.View())
	activity := theme.PanelStyle.Width(max(0, mainW-2)).Render(
		heatmap.Render(m.board.Calendar, m.board.Months, mainW-4),
	)
	if sideW == 0 {
		notesPanel := m.panelStyle(PaneNotes).Width(max(0, mainW-2)).Render(m.notes.View())
		return lipgloss.JoinVertical(lipgloss.Left, todos, notesPanel, activity)
	}

	notesPanel := m.panelStyle(PaneNotes).Width(max(0, sideW-2)).Render(m.notes.View())
	main := lipgloss.JoinVertical(lipgloss.Left, todos, activity)
	side := lipgloss.JoinVertical(lipgloss.Left,
		sidebar.Render(m.board, sideW, m.svc.Now()),
		notesPanel,
	)
	return m.layout.RenderColumns(main, side)
}

func (m Model) panelStyle(p Pane) lipgloss.Style {
	if m.focus == p {
		return theme.FocusedPanelStyle
	}
	return theme.PanelStyle
}

func (m Model) title() string {
	if m.board.User != nil && m.board.User.Name != "" {
		return "Dayboard · " + m.board.User.Name
	}
	return "Dayboard"
}

func (m Model) headerStatus() string {
	s := m.svc.Today()
	if t := m.work.Timer(); t.Running() {
		s = fmt.Sprintf("%s %s · %s", workview.PhaseLabel(t.Phase()), workview.FormatRemaining(t.Remaining()), s)
	}
	return s
}

// statusLine returns the last status or error, falling back to key hints.
func (m Model) statusLine() string {
	if m.status != "" {
		if m.statusErr {
			return theme.ErrorStyle.Render(m.status + " · press r to retry")
		}
		return m.status
	}
	return m.keyHints()
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewTodoForm, ViewOnboarding:
		return "enter submit | esc cancel"
	case ViewWork:
		return "s start/pause | S skip | R reset | esc back"
	default:
		if m.focus == PaneNotes {
			return "n new | e edit | d delete | tab todos | ? help"
		}
		return m.helpView.ShortView()
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

// fail logs err and shows it in the status bar. Nothing is retried until
// the user asks.
func (m *Model) fail(op string, err error) {
	m.logger.Error(op, zap.Error(err))
	m.status = fmt.Sprintf("Error %s: %v", op, err)
	m.statusErr = true
}

func (m Model) quit() tea.Cmd {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
	return tea.Quit
}

func (m Model) waitForSchedule() tea.Cmd {
	if m.scheduler == nil {
		return nil
	}
	return m.scheduler.WaitForNext()
}

func (m Model) refresh() tea.Cmd {
	return tea.Batch(m.todoList.Load(), m.notes.Load(), m.loadBoard())
}

func (m *Model) enterWorkMode() tea.Cmd {
	if todo, ok := m.todoList.SelectedTodo(); ok && !todo.Done() {
		m.work.Focus(&todo)
	} else {
		m.work.Focus(nil)
	}
	m.switchTo(ViewWork)
	return nil
}

// loadBoard returns a command that assembles the dashboard.
func (m Model) loadBoard() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		board, err := svc.Dashboard(context.Background())
		return boardLoadedMsg{board: board, err: err}
	}
}

func (m Model) checkOnboarding() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		needed, err := svc.User().NeedsOnboarding(context.Background())
		return onboardingCheckedMsg{needed: needed, err: err}
	}
}

func (m Model) recordSession(msg workview.SessionDoneMsg) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		_, err := svc.Pomodoro().Record(context.Background(), msg.Session)
		return sessionRecordedMsg{err: err}
	}
}
