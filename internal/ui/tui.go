package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/josephgoksu/FocusFlow/internal/app"
	"github.com/josephgoksu/FocusFlow/internal/assist"
	"github.com/josephgoksu/FocusFlow/internal/task"
)

// Flows is the part of the Orchestrator the TUI drives.
type Flows interface {
	Snapshot() app.State
	SetInput(text string)
	Refresh(ctx context.Context) error
	Add(ctx context.Context) error
	Expand(ctx context.Context, strategy assist.Strategy) (int, error)
	Advise(ctx context.Context) (string, error)
	DismissAdvice()
	DismissNotice()
	Toggle(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// Layout constants
const (
	DefaultWidth  = 80
	MinInputWidth = 20
	ProgressWidth = 40
)

// flowDoneMsg reports the end of a flow started by the model.
type flowDoneMsg struct {
	flow string
	err  error
}

// Model is the bubbletea model of the task list screen.
type Model struct {
	ctx   context.Context
	flows Flows

	input    textinput.Model
	spinner  spinner.Model
	progress progress.Model

	state   app.State
	running map[string]bool
	cursor  int
	focus   focusArea
	width   int
	// status holds feedback for errors that carry no notice.
	status   string
	quitting bool
}

// NewModel creates the task list screen. Init triggers the first refresh.
func NewModel(ctx context.Context, flows Flows) Model {
	ti := textinput.New()
	ti.Placeholder = "A task, today's theme, or a goal to break down"
	ti.Width = DefaultWidth - 8
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StylePrimary

	return Model{
		ctx:      ctx,
		flows:    flows,
		input:    ti,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(ProgressWidth)),
		state:    flows.Snapshot(),
		running:  map[string]bool{},
		width:    DefaultWidth,
	}
}

// Run starts the TUI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, flows Flows) error {
	p := tea.NewProgram(NewModel(ctx, flows), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.refresh())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(MinInputWidth, msg.Width-8)
		m.progress.Width = min(ProgressWidth, max(10, msg.Width-30))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case flowDoneMsg:
		delete(m.running, msg.flow)
		m.state = m.flows.Snapshot()
		m.status = statusFor(msg)
		if msg.err == nil && (msg.flow == app.FlowAdd || msg.flow == app.FlowExpand) {
			m.input.SetValue(m.state.Input)
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab", "shift+tab":
		if m.focus == focusInput {
			m.focus = focusList
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil
	case "esc":
		if m.state.Advice != "" {
			m.flows.DismissAdvice()
		} else {
			m.flows.DismissNotice()
		}
		m.status = ""
		m.state = m.flows.Snapshot()
		return m, nil
	case "ctrl+p":
		return m.expand(assist.StrategyPlanner)
	case "ctrl+b":
		return m.expand(assist.StrategyBreakdown)
	case "ctrl+a":
		return m.start(app.FlowAdvise, func(ctx context.Context) error {
			_, err := m.flows.Advise(ctx)
			return err
		})
	}

	if m.focus == focusInput {
		if msg.Type == tea.KeyEnter {
			m.flows.SetInput(m.input.Value())
			return m.start(app.FlowAdd, m.flows.Add)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Tasks)-1 {
			m.cursor++
		}
	case " ", "space", "enter":
		if t, ok := m.selected(); ok {
			return m.start(app.FlowToggle, func(ctx context.Context) error { return m.flows.Toggle(ctx, t.ID) })
		}
	case "d", "x", "delete":
		if t, ok := m.selected(); ok {
			return m.start(app.FlowDelete, func(ctx context.Context) error { return m.flows.Delete(ctx, t.ID) })
		}
	case "a":
		return m.start(app.FlowAdvise, func(ctx context.Context) error {
			_, err := m.flows.Advise(ctx)
			return err
		})
	case "r":
		return m, m.refresh()
	}
	return m, nil
}

func (m Model) expand(strategy assist.Strategy) (tea.Model, tea.Cmd) {
	m.flows.SetInput(m.input.Value())
	return m.start(app.FlowExpand, func(ctx context.Context) error {
		_, err := m.flows.Expand(ctx, strategy)
		return err
	})
}

// start runs fn off the update loop. A flow already in flight is not started twice.
func (m Model) start(flow string, fn func(context.Context) error) (tea.Model, tea.Cmd) {
	if m.running[flow] {
		return m, nil
	}
	running := make(map[string]bool, len(m.running)+1)
	for k, v := range m.running {
		running[k] = v
	}
	running[flow] = true
	m.running = running
	m.status = ""

	ctx := m.ctx
	return m, func() tea.Msg {
		return flowDoneMsg{flow: flow, err: fn(ctx)}
	}
}

func (m Model) refresh() tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return flowDoneMsg{flow: app.FlowRefresh, err: m.flows.Refresh(ctx)}
	}
}

func (m Model) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Tasks) {
		return task.Task{}, false
	}
	return m.state.Tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Tasks) {
		m.cursor = len(m.state.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// statusFor returns feedback for errors the Orchestrator left no notice for.
func statusFor(msg flowDoneMsg) string {
	err := msg.err
	switch {
	case err == nil, errors.Is(err, app.ErrBusy), app.UserMessage(err) != "":
		return ""
	case errors.Is(err, task.ErrPrecondition):
		return "Type a task first."
	case errors.Is(err, task.ErrNotFound):
		return "That task is gone. Press r to reload."
	case msg.flow == app.FlowRefresh:
		return "Could not load tasks. Check the store connection."
	default:
		return "Something went wrong: " + err.Error()
	}
}

func (m Model) busyLabel() string {
	switch {
	case m.running[app.FlowExpand]:
		return "Generating tasks…"
	case m.running[app.FlowAdvise]:
		return "Thinking about priorities…"
	case m.running[app.FlowAdd]:
		return "Saving…"
	case m.state.Loading || m.running[app.FlowRefresh]:
		return "Loading…"
	}
	return ""
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.state
	var b strings.Builder

	b.WriteString(StyleHeader.Render("🎯 FocusFlow"))
	b.WriteString(StyleSubtle.Render(fmt.Sprintf("%d/%d done", s.CompletedCount, s.Total)) + "\n")
	b.WriteString(" " + m.progress.ViewAs(float64(s.ProgressPercent)/100) + "\n\n")

	if s.Notice != nil {
		style := StyleSuccess
		if s.Notice.Level == app.NoticeAlert {
			style = StyleError
		}
		b.WriteString(" " + style.Render(s.Notice.Message) + "\n")
	}
	if m.status != "" {
		b.WriteString(" " + StyleWarning.Render(m.status) + "\n")
	}

	box := StyleInputBox
	if m.focus == focusInput {
		box = StyleInputBoxFocused
	}
	b.WriteString(box.Render(m.input.View()) + "\n")

	if label := m.busyLabel(); label != "" {
		b.WriteString(" " + m.spinner.View() + " " + StyleSubtle.Render(label) + "\n")
	}

	if s.Advice != "" {
		b.WriteString(StyleAdviceBox.Width(max(MinInputWidth, m.width-4)).Render(WrapText(s.Advice, max(MinInputWidth, m.width-8))) + "\n")
		b.WriteString(StyleSubtle.Render(" esc to close") + "\n")
	}

	b.WriteString("\n")
	if len(s.Tasks) == 0 && !s.Loading {
		b.WriteString(StyleSubtle.Render(" No tasks yet. Type one above and press enter.") + "\n")
	}
	for i, t := range s.Tasks {
		cursor := "  "
		if m.focus == focusList && i == m.cursor {
			cursor = StylePrimary.Render("▶ ")
		}
		title := StyleText.Render(t.Title)
		if t.IsCompleted {
			title = StyleDone.Render(t.Title)
		}
		tag := StyleSubtle.Render(t.Category+" · ") + PriorityStyle(t.Priority).Render(t.Priority.Label())
		b.WriteString(fmt.Sprintf("%s%s %s  %s\n", cursor, checkbox(t.IsCompleted), title, tag))
	}

	b.WriteString("\n" + StyleSubtle.Render(m.helpLine()) + "\n")
	return b.String()
}

func (m Model) helpLine() string {
	if m.focus == focusList {
		return " ↑/↓ move • space toggle • d delete • a advice • r reload • tab input • q quit"
	}
	return " enter add • ctrl+p plan day • ctrl+b break down • ctrl+a advice • tab list • ctrl+c quit"
}
