// Package ui provides the full-screen chore list view.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chores/internal/output"
	"chores/internal/service"
)

// Option configures the TUI behavior.
type Option func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	confirm bool
}

// WithoutConfirm deletes without the confirmation modal.
func WithoutConfirm() Option {
	return func(c *tuiConfig) {
		c.confirm = false
	}
}

const tickInterval = 250 * time.Millisecond

// Run starts the TUI over svc and blocks until the user quits or ctx ends.
func Run(ctx context.Context, svc service.Service, opts ...Option) error {
	m := newModel(ctx, svc, opts...)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Store events arrive on timer goroutines or from inside Update; hand
	// them to the loop without blocking either.
	unsubscribe := svc.Subscribe(func(ev service.Event) {
		go program.Send(storeEventMsg{event: ev})
	})
	defer unsubscribe()

	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

type model struct {
	ctx    context.Context
	svc    service.Service
	cfg    tuiConfig
	keys   keyMap
	help   help.Model
	now    func() time.Time
	width  int
	cursor int

	tasks   []service.Task
	pending []service.Deletion

	// confirming is the task awaiting a yes/no in the delete modal.
	confirming *service.Task
	status     string
	statusErr  bool
}

type tickMsg time.Time

type storeEventMsg struct {
	event service.Event
}

func newModel(ctx context.Context, svc service.Service, opts ...Option) *model {
	c := tuiConfig{confirm: true}
	for _, opt := range opts {
		opt(&c)
	}
	m := &model{
		ctx:  ctx,
		svc:  svc,
		cfg:  c,
		keys: defaultKeyMap(),
		help: help.New(),
		now:  time.Now,
	}
	m.refresh()
	return m
}

func (m *model) Init() tea.Cmd {
	return tickCmd(tickInterval)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.confirming != nil {
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	case storeEventMsg:
		m.refresh()
		if msg.event.Kind == service.EventDiscarded {
			m.setStatus(fmt.Sprintf("Task permanently deleted: %s", output.NormalizeTitle(msg.event.Task.Title)), false)
		}
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tickCmd(tickInterval)
	}
	return m, nil
}

func (m *model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Toggle):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		updated, err := m.svc.ToggleStatus(m.ctx, task.ID)
		if err != nil {
			m.setStatus(fmt.Sprintf("toggle failed: %v", err), true)
			return m, nil
		}
		m.refresh()
		m.setStatus(fmt.Sprintf("%s: %s", output.NormalizeTitle(updated.Title), updated.Status), false)
	case key.Matches(msg, m.keys.Delete):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		if m.cfg.confirm {
			m.confirming = &task
			return m, nil
		}
		m.deleteTask(task)
	case key.Matches(msg, m.keys.Undo):
		m.undoLatest()
	}
	return m, nil
}

func (m *model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		task := *m.confirming
		m.confirming = nil
		m.deleteTask(task)
	case key.Matches(msg, m.keys.Cancel):
		m.confirming = nil
		m.setStatus("Delete cancelled", false)
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) deleteTask(task service.Task) {
	d, err := m.svc.Delete(m.ctx, task.ID)
	if err != nil {
		m.setStatus(fmt.Sprintf("delete failed: %v", err), true)
		return
	}
	m.refresh()
	m.setStatus(fmt.Sprintf("Task deleted: %s (undo within %s)", output.NormalizeTitle(task.Title), d.Window()), false)
}

func (m *model) undoLatest() {
	if len(m.pending) == 0 {
		m.setStatus("Nothing to undo", false)
		return
	}
	d := m.pending[len(m.pending)-1]
	task, err := m.svc.Undo(m.ctx, d.Token)
	m.refresh()
	if err != nil {
		m.setStatus(fmt.Sprintf("undo failed: %v", err), true)
		return
	}
	m.cursor = clampCursor(min(d.Index, len(m.tasks)-1), len(m.tasks))
	m.setStatus(fmt.Sprintf("Task restored: %s", output.NormalizeTitle(task.Title)), false)
}

// refresh re-reads the snapshot; the store is the only source of truth.
func (m *model) refresh() {
	tasks, err := m.svc.Tasks(m.ctx)
	if err != nil {
		m.setStatus(fmt.Sprintf("reload failed: %v", err), true)
		return
	}
	m.tasks = tasks
	m.cursor = clampCursor(m.cursor, len(m.tasks))

	pending, err := m.svc.Pending(m.ctx)
	if err != nil {
		m.setStatus(fmt.Sprintf("reload failed: %v", err), true)
		return
	}
	m.pending = pending
}

func (m *model) selected() (service.Task, bool) {
	if len(m.tasks) == 0 {
		return service.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func clampCursor(cursor, n int) int {
	if n <= 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Recent Tasks"))
	b.WriteString("\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n")

	if m.confirming != nil {
		b.WriteString("\n")
		b.WriteString(renderConfirmModal(*m.confirming))
		b.WriteString("\n")
	}

	for _, d := range m.pending {
		b.WriteString(m.renderToast(d))
		b.WriteString("\n")
	}

	if m.status != "" {
		if m.statusErr {
			b.WriteString(styleError.Render(m.status))
		} else {
			b.WriteString(styleMuted.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

var columnWidths = []int{2, 3, 24, 10, 10, 9, 9}

func (m *model) renderTable() string {
	if len(m.tasks) == 0 {
		return styleMuted.Render("No tasks available") + "\n"
	}

	var b strings.Builder
	header := row("", "", "Task", "Assignee", "Due Date", "Recurring", "Status")
	b.WriteString(styleHeader.Render(header))
	b.WriteString("\n")

	for i, t := range m.tasks {
		cursor := ""
		if i == m.cursor {
			cursor = ">"
		}
		status := string(t.Status)
		if t.Status == service.StatusCompleted {
			status = styleDone.Render(status)
		}
		line := row(
			cursor,
			output.Checkbox(t.Status),
			output.NormalizeTitle(t.Title),
			t.Assignee,
			t.DueDate.Display(),
			styleBadge.Render(string(t.Recurring)),
			status,
		)
		if i == m.cursor {
			line = styleSelected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// row lays cells out in fixed-width columns, truncating long values.
func row(cells ...string) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		w := columnWidths[i]
		if lipgloss.Width(c) > w {
			c = truncate(c, w)
		}
		parts[i] = lipgloss.NewStyle().Width(w).Render(c)
	}
	return strings.Join(parts, " ")
}

func truncate(s string, w int) string {
	runes := []rune(s)
	if w <= 1 || len(runes) <= w {
		return s
	}
	return string(runes[:w-1]) + "…"
}

func (m *model) renderToast(d service.Deletion) string {
	secs := int((d.Remaining(m.now()) + time.Second - 1) / time.Second)
	body := fmt.Sprintf("Task deleted: %s  ·  %s Undo (%ds)",
		output.NormalizeTitle(d.Task.Title), m.keys.Undo.Help().Key, secs)
	return styleToast.Render(body)
}

func renderConfirmModal(task service.Task) string {
	body := strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Render("Are you sure?"),
		"",
		fmt.Sprintf("Delete %q?", output.NormalizeTitle(task.Title)),
		"",
		styleMuted.Render("y/enter: delete   n/esc: cancel"),
	}, "\n")
	return styleModal.Render(body)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
