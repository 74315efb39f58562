// Package ui provides an optional interactive terminal viewer.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todo-go/internal/service"
	"github.com/nibzard/todo-go/internal/todo"
)

// Tasks is the part of the Task Service the viewer uses.
type Tasks interface {
	List(f service.Filter) ([]todo.Task, error)
	Complete(id int) (todo.Task, error)
}

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	tasksPath    string
	tickInterval time.Duration
}

// WithTasksPath sets the tasks file path shown in the header.
func WithTasksPath(path string) TUIOption {
	return func(c *tuiConfig) {
		c.tasksPath = path
	}
}

// WithRefreshInterval sets how often the task file is reloaded.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.tickInterval = d
		}
	}
}

// Run starts the viewer and blocks until the user quits or ctx is done.
func Run(ctx context.Context, tasks Tasks, opts ...TUIOption) error {
	c := &tuiConfig{tickInterval: 2 * time.Second}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(tasks, c)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	headingStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	footerStyle   = lipgloss.NewStyle().Faint(true)
)

// priorityCycle is the order the p key steps through. The empty value
// means no priority filter.
var priorityCycle = []todo.Priority{"", todo.PriorityHigh, todo.PriorityMedium, todo.PriorityLow}

type tuiModel struct {
	tasks        Tasks
	tasksPath    string
	tickInterval time.Duration

	loadErr  error
	all      []todo.Task
	visible  []todo.Task
	cursor   int
	status   todo.Status
	priority todo.Priority
	showHelp bool
	message  string
}

type tickMsg time.Time

func newTUIModel(tasks Tasks, c *tuiConfig) *tuiModel {
	return &tuiModel{
		tasks:        tasks,
		tasksPath:    c.tasksPath,
		tickInterval: c.tickInterval,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.message = ""
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case "1":
			m.status = todo.StatusPending
			m.applyFilter()
		case "2":
			m.status = todo.StatusCompleted
			m.applyFilter()
		case "0":
			m.status = ""
			m.priority = ""
			m.applyFilter()
		case "p":
			m.priority = nextPriority(m.priority)
			m.applyFilter()
		case "x", " ", "space":
			m.completeSelected()
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b, m.tasksPath)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading tasks:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b)
		return b.String()
	}

	writeOverview(&b, m.all)
	if f := m.filterLabel(); f != "" {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", f))
	}
	m.writeList(&b)
	if m.message != "" {
		b.WriteString(m.message + "\n\n")
	}
	writeFooter(&b)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	tasks, err := m.tasks.List(service.Filter{})
	if err != nil {
		m.loadErr = err
		m.all = nil
		m.visible = nil
		return
	}
	m.loadErr = nil
	m.all = tasks
	m.applyFilter()
}

// applyFilter recomputes the visible list and keeps the cursor in range.
func (m *tuiModel) applyFilter() {
	m.visible = service.FilterTasks(m.all, service.Filter{Status: m.status, Priority: m.priority})
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) completeSelected() {
	if len(m.visible) == 0 {
		return
	}
	id := m.visible[m.cursor].ID
	if _, err := m.tasks.Complete(id); err != nil {
		m.message = errorStyle.Render("Error: " + err.Error())
		return
	}
	m.message = fmt.Sprintf("Task #%d marked as completed.", id)
	m.refresh()
}

func (m *tuiModel) filterLabel() string {
	var parts []string
	if m.status != "" {
		parts = append(parts, "status="+string(m.status))
	}
	if m.priority != "" {
		parts = append(parts, "priority="+string(m.priority))
	}
	return strings.Join(parts, " ")
}

func nextPriority(p todo.Priority) todo.Priority {
	for i, candidate := range priorityCycle {
		if candidate == p {
			return priorityCycle[(i+1)%len(priorityCycle)]
		}
	}
	return ""
}

func writeTitle(b *strings.Builder, path string) {
	b.WriteString(titleStyle.Render("Todo") + "\n")
	if path != "" {
		b.WriteString(footerStyle.Render(path) + "\n")
	}
	b.WriteString("\n")
}

func writeOverview(b *strings.Builder, tasks []todo.Task) {
	pending, completed := 0, 0
	for _, t := range tasks {
		if t.Status == todo.StatusCompleted {
			completed++
		} else {
			pending++
		}
	}
	b.WriteString(headingStyle.Render("Task Overview") + "\n\n")
	b.WriteString(fmt.Sprintf("  Pending: %d  Completed: %d  Total: %d\n\n", pending, completed, len(tasks)))
}

func (m *tuiModel) writeList(b *strings.Builder) {
	b.WriteString(headingStyle.Render("Tasks") + "\n\n")
	if len(m.visible) == 0 {
		b.WriteString("  No tasks found.\n\n")
		return
	}
	for i := range m.visible {
		line := formatTask(&m.visible[i])
		switch {
		case i == m.cursor:
			line = selectedStyle.Render("> " + line)
		case m.visible[i].Status == todo.StatusCompleted:
			line = "  " + doneStyle.Render(line)
		default:
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString(headingStyle.Render("Keyboard Shortcuts") + "\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  up/k, down/j Move selection\n")
	b.WriteString("  x, space     Complete selected task\n")
	b.WriteString("  1            Show pending\n")
	b.WriteString("  2            Show completed\n")
	b.WriteString("  p            Cycle priority filter\n")
	b.WriteString("  0            Clear filters\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(footerStyle.Render("Press h for help | x to complete | q to quit") + "\n")
}

func formatTask(t *todo.Task) string {
	mark := " "
	if t.Status == todo.StatusCompleted {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] #%d %s (%s)", mark, t.ID, t.Title, t.Priority)
	if t.DueDate != nil {
		line += " due " + *t.DueDate
	}
	return line
}

// IsTTY returns true if w is a terminal.
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
