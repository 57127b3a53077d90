package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/splitkit/internal/model"
	"github.com/sokinpui/splitkit/splitkit"
)

// --- Styles ---
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")) // Mauve
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))            // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))           // Red
	pathStyle    = lipgloss.NewStyle()
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// Task is the job the TUI runs while the spinner is shown.
type Task func() (model.Summary, error)

// --- Messages ---
type summaryMsg struct {
	model.Summary
}

type errorMsg struct{ err error }

func (e errorMsg) Error() string { return e.err.Error() }

type progressMsg struct {
	current int
	total   int
}

// --- Model ---
type Model struct {
	title    string
	task     Task
	spinner  spinner.Model
	state    state
	summary  summaryMsg
	progress progressMsg
	err      error
	program  *tea.Program
}

type state int

const (
	stateProcessing state = iota
	stateSummary
	stateError
)

func New(title string, task Task) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &Model{
		title:   title,
		task:    task,
		spinner: s,
		state:   stateProcessing,
	}
}

// SetProgram gives the model a handle to send progress messages through.
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Progress reports job progress to the running program. It matches
// splitkit.ProgressUpdate.
func (m *Model) Progress(current, total int) {
	if m.program != nil {
		m.program.Send(progressMsg{current: current, total: total})
	}
}

// Err returns the task error once the program has exited.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runTask)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case progressMsg:
		m.progress = msg
		return m, nil

	case summaryMsg:
		m.state = stateSummary
		m.summary = msg
		return m, tea.Quit

	case errorMsg:
		m.state = stateError
		m.err = msg.err
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		if m.state == stateProcessing {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) View() string {
	switch m.state {
	case stateProcessing:
		if m.progress.total > 0 {
			return fmt.Sprintf("%s %s [%d/%d]", m.spinner.View(), m.title, m.progress.current, m.progress.total)
		}
		return fmt.Sprintf("%s %s", m.spinner.View(), m.title)
	case stateError:
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	case stateSummary:
		return m.renderSummary()
	default:
		return ""
	}
}

func (m *Model) renderSummary() string {
	var b strings.Builder

	if m.summary.Message != "" {
		b.WriteString(headerStyle.Render(m.summary.Message))
		b.WriteString("\n\n")
	}

	hasContent := false
	sections := []struct {
		label string
		style lipgloss.Style
		files []string
	}{
		{"Created:", successStyle, m.summary.Created},
		{"Updated:", successStyle, m.summary.Modified},
		{"Failed:", errorStyle, m.summary.Failed},
	}
	for _, s := range sections {
		if len(s.files) == 0 {
			continue
		}
		hasContent = true
		b.WriteString(s.style.Render(s.label))
		b.WriteString("\n")
		for _, f := range s.files {
			b.WriteString(fmt.Sprintf("  %s\n", pathStyle.Render(f)))
		}
	}

	if !hasContent && m.summary.Message == "" {
		b.WriteString(faintStyle.Render("Nothing to do."))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) runTask() tea.Msg {
	summary, err := m.task()
	if err != nil {
		var detailed *splitkit.DetailedError
		if errors.As(err, &detailed) {
			// The TUI will exit, so we can print to stderr here for the stack trace.
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
		}
		return errorMsg{err}
	}
	return summaryMsg{
		Summary: summary,
	}
}

// Run executes task under a spinner and prints the summary when it is done.
func Run(title string, task Task, app *splitkit.App) error {
	m := New(title, task)
	p := tea.NewProgram(m)
	m.SetProgram(p)
	app.SetProgressCallback(m.Progress)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return m.Err()
}
