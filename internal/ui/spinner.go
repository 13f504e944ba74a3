package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCanceled is returned by RunSpinner when the user quits the spinner
var ErrCanceled = errors.New("operation canceled")

// RunSpinner runs a Bubble Tea spinner while action executes and returns the
// action's error. The spinner exits when the action finishes or ctx is done.
func RunSpinner(ctx context.Context, title string, action func() error, opts ...tea.ProgramOption) error {
	if ctx == nil {
		ctx = context.Background()
	}
	m := newSpinnerModel(ctx, title, action)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return err
	}
	return m.err
}

type actionDoneMsg struct{ err error }

type spinnerModel struct {
	ctx    context.Context
	title  string
	spin   spinner.Model
	result chan error
	done   bool
	err    error
	style  lipgloss.Style
}

func newSpinnerModel(ctx context.Context, title string, action func() error) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &spinnerModel{
		ctx:    ctx,
		title:  title,
		spin:   s,
		result: make(chan error, 1),
		style:  lipgloss.NewStyle().Padding(0, 1),
	}
	go func() { m.result <- action() }()
	return m
}

func (m *spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.waitForCompletion)
}

func (m *spinnerModel) waitForCompletion() tea.Msg {
	select {
	case err := <-m.result:
		return actionDoneMsg{err: err}
	case <-m.ctx.Done():
		return actionDoneMsg{err: m.ctx.Err()}
	}
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.done = true
			m.err = ErrCanceled
			return m, tea.Quit
		}
	case actionDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return m.style.Render("✗ "+m.title+" ("+m.err.Error()+")") + "\n"
		}
		return m.style.Render("✓ "+m.title) + "\n"
	}
	return m.style.Render(m.spin.View() + " " + m.title)
}
