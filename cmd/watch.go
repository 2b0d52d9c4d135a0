package cmd

import (
	"fmt"

	"github.com/Daniel-Anker-Hermansen/cpfuzz/pkg/fuzz"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	counterStyle = lipgloss.NewStyle().Bold(true)
)

type iterationMsg uint64

type sessionDoneMsg struct {
	failure *fuzz.Failure
	err     error
}

type watchModel struct {
	spinner    spinner.Model
	iterations uint64
	failure    *fuzz.Failure
	err        error
	aborted    bool
}

func newWatchModel() watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return watchModel{spinner: s}
}

func (m watchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.aborted = true
			return m, tea.Quit
		}
		return m, nil

	case iterationMsg:
		m.iterations = uint64(msg)
		return m, nil

	case sessionDoneMsg:
		m.failure = msg.failure
		m.err = msg.err
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m watchModel) View() string {
	if m.failure != nil || m.err != nil || m.aborted {
		return ""
	}
	return fmt.Sprintf("%s fuzzing, %s iterations passed (q to quit)\n",
		m.spinner.View(), counterStyle.Render(fmt.Sprint(m.iterations)))
}

// runWatched drives the fuzz loop under a live progress UI. The loop runs
// in its own goroutine and the UI owns the terminal until the session ends
// or the user quits.
func runWatched(loop *fuzz.Loop) (*fuzz.Failure, error) {
	program := tea.NewProgram(newWatchModel())
	loop.Progress = func(iteration uint64) {
		program.Send(iterationMsg(iteration))
	}
	go func() {
		failure, err := loop.Run()
		program.Send(sessionDoneMsg{failure: failure, err: err})
	}()

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("progress UI failed: %w", err)
	}
	m := final.(watchModel)
	if m.aborted {
		return nil, fmt.Errorf("aborted")
	}
	return m.failure, m.err
}
