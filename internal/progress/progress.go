// Package progress is a minimal CLI affordance shown while the
// optimizer's background task (spec §5) runs: a terminal spinner with
// a label, nothing more. This is not the excluded map editor/toolbar —
// just visual feedback that the batch CLI hasn't hung while waiting on
// an asynchronous worker. Grounded on the teacher's bubbletea/lipgloss
// usage in pkg/ui (Init/Update/View model, a blocking tea.Cmd that
// waits on a channel the way WaitForBackgroundWorkerMsgCmd does in
// pkg/ui/model.go).
package progress

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var labelStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"})

type doneMsg struct{}

type model struct {
	spinner  spinner.Model
	label    string
	wait     func()
	quitting bool
}

func newModel(label string, wait func()) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return model{spinner: s, label: label, wait: wait}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitCmd(m.wait))
}

func waitCmd(wait func()) tea.Cmd {
	return func() tea.Msg {
		wait()
		return doneMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), labelStyle.Render(m.label))
}

// Run shows a spinner with label until wait returns, then exits. wait
// is expected to block on whatever the caller is waiting for (e.g.
// reading from an optimizer.Worker response channel, or calling its
// Wait method) and is invoked exactly once, concurrently with the
// spinner's own tick loop. The spinner renders to stderr, never
// stdout, since callers in this tool pipe their actual result
// (result.json / topology.xml) to stdout.
func Run(label string, wait func()) error {
	p := tea.NewProgram(newModel(label, wait), tea.WithOutput(os.Stderr))
	_, err := p.Run()
	return err
}
