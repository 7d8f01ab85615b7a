package progress

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModelQuitsOnDoneMsg(t *testing.T) {
	m := newModel("optimizing", func() {})
	updated, cmd := m.Update(doneMsg{})
	mm := updated.(model)
	if !mm.quitting {
		t.Fatal("expected model to be marked quitting after doneMsg")
	}
	if cmd == nil {
		t.Fatal("expected a tea.Quit command after doneMsg")
	}
}

func TestModelQuitsOnCtrlC(t *testing.T) {
	m := newModel("optimizing", func() {})
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	mm := updated.(model)
	if !mm.quitting {
		t.Fatal("expected ctrl+c to mark the model as quitting")
	}
	if cmd == nil {
		t.Fatal("expected a tea.Quit command on ctrl+c")
	}
}

func TestViewIsEmptyAfterQuitting(t *testing.T) {
	m := newModel("optimizing", func() {})
	m.quitting = true
	if m.View() != "" {
		t.Fatalf("expected empty view once quitting, got %q", m.View())
	}
}

func TestViewIncludesLabelBeforeQuitting(t *testing.T) {
	m := newModel("optimizing layout", func() {})
	view := m.View()
	if view == "" {
		t.Fatal("expected a non-empty view while running")
	}
	if !strings.Contains(view, "optimizing layout") {
		t.Fatalf("expected view to include the label, got %q", view)
	}
}

func TestWaitCmdDeliversDoneMsg(t *testing.T) {
	called := make(chan struct{})
	cmd := waitCmd(func() { close(called) })
	msgCh := make(chan tea.Msg, 1)
	go func() { msgCh <- cmd() }()

	select {
	case msg := <-msgCh:
		if _, ok := msg.(doneMsg); !ok {
			t.Fatalf("expected doneMsg, got %T", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for waitCmd to deliver doneMsg")
	}
	<-called
}
