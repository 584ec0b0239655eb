package timer

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/pomo/internal/pomodoro"
)

// stateMsg reports that the scheduler state changed.
type stateMsg pomodoro.State

type modalClosedMsg struct{}

func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if t.log.Enabled(context.Background(), slog.LevelDebug) {
		t.log.Debug("update", slog.String("msg", spew.Sdump(msg)))
	}

	switch msg := msg.(type) {
	case stateMsg:
		t.keys.sync(pomodoro.State(msg))

		return t, t.waitForUpdate()

	case modalClosedMsg:
		t.modal.Open = false

		return t, nil

	case tea.KeyMsg:
		return t.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		t.progress.Width = msg.Width - padding*2 - 4
		if t.progress.Width > maxWidth {
			t.progress.Width = maxWidth
		}

		t.help.Width = msg.Width

		return t, nil
	}

	return t, nil
}

func (t *Timer) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, t.keys.quit) {
		t.sched.Close()

		return t, tea.Quit
	}

	// the help overlay swallows every other key
	if t.modal.Open {
		if key.Matches(msg, t.keys.help) {
			t.modal.Open = false
			return t, nil
		}

		return t, t.modal.Update(msg)
	}

	switch {
	case key.Matches(msg, t.keys.start):
		t.sched.Start()

	case key.Matches(msg, t.keys.togglePlay):
		t.sched.PauseResume()

	case key.Matches(msg, t.keys.skip):
		t.sched.Skip()

	case key.Matches(msg, t.keys.reset):
		t.sched.Reset()

	case key.Matches(msg, t.keys.work),
		key.Matches(msg, t.keys.shortBreak),
		key.Matches(msg, t.keys.longBreak):
		t.setMode(msg)

	case key.Matches(msg, t.keys.help):
		t.modal.Open = true
	}

	t.keys.sync(t.sched.Snapshot())

	return t, nil
}

func (t *Timer) setMode(msg tea.KeyMsg) {
	for p, b := range t.keys.modeKeys() {
		if !key.Matches(msg, *b) {
			continue
		}

		if err := t.sched.SetMode(p); err != nil {
			t.log.Error("switching phase failed", slog.Any("error", err))
		}

		return
	}
}
