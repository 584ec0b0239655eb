package timer

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/ayoisaiah/pomo/internal/pomodoro"
	"github.com/ayoisaiah/pomo/internal/ui"
)

type keymap struct {
	start      key.Binding
	togglePlay key.Binding
	skip       key.Binding
	reset      key.Binding
	work       key.Binding
	shortBreak key.Binding
	longBreak  key.Binding
	help       key.Binding
	close      key.Binding
	quit       key.Binding
}

func newKeymap() keymap {
	return keymap{
		start:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		togglePlay: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause")),
		skip:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "skip")),
		reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		work:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "pomodoro")),
		shortBreak: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "short break")),
		longBreak:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "long break")),
		help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		close:      ui.CloseKey(),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// modeKeys pairs each phase with the key that switches to it.
func (k *keymap) modeKeys() map[pomodoro.Phase]*key.Binding {
	return map[pomodoro.Phase]*key.Binding{
		pomodoro.Work:       &k.work,
		pomodoro.ShortBreak: &k.shortBreak,
		pomodoro.LongBreak:  &k.longBreak,
	}
}

// sync enables the keys that make sense in st. The key of the active phase
// is disabled, and the toggle is labelled by what it will do.
func (k *keymap) sync(st pomodoro.State) {
	for p, b := range k.modeKeys() {
		b.SetEnabled(p != st.Phase)
	}

	k.start.SetEnabled(!st.Running)

	if st.Running {
		k.togglePlay.SetHelp("space", "pause")
	} else {
		k.togglePlay.SetHelp("space", "resume")
	}
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.start, k.togglePlay, k.skip, k.help, k.quit}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.start, k.togglePlay, k.skip, k.reset},
		{k.work, k.shortBreak, k.longBreak},
		{k.help, k.close, k.quit},
	}
}
