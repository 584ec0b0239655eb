package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/pomo/internal/pomodoro"
)

// Styles holds the lipgloss styles of the timer view.
type Styles struct {
	Base      lipgloss.Style
	Main      lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
	Paused    lipgloss.Style
	phases    map[pomodoro.Phase]lipgloss.Style
}

// NewStyles builds the timer styles from the colour of each phase.
func NewStyles(colors map[pomodoro.Phase]string) *Styles {
	hint := "#767676"
	if DarkTheme {
		hint = "#A8A8A8"
	}

	s := &Styles{
		Base:      lipgloss.NewStyle().Padding(1, 1),
		Main:      lipgloss.NewStyle().Bold(true),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")),
		Hint:      lipgloss.NewStyle().Foreground(lipgloss.Color(hint)),
		Paused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C")).
			Bold(true),
		phases: make(map[pomodoro.Phase]lipgloss.Style, len(colors)),
	}

	for p, c := range colors {
		s.phases[p] = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(c)).
			Padding(0, 1).
			MarginRight(1)
	}

	return s
}

// Phase returns the label style of p.
func (s *Styles) Phase(p pomodoro.Phase) lipgloss.Style {
	if st, ok := s.phases[p]; ok {
		return st
	}

	return s.Main
}
