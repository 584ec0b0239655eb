// Package ui holds the presentation helpers shared by the timer view and
// the command-line output
package ui

import (
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/pomo/internal/pomodoro"
)

// DarkTheme selects colours that are readable on a dark background.
var DarkTheme bool

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Blue(a any) string {
	if DarkTheme {
		return pterm.LightBlue(a)
	}

	return pterm.Blue(a)
}

func Magenta(a any) string {
	if DarkTheme {
		return pterm.LightMagenta(a)
	}

	return pterm.Magenta(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

// PhaseColor colours text by the phase it describes.
func PhaseColor(p pomodoro.Phase, a any) string {
	switch p {
	case pomodoro.ShortBreak:
		return Blue(a)
	case pomodoro.LongBreak:
		return Magenta(a)
	default:
		return Green(a)
	}
}
