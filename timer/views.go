package timer

import (
	"fmt"
	"strings"

	"github.com/ayoisaiah/pomo/internal/pomodoro"
	"github.com/ayoisaiah/pomo/internal/timeutil"
)

// status describes whether the countdown is running.
func (t *Timer) status(st pomodoro.State) string {
	switch {
	case st.Running:
		return ""
	case st.Remaining == int(t.sched.Duration(st.Phase).Seconds()):
		return t.style.Hint.Render("[Ready]")
	default:
		return t.style.Paused.Render("[Paused]")
	}
}

func (t *Timer) timerView(st pomodoro.State) string {
	var s strings.Builder

	s.WriteString(t.style.Phase(st.Phase).Render(st.Phase.String()))
	s.WriteString(t.style.Secondary.Render(t.opts.Phase(st.Phase).Message))
	s.WriteString("\n\n")

	s.WriteString(t.style.Hint.Render(
		fmt.Sprintf("Cycle %d/%d", st.CurrentCycle, st.TotalCycles),
	))

	if status := t.status(st); status != "" {
		s.WriteString(" " + status)
	}

	total := t.sched.Duration(st.Phase).Seconds()
	elapsed := 1 - float64(st.Remaining)/total

	s.WriteString("\n\n")
	s.WriteString(t.style.Main.Render(timeutil.FormatClock(st.Remaining)))
	s.WriteString("\n\n")
	s.WriteString(t.progress.ViewAs(elapsed))
	s.WriteString("\n\n")
	s.WriteString(t.help.ShortHelpView(t.keys.ShortHelp()))

	return s.String()
}

func (t *Timer) View() string {
	view := t.timerView(t.sched.Snapshot())

	if t.modal.Open {
		view += "\n\n" + t.modal.View(t.help.FullHelpView(t.keys.FullHelp()))
	}

	return t.style.Base.Render(view)
}
