// Package pomodoro implements the interval scheduler that cycles between work
// and break phases
package pomodoro

import (
	"strings"
	"time"

	"github.com/ayoisaiah/pomo/internal/apperr"
)

// Phase identifies one of the timer intervals.
type Phase int

const (
	Work Phase = iota
	ShortBreak
	LongBreak
)

// Phases lists every phase in display order.
var Phases = []Phase{Work, ShortBreak, LongBreak}

var phaseNames = map[Phase]string{
	Work:       "Pomodoro",
	ShortBreak: "Short break",
	LongBreak:  "Long break",
}

// phaseKeys are the names used in config files and stored records.
var phaseKeys = map[Phase]string{
	Work:       "work",
	ShortBreak: "short_break",
	LongBreak:  "long_break",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}

	return "Unknown"
}

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	_, ok := phaseNames[p]
	return ok
}

// IsBreak reports whether p is a short or long break.
func (p Phase) IsBreak() bool {
	return p == ShortBreak || p == LongBreak
}

// MarshalText encodes p by its key, e.g. "short_break".
func (p Phase) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, errUnknownPhase.Fmt(int(p))
	}

	return []byte(phaseKeys[p]), nil
}

// UnmarshalText accepts any name understood by ParsePhase.
func (p *Phase) UnmarshalText(b []byte) error {
	v, err := ParsePhase(string(b))
	if err != nil {
		return err
	}

	*p = v

	return nil
}

// ParsePhase converts a phase name such as "work", "short_break" or
// "long-break" into a Phase.
func ParsePhase(s string) (Phase, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").
		Replace(strings.ToLower(strings.TrimSpace(s)))

	switch norm {
	case "work", "pomodoro":
		return Work, nil
	case "shortbreak", "short":
		return ShortBreak, nil
	case "longbreak", "long":
		return LongBreak, nil
	}

	return Work, errUnknownPhaseName.Fmt(s)
}

// State is a snapshot of the scheduler.
type State struct {
	Phase        Phase
	Remaining    int // seconds
	Running      bool
	CurrentCycle int
	TotalCycles  int
}

// Settings configures the scheduler.
type Settings struct {
	Durations   map[Phase]time.Duration
	TotalCycles int
	// LongBreakOnLastCycle replaces the short break that follows the work
	// phase of the final cycle with a long break.
	LongBreakOnLastCycle bool
}

// DefaultSettings returns 25/5/15 minute phases over four cycles.
func DefaultSettings() Settings {
	return Settings{
		Durations: map[Phase]time.Duration{
			Work:       25 * time.Minute,
			ShortBreak: 5 * time.Minute,
			LongBreak:  15 * time.Minute,
		},
		TotalCycles: 4,
	}
}

// Validate checks that every phase lasts at least a second and that at
// least one cycle is configured.
func (s Settings) Validate() error {
	for _, p := range Phases {
		if s.Durations[p] < time.Second {
			return errPhaseDuration.Fmt(p, s.Durations[p])
		}
	}

	if s.TotalCycles < 1 {
		return errTotalCycles.Fmt(s.TotalCycles)
	}

	return nil
}

// Completion describes a phase that has just finished.
type Completion struct {
	At          time.Time
	Finished    Phase
	Next        Phase
	Cycle       int
	TotalCycles int
	AutoStarted bool
	Skipped     bool
}

var (
	errUnknownPhase = &apperr.Error{
		Message: "unknown phase: %d",
	}

	errUnknownPhaseName = &apperr.Error{
		Message: "unknown phase %q: expected work, short_break or long_break",
	}

	errPhaseDuration = &apperr.Error{
		Message: "%s duration must be at least one second, got %v",
	}

	errTotalCycles = &apperr.Error{
		Message: "total cycles must be at least 1, got %d",
	}
)
