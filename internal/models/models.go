// Package models defines the values persisted by the store
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayoisaiah/pomo/internal/pomodoro"
)

// Record is a finished phase.
type Record struct {
	EndTime time.Time `json:"end_time"`
	// RunID groups the records of a single invocation of the timer.
	RunID       uuid.UUID      `json:"run_id"`
	Phase       pomodoro.Phase `json:"phase"`
	Cycle       int            `json:"cycle"`
	TotalCycles int            `json:"total_cycles"`
	Duration    time.Duration  `json:"duration"`
	Skipped     bool           `json:"skipped"`
}

// NewRecord builds the record of a completion. Duration is the configured
// length of the finished phase.
func NewRecord(
	runID uuid.UUID,
	c pomodoro.Completion,
	duration time.Duration,
) *Record {
	return &Record{
		EndTime:     c.At,
		RunID:       runID,
		Phase:       c.Finished,
		Cycle:       c.Cycle,
		TotalCycles: c.TotalCycles,
		Duration:    duration,
		Skipped:     c.Skipped,
	}
}
