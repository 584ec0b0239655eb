package app

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hako/durafmt"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/pomo/internal/models"
	"github.com/ayoisaiah/pomo/internal/pomodoro"
	"github.com/ayoisaiah/pomo/internal/timeutil"
	"github.com/ayoisaiah/pomo/internal/ui"
)

const noRecordsMsg = "No phases were finished in the specified time range"

// summary totals the time spent in each phase.
type summary map[pomodoro.Phase]time.Duration

func summarize(records []*models.Record) summary {
	s := make(summary)

	for _, r := range records {
		if r.Skipped {
			continue
		}

		s[r.Phase] += r.Duration
	}

	return s
}

// printHistoryTable prints a table of finished phases.
func printHistoryTable(w io.Writer, records []*models.Record, twentyFourHour bool) {
	layout := "Jan 02, 2006 03:04 PM"
	if twentyFourHour {
		layout = "Jan 02, 2006 15:04"
	}

	tableBody := make([][]string, 0, len(records)+1)

	tableBody = append(tableBody, []string{
		"#", "PHASE", "CYCLE", "DURATION", "ENDED", "STATUS",
	})

	for i, r := range records {
		status := ui.Green("completed")
		if r.Skipped {
			status = ui.Red("skipped")
		}

		tableBody = append(tableBody, []string{
			fmt.Sprintf("%d", i+1),
			ui.PhaseColor(r.Phase, r.Phase.String()),
			fmt.Sprintf("%d/%d", r.Cycle, r.TotalCycles),
			timeutil.FormatClock(timeutil.Round(r.Duration.Seconds())),
			r.EndTime.Local().Format(layout),
			status,
		})
	}

	ui.PrintTable(tableBody, w)

	s := summarize(records)

	fmt.Fprintf(
		w,
		"Focused for %s across %d pomodoros\n",
		ui.Green(humanDuration(s[pomodoro.Work])),
		countCompleted(records, pomodoro.Work),
	)
}

// humanDuration renders d as e.g. "1 hour 40 minutes".
func humanDuration(d time.Duration) string {
	if d < time.Minute {
		return "0 minutes"
	}

	return durafmt.Parse(d.Truncate(time.Minute)).LimitFirstN(2).String()
}

func countCompleted(records []*models.Record, p pomodoro.Phase) int {
	var n int

	for _, r := range records {
		if r.Phase == p && !r.Skipped {
			n++
		}
	}

	return n
}

// listHistory prints out the finished phases as a table or as JSON.
func listHistory(w io.Writer, records []*models.Record, asJSON, twentyFourHour bool) error {
	if asJSON {
		if records == nil {
			records = []*models.Record{}
		}

		b, err := json.Marshal(records)
		if err != nil {
			return err
		}

		fmt.Fprintln(w, string(b))

		return nil
	}

	if len(records) == 0 {
		pterm.Info.Println(noRecordsMsg)
		return nil
	}

	printHistoryTable(w, records, twentyFourHour)

	return nil
}
