// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

const secondsInAMinute = 60

type Period string

const (
	PeriodAllTime   Period = "all-time"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	Period7Days     Period = "7days"
	Period14Days    Period = "14days"
	Period30Days    Period = "30days"
)

var Range = map[Period]int{
	PeriodAllTime:   0,
	PeriodToday:     0,
	PeriodYesterday: -1,
	Period7Days:     -6,
	Period14Days:    -13,
	Period30Days:    -29,
}

var PeriodCollection = []Period{
	PeriodAllTime,
	PeriodToday,
	PeriodYesterday,
	Period7Days,
	Period14Days,
	Period30Days,
}

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(val int) (mins, secs int) {
	if val < 0 {
		val = 0
	}

	return val / secondsInAMinute, val % secondsInAMinute
}

// FormatClock formats a number of seconds as MM:SS. Minutes are not capped
// at 59 so that phases longer than an hour read as e.g. 90:00.
func FormatClock(secs int) string {
	m, s := SecsToMinsAndSecs(secs)

	return fmt.Sprintf("%02d:%02d", m, s)
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// PeriodBounds returns the start and end of a reporting period relative to
// now. An unknown period is treated as today.
func PeriodBounds(p Period, now time.Time) (start, end time.Time) {
	end = RoundToEnd(now)

	if p == PeriodAllTime {
		return time.Time{}, end
	}

	if p == PeriodYesterday {
		y := now.AddDate(0, 0, -1)
		return RoundToStart(y), RoundToEnd(y)
	}

	return RoundToStart(now.AddDate(0, 0, Range[p])), end
}

// FromStr parses a natural language date such as "2 days ago" or
// "last monday".
func FromStr(s string) (time.Time, error) {
	cfg := &dps.Configuration{
		CurrentTime:         time.Now(),
		PreferredDateSource: dps.Past,
	}

	dt, err := dps.Parse(cfg, s)
	if err != nil {
		return time.Time{}, err
	}

	return dt.Time, nil
}

// keyLayout is fixed width so that keys sort in time order.
const keyLayout = "2006-01-02T15:04:05.000000000Z"

// ToKey converts a time value to a database key for Bolt.
func ToKey(t time.Time) []byte {
	return []byte(t.UTC().Format(keyLayout))
}
