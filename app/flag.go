package app

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/pomo/internal/static"
	"github.com/ayoisaiah/pomo/internal/timeutil"
)

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Write debug logs, including every terminal event, to the log file",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a phase is completed",
	}

	cmdFlag = &cli.StringFlag{
		Name:  "cmd",
		Usage: "Execute an arbitrary command after each phase",
	}

	soundFlag = &cli.StringFlag{
		Name:  "sound",
		Usage: "Background music played while the timer runs: a bundled sound (" +
			strings.Join(static.Sounds(), ", ") +
			") or a path to\n\t\t\t\tan mp3, ogg, flac or wav file. Disable with 'off'",
	}

	chimeFlag = &cli.StringFlag{
		Name:  "chime",
		Usage: "Sound played when a phase ends (default: bell). Disable with 'off'",
	}

	workFlag = &cli.StringFlag{
		Name:    "work",
		Aliases: []string{"w"},
		Usage:   "Pomodoro duration, in minutes or as a duration such as 25m (default: 25)",
	}

	shortBreakFlag = &cli.StringFlag{
		Name:    "short-break",
		Aliases: []string{"s"},
		Usage:   "Short break duration in minutes (default: 5)",
	}

	longBreakFlag = &cli.StringFlag{
		Name:    "long-break",
		Aliases: []string{"l"},
		Usage:   "Long break duration in minutes (default: 15)",
	}

	cyclesFlag = &cli.UintFlag{
		Name:    "cycles",
		Aliases: []string{"c"},
		Usage:   "The number of pomodoro and short break cycles in a round (default: 4)",
	}

	longBreakLastFlag = &cli.BoolFlag{
		Name:  "long-break-last",
		Usage: "Take a long break instead of a short break after the last pomodoro of a round",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Only show phases that ended after this time (e.g. 'yesterday', '2 hours ago')",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Reporting period: all-time, today, yesterday, 7days, 14days or 30days",
		Value:   string(timeutil.PeriodToday),
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the history as JSON",
	}
)
