// Package report prints errors to the terminal
package report

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/pomo/internal/osutil"
)

// Error prints err without exiting.
func Error(err error) {
	pterm.Error.Println(err)
}

// Quit prints err and exits with a failure status.
func Quit(err error) {
	Error(err)
	os.Exit(int(osutil.ExitError))
}
