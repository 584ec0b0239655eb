// Package logging configures the application logger
package logging

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

// Options configures the logger.
type Options struct {
	// Path is the log file. Logging is discarded when it is empty.
	Path  string
	Debug bool
}

// New returns a logger that writes logfmt lines to a size-rotated file. The
// returned closer releases the file.
func New(opts Options) (*slog.Logger, io.Closer) {
	if opts.Path == "" {
		return NewWithWriter(io.Discard, opts.Debug), io.NopCloser(nil)
	}

	w := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}

	return NewWithWriter(w, opts.Debug), w
}

// NewWithWriter returns a logger that writes to w.
func NewWithWriter(w io.Writer, debug bool) *slog.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
		Level:           level,
	})

	return slog.New(handler)
}
