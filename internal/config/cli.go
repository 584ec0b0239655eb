package config

import (
	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Work                 string
	ShortBreak           string
	LongBreak            string
	AmbientSound         string
	ChimeSound           string
	SessionCmd           string
	Cycles               uint
	DisableNotify        bool
	LongBreakOnLastCycle bool
	SetLongBreakOnLast   bool
	Debug                bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Work:                 ctx.String("work"),
			ShortBreak:           ctx.String("short-break"),
			LongBreak:            ctx.String("long-break"),
			Cycles:               ctx.Uint("cycles"),
			AmbientSound:         ctx.String("sound"),
			ChimeSound:           ctx.String("chime"),
			SessionCmd:           ctx.String("cmd"),
			DisableNotify:        ctx.Bool("disable-notification"),
			LongBreakOnLastCycle: ctx.Bool("long-break-last"),
			SetLongBreakOnLast:   ctx.IsSet("long-break-last"),
			Debug:                ctx.Bool("debug"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if err := applyCLIDurations(c, opts); err != nil {
		return err
	}

	if opts.Cycles > 0 {
		c.Settings.Cycles = int(opts.Cycles)
	}

	if opts.SetLongBreakOnLast {
		c.Settings.LongBreakOnLastCycle = opts.LongBreakOnLastCycle
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.AmbientSound != "" {
		c.Settings.AmbientSound = opts.AmbientSound
	}

	if opts.ChimeSound != "" {
		c.Settings.ChimeSound = opts.ChimeSound
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	c.Debug = opts.Debug

	return nil
}

// applyCLIDurations handles parsing and applying duration settings from CLI.
func applyCLIDurations(c *Config, opts CLIOptions) error {
	durations := []struct {
		value  string
		name   string
		target *PhaseConfig
	}{
		{opts.Work, "work", &c.Work},
		{opts.ShortBreak, "short break", &c.ShortBreak},
		{opts.LongBreak, "long break", &c.LongBreak},
	}

	for _, d := range durations {
		if d.value == "" {
			continue
		}

		dur, err := parseDuration(d.value)
		if err != nil {
			return errInvalidCLIDuration.Fmt(d.name).Wrap(err)
		}

		d.target.Duration = dur
	}

	return nil
}
