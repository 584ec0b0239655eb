// Package config loads pomo's settings from the config file, the first-run
// prompt and command-line flags
package config

import (
	"fmt"
	"time"

	"github.com/ayoisaiah/pomo/internal/pomodoro"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Work          PhaseConfig        `mapstructure:"work"`
		ShortBreak    PhaseConfig        `mapstructure:"short_break"`
		LongBreak     PhaseConfig        `mapstructure:"long_break"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"`
		PathToConfig  string             `mapstructure:"-"`
		PathToDB      string             `mapstructure:"-"`
		Debug         bool               `mapstructure:"-"`
	}

	// PhaseConfig holds the settings of a single phase.
	PhaseConfig struct {
		Message  string        `mapstructure:"message"`
		Color    string        `mapstructure:"color"`
		Duration time.Duration `mapstructure:"duration"`
	}

	// SettingsConfig holds timer behaviour settings.
	SettingsConfig struct {
		AmbientSound         string `mapstructure:"ambient_sound"`
		ChimeSound           string `mapstructure:"chime_sound"`
		Cmd                  string `mapstructure:"cmd"`
		Cycles               int    `mapstructure:"cycles"`
		LongBreakOnLastCycle bool   `mapstructure:"long_break_on_last_cycle"`
	}

	// NotificationConfig holds desktop notification settings.
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme      bool `mapstructure:"dark_theme"`
		TwentyFourHour bool `mapstructure:"24hr_clock"`
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

// SoundOff disables a sound when used in place of its name.
const SoundOff = "off"

// New creates a Config from the supplied options and validates the result.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// Phase returns the settings of phase p.
func (c *Config) Phase(p pomodoro.Phase) PhaseConfig {
	switch p {
	case pomodoro.ShortBreak:
		return c.ShortBreak
	case pomodoro.LongBreak:
		return c.LongBreak
	default:
		return c.Work
	}
}

// SchedulerSettings converts the configuration into scheduler settings.
func (c *Config) SchedulerSettings() pomodoro.Settings {
	return pomodoro.Settings{
		Durations: map[pomodoro.Phase]time.Duration{
			pomodoro.Work:       c.Work.Duration,
			pomodoro.ShortBreak: c.ShortBreak.Duration,
			pomodoro.LongBreak:  c.LongBreak.Duration,
		},
		TotalCycles:          c.Settings.Cycles,
		LongBreakOnLastCycle: c.Settings.LongBreakOnLastCycle,
	}
}

// duration strings.
func parseDuration(s string) (time.Duration, error) {
	// Try parsing as duration string first
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	// Try parsing as minutes in case duration unit is absent
	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	return mins, nil
}
