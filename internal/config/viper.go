package config

import (
	"errors"
	"os"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyWorkDuration         = "work.duration"
	keyWorkMessage          = "work.message"
	keyWorkColor            = "work.color"
	keyShortBreakDuration   = "short_break.duration"
	keyShortBreakMessage    = "short_break.message"
	keyShortBreakColor      = "short_break.color"
	keyLongBreakDuration    = "long_break.duration"
	keyLongBreakMessage     = "long_break.message"
	keyLongBreakColor       = "long_break.color"
	keyCycles               = "settings.cycles"
	keyLongBreakOnLastCycle = "settings.long_break_on_last_cycle"
	keyAmbientSound         = "settings.ambient_sound"
	keyChimeSound           = "settings.chime_sound"
	keySessionCmd           = "settings.cmd"
	keyNotificationsEnabled = "notifications.enabled"
	keyDarkTheme            = "display.dark_theme"
	keyTwentyFourHour       = "display.24hr_clock"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. The file is created with default values if it does
// not exist.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c, configPath)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c, configPath)
	}
}

// setupViper configures Viper with defaults and any values already present
// in c (from the first-run prompt).
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyWorkDuration, "25m")
	v.SetDefault(keyWorkMessage, "Focus on your task")
	v.SetDefault(keyWorkColor, "#B0DB43")
	v.SetDefault(keyShortBreakDuration, "5m")
	v.SetDefault(keyShortBreakMessage, "Take a breather")
	v.SetDefault(keyShortBreakColor, "#12EAEA")
	v.SetDefault(keyLongBreakDuration, "15m")
	v.SetDefault(keyLongBreakMessage, "Take a long break")
	v.SetDefault(keyLongBreakColor, "#C492B1")
	v.SetDefault(keyCycles, 4)
	v.SetDefault(keyLongBreakOnLastCycle, false)
	v.SetDefault(keyAmbientSound, "lofi")
	v.SetDefault(keyChimeSound, "bell")
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, false)

	if c.Work.Duration != 0 {
		v.Set(keyWorkDuration, c.Work.Duration.String())
	}

	if c.ShortBreak.Duration != 0 {
		v.Set(keyShortBreakDuration, c.ShortBreak.Duration.String())
	}

	if c.LongBreak.Duration != 0 {
		v.Set(keyLongBreakDuration, c.LongBreak.Duration.String())
	}

	if c.Settings.Cycles != 0 {
		v.Set(keyCycles, c.Settings.Cycles)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config, configPath string) error {
	err := v.Unmarshal(c, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.DecodeHookFuncType(durationHook),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return errReadConfig.Wrap(err)
	}

	c.PathToConfig = configPath

	return nil
}

// durationHook decodes durations written as Go duration strings ("25m") or
// as a bare number of minutes.
func durationHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}

	switch val := data.(type) {
	case string:
		return parseDuration(val)
	case int:
		return time.Duration(val) * time.Minute, nil
	case int64:
		return time.Duration(val) * time.Minute, nil
	case uint64:
		return time.Duration(val) * time.Minute, nil
	case float64:
		return time.Duration(val * float64(time.Minute)), nil
	}

	return data, nil
}
