package config

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/ayoisaiah/pomo/internal/pomodoro"
	"github.com/ayoisaiah/pomo/internal/static"
)

var (
	// Minimum and maximum duration constraints.
	minPhaseDuration = 1 * time.Second
	maxPhaseDuration = 720 * time.Minute // 12 hours

	minCycles = 1
	maxCycles = 12

	// Color format validation.
	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

	soundExts = []string{".mp3", ".ogg", ".flac", ".wav"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	for _, p := range pomodoro.Phases {
		if err := validatePhase(c.Phase(p), p); err != nil {
			return err
		}
	}

	return c.validateSettings()
}

// validatePhase validates an individual PhaseConfig.
func validatePhase(pc PhaseConfig, p pomodoro.Phase) error {
	name := strings.ToLower(p.String())

	if pc.Duration < minPhaseDuration || pc.Duration > maxPhaseDuration {
		return errInvalidDuration.Fmt(name, minPhaseDuration, maxPhaseDuration)
	}

	if strings.TrimSpace(pc.Message) == "" {
		return errEmptyMsg.Fmt(name)
	}

	if !hexColorRegex.MatchString(pc.Color) {
		return errInvalidColor.Fmt(name, pc.Color)
	}

	return nil
}

// validateSettings validates the SettingsConfig.
func (c *Config) validateSettings() error {
	if c.Settings.Cycles < minCycles || c.Settings.Cycles > maxCycles {
		return errInvalidCycles.Fmt(minCycles, maxCycles, c.Settings.Cycles)
	}

	if err := validateSound(c.Settings.AmbientSound, "ambient"); err != nil {
		return err
	}

	return validateSound(c.Settings.ChimeSound, "chime")
}

// validateSound accepts the name of a bundled sound or the path to an audio
// file in a supported format. An empty value or "off" disables the sound.
func validateSound(sound, group string) error {
	if sound == "" || sound == SoundOff {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(sound))
	if ext == "" {
		if !static.HasSound(sound) {
			return errUnknownSound.Fmt(group, sound)
		}

		return nil
	}

	if !slices.Contains(soundExts, ext) {
		return errInvalidSoundFormat.Fmt(sound)
	}

	_, err := os.Stat(sound)
	if errors.Is(err, os.ErrNotExist) {
		return errUnknownSound.Fmt(group, sound)
	}

	return nil
}
