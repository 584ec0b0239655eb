package config

import "github.com/ayoisaiah/pomo/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errPromptFailed = &apperr.Error{
		Message: "user prompt failed",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid %s duration",
	}

	errUnknownSound = &apperr.Error{
		Message: "unknown %s sound: %s",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be mp3, ogg, flac, or wav)",
	}

	errInvalidColor = &apperr.Error{
		Message: "%s color must be a valid hex color code (e.g. #FF0000), got %s",
	}

	errEmptyMsg = &apperr.Error{
		Message: "%s message cannot be empty",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s duration must be between %v and %v",
	}

	errInvalidCycles = &apperr.Error{
		Message: "cycles must be between %d and %d, got %d",
	}
)
