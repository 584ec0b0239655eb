package timer

import "github.com/ayoisaiah/pomo/internal/apperr"

var (
	errParseCmd = &apperr.Error{
		Message: "unable to parse the completion command %q",
	}

	errRunCmd = &apperr.Error{
		Message: "completion command %q failed",
	}

	errSaveRecord = &apperr.Error{
		Message: "unable to save the finished %s",
	}

	errNotify = &apperr.Error{
		Message: "unable to display notification",
	}
)
