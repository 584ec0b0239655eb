package app

import "github.com/ayoisaiah/pomo/internal/apperr"

var (
	errInvalidPeriod = &apperr.Error{
		Message: "invalid period %q: expected one of %s",
	}

	errParsingDate = &apperr.Error{
		Message: "unable to understand the date %q",
	}

	errPaths = &apperr.Error{
		Message: "unable to locate the pomo data directories",
	}
)
