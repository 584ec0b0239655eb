package store

import (
	"time"

	"github.com/ayoisaiah/pomo/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// SaveRecord stores a finished phase
	SaveRecord(r *models.Record) error
	// Records returns the records that ended within [start, end], oldest
	// first
	Records(start, end time.Time) ([]*models.Record, error)
	// Close ends the database connection
	Close() error
}
