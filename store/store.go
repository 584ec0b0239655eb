// Package store keeps the history of finished phases in a BoltDB database
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/pomo/internal/apperr"
	"github.com/ayoisaiah/pomo/internal/models"
	"github.com/ayoisaiah/pomo/internal/timeutil"
)

const (
	recordBucket = "records"
	metaBucket   = "meta"
)

const fileMode fs.FileMode = 0o600

var (
	errDBLocked = &apperr.Error{
		Message: "the history database is in use by another pomo process",
	}

	errOpenDB = &apperr.Error{
		Message: "unable to open the history database at %s",
	}
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// Option customises how the database is opened.
type Option func(*bolt.Options)

// ReadOnly opens the database with a shared lock.
func ReadOnly() Option {
	return func(o *bolt.Options) {
		o.ReadOnly = true
	}
}

// WithTimeout sets how long to wait for the file lock.
func WithTimeout(d time.Duration) Option {
	return func(o *bolt.Options) {
		o.Timeout = d
	}
}

// NewClient opens the database at dbPath, creating it and its buckets if
// needed.
func NewClient(dbPath string, opts ...Option) (*Client, error) {
	boltOpts := &bolt.Options{Timeout: 1 * time.Second}

	for _, opt := range opts {
		opt(boltOpts)
	}

	db, err := bolt.Open(dbPath, fileMode, boltOpts)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errDBLocked.Wrap(err)
		}

		return nil, errOpenDB.Fmt(dbPath).Wrap(err)
	}

	c := &Client{db}

	if boltOpts.ReadOnly {
		return c, nil
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(recordBucket))
		if err != nil {
			return err
		}

		meta, err := tx.CreateBucketIfNotExists([]byte(metaBucket))
		if err != nil {
			return err
		}

		return c.migrate(meta)
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}

// SaveRecord stores r keyed by its end time. Records that end at the same
// instant are kept apart by nudging the key forward.
func (c *Client) SaveRecord(r *models.Record) error {
	value, err := json.Marshal(r)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(recordBucket))

		at := r.EndTime
		for b.Get(timeutil.ToKey(at)) != nil {
			at = at.Add(time.Nanosecond)
		}

		return b.Put(timeutil.ToKey(at), value)
	})
}

// Records returns the records that ended within [start, end], oldest first.
func (c *Client) Records(start, end time.Time) ([]*models.Record, error) {
	var records []*models.Record

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(recordBucket))
		if b == nil {
			return nil
		}

		cur := b.Cursor()
		minKey := timeutil.ToKey(start)
		maxKey := timeutil.ToKey(end)

		for k, v := cur.Seek(minKey); k != nil && bytes.Compare(k, maxKey) <= 0; k, v = cur.Next() {
			var r models.Record

			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}

			records = append(records, &r)
		}

		return nil
	})

	return records, err
}

// Appender saves records by opening the database for each write, so that
// other processes can read the history while a timer is running.
type Appender struct {
	Path string
}

// SaveRecord stores r in the database at a.Path.
func (a Appender) SaveRecord(r *models.Record) error {
	c, err := NewClient(a.Path)
	if err != nil {
		return err
	}

	if err := c.SaveRecord(r); err != nil {
		_ = c.Close()
		return err
	}

	return c.Close()
}
