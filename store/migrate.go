package store

import (
	"encoding/binary"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/pomo/internal/apperr"
)

// schemaVersion is the layout written by this build.
const schemaVersion uint64 = 1

var versionKey = []byte("schema_version")

var errNewerSchema = &apperr.Error{
	Message: "the history database was written by a newer version of pomo (schema %d)",
}

// migrations[i] upgrades a database from version i to i+1. Version 0 is a
// database created before the version was tracked, which has nothing to
// convert.
var migrations = []func(tx *bolt.Tx) error{
	func(*bolt.Tx) error { return nil },
}

// migrate brings the database up to schemaVersion.
func (c *Client) migrate(meta *bolt.Bucket) error {
	var current uint64

	if v := meta.Get(versionKey); len(v) == 8 {
		current = binary.BigEndian.Uint64(v)
	}

	if current > schemaVersion {
		return errNewerSchema.Fmt(current)
	}

	for ; current < schemaVersion; current++ {
		if err := migrations[current](meta.Tx()); err != nil {
			return err
		}
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, schemaVersion)

	return meta.Put(versionKey, buf)
}
