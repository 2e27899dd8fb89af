// Package store provides the key-value blob persistence used for
// vocabulary and statistics snapshots.
package store

// Store persists named blobs. Writes replace the whole value for a key.
type Store interface {
	// Get returns the stored value for key. The second return value is
	// false when the key has never been written.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Close() error
}
