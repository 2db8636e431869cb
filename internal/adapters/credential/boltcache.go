package credential

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	sessionBucket = []byte("session")
	tokenKey      = []byte("token")
	modifiedKey   = []byte("modified")
)

// BoltCache keeps the token in a bbolt database. It is the backend of choice
// when several processes share a data directory, since bbolt holds a file lock.
type BoltCache struct {
	db  *bolt.DB
	now func() time.Time
}

// OpenBoltCache opens (creating if needed) the database at path.
func OpenBoltCache(path string) (*BoltCache, error) {
	db, err := bolt.Open(path, cacheFileMode, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrCache, path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: init bucket: %w", ErrCache, err)
	}
	return &BoltCache{db: db, now: time.Now}, nil
}

// Load implements TokenCache.
func (c *BoltCache) Load(_ context.Context) (Entry, error) {
	var e Entry
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		token := b.Get(tokenKey)
		if len(token) == 0 {
			return ErrNoToken
		}
		var modified time.Time
		if err := modified.UnmarshalBinary(b.Get(modifiedKey)); err != nil {
			return fmt.Errorf("%w: decode timestamp: %w", ErrCache, err)
		}
		e = Entry{Token: string(token), Modified: modified}
		return nil
	})
	return e, err
}

// Store implements TokenCache.
func (c *BoltCache) Store(_ context.Context, token string) error {
	stamp, err := c.now().MarshalBinary()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}
	err = c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if err := b.Put(tokenKey, []byte(token)); err != nil {
			return err
		}
		return b.Put(modifiedKey, stamp)
	})
	if err != nil {
		return fmt.Errorf("%w: store: %w", ErrCache, err)
	}
	return nil
}

// Close releases the database file lock.
func (c *BoltCache) Close() error {
	return c.db.Close()
}
