package storage

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("quickserve")

// Bolt is the persistent Store backed by a bbolt file. Several
// processes may open the same file in turn; writes are only visible to
// readers through the change markers, so Bolt intentionally does not
// implement Notifier.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (creating if needed) the store file at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to open bolt file %q: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("storage: failed to close bolt file after bucket init failure")
		}
		return nil, fmt.Errorf("storage: failed to init bucket: %w", err)
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Get(key string, v any) error {
	var raw []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		if data := tx.Bucket(bucketName).Get([]byte(key)); data != nil {
			raw = append(raw, data...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage: failed to read key %q: %w", key, err)
	}
	if raw == nil {
		return ErrKeyNotFound
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("storage: failed to unmarshal value for key %q: %w", key, err)
	}
	return nil
}

func (b *Bolt) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: failed to marshal value for key %q: %w", key, err)
	}
	err = b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), raw)
	})
	if err != nil {
		return fmt.Errorf("storage: failed to write key %q: %w", key, err)
	}
	return nil
}

func (b *Bolt) Delete(key string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("storage: failed to delete key %q: %w", key, err)
	}
	return nil
}

func (b *Bolt) Keys() ([]string, error) {
	var keys []string
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to list keys: %w", err)
	}
	return keys, nil
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
