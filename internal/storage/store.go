// Package storage provides the shared key-value store that acts as the
// single source of truth for orders, restaurants, carts and sessions.
// Values are JSON-serialized under well-known string keys.
package storage

import "errors"

// ErrKeyNotFound is returned by Get when no value exists under the key.
var ErrKeyNotFound = errors.New("key not found")

// Store is the repository interface every consuming component receives
// instead of reaching for ambient global state.
type Store interface {
	// Get unmarshals the value under key into v.
	Get(key string, v any) error
	// Put marshals v and writes it under key, replacing any previous value.
	Put(key string, v any) error
	// Delete removes the value under key. Deleting a missing key is a no-op.
	Delete(key string) error
	// Keys lists every key currently present.
	Keys() ([]string, error)
	Close() error
}

// Notifier is an optional capability of a Store: delivery of changed
// keys to subscribers. A store that cannot observe writes made by other
// processes (e.g. the bolt store) does not implement it, and readers
// must rely on marker polling instead.
type Notifier interface {
	// Subscribe returns a channel of changed keys and a cancel func.
	// Notifications are best-effort: a slow subscriber may miss keys.
	Subscribe() (<-chan string, func())
}
