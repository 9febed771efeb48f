package order

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shreepawar22/quickserve/internal/storage"
)

var ErrOrderNotFound = errors.New("order not found")

// Repository maintains the active and history order collections in the
// shared store and bumps the change marker on every mutation. All
// read-modify-write cycles run under one lock, so a concurrent Append
// can never be overwritten by a stale snapshot.
type Repository interface {
	Active() ([]Order, error)
	History() ([]Order, error)
	// Update applies one read-modify-write cycle to the active
	// collection under the repository lock. apply receives the current
	// collection and returns the collection to write back; returning an
	// error aborts the cycle without writing.
	Update(apply func(active []Order) ([]Order, error)) error
	// Append adds one order to the active collection.
	Append(o Order) error
	// Archive partitions the active collection under the repository
	// lock, appends the second part to history and writes the first
	// back, as one logical move. Returns how many orders moved; an
	// empty partition writes nothing.
	Archive(partition func(active []Order) (keep, toArchive []Order)) (int, error)
	// Marker returns the current change marker value, or "" when no
	// mutation has been recorded yet.
	Marker() (string, error)
}

type storeRepository struct {
	// Serializes read-modify-write cycles within this process. Writers
	// in other processes sharing the store are not protected; the last
	// full-collection write wins, which is the accepted behavior.
	mu    sync.Mutex
	store storage.Store
	now   func() time.Time
}

// NewRepository creates a Repository over the shared store.
func NewRepository(store storage.Store) Repository {
	return &storeRepository{store: store, now: time.Now}
}

func (r *storeRepository) Active() ([]Order, error) {
	return r.load(storage.KeyOrders)
}

func (r *storeRepository) History() ([]Order, error) {
	return r.load(storage.KeyOrderHistory)
}

func (r *storeRepository) Update(apply func(active []Order) ([]Order, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(storage.KeyOrders)
	if err != nil {
		return err
	}
	orders, err = apply(orders)
	if err != nil {
		return err
	}
	if err := r.store.Put(storage.KeyOrders, orders); err != nil {
		return fmt.Errorf("order repository: failed to write active orders: %w", err)
	}
	return r.bumpMarker()
}

func (r *storeRepository) Append(o Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(storage.KeyOrders)
	if err != nil {
		return err
	}
	orders = append(orders, o)
	if err := r.store.Put(storage.KeyOrders, orders); err != nil {
		return fmt.Errorf("order repository: failed to append order %s: %w", o.ID, err)
	}
	return r.bumpMarker()
}

func (r *storeRepository) Archive(partition func(active []Order) (keep, toArchive []Order)) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	active, err := r.load(storage.KeyOrders)
	if err != nil {
		return 0, err
	}
	keep, toArchive := partition(active)
	if len(toArchive) == 0 {
		return 0, nil
	}

	history, err := r.load(storage.KeyOrderHistory)
	if err != nil {
		return 0, err
	}
	history = append(history, toArchive...)
	if err := r.store.Put(storage.KeyOrderHistory, history); err != nil {
		return 0, fmt.Errorf("order repository: failed to write order history: %w", err)
	}
	if err := r.store.Put(storage.KeyOrders, keep); err != nil {
		return 0, fmt.Errorf("order repository: failed to write active orders: %w", err)
	}
	if err := r.bumpMarker(); err != nil {
		return 0, err
	}
	return len(toArchive), nil
}

func (r *storeRepository) Marker() (string, error) {
	var marker string
	err := r.store.Get(storage.KeyOrderMarker, &marker)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("order repository: failed to read change marker: %w", err)
	}
	return marker, nil
}

func (r *storeRepository) load(key string) ([]Order, error) {
	var orders []Order
	err := r.store.Get(key, &orders)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("order repository: failed to read %s: %w", key, err)
	}
	return orders, nil
}

func (r *storeRepository) bumpMarker() error {
	marker := strconv.FormatInt(r.now().UnixMilli(), 10)
	if err := r.store.Put(storage.KeyOrderMarker, marker); err != nil {
		return fmt.Errorf("order repository: failed to write change marker: %w", err)
	}
	return nil
}

// SortNewestFirst orders a collection for display, newest order first.
// Display order is a read-time concern; the stored collections are
// unordered.
func SortNewestFirst(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
}
