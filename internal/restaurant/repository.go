package restaurant

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/shreepawar22/quickserve/internal/storage"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

// Repository maintains the restaurants collection (with their menus and
// tables) in the shared store. Mutations through Update bump the tables
// change marker so open dashboards reload.
type Repository interface {
	All() ([]Restaurant, error)
	ByID(id string) (*Restaurant, error)
	// Save inserts or replaces a restaurant by id.
	Save(r Restaurant) error
	// Update applies fn to the restaurant with the given id inside one
	// read-modify-write cycle and bumps the tables marker.
	Update(id string, fn func(*Restaurant) error) (*Restaurant, error)
	// TablesMarker returns the current tables change marker, or "".
	TablesMarker() (string, error)
}

type storeRepository struct {
	mu    sync.Mutex
	store storage.Store
	now   func() time.Time
}

func NewRepository(store storage.Store) Repository {
	return &storeRepository{store: store, now: time.Now}
}

func (r *storeRepository) All() ([]Restaurant, error) {
	return r.load()
}

func (r *storeRepository) ByID(id string) (*Restaurant, error) {
	restaurants, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range restaurants {
		if restaurants[i].ID == id {
			return &restaurants[i], nil
		}
	}
	return nil, ErrRestaurantNotFound
}

func (r *storeRepository) Save(restaurant Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	restaurants, err := r.load()
	if err != nil {
		return err
	}

	replaced := false
	for i := range restaurants {
		if restaurants[i].ID == restaurant.ID {
			restaurants[i] = restaurant
			replaced = true
			break
		}
	}
	if !replaced {
		restaurants = append(restaurants, restaurant)
	}

	if err := r.store.Put(storage.KeyRestaurants, restaurants); err != nil {
		return fmt.Errorf("restaurant repository: failed to write restaurants: %w", err)
	}
	return nil
}

func (r *storeRepository) Update(id string, fn func(*Restaurant) error) (*Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	restaurants, err := r.load()
	if err != nil {
		return nil, err
	}

	var updated *Restaurant
	for i := range restaurants {
		if restaurants[i].ID == id {
			if err := fn(&restaurants[i]); err != nil {
				return nil, err
			}
			updated = &restaurants[i]
			break
		}
	}
	if updated == nil {
		return nil, ErrRestaurantNotFound
	}

	if err := r.store.Put(storage.KeyRestaurants, restaurants); err != nil {
		return nil, fmt.Errorf("restaurant repository: failed to write restaurants: %w", err)
	}
	marker := strconv.FormatInt(r.now().UnixMilli(), 10)
	if err := r.store.Put(storage.KeyTablesMarker, marker); err != nil {
		return nil, fmt.Errorf("restaurant repository: failed to write tables marker: %w", err)
	}

	result := *updated
	return &result, nil
}

func (r *storeRepository) TablesMarker() (string, error) {
	var marker string
	err := r.store.Get(storage.KeyTablesMarker, &marker)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("restaurant repository: failed to read tables marker: %w", err)
	}
	return marker, nil
}

func (r *storeRepository) load() ([]Restaurant, error) {
	var restaurants []Restaurant
	err := r.store.Get(storage.KeyRestaurants, &restaurants)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []Restaurant{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("restaurant repository: failed to read restaurants: %w", err)
	}
	return restaurants, nil
}
