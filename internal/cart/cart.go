// Package cart maintains the shared cart. Items from several
// restaurants may sit in the cart at once; checkout clears only the
// restaurant it ordered from.
package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shreepawar22/quickserve/internal/storage"
)

var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

// Item is one cart line, tied to the restaurant it came from.
type Item struct {
	RestaurantID        string  `json:"restaurantId"`
	MenuItemID          string  `json:"menuItemId"`
	Name                string  `json:"name"`
	Price               float64 `json:"price"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
}

type Repository struct {
	mu    sync.Mutex
	store storage.Store
}

func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// Items returns every cart item across all restaurants.
func (r *Repository) Items() ([]Item, error) {
	return r.load()
}

// ItemsFor returns the cart items belonging to one restaurant.
func (r *Repository) ItemsFor(restaurantID string) ([]Item, error) {
	items, err := r.load()
	if err != nil {
		return nil, err
	}
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if item.RestaurantID == restaurantID {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// Add puts an item in the cart, merging quantities when the same menu
// item is already present.
func (r *Repository) Add(item Item) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return err
	}

	merged := false
	for i := range items {
		if items[i].RestaurantID == item.RestaurantID && items[i].MenuItemID == item.MenuItemID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	return r.save(items)
}

// ClearRestaurant removes one restaurant's items, leaving the rest of
// the cart untouched.
func (r *Repository) ClearRestaurant(restaurantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return err
	}

	remaining := make([]Item, 0, len(items))
	for _, item := range items {
		if item.RestaurantID != restaurantID {
			remaining = append(remaining, item)
		}
	}
	return r.save(remaining)
}

func (r *Repository) load() ([]Item, error) {
	var items []Item
	err := r.store.Get(storage.KeyCartItems, &items)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart: failed to read cart items: %w", err)
	}
	return items, nil
}

func (r *Repository) save(items []Item) error {
	if err := r.store.Put(storage.KeyCartItems, items); err != nil {
		return fmt.Errorf("cart: failed to write cart items: %w", err)
	}
	return nil
}
