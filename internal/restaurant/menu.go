package restaurant

import (
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrCategoryNotFound     = errors.New("menu category not found")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrItemNameRequired     = errors.New("menu item name is required")
	ErrNegativePrice        = errors.New("menu item price cannot be negative")
)

// AddCategory creates an empty menu category on the restaurant.
func (s *Service) AddCategory(restaurantID, name string) (*MenuCategory, error) {
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate category id: %w", err)
	}
	category := MenuCategory{ID: id.String(), Name: name, Items: []MenuItem{}}

	_, err = s.repo.Update(restaurantID, func(r *Restaurant) error {
		r.Categories = append(r.Categories, category)
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("restaurant_id", restaurantID).Str("name", name).Msg("failed to add menu category")
		return nil, err
	}

	log.Info().Str("restaurant_id", restaurantID).Str("category_id", category.ID).Msg("menu category added")
	return &category, nil
}

// DeleteCategory removes the category together with every item in it.
func (s *Service) DeleteCategory(restaurantID, categoryID string) error {
	_, err := s.repo.Update(restaurantID, func(r *Restaurant) error {
		for i := range r.Categories {
			if r.Categories[i].ID == categoryID {
				r.Categories = append(r.Categories[:i], r.Categories[i+1:]...)
				return nil
			}
		}
		return ErrCategoryNotFound
	})
	if err != nil {
		log.Warn().Err(err).Str("restaurant_id", restaurantID).Str("category_id", categoryID).Msg("failed to delete menu category")
		return err
	}

	log.Info().Str("restaurant_id", restaurantID).Str("category_id", categoryID).Msg("menu category deleted")
	return nil
}

// AddMenuItem creates an item inside the given category. The item's ID
// is generated; any ID on the input is ignored.
func (s *Service) AddMenuItem(restaurantID, categoryID string, item MenuItem) (*MenuItem, error) {
	if err := validateMenuItem(item); err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate menu item id: %w", err)
	}
	item.ID = id.String()

	_, err = s.repo.Update(restaurantID, func(r *Restaurant) error {
		for i := range r.Categories {
			if r.Categories[i].ID == categoryID {
				r.Categories[i].Items = append(r.Categories[i].Items, item)
				return nil
			}
		}
		return ErrCategoryNotFound
	})
	if err != nil {
		log.Warn().Err(err).Str("restaurant_id", restaurantID).Str("category_id", categoryID).Msg("failed to add menu item")
		return nil, err
	}

	log.Info().Str("restaurant_id", restaurantID).Str("item_id", item.ID).Str("name", item.Name).Msg("menu item added")
	return &item, nil
}

// UpdateMenuItem replaces the fields of an existing item, keeping its
// ID and category. The item is looked up across all categories.
func (s *Service) UpdateMenuItem(restaurantID, itemID string, item MenuItem) (*MenuItem, error) {
	if err := validateMenuItem(item); err != nil {
		return nil, err
	}

	var updated MenuItem
	_, err := s.repo.Update(restaurantID, func(r *Restaurant) error {
		for ci := range r.Categories {
			items := r.Categories[ci].Items
			for ii := range items {
				if items[ii].ID == itemID {
					item.ID = itemID
					items[ii] = item
					updated = items[ii]
					return nil
				}
			}
		}
		return ErrMenuItemNotFound
	})
	if err != nil {
		log.Warn().Err(err).Str("restaurant_id", restaurantID).Str("item_id", itemID).Msg("failed to update menu item")
		return nil, err
	}

	log.Info().Str("restaurant_id", restaurantID).Str("item_id", itemID).Msg("menu item updated")
	return &updated, nil
}

// DeleteMenuItem removes one item from whichever category holds it.
func (s *Service) DeleteMenuItem(restaurantID, itemID string) error {
	_, err := s.repo.Update(restaurantID, func(r *Restaurant) error {
		for ci := range r.Categories {
			items := r.Categories[ci].Items
			for ii := range items {
				if items[ii].ID == itemID {
					r.Categories[ci].Items = append(items[:ii], items[ii+1:]...)
					return nil
				}
			}
		}
		return ErrMenuItemNotFound
	})
	if err != nil {
		log.Warn().Err(err).Str("restaurant_id", restaurantID).Str("item_id", itemID).Msg("failed to delete menu item")
		return err
	}

	log.Info().Str("restaurant_id", restaurantID).Str("item_id", itemID).Msg("menu item deleted")
	return nil
}

// SetMenuItemAvailability toggles whether customers can order the item.
func (s *Service) SetMenuItemAvailability(restaurantID, itemID string, available bool) (*MenuItem, error) {
	var updated MenuItem
	_, err := s.repo.Update(restaurantID, func(r *Restaurant) error {
		for ci := range r.Categories {
			items := r.Categories[ci].Items
			for ii := range items {
				if items[ii].ID == itemID {
					items[ii].Available = available
					updated = items[ii]
					return nil
				}
			}
		}
		return ErrMenuItemNotFound
	})
	if err != nil {
		log.Warn().Err(err).Str("restaurant_id", restaurantID).Str("item_id", itemID).Msg("failed to change menu item availability")
		return nil, err
	}

	log.Info().Str("restaurant_id", restaurantID).Str("item_id", itemID).Bool("available", available).Msg("menu item availability changed")
	return &updated, nil
}

func validateMenuItem(item MenuItem) error {
	if item.Name == "" {
		return ErrItemNameRequired
	}
	if item.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}
