package restaurant

import (
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrTableNotFound    = errors.New("table not found")
	ErrTableNumberTaken = errors.New("table with this number already exists")
	ErrInvalidCapacity  = errors.New("table capacity must be greater than zero")
)

// PlaceholderName is shown when an order references a restaurant that
// has since been deleted. A dangling reference is tolerated, never a
// hard failure.
const PlaceholderName = "Unknown Restaurant"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Restaurant, error) {
	return s.repo.All()
}

func (s *Service) Get(id string) (*Restaurant, error) {
	return s.repo.ByID(id)
}

// DisplayName resolves a restaurant id for display, falling back to a
// placeholder when the record is missing.
func (s *Service) DisplayName(id string) string {
	r, err := s.repo.ByID(id)
	if err != nil {
		return PlaceholderName
	}
	return r.Name
}

// AddTable creates a table on the restaurant. The table number must be
// unique within the restaurant.
func (s *Service) AddTable(restaurantID, number string, capacity int, status TableStatus) (*Table, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if !status.Valid() {
		status = TableFree
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate table id: %w", err)
	}
	table := Table{
		ID:       id.String(),
		Number:   number,
		Capacity: capacity,
		Status:   status,
	}

	_, err = s.repo.Update(restaurantID, func(r *Restaurant) error {
		for _, t := range r.Tables {
			if t.Number == number {
				return ErrTableNumberTaken
			}
		}
		r.Tables = append(r.Tables, table)
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("restaurant_id", restaurantID).Str("number", number).Msg("failed to add table")
		return nil, err
	}

	log.Info().Str("restaurant_id", restaurantID).Str("table_id", table.ID).Str("number", number).Msg("table added")
	return &table, nil
}

// UpdateTableStatus is the explicit admin action that changes a
// table's status.
func (s *Service) UpdateTableStatus(restaurantID, tableID string, status TableStatus) (*Table, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid table status %q", status)
	}
	return s.setStatus(restaurantID, tableID, status)
}

// ClaimTable marks a table booked or reserved as a side effect of an
// eat-in or pre-order checkout.
func (s *Service) ClaimTable(restaurantID, tableID string, status TableStatus) (Table, error) {
	t, err := s.setStatus(restaurantID, tableID, status)
	if err != nil {
		return Table{}, err
	}
	return *t, nil
}

func (s *Service) setStatus(restaurantID, tableID string, status TableStatus) (*Table, error) {
	var updated Table
	_, err := s.repo.Update(restaurantID, func(r *Restaurant) error {
		for i := range r.Tables {
			if r.Tables[i].ID == tableID {
				r.Tables[i].Status = status
				updated = r.Tables[i]
				return nil
			}
		}
		return ErrTableNotFound
	})
	if err != nil {
		log.Warn().Err(err).Str("restaurant_id", restaurantID).Str("table_id", tableID).Msg("failed to update table status")
		return nil, err
	}

	log.Info().Str("restaurant_id", restaurantID).Str("table_id", tableID).Str("status", string(status)).Msg("table status updated")
	return &updated, nil
}
