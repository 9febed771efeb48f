package admin

import (
	"errors"
	"fmt"

	"github.com/shreepawar22/quickserve/internal/order"
	"github.com/shreepawar22/quickserve/internal/storage"
)

// CustomerProfiles persists the contact details entered at checkout so
// the next checkout can prefill them.
type CustomerProfiles struct {
	store storage.Store
}

func NewCustomerProfiles(store storage.Store) *CustomerProfiles {
	return &CustomerProfiles{store: store}
}

// SaveCustomer implements order.ProfileSaver.
func (p *CustomerProfiles) SaveCustomer(c order.Customer) error {
	if err := p.store.Put(storage.KeyCustomerProfile, c); err != nil {
		return fmt.Errorf("failed to save customer profile: %w", err)
	}
	return nil
}

// Customer returns the stored profile, or a zero profile when none has
// been saved yet.
func (p *CustomerProfiles) Customer() (order.Customer, error) {
	var c order.Customer
	err := p.store.Get(storage.KeyCustomerProfile, &c)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return order.Customer{}, nil
	}
	if err != nil {
		return order.Customer{}, fmt.Errorf("failed to read customer profile: %w", err)
	}
	return c, nil
}
