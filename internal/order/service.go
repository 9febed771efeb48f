package order

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shreepawar22/quickserve/internal/restaurant"
)

var (
	ErrEmptyCart       = errors.New("order must contain at least one item")
	ErrNameRequired    = errors.New("customer name is required")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrAddressRequired = errors.New("delivery address is required")
	ErrTableRequired   = errors.New("table selection is required")
	ErrInvalidStatus   = errors.New("invalid order status")
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

const (
	gstRate             = 0.05
	deliveryFee         = 49
	freeDeliveryAbove   = 500
	deliveryEstimate    = "30-45 mins"
	preparationEstimate = "20-30 mins"
)

// TableClaimer claims a table as a side effect of an eat-in or
// pre-order checkout.
type TableClaimer interface {
	ClaimTable(restaurantID, tableID string, status restaurant.TableStatus) (restaurant.Table, error)
}

// CartClearer removes a restaurant's items from the shared cart once
// they have become an order.
type CartClearer interface {
	ClearRestaurant(restaurantID string) error
}

// ProfileSaver persists the customer contact details entered at
// checkout for the next visit.
type ProfileSaver interface {
	SaveCustomer(c Customer) error
}

// CheckoutInput is everything the checkout flow collects before
// placing an order.
type CheckoutInput struct {
	RestaurantID    string   `json:"restaurantId" validate:"required"`
	RestaurantName  string   `json:"restaurantName"`
	Items           []Item   `json:"items" validate:"required,min=1,dive"`
	Customer        Customer `json:"userDetails"`
	Type            Type     `json:"orderType" validate:"required"`
	DeliveryAddress string   `json:"deliveryAddress"`
	TableID         string   `json:"tableId"`
}

type Service interface {
	// Checkout validates the input, prices the cart and places a
	// pending order, claiming the table and clearing the cart as side
	// effects. Nothing is mutated when validation fails.
	Checkout(ctx context.Context, in CheckoutInput) (*Order, error)
	// ListActive returns the active collection, newest first.
	ListActive(ctx context.Context) ([]Order, error)
	// ListHistory returns the archived collection, newest first.
	ListHistory(ctx context.Context) ([]Order, error)
	// AdvanceOrder moves an order one step along the kitchen
	// progression. Advancing a terminal order is a no-op.
	AdvanceOrder(ctx context.Context, orderID string) (*Order, error)
	// SetStatus sets cancelled or delivered, the two states outside the
	// advance progression.
	SetStatus(ctx context.Context, orderID string, status Status) (*Order, error)
	// SweepArchive moves completed orders past the retention window
	// from the active collection into history.
	SweepArchive(ctx context.Context, now time.Time) (archived int, err error)
}

type service struct {
	repo     Repository
	tables   TableClaimer
	cart     CartClearer
	profiles ProfileSaver
	window   time.Duration
	now      func() time.Time
}

// NewService wires the checkout and lifecycle service. A zero window
// falls back to DefaultRetentionWindow.
func NewService(repo Repository, tables TableClaimer, cart CartClearer, profiles ProfileSaver, window time.Duration) Service {
	if window <= 0 {
		window = DefaultRetentionWindow
	}
	return &service{
		repo:     repo,
		tables:   tables,
		cart:     cart,
		profiles: profiles,
		window:   window,
		now:      time.Now,
	}
}

func (s *service) Checkout(ctx context.Context, in CheckoutInput) (*Order, error) {
	if err := validateCheckout(in); err != nil {
		log.Warn().Err(err).Str("restaurant_id", in.RestaurantID).Msg("checkout rejected")
		return nil, err
	}

	now := s.now()
	subtotal := cartTotal(in.Items)
	fee := feeFor(in.Type, subtotal)
	tax := subtotal * gstRate

	o := Order{
		ID:             fmt.Sprintf("order_%d", now.UnixMilli()),
		RestaurantID:   in.RestaurantID,
		RestaurantName: in.RestaurantName,
		Items:          in.Items,
		Customer:       in.Customer,
		Type:           in.Type,
		Subtotal:       subtotal,
		DeliveryFee:    fee,
		Tax:            tax,
		TotalAmount:    subtotal + fee + tax,
		Status:         StatusPending,
		OrderDate:      now,
		EstimatedTime:  preparationEstimate,
	}
	if in.Type == TypeDelivery {
		o.DeliveryAddress = in.DeliveryAddress
		o.EstimatedTime = deliveryEstimate
	}

	if in.Type.NeedsTable() {
		claimed := restaurant.TableBooked
		if in.Type == TypePreOrder {
			claimed = restaurant.TableReserved
		}
		table, err := s.tables.ClaimTable(in.RestaurantID, in.TableID, claimed)
		if err != nil {
			log.Warn().Err(err).Str("table_id", in.TableID).Msg("failed to claim table at checkout")
			return nil, fmt.Errorf("failed to claim table: %w", err)
		}
		o.TableID = table.ID
		o.TableNumber = table.Number
	}

	if err := s.repo.Append(o); err != nil {
		log.Error().Err(err).Str("order_id", o.ID).Msg("failed to store order")
		return nil, fmt.Errorf("failed to store order: %w", err)
	}

	if err := s.cart.ClearRestaurant(in.RestaurantID); err != nil {
		log.Error().Err(err).Str("restaurant_id", in.RestaurantID).Msg("failed to clear cart after checkout")
	}
	if err := s.profiles.SaveCustomer(in.Customer); err != nil {
		log.Error().Err(err).Msg("failed to save customer profile after checkout")
	}

	log.Info().
		Str("order_id", o.ID).
		Str("restaurant_id", o.RestaurantID).
		Str("order_type", string(o.Type)).
		Float64("total", o.TotalAmount).
		Msg("order placed")

	return &o, nil
}

func (s *service) ListActive(ctx context.Context) ([]Order, error) {
	orders, err := s.repo.Active()
	if err != nil {
		return nil, err
	}
	SortNewestFirst(orders)
	return orders, nil
}

func (s *service) ListHistory(ctx context.Context) ([]Order, error) {
	orders, err := s.repo.History()
	if err != nil {
		return nil, err
	}
	SortNewestFirst(orders)
	return orders, nil
}

func (s *service) AdvanceOrder(ctx context.Context, orderID string) (*Order, error) {
	return s.mutate(orderID, func(o *Order) {
		Advance(o, s.now())
	})
}

func (s *service) SetStatus(ctx context.Context, orderID string, status Status) (*Order, error) {
	if status != StatusCancelled && status != StatusDelivered {
		return nil, fmt.Errorf("%w: %s is not an admin-set status", ErrInvalidStatus, status)
	}
	return s.mutate(orderID, func(o *Order) {
		o.Status = status
	})
}

func (s *service) SweepArchive(ctx context.Context, now time.Time) (int, error) {
	archived, err := s.repo.Archive(func(active []Order) (keep, toArchive []Order) {
		return Sweep(active, now, s.window)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to archive completed orders")
		return 0, err
	}

	if archived > 0 {
		log.Info().Int("count", archived).Msg("archived completed orders")
	}
	return archived, nil
}

// mutate applies one change to an active order inside the repository's
// read-modify-write cycle, so concurrent checkouts are never lost.
func (s *service) mutate(orderID string, apply func(*Order)) (*Order, error) {
	var updated *Order
	err := s.repo.Update(func(active []Order) ([]Order, error) {
		for i := range active {
			if active[i].ID == orderID {
				apply(&active[i])
				o := active[i]
				updated = &o
				return active, nil
			}
		}
		return nil, ErrOrderNotFound
	})
	if errors.Is(err, ErrOrderNotFound) {
		log.Warn().Str("order_id", orderID).Msg("order not found in active collection")
		return nil, err
	}
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("failed to persist order update")
		return nil, err
	}
	return updated, nil
}

func validateCheckout(in CheckoutInput) error {
	if len(in.Items) == 0 {
		return ErrEmptyCart
	}
	if in.Customer.Name == "" {
		return ErrNameRequired
	}
	if !phonePattern.MatchString(in.Customer.Phone) {
		return ErrInvalidPhone
	}
	if in.Type == TypeDelivery && in.DeliveryAddress == "" {
		return ErrAddressRequired
	}
	if in.Type.NeedsTable() && in.TableID == "" {
		return ErrTableRequired
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("quantity for item %q must be greater than zero", item.Name)
		}
		if item.Price < 0 {
			return fmt.Errorf("price for item %q cannot be negative", item.Name)
		}
	}
	return nil
}

func cartTotal(items []Item) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func feeFor(t Type, subtotal float64) float64 {
	if t != TypeDelivery {
		return 0
	}
	if subtotal > freeDeliveryAbove {
		return 0
	}
	return deliveryFee
}
