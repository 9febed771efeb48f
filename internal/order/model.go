package order

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusDelivered Status = "delivered"
)

func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is one of the known order statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusCompleted, StatusCancelled, StatusDelivered:
		return true
	}
	return false
}

type Type string

const (
	TypeDelivery Type = "delivery"
	TypeTakeaway Type = "takeaway"
	TypeEatIn    Type = "eat-in"
	TypePreOrder Type = "pre-order"
)

// NeedsTable reports whether this order type claims a table at checkout.
func (t Type) NeedsTable() bool {
	return t == TypeEatIn || t == TypePreOrder
}

// Item is one ordered line item.
type Item struct {
	Name                string  `json:"name"`
	Price               float64 `json:"price"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
}

// Customer are the contact details collected at checkout.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// Order is a single placed order. CompletionTime is nil until the order
// first reaches the completed status and is never cleared afterwards.
type Order struct {
	ID              string     `json:"id"`
	RestaurantID    string     `json:"restaurantId"`
	RestaurantName  string     `json:"restaurantName,omitempty"`
	Items           []Item     `json:"items"`
	Customer        Customer   `json:"userDetails"`
	Type            Type       `json:"orderType"`
	DeliveryAddress string     `json:"deliveryAddress,omitempty"`
	TableID         string     `json:"tableId,omitempty"`
	TableNumber     string     `json:"tableNumber,omitempty"`
	Subtotal        float64    `json:"subtotal"`
	DeliveryFee     float64    `json:"deliveryFee"`
	Tax             float64    `json:"tax"`
	TotalAmount     float64    `json:"totalAmount"`
	Status          Status     `json:"status"`
	OrderDate       time.Time  `json:"orderDate"`
	CompletionTime  *time.Time `json:"completionTime,omitempty"`
	EstimatedTime   string     `json:"estimatedTime,omitempty"`
}
