package restaurant

type TableStatus string

const (
	TableFree     TableStatus = "free"
	TableReserved TableStatus = "reserved"
	TableBooked   TableStatus = "booked"
)

func (ts TableStatus) Valid() bool {
	switch ts {
	case TableFree, TableReserved, TableBooked:
		return true
	}
	return false
}

// Table is one physical seating resource. Number is the display
// identity and is unique within a restaurant.
type Table struct {
	ID       string      `json:"id"`
	Number   string      `json:"number"`
	Capacity int         `json:"capacity"`
	Status   TableStatus `json:"status"`
}

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	Veg         bool    `json:"veg"`
	Available   bool    `json:"available"`
}

type MenuCategory struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// Restaurant owns its menu categories and tables.
type Restaurant struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Cuisine      string         `json:"cuisine"`
	Rating       float64        `json:"rating"`
	DeliveryTime string         `json:"deliveryTime"`
	MinOrder     float64        `json:"minOrder"`
	Address      string         `json:"address"`
	PhoneNumber  string         `json:"phoneNumber"`
	Image        string         `json:"image,omitempty"`
	Categories   []MenuCategory `json:"categories,omitempty"`
	Tables       []Table        `json:"tables,omitempty"`
}
