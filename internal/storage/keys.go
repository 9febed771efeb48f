package storage

// Well-known keys shared by every component of the application.
const (
	KeyOrders           = "orders"
	KeyOrderHistory     = "orderHistory"
	KeyOrderMarker      = "orderStatusUpdated"
	KeyRestaurants      = "restaurants"
	KeyTablesMarker     = "tablesUpdated"
	KeyAdminCredentials = "adminCredentials"
	KeyCurrentAdmin     = "currentAdmin"
	KeyCustomerProfile  = "user"
	KeyCartItems        = "cartItems"
)
