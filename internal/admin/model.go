package admin

// Profile is the restaurant-facing half of an admin account, captured
// during the second registration step.
type Profile struct {
	RestaurantName string `json:"restaurantName"`
	Address        string `json:"address"`
	CuisineType    string `json:"cuisineType"`
	PhoneNumber    string `json:"phoneNumber"`
	CoverImage     string `json:"coverImage,omitempty"`
}

// Admin is one registered restaurant admin. Password holds the
// plaintext credential the dashboard login compares against;
// PasswordHash is the bcrypt hash the registration backend persists.
// Both exist because the registration flow historically ran in two
// variants sharing one record shape.
type Admin struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	Password     string  `json:"password,omitempty"`
	PasswordHash string  `json:"passwordHash,omitempty"`
	RestaurantID string  `json:"restaurantId"`
	Profile      Profile `json:"profileData"`
}

// Session identifies the admin currently signed in to the dashboard.
type Session struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	RestaurantID string `json:"restaurantId"`
}
