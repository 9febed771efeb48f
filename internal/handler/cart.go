package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/shreepawar22/quickserve/internal/cart"
)

// CartHandler exposes the shared cart the checkout flow consumes.
type CartHandler struct {
	cart     *cart.Repository
	validate *validator.Validate
}

func NewCartHandler(repo *cart.Repository) *CartHandler {
	return &CartHandler{
		cart:     repo,
		validate: validator.New(),
	}
}

func (h *CartHandler) RegisterRoutes(router chi.Router) {
	router.Get("/api/cart", h.handleList)
	router.Post("/api/cart", h.handleAdd)
}

type addCartItemRequest struct {
	RestaurantID        string  `json:"restaurantId" validate:"required"`
	MenuItemID          string  `json:"menuItemId" validate:"required"`
	Name                string  `json:"name" validate:"required"`
	Price               float64 `json:"price" validate:"gte=0"`
	Quantity            int     `json:"quantity" validate:"required,gt=0"`
	SpecialInstructions string  `json:"specialInstructions"`
}

func (h *CartHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var payload addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:   "Validation failed",
				Details: formatValidationErrors(validationErrors),
			})
			return
		}
		log.Error().Err(err).Msg("unexpected error type during validation")
		respondWithError(w, http.StatusInternalServerError, "Internal validation error")
		return
	}

	item := cart.Item{
		RestaurantID:        payload.RestaurantID,
		MenuItemID:          payload.MenuItemID,
		Name:                payload.Name,
		Price:               payload.Price,
		Quantity:            payload.Quantity,
		SpecialInstructions: payload.SpecialInstructions,
	}
	if err := h.cart.Add(item); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, item)
}

// handleList returns the whole cart, or one restaurant's slice of it
// when restaurantId is given.
func (h *CartHandler) handleList(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.URL.Query().Get("restaurantId")

	var (
		items []cart.Item
		err   error
	)
	if restaurantID != "" {
		items, err = h.cart.ItemsFor(restaurantID)
	} else {
		items, err = h.cart.Items()
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to list cart items")
		respondWithError(w, http.StatusInternalServerError, "Failed to list cart items")
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}
