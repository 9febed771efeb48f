package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/shreepawar22/quickserve/internal/restaurant"
)

// MenuHandler exposes menu category and item management for a
// restaurant's admin.
type MenuHandler struct {
	service  *restaurant.Service
	validate *validator.Validate
}

func NewMenuHandler(service *restaurant.Service) *MenuHandler {
	return &MenuHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *MenuHandler) RegisterRoutes(router chi.Router) {
	router.Post("/api/restaurants/{id}/menu/categories", h.handleAddCategory)
	router.Delete("/api/restaurants/{id}/menu/categories/{categoryID}", h.handleDeleteCategory)
	router.Post("/api/restaurants/{id}/menu/categories/{categoryID}/items", h.handleAddItem)
	router.Put("/api/restaurants/{id}/menu/items/{itemID}", h.handleUpdateItem)
	router.Delete("/api/restaurants/{id}/menu/items/{itemID}", h.handleDeleteItem)
	router.Put("/api/restaurants/{id}/menu/items/{itemID}/availability", h.handleSetAvailability)
}

type addCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *MenuHandler) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload addCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		h.respondValidationError(w, err)
		return
	}

	category, err := h.service.AddCategory(id, payload.Name)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, category)
}

func (h *MenuHandler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	categoryID := chi.URLParam(r, "categoryID")

	if err := h.service.DeleteCategory(id, categoryID); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type menuItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Veg         bool    `json:"veg"`
	Available   bool    `json:"available"`
}

func (r menuItemRequest) toModel() restaurant.MenuItem {
	return restaurant.MenuItem{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Image:       r.Image,
		Veg:         r.Veg,
		Available:   r.Available,
	}
}

func (h *MenuHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	categoryID := chi.URLParam(r, "categoryID")

	var payload menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		h.respondValidationError(w, err)
		return
	}

	item, err := h.service.AddMenuItem(id, categoryID, payload.toModel())
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, item)
}

func (h *MenuHandler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemID")

	var payload menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		h.respondValidationError(w, err)
		return
	}

	item, err := h.service.UpdateMenuItem(id, itemID, payload.toModel())
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemID")

	if err := h.service.DeleteMenuItem(id, itemID); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

func (h *MenuHandler) handleSetAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemID")

	var payload availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	item, err := h.service.SetMenuItemAvailability(id, itemID, payload.Available)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) respondValidationError(w http.ResponseWriter, err error) {
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
}
