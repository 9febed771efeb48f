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

// TableHandler exposes restaurant lookup and table management.
type TableHandler struct {
	service  *restaurant.Service
	validate *validator.Validate
}

func NewTableHandler(service *restaurant.Service) *TableHandler {
	return &TableHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *TableHandler) RegisterRoutes(router chi.Router) {
	router.Get("/api/restaurants", h.handleListRestaurants)
	router.Get("/api/restaurants/{id}", h.handleGetRestaurant)
	router.Get("/api/restaurants/{id}/tables", h.handleListTables)
	router.Post("/api/restaurants/{id}/tables", h.handleAddTable)
	router.Put("/api/restaurants/{id}/tables/{tableID}/status", h.handleUpdateTableStatus)
}

func (h *TableHandler) handleListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.service.List()
	if err != nil {
		log.Error().Err(err).Msg("failed to list restaurants")
		respondWithError(w, http.StatusInternalServerError, "Failed to list restaurants")
		return
	}
	respondWithJSON(w, http.StatusOK, restaurants)
}

func (h *TableHandler) handleGetRestaurant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.service.Get(id)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, found)
}

func (h *TableHandler) handleListTables(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.service.Get(id)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, found.Tables)
}

type addTableRequest struct {
	Number   string                 `json:"number" validate:"required"`
	Capacity int                    `json:"capacity" validate:"required,gt=0"`
	Status   restaurant.TableStatus `json:"status"`
}

func (h *TableHandler) handleAddTable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload addTableRequest
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

	table, err := h.service.AddTable(id, payload.Number, payload.Capacity, payload.Status)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, table)
}

type updateTableStatusRequest struct {
	Status restaurant.TableStatus `json:"status" validate:"required"`
}

func (h *TableHandler) handleUpdateTableStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tableID := chi.URLParam(r, "tableID")

	var payload updateTableStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	table, err := h.service.UpdateTableStatus(id, tableID, payload.Status)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, table)
}
