package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/shreepawar22/quickserve/internal/order"
)

// OrderHandler exposes checkout and the order lifecycle actions.
type OrderHandler struct {
	service  order.Service
	validate *validator.Validate
}

func NewOrderHandler(service order.Service) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Post("/api/orders", h.handleCheckout)
	router.Get("/api/orders", h.handleListActive)
	router.Get("/api/orders/history", h.handleListHistory)
	router.Post("/api/orders/{id}/advance", h.handleAdvance)
	router.Post("/api/orders/{id}/status", h.handleSetStatus)
}

func (h *OrderHandler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var input order.CheckoutInput

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		log.Warn().Err(err).Msg("failed to decode checkout request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(input); err != nil {
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

	placed, err := h.service.Checkout(r.Context(), input)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, placed)
}

func (h *OrderHandler) handleListActive(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListActive(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list active orders")
		respondWithError(w, http.StatusInternalServerError, "Failed to list orders")
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) handleListHistory(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListHistory(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list order history")
		respondWithError(w, http.StatusInternalServerError, "Failed to list order history")
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	updated, err := h.service.AdvanceOrder(r.Context(), id)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

type setStatusRequest struct {
	Status order.Status `json:"status" validate:"required"`
}

// handleSetStatus serves the cancelled/delivered admin actions that sit
// outside the advance progression.
func (h *OrderHandler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	var payload setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updated, err := h.service.SetStatus(r.Context(), id, payload.Status)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}
