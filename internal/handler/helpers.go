package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/shreepawar22/quickserve/internal/admin"
	"github.com/shreepawar22/quickserve/internal/cart"
	"github.com/shreepawar22/quickserve/internal/order"
	"github.com/shreepawar22/quickserve/internal/restaurant"
)

type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		details[fieldErr.Field()] = "failed on '" + fieldErr.Tag() + "' validation"
	}
	return details
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, restaurant.ErrRestaurantNotFound),
		errors.Is(err, restaurant.ErrTableNotFound),
		errors.Is(err, restaurant.ErrCategoryNotFound),
		errors.Is(err, restaurant.ErrMenuItemNotFound),
		errors.Is(err, admin.ErrAdminNotFound),
		errors.Is(err, admin.ErrNoSession):
		return http.StatusNotFound
	case errors.Is(err, admin.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, restaurant.ErrTableNumberTaken):
		return http.StatusConflict
	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrNameRequired),
		errors.Is(err, order.ErrInvalidPhone),
		errors.Is(err, order.ErrAddressRequired),
		errors.Is(err, order.ErrTableRequired),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, restaurant.ErrInvalidCapacity),
		errors.Is(err, restaurant.ErrCategoryNameRequired),
		errors.Is(err, restaurant.ErrItemNameRequired),
		errors.Is(err, restaurant.ErrNegativePrice),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, admin.ErrPasswordMismatch),
		errors.Is(err, admin.ErrPasswordTooShort),
		errors.Is(err, admin.ErrUsernameExists),
		errors.Is(err, admin.ErrEmailExists),
		errors.Is(err, admin.ErrImageRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
