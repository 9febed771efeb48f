package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/shreepawar22/quickserve/internal/metrics"
	"github.com/shreepawar22/quickserve/internal/order"
)

// RestaurantNames resolves a restaurant id for display. A deleted
// restaurant yields a placeholder, never an error.
type RestaurantNames interface {
	DisplayName(id string) string
}

// DashboardHandler serves the admin dashboard view: it sweeps aged-out
// completed orders to history and recomputes the counters on every
// request, so the response always reflects the stored collections.
type DashboardHandler struct {
	service order.Service
	names   RestaurantNames
	now     func() time.Time
}

func NewDashboardHandler(service order.Service, names RestaurantNames) *DashboardHandler {
	return &DashboardHandler{service: service, names: names, now: time.Now}
}

func (h *DashboardHandler) RegisterRoutes(router chi.Router) {
	router.Get("/api/admin/dashboard", h.handleDashboard)
}

type dashboardResponse struct {
	Metrics metrics.Metrics `json:"metrics"`
	Orders  []order.Order   `json:"orders"`
}

func (h *DashboardHandler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := h.now()

	if _, err := h.service.SweepArchive(ctx, now); err != nil {
		log.Error().Err(err).Msg("dashboard sweep failed")
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	active, err := h.service.ListActive(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load active orders")
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	history, err := h.service.ListHistory(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load order history")
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	// Orders placed without a restaurant name get one resolved at
	// display time, falling back to the placeholder when the
	// restaurant is gone.
	for i := range active {
		if active[i].RestaurantName == "" {
			active[i].RestaurantName = h.names.DisplayName(active[i].RestaurantID)
		}
	}

	respondWithJSON(w, http.StatusOK, dashboardResponse{
		Metrics: metrics.Snapshot(active, history, now),
		Orders:  active,
	})
}
