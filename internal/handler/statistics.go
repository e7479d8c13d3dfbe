package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/menulink/api/internal/database"
	"github.com/menulink/api/internal/service"
)

// StatisticsSummarizer is the service slice behind the dashboard endpoint.
// Satisfied by *service.StatisticsService.
type StatisticsSummarizer interface {
	Summary(ctx context.Context, restaurantID uuid.UUID, period, startStr, endStr string) (*service.Summary, error)
}

// StatisticsStore defines the database methods needed by the statistics
// handler.
type StatisticsStore interface {
	GetRestaurantByOwner(ctx context.Context, ownerID uuid.UUID) (database.Restaurant, error)
}

// StatisticsHandler serves the precomputed dashboard counters.
type StatisticsHandler struct {
	store StatisticsStore
	stats StatisticsSummarizer
}

// NewStatisticsHandler creates a new StatisticsHandler.
func NewStatisticsHandler(store StatisticsStore, stats StatisticsSummarizer) *StatisticsHandler {
	return &StatisticsHandler{store: store, stats: stats}
}

// Summary answers GET /statistics with total orders and the top items for
// the requested period.
func (h *StatisticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	restaurant, err := callerRestaurant(r, h.store)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusOK, service.Summary{TopItems: []service.TopItem{}})
			return
		}
		log.Printf("ERROR: get restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	q := r.URL.Query()
	summary, err := h.stats.Summary(r.Context(), restaurant.ID, q.Get("period"), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: statistics summary: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
