package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/menulink/api/internal/database"
	"github.com/menulink/api/internal/enum"
)

// HistoryStore defines the database methods needed by the history handler.
type HistoryStore interface {
	GetRestaurantByOwner(ctx context.Context, ownerID uuid.UUID) (database.Restaurant, error)
	ListOrderHistoryByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]database.OrderHistory, error)
	ListOrderItemHistoryByOrder(ctx context.Context, orderHistoryID uuid.UUID) ([]database.ListOrderItemHistoryByOrderRow, error)
}

// HistoryHandler serves the archived order list.
type HistoryHandler struct {
	store HistoryStore
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(store HistoryStore) *HistoryHandler {
	return &HistoryHandler{store: store}
}

type orderHistoryLineResponse struct {
	ItemID       uuid.UUID `json:"item_id"`
	ItemName     string    `json:"item_name"`
	CategoryName string    `json:"category_name"`
	Quantity     int32     `json:"quantity"`
	SpecialNote  string    `json:"special_note,omitempty"`
}

type orderHistoryResponse struct {
	ID          uuid.UUID                  `json:"id"`
	TableNumber int32                      `json:"table_number"`
	Status      string                     `json:"status"`
	OrderedAt   time.Time                  `json:"ordered_at"`
	CompletedAt time.Time                  `json:"completed_at"`
	Items       []orderHistoryLineResponse `json:"items"`
}

// List returns archived orders newest-by-completion first. Every archived
// order reads as completed.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurant, err := callerRestaurant(r, h.store)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusOK, []orderHistoryResponse{})
			return
		}
		log.Printf("ERROR: get restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	history, err := h.store.ListOrderHistoryByRestaurant(r.Context(), restaurant.ID)
	if err != nil {
		log.Printf("ERROR: list order history: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	out := make([]orderHistoryResponse, 0, len(history))
	for _, oh := range history {
		lines, err := h.store.ListOrderItemHistoryByOrder(r.Context(), oh.ID)
		if err != nil {
			log.Printf("ERROR: list history items for %s: %v", oh.ID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}

		resp := orderHistoryResponse{
			ID:          oh.ID,
			TableNumber: oh.TableNumber,
			Status:      enum.OrderStatusCompleted,
			OrderedAt:   oh.OrderedAt,
			CompletedAt: oh.CompletedAt,
			Items:       []orderHistoryLineResponse{},
		}
		for _, line := range lines {
			resp.Items = append(resp.Items, orderHistoryLineResponse{
				ItemID:       line.ItemID,
				ItemName:     line.ItemName,
				CategoryName: line.CategoryName,
				Quantity:     line.Quantity,
				SpecialNote:  line.SpecialNote.String,
			})
		}
		out = append(out, resp)
	}

	writeJSON(w, http.StatusOK, out)
}
