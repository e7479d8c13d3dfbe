package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/menulink/api/internal/database"
)

// TableStore defines the database methods needed by table handlers.
type TableStore interface {
	GetRestaurantByOwner(ctx context.Context, ownerID uuid.UUID) (database.Restaurant, error)
	ListTablesByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]database.DiningTable, error)
	GetTableByNumber(ctx context.Context, arg database.GetTableByNumberParams) (database.DiningTable, error)
	CreateTable(ctx context.Context, arg database.CreateTableParams) (database.DiningTable, error)
	DeleteTable(ctx context.Context, arg database.DeleteTableParams) (uuid.UUID, error)
}

// TableHandler handles dining table endpoints.
type TableHandler struct {
	store TableStore
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(store TableStore) *TableHandler {
	return &TableHandler{store: store}
}

type tableRequest struct {
	Number int32 `json:"number"`
}

type tableResponse struct {
	ID        uuid.UUID `json:"id"`
	Number    int32     `json:"number"`
	QrURL     string    `json:"qr_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toTableResponse(t database.DiningTable) tableResponse {
	return tableResponse{
		ID:        t.ID,
		Number:    t.Number,
		QrURL:     qrURL(t.QrPath),
		CreatedAt: t.CreatedAt,
	}
}

func qrURL(p pgtype.Text) string {
	if !p.Valid || p.String == "" {
		return ""
	}
	return "/images/" + p.String
}

// List returns the restaurant's tables ordered by number.
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurant, err := callerRestaurant(r, h.store)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusOK, []tableResponse{})
			return
		}
		log.Printf("ERROR: get restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	tables, err := h.store.ListTablesByRestaurant(r.Context(), restaurant.ID)
	if err != nil {
		log.Printf("ERROR: list tables: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	out := make([]tableResponse, 0, len(tables))
	for _, t := range tables {
		out = append(out, toTableResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// Create registers a table. Numbers are unique within the restaurant.
func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	restaurant, err := callerRestaurant(r, h.store)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "create a restaurant first"})
			return
		}
		log.Printf("ERROR: get restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	var req tableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Number <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "number must be a positive integer"})
		return
	}

	if _, err := h.store.GetTableByNumber(r.Context(), database.GetTableByNumberParams{
		RestaurantID: restaurant.ID,
		Number:       req.Number,
	}); err == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "table number already exists"})
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("ERROR: table lookup: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	table, err := h.store.CreateTable(r.Context(), database.CreateTableParams{
		RestaurantID: restaurant.ID,
		Number:       req.Number,
	})
	if err != nil {
		log.Printf("ERROR: create table: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toTableResponse(table))
}

// Delete removes a table.
func (h *TableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	restaurant, err := callerRestaurant(r, h.store)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "create a restaurant first"})
			return
		}
		log.Printf("ERROR: get restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	tableID, err := uuidParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table id"})
		return
	}

	if _, err := h.store.DeleteTable(r.Context(), database.DeleteTableParams{
		ID:           tableID,
		RestaurantID: restaurant.ID,
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
			return
		}
		log.Printf("ERROR: delete table: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "table deleted"})
}
