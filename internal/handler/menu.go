package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/menulink/api/internal/database"
)

// MenuStore defines the database methods needed by the public menu endpoints.
type MenuStore interface {
	GetRestaurant(ctx context.Context, id uuid.UUID) (database.Restaurant, error)
	ListCategoriesByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]database.Category, error)
	ListItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]database.Item, error)
}

// MenuHandler serves the table-side view: browsing the menu and submitting
// an order after scanning the table QR code. No authentication.
type MenuHandler struct {
	store  MenuStore
	orders OrderLifecycle
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(store MenuStore, orders OrderLifecycle) *MenuHandler {
	return &MenuHandler{store: store, orders: orders}
}

type menuRestaurant struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	ProfileURL string    `json:"profile_url,omitempty"`
}

type menuResponse struct {
	Restaurant menuRestaurant     `json:"restaurant"`
	Categories []categoryResponse `json:"categories"`
}

// Menu answers GET /restaurants/{id}/menu with the restaurant and its full
// menu, categories newest first.
func (h *MenuHandler) Menu(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuidParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid restaurant id"})
		return
	}

	restaurant, err := h.store.GetRestaurant(r.Context(), restaurantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "restaurant not found"})
			return
		}
		log.Printf("ERROR: get restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	categories, err := h.store.ListCategoriesByRestaurant(r.Context(), restaurant.ID)
	if err != nil {
		log.Printf("ERROR: list categories: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := menuResponse{
		Restaurant: menuRestaurant{
			ID:         restaurant.ID,
			Name:       restaurant.Name,
			Address:    restaurant.Address,
			ProfileURL: imageURL(restaurant.ProfilePath),
		},
		Categories: []categoryResponse{},
	}
	for _, c := range categories {
		items, err := h.store.ListItemsByCategory(r.Context(), c.ID)
		if err != nil {
			log.Printf("ERROR: list items for category %s: %v", c.ID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		cr := categoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
		for _, it := range items {
			cr.Items = append(cr.Items, toItemResponse(it, c.Name))
		}
		resp.Categories = append(resp.Categories, cr)
	}

	writeJSON(w, http.StatusOK, resp)
}

// SubmitOrder answers POST /restaurants/{id}/orders: the table-side order
// entry point. The restaurant comes from the URL, never from the body.
func (h *MenuHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuidParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid restaurant id"})
		return
	}

	if _, err := h.store.GetRestaurant(r.Context(), restaurantID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "restaurant not found"})
			return
		}
		log.Printf("ERROR: get restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	placeOrder(w, r, h.orders, restaurantID, req)
}
