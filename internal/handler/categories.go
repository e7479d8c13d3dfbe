package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/menulink/api/internal/database"
)

// CategoryStore defines the database methods needed by category handlers.
type CategoryStore interface {
	GetRestaurantByOwner(ctx context.Context, ownerID uuid.UUID) (database.Restaurant, error)
	ListCategoriesByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]database.Category, error)
	ListItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]database.Item, error)
	GetCategory(ctx context.Context, arg database.GetCategoryParams) (database.Category, error)
	GetCategoryByName(ctx context.Context, arg database.GetCategoryByNameParams) (database.Category, error)
	CreateCategory(ctx context.Context, arg database.CreateCategoryParams) (database.Category, error)
	UpdateCategory(ctx context.Context, arg database.UpdateCategoryParams) (database.Category, error)
	DeleteCategory(ctx context.Context, arg database.DeleteCategoryParams) (uuid.UUID, error)
}

// CategoryHandler handles menu category endpoints.
type CategoryHandler struct {
	store CategoryStore
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(store CategoryStore) *CategoryHandler {
	return &CategoryHandler{store: store}
}

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	Items     []itemResponse `json:"items,omitempty"`
}

// List returns the restaurant's categories, newest first, each with its
// items. An account without a restaurant gets an empty list.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurant, err := callerRestaurant(r, h.store)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusOK, []categoryResponse{})
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

	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		items, err := h.store.ListItemsByCategory(r.Context(), c.ID)
		if err != nil {
			log.Printf("ERROR: list items for category %s: %v", c.ID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		resp := categoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
		for _, it := range items {
			resp.Items = append(resp.Items, toItemResponse(it, c.Name))
		}
		out = append(out, resp)
	}

	writeJSON(w, http.StatusOK, out)
}

// Create adds a category. Names are unique within the restaurant.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	name, ok := h.decodeName(w, r)
	if !ok {
		return
	}

	if _, err := h.store.GetCategoryByName(r.Context(), database.GetCategoryByNameParams{
		RestaurantID: restaurant.ID,
		Name:         name,
	}); err == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "category already exists"})
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("ERROR: category lookup: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	category, err := h.store.CreateCategory(r.Context(), database.CreateCategoryParams{
		RestaurantID: restaurant.ID,
		Name:         name,
	})
	if err != nil {
		log.Printf("ERROR: create category: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, categoryResponse{ID: category.ID, Name: category.Name, CreatedAt: category.CreatedAt})
}

// Update renames a category. The new name must stay unique within the
// restaurant.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	categoryID, err := uuidParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category id"})
		return
	}

	name, ok := h.decodeName(w, r)
	if !ok {
		return
	}

	if existing, err := h.store.GetCategoryByName(r.Context(), database.GetCategoryByNameParams{
		RestaurantID: restaurant.ID,
		Name:         name,
	}); err == nil && existing.ID != categoryID {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "category already exists"})
		return
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("ERROR: category lookup: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	category, err := h.store.UpdateCategory(r.Context(), database.UpdateCategoryParams{
		ID:           categoryID,
		RestaurantID: restaurant.ID,
		Name:         name,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
			return
		}
		log.Printf("ERROR: update category: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{ID: category.ID, Name: category.Name, CreatedAt: category.CreatedAt})
}

// Delete removes a category and, via cascade, its items.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	categoryID, err := uuidParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category id"})
		return
	}

	if _, err := h.store.DeleteCategory(r.Context(), database.DeleteCategoryParams{
		ID:           categoryID,
		RestaurantID: restaurant.ID,
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
			return
		}
		log.Printf("ERROR: delete category: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}

func (h *CategoryHandler) decodeName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return "", false
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return "", false
	}
	if len(name) > 255 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name must be at most 255 characters"})
		return "", false
	}
	return name, true
}
