package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/menulink/api/internal/database"
	"github.com/menulink/api/internal/enum"
)

// ItemStore defines the database methods needed by item handlers.
type ItemStore interface {
	GetRestaurantByOwner(ctx context.Context, ownerID uuid.UUID) (database.Restaurant, error)
	ListItemsByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]database.ListItemsByRestaurantRow, error)
	GetCategory(ctx context.Context, arg database.GetCategoryParams) (database.Category, error)
	GetItemOwned(ctx context.Context, arg database.GetItemOwnedParams) (database.Item, error)
	CreateItem(ctx context.Context, arg database.CreateItemParams) (database.Item, error)
	UpdateItem(ctx context.Context, arg database.UpdateItemParams) (database.Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// ItemHandler handles menu item endpoints.
type ItemHandler struct {
	store  ItemStore
	images ImageStore
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(store ItemStore, images ImageStore) *ItemHandler {
	return &ItemHandler{store: store, images: images}
}

type itemResponse struct {
	ID           uuid.UUID `json:"id"`
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Price        string    `json:"price"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toItemResponse(i database.Item, categoryName string) itemResponse {
	return itemResponse{
		ID:           i.ID,
		CategoryID:   i.CategoryID,
		CategoryName: categoryName,
		Name:         i.Name,
		Description:  i.Description.String,
		Price:        numericToString(i.Price),
		ImageURL:     imageURL(i.ImagePath),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// List returns every item across the restaurant's categories, newest first.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurant, err := callerRestaurant(r, h.store)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusOK, []itemResponse{})
			return
		}
		log.Printf("ERROR: get restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	rows, err := h.store.ListItemsByRestaurant(r.Context(), restaurant.ID)
	if err != nil {
		log.Printf("ERROR: list items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	out := make([]itemResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, itemResponse{
			ID:           row.ID,
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Name:         row.Name,
			Description:  row.Description.String,
			Price:        numericToString(row.Price),
			ImageURL:     imageURL(row.ImagePath),
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// Create adds an item to one of the restaurant's categories. If the insert
// fails after the image upload was stored, the stored file is removed again.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	categoryID, err := uuid.Parse(r.FormValue("category_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category_id"})
		return
	}

	category, err := h.store.GetCategory(r.Context(), database.GetCategoryParams{
		ID:           categoryID,
		RestaurantID: restaurant.ID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
			return
		}
		log.Printf("ERROR: get category: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	price, err := parsePrice(r.FormValue("price"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	imagePath, ok := h.parseImageUpload(w, r)
	if !ok {
		return
	}

	item, err := h.store.CreateItem(r.Context(), database.CreateItemParams{
		CategoryID:  category.ID,
		Name:        name,
		Description: textOf(strings.TrimSpace(r.FormValue("description"))),
		Price:       price,
		ImagePath:   imagePath,
	})
	if err != nil {
		h.discardImage(imagePath)
		log.Printf("ERROR: create item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(item, category.Name))
}

// Update edits an item. Ownership is walked item -> category -> restaurant.
// A new image replaces the old one; the old file is removed best-effort once
// the row update sticks.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	itemID, err := uuidParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		return
	}

	item, err := h.store.GetItemOwned(r.Context(), database.GetItemOwnedParams{
		ID:           itemID,
		RestaurantID: restaurant.ID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
			return
		}
		log.Printf("ERROR: get item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		name = item.Name
	}

	price := item.Price
	if v := r.FormValue("price"); v != "" {
		price, err = parsePrice(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	description := item.Description
	if v := strings.TrimSpace(r.FormValue("description")); v != "" {
		description = textOf(v)
	}

	newImage, ok := h.parseImageUpload(w, r)
	if !ok {
		return
	}
	imagePath := item.ImagePath
	if newImage.Valid {
		imagePath = newImage
	}

	updated, err := h.store.UpdateItem(r.Context(), database.UpdateItemParams{
		ID:          item.ID,
		Name:        name,
		Description: description,
		Price:       price,
		ImagePath:   imagePath,
	})
	if err != nil {
		h.discardImage(newImage)
		log.Printf("ERROR: update item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if newImage.Valid {
		h.discardImage(item.ImagePath)
	}

	writeJSON(w, http.StatusOK, toItemResponse(updated, ""))
}

// Delete removes an item and its image file.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	itemID, err := uuidParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		return
	}

	item, err := h.store.GetItemOwned(r.Context(), database.GetItemOwnedParams{
		ID:           itemID,
		RestaurantID: restaurant.ID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
			return
		}
		log.Printf("ERROR: get item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if _, err := h.store.DeleteItem(r.Context(), item.ID); err != nil {
		log.Printf("ERROR: delete item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.discardImage(item.ImagePath)

	writeJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// parseImageUpload stores an optional "image" form file and returns its
// relative path. Writes the error response itself when validation fails.
func (h *ItemHandler) parseImageUpload(w http.ResponseWriter, r *http.Request) (pgtype.Text, bool) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return pgtype.Text{}, true
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid image upload"})
		return pgtype.Text{}, false
	}
	defer file.Close()

	relPath, err := saveUploadedImage(h.images, enum.ImageKindItems, file, header)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return pgtype.Text{}, false
	}
	return pgtype.Text{String: relPath, Valid: true}, true
}

func (h *ItemHandler) discardImage(p pgtype.Text) {
	if !p.Valid || p.String == "" {
		return
	}
	if err := h.images.Delete(p.String); err != nil {
		log.Printf("WARN: delete image %s: %v", p.String, err)
	}
}
