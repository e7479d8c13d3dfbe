package handler

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/menulink/api/internal/database"
	"github.com/menulink/api/internal/enum"
	"github.com/menulink/api/internal/middleware"
)

// RestaurantStore defines the database methods needed by restaurant handlers.
type RestaurantStore interface {
	GetRestaurantByOwner(ctx context.Context, ownerID uuid.UUID) (database.Restaurant, error)
	CreateRestaurant(ctx context.Context, arg database.CreateRestaurantParams) (database.Restaurant, error)
	UpdateRestaurant(ctx context.Context, arg database.UpdateRestaurantParams) (database.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// RestaurantHandler handles the owner's restaurant profile endpoints.
type RestaurantHandler struct {
	store  RestaurantStore
	images ImageStore
}

// NewRestaurantHandler creates a new RestaurantHandler.
func NewRestaurantHandler(store RestaurantStore, images ImageStore) *RestaurantHandler {
	return &RestaurantHandler{store: store, images: images}
}

type restaurantResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	ProfileURL string    `json:"profile_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toRestaurantResponse(r database.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:         r.ID,
		Name:       r.Name,
		Address:    r.Address,
		ProfileURL: imageURL(r.ProfilePath),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// Get returns the caller's restaurant.
func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	restaurant, err := callerRestaurant(r, h.store)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "restaurant not found"})
			return
		}
		log.Printf("ERROR: get restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toRestaurantResponse(restaurant))
}

// Create sets up the account's restaurant. One per account.
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	if _, err := h.store.GetRestaurantByOwner(r.Context(), claims.UserID); err == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "account already has a restaurant"})
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("ERROR: restaurant lookup: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	name, address, profilePath, ok := h.parseRestaurantForm(w, r)
	if !ok {
		return
	}

	restaurant, err := h.store.CreateRestaurant(r.Context(), database.CreateRestaurantParams{
		OwnerID:     claims.UserID,
		Name:        name,
		Address:     address,
		ProfilePath: profilePath,
	})
	if err != nil {
		h.discardImage(profilePath)
		log.Printf("ERROR: create restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toRestaurantResponse(restaurant))
}

// Update replaces name, address and (optionally) the profile image. The old
// image file is removed best-effort once the row update sticks.
func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request) {
	restaurant, err := callerRestaurant(r, h.store)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "restaurant not found"})
			return
		}
		log.Printf("ERROR: get restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	name, address, newProfile, ok := h.parseRestaurantForm(w, r)
	if !ok {
		return
	}

	profilePath := restaurant.ProfilePath
	if newProfile.Valid {
		profilePath = newProfile
	}

	updated, err := h.store.UpdateRestaurant(r.Context(), database.UpdateRestaurantParams{
		ID:          restaurant.ID,
		Name:        name,
		Address:     address,
		ProfilePath: profilePath,
	})
	if err != nil {
		h.discardImage(newProfile)
		log.Printf("ERROR: update restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if newProfile.Valid {
		h.discardImage(restaurant.ProfilePath)
	}

	writeJSON(w, http.StatusOK, toRestaurantResponse(updated))
}

// Delete removes the restaurant. Menu, tables, orders, history and statistics
// cascade in the database; the profile image is removed best-effort.
func (h *RestaurantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	restaurant, err := callerRestaurant(r, h.store)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "restaurant not found"})
			return
		}
		log.Printf("ERROR: get restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if _, err := h.store.DeleteRestaurant(r.Context(), restaurant.ID); err != nil {
		log.Printf("ERROR: delete restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.discardImage(restaurant.ProfilePath)

	writeJSON(w, http.StatusOK, map[string]string{"message": "restaurant deleted"})
}

// parseRestaurantForm reads the multipart form and stores an uploaded profile
// image, writing the error response itself when validation fails.
func (h *RestaurantHandler) parseRestaurantForm(w http.ResponseWriter, r *http.Request) (name, address string, profilePath pgtype.Text, ok bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return "", "", pgtype.Text{}, false
	}

	name = strings.TrimSpace(r.FormValue("name"))
	address = strings.TrimSpace(r.FormValue("address"))
	if name == "" || address == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and address are required"})
		return "", "", pgtype.Text{}, false
	}

	file, header, err := r.FormFile("profile")
	if errors.Is(err, http.ErrMissingFile) {
		return name, address, pgtype.Text{}, true
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid profile upload"})
		return "", "", pgtype.Text{}, false
	}
	defer file.Close()

	relPath, err := saveUploadedImage(h.images, enum.ImageKindProfiles, file, header)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return "", "", pgtype.Text{}, false
	}

	return name, address, pgtype.Text{String: relPath, Valid: true}, true
}

func (h *RestaurantHandler) discardImage(p pgtype.Text) {
	if !p.Valid || p.String == "" {
		return
	}
	if err := h.images.Delete(p.String); err != nil {
		log.Printf("WARN: delete image %s: %v", p.String, err)
	}
}

// saveUploadedImage validates size and content type, then persists the upload
// under the given kind.
func saveUploadedImage(images ImageStore, kind string, file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > maxUploadBytes {
		return "", errors.New("image must be at most 5 MB")
	}
	ct := header.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		return "", errors.New("upload must be an image")
	}

	relPath, err := images.Save(kind, filepath.Ext(header.Filename), file)
	if err != nil {
		return "", errors.New("failed to store image")
	}
	return relPath, nil
}
