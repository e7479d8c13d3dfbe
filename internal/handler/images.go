package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/menulink/api/internal/storage"
)

// ImageOpener is the storage slice used to serve files back.
type ImageOpener interface {
	Open(kind, filename string) (*os.File, string, error)
}

// ImageHandler serves stored images at /images/{kind}/{filename}.
type ImageHandler struct {
	images ImageOpener
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(images ImageOpener) *ImageHandler {
	return &ImageHandler{images: images}
}

// Serve streams an image file. Filenames are uuid-derived and never reused,
// so the response can be cached aggressively.
func (h *ImageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	filename := chi.URLParam(r, "filename")

	f, contentType, err := h.images.Open(kind, filename)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidKind) ||
			errors.Is(err, storage.ErrInvalidFilename) ||
			errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "image not found"})
			return
		}
		log.Printf("ERROR: open image %s/%s: %v", kind, filename, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := io.Copy(w, f); err != nil {
		log.Printf("ERROR: stream image %s/%s: %v", kind, filename, err)
	}
}
