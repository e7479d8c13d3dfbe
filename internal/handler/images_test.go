package handler_test

import (
	"net/http"
	"path"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/menulink/api/internal/enum"
	"github.com/menulink/api/internal/handler"
	"github.com/menulink/api/internal/storage"
)

func setupImageRouter(t *testing.T) (*chi.Mux, *storage.Store) {
	t.Helper()
	store := storage.New(t.TempDir())
	h := handler.NewImageHandler(store)
	r := chi.NewRouter()
	r.Get("/images/{kind}/{filename}", h.Serve)
	return r, store
}

func TestImageServe_Valid(t *testing.T) {
	router, store := setupImageRouter(t)

	relPath, err := store.Save(enum.ImageKindItems, ".png", strings.NewReader("fake png bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	rr := doRequest(t, router, "GET", "/images/"+relPath, nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if rr.Body.String() != "fake png bytes" {
		t.Errorf("body: got %q", rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content-type: got %q, want image/png", ct)
	}
	if cc := rr.Header().Get("Cache-Control"); !strings.Contains(cc, "immutable") {
		t.Errorf("cache-control: got %q, want immutable caching", cc)
	}
}

func TestImageServe_UnknownFile(t *testing.T) {
	router, _ := setupImageRouter(t)

	rr := doRequest(t, router, "GET", "/images/items/nope.png", nil)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
	if resp := decodeObj(t, rr); resp["error"] != "image not found" {
		t.Errorf("error: got %v", resp["error"])
	}
}

func TestImageServe_InvalidKind(t *testing.T) {
	router, _ := setupImageRouter(t)

	rr := doRequest(t, router, "GET", "/images/secrets/anything.png", nil)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestImageServe_Dotfile(t *testing.T) {
	router, _ := setupImageRouter(t)

	rr := doRequest(t, router, "GET", path.Join("/images", enum.ImageKindProfiles, ".hidden"), nil)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}
