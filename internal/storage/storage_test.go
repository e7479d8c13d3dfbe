package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/menulink/api/internal/enum"
)

func TestSaveAndOpen(t *testing.T) {
	store := New(t.TempDir())

	relPath, err := store.Save(enum.ImageKindItems, ".png", strings.NewReader("image bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(relPath, enum.ImageKindItems+"/") {
		t.Errorf("relative path: got %q, want %s/ prefix", relPath, enum.ImageKindItems)
	}
	if !strings.HasSuffix(relPath, ".png") {
		t.Errorf("relative path: got %q, want .png suffix", relPath)
	}

	f, contentType, err := store.Open(enum.ImageKindItems, filepath.Base(relPath))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if contentType != "image/png" {
		t.Errorf("content type: got %q, want image/png", contentType)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "image bytes" {
		t.Errorf("content: got %q", data)
	}
}

func TestSave_InvalidKind(t *testing.T) {
	store := New(t.TempDir())

	if _, err := store.Save("secrets", ".png", strings.NewReader("x")); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("expected ErrInvalidKind, got %v", err)
	}
}

func TestSave_SanitizesExtension(t *testing.T) {
	store := New(t.TempDir())

	tests := []struct {
		ext  string
		want string
	}{
		{".PNG", ".png"},
		{".jpeg", ".jpeg"},
		{"", ".bin"},
		{"weird", ".bin"},
		{"../../etc", ".bin"},
		{`.png\..`, ".bin"},
	}
	for _, tc := range tests {
		relPath, err := store.Save(enum.ImageKindProfiles, tc.ext, strings.NewReader("x"))
		if err != nil {
			t.Fatalf("Save(%q): %v", tc.ext, err)
		}
		if !strings.HasSuffix(relPath, tc.want) {
			t.Errorf("Save(%q): got %q, want %s suffix", tc.ext, relPath, tc.want)
		}
		// Paths stay flat inside the kind directory.
		if strings.Count(relPath, "/") != 1 {
			t.Errorf("Save(%q): path escapes kind dir: %q", tc.ext, relPath)
		}
	}
}

func TestSave_NamesNeverCollide(t *testing.T) {
	store := New(t.TempDir())

	a, err := store.Save(enum.ImageKindItems, ".png", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := store.Save(enum.ImageKindItems, ".png", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if a == b {
		t.Errorf("two saves produced the same path %q", a)
	}
}

func TestDelete(t *testing.T) {
	root := t.TempDir()
	store := New(root)

	relPath, err := store.Save(enum.ImageKindItems, ".png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Delete(relPath); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, relPath)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file still exists after delete")
	}

	// Deleting again is not an error.
	if err := store.Delete(relPath); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestDelete_RejectsBadPaths(t *testing.T) {
	store := New(t.TempDir())

	for _, relPath := range []string{
		"",
		"items",
		"secrets/file.png",
		"items/../../../etc/passwd",
		"items/.hidden",
	} {
		if err := store.Delete(relPath); !errors.Is(err, ErrInvalidFilename) {
			t.Errorf("Delete(%q): expected ErrInvalidFilename, got %v", relPath, err)
		}
	}
}

func TestOpen_RejectsTraversal(t *testing.T) {
	store := New(t.TempDir())

	cases := []struct {
		kind, filename string
		want           error
	}{
		{"secrets", "file.png", ErrInvalidKind},
		{enum.ImageKindItems, "", ErrInvalidFilename},
		{enum.ImageKindItems, "../outside.png", ErrInvalidFilename},
		{enum.ImageKindItems, ".hidden", ErrInvalidFilename},
		{enum.ImageKindItems, "missing.png", ErrNotFound},
	}
	for _, tc := range cases {
		if _, _, err := store.Open(tc.kind, tc.filename); !errors.Is(err, tc.want) {
			t.Errorf("Open(%q, %q): expected %v, got %v", tc.kind, tc.filename, tc.want, err)
		}
	}
}
