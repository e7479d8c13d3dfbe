// Package storage keeps uploaded images on local disk under a per-kind
// subdirectory, the way the rest of the system expects them to be served
// back at /images/{kind}/{filename}.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/menulink/api/internal/enum"
)

var (
	ErrInvalidKind     = errors.New("invalid image kind")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrNotFound        = errors.New("file not found")
)

type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

func validKind(kind string) bool {
	switch kind {
	case enum.ImageKindItems, enum.ImageKindProfiles:
		return true
	}
	return false
}

// Save writes the reader's content under root/kind with a fresh uuid-based
// filename and returns the relative path ("items/<uuid>.png"). Client-supplied
// names never become paths; only the extension survives.
func (s *Store) Save(kind, ext string, r io.Reader) (string, error) {
	if !validKind(kind) {
		return "", ErrInvalidKind
	}

	ext = strings.ToLower(ext)
	if ext == "" || !strings.HasPrefix(ext, ".") || strings.ContainsAny(ext, `/\`) {
		ext = ".bin"
	}

	dir := filepath.Join(s.root, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}

	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write file: %w", err)
	}

	return kind + "/" + name, nil
}

// Delete removes a previously saved file by its relative path. Missing files
// are not an error so delete stays idempotent.
func (s *Store) Delete(relPath string) error {
	kind, name, ok := splitRelPath(relPath)
	if !ok {
		return ErrInvalidFilename
	}
	err := os.Remove(filepath.Join(s.root, kind, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Open returns the file and its content type for serving. The filename must
// be a bare name inside an allowlisted kind directory; anything that could
// walk out of it is rejected.
func (s *Store) Open(kind, filename string) (*os.File, string, error) {
	if !validKind(kind) {
		return nil, "", ErrInvalidKind
	}
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return nil, "", ErrInvalidFilename
	}

	f, err := os.Open(filepath.Join(s.root, kind, filename))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	ct := mime.TypeByExtension(filepath.Ext(filename))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return f, ct, nil
}

func splitRelPath(relPath string) (kind, name string, ok bool) {
	parts := strings.SplitN(relPath, "/", 2)
	if len(parts) != 2 || !validKind(parts[0]) {
		return "", "", false
	}
	name = parts[1]
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", "", false
	}
	return parts[0], name, true
}
