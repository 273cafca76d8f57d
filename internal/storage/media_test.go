package storage

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// tinyPNG is a 1x1 transparent PNG.
var tinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(tinyPNG)
}

func newStore(t *testing.T) *MediaStore {
	t.Helper()
	store, err := NewMediaStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewMediaStore failed: %v", err)
	}
	return store
}

func TestSaveRecipeImage(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	relPath, err := store.SaveRecipeImage(pngDataURI())
	if err != nil {
		t.Fatalf("SaveRecipeImage failed: %v", err)
	}

	if !strings.HasPrefix(relPath, "recipes/images/") {
		t.Errorf("path should be under recipes/images/, got %s", relPath)
	}
	if !strings.HasSuffix(relPath, ".png") {
		t.Errorf("path should have .png extension, got %s", relPath)
	}

	data, err := os.ReadFile(filepath.Join(store.root, filepath.FromSlash(relPath)))
	if err != nil {
		t.Fatalf("stored file not readable: %v", err)
	}
	if len(data) != len(tinyPNG) {
		t.Errorf("stored %d bytes, want %d", len(data), len(tinyPNG))
	}
}

func TestSaveRecipeImage_Invalid(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	tests := []struct {
		name string
		uri  string
	}{
		{"empty", ""},
		{"no data prefix", "image/png;base64,AAAA"},
		{"no comma", "data:image/png;base64"},
		{"wrong encoding", "data:image/png;hex,41414141"},
		{"unsupported type", "data:application/pdf;base64,AAAA"},
		{"bad base64", "data:image/png;base64,not-base64!!!"},
		{"empty payload", "data:image/png;base64,"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := store.SaveRecipeImage(tt.uri)
			if !errors.Is(err, ErrInvalidImage) {
				t.Errorf("SaveRecipeImage(%q) error = %v, want ErrInvalidImage", tt.uri, err)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	relPath, err := store.SaveRecipeImage(pngDataURI())
	if err != nil {
		t.Fatalf("SaveRecipeImage failed: %v", err)
	}

	if err := store.Remove(relPath); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(store.root, filepath.FromSlash(relPath))); !os.IsNotExist(err) {
		t.Error("file should be gone after Remove")
	}
}

func TestRemove_MissingIsNotError(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	if err := store.Remove("recipes/images/does-not-exist.png"); err != nil {
		t.Errorf("Remove of missing file should not error, got %v", err)
	}

	if err := store.Remove(""); err != nil {
		t.Errorf("Remove of empty path should not error, got %v", err)
	}
}
