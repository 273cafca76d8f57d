// Package storage persists uploaded recipe images on the media volume
// that the gateway serves at /media/.
package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidImage indicates the payload is not a decodable base64 image.
var ErrInvalidImage = errors.New("invalid image payload")

// recipeImageDir is the subdirectory for recipe images under the media root.
const recipeImageDir = "recipes/images"

// extensions maps accepted image MIME types to file extensions.
var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// MediaStore writes uploaded files under a root directory and hands back
// paths relative to that root.
type MediaStore struct {
	root string
}

// NewMediaStore creates a MediaStore rooted at dir.
func NewMediaStore(dir string) (*MediaStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, recipeImageDir), 0o755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}
	return &MediaStore{root: dir}, nil
}

// SaveRecipeImage decodes a base64 data URI ("data:image/png;base64,...")
// and writes it under the media root with a random filename.
// Returns the path relative to the root, e.g. "recipes/images/<uuid>.png".
func (s *MediaStore) SaveRecipeImage(dataURI string) (string, error) {
	mimeType, encoded, err := splitDataURI(dataURI)
	if err != nil {
		return "", err
	}

	ext, ok := extensions[mimeType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported type %q", ErrInvalidImage, mimeType)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return "", ErrInvalidImage
	}

	relPath := filepath.Join(recipeImageDir, uuid.New().String()+ext)
	if err := os.WriteFile(filepath.Join(s.root, relPath), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return filepath.ToSlash(relPath), nil
}

// Remove deletes a stored file by its relative path.
// Missing files are not an error; cleanup is best effort.
func (s *MediaStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}

	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}

// splitDataURI parses "data:<mime>;base64,<payload>".
func splitDataURI(uri string) (mimeType, payload string, err error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", "", ErrInvalidImage
	}

	rest := strings.TrimPrefix(uri, "data:")
	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", "", ErrInvalidImage
	}

	mimeType, encoding, found := strings.Cut(meta, ";")
	if !found || encoding != "base64" {
		return "", "", ErrInvalidImage
	}

	return mimeType, payload, nil
}
