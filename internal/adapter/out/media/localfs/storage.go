package localfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"yatube/pkg/logger"
)

const postsDir = "posts"

// MediaStorage writes uploads under root. Stored names are relative slash
// paths, so they can be joined to the public /media/ prefix as is.
type MediaStorage struct {
	root string
}

func NewMediaStorage(root string) *MediaStorage {
	return &MediaStorage{root: root}
}

func (s *MediaStorage) SaveImage(ctx context.Context, filename string, data []byte) (string, error) {
	dir := filepath.Join(s.root, postsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	name := uuid.NewString() + extension(filename, data)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	stored := path.Join(postsDir, name)
	logger.FromContext(ctx).Debug("image saved", "name", stored, "bytes", len(data))
	return stored, nil
}

// RemoveImage deletes a stored image. A missing file is not an error.
func (s *MediaStorage) RemoveImage(ctx context.Context, stored string) error {
	rel := filepath.FromSlash(stored)
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("remove image: %q is outside the media root", stored)
	}

	err := os.Remove(filepath.Join(s.root, rel))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove image: %w", err)
	}

	logger.FromContext(ctx).Debug("image removed", "name", stored)
	return nil
}

// extension prefers the sniffed image type and falls back to the uploaded
// file name for anything mimetype does not recognise as an image.
func extension(filename string, data []byte) string {
	mt := mimetype.Detect(data)
	if strings.HasPrefix(mt.String(), "image/") && mt.Extension() != "" {
		return mt.Extension()
	}
	return strings.ToLower(filepath.Ext(filename))
}
