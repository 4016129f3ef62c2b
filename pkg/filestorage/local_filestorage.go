package filestorage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage removes stored artifacts referenced by public URLs
type FileStorage interface {
	Delete(publicPath string) error
}

// LocalFileStorage keeps files on disk under a public static-asset root
type LocalFileStorage struct {
	publicRoot string
}

func NewLocalFileStorage(publicRoot string) (*LocalFileStorage, error) {
	abs, err := filepath.Abs(publicRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve public root %q: %w", publicRoot, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create public root %q: %w", abs, err)
	}
	return &LocalFileStorage{publicRoot: abs}, nil
}

// Root returns the absolute public root
func (s *LocalFileStorage) Root() string {
	return s.publicRoot
}

// Resolve maps a stored path such as "/uploads/orders/7/a.pdf" to its location on
// disk. Paths escaping the public root are rejected.
func (s *LocalFileStorage) Resolve(publicPath string) (string, error) {
	rel := strings.TrimLeft(filepath.FromSlash(publicPath), string(filepath.Separator))
	if rel == "" {
		return "", errors.New("empty file path")
	}
	full := filepath.Join(s.publicRoot, rel)
	if full != s.publicRoot && !strings.HasPrefix(full, s.publicRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes public root", publicPath)
	}
	return full, nil
}

// Delete removes the file behind publicPath. A file that is already gone counts
// as deleted.
func (s *LocalFileStorage) Delete(publicPath string) error {
	full, err := s.Resolve(publicPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", full, err)
	}
	return nil
}
