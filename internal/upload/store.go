// Package upload stores product images on local disk and hands back the
// stable public path each file is served under.
package upload

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// PublicPrefix is the route prefix the upload directory is served under.
const PublicPrefix = "/api/services/uploads"

type File struct {
	Name   string
	Reader io.Reader
}

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save writes the file under a fresh uuid-derived name, keeping the original
// extension, and returns the public reference path.
func (s *Store) Save(f File) (string, error) {
	name := uuid.NewString() + filepath.Ext(f.Name)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, f.Reader); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return path.Join(PublicPrefix, name), nil
}
