// Package assets stores the binary image files referenced by posts. Files live
// on the local disk under a single directory served statically by the API; a
// reference is the slash-separated relative path handed back to clients.
package assets

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedType is returned when an uploaded file is not a supported image.
var ErrUnsupportedType = errors.New("unsupported image type")

// ErrBadRef is returned when a reference does not resolve inside the store.
var ErrBadRef = errors.New("invalid asset reference")

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Store is the seam the feed core uses to bind image assets to posts.
type Store interface {
	// Save writes the file and returns its reference.
	Save(r io.Reader, originalName string) (string, error)
	// Remove deletes the asset. Removing an absent asset returns an error
	// wrapping fs.ErrNotExist.
	Remove(ref string) error
	// Exists reports whether the reference resolves to a stored asset.
	Exists(ref string) bool
}

// DiskStore implements Store on the local filesystem.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the storage directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save stores the file under a fresh UUID-prefixed name so concurrent uploads
// of identically named files never collide.
func (s *DiskStore) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	name := uuid.New().String() + "-" + sanitize(filepath.Base(originalName))
	fullPath := filepath.Join(s.dir, name)

	f, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(fullPath)
		return "", err
	}

	return path.Join(filepath.Base(s.dir), name), nil
}

func (s *DiskStore) Remove(ref string) error {
	p, err := s.resolve(ref)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

func (s *DiskStore) Exists(ref string) bool {
	p, err := s.resolve(ref)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// resolve maps a reference back to a path strictly inside the store directory.
func (s *DiskStore) resolve(ref string) (string, error) {
	name := path.Base(path.Clean(ref))
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", ErrBadRef
	}
	return filepath.Join(s.dir, name), nil
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		}
		return '_'
	}, name)
}
