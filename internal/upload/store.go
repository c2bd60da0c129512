// Package upload persists incoming images to a local directory before they
// are forwarded to the extraction service.
package upload

import (
	"fmt"
	"os"
	"path/filepath"
)

// DiskStore writes uploads into a single directory, keyed by the
// client-supplied filename. A name collision overwrites the previous file.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes the image under the given filename and returns the stored path.
// Only the base name is used, so clients cannot escape the upload directory.
func (s *DiskStore) Save(filename string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return path, nil
}
