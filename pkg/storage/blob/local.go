package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore пишет загруженные файлы на локальный диск; ссылки на них
// отдаются статикой под публичным префиксом.
type LocalStore struct {
	dir    string
	prefix string
}

// NewLocalStore creates the directory if needed. prefix is the URL path the
// directory is served under, e.g. "/uploads".
func NewLocalStore(dir, prefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare blob dir: %w", err)
	}
	return &LocalStore{dir: dir, prefix: prefix}, nil
}

// Save writes the blob under a generated name, keeping the original
// extension, and returns the public reference.
func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write blob: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close blob: %w", err)
	}
	return path.Join(s.prefix, name), nil
}

// Remove deletes a previously stored blob by its public reference. Unused by
// the creation pipeline today; kept for a compensating delete if the orphan
// gap is ever closed.
func (s *LocalStore) Remove(ref string) error {
	name := path.Base(ref)
	return os.Remove(filepath.Join(s.dir, name))
}

// Dir returns the backing directory, for static file serving.
func (s *LocalStore) Dir() string { return s.dir }
