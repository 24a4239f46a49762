package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Apurer/souvenir-registry/internal/platform/blob/core"
)

// Store keeps each blob as a plain file. Keys are file paths, resolved
// against Root when they are relative and Root is set.
//
// Writes go straight to the target path; a crash mid-write can leave a
// truncated file which the set store then reads as empty.
type Store struct {
	Root string
}

// New returns a filesystem store rooted at root ("" keeps keys as given).
func New(root string) *Store {
	return &Store{Root: root}
}

func (s *Store) Driver() core.Driver { return core.DriverFilesystem }

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}
	return data, nil
}

func (s *Store) Put(_ context.Context, key string, data []byte, _ core.PutOptions) error {
	path := s.path(key)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create blob dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	if s.Root == "" || filepath.IsAbs(key) {
		return filepath.Clean(key)
	}
	return filepath.Join(s.Root, key)
}

var _ core.Store = (*Store)(nil)
