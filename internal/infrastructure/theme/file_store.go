// Package theme persists the selected colour theme as theme.json.
package theme

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/pkg/filesystem"
	"github.com/doeshing/dicelog/internal/ports"
)

// FileStore reads and writes the theme selection file.
type FileStore struct {
	path   string
	logger ports.Logger
}

// NewFileStore returns a store for dir/theme.json.
func NewFileStore(dir string, logger ports.Logger) *FileStore {
	return &FileStore{path: filepath.Join(dir, domain.ThemeFileName), logger: logger}
}

// Path returns the theme file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load returns the saved theme. A missing, empty or unparsable file, or one
// naming a theme that no longer exists, yields the default theme.
func (s *FileStore) Load(ctx context.Context) (domain.Theme, error) {
	if err := ctx.Err(); err != nil {
		return domain.Theme{}, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultTheme(), nil
		}
		return domain.Theme{}, &domain.StorageError{Op: "read", Path: s.path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.DefaultTheme(), nil
	}

	var saved domain.Theme
	if err := json.Unmarshal(data, &saved); err != nil {
		s.logger.Debug("ignoring unreadable theme file", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return domain.DefaultTheme(), nil
	}
	// The built-in palette wins over whatever colours were saved with the name.
	theme, err := domain.FindTheme(saved.Name)
	if err != nil {
		s.logger.Debug("saved theme no longer exists", map[string]interface{}{"theme": saved.Name})
		return domain.DefaultTheme(), nil
	}
	return theme, nil
}

// Save records theme as the current selection.
func (s *FileStore) Save(ctx context.Context, theme domain.Theme) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(theme)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return &domain.StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	if err := filesystem.WriteAtomic(s.path, data, domain.FilePermissions); err != nil {
		return &domain.StorageError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

var _ ports.ThemeStore = (*FileStore)(nil)
