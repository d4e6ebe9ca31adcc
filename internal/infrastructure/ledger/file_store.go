package ledger

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/pkg/filesystem"
	"github.com/doeshing/dicelog/internal/ports"
)

const ledgerFileExt = ".json"

// FileStore keeps one JSON array file per day under dir.
type FileStore struct {
	dir    string
	mu     sync.Mutex
	logger ports.Logger
}

// NewFileStore creates a store rooted at dir. The directory is created lazily.
func NewFileStore(dir string, logger ports.Logger) *FileStore {
	return &FileStore{dir: dir, logger: logger}
}

// Location implements ports.LedgerStore.
func (f *FileStore) Location() string {
	return f.dir
}

// PathFor returns the file backing day.
func (f *FileStore) PathFor(day domain.Day) string {
	return filepath.Join(f.dir, domain.LedgerFilePrefix+day.LedgerName()+ledgerFileExt)
}

// EnsureDay creates an empty ledger for day unless one exists.
func (f *FileStore) EnsureDay(ctx context.Context, day domain.Day) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(f.dir, domain.DirectoryPermissions); err != nil {
		return &domain.StorageError{Op: "mkdir", Path: f.dir, Err: err}
	}
	path := f.PathFor(day)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &domain.StorageError{Op: "stat", Path: path, Err: err}
	}
	data, err := encodeDay(nil)
	if err != nil {
		return err
	}
	return f.writeAtomic(path, data)
}

// Append reads the day's events, adds event and writes the whole day back.
func (f *FileStore) Append(ctx context.Context, day domain.Day, event domain.RollEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.PathFor(day)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return notInitializedError(day)
		}
		return &domain.StorageError{Op: "read", Path: path, Err: err}
	}
	events, err := decodeDay(data)
	if err != nil {
		return corruptError(day, err)
	}

	updated, err := encodeDay(append(events, event))
	if err != nil {
		return err
	}
	return f.writeAtomic(path, updated)
}

// ReadDay returns the day's events; a missing or unparsable file is empty.
func (f *FileStore) ReadDay(ctx context.Context, day domain.Day) ([]domain.RollEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := f.PathFor(day)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: "read", Path: path, Err: err}
	}
	events, err := decodeDay(data)
	if err != nil {
		f.logger.Debug("ignoring unreadable day ledger", map[string]interface{}{
			"day":   day.String(),
			"path":  path,
			"error": err.Error(),
		})
		return nil, nil
	}
	return events, nil
}

// Days lists the days that have a ledger file, oldest first.
func (f *FileStore) Days(ctx context.Context) ([]domain.Day, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(f.dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: "stat", Path: f.dir, Err: err}
	}

	matches, err := doublestar.Glob(os.DirFS(f.dir), domain.LedgerFilePrefix+ledgerNamePrefix+"*"+ledgerFileExt)
	if err != nil {
		return nil, &domain.StorageError{Op: "glob", Path: f.dir, Err: err}
	}
	days := make([]domain.Day, 0, len(matches))
	for _, name := range matches {
		name = strings.TrimSuffix(strings.TrimPrefix(name, domain.LedgerFilePrefix), ledgerFileExt)
		if day, ok := parseLedgerName(name); ok {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, nil
}

func (f *FileStore) writeAtomic(path string, data []byte) error {
	if err := filesystem.WriteAtomic(path, data, domain.FilePermissions); err != nil {
		return &domain.StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

var _ ports.LedgerStore = (*FileStore)(nil)
