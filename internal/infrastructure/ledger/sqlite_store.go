package ledger

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/ports"
)

// SQLiteStore keeps each day's ledger as one row holding the JSON array.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	mu     sync.Mutex
	logger ports.Logger
}

// OpenSQLiteStore opens (or creates) the database at path.
func OpenSQLiteStore(path string, logger ports.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, &domain.StorageError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &domain.StorageError{Op: "open", Path: path, Err: err}
	}
	// One connection keeps concurrent day reads from tripping SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, path: path, logger: logger}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, &domain.StorageError{Op: "init", Path: path, Err: err}
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS day_ledgers (
		name TEXT PRIMARY KEY,
		content TEXT NOT NULL
	);`)
	return err
}

// Location implements ports.LedgerStore.
func (s *SQLiteStore) Location() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// EnsureDay inserts an empty ledger row for day unless one exists.
func (s *SQLiteStore) EnsureDay(ctx context.Context, day domain.Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO day_ledgers (name, content) VALUES (?, '[]')`,
		day.LedgerName())
	if err != nil {
		return &domain.StorageError{Op: "ensure", Path: s.path, Err: err}
	}
	return nil
}

// Append reads the day's row, adds event and writes it back in one transaction.
func (s *SQLiteStore) Append(ctx context.Context, day domain.Day, event domain.RollEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.StorageError{Op: "begin", Path: s.path, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	var content string
	err = tx.QueryRowContext(ctx, `SELECT content FROM day_ledgers WHERE name = ?`, day.LedgerName()).Scan(&content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notInitializedError(day)
		}
		return &domain.StorageError{Op: "read", Path: s.path, Err: err}
	}
	events, err := decodeDay([]byte(content))
	if err != nil {
		return corruptError(day, err)
	}
	updated, err := encodeDay(append(events, event))
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE day_ledgers SET content = ? WHERE name = ?`, string(updated), day.LedgerName()); err != nil {
		return &domain.StorageError{Op: "write", Path: s.path, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &domain.StorageError{Op: "commit", Path: s.path, Err: err}
	}
	return nil
}

// ReadDay returns the day's events; a missing or unparsable row is empty.
func (s *SQLiteStore) ReadDay(ctx context.Context, day domain.Day) ([]domain.RollEvent, error) {
	var content string
	err := s.db.QueryRowContext(ctx, `SELECT content FROM day_ledgers WHERE name = ?`, day.LedgerName()).Scan(&content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: "read", Path: s.path, Err: err}
	}
	events, err := decodeDay([]byte(content))
	if err != nil {
		s.logger.Debug("ignoring unreadable day ledger", map[string]interface{}{
			"day":   day.String(),
			"error": err.Error(),
		})
		return nil, nil
	}
	return events, nil
}

// Days lists the days that have a ledger row, oldest first.
func (s *SQLiteStore) Days(ctx context.Context) ([]domain.Day, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM day_ledgers ORDER BY name`)
	if err != nil {
		return nil, &domain.StorageError{Op: "list", Path: s.path, Err: err}
	}
	defer rows.Close()

	var days []domain.Day
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &domain.StorageError{Op: "list", Path: s.path, Err: err}
		}
		if day, ok := parseLedgerName(name); ok {
			days = append(days, day)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list", Path: s.path, Err: err}
	}
	return days, nil
}

var _ ports.LedgerStore = (*SQLiteStore)(nil)
