// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the roll ledger core and its
// adapters (infrastructure). The core depends only on these abstractions, so
// the ledger can live in JSON day files or in SQLite and the front end can be
// the CLI or anything else that calls the application services.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., LedgerStore, ConfigProvider)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/dicelog/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.dicelog/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// LedgerStore persists roll events partitioned by calendar day.
//
// ReadDay treats a missing or unparsable day record as empty and returns no
// error for it; only failures of the storage itself are reported.
// Append is a read-modify-write of the whole day and assumes a single writer.
type LedgerStore interface {
	EnsureDay(ctx context.Context, day domain.Day) error
	Append(ctx context.Context, day domain.Day, event domain.RollEvent) error
	ReadDay(ctx context.Context, day domain.Day) ([]domain.RollEvent, error)
	Days(ctx context.Context) ([]domain.Day, error)
	Location() string
}

// ThemeStore persists the selected colour theme.
type ThemeStore interface {
	Load(ctx context.Context) (domain.Theme, error)
	Save(ctx context.Context, theme domain.Theme) error
}

// RandomSource yields uniform integers in [0, n).
// It does not need to be cryptographically secure.
type RandomSource interface {
	Intn(n int) int
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
