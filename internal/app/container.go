package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	appconfig "github.com/doeshing/dicelog/internal/application/config"
	"github.com/doeshing/dicelog/internal/application/doctor"
	"github.com/doeshing/dicelog/internal/application/roll"
	"github.com/doeshing/dicelog/internal/application/stats"
	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/infrastructure/cache"
	"github.com/doeshing/dicelog/internal/infrastructure/config"
	"github.com/doeshing/dicelog/internal/infrastructure/ledger"
	"github.com/doeshing/dicelog/internal/infrastructure/theme"
	"github.com/doeshing/dicelog/internal/pkg/filesystem"
	"github.com/doeshing/dicelog/internal/pkg/logger"
	"github.com/doeshing/dicelog/internal/pkg/random"
	"github.com/doeshing/dicelog/internal/ports"
)

// Options tunes container construction.
type Options struct {
	Verbose bool
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
	DataDir        string
	// Today is resolved once at startup.
	Today         domain.Day
	Ledger        ports.LedgerStore
	ThemeStore    ports.ThemeStore
	RollService   *roll.Service
	StatsService  *stats.Service
	DoctorService *doctor.Service

	closers []func() error
}

// BuildContainer constructs the dependency graph and guarantees the data
// directory and today's ledger exist.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if err := appconfig.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", cfgLoader.Path(), err)
	}

	log := logger.NewStd(opts.Verbose)
	dataDir := filesystem.ExpandPath(cfg.Storage.DataDir)
	if err := os.MkdirAll(dataDir, domain.DirectoryPermissions); err != nil {
		return nil, &domain.StorageError{Op: "mkdir", Path: dataDir, Err: err}
	}

	c := &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		DataDir:        dataDir,
		Today:          domain.DayOf(clock()),
		ThemeStore:     theme.NewFileStore(dataDir, log.WithComponent("theme")),
	}

	backing, err := c.openLedger(cfg.Storage.Backend, log)
	if err != nil {
		return nil, err
	}
	store := backing
	if cfg.Stats.Cache {
		store = cache.NewDayCache(backing, c.Today, domain.DefaultDayCacheEntries, log.WithComponent("cache"))
	}
	c.Ledger = store

	if err := store.EnsureDay(ctx, c.Today); err != nil {
		c.Close()
		return nil, fmt.Errorf("initialize ledger for %s: %w", c.Today, err)
	}

	source, err := random.NewSeededSource()
	if err != nil {
		c.Close()
		return nil, err
	}
	rollService, err := roll.NewService(roll.Options{
		Ledger: store,
		Random: source,
		Logger: log.WithComponent("roll"),
		Clock:  clock,
	})
	if err != nil {
		c.Close()
		return nil, err
	}
	c.RollService = rollService
	c.closers = append(c.closers, func() error {
		rollService.Close()
		return nil
	})

	c.StatsService = &stats.Service{
		Ledger:      store,
		Logger:      log.WithComponent("stats"),
		Today:       c.Today,
		Concurrency: cfg.Stats.Concurrency,
	}

	c.DoctorService = &doctor.Service{
		ConfigProvider: cfgLoader,
		Ledger:         store,
		Themes:         c.ThemeStore,
		DataDir:        dataDir,
		Today:          c.Today,
	}

	log.Debug("container ready", map[string]interface{}{
		"backend":  cfg.Storage.Backend,
		"location": store.Location(),
		"today":    c.Today.String(),
	})
	return c, nil
}

func (c *Container) openLedger(backend string, log *logger.StdLogger) (ports.LedgerStore, error) {
	switch strings.ToLower(backend) {
	case domain.BackendSQLite:
		store, err := ledger.OpenSQLiteStore(filepath.Join(c.DataDir, domain.SQLiteFileName), log.WithComponent("ledger"))
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, store.Close)
		return store, nil
	default:
		return ledger.NewFileStore(c.DataDir, log.WithComponent("ledger")), nil
	}
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && c.Logger != nil {
			c.Logger.Warn("close failed", map[string]interface{}{"error": err.Error()})
		}
	}
	c.closers = nil
}
