package doctor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/infrastructure/ledger"
	"github.com/doeshing/dicelog/internal/infrastructure/theme"
	"github.com/doeshing/dicelog/internal/pkg/logger"
)

type stubConfig struct {
	cfg domain.Config
	err error
}

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

func goodConfig(dir string) domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Storage:             domain.StorageSettings{DataDir: dir, Backend: domain.BackendFile},
		Roll:                domain.RollSettings{DefaultDice: "d20"},
		Stats:               domain.StatsSettings{Concurrency: 4},
		Display:             domain.DisplaySettings{Color: domain.ColorNever, BarWidth: 40},
	}
}

func statusOf(t *testing.T, report domain.HealthReport, name string) domain.HealthStatus {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c.Status
		}
	}
	t.Fatalf("check %q not in report %+v", name, report.Checks)
	return ""
}

func TestRun_HealthyEnvironment(t *testing.T) {
	dir := t.TempDir()
	today := domain.NewDay(2024, time.May, 1)
	store := ledger.NewFileStore(dir, logger.Discard())
	if err := store.EnsureDay(context.Background(), today); err != nil {
		t.Fatalf("EnsureDay: %v", err)
	}
	svc := &Service{
		ConfigProvider: stubConfig{cfg: goodConfig(dir)},
		Ledger:         store,
		Themes:         theme.NewFileStore(dir, logger.Discard()),
		DataDir:        dir,
		Today:          today,
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Failed() {
		t.Fatalf("report failed: %+v", report.Checks)
	}
	for _, name := range []string{"Config file", "Data directory", "Ledger", "Today's ledger", "Theme"} {
		if got := statusOf(t, report, name); got != domain.HealthOK {
			t.Errorf("%s = %s, want ok", name, got)
		}
	}
}

func TestRun_UninitializedTodayWarns(t *testing.T) {
	dir := t.TempDir()
	svc := &Service{
		ConfigProvider: stubConfig{cfg: goodConfig(dir)},
		Ledger:         ledger.NewFileStore(dir, logger.Discard()),
		DataDir:        dir,
		Today:          domain.NewDay(2024, time.May, 1),
	}
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := statusOf(t, report, "Today's ledger"); got != domain.HealthWarn {
		t.Errorf("Today's ledger = %s, want warn", got)
	}
	if got := statusOf(t, report, "Theme"); got != domain.HealthWarn {
		t.Errorf("Theme = %s, want warn", got)
	}
}

func TestRun_InvalidConfigAndMissingDir(t *testing.T) {
	cfg := goodConfig("x")
	cfg.Storage.Backend = "tape"
	svc := &Service{
		ConfigProvider: stubConfig{cfg: cfg},
		DataDir:        filepath.Join(t.TempDir(), "absent"),
	}
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.Failed() {
		t.Fatal("expected failed report")
	}
	if got := statusOf(t, report, "Config file"); got != domain.HealthError {
		t.Errorf("Config file = %s, want error", got)
	}
	if got := statusOf(t, report, "Data directory"); got != domain.HealthError {
		t.Errorf("Data directory = %s, want error", got)
	}
}

func TestRun_ConfigLoadFailureStops(t *testing.T) {
	boom := errors.New("permission denied")
	svc := &Service{ConfigProvider: stubConfig{err: boom}}
	report, err := svc.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want %v", err, boom)
	}
	if len(report.Checks) != 1 || report.Checks[0].Status != domain.HealthError {
		t.Fatalf("unexpected checks: %+v", report.Checks)
	}
}
