package doctor

import (
	"context"
	"fmt"
	"os"

	appconfig "github.com/doeshing/dicelog/internal/application/config"
	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Ledger         ports.LedgerStore
	Themes         ports.ThemeStore
	DataDir        string
	Today          domain.Day
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))
	}

	checks = append(checks, s.dataDirCheck())
	checks = append(checks, s.ledgerCheck(ctx, cfg.Storage.Backend)...)
	checks = append(checks, s.themeCheck(ctx))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) dataDirCheck() domain.HealthCheck {
	if s.DataDir == "" {
		return warn("Data directory", "not configured")
	}
	info, err := os.Stat(s.DataDir)
	if err != nil {
		return fail("Data directory", err.Error())
	}
	if !info.IsDir() {
		return fail("Data directory", fmt.Sprintf("%s is not a directory", s.DataDir))
	}
	probe, err := os.CreateTemp(s.DataDir, ".doctor-*")
	if err != nil {
		return fail("Data directory", fmt.Sprintf("%s is not writable: %v", s.DataDir, err))
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return ok("Data directory", s.DataDir)
}

func (s *Service) ledgerCheck(ctx context.Context, backend string) []domain.HealthCheck {
	if s.Ledger == nil {
		return []domain.HealthCheck{warn("Ledger", "ledger store not initialized")}
	}
	days, err := s.Ledger.Days(ctx)
	if err != nil {
		return []domain.HealthCheck{fail("Ledger", err.Error())}
	}
	checks := []domain.HealthCheck{
		ok("Ledger", fmt.Sprintf("%s backend at %s, %d day(s) recorded", backend, s.Ledger.Location(), len(days))),
	}

	initialized := false
	for _, d := range days {
		if d == s.Today {
			initialized = true
			break
		}
	}
	events, err := s.Ledger.ReadDay(ctx, s.Today)
	switch {
	case err != nil:
		checks = append(checks, fail("Today's ledger", err.Error()))
	case !initialized:
		checks = append(checks, warn("Today's ledger", fmt.Sprintf("%s not initialized yet", s.Today)))
	default:
		checks = append(checks, ok("Today's ledger", fmt.Sprintf("%s holds %d roll(s)", s.Today, len(events))))
	}
	return checks
}

func (s *Service) themeCheck(ctx context.Context) domain.HealthCheck {
	if s.Themes == nil {
		return warn("Theme", "theme store not initialized")
	}
	theme, err := s.Themes.Load(ctx)
	if err != nil {
		return warn("Theme", err.Error())
	}
	return ok("Theme", theme.Name)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
