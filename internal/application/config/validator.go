package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/dicelog/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateStorage(cfg.Storage); err != nil {
		return err
	}
	if err := validateRoll(cfg.Roll); err != nil {
		return err
	}
	if err := validateStats(cfg.Stats); err != nil {
		return err
	}
	if err := validateDisplay(cfg.Display); err != nil {
		return err
	}
	return nil
}

func validateStorage(storage domain.StorageSettings) error {
	if strings.TrimSpace(storage.DataDir) == "" {
		return errors.New("storage.data_dir must be set")
	}
	switch strings.ToLower(storage.Backend) {
	case domain.BackendFile, domain.BackendSQLite:
	default:
		return fmt.Errorf("storage.backend must be file|sqlite, got %s", storage.Backend)
	}
	return nil
}

func validateRoll(roll domain.RollSettings) error {
	if _, err := domain.ParseDice(roll.DefaultDice); err != nil {
		return fmt.Errorf("roll.default_dice invalid: %w", err)
	}
	return nil
}

func validateStats(stats domain.StatsSettings) error {
	if stats.DefaultStart != "" {
		if _, err := domain.ParseDay(stats.DefaultStart); err != nil {
			return fmt.Errorf("stats.default_start invalid: %w", err)
		}
	}
	if stats.Concurrency <= 0 {
		return fmt.Errorf("stats.concurrency must be > 0")
	}
	return nil
}

func validateDisplay(display domain.DisplaySettings) error {
	switch strings.ToLower(display.Color) {
	case domain.ColorAuto, domain.ColorAlways, domain.ColorNever:
	default:
		return fmt.Errorf("display.color must be auto|always|never, got %s", display.Color)
	}
	if display.BarWidth <= 0 {
		return fmt.Errorf("display.bar_width must be > 0")
	}
	return nil
}
