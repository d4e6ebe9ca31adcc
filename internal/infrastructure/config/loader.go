package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/dicelog/assets"
	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/pkg/filesystem"
	"github.com/doeshing/dicelog/internal/ports"
)

const (
	configFileName      = "config.yaml"
	configFormatVersion = "1"
	defaultStartDay     = "2022-09-02"
)

// envOverrides are applied on top of the YAML file.
type envOverrides struct {
	ConfigPath string `env:"DICELOG_CONFIG"`
	DataDir    string `env:"DICELOG_DATA_DIR"`
	Backend    string `env:"DICELOG_BACKEND"`
	Color      string `env:"DICELOG_COLOR"`
}

// FileLoader loads YAML configuration from ~/.dicelog/config.yaml (overridable via DICELOG_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path uses the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. Environment overrides are applied
// on top of the file but never written back.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	overrides, err := parseEnv()
	if err != nil {
		return domain.Config{}, err
	}
	cfg, err := l.readFile(l.resolvePath(overrides))
	if err != nil {
		return domain.Config{}, err
	}
	return applyOverrides(cfg, overrides), nil
}

// LoadFile returns the configuration exactly as persisted, with defaults
// hydrated but no environment overrides.
func (l *FileLoader) LoadFile(context.Context) (domain.Config, error) {
	overrides, err := parseEnv()
	if err != nil {
		return domain.Config{}, err
	}
	return l.readFile(l.resolvePath(overrides))
}

func (l *FileLoader) readFile(path string) (domain.Config, error) {
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, err
		}
		if err := writeDefaults(path); err != nil {
			return domain.Config{}, err
		}
		return DefaultConfig(), nil
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return hydrateDefaults(cfg), nil
}

// Save writes cfg to the resolved config path.
func (l *FileLoader) Save(cfg domain.Config) error {
	overrides, err := parseEnv()
	if err != nil {
		return err
	}
	path := l.resolvePath(overrides)
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return writeConfig(path, cfg)
}

// Reset overwrites the config file with the commented defaults.
func (l *FileLoader) Reset() (domain.Config, error) {
	overrides, err := parseEnv()
	if err != nil {
		return domain.Config{}, err
	}
	path := l.resolvePath(overrides)
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}
	if err := writeDefaults(path); err != nil {
		return domain.Config{}, err
	}
	return DefaultConfig(), nil
}

// Backup copies the current config file next to itself with a .bak suffix.
func (l *FileLoader) Backup() (string, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	dest := path + ".bak"
	if err := filesystem.WriteAtomic(dest, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return dest, nil
}

// Path returns the config file location without touching the filesystem.
func (l *FileLoader) Path() string {
	overrides, _ := parseEnv()
	return l.resolvePath(overrides)
}

func (l *FileLoader) resolvePath(overrides envOverrides) string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if overrides.ConfigPath != "" {
		return filesystem.ExpandPath(overrides.ConfigPath)
	}
	return filepath.Join(filesystem.AppDir(), configFileName)
}

func parseEnv() (envOverrides, error) {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return envOverrides{}, fmt.Errorf("parse env: %w", err)
	}
	return overrides, nil
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func writeConfig(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return filesystem.WriteAtomic(path, raw, domain.SecureFilePermissions)
}

func writeDefaults(path string) error {
	return filesystem.WriteAtomic(path, assets.DefaultConfigYAML, domain.SecureFilePermissions)
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		// Embedded YAML is compiled in; fall back to the same values.
		return fallbackConfig()
	}
	return cfg
}

func fallbackConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: configFormatVersion,
		Storage: domain.StorageSettings{
			DataDir: "~/" + filesystem.AppDirName + "/" + domain.DataDirName,
			Backend: domain.BackendFile,
		},
		Roll: domain.RollSettings{
			DefaultDice: domain.DefaultDice.String(),
		},
		Stats: domain.StatsSettings{
			DefaultStart: defaultStartDay,
			Concurrency:  domain.DefaultStatsConcurrency,
		},
		Display: domain.DisplaySettings{
			Color:    domain.ColorAuto,
			BarWidth: domain.DefaultBarWidth,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	defaults := DefaultConfig()
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = defaults.ConfigFormatVersion
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = defaults.Storage.DataDir
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaults.Storage.Backend
	}
	if cfg.Roll.DefaultDice == "" {
		cfg.Roll.DefaultDice = defaults.Roll.DefaultDice
	}
	if cfg.Stats.DefaultStart == "" {
		cfg.Stats.DefaultStart = defaults.Stats.DefaultStart
	}
	if cfg.Stats.Concurrency == 0 {
		cfg.Stats.Concurrency = defaults.Stats.Concurrency
	}
	if cfg.Display.Color == "" {
		cfg.Display.Color = defaults.Display.Color
	}
	if cfg.Display.BarWidth == 0 {
		cfg.Display.BarWidth = defaults.Display.BarWidth
	}
	return cfg
}

func applyOverrides(cfg domain.Config, overrides envOverrides) domain.Config {
	if overrides.DataDir != "" {
		cfg.Storage.DataDir = overrides.DataDir
	}
	if overrides.Backend != "" {
		cfg.Storage.Backend = overrides.Backend
	}
	if overrides.Color != "" {
		cfg.Display.Color = overrides.Color
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
