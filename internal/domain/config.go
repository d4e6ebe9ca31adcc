package domain

// Config mirrors ~/.dicelog/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Storage             StorageSettings `yaml:"storage"`
	Roll                RollSettings    `yaml:"roll"`
	Stats               StatsSettings   `yaml:"stats"`
	Display             DisplaySettings `yaml:"display"`
}

// StorageSettings selects where ledgers live.
type StorageSettings struct {
	DataDir string `yaml:"data_dir"`
	Backend string `yaml:"backend"`
}

// RollSettings holds roll defaults.
type RollSettings struct {
	DefaultDice string `yaml:"default_dice"`
}

// StatsSettings configures range queries.
type StatsSettings struct {
	DefaultStart string `yaml:"default_start"`
	Concurrency  int    `yaml:"concurrency"`
	// Cache keeps past days in memory between reads of one process.
	Cache bool `yaml:"cache"`
}

// DisplaySettings controls terminal output.
type DisplaySettings struct {
	Color    string `yaml:"color"`
	BarWidth int    `yaml:"bar_width"`
}

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)
