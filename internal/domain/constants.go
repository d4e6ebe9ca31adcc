package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is the permission for ledger and theme files (rw-r--r--)
	FilePermissions = 0o644
	// SecureFilePermissions is the permission for the config file (rw-------)
	SecureFilePermissions = 0o600
)

// Storage layout constants
const (
	// DataDirName is the directory under the app home holding ledgers
	DataDirName = "dice_rolls"
	// LedgerFilePrefix prefixes Day.LedgerName for file-backed ledgers
	LedgerFilePrefix = "dice_roll_"
	// ThemeFileName holds the selected theme
	ThemeFileName = "theme.json"
	// SQLiteFileName is the database used by the sqlite backend
	SQLiteFileName = "ledger.db"
)

// Limit constants
const (
	// DefaultStatsConcurrency bounds concurrent day reads
	DefaultStatsConcurrency = 8
	// DefaultBarWidth is the widest histogram bar in characters
	DefaultBarWidth = 40
	// DefaultHistoryLimit is the default number of events to list
	DefaultHistoryLimit = 20
	// DefaultAppendQueueDepth is the buffered capacity of the ledger writer
	DefaultAppendQueueDepth = 16
	// DefaultDayCacheEntries bounds the number of past days kept in memory
	DefaultDayCacheEntries = 4096
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
