package commands

// CLI-specific constants
const (
	// DefaultEditorCommand is the default editor command
	DefaultEditorCommand = "vi"
	envKeyEditor         = "EDITOR"
)

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrRollServiceUnavailable   = "roll service unavailable"
	ErrStatsServiceUnavailable  = "stats service unavailable"
	ErrKeyRequired              = "--key is required"
	ErrInvalidLimit             = "--limit must be >= 1"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoRollsInRange           = "No rolls in range."
)
