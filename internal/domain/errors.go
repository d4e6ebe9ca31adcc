package domain

import (
	"errors"
	"fmt"
)

// Validation errors are returned before any storage access.
var (
	ErrInvalidDiceCount = errors.New("dice count must be at least 1")
	ErrUnknownDice      = errors.New("unknown dice")
	ErrUnknownTheme     = errors.New("unknown theme")
)

// Ledger errors.
var (
	ErrDayNotInitialized = errors.New("day ledger not initialized")
	ErrCorruptLedger     = errors.New("day ledger is corrupt")
	ErrQueueClosed       = errors.New("ledger writer closed")
)

// StorageError reports a failure of the backing storage itself
// (permission denied, disk full, database unavailable).
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
