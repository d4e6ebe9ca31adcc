// Package ledger stores roll events in per-day ledgers.
package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/doeshing/dicelog/internal/domain"
)

const ledgerNamePrefix = "log_"

// decodeDay parses a day record. Blank content is an empty day.
func decodeDay(data []byte) ([]domain.RollEvent, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var events []domain.RollEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// encodeDay serializes a day record; an empty day is "[]", never "null".
func encodeDay(events []domain.RollEvent) ([]byte, error) {
	if events == nil {
		events = []domain.RollEvent{}
	}
	return json.Marshal(events)
}

// parseLedgerName reverses domain.Day.LedgerName.
func parseLedgerName(name string) (domain.Day, bool) {
	if !strings.HasPrefix(name, ledgerNamePrefix) {
		return domain.Day{}, false
	}
	day, err := domain.ParseDay(strings.TrimPrefix(name, ledgerNamePrefix))
	if err != nil {
		return domain.Day{}, false
	}
	return day, true
}

func corruptError(day domain.Day, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrCorruptLedger, day, err)
}

func notInitializedError(day domain.Day) error {
	return fmt.Errorf("%w: %s", domain.ErrDayNotInitialized, day)
}
