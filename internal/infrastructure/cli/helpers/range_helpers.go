package helpers

import (
	"strings"

	"github.com/doeshing/dicelog/internal/domain"
)

// DateRange holds the raw --from/--to flag values.
type DateRange struct {
	From string
	To   string
}

// WithDefaults fills empty bounds. An empty From becomes from, an empty To
// becomes today. Malformed values are passed through untouched so the range
// query can apply its own fallback.
func (r DateRange) WithDefaults(from string, today domain.Day) DateRange {
	out := DateRange{From: strings.TrimSpace(r.From), To: strings.TrimSpace(r.To)}
	if out.From == "" {
		out.From = from
	}
	if out.To == "" {
		out.To = today.String()
	}
	return out
}

// ParseDiceFilter resolves an optional --dice flag to a face count (0 = all).
func ParseDiceFilter(name string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, nil
	}
	d, err := domain.ParseDice(name)
	if err != nil {
		return 0, err
	}
	return d.Spec().FaceCount, nil
}
