package domain

import (
	"fmt"
	"time"
)

// DayLayout is the calendar date format used for ledger identities and flags.
const DayLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Day is a calendar date without a time zone.
type Day struct {
	year  int
	month time.Month
	day   int
}

// NewDay builds a Day, normalizing out-of-range values the way time.Date does.
func NewDay(year int, month time.Month, day int) Day {
	return dayFromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{year: y, month: m, day: d}
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return dayFromTime(t), nil
}

func dayFromTime(t time.Time) Day {
	y, m, d := t.Date()
	return Day{year: y, month: m, day: d}
}

func (d Day) asTime() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool {
	return d == Day{}
}

func (d Day) String() string {
	return d.asTime().Format(DayLayout)
}

// LedgerName is the storage identity of the day's ledger.
func (d Day) LedgerName() string {
	return "log_" + d.String()
}

// AddDays returns d shifted by n calendar days.
func (d Day) AddDays(n int) Day {
	return dayFromTime(d.asTime().AddDate(0, 0, n))
}

// DaysUntil returns the whole number of days from d to other (negative when other is earlier).
// Both are UTC midnights, so the difference in Unix seconds is an exact multiple of a day.
func (d Day) DaysUntil(other Day) int {
	return int((other.asTime().Unix() - d.asTime().Unix()) / secondsPerDay)
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	return d.asTime().Before(other.asTime())
}

// ResolveRange expands an inclusive [start, end] interval into days.
// When either bound is missing or malformed only today is returned.
// An end before start yields no days.
func ResolveRange(start, end string, today Day) []Day {
	from, errStart := ParseDay(start)
	to, errEnd := ParseDay(end)
	if errStart != nil || errEnd != nil {
		return []Day{today}
	}
	span := from.DaysUntil(to)
	if span < 0 {
		return nil
	}
	days := make([]Day, 0, span+1)
	for i := 0; i <= span; i++ {
		days = append(days, from.AddDays(i))
	}
	return days
}
