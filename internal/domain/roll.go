package domain

import "time"

// RollEvent is one immutable dice roll as stored in a day ledger.
type RollEvent struct {
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"date"`
	Dice      DiceSpec  `json:"diceType"`
	DiceCount int       `json:"diceCount"`
	Rolls     []int     `json:"rolls"`
	Modifier  int       `json:"modifier"`
	Total     int       `json:"total"`
}

// Day returns the local calendar day the event belongs to.
func (e RollEvent) Day() Day {
	return DayOf(e.Timestamp.In(time.Local))
}

// Sum returns the total of the dice without the modifier.
func (e RollEvent) Sum() int {
	sum := 0
	for _, r := range e.Rolls {
		sum += r
	}
	return sum
}
