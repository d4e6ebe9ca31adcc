package domain

import (
	"fmt"
	"strings"
)

// DisplayMode controls how a multi-die roll is presented.
type DisplayMode string

const (
	// DisplayCombined shows the dice as one running total.
	DisplayCombined DisplayMode = "add"
	// DisplayIndividual shows every die with its own total.
	DisplayIndividual DisplayMode = "individual"
)

// DiceSpec is the static description of a supported die.
// The JSON keys match the ledger files written by earlier releases.
type DiceSpec struct {
	FaceCount   int         `json:"diceNum"`
	Name        string      `json:"diceName"`
	DisplayMode DisplayMode `json:"display"`
}

// Combined reports whether rolls of this die are shown as a single sum.
func (s DiceSpec) Combined() bool {
	return s.DisplayMode == DisplayCombined
}

// Dice enumerates the fixed catalog. The zero value is not a valid die.
type Dice int

const (
	D2 Dice = iota + 1
	D2Separate
	D4
	D6
	D8
	D10
	D12
	D20
	D100
)

// CriticalDice is the die whose natural maximum is shown as a critical hit.
const CriticalDice = D20

// DefaultDice is preselected when no die is named.
const DefaultDice = D20

var catalog = map[Dice]DiceSpec{
	D2:         {FaceCount: 2, Name: "d2", DisplayMode: DisplayCombined},
	D2Separate: {FaceCount: 2, Name: "d2(separate)", DisplayMode: DisplayIndividual},
	D4:         {FaceCount: 4, Name: "d4", DisplayMode: DisplayCombined},
	D6:         {FaceCount: 6, Name: "d6", DisplayMode: DisplayCombined},
	D8:         {FaceCount: 8, Name: "d8", DisplayMode: DisplayCombined},
	D10:        {FaceCount: 10, Name: "d10", DisplayMode: DisplayCombined},
	D12:        {FaceCount: 12, Name: "d12", DisplayMode: DisplayCombined},
	D20:        {FaceCount: 20, Name: "d20", DisplayMode: DisplayIndividual},
	D100:       {FaceCount: 100, Name: "d100", DisplayMode: DisplayIndividual},
}

// Valid reports whether d is part of the catalog.
func (d Dice) Valid() bool {
	_, ok := catalog[d]
	return ok
}

// Spec returns the catalog entry for d. Invalid values yield the zero spec.
func (d Dice) Spec() DiceSpec {
	return catalog[d]
}

func (d Dice) String() string {
	if spec, ok := catalog[d]; ok {
		return spec.Name
	}
	return fmt.Sprintf("Dice(%d)", int(d))
}

// Catalog lists every supported die in display order.
func Catalog() []Dice {
	return []Dice{D2, D2Separate, D4, D6, D8, D10, D12, D20, D100}
}

// StatsDice lists one die per distinct face count, in catalog order.
// Dice sharing a face count form one statistical population.
func StatsDice() []Dice {
	seen := make(map[int]bool)
	var out []Dice
	for _, d := range Catalog() {
		faces := d.Spec().FaceCount
		if seen[faces] {
			continue
		}
		seen[faces] = true
		out = append(out, d)
	}
	return out
}

// ParseDice resolves a catalog name such as "d20" or "d2(separate)".
func ParseDice(name string) (Dice, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, d := range Catalog() {
		if d.Spec().Name == normalized {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDice, name)
}

// IsCritical reports whether spec describes the critical die.
func IsCritical(spec DiceSpec) bool {
	return spec == CriticalDice.Spec()
}
