package roll

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/ports"
)

// Generate rolls diceCount dice of the given kind and adds modifier.
//
// Every die is drawn independently from [1, FaceCount]. Total is the plain
// sum of the dice plus modifier, so it may be negative. A diceCount below 1
// or a die outside the catalog is rejected. Generate performs no I/O; the
// caller decides whether to persist the event.
func Generate(src ports.RandomSource, dice domain.Dice, diceCount, modifier int, now time.Time) (domain.RollEvent, error) {
	if !dice.Valid() {
		return domain.RollEvent{}, fmt.Errorf("%w: %v", domain.ErrUnknownDice, dice)
	}
	if diceCount < 1 {
		return domain.RollEvent{}, fmt.Errorf("%w: got %d", domain.ErrInvalidDiceCount, diceCount)
	}

	spec := dice.Spec()
	rolls := make([]int, diceCount)
	total := 0
	for i := range rolls {
		rolls[i] = src.Intn(spec.FaceCount) + 1
		total += rolls[i]
	}

	return domain.RollEvent{
		ID:        newEventID(),
		Timestamp: now.UTC(),
		Dice:      spec,
		DiceCount: diceCount,
		Rolls:     rolls,
		Modifier:  modifier,
		Total:     total + modifier,
	}, nil
}

func newEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
