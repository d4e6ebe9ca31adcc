package domain

// Tier is the display band of a rolled value.
type Tier string

const (
	TierLow      Tier = "low"
	TierMid      Tier = "mid"
	TierHigh     Tier = "high"
	TierCritical Tier = "critical"
	TierNeutral  Tier = "neutral"
)

// Classify maps a value to a tier by splitting the die's face range into thirds.
// Boundaries are inclusive on the low side: value <= n/3 is Low,
// value <= 2n/3 is Mid, anything above is High. A natural maximum on the
// critical die is Critical unless the value is a combined total.
func Classify(value int, dice DiceSpec, combinedTotal bool) Tier {
	n := dice.FaceCount
	if !combinedTotal && IsCritical(dice) && value == n {
		return TierCritical
	}
	if n <= 0 {
		return TierNeutral
	}
	// Resolve the extremes first so value*3 below cannot overflow.
	switch {
	case value <= 0:
		return TierLow
	case value > n:
		return TierHigh
	}
	switch {
	case value*3 <= n:
		return TierLow
	case value*3 <= 2*n:
		return TierMid
	default:
		return TierHigh
	}
}

// ClassifyModifier returns the tier of a modifier, which has no comparison context.
func ClassifyModifier(int) Tier {
	return TierNeutral
}
