package domain

// FaceCount is the number of times one face was rolled.
type FaceCount struct {
	Face  int `json:"rollNumber"`
	Count int `json:"rollCount"`
}

// Histogram holds per-face occurrence counts for one die.
// Faces is ordered by ascending face and has exactly FaceCount entries.
type Histogram struct {
	Dice  DiceSpec    `json:"dice"`
	Faces []FaceCount `json:"faces"`
	// Rejected counts stored outcomes outside [1, FaceCount].
	Rejected int `json:"rejected,omitempty"`
}

// Total returns the number of die outcomes counted.
func (h Histogram) Total() int {
	total := 0
	for _, f := range h.Faces {
		total += f.Count
	}
	return total
}

// Max returns the largest single face count.
func (h Histogram) Max() int {
	best := 0
	for _, f := range h.Faces {
		if f.Count > best {
			best = f.Count
		}
	}
	return best
}

// BuildHistogram counts the individual die outcomes of every event rolled
// with a die of the same face count as dice. Totals and modifiers are ignored.
func BuildHistogram(events []RollEvent, dice DiceSpec) Histogram {
	faces := dice.FaceCount
	if faces < 0 {
		faces = 0
	}
	h := Histogram{Dice: dice, Faces: make([]FaceCount, faces)}
	for i := range h.Faces {
		h.Faces[i].Face = i + 1
	}

	for _, event := range events {
		if event.Dice.FaceCount != dice.FaceCount {
			continue
		}
		for _, outcome := range event.Rolls {
			if outcome < 1 || outcome > faces {
				h.Rejected++
				continue
			}
			h.Faces[outcome-1].Count++
		}
	}
	return h
}
