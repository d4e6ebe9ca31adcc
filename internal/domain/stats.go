package domain

// StatsReport is the result of aggregating a date range.
type StatsReport struct {
	Days       []Day
	Events     int
	Histograms []Histogram
}

// Histogram returns the report's histogram for the given face count.
func (r StatsReport) Histogram(faceCount int) (Histogram, bool) {
	for _, h := range r.Histograms {
		if h.Dice.FaceCount == faceCount {
			return h, true
		}
	}
	return Histogram{}, false
}
