package detect

// Report is the outcome of a detection run.
type Report struct {
	Algorithm string `json:"algorithm"`
	// OutlierIndexes lists the top-n items, most anomalous first.
	OutlierIndexes []int `json:"outlierIndexes"`
	// OutlierScores is parallel to OutlierIndexes.
	OutlierScores []float64 `json:"outlierScores"`
	OutlierLabels []string  `json:"outlierLabels,omitempty"`
	VerifiedCount int       `json:"verifiedCount"`
	// Calculations counts unique distance evaluations.
	Calculations        int     `json:"calculations"`
	CalculationsCeiling int     `json:"calculationsCeiling"`
	Rounds              int     `json:"rounds,omitempty"`
	RunningTimeSeconds  float64 `json:"runningTimeSeconds"`
	DataSize            int     `json:"dataSize"`
	Seed                uint64  `json:"seed,omitempty"`
	Params              Params  `json:"params"`
}

// VerifiedPercentage returns the share of items with an exact score.
func (r *Report) VerifiedPercentage() float64 {
	if r.DataSize == 0 {
		return 0
	}
	return 100 * float64(r.VerifiedCount) / float64(r.DataSize)
}

// CalculationPercentage returns calculations relative to the number of pairs.
func (r *Report) CalculationPercentage() float64 {
	if r.CalculationsCeiling == 0 {
		return 0
	}
	return 100 * float64(r.Calculations) / float64(r.CalculationsCeiling)
}

// WithLabels fills OutlierLabels from per-item labels.
func (r *Report) WithLabels(labels []string) *Report {
	if len(labels) == 0 {
		return r
	}
	r.OutlierLabels = make([]string, len(r.OutlierIndexes))
	for i, idx := range r.OutlierIndexes {
		if idx < len(labels) {
			r.OutlierLabels[i] = labels[idx]
		}
	}
	return r
}

// SameOutliers reports whether two reports rank the same items in the same order.
func (r *Report) SameOutliers(other *Report) bool {
	if other == nil || len(r.OutlierIndexes) != len(other.OutlierIndexes) {
		return false
	}
	for i := range r.OutlierIndexes {
		if r.OutlierIndexes[i] != other.OutlierIndexes[i] {
			return false
		}
	}
	return true
}
