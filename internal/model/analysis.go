package model

// WindowStats describes the trailing window of a series.
// Mid is always (Min+Max)/2.
type WindowStats struct {
	Current float64
	Min     float64
	Mid     float64
	Max     float64
}

// GapAnalysis is the result of one gap/fair-value computation.
// Nil pointer fields were not computable from the available data.
type GapAnalysis struct {
	Window          int
	RateVsMidPct    float64
	DXYVsMidPct     *float64
	CurrentGapRatio *float64
	MidGapRatio     *float64
	FairValueRate   *float64
	RateStats       WindowStats
	DXYStats        *WindowStats
}

// FairValueDeviationPct returns how far the current rate sits from the fair value, in percent.
func (g *GapAnalysis) FairValueDeviationPct() (float64, bool) {
	if g == nil || g.FairValueRate == nil || *g.FairValueRate == 0 {
		return 0, false
	}
	return (g.RateStats.Current - *g.FairValueRate) / *g.FairValueRate * 100, true
}

// GapDiff returns CurrentGapRatio - MidGapRatio when both are present.
func (g *GapAnalysis) GapDiff() (float64, bool) {
	if g == nil || g.CurrentGapRatio == nil || g.MidGapRatio == nil {
		return 0, false
	}
	return *g.CurrentGapRatio - *g.MidGapRatio, true
}

// TrendDirection is a binary trend label.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
)

// Trend holds the medium-term (20 day) and short-term (5 day) direction of a series.
type Trend struct {
	MediumTerm TrendDirection
	ShortTerm  TrendDirection
}
