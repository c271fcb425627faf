package strategy

import (
	"fmt"

	"DollarSentinel/internal/model"
)

// Condition is one independently evaluated buy signal.
// Evaluate reports ok=false when the analysis lacks the inputs it needs.
type Condition struct {
	ID       int
	Name     string
	Evaluate func(ga *model.GapAnalysis) (margin float64, met, ok bool)
	Describe func(margin float64, met bool) string
}

// Conditions lists the four buy signals in evaluation order.
var Conditions = []Condition{
	{
		ID:       1,
		Name:     "rate below window midpoint",
		Evaluate: rateBelowMid,
		Describe: func(margin float64, met bool) string {
			if met {
				return fmt.Sprintf("exchange rate is below its window midpoint (%+.2f%%), favourable", margin)
			}
			return fmt.Sprintf("exchange rate is at or above its window midpoint (%+.2f%%)", margin)
		},
	},
	{
		ID:       2,
		Name:     "dollar index below window midpoint",
		Evaluate: dxyBelowMid,
		Describe: func(margin float64, met bool) string {
			if met {
				return fmt.Sprintf("dollar index is below its window midpoint (%+.2f%%), favourable", margin)
			}
			return fmt.Sprintf("dollar index is at or above its window midpoint (%+.2f%%)", margin)
		},
	},
	{
		ID:       3,
		Name:     "gap ratio above window gap ratio",
		Evaluate: gapWidened,
		Describe: func(margin float64, met bool) string {
			if met {
				return fmt.Sprintf("dollar gap ratio is above the window gap ratio (%+.2f), favourable", margin)
			}
			return fmt.Sprintf("dollar gap ratio is not above the window gap ratio (%+.2f)", margin)
		},
	},
	{
		ID:       4,
		Name:     "rate below fair value",
		Evaluate: belowFairValue,
		Describe: func(margin float64, met bool) string {
			if met {
				return fmt.Sprintf("exchange rate is below the fair value rate (%+.2f%%), favourable", margin)
			}
			return fmt.Sprintf("exchange rate is at or above the fair value rate (%+.2f%%)", margin)
		},
	},
}

func rateBelowMid(ga *model.GapAnalysis) (float64, bool, bool) {
	return ga.RateVsMidPct, ga.RateVsMidPct < 0, true
}

func dxyBelowMid(ga *model.GapAnalysis) (float64, bool, bool) {
	if ga.DXYVsMidPct == nil {
		return 0, false, false
	}
	return *ga.DXYVsMidPct, *ga.DXYVsMidPct < 0, true
}

// gapWidened is strict: an unchanged gap ratio does not count.
func gapWidened(ga *model.GapAnalysis) (float64, bool, bool) {
	diff, ok := ga.GapDiff()
	if !ok {
		return 0, false, false
	}
	return diff, diff > 0, true
}

// belowFairValue reports the deviation in percent of fair value.
func belowFairValue(ga *model.GapAnalysis) (float64, bool, bool) {
	if ga.FairValueRate == nil {
		return 0, false, false
	}
	diff := ga.RateStats.Current - *ga.FairValueRate
	pct, ok := ga.FairValueDeviationPct()
	if !ok {
		pct = diff
	}
	return pct, diff < 0, true
}
