package calculator

import (
	"fmt"

	"DollarSentinel/internal/model"
)

// ComputeGap derives window statistics, the dollar gap ratios and the implied
// fair-value rate from the exchange-rate series and the dollar index series.
//
// The rate series must hold at least window closes. The index side is optional:
// a missing or short index series, or a nil dxyCurrent, leaves every
// index-dependent field nil instead of failing.
func ComputeGap(rateCurrent float64, rate *model.PriceSeries, dxyCurrent *float64, dxy *model.PriceSeries, window int) (*model.GapAnalysis, error) {
	if window <= 0 {
		return nil, fmt.Errorf("window must be positive: %w", ErrInvalidArgument)
	}
	rateStats, err := WindowStatsOf(rate.Closes(), window)
	if err != nil {
		return nil, fmt.Errorf("rate window: %w", err)
	}
	if rateStats.Mid <= 0 {
		return nil, fmt.Errorf("rate window has non-positive midpoint: %w", ErrInvalidArgument)
	}
	rateStats.Current = rateCurrent

	ga := &model.GapAnalysis{
		Window:       window,
		RateVsMidPct: pctFrom(rateCurrent, rateStats.Mid),
		RateStats:    rateStats,
	}

	if dxy.Len() >= window {
		dxyStats, err := WindowStatsOf(dxy.Closes(), window)
		if err == nil && dxyStats.Mid > 0 {
			if dxyCurrent != nil {
				dxyStats.Current = *dxyCurrent
			}
			ga.DXYStats = &dxyStats
		}
	}

	if ga.DXYStats == nil || dxyCurrent == nil {
		return ga, nil
	}

	ga.DXYVsMidPct = ptr(pctFrom(*dxyCurrent, ga.DXYStats.Mid))

	if rateCurrent > 0 {
		ga.CurrentGapRatio = ptr(*dxyCurrent / rateCurrent * 100)
		ga.MidGapRatio = ptr(ga.DXYStats.Mid / rateStats.Mid * 100)
		if *ga.MidGapRatio != 0 {
			ga.FairValueRate = ptr(*dxyCurrent / *ga.MidGapRatio * 100)
		}
	}

	return ga, nil
}

// pctFrom returns the percentage deviation of v from ref. Negative means v is below ref.
func pctFrom(v, ref float64) float64 {
	return (v - ref) / ref * 100
}

func ptr(v float64) *float64 { return &v }
