package calculator

import (
	"fmt"

	"DollarSentinel/internal/model"
)

const (
	mediumTrendPeriod = 20
	shortTrendPeriod  = 5
)

// ClassifyTrend labels the medium-term (20 day) and short-term (5 day) direction
// of a series. A latest close equal to the mean counts as down.
func ClassifyTrend(series *model.PriceSeries) (*model.Trend, error) {
	closes := series.Closes()
	if len(closes) < mediumTrendPeriod {
		return nil, fmt.Errorf("trend needs %d points, have %d: %w", mediumTrendPeriod, len(closes), ErrInsufficientData)
	}
	latest := closes[len(closes)-1]

	ma20, err := CalculateSMA(closes, mediumTrendPeriod)
	if err != nil {
		return nil, err
	}
	ma5, err := CalculateSMA(closes, shortTrendPeriod)
	if err != nil {
		return nil, err
	}

	return &model.Trend{
		MediumTerm: direction(latest, ma20),
		ShortTerm:  direction(latest, ma5),
	}, nil
}

func direction(latest, mean float64) model.TrendDirection {
	if latest > mean {
		return model.TrendUp
	}
	return model.TrendDown
}
