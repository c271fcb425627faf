package calculator

import (
	"fmt"

	"DollarSentinel/internal/model"
)

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive: %w", ErrInvalidArgument)
	}
	if len(prices) < period {
		return 0, fmt.Errorf("SMA(%d) needs %d points, have %d: %w", period, period, len(prices), ErrInsufficientData)
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// RollingSMA returns the moving average line of a series, one point per
// observation once the first full period is available.
func RollingSMA(series *model.PriceSeries, period int) ([]model.PricePoint, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive: %w", ErrInvalidArgument)
	}
	n := series.Len()
	if n < period {
		return nil, fmt.Errorf("rolling SMA(%d) needs %d points, have %d: %w", period, period, n, ErrInsufficientData)
	}

	out := make([]model.PricePoint, 0, n-period+1)
	sum := 0.0
	for i, p := range series.Points {
		sum += p.Close
		if i >= period {
			sum -= series.Points[i-period].Close
		}
		if i >= period-1 {
			out = append(out, model.PricePoint{Time: p.Time, Close: sum / float64(period)})
		}
	}
	return out, nil
}
