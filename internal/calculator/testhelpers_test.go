package calculator

import (
	"time"

	"DollarSentinel/internal/model"
)

func seriesOf(symbol string, closes ...float64) *model.PriceSeries {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	pts := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		pts[i] = model.PricePoint{Time: start.AddDate(0, 0, i), Close: c}
	}
	return &model.PriceSeries{Symbol: symbol, Points: pts}
}

func flat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
