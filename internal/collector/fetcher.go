package collector

import (
	"context"
	"errors"
	"sort"

	"DollarSentinel/internal/model"
)

// ErrSeriesUnavailable means a series could not be retrieved at all
// (network failure, unknown symbol or empty result). It is distinct from a
// series that is merely too short for the analysis window.
var ErrSeriesUnavailable = errors.New("series unavailable")

// Fetcher defines the interface for fetching daily closing prices.
type Fetcher interface {
	FetchDailyCloses(ctx context.Context, symbol string, days int) (*model.PriceSeries, error)
	Name() string
}

// normalize sorts points chronologically, drops non-positive closes and keeps
// the last point for any duplicated timestamp so times are strictly increasing.
func normalize(points []model.PricePoint) []model.PricePoint {
	sort.SliceStable(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	out := points[:0]
	for _, p := range points {
		if p.Close <= 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Time.Equal(p.Time) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}

// trim keeps the most recent days points.
func trim(points []model.PricePoint, days int) []model.PricePoint {
	if days > 0 && len(points) > days {
		return points[len(points)-days:]
	}
	return points
}
