package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"DollarSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Symbols listed in Fail return an error; symbols without Series get a
// generated series around Price.
type MockFetcher struct {
	Price  float64
	Series map[string]*model.PriceSeries
	Fail   map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(_ context.Context, symbol string, days int) (*model.PriceSeries, error) {
	if err, ok := m.Fail[symbol]; ok {
		return nil, err
	}
	if s, ok := m.Series[symbol]; ok {
		return s.Tail(days), nil
	}
	return generateMockSeries(symbol, m.Price, days), nil
}

func generateMockSeries(symbol string, basePrice float64, count int) *model.PriceSeries {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	pts := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		pts[i] = model.PricePoint{
			Time:  now.AddDate(0, 0, -(count - i)),
			Close: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return &model.PriceSeries{Symbol: symbol, Points: pts, FetchedAt: time.Now()}
}

// Snapshot is the fully materialized input of one analysis.
// DXY is nil when the index could not be retrieved.
type Snapshot struct {
	Rate *model.PriceSeries
	DXY  *model.PriceSeries
}

// Collector fetches the exchange rate and dollar index series.
type Collector struct {
	Fetcher    Fetcher
	RateSymbol string
	DXYSymbol  string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, rateSymbol, dxySymbol string) *Collector {
	return &Collector{Fetcher: fetcher, RateSymbol: rateSymbol, DXYSymbol: dxySymbol}
}

// Collect fetches days observations of both series. A failed rate fetch is an
// error; a failed index fetch is logged and leaves Snapshot.DXY nil.
func (c *Collector) Collect(ctx context.Context, days int) (*Snapshot, error) {
	rate, err := c.Fetcher.FetchDailyCloses(ctx, c.RateSymbol, days)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch %s: %v: %w", c.RateSymbol, err, ErrSeriesUnavailable)
	}
	if rate.Len() == 0 {
		return nil, fmt.Errorf("fetch %s: empty series: %w", c.RateSymbol, ErrSeriesUnavailable)
	}

	snap := &Snapshot{Rate: rate}
	dxy, err := c.Fetcher.FetchDailyCloses(ctx, c.DXYSymbol, days)
	switch {
	case err != nil:
		log.WithField("symbol", c.DXYSymbol).Warnf("dollar index fetch failed, continuing without it: %v", err)
	case dxy.Len() == 0:
		log.WithField("symbol", c.DXYSymbol).Warn("dollar index series empty, continuing without it")
	default:
		snap.DXY = dxy
	}

	log.WithFields(log.Fields{
		"source":     c.Fetcher.Name(),
		"rate_bars":  rate.Len(),
		"index_bars": snap.DXY.Len(),
	}).Info("series collected")
	return snap, nil
}
