package collector

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"DollarSentinel/internal/model"
	"DollarSentinel/internal/store"
)

// CachingFetcher stores every successful fetch and falls back to the last
// stored series when the upstream fetch fails. MaxAge of zero accepts any age.
type CachingFetcher struct {
	Fetcher Fetcher
	Store   store.SeriesStore
	MaxAge  time.Duration
}

// NewCachingFetcher wraps fetcher with a series cache.
func NewCachingFetcher(fetcher Fetcher, st store.SeriesStore, maxAge time.Duration) *CachingFetcher {
	return &CachingFetcher{Fetcher: fetcher, Store: st, MaxAge: maxAge}
}

func (c *CachingFetcher) Name() string { return c.Fetcher.Name() + "+cache" }

func (c *CachingFetcher) FetchDailyCloses(ctx context.Context, symbol string, days int) (*model.PriceSeries, error) {
	series, err := c.Fetcher.FetchDailyCloses(ctx, symbol, days)
	if err == nil {
		if serr := c.Store.SaveSeries(series); serr != nil {
			log.WithField("symbol", symbol).Warnf("cache save failed: %v", serr)
		}
		return series, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	cached, cerr := c.Store.LoadSeries(symbol)
	if cerr != nil {
		return nil, err
	}
	age := time.Since(cached.FetchedAt)
	if c.MaxAge > 0 && age > c.MaxAge {
		return nil, fmt.Errorf("%w (cached copy is %s old)", err, age.Round(time.Minute))
	}

	log.WithFields(log.Fields{
		"symbol": symbol,
		"age":    age.Round(time.Minute).String(),
	}).Warnf("fetch failed, serving cached series: %v", err)
	return cached.Tail(days), nil
}
