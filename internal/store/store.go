package store

import (
	"errors"

	"DollarSentinel/internal/model"
)

// ErrNotFound means no series has been stored for the symbol.
var ErrNotFound = errors.New("series not cached")

// SeriesStore keeps the last successfully fetched series per symbol.
type SeriesStore interface {
	SaveSeries(s *model.PriceSeries) error
	LoadSeries(symbol string) (*model.PriceSeries, error)
	Close() error
}
