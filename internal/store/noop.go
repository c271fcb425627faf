package store

import "DollarSentinel/internal/model"

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) SaveSeries(_ *model.PriceSeries) error { return nil }
func (n *NoopStore) LoadSeries(_ string) (*model.PriceSeries, error) {
	return nil, ErrNotFound
}
func (n *NoopStore) Close() error { return nil }
