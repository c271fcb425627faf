package model

import "time"

// PricePoint is a single daily close.
type PricePoint struct {
	Time  time.Time
	Close float64
}

// PriceSeries holds ordered daily closes for one instrument.
type PriceSeries struct {
	Symbol    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Len returns the number of observations.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// Closes returns the close values in chronological order.
func (s *PriceSeries) Closes() []float64 {
	if s == nil {
		return nil
	}
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// Latest returns the most recent close, or false if the series is empty.
func (s *PriceSeries) Latest() (float64, bool) {
	if s.Len() == 0 {
		return 0, false
	}
	return s.Points[len(s.Points)-1].Close, true
}

// Tail returns a series containing only the last n observations.
func (s *PriceSeries) Tail(n int) *PriceSeries {
	if s == nil {
		return nil
	}
	pts := s.Points
	if n >= 0 && len(pts) > n {
		pts = pts[len(pts)-n:]
	}
	return &PriceSeries{Symbol: s.Symbol, Points: pts, FetchedAt: s.FetchedAt}
}
