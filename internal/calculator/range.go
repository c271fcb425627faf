package calculator

import (
	"fmt"
	"math"

	"DollarSentinel/internal/model"
)

// WindowStatsOf scans the most recent window closes and returns their min, mid and max.
// Current is set to the latest close in the window.
func WindowStatsOf(closes []float64, window int) (model.WindowStats, error) {
	if window <= 0 {
		return model.WindowStats{}, fmt.Errorf("window must be positive: %w", ErrInvalidArgument)
	}
	n := len(closes)
	if n < window {
		return model.WindowStats{}, fmt.Errorf("window %d needs %d points, have %d: %w", window, window, n, ErrInsufficientData)
	}

	low := math.Inf(1)
	high := math.Inf(-1)
	for i := n - window; i < n; i++ {
		if closes[i] > high {
			high = closes[i]
		}
		if closes[i] < low {
			low = closes[i]
		}
	}
	return model.WindowStats{
		Current: closes[n-1],
		Min:     low,
		Mid:     (low + high) / 2,
		Max:     high,
	}, nil
}

// PositionInRange returns where current sits within [low, high] (0.0~1.0).
func PositionInRange(current, low, high float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, fmt.Errorf("high must be >= low: %w", ErrInvalidArgument)
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
