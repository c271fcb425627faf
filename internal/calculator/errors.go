package calculator

import "errors"

var (
	// ErrInsufficientData means a required window of history is shorter than requested.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrInvalidArgument means a caller passed a non-positive amount, rate or window.
	ErrInvalidArgument = errors.New("invalid argument")
)
