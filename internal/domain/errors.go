package domain

import "errors"

// Errors shared by the engine and its inputs.
var (
	// ErrNonMonotonicSeries indicates duplicate or out-of-order bar timestamps.
	ErrNonMonotonicSeries = errors.New("bar timestamps are not strictly increasing")
	// ErrSeriesMismatch indicates an indicator frame whose series are not
	// aligned with the bar sequence.
	ErrSeriesMismatch = errors.New("indicator series length does not match bar series")
)
