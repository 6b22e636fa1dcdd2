package domain

import "errors"

var (
	// ErrInvalidInput is returned for an empty or missing product reference.
	// This is the only error a caller ever sees; everything else degrades.
	ErrInvalidInput = errors.New("invalid product reference")

	// ErrExtractionFailed is returned when a listing page yields no usable signals
	ErrExtractionFailed = errors.New("listing extraction failed")

	// ErrNoMatch is returned when a storefront search produced no acceptable candidate
	ErrNoMatch = errors.New("no matching offer found")

	// ErrHistoryUnavailable is returned when no price history exists for a query
	ErrHistoryUnavailable = errors.New("price history unavailable")

	// ErrSourceBlocked is returned when a storefront refuses automated access
	ErrSourceBlocked = errors.New("source blocked the request")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
