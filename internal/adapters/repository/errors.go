package repository

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	ErrDataFile      = errors.New("data file unavailable")
	ErrMissingColumn = errors.New("required column missing")
	ErrMalformedRow  = errors.New("malformed row")
)
