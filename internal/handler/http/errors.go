package http

import "errors"

var (
	errInvalidFrom   = errors.New("from must be a date in YYYY-MM-DD format")
	errInvalidTo     = errors.New("to must be a date in YYYY-MM-DD format")
	errRangeReversed = errors.New("to must not be before from")
)
