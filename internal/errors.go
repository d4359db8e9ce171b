package internal

import "errors"

var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrSinkFailed        = errors.New("catalog sink failed")
	ErrUnsupportedInput  = errors.New("unsupported input type")
	ErrInvalidRules      = errors.New("invalid rules")
	ErrInvalidCatalog    = errors.New("invalid catalog")
)
