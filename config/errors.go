package config

import "errors"

var (
	ErrInvalidLogLevel          = errors.New("invalid log level")
	ErrInvalidCacheBackend      = errors.New("invalid cache backend")
	ErrInvalidCorrelationColumn = errors.New("invalid correlation column")
	ErrMissingDataPath          = errors.New("missing data path")
)
