package pipeline

import "errors"

var ErrInvalidGranularity = errors.New("invalid granularity")
