package factory

import "errors"

var ErrInvalidHandlerType = errors.New("invalid handler type")
