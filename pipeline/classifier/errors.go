package classifier

import "errors"

var ErrInvalidRule = errors.New("invalid weather rule")
