package connectfour

import "errors"

var ErrUnknownPlayer = errors.New("unknown player")
