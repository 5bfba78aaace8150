package network

import "errors"

var ErrMissingEvent = errors.New("packet has no event name")
