package trig

import "errors"

var (
	ErrBadMultiplier = errors.New("bad multiplier")
)
