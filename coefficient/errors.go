package coefficient

import "errors"

var (
	ErrBadCoefficient = errors.New("bad coefficient")
	ErrBadMonomial    = errors.New("bad monomial")
)
