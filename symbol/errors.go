package symbol

import "errors"

var (
	ErrConflict  = errors.New("symbol defined twice with different evaluation")
	ErrBadSymbol = errors.New("bad symbol")
)
