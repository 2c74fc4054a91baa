package series

import "errors"

var (
	ErrIncompatibleArguments = errors.New("incompatible arguments")
	ErrDivisionByZero        = errors.New("division by zero")
	ErrNonNumericLeading     = errors.New("leading term is not numeric")
	ErrNonPositiveLeading    = errors.New("leading term is not positive")
	ErrNotDominant           = errors.New("leading term does not dominate")
	ErrLinearArguments       = errors.New("operation not defined with linear arguments")
	ErrBadRecord             = errors.New("bad record")
	ErrBadConfig             = errors.New("bad config")

	// ErrUndefined marks requests for a mathematically undefined result, such as an
	// integer division by zero or a negative power of an empty series.
	ErrUndefined = errors.New("undefined result")
)
