package coefficient

import "math/big"

type Kind int

const (
	KindScalar Kind = iota
	KindPolynomial
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindPolynomial:
		return "polynomial"
	}

	return "unknown"
}

// DefaultNumericalZero is the magnitude below which a numeric value is treated as zero.
const DefaultNumericalZero = 1e-80

// Limit bounds the exponent of the coefficient argument in slot Index.
type Limit struct {
	Index int
	Max   int
}

type Context struct {
	NumericalZero float64
	Limits        []Limit
}

func (ctx *Context) Zero() float64 {
	if ctx == nil || ctx.NumericalZero <= 0 {
		return DefaultNumericalZero
	}

	return ctx.NumericalZero
}

func (ctx *Context) limits() []Limit {
	if ctx == nil {
		return nil
	}

	return ctx.Limits
}

// Coefficient is implemented by *Scalar and *Polynomial. Binary operations expect
// both operands of the same kind, except that a purely numeric operand is accepted
// by either kind.
type Coefficient interface {
	Kind() Kind
	Clone() Coefficient

	Width() int
	Widen(width int)
	Prepend(n int)
	Permute(layout []int, width int)

	IsZero(ctx *Context) bool
	Add(other Coefficient, sign bool, ctx *Context)
	MultiplyBy(other Coefficient, ctx *Context)
	MultiplyFloat(x float64, ctx *Context)
	MultiplyRat(r *big.Rat, ctx *Context)
	Negate()

	Norm(values []float64) float64
	Evaluate(values []float64) float64
	NumericValue() (float64, bool)
	MinDegree() int
	MinExponent(idx int) int

	Equal(other Coefficient, tol float64) bool

	PlainString() string
	LaTeX(names []string) string
}

func New(kind Kind, v float64, width int) Coefficient {
	if kind == KindPolynomial {
		return NewPolynomialConstant(v, width)
	}

	return NewScalar(v)
}
