package coefficient

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

type Scalar struct {
	V float64
}

func NewScalar(v float64) *Scalar {
	return &Scalar{V: v}
}

func ParseScalar(s string) (*Scalar, error) {
	v, err := cast.ToFloat64E(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadCoefficient, s)
	}

	return NewScalar(v), nil
}

func (c *Scalar) Kind() Kind {
	return KindScalar
}

func (c *Scalar) Clone() Coefficient {
	return &Scalar{V: c.V}
}

func (c *Scalar) Width() int {
	return 0
}

func (c *Scalar) Widen(int) {}

func (c *Scalar) Prepend(int) {}

func (c *Scalar) Permute([]int, int) {}

func (c *Scalar) IsZero(ctx *Context) bool {
	return math.Abs(c.V) < ctx.Zero()
}

func (c *Scalar) Add(other Coefficient, sign bool, _ *Context) {
	v := mustNumeric(other)

	if sign {
		c.V += v
	} else {
		c.V -= v
	}
}

func (c *Scalar) MultiplyBy(other Coefficient, _ *Context) {
	c.V *= mustNumeric(other)
}

func (c *Scalar) MultiplyFloat(x float64, _ *Context) {
	c.V *= x
}

func (c *Scalar) MultiplyRat(r *big.Rat, _ *Context) {
	f, _ := r.Float64()

	c.V *= f
}

func (c *Scalar) Negate() {
	c.V = -c.V
}

func (c *Scalar) Norm([]float64) float64 {
	return math.Abs(c.V)
}

func (c *Scalar) Evaluate([]float64) float64 {
	return c.V
}

func (c *Scalar) NumericValue() (float64, bool) {
	return c.V, true
}

func (c *Scalar) MinDegree() int {
	return 0
}

func (c *Scalar) MinExponent(int) int {
	return 0
}

func (c *Scalar) Equal(other Coefficient, tol float64) bool {
	v, ok := other.NumericValue()
	if !ok {
		return false
	}

	return math.Abs(c.V-v) <= tol
}

func (c *Scalar) PlainString() string {
	return strconv.FormatFloat(c.V, 'g', -1, 64)
}

func (c *Scalar) LaTeX([]string) string {
	return latexFloat(c.V)
}

func mustNumeric(other Coefficient) float64 {
	v, ok := other.NumericValue()
	if !ok {
		panic(fmt.Sprintf("coefficient: %s operand is not numeric", other.Kind()))
	}

	return v
}

func latexFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', 10, 64)

	if idx := strings.IndexByte(s, 'e'); idx >= 0 {
		exp, _ := strconv.Atoi(s[idx+1:])

		return fmt.Sprintf("%s\\cdot 10^{%d}", s[:idx], exp)
	}

	return s
}
