package coefficient

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Monomial is Numeric * Rational * prod(x_i^Exponents[i]). Rational is kept non-negative.
type Monomial struct {
	Numeric   float64
	Rational  *big.Rat
	Exponents []int16
}

func NewMonomial(numeric float64, rational *big.Rat, exponents ...int) *Monomial {
	if rational == nil {
		rational = big.NewRat(1, 1)
	}

	m := &Monomial{
		Numeric:   numeric,
		Rational:  new(big.Rat).Set(rational),
		Exponents: make([]int16, len(exponents)),
	}

	for idx, e := range exponents {
		m.Exponents[idx] = narrowExponent(e)
	}

	m.normalize()

	return m
}

func (m *Monomial) Clone() *Monomial {
	exps := make([]int16, len(m.Exponents))
	copy(exps, m.Exponents)

	return &Monomial{
		Numeric:   m.Numeric,
		Rational:  new(big.Rat).Set(m.Rational),
		Exponents: exps,
	}
}

func (m *Monomial) normalize() {
	if m.Rational.Sign() < 0 {
		m.Rational.Neg(m.Rational)
		m.Numeric = -m.Numeric
	}
}

func (m *Monomial) Value() float64 {
	r, _ := m.Rational.Float64()

	return m.Numeric * r
}

func (m *Monomial) isZero(tol float64) bool {
	if m.Rational.Sign() == 0 {
		return true
	}

	return math.Abs(m.Value()) < tol
}

func (m *Monomial) Degree() int {
	d := 0
	for _, e := range m.Exponents {
		d += int(e)
	}

	return d
}

func (m *Monomial) IsConstant() bool {
	for _, e := range m.Exponents {
		if e != 0 {
			return false
		}
	}

	return true
}

func (m *Monomial) key() string {
	return exponentsKey(m.Exponents)
}

func (m *Monomial) compare(other *Monomial) int {
	if d1, d2 := m.Degree(), other.Degree(); d1 != d2 {
		if d1 < d2 {
			return -1
		}

		return 1
	}

	for idx := 0; idx < len(m.Exponents) && idx < len(other.Exponents); idx++ {
		if m.Exponents[idx] != other.Exponents[idx] {
			if m.Exponents[idx] > other.Exponents[idx] {
				return -1
			}

			return 1
		}
	}

	return 0
}

func (m *Monomial) symbolsPart(values []float64) float64 {
	r := 1.0

	for idx, e := range m.Exponents {
		if e == 0 {
			continue
		}

		r *= math.Pow(values[idx], float64(e))
	}

	return r
}

func (m *Monomial) PlainString() string {
	var ss strings.Builder

	ss.WriteString(strconv.FormatFloat(m.Numeric, 'g', -1, 64))
	ss.WriteByte(':')
	ss.WriteString(m.Rational.RatString())
	ss.WriteString(":[")

	for idx, e := range m.Exponents {
		if idx > 0 {
			ss.WriteByte(' ')
		}

		ss.WriteString(strconv.Itoa(int(e)))
	}

	ss.WriteByte(']')

	return ss.String()
}

func (m *Monomial) LaTeX(names []string) string {
	var ss strings.Builder

	n := m.Numeric
	if n < 0 {
		ss.WriteByte('-')

		n = -n
	}

	constant := m.IsConstant()

	switch {
	case m.Rational.IsInt():
		v := n * float64(m.Rational.Num().Int64())
		if v != 1 || constant {
			ss.WriteString(latexFloat(v))
		}
	case n == 1:
		ss.WriteString(fmt.Sprintf("\\frac{%s}{%s}", m.Rational.Num().String(), m.Rational.Denom().String()))
	default:
		ss.WriteString(latexFloat(n))
		ss.WriteString(fmt.Sprintf("\\frac{%s}{%s}", m.Rational.Num().String(), m.Rational.Denom().String()))
	}

	for idx, e := range m.Exponents {
		if e == 0 {
			continue
		}

		name := fmt.Sprintf("x_{%d}", idx)
		if idx < len(names) && names[idx] != "" {
			name = names[idx]
		}

		ss.WriteString(name)

		if e != 1 {
			ss.WriteString(fmt.Sprintf("^{%d}", e))
		}
	}

	return ss.String()
}

func narrowExponent(e int) int16 {
	if e > math.MaxInt16 || e < math.MinInt16 {
		panic(fmt.Sprintf("coefficient: exponent %d out of int16 range", e))
	}

	return int16(e)
}

func exponentsKey(exps []int16) string {
	b := make([]byte, 0, 2*len(exps))
	for _, e := range exps {
		b = append(b, byte(uint16(e)), byte(uint16(e)>>8))
	}

	return string(b)
}

func widenExponents(exps []int16, width int) []int16 {
	if width < len(exps) {
		panic(fmt.Sprintf("coefficient: cannot narrow exponents from %d to %d", len(exps), width))
	}

	if width == len(exps) {
		return exps
	}

	n := make([]int16, width)
	copy(n, exps)

	return n
}
