package series

import (
	"math"
	"math/big"
	"strings"

	"github.com/sgostarter/libpoisson/coefficient"
	"github.com/sgostarter/libpoisson/trig"
)

const (
	Cos = true
	Sin = false
)

// Term is Cf * cos(Trig . args) when Flavour is Cos, Cf * sin(Trig . args) otherwise.
// Identity is (Flavour, Trig) only; Cf is payload.
type Term struct {
	Cf      coefficient.Coefficient
	Trig    trig.Vector
	Flavour bool
}

func NewTerm(cf coefficient.Coefficient, v trig.Vector, flavour bool) *Term {
	return &Term{
		Cf:      cf,
		Trig:    v,
		Flavour: flavour,
	}
}

func (t *Term) Clone() *Term {
	return &Term{
		Cf:      t.Cf.Clone(),
		Trig:    t.Trig.Clone(),
		Flavour: t.Flavour,
	}
}

func (t *Term) Key() string {
	b := make([]byte, 0, 1+2*len(t.Trig))
	if t.Flavour {
		b = append(b, 'c')
	} else {
		b = append(b, 's')
	}

	return string(t.Trig.AppendKey(b))
}

func (t *Term) SameKey(other *Term) bool {
	return t.Flavour == other.Flavour && t.Trig.Equal(other.Trig)
}

func (t *Term) IsIgnorable(ctx *coefficient.Context) bool {
	if t.Flavour == Sin && t.Trig.IsZero() {
		return true
	}

	return t.Cf.IsZero(ctx)
}

// Multiply applies the Werner formulas and returns the canonical pair of products.
func (t *Term) Multiply(other *Term, ctx *coefficient.Context) (*Term, *Term) {
	cf := t.Cf.Clone()
	cf.MultiplyBy(other.Cf, ctx)
	cf.MultiplyRat(big.NewRat(1, 2), ctx)

	width := t.Trig.Width()
	if other.Trig.Width() > width {
		width = other.Trig.Width()
	}

	minus, plus := trig.NewVector(width), trig.NewVector(width)
	t.Trig.Combine(other.Trig, minus, plus)

	a := &Term{Cf: cf, Trig: minus}
	b := &Term{Cf: cf.Clone(), Trig: plus}

	switch {
	case t.Flavour == Cos && other.Flavour == Cos:
		a.Flavour, b.Flavour = Cos, Cos
	case t.Flavour == Cos && other.Flavour == Sin:
		a.Flavour, b.Flavour = Sin, Sin
		a.Cf.Negate()
	case t.Flavour == Sin && other.Flavour == Cos:
		a.Flavour, b.Flavour = Sin, Sin
	default:
		a.Flavour, b.Flavour = Cos, Cos
		b.Cf.Negate()
	}

	a.canonicalize()
	b.canonicalize()

	return a, b
}

// canonicalize makes the first non-zero multiplier positive.
func (t *Term) canonicalize() {
	if t.Trig.Sign() >= 0 {
		return
	}

	t.Trig.Negate()

	if t.Flavour == Sin {
		t.Cf.Negate()
	}
}

func (t *Term) trigValue(trigValues []float64) float64 {
	arg := t.Trig.Dot(trigValues)
	if t.Flavour {
		return math.Cos(arg)
	}

	return math.Sin(arg)
}

func (t *Term) Evaluate(cfValues, trigValues []float64) float64 {
	return t.Cf.Evaluate(cfValues) * t.trigValue(trigValues)
}

func (t *Term) Norm(cfValues []float64) float64 {
	return t.Cf.Norm(cfValues)
}

func flavourString(flavour bool) string {
	if flavour {
		return "c"
	}

	return "s"
}

func (t *Term) PlainString() string {
	var ss strings.Builder

	ss.WriteString(t.Cf.PlainString())
	ss.WriteByte('&')

	if t.Trig.Width() > 0 {
		ss.WriteString(t.Trig.PlainString())
		ss.WriteByte('&')
	}

	ss.WriteString(flavourString(t.Flavour))

	return ss.String()
}

func (t *Term) LaTeX(cfNames, trigNames []string) string {
	var ss strings.Builder

	ss.WriteByte('$')
	ss.WriteString(t.Cf.LaTeX(cfNames))
	ss.WriteString("$&")

	if !t.Trig.IsZero() {
		if t.Flavour {
			ss.WriteString("$\\cos")
		} else {
			ss.WriteString("$\\sin")
		}

		ss.WriteString("\\left(")
		ss.WriteString(t.Trig.LaTeX(trigNames))
		ss.WriteString("\\right)$")
	}

	ss.WriteString("\\\\")

	return ss.String()
}
