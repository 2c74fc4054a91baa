// nolint
package series

import (
	"math"
	"testing"

	"github.com/sgostarter/libpoisson/coefficient"
	"github.com/sgostarter/libpoisson/symbol"
	"github.com/sgostarter/libpoisson/trig"
	"github.com/stretchr/testify/assert"
)

func cosineSeries(t *testing.T, constant, amplitude float64) *Series {
	s := scalarSeries(t, symbol.NewTable(nil), symbol.New("x", 0, 1))
	s.AddConstant(constant)
	s.Insert(NewTerm(coefficient.NewScalar(amplitude), trig.FromInts(1), Cos), true)

	return s
}

func TestRealPowerTrivial(t *testing.T) {
	s := cosineSeries(t, 1, 0.1)

	r, err := s.RealPower(0)
	assert.Nil(t, err)
	assert.Equal(t, 1, r.Len())
	assert.EqualValues(t, 1, r.Evaluate(0.3))

	r, err = s.RealPower(1)
	assert.Nil(t, err)
	assert.True(t, r.Equal(s, 0))

	empty := New(symbol.NewTable(nil), coefficient.KindScalar)

	_, err = empty.RealPower(-1)
	assert.ErrorIs(t, err, ErrUndefined)

	_, err = empty.RealPower(2.5)
	assert.ErrorIs(t, err, ErrNotDominant)

	_, err = empty.RealPower(1)
	assert.ErrorIs(t, err, ErrNotDominant)

	r, err = empty.RealPower(0)
	assert.Nil(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestRealPowerNatural(t *testing.T) {
	s := cosineSeries(t, 0, 2)

	r, err := s.RealPower(2)
	assert.Nil(t, err)
	assert.Equal(t, 2, r.Len())
	assert.EqualValues(t, 2, termValue(t, r, trig.FromInts(0), Cos))
	assert.EqualValues(t, 2, termValue(t, r, trig.FromInts(2), Cos))

	// the receiver is untouched
	assert.Equal(t, 1, s.Len())

	r, err = s.RealPower(5)
	assert.Nil(t, err)

	for _, t0 := range []float64{0, 0.4, 2} {
		assert.InDelta(t, math.Pow(s.Evaluate(t0), 5), r.Evaluate(t0), 1e-9)
	}
}

func TestRealPowerBinomial(t *testing.T) {
	s := cosineSeries(t, 1, 0.1)

	root, err := s.RealPower(0.5)
	assert.Nil(t, err)

	square, err := Multiply(root, root)
	assert.Nil(t, err)

	inverse, err := s.RealPower(-1)
	assert.Nil(t, err)

	one, err := Multiply(s, inverse)
	assert.Nil(t, err)

	for _, t0 := range []float64{0, 0.3, 1.7, 3} {
		assert.InDelta(t, math.Sqrt(s.Evaluate(t0)), root.Evaluate(t0), 1e-9)
		assert.InDelta(t, s.Evaluate(t0), square.Evaluate(t0), 1e-9)
		assert.InDelta(t, 1, one.Evaluate(t0), 1e-9)
	}

	negative := cosineSeries(t, -2, 0.1)

	inverse, err = negative.RealPower(-1)
	assert.Nil(t, err)
	assert.InDelta(t, 1/negative.Evaluate(0.8), inverse.Evaluate(0.8), 1e-9)
}

func eccentricitySeries(t *testing.T, amplitude float64) *Series {
	s := New(symbol.NewTable(nil), coefficient.KindPolynomial)

	_, err := s.AddCfArg(symbol.New("e", 0.1), false)
	assert.Nil(t, err)
	_, err = s.AddTrigArg(symbol.New("l", 0, 1), false)
	assert.Nil(t, err)

	s.Insert(NewTerm(mustPoly(t, "1:1:[0]&1:1:[1]"), trig.FromInts(0), Cos), true)

	if amplitude != 0 {
		s.Insert(NewTerm(coefficient.NewPolynomialConstant(amplitude, 1), trig.FromInts(1), Cos), true)
	}

	return s
}

func TestRealPowerPolynomialLeading(t *testing.T) {
	// sqrt(1+e)
	s := eccentricitySeries(t, 0)

	root, err := s.RealPower(0.5)
	assert.Nil(t, err)
	assert.Equal(t, 1, root.Len())

	cf, ok := root.Terms()[0].Cf.(*coefficient.Polynomial)
	assert.True(t, ok)

	ms := cf.Monomials()
	assert.True(t, len(ms) > 3)
	assert.InDelta(t, 1, ms[0].Value(), 1e-15)
	assert.InDelta(t, 0.5, ms[1].Value(), 1e-15)
	assert.InDelta(t, -0.125, ms[2].Value(), 1e-15)

	for _, t0 := range []float64{0, 0.7, 2.5} {
		assert.InDelta(t, math.Sqrt(1.1), root.Evaluate(t0), 1e-10)
	}

	// (1+e)^-1 with a periodic part
	s = eccentricitySeries(t, 0.2)

	inverse, err := s.RealPower(-1)
	assert.Nil(t, err)

	one, err := Multiply(s, inverse)
	assert.Nil(t, err)

	for _, t0 := range []float64{0, 0.3, 1.7, 3} {
		assert.InDelta(t, 1/s.Evaluate(t0), inverse.Evaluate(t0), 1e-9)
		assert.InDelta(t, 1, one.Evaluate(t0), 1e-9)
	}

	// the receiver keeps its constant term whole
	assert.Equal(t, 2, s.Len())
}

func TestRealPowerPreconditions(t *testing.T) {
	_, err := cosineSeries(t, 1, 2).RealPower(0.5)
	assert.ErrorIs(t, err, ErrNotDominant)

	_, err = cosineSeries(t, 0, 1).RealPower(0.5)
	assert.ErrorIs(t, err, ErrNotDominant)

	_, err = cosineSeries(t, -1, 0.1).RealPower(0.5)
	assert.ErrorIs(t, err, ErrNonPositiveLeading)

	p := New(symbol.NewTable(nil), coefficient.KindPolynomial)
	_, _ = p.AddCfArg(symA, false)
	p.Insert(NewTerm(mustPoly(t, "1:1:[1]"), trig.NewVector(0), Cos), true)

	_, err = p.RealPower(0.5)
	assert.ErrorIs(t, err, ErrNonNumericLeading)

	linear, err := NewFromSymbol(symbol.NewTable(nil), coefficient.KindScalar, symX)
	assert.Nil(t, err)

	_, err = linear.RealPower(2)
	assert.ErrorIs(t, err, ErrLinearArguments)
}
