package series

import (
	"fmt"
	"math"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libpoisson/coefficient"
	"github.com/sgostarter/libpoisson/trig"
)

func (s *Series) unit() *Series {
	r := s.emptyLike()
	r.AddConstant(1)

	return r
}

// RealPower returns s^p and leaves s unchanged. Positive integral powers are exact;
// other powers expand (c + X)^p binomially around c, the first monomial in degree
// order of the constant cosine term. c must be purely numeric, positive unless p is
// integral, and dominate the norm of X. An empty series has no leading term, so any
// non-zero power of it fails, with ErrUndefined for negative p.
func (s *Series) RealPower(p float64) (*Series, error) {
	switch {
	case p == 0:
		return s.unit(), nil
	case s.IsEmpty():
		if p < 0 {
			return nil, fmt.Errorf("%w: power %g of an empty series", ErrUndefined, p)
		}

		return nil, fmt.Errorf("%w: power %g of an empty series", ErrNotDominant, p)
	case p == 1:
		return s.Clone(), nil
	}

	if s.hasLinArgs() {
		return nil, fmt.Errorf("%w: power %g", ErrLinearArguments, p)
	}

	if p > 0 && p == math.Trunc(p) && p <= math.MaxInt32 {
		return s.naturalPower(int(p))
	}

	return s.binomialPower(p)
}

func (s *Series) naturalPower(n int) (*Series, error) {
	r := s.unit()
	base := s.Clone()

	for n > 0 {
		if n&1 == 1 {
			if err := r.Mul(base); err != nil {
				return nil, err
			}
		}

		n >>= 1

		if n > 0 {
			if err := base.Mul(base); err != nil {
				return nil, err
			}
		}
	}

	return r, nil
}

func (s *Series) binomialPower(p float64) (*Series, error) {
	key := s.constantKey()

	pos, ok := s.index[key]
	if !ok {
		return nil, fmt.Errorf("%w: no constant term", ErrNotDominant)
	}

	c, remainder, err := splitLeading(s.terms[pos].Cf, s.ctx())
	if err != nil {
		return nil, err
	}

	if c < 0 && p != math.Trunc(p) {
		return nil, fmt.Errorf("%w: %g^%g", ErrNonPositiveLeading, c, p)
	}

	rest := s.Clone()
	rest.eraseKey(key)

	if remainder != nil {
		rest.insert(NewTerm(remainder, trig.NewVector(len(rest.trigArgs)), Cos), true, rest.ctx())
	}

	r := s.emptyLike()
	r.AddConstant(math.Pow(c, p))

	if rest.Len() == 0 {
		return r, nil
	}

	ratio := rest.ratioToLeading(c)
	if ratio >= 1 {
		return nil, fmt.Errorf("%w: remainder norm ratio %g", ErrNotDominant, ratio)
	}

	n := s.powerSteps(p, ratio)

	s.logger.WithFields(l.IntField("steps", n), l.IntField("terms", s.Len())).Debug("binomial power")

	x := rest.Clone()
	choose := 1.0

	for i := 1; i <= n; i++ {
		choose *= (p - float64(i-1)) / float64(i)

		t := x.Clone()
		if err := t.MulFloat(choose * math.Pow(c, p-float64(i))); err != nil {
			return nil, err
		}

		if err := r.Add(t); err != nil {
			return nil, err
		}

		if i < n {
			if err := x.Mul(rest); err != nil {
				return nil, err
			}
		}
	}

	return r, nil
}

// splitLeading separates the leading value c of a constant coefficient from the rest of
// it. A polynomial leads with its first monomial in degree order; remainder is nil when
// nothing else is left.
func splitLeading(cf coefficient.Coefficient, ctx *coefficient.Context) (c float64, remainder coefficient.Coefficient,
	err error) {
	poly, ok := cf.(*coefficient.Polynomial)
	if !ok {
		if c, ok = cf.NumericValue(); !ok {
			err = ErrNonNumericLeading
		}

		return
	}

	m, ok := poly.Leading()
	if !ok || !m.IsConstant() {
		err = ErrNonNumericLeading

		return
	}

	c = m.Value()

	if poly.Len() > 1 {
		rest := poly.Clone().(*coefficient.Polynomial)
		rest.InsertMonomial(m, false, ctx)
		remainder = rest
	}

	return
}

// powerSteps is the first i whose binomial term bound |choose(p,i)|*ratio^i falls below
// the power tolerance, capped by the configured step limit.
func (s *Series) powerSteps(p, ratio float64) int {
	bound := 1.0

	for i := 1; i <= s.cfg.MaxPowerSteps; i++ {
		bound *= math.Abs((p-float64(i-1))/float64(i)) * ratio

		if bound < s.cfg.PowerTolerance {
			return i
		}
	}

	return s.cfg.MaxPowerSteps
}
