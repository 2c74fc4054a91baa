package series

import (
	"fmt"
	"math"
	"math/big"

	"github.com/sgostarter/libpoisson/coefficient"
	"github.com/sgostarter/libpoisson/trig"
)

// Merge adds other to s when sign is true and subtracts it otherwise.
func (s *Series) Merge(other *Series, sign bool) error {
	if s.kind != other.kind {
		panic(fmt.Sprintf("series: merge %s series into %s series", other.kind, s.kind))
	}

	o := other.Clone()

	if !s.MergeArguments(o) {
		return ErrIncompatibleArguments
	}

	for pos, n := range o.linArgs {
		if sign {
			s.linArgs[pos] += n
		} else {
			s.linArgs[pos] -= n
		}
	}

	ctx := s.ctx()

	for _, t := range o.terms {
		s.insert(t, sign, ctx)
	}

	return nil
}

func (s *Series) Add(other *Series) error {
	return s.Merge(other, true)
}

func (s *Series) Sub(other *Series) error {
	return s.Merge(other, false)
}

func (s *Series) AddConstant(v float64) {
	s.Insert(NewTerm(coefficient.New(s.kind, v, len(s.cfArgs)), trig.NewVector(len(s.trigArgs)), Cos), true)
}

func (s *Series) Negate() {
	for _, t := range s.terms {
		t.Cf.Negate()
	}

	for pos := range s.linArgs {
		s.linArgs[pos] = -s.linArgs[pos]
	}

	s.touch()
}

func (s *Series) MulInt(n int) {
	if n == 0 {
		s.Clear()

		return
	}

	ctx := s.ctx()
	r := big.NewRat(int64(n), 1)

	for _, t := range s.terms {
		t.Cf.MultiplyRat(r, ctx)
	}

	for pos := range s.linArgs {
		s.linArgs[pos] *= n
	}

	s.purge(ctx)
	s.touch()
}

// MulFloat scales s by x. A linear part can only be scaled by integral values.
func (s *Series) MulFloat(x float64) error {
	if x == 0 {
		s.Clear()

		return nil
	}

	if x == math.Trunc(x) && math.Abs(x) <= math.MaxInt32 {
		s.MulInt(int(x))

		return nil
	}

	if s.hasLinArgs() {
		return fmt.Errorf("%w: scale by %g", ErrLinearArguments, x)
	}

	ctx := s.ctx()

	for _, t := range s.terms {
		t.Cf.MultiplyFloat(x, ctx)
	}

	s.purge(ctx)
	s.touch()

	return nil
}

// DivInt divides s exactly by n. Dividing by zero is undefined.
func (s *Series) DivInt(n int) error {
	if n == 0 {
		return fmt.Errorf("%w: integer division by zero", ErrUndefined)
	}

	for _, a := range s.linArgs {
		if a%n != 0 {
			return fmt.Errorf("%w: linear part not divisible by %d", ErrLinearArguments, n)
		}
	}

	ctx := s.ctx()
	r := big.NewRat(1, int64(n))

	for _, t := range s.terms {
		t.Cf.MultiplyRat(r, ctx)
	}

	for pos := range s.linArgs {
		s.linArgs[pos] /= n
	}

	s.purge(ctx)
	s.touch()

	return nil
}

// DivFloat divides s by x; s is left unchanged when x is zero.
func (s *Series) DivFloat(x float64) error {
	if x == 0 {
		return ErrDivisionByZero
	}

	return s.MulFloat(1 / x)
}

// TruncateNorm drops the terms whose norm is below threshold and returns how many.
func (s *Series) TruncateNorm(threshold float64) int {
	values := s.normValues()
	n := 0

	for pos := len(s.terms) - 1; pos >= 0; pos-- {
		if s.terms[pos].Norm(values) < threshold {
			s.erase(pos)
			n++
		}
	}

	return n
}

// TruncateDegree drops coefficient monomials above maxDegree; scalar series are unchanged.
func (s *Series) TruncateDegree(maxDegree int) {
	if s.kind != coefficient.KindPolynomial {
		return
	}

	for _, t := range s.terms {
		if p, ok := t.Cf.(*coefficient.Polynomial); ok {
			p.Truncate(maxDegree)
		}
	}

	s.purge(s.ctx())
	s.touch()
}
