package series

import (
	"math"

	"github.com/sgostarter/libpoisson/coefficient"
)

func (s *Series) values(kind argKind, t float64) []float64 {
	args := *s.args(kind)
	vs := make([]float64, len(args))

	for pos, idx := range args {
		vs[pos] = s.table.Evaluate(idx, t)
	}

	return vs
}

func (s *Series) CfValues(t float64) []float64 {
	return s.values(argCf, t)
}

func (s *Series) TrigValues(t float64) []float64 {
	return s.values(argTrig, t)
}

// normValues weighs coefficient arguments by their magnitude at the reference time.
// Placeholders have no definition and weigh 1.
func (s *Series) normValues() []float64 {
	if s.kind != coefficient.KindPolynomial {
		return nil
	}

	vs := s.values(argCf, s.cfg.ReferenceTime)

	for pos, sym := range s.symbols(argCf) {
		if sym.IsPlaceholder() {
			vs[pos] = 1
		}
	}

	return vs
}

func (s *Series) Evaluate(t float64) float64 {
	cfValues, trigValues := s.CfValues(t), s.TrigValues(t)

	var r float64

	for _, term := range s.SortedTerms(OrderKey) {
		r += term.Evaluate(cfValues, trigValues)
	}

	for pos, n := range s.linArgs {
		r += float64(n) * trigValues[pos]
	}

	return r
}

// Norm sums the coefficient norms of every term.
func (s *Series) Norm() float64 {
	values := s.normValues()

	var r float64

	for _, t := range s.terms {
		r += t.Norm(values)
	}

	return r
}

// Equal compares argument definitions, linear parts and terms; coefficients may differ
// by tol.
func (s *Series) Equal(other *Series, tol float64) bool {
	if s.kind != other.kind || len(s.terms) != len(other.terms) {
		return false
	}

	for _, kind := range []argKind{argCf, argTrig} {
		mine, theirs := s.symbols(kind), other.symbols(kind)
		if len(mine) != len(theirs) {
			return false
		}

		for pos := range mine {
			if !mine[pos].Equal(theirs[pos]) {
				return false
			}
		}
	}

	for pos, n := range s.linArgs {
		if other.linArgs[pos] != n {
			return false
		}
	}

	for _, t := range s.terms {
		pos, ok := other.index[t.Key()]
		if !ok {
			return false
		}

		if !t.Cf.Equal(other.terms[pos].Cf, tol) {
			return false
		}
	}

	return true
}

func (s *Series) ratioToLeading(v float64) float64 {
	return s.Norm() / math.Abs(v)
}
