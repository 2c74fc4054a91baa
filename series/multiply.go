package series

import (
	"fmt"
	"sort"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libpoisson/coefficient"
)

func (s *Series) exponentLimits() []coefficient.Limit {
	if s.cfg.Truncation != TruncationExponent || s.kind != coefficient.KindPolynomial || len(s.cfg.ExponentLimits) == 0 {
		return nil
	}

	names := make([]string, 0, len(s.cfg.ExponentLimits))
	for name := range s.cfg.ExponentLimits {
		names = append(names, name)
	}

	sort.Strings(names)

	syms := s.symbols(argCf)
	limits := make([]coefficient.Limit, 0, len(names))

	for _, name := range names {
		for pos, sym := range syms {
			if sym.Name == name {
				limits = append(limits, coefficient.Limit{Index: pos, Max: s.cfg.ExponentLimits[name]})

				break
			}
		}
	}

	return limits
}

// Multiply returns a * b, leaving both operands' terms untouched.
func Multiply(a, b *Series) (*Series, error) {
	r := a.Clone()

	if err := r.Mul(b); err != nil {
		return nil, err
	}

	return r, nil
}

type multiplyStats struct {
	pairs   int
	skipped int
}

// Mul replaces s with s * other. other is read from a snapshot, so s.Mul(s) squares s.
// Either operand having a linear part is an error.
func (s *Series) Mul(other *Series) error {
	if s.kind != other.kind {
		panic(fmt.Sprintf("series: multiply %s series by %s series", s.kind, other.kind))
	}

	if s.IsEmpty() || other.IsEmpty() {
		s.Clear()

		return nil
	}

	if s.hasLinArgs() || other.hasLinArgs() {
		return ErrLinearArguments
	}

	o := other.Clone()

	if !s.MergeArguments(o) {
		return ErrIncompatibleArguments
	}

	ctx := s.ctx()
	r := s.emptyLike()

	var stats multiplyStats

	mode := s.cfg.Truncation

	switch {
	case mode == TruncationNorm:
		s.mulNorm(r, o, ctx, &stats)
	case mode == TruncationExponent && len(ctx.Limits) > 0:
		s.mulExponent(r, o, ctx, &stats)
	default:
		mode = TruncationNone

		s.mulPlain(r, o, ctx, &stats)
	}

	s.logger.WithFields(l.StringField("mode", string(mode)), l.IntField("pairs", stats.pairs),
		l.IntField("skipped", stats.skipped), l.IntField("terms", len(r.terms))).Debug("multiply")

	s.terms, s.index = r.terms, r.index
	s.touch()

	return nil
}

func (s *Series) mulPair(r *Series, a, b *Term, ctx *coefficient.Context, stats *multiplyStats) {
	x, y := a.Multiply(b, ctx)

	r.insert(x, true, ctx)
	r.insert(y, true, ctx)

	stats.pairs++
}

func (s *Series) mulPlain(r, o *Series, ctx *coefficient.Context, stats *multiplyStats) {
	for _, a := range s.terms {
		for _, b := range o.terms {
			s.mulPair(r, a, b, ctx, stats)
		}
	}
}

// mulNorm visits both operands by decreasing norm and stops once the product of norms
// falls below normA*normB*relativePrecision / (2*|A|*|B|).
func (s *Series) mulNorm(r, o *Series, ctx *coefficient.Context, stats *multiplyStats) {
	values := s.normValues()
	la, lb := s.SortedTerms(OrderNorm), o.SortedTerms(OrderNorm)

	na, normA := termNorms(la, values)
	nb, normB := termNorms(lb, values)

	delta := normA * normB * s.cfg.RelativePrecision / (2 * float64(len(la)) * float64(len(lb)))

	for i, a := range la {
		if na[i]*nb[0] < delta {
			stats.skipped += (len(la) - i) * len(lb)

			break
		}

		for j, b := range lb {
			if na[i]*nb[j] < delta {
				stats.skipped += len(lb) - j

				break
			}

			s.mulPair(r, a, b, ctx, stats)
		}
	}
}

func termNorms(ts []*Term, values []float64) (norms []float64, total float64) {
	norms = make([]float64, len(ts))

	for idx, t := range ts {
		norms[idx] = t.Norm(values)
		total += norms[idx]
	}

	return
}

// mulExponent visits both operands by increasing minimum exponent of the first limited
// argument and skips pairs whose minimum exponents already pass a limit.
func (s *Series) mulExponent(r, o *Series, ctx *coefficient.Context, stats *multiplyStats) {
	primary := ctx.Limits[0]

	la, ea := byMinExponent(s.terms, primary.Index)
	lb, eb := byMinExponent(o.terms, primary.Index)

	for i, a := range la {
		if ea[i]+eb[0] > primary.Max {
			stats.skipped += (len(la) - i) * len(lb)

			break
		}

		for j, b := range lb {
			if ea[i]+eb[j] > primary.Max {
				stats.skipped += len(lb) - j

				break
			}

			if exceedsLimits(a, b, ctx.Limits[1:]) {
				stats.skipped++

				continue
			}

			s.mulPair(r, a, b, ctx, stats)
		}
	}
}

func byMinExponent(terms []*Term, slot int) ([]*Term, []int) {
	ts := append([]*Term(nil), terms...)
	exps := make(map[*Term]int, len(ts))

	for _, t := range ts {
		exps[t] = t.Cf.MinExponent(slot)
	}

	sort.SliceStable(ts, func(i, j int) bool {
		if exps[ts[i]] != exps[ts[j]] {
			return exps[ts[i]] < exps[ts[j]]
		}

		return compareKeys(ts[i], ts[j]) < 0
	})

	es := make([]int, len(ts))
	for idx, t := range ts {
		es[idx] = exps[t]
	}

	return ts, es
}

func exceedsLimits(a, b *Term, limits []coefficient.Limit) bool {
	for _, lim := range limits {
		if a.Cf.MinExponent(lim.Index)+b.Cf.MinExponent(lim.Index) > lim.Max {
			return true
		}
	}

	return false
}
