package series

import "sort"

type OrderBy int

const (
	// OrderNorm is decreasing coefficient norm at the reference time.
	OrderNorm OrderBy = iota
	// OrderMinDegree is increasing minimum coefficient degree, then decreasing norm.
	OrderMinDegree
	// OrderKey is cosines before sines, then trig vectors in lexicographic order.
	OrderKey
)

type rankedTerm struct {
	t    *Term
	norm float64
	deg  int
}

func compareKeys(a, b *Term) int {
	if a.Flavour != b.Flavour {
		if a.Flavour {
			return -1
		}

		return 1
	}

	return a.Trig.Compare(b.Trig)
}

// SortedTerms returns a view of the stored terms in the given order. Views are rebuilt
// lazily after the series changes; the returned slice must not be modified.
func (s *Series) SortedTerms(by OrderBy) []*Term {
	if ts, ok := s.views[by]; ok {
		return ts
	}

	values := s.normValues()
	rs := make([]rankedTerm, len(s.terms))

	for idx, t := range s.terms {
		rs[idx] = rankedTerm{
			t:    t,
			norm: t.Norm(values),
			deg:  t.Cf.MinDegree(),
		}
	}

	sort.Slice(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]

		switch by {
		case OrderNorm:
			if a.norm != b.norm {
				return a.norm > b.norm
			}
		case OrderMinDegree:
			if a.deg != b.deg {
				return a.deg < b.deg
			}

			if a.norm != b.norm {
				return a.norm > b.norm
			}
		}

		return compareKeys(a.t, b.t) < 0
	})

	ts := make([]*Term, len(rs))
	for idx, r := range rs {
		ts[idx] = r.t
	}

	if s.views == nil {
		s.views = make(map[OrderBy][]*Term)
	}

	s.views[by] = ts

	return ts
}
