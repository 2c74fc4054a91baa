package series

import (
	"fmt"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libpoisson/symbol"
)

type argKind int

const (
	argCf argKind = iota
	argTrig
)

func (k argKind) String() string {
	if k == argCf {
		return "cf"
	}

	return "trig"
}

func (s *Series) args(kind argKind) *[]int {
	if kind == argCf {
		return &s.cfArgs
	}

	return &s.trigArgs
}

func (s *Series) symbols(kind argKind) []symbol.Symbol {
	args := *s.args(kind)
	syms := make([]symbol.Symbol, len(args))

	for pos, idx := range args {
		sym, ok := s.table.Get(idx)
		if !ok {
			panic(fmt.Sprintf("series: %s argument %d not in symbol table", kind, idx))
		}

		syms[pos] = sym
	}

	return syms
}

func (s *Series) AddCfArg(sym symbol.Symbol, prepend bool) (int, error) {
	return s.addArg(argCf, sym, prepend)
}

func (s *Series) AddTrigArg(sym symbol.Symbol, prepend bool) (int, error) {
	return s.addArg(argTrig, sym, prepend)
}

// addArg registers sym and gives it a slot in s, padding every stored term. A symbol
// already used by s keeps its slot.
func (s *Series) addArg(kind argKind, sym symbol.Symbol, prepend bool) (int, error) {
	idx, err := s.table.Register(sym)
	if err != nil {
		return -1, fmt.Errorf("%w: %s argument %q: %v", ErrIncompatibleArguments, kind, sym.Name, err)
	}

	args := s.args(kind)

	if !sym.IsPlaceholder() {
		for pos, i := range *args {
			if i == idx {
				return pos, nil
			}
		}
	}

	pos := len(*args)

	if prepend {
		pos = 0
		*args = append([]int{idx}, *args...)
	} else {
		*args = append(*args, idx)
	}

	width := len(*args)

	for _, t := range s.terms {
		switch {
		case kind == argTrig && prepend:
			t.Trig = t.Trig.Prepend(1)
		case kind == argTrig:
			t.Trig = t.Trig.Widen(width)
		case prepend:
			t.Cf.Prepend(1)
		default:
			t.Cf.Widen(width)
		}
	}

	if kind == argTrig {
		if prepend {
			s.linArgs = append([]int{0}, s.linArgs...)
		} else {
			s.linArgs = append(s.linArgs, 0)
		}
	}

	s.rebuildIndex()

	return pos, nil
}

type mergePlan struct {
	sameTable bool
	merged    []symbol.Symbol
	// layout maps the other series' slots to merged slots
	layout []int
	// appended lists the other series' slots new to the receiver
	appended []int
}

// MergeArguments gives s and other the same argument vectors: the arguments of s
// followed by those only other has. It returns false and changes nothing when the two
// declare a same-named symbol differently.
func (s *Series) MergeArguments(other *Series) bool {
	if s == other {
		return true
	}

	cfPlan, ok := s.planMerge(other, argCf)
	if !ok {
		return false
	}

	trigPlan, ok := s.planMerge(other, argTrig)
	if !ok {
		return false
	}

	s.applyMerge(other, argCf, cfPlan)
	s.applyMerge(other, argTrig, trigPlan)

	s.rebuildIndex()
	other.rebuildIndex()

	return true
}

func (s *Series) planMerge(other *Series, kind argKind) (*mergePlan, bool) {
	mine, theirs := *s.args(kind), *other.args(kind)
	mySyms, theirSyms := s.symbols(kind), other.symbols(kind)

	plan := &mergePlan{
		sameTable: s.table == other.table,
		merged:    append([]symbol.Symbol(nil), mySyms...),
		layout:    make([]int, len(theirs)),
	}

	matched := make([]bool, len(mine))

	for j, sym := range theirSyms {
		pos := -1

		for i := range mine {
			if plan.sameTable {
				if mine[i] == theirs[j] {
					pos = i

					break
				}

				continue
			}

			if sym.IsPlaceholder() || mySyms[i].Name != sym.Name {
				continue
			}

			if !mySyms[i].Equal(sym) {
				s.logConflict(kind, sym.Name)

				return nil, false
			}

			pos = i

			break
		}

		if pos < 0 {
			if !plan.sameTable && conflicts(s.table, sym) {
				s.logConflict(kind, sym.Name)

				return nil, false
			}

			pos = len(plan.merged)
			plan.merged = append(plan.merged, sym)
			plan.appended = append(plan.appended, j)
		} else {
			matched[pos] = true
		}

		plan.layout[j] = pos
	}

	if !plan.sameTable {
		for i, sym := range mySyms {
			if !matched[i] && conflicts(other.table, sym) {
				s.logConflict(kind, sym.Name)

				return nil, false
			}
		}
	}

	return plan, true
}

func conflicts(table symbol.Table, sym symbol.Symbol) bool {
	if sym.IsPlaceholder() {
		return false
	}

	idx, ok := table.Resolve(sym.Name)
	if !ok {
		return false
	}

	existing, _ := table.Get(idx)

	return !existing.Equal(sym)
}

func (s *Series) logConflict(kind argKind, name string) {
	s.logger.WithFields(l.StringField("kind", kind.String()), l.StringField("name", name)).
		Error("merge arguments: conflicting symbol definitions")
}

func mustRegister(table symbol.Table, sym symbol.Symbol) int {
	idx, err := table.Register(sym)
	if err != nil {
		panic(fmt.Sprintf("series: register %q after merge check: %v", sym.Name, err))
	}

	return idx
}

func (s *Series) applyMerge(other *Series, kind argKind, plan *mergePlan) {
	mine, theirs := s.args(kind), other.args(kind)
	width := len(plan.merged)

	myIdx := append([]int(nil), *mine...)

	for _, j := range plan.appended {
		if plan.sameTable {
			myIdx = append(myIdx, (*theirs)[j])
		} else {
			myIdx = append(myIdx, mustRegister(s.table, plan.merged[plan.layout[j]]))
		}
	}

	theirIdx := make([]int, width)
	filled := make([]bool, width)

	for j, pos := range plan.layout {
		theirIdx[pos] = (*theirs)[j]
		filled[pos] = true
	}

	for pos := range theirIdx {
		if filled[pos] {
			continue
		}

		if plan.sameTable {
			theirIdx[pos] = (*mine)[pos]
		} else {
			theirIdx[pos] = mustRegister(other.table, plan.merged[pos])
		}
	}

	*mine, *theirs = myIdx, theirIdx

	for _, t := range s.terms {
		if kind == argTrig {
			t.Trig = t.Trig.Widen(width)
		} else {
			t.Cf.Widen(width)
		}
	}

	for _, t := range other.terms {
		if kind == argTrig {
			t.Trig = t.Trig.Permute(plan.layout, width)
		} else {
			t.Cf.Permute(plan.layout, width)
		}
	}

	if kind == argTrig {
		linArgs := make([]int, width)
		copy(linArgs, s.linArgs)
		s.linArgs = linArgs

		linArgs = make([]int, width)
		for j, n := range other.linArgs {
			linArgs[plan.layout[j]] = n
		}

		other.linArgs = linArgs
	}
}
