package series

import (
	"fmt"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libpoisson/coefficient"
	"github.com/sgostarter/libpoisson/symbol"
	"github.com/sgostarter/libpoisson/trig"
)

// Series is a sum of unique terms keyed by (flavour, trig vector) plus a secular
// linear part. Series are not safe for concurrent mutation.
type Series struct {
	logger l.Wrapper
	cfg    *Config
	table  symbol.Table
	kind   coefficient.Kind

	cfArgs   []int
	trigArgs []int
	linArgs  []int

	terms []*Term
	index map[string]int

	views map[OrderBy][]*Term
}

func New(table symbol.Table, kind coefficient.Kind, opts ...Option) *Series {
	if table == nil {
		panic("series: nil symbol table")
	}

	o := optionNew(opts...)

	return &Series{
		logger: o.logger.WithFields(l.StringField(l.ClsKey, "Series")),
		cfg:    o.cfg,
		table:  table,
		kind:   kind,
		index:  make(map[string]int),
	}
}

func NewFromFloat(table symbol.Table, kind coefficient.Kind, v float64, opts ...Option) *Series {
	s := New(table, kind, opts...)
	s.AddConstant(v)

	return s
}

func NewFromInt(table symbol.Table, kind coefficient.Kind, n int, opts ...Option) *Series {
	return NewFromFloat(table, kind, float64(n), opts...)
}

// NewFromCoefficient parses an inline coefficient; polynomial arguments it uses become
// placeholder coefficient arguments.
func NewFromCoefficient(table symbol.Table, kind coefficient.Kind, str string, opts ...Option) (*Series, error) {
	cf, err := coefficient.Parse(kind, str)
	if err != nil {
		return nil, err
	}

	s := New(table, kind, opts...)

	for idx := 0; idx < cf.Width(); idx++ {
		if _, err = s.AddCfArg(symbol.New(""), false); err != nil {
			return nil, err
		}
	}

	s.Insert(NewTerm(cf, trig.NewVector(0), Cos), true)

	return s, nil
}

// NewFromSymbol returns the series equal to sym: a coefficient argument x for
// polynomial series, a secular linear argument for scalar ones.
func NewFromSymbol(table symbol.Table, kind coefficient.Kind, sym symbol.Symbol, opts ...Option) (*Series, error) {
	s := New(table, kind, opts...)

	if kind == coefficient.KindPolynomial {
		pos, err := s.AddCfArg(sym, false)
		if err != nil {
			return nil, err
		}

		s.Insert(NewTerm(coefficient.NewPolynomialSymbol(pos, len(s.cfArgs)), trig.NewVector(0), Cos), true)

		return s, nil
	}

	pos, err := s.AddTrigArg(sym, false)
	if err != nil {
		return nil, err
	}

	s.linArgs[pos] = 1

	return s, nil
}

func (s *Series) Kind() coefficient.Kind {
	return s.kind
}

func (s *Series) Table() symbol.Table {
	return s.table
}

func (s *Series) Config() *Config {
	return s.cfg
}

func (s *Series) Len() int {
	return len(s.terms)
}

// Terms returns the stored terms; they are owned by s and must not be mutated.
func (s *Series) Terms() []*Term {
	return append([]*Term(nil), s.terms...)
}

func (s *Series) LinArgs() []int {
	return append([]int(nil), s.linArgs...)
}

func (s *Series) CfArgs() []symbol.Symbol {
	return s.symbols(argCf)
}

func (s *Series) TrigArgs() []symbol.Symbol {
	return s.symbols(argTrig)
}

func (s *Series) hasLinArgs() bool {
	for _, n := range s.linArgs {
		if n != 0 {
			return true
		}
	}

	return false
}

// IsEmpty reports a series with no terms and no linear part.
func (s *Series) IsEmpty() bool {
	return len(s.terms) == 0 && !s.hasLinArgs()
}

func (s *Series) Clone() *Series {
	c := s.emptyLike()
	copy(c.linArgs, s.linArgs)

	c.terms = make([]*Term, len(s.terms))
	for idx, t := range s.terms {
		c.terms[idx] = t.Clone()
		c.index[t.Key()] = idx
	}

	return c
}

// emptyLike returns a series with the arguments of s and nothing else.
func (s *Series) emptyLike() *Series {
	return &Series{
		logger:   s.logger,
		cfg:      s.cfg,
		table:    s.table,
		kind:     s.kind,
		cfArgs:   append([]int(nil), s.cfArgs...),
		trigArgs: append([]int(nil), s.trigArgs...),
		linArgs:  make([]int, len(s.linArgs)),
		index:    make(map[string]int),
	}
}

// Clear drops every term and the linear part; arguments stay registered.
func (s *Series) Clear() {
	s.terms = nil
	s.index = make(map[string]int)

	for idx := range s.linArgs {
		s.linArgs[idx] = 0
	}

	s.touch()
}

func (s *Series) Swap(other *Series) {
	*s, *other = *other, *s
}

func (s *Series) touch() {
	s.views = nil
}

func (s *Series) ctx() *coefficient.Context {
	return &coefficient.Context{
		NumericalZero: s.cfg.NumericalZero,
		Limits:        s.exponentLimits(),
	}
}

// Insert merges a copy of t into s, adding its coefficient when sign is true and
// subtracting it otherwise. t may be narrower than s but never wider.
func (s *Series) Insert(t *Term, sign bool) {
	ctx := s.ctx()

	if t.IsIgnorable(ctx) {
		return
	}

	s.insert(t.Clone(), sign, ctx)
}

// insert takes ownership of t.
func (s *Series) insert(t *Term, sign bool, ctx *coefficient.Context) {
	if t.IsIgnorable(ctx) {
		return
	}

	s.conform(t)

	key := t.Key()

	if pos, ok := s.index[key]; ok {
		existing := s.terms[pos]
		existing.Cf.Add(t.Cf, sign, ctx)

		if existing.IsIgnorable(ctx) {
			s.erase(pos)
		}

		s.touch()

		return
	}

	if !sign {
		t.Cf.Negate()
	}

	s.index[key] = len(s.terms)
	s.terms = append(s.terms, t)
	s.touch()
}

func (s *Series) conform(t *Term) {
	if t.Cf.Kind() != s.kind {
		v, ok := t.Cf.NumericValue()
		if !ok {
			panic(fmt.Sprintf("series: %s coefficient in %s series", t.Cf.Kind(), s.kind))
		}

		t.Cf = coefficient.New(s.kind, v, len(s.cfArgs))
	}

	if t.Trig.Width() > len(s.trigArgs) {
		panic(fmt.Sprintf("series: term trig width %d above %d arguments", t.Trig.Width(), len(s.trigArgs)))
	}

	t.Trig = t.Trig.Widen(len(s.trigArgs))

	if s.kind == coefficient.KindPolynomial {
		if t.Cf.Width() > len(s.cfArgs) {
			panic(fmt.Sprintf("series: coefficient width %d above %d arguments", t.Cf.Width(), len(s.cfArgs)))
		}

		t.Cf.Widen(len(s.cfArgs))
	}
}

func (s *Series) erase(pos int) {
	delete(s.index, s.terms[pos].Key())

	last := len(s.terms) - 1
	if pos != last {
		s.terms[pos] = s.terms[last]
		s.index[s.terms[pos].Key()] = pos
	}

	s.terms[last] = nil
	s.terms = s.terms[:last]
	s.touch()
}

func (s *Series) eraseKey(key string) bool {
	pos, ok := s.index[key]
	if ok {
		s.erase(pos)
	}

	return ok
}

func (s *Series) purge(ctx *coefficient.Context) {
	for pos := len(s.terms) - 1; pos >= 0; pos-- {
		if s.terms[pos].IsIgnorable(ctx) {
			s.erase(pos)
		}
	}
}

func (s *Series) rebuildIndex() {
	s.index = make(map[string]int, len(s.terms))

	for idx, t := range s.terms {
		s.index[t.Key()] = idx
	}

	s.touch()
}

func (s *Series) constantKey() string {
	return (&Term{Trig: trig.NewVector(len(s.trigArgs)), Flavour: Cos}).Key()
}
