package coefficient

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"
)

// Polynomial is a sparse sum of monomials over Width() coefficient arguments,
// keyed by exponent vector. Zero monomials never stay stored.
type Polynomial struct {
	width     int
	monomials map[string]*Monomial
}

func NewPolynomial(width int) *Polynomial {
	return &Polynomial{
		width:     width,
		monomials: make(map[string]*Monomial),
	}
}

func NewPolynomialConstant(v float64, width int) *Polynomial {
	p := NewPolynomial(width)
	p.InsertMonomial(NewMonomial(v, nil), true, nil)

	return p
}

// NewPolynomialSymbol returns x_idx over width arguments.
func NewPolynomialSymbol(idx, width int) *Polynomial {
	if idx < 0 || idx >= width {
		panic(fmt.Sprintf("coefficient: symbol slot %d out of width %d", idx, width))
	}

	exps := make([]int, width)
	exps[idx] = 1

	p := NewPolynomial(width)
	p.InsertMonomial(NewMonomial(1, nil, exps...), true, nil)

	return p
}

func (p *Polynomial) Kind() Kind {
	return KindPolynomial
}

func (p *Polynomial) Clone() Coefficient {
	return p.clone()
}

func (p *Polynomial) clone() *Polynomial {
	c := &Polynomial{
		width:     p.width,
		monomials: make(map[string]*Monomial, len(p.monomials)),
	}

	for k, m := range p.monomials {
		c.monomials[k] = m.Clone()
	}

	return c
}

func (p *Polynomial) Len() int {
	return len(p.monomials)
}

// Monomials returns the stored monomials in degree order. The slice elements are
// the stored values and must not be mutated.
func (p *Polynomial) Monomials() []*Monomial {
	ms := make([]*Monomial, 0, len(p.monomials))
	for _, m := range p.monomials {
		ms = append(ms, m)
	}

	sort.Slice(ms, func(i, j int) bool {
		return ms[i].compare(ms[j]) < 0
	})

	return ms
}

func (p *Polynomial) Width() int {
	return p.width
}

func (p *Polynomial) Widen(width int) {
	if width < p.width {
		panic(fmt.Sprintf("coefficient: cannot narrow polynomial from %d to %d", p.width, width))
	}

	if width == p.width {
		return
	}

	p.rebuild(width, func(exps []int16) []int16 {
		return widenExponents(exps, width)
	})
}

func (p *Polynomial) Prepend(n int) {
	if n <= 0 {
		return
	}

	p.rebuild(p.width+n, func(exps []int16) []int16 {
		ne := make([]int16, len(exps)+n)
		copy(ne[n:], exps)

		return ne
	})
}

func (p *Polynomial) Permute(layout []int, width int) {
	if len(layout) != p.width {
		panic(fmt.Sprintf("coefficient: layout size %d for polynomial of width %d", len(layout), p.width))
	}

	p.rebuild(width, func(exps []int16) []int16 {
		ne := make([]int16, width)
		for idx, e := range exps {
			ne[layout[idx]] = e
		}

		return ne
	})
}

func (p *Polynomial) rebuild(width int, fn func([]int16) []int16) {
	ms := make(map[string]*Monomial, len(p.monomials))

	for _, m := range p.monomials {
		m.Exponents = fn(m.Exponents)
		ms[m.key()] = m
	}

	p.width = width
	p.monomials = ms
}

func (p *Polynomial) IsZero(ctx *Context) bool {
	tol := ctx.Zero()

	for _, m := range p.monomials {
		if !m.isZero(tol) {
			return false
		}
	}

	return true
}

// InsertMonomial merges m (negated when sign is false) into p. When the numeric factors
// are equal or opposite the merge happens on the exact rational factors, otherwise on the
// numeric factor scaled by the rational ratio.
func (p *Polynomial) InsertMonomial(m *Monomial, sign bool, ctx *Context) {
	tol := ctx.Zero()

	if m.isZero(tol) {
		return
	}

	if len(m.Exponents) > p.width {
		panic(fmt.Sprintf("coefficient: monomial width %d above polynomial width %d", len(m.Exponents), p.width))
	}

	key := exponentsKey(widenExponents(m.Exponents, p.width))

	existing, ok := p.monomials[key]
	if !ok {
		c := m.Clone()
		c.Exponents = widenExponents(c.Exponents, p.width)

		if !sign {
			c.Numeric = -c.Numeric
		}

		c.normalize()
		p.monomials[key] = c

		return
	}

	n2 := m.Numeric
	if !sign {
		n2 = -n2
	}

	n1 := existing.Numeric

	switch {
	case math.Abs(n1-n2) < tol:
		existing.Rational.Add(existing.Rational, m.Rational)
	case math.Abs(n1+n2) < tol:
		existing.Rational.Sub(existing.Rational, m.Rational)
	default:
		ratio, _ := new(big.Rat).Quo(m.Rational, existing.Rational).Float64()
		existing.Numeric = n1 + n2*ratio
	}

	existing.normalize()

	if existing.isZero(tol) {
		delete(p.monomials, key)
	}
}

func (p *Polynomial) Add(other Coefficient, sign bool, ctx *Context) {
	o, ok := other.(*Polynomial)
	if !ok {
		p.InsertMonomial(NewMonomial(mustNumeric(other), nil), sign, ctx)

		return
	}

	if o.width > p.width {
		p.Widen(o.width)
	}

	for _, m := range o.Monomials() {
		p.InsertMonomial(m, sign, ctx)
	}
}

func (p *Polynomial) MultiplyBy(other Coefficient, ctx *Context) {
	o, ok := other.(*Polynomial)
	if !ok {
		p.MultiplyFloat(mustNumeric(other), ctx)

		return
	}

	width := p.width
	if o.width > width {
		width = o.width
	}

	limits := ctx.limits()
	r := NewPolynomial(width)

	for _, m1 := range p.monomials {
		for _, m2 := range o.monomials {
			exps := make([]int16, width)
			copy(exps, m1.Exponents)

			for idx, e := range m2.Exponents {
				exps[idx] = narrowExponent(int(exps[idx]) + int(e))
			}

			if exceedsLimits(exps, limits) {
				continue
			}

			r.InsertMonomial(&Monomial{
				Numeric:   m1.Numeric * m2.Numeric,
				Rational:  new(big.Rat).Mul(m1.Rational, m2.Rational),
				Exponents: exps,
			}, true, ctx)
		}
	}

	p.width = r.width
	p.monomials = r.monomials
}

func exceedsLimits(exps []int16, limits []Limit) bool {
	for _, lim := range limits {
		if lim.Index < len(exps) && int(exps[lim.Index]) > lim.Max {
			return true
		}
	}

	return false
}

func (p *Polynomial) MultiplyFloat(x float64, ctx *Context) {
	tol := ctx.Zero()

	for k, m := range p.monomials {
		m.Numeric *= x

		if m.isZero(tol) {
			delete(p.monomials, k)
		}
	}
}

func (p *Polynomial) MultiplyRat(r *big.Rat, ctx *Context) {
	tol := ctx.Zero()

	for k, m := range p.monomials {
		m.Rational.Mul(m.Rational, r)
		m.normalize()

		if m.isZero(tol) {
			delete(p.monomials, k)
		}
	}
}

func (p *Polynomial) Negate() {
	for _, m := range p.monomials {
		m.Numeric = -m.Numeric
	}
}

// Truncate drops every monomial whose total degree exceeds maxDegree.
func (p *Polynomial) Truncate(maxDegree int) {
	for k, m := range p.monomials {
		if m.Degree() > maxDegree {
			delete(p.monomials, k)
		}
	}
}

func (p *Polynomial) checkValues(values []float64) {
	if values != nil && len(values) < p.width {
		panic(fmt.Sprintf("coefficient: %d values for polynomial of width %d", len(values), p.width))
	}
}

// Norm sums |monomial| with every argument weighted by |values[i]|; nil values weigh 1.
func (p *Polynomial) Norm(values []float64) float64 {
	p.checkValues(values)

	var r float64

	for _, m := range p.monomials {
		v := math.Abs(m.Value())
		if values != nil {
			v *= math.Abs(m.symbolsPart(values))
		}

		r += v
	}

	return r
}

func (p *Polynomial) Evaluate(values []float64) float64 {
	p.checkValues(values)

	var r float64

	for _, m := range p.Monomials() {
		v := m.Value()
		if values != nil {
			v *= m.symbolsPart(values)
		}

		r += v
	}

	return r
}

func (p *Polynomial) NumericValue() (float64, bool) {
	switch len(p.monomials) {
	case 0:
		return 0, true
	case 1:
		for _, m := range p.monomials {
			if m.IsConstant() {
				return m.Value(), true
			}
		}
	}

	return 0, false
}

// Leading returns the first monomial in degree order.
func (p *Polynomial) Leading() (*Monomial, bool) {
	if len(p.monomials) == 0 {
		return nil, false
	}

	return p.Monomials()[0], true
}

func (p *Polynomial) MinDegree() int {
	first := true
	d := 0

	for _, m := range p.monomials {
		if md := m.Degree(); first || md < d {
			d = md
			first = false
		}
	}

	return d
}

func (p *Polynomial) MinExponent(idx int) int {
	if idx < 0 || idx >= p.width {
		panic(fmt.Sprintf("coefficient: exponent slot %d out of width %d", idx, p.width))
	}

	first := true
	e := 0

	for _, m := range p.monomials {
		if me := int(m.Exponents[idx]); first || me < e {
			e = me
			first = false
		}
	}

	return e
}

func (p *Polynomial) Equal(other Coefficient, tol float64) bool {
	o, ok := other.(*Polynomial)
	if !ok {
		v, numeric := p.NumericValue()
		ov, oNumeric := other.NumericValue()

		return numeric && oNumeric && math.Abs(v-ov) <= tol
	}

	if p.width != o.width || len(p.monomials) != len(o.monomials) {
		return false
	}

	for k, m := range p.monomials {
		om, exists := o.monomials[k]
		if !exists {
			return false
		}

		if math.Abs(m.Value()-om.Value()) > tol {
			return false
		}
	}

	return true
}

func (p *Polynomial) PlainString() string {
	if len(p.monomials) == 0 {
		return "0"
	}

	ms := p.Monomials()
	parts := make([]string, len(ms))

	for idx, m := range ms {
		parts[idx] = m.PlainString()
	}

	return strings.Join(parts, "&")
}

func (p *Polynomial) LaTeX(names []string) string {
	if len(p.monomials) == 0 {
		return "0"
	}

	var ss strings.Builder

	for idx, m := range p.Monomials() {
		s := m.LaTeX(names)
		if idx > 0 && !strings.HasPrefix(s, "-") {
			ss.WriteByte('+')
		}

		ss.WriteString(s)
	}

	return ss.String()
}
