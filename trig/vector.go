package trig

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Vector holds the integer multipliers of the trigonometric arguments of one term.
// It is a value type: copies must go through Clone.
type Vector []int16

func NewVector(width int) Vector {
	return make(Vector, width)
}

func FromInts(ns ...int) Vector {
	v := make(Vector, len(ns))
	for idx, n := range ns {
		v[idx] = narrow(n)
	}

	return v
}

func (v Vector) Width() int {
	return len(v)
}

func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}

	c := make(Vector, len(v))
	copy(c, v)

	return c
}

func (v Vector) At(idx int) int {
	return int(v[idx])
}

func (v Vector) Set(idx, n int) {
	v[idx] = narrow(n)
}

// Combine writes v-other into outMinus and v+other into outPlus in one pass.
// The shorter operand is treated as zero padded.
func (v Vector) Combine(other Vector, outMinus, outPlus Vector) {
	w := len(v)
	if len(other) > w {
		w = len(other)
	}

	if len(outMinus) < w || len(outPlus) < w {
		panic(fmt.Sprintf("trig: combine output width %d/%d below %d", len(outMinus), len(outPlus), w))
	}

	var a, b int

	for idx := 0; idx < w; idx++ {
		a, b = 0, 0

		if idx < len(v) {
			a = int(v[idx])
		}

		if idx < len(other) {
			b = int(other[idx])
		}

		outMinus[idx] = narrow(a - b)
		outPlus[idx] = narrow(a + b)
	}

	for idx := w; idx < len(outMinus); idx++ {
		outMinus[idx] = 0
	}

	for idx := w; idx < len(outPlus); idx++ {
		outPlus[idx] = 0
	}
}

func narrow(n int) int16 {
	if n > math.MaxInt16 || n < math.MinInt16 {
		panic(fmt.Sprintf("trig: multiplier %d out of int16 range", n))
	}

	return int16(n)
}

func (v Vector) Negate() {
	for idx := range v {
		v[idx] = narrow(-int(v[idx]))
	}
}

// Sign returns the sign of the first non-zero multiplier; the zero vector is positive.
func (v Vector) Sign() int {
	for _, n := range v {
		if n > 0 {
			return 1
		}

		if n < 0 {
			return -1
		}
	}

	return 1
}

func (v Vector) IsZero() bool {
	for _, n := range v {
		if n != 0 {
			return false
		}
	}

	return true
}

func (v Vector) Widen(width int) Vector {
	if width < len(v) {
		panic(fmt.Sprintf("trig: cannot narrow vector from %d to %d", len(v), width))
	}

	if width == len(v) {
		return v
	}

	nv := make(Vector, width)
	copy(nv, v)

	return nv
}

func (v Vector) Prepend(n int) Vector {
	if n < 0 {
		panic("trig: negative prepend")
	}

	nv := make(Vector, len(v)+n)
	copy(nv[n:], v)

	return nv
}

// Permute moves slot i of v to slot layout[i] of a vector of the given width.
func (v Vector) Permute(layout []int, width int) Vector {
	if len(layout) != len(v) {
		panic(fmt.Sprintf("trig: layout size %d for vector of width %d", len(layout), len(v)))
	}

	nv := make(Vector, width)

	for idx, n := range v {
		nv[layout[idx]] = n
	}

	return nv
}

func (v Vector) Equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}

	for idx := range v {
		if v[idx] != other[idx] {
			return false
		}
	}

	return true
}

func (v Vector) Compare(other Vector) int {
	for idx := 0; idx < len(v) && idx < len(other); idx++ {
		if v[idx] < other[idx] {
			return -1
		}

		if v[idx] > other[idx] {
			return 1
		}
	}

	switch {
	case len(v) < len(other):
		return -1
	case len(v) > len(other):
		return 1
	}

	return 0
}

func (v Vector) AppendKey(b []byte) []byte {
	for _, n := range v {
		b = append(b, byte(uint16(n)), byte(uint16(n)>>8))
	}

	return b
}

func (v Vector) Key() string {
	return string(v.AppendKey(make([]byte, 0, 2*len(v))))
}

func (v Vector) Hash() uint64 {
	return xxhash.Sum64(v.AppendKey(make([]byte, 0, 2*len(v))))
}

// Degree is the sum of the absolute multipliers.
func (v Vector) Degree() int {
	d := 0

	for _, n := range v {
		if n < 0 {
			d -= int(n)
		} else {
			d += int(n)
		}
	}

	return d
}

func (v Vector) Dot(values []float64) float64 {
	if len(values) < len(v) {
		panic(fmt.Sprintf("trig: %d values for vector of width %d", len(values), len(v)))
	}

	var r float64

	for idx, n := range v {
		if n != 0 {
			r += float64(n) * values[idx]
		}
	}

	return r
}

func (v Vector) PlainString() string {
	var ss strings.Builder

	for idx, n := range v {
		if idx > 0 {
			ss.WriteByte('&')
		}

		ss.WriteString(strconv.Itoa(int(n)))
	}

	return ss.String()
}

// LaTeX renders the linear combination, e.g. "2\lambda-l". names must cover every slot.
func (v Vector) LaTeX(names []string) string {
	if len(names) < len(v) {
		panic(fmt.Sprintf("trig: %d names for vector of width %d", len(names), len(v)))
	}

	var ss strings.Builder

	for idx, n := range v {
		if n == 0 {
			continue
		}

		switch {
		case n == 1:
			if ss.Len() > 0 {
				ss.WriteByte('+')
			}
		case n == -1:
			ss.WriteByte('-')
		case n > 0 && ss.Len() > 0:
			ss.WriteByte('+')
			ss.WriteString(strconv.Itoa(int(n)))
		default:
			ss.WriteString(strconv.Itoa(int(n)))
		}

		ss.WriteString(names[idx])
	}

	if ss.Len() == 0 {
		return "0"
	}

	return ss.String()
}

// ParseMultiplier reads one decimal multiplier. Leading zeros are not a base prefix.
func ParseMultiplier(token string) (int16, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(token), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: multiplier %q", ErrBadMultiplier, token)
	}

	return int16(n), nil
}

func ParseTokens(tokens []string) (Vector, error) {
	v := make(Vector, len(tokens))

	for idx, token := range tokens {
		n, err := ParseMultiplier(token)
		if err != nil {
			return nil, err
		}

		v[idx] = n
	}

	return v, nil
}
