package symbol

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Symbol is a named argument whose value at time t is the polynomial
// PolyEval[0] + PolyEval[1]*t + PolyEval[2]*t^2 + ...
type Symbol struct {
	Name     string    `json:"name" yaml:"name"`
	PolyEval []float64 `json:"polyEval,omitempty" yaml:"polyEval,omitempty"`
}

func New(name string, polyEval ...float64) Symbol {
	return Symbol{
		Name:     name,
		PolyEval: append([]float64(nil), polyEval...),
	}
}

func (s Symbol) IsPlaceholder() bool {
	return s.Name == ""
}

func (s Symbol) Eval(t float64) float64 {
	var r float64

	for idx := len(s.PolyEval) - 1; idx >= 0; idx-- {
		r = r*t + s.PolyEval[idx]
	}

	return r
}

// Phase is the value at t = 0, Frequency the first time derivative.
func (s Symbol) Phase() float64 {
	if len(s.PolyEval) == 0 {
		return 0
	}

	return s.PolyEval[0]
}

func (s Symbol) Frequency() float64 {
	if len(s.PolyEval) < 2 {
		return 0
	}

	return s.PolyEval[1]
}

func (s Symbol) Equal(other Symbol) bool {
	if s.Name != other.Name {
		return false
	}

	return samePolyEval(s.PolyEval, other.PolyEval)
}

// samePolyEval treats missing trailing entries as zero.
func samePolyEval(a, b []float64) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	for idx := 0; idx < n; idx++ {
		var x, y float64

		if idx < len(a) {
			x = a[idx]
		}

		if idx < len(b) {
			y = b[idx]
		}

		if x != y && !(math.IsNaN(x) && math.IsNaN(y)) {
			return false
		}
	}

	return true
}

func (s Symbol) PolyEvalString() string {
	parts := make([]string, len(s.PolyEval))
	for idx, v := range s.PolyEval {
		parts[idx] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	return strings.Join(parts, ";")
}

func ParsePolyEval(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ";")
	vs := make([]float64, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		v, err := cast.ToFloat64E(part)
		if err != nil {
			return nil, fmt.Errorf("%w: poly_eval %q", ErrBadSymbol, part)
		}

		vs = append(vs, v)
	}

	return vs, nil
}
