package coefficient

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Parse reads the inline form of a coefficient of the given kind. A polynomial is a
// list of "numeric:rational:[e1 e2 ...]" monomials joined by '&'; a bare number is
// accepted for either kind.
func Parse(kind Kind, s string) (Coefficient, error) {
	if kind == KindPolynomial {
		return ParsePolynomial(s)
	}

	return ParseScalar(s)
}

func ParsePolynomial(s string) (*Polynomial, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadCoefficient)
	}

	parts := strings.Split(s, "&")
	ms := make([]*Monomial, 0, len(parts))
	width := 0

	for _, part := range parts {
		m, err := ParseMonomial(part)
		if err != nil {
			return nil, err
		}

		if len(m.Exponents) > width {
			width = len(m.Exponents)
		}

		ms = append(ms, m)
	}

	p := NewPolynomial(width)
	for _, m := range ms {
		p.InsertMonomial(m, true, nil)
	}

	return p, nil
}

func ParseMonomial(s string) (*Monomial, error) {
	s = strings.TrimSpace(s)

	if !strings.Contains(s, ":") {
		v, err := cast.ToFloat64E(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadMonomial, s)
		}

		return NewMonomial(v, nil), nil
	}

	fields := strings.SplitN(s, ":", 3)
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrBadMonomial, s)
	}

	numeric, err := cast.ToFloat64E(strings.TrimSpace(fields[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: numeric factor %q", ErrBadMonomial, fields[0])
	}

	rational, ok := new(big.Rat).SetString(strings.TrimSpace(fields[1]))
	if !ok {
		return nil, fmt.Errorf("%w: rational factor %q", ErrBadMonomial, fields[1])
	}

	expField := strings.TrimSpace(fields[2])
	if !strings.HasPrefix(expField, "[") || !strings.HasSuffix(expField, "]") {
		return nil, fmt.Errorf("%w: exponents %q", ErrBadMonomial, fields[2])
	}

	tokens := strings.Fields(expField[1 : len(expField)-1])
	exps := make([]int, len(tokens))

	for idx, token := range tokens {
		e, err := strconv.ParseInt(token, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: exponent %q", ErrBadMonomial, token)
		}

		exps[idx] = int(e)
	}

	return NewMonomial(numeric, rational, exps...), nil
}

// IsMonomialToken reports whether s looks like the colon form of a monomial.
func IsMonomialToken(s string) bool {
	return strings.Count(s, ":") == 2 && strings.Contains(s, "[")
}
