// nolint
package series

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sgostarter/libpoisson/coefficient"
	"github.com/sgostarter/libpoisson/symbol"
	"github.com/sgostarter/libpoisson/trig"
	"github.com/stretchr/testify/assert"
)

const sampleSeries = `# sample
[cf_arg]
name=a
poly_eval=1;0.5
[cf_arg]
name=b
poly_eval=0;2
[trig_arg]
name=x
poly_eval=0.25;3

[lin_args]
0
[data]
1.5:1/3:[1 0]&-2:1:[0 2]&1&c
0.5&2&s
1:1:[1 1]&0&c
`

func TestLoadPrintRoundTrip(t *testing.T) {
	table := symbol.NewTable(nil)

	s, err := Load(strings.NewReader(sampleSeries), table, coefficient.KindPolynomial)
	assert.Nil(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Len(t, s.CfArgs(), 2)
	assert.Equal(t, []symbol.Symbol{symbol.New("x", 0.25, 3)}, s.TrigArgs())
	assertWidths(t, s)

	pos := s.index[NewTerm(nil, trig.FromInts(1), Cos).Key()]
	assert.Equal(t, "1.5:1/3:[1 0]&-2:1:[0 2]", s.terms[pos].Cf.PlainString())

	var b bytes.Buffer
	assert.Nil(t, s.Print(&b, PrintPlain))

	again, err := Load(bytes.NewReader(b.Bytes()), table, coefficient.KindPolynomial)
	assert.Nil(t, err)
	assert.True(t, s.Equal(again, 0))
	assert.Equal(t, b.String(), again.String())

	other, err := Load(bytes.NewReader(b.Bytes()), symbol.NewTable(nil), coefficient.KindPolynomial)
	assert.Nil(t, err)
	assert.True(t, s.Equal(other, 0))
	assert.InDelta(t, s.Evaluate(0.6), other.Evaluate(0.6), 1e-12)
}

func TestLoadSkipsMalformed(t *testing.T) {
	text := `stray line
[trig_arg]
name=x
poly_eval=0;1
colour=blue
[foo]
bar=1
[data]
2&1&c
abc&1&c
1&1&x
1&q&c
lonely
3&0&1&s
`

	s, err := Load(strings.NewReader(text), symbol.NewTable(nil), coefficient.KindScalar)
	assert.Nil(t, err)
	assert.Equal(t, 2, s.Len())

	args := s.TrigArgs()
	assert.Len(t, args, 2)
	assert.Equal(t, "x", args[0].Name)
	assert.True(t, args[1].IsPlaceholder())
	assertWidths(t, s)

	assert.EqualValues(t, 2, termValue(t, s, trig.FromInts(1, 0), Cos))
	assert.EqualValues(t, 3, termValue(t, s, trig.FromInts(0, 1), Sin))
}

func TestLoadWidensLinearArguments(t *testing.T) {
	text := "[lin_args]\n1&-2\n[data]\n1&c\n"

	s, err := Load(strings.NewReader(text), symbol.NewTable(nil), coefficient.KindScalar)
	assert.Nil(t, err)
	assert.Equal(t, []int{1, -2}, s.LinArgs())
	assert.Len(t, s.TrigArgs(), 2)
	assert.Equal(t, 1, s.Len())
	assertWidths(t, s)
}

func TestLoadIntegerTokens(t *testing.T) {
	text := "[trig_arg]\nname=x\npoly_eval=0;1\n[lin_args]\n010\n[data]\n1&70000&c\n1&010&s\n1&0x10&c\n"

	s, err := Load(strings.NewReader(text), symbol.NewTable(nil), coefficient.KindScalar)
	assert.Nil(t, err)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []int{10}, s.LinArgs())
	assert.EqualValues(t, 1, termValue(t, s, trig.FromInts(10), Sin))
	assert.Equal(t, "[trig_arg]\nname=x\npoly_eval=0;1\n[lin_args]\n10\n[data]\n1&10&s\n", s.String())

	text = "[data]\n2:1:[40000]&1&c\n2:1:[010]&1&c\n"

	p, err := Load(strings.NewReader(text), symbol.NewTable(nil), coefficient.KindPolynomial)
	assert.Nil(t, err)
	assert.Equal(t, 1, p.Len())
	assert.Len(t, p.CfArgs(), 1)
	assert.Equal(t, "2:1:[10]", p.Terms()[0].Cf.PlainString())
}

func TestLoadConflict(t *testing.T) {
	table := symbol.NewTable(nil)
	_, err := table.Register(symbol.New("x", 1))
	assert.Nil(t, err)

	_, err = Load(strings.NewReader("[trig_arg]\nname=x\npoly_eval=0;1\n"), table, coefficient.KindScalar)
	assert.ErrorIs(t, err, ErrIncompatibleArguments)
}

func TestPrintLaTeX(t *testing.T) {
	s := scalarSeries(t, symbol.NewTable(nil), symbol.New("x", 0, 1))
	s.Insert(NewTerm(coefficient.NewScalar(2), trig.FromInts(1), Cos), true)

	var b bytes.Buffer
	assert.Nil(t, s.Print(&b, PrintLaTeX))
	assert.Equal(t, "\\begin{tabular}{rl}\n$2$&$\\cos\\left(x\\right)$\\\\\n\\end{tabular}\n", b.String())

	s.AddConstant(-0.5)
	s.linArgs[0] = -1

	b.Reset()
	assert.Nil(t, s.Print(&b, PrintLaTeX))
	assert.Contains(t, b.String(), "$-0.5$&\\\\\n")
	assert.Contains(t, b.String(), "$-x$&\\\\\n")
}

func TestPrintPlainLayout(t *testing.T) {
	s := scalarSeries(t, symbol.NewTable(nil), symbol.New("x", 0, 1))
	s.Insert(NewTerm(coefficient.NewScalar(2), trig.FromInts(1), Cos), true)
	s.Insert(NewTerm(coefficient.NewScalar(-0.5), trig.FromInts(2), Sin), true)

	assert.Equal(t, "[trig_arg]\nname=x\npoly_eval=0;1\n[lin_args]\n0\n[data]\n2&1&c\n-0.5&2&s\n", s.String())
}
