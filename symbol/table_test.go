package symbol

import (
	"testing"

	"github.com/sgostarter/i/l"
	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	table := NewTable(l.NewConsoleLoggerWrapper())

	x, err := table.Register(New("x", 1, 2))
	assert.Nil(t, err)
	assert.Equal(t, 0, x)

	y, err := table.Register(New("y"))
	assert.Nil(t, err)
	assert.Equal(t, 1, y)

	idx, err := table.Register(New("x", 1, 2, 0))
	assert.Nil(t, err)
	assert.Equal(t, x, idx)

	_, err = table.Register(New("x", 1, 3))
	assert.ErrorIs(t, err, ErrConflict)

	p1, err := table.Register(New(""))
	assert.Nil(t, err)

	p2, err := table.Register(New(""))
	assert.Nil(t, err)
	assert.NotEqual(t, p1, p2)
	assert.Equal(t, 4, table.Len())

	_, ok := table.Resolve("")
	assert.False(t, ok)

	idx, ok = table.Resolve("y")
	assert.True(t, ok)
	assert.Equal(t, y, idx)

	assert.InDelta(t, 1+2*3.0, table.Evaluate(x, 3), 1e-15)
	assert.EqualValues(t, 0, table.Evaluate(y, 3))

	_, ok = table.Get(10)
	assert.False(t, ok)
}

func TestSymbol(t *testing.T) {
	s := New("l", 0.5, 2, 1)
	assert.InDelta(t, 0.5+2*2+4.0, s.Eval(2), 1e-15)
	assert.EqualValues(t, 0.5, s.Phase())
	assert.EqualValues(t, 2, s.Frequency())
	assert.Equal(t, "0.5;2;1", s.PolyEvalString())

	vs, err := ParsePolyEval("0.5; 2;1;")
	assert.Nil(t, err)
	assert.EqualValues(t, []float64{0.5, 2, 1}, vs)

	_, err = ParsePolyEval("a;b")
	assert.ErrorIs(t, err, ErrBadSymbol)

	assert.True(t, s.Equal(New("l", 0.5, 2, 1, 0)))
	assert.False(t, s.Equal(New("m", 0.5, 2, 1)))
	assert.True(t, New("").IsPlaceholder())
}
