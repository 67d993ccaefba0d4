package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstDeduplication(t *testing.T) {
	g := NewGraph()
	b := g.NewBlock("entry")
	mode := NewIntMode(32, true)

	c1 := g.NewConst(b, mode, NewTarval(mode, 7))
	c2 := g.NewConst(b, mode, NewTarval(mode, 7))
	assert.True(t, SameNode(c1, c2))

	c3 := g.NewConst(b, mode, NewTarval(mode, 8))
	assert.False(t, SameNode(c1, c3))
}

func TestNewAddFoldsConstants(t *testing.T) {
	g := NewGraph()
	b := g.NewBlock("entry")
	mode := NewIntMode(32, true)

	c1 := g.NewConst(b, mode, NewTarval(mode, 3))
	c2 := g.NewConst(b, mode, NewTarval(mode, 4))
	sum := g.NewAdd(b, c1, c2)

	assert.True(t, sum.IsConst())
	assert.Equal(t, uint64(7), sum.ConstValue().Uint64())
}

func TestNewAddIdentityFoldsAwayZero(t *testing.T) {
	g := NewGraph()
	b := g.NewBlock("entry")
	mode := NewIntMode(32, true)

	x := g.NewAddress(b, mode)
	zero := g.NewConst(b, mode, ZeroVal(mode))
	result := g.NewAdd(b, x, zero)

	assert.True(t, SameNode(x, result))
}

func TestNewNotDoubleNegation(t *testing.T) {
	g := NewGraph()
	b := g.NewBlock("entry")
	mode := NewIntMode(32, true)

	x := g.NewAddress(b, mode)
	notX := g.NewNot(b, x)
	notNotX := g.NewNot(b, notX)

	assert.True(t, SameNode(x, notNotX))
}

func TestExchangeRewiresUsers(t *testing.T) {
	g := NewGraph()
	b := g.NewBlock("entry")
	mode := NewIntMode(32, true)

	x := g.NewAddress(b, mode)
	y := g.NewAddress(b, mode)
	add := g.NewAdd(b, x, y)
	z := g.NewAddress(b, mode)
	outer := g.NewAdd(b, add, z)
	replacement := g.NewAddress(b, mode)

	g.Exchange(add, replacement)

	assert.True(t, SameNode(outer.In(0), replacement))
	assert.Equal(t, 0, x.OutCount())
	assert.Equal(t, 0, y.OutCount())
	assert.Nil(t, add.Users())
}

func TestSetInMaintainsUserEdges(t *testing.T) {
	g := NewGraph()
	b := g.NewBlock("entry")
	mode := NewIntMode(32, true)

	x := g.NewAddress(b, mode)
	y := g.NewAddress(b, mode)
	z := g.NewAddress(b, mode)
	add := g.NewAdd(b, x, y)

	add.SetIn(1, z)
	assert.Equal(t, 0, y.OutCount())
	assert.Equal(t, 1, z.OutCount())
}
