package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldIdentities(t *testing.T) {
	g := NewGraph()
	b := g.NewBlock("entry")
	mode := NewIntMode(32, true)
	x := g.NewAddress(b, mode)

	one := g.NewConst(b, mode, NewTarval(mode, 1))
	zero := g.NewConst(b, mode, ZeroVal(mode))
	allOnes := g.NewConst(b, mode, AllOnesVal(mode))

	t.Run("MulByOneIsIdentity", func(t *testing.T) {
		assert.True(t, SameNode(x, g.NewMul(b, x, one)))
	})

	t.Run("MulByZeroIsZero", func(t *testing.T) {
		result := g.NewMul(b, x, zero)
		assert.True(t, result.IsConst())
		assert.True(t, result.ConstValue().IsZero())
	})

	t.Run("AndSelfIsSelf", func(t *testing.T) {
		assert.True(t, SameNode(x, g.NewAnd(b, x, x)))
	})

	t.Run("AndAllOnesIsSelf", func(t *testing.T) {
		assert.True(t, SameNode(x, g.NewAnd(b, x, allOnes)))
	})

	t.Run("OrSelfIsSelf", func(t *testing.T) {
		assert.True(t, SameNode(x, g.NewOr(b, x, x)))
	})

	t.Run("OrAllOnesIsAllOnes", func(t *testing.T) {
		result := g.NewOr(b, x, allOnes)
		assert.True(t, result.IsConst())
		assert.True(t, result.ConstValue().IsAllOnes())
	})

	t.Run("EorSelfIsZero", func(t *testing.T) {
		result := g.NewEor(b, x, x)
		assert.True(t, result.IsConst())
		assert.True(t, result.ConstValue().IsZero())
	})

	t.Run("ShlByZeroIsIdentity", func(t *testing.T) {
		assert.True(t, SameNode(x, g.NewShl(b, x, zero)))
	})
}

func TestFoldConv(t *testing.T) {
	g := NewGraph()
	b := g.NewBlock("entry")
	mode8 := NewIntMode(8, false)
	mode16 := NewIntMode(16, false)

	c := g.NewConst(b, mode8, NewTarval(mode8, 200))
	converted := g.NewConv(b, c, mode16)

	assert.True(t, converted.IsConst())
	assert.Equal(t, uint64(200), converted.ConstValue().Uint64())
}
