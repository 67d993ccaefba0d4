package reassoc

import (
	"testing"

	"kanso/internal/ir"

	"github.com/stretchr/testify/assert"
)

func TestAsXorPlain(t *testing.T) {
	g := ir.NewGraph()
	b := g.NewBlock("entry")
	mode := ir.NewIntMode(32, true)
	a := g.NewAddress(b, mode)
	c := g.NewAddress(b, mode)
	xor := g.NewNode(ir.OpEor, mode, b, a, c)

	found, flipped, ok := asXor(xor)
	assert.True(t, ok)
	assert.False(t, flipped)
	assert.True(t, ir.SameNode(xor, found))
}

func TestAsXorNotWrapped(t *testing.T) {
	g := ir.NewGraph()
	b := g.NewBlock("entry")
	mode := ir.NewIntMode(32, true)
	a := g.NewAddress(b, mode)
	c := g.NewAddress(b, mode)
	xor := g.NewNode(ir.OpEor, mode, b, a, c)
	wrapped := g.NewNot(b, xor)

	found, flipped, ok := asXor(wrapped)
	assert.True(t, ok)
	assert.True(t, flipped)
	assert.True(t, ir.SameNode(xor, found))
}

func TestStripNot(t *testing.T) {
	g := ir.NewGraph()
	b := g.NewBlock("entry")
	mode := ir.NewIntMode(32, true)
	a := g.NewAddress(b, mode)
	notA := g.NewNot(b, a)

	n, flipped := stripNot(notA)
	assert.True(t, flipped)
	assert.True(t, ir.SameNode(a, n))

	n2, flipped2 := stripNot(a)
	assert.False(t, flipped2)
	assert.True(t, ir.SameNode(a, n2))
}

// TestXorEqualityS5 exercises spec §8 scenario S5:
// And(Xor(a,b), Or(a,b)) -> And(Xor(a,b), Or(a, Not(a))).
func TestXorEqualityS5(t *testing.T) {
	g := ir.NewGraph()
	b := g.NewBlock("entry")
	mode := ir.NewIntMode(32, true)
	a := g.NewAddress(b, mode)
	bb := g.NewAddress(b, mode)

	xor := g.NewNode(ir.OpEor, mode, b, a, bb)
	or := g.NewNode(ir.OpOr, mode, b, a, bb)
	n := g.NewNode(ir.OpAnd, mode, b, xor, or)

	tryXorEquality(g, n)

	assert.True(t, ir.SameNode(a, or.In(0)))
	assert.True(t, or.In(1).IsNot())
	assert.True(t, ir.SameNode(a, or.In(1).In(0)))
}

// TestXorEqualityLiteralOperand exercises the XOR-with-literal branch: the
// shared operand is substituted by the literal directly, no NOT wrapper.
func TestXorEqualityLiteralOperand(t *testing.T) {
	g := ir.NewGraph()
	b := g.NewBlock("entry")
	mode := ir.NewIntMode(32, true)
	a := g.NewAddress(b, mode)
	z := g.NewAddress(b, mode)
	k := g.NewConst(b, mode, ir.NewTarval(mode, 9))

	xor := g.NewNode(ir.OpEor, mode, b, a, k)
	and := g.NewNode(ir.OpAnd, mode, b, a, z)
	n := g.NewNode(ir.OpOr, mode, b, xor, and)

	tryXorEquality(g, n)

	assert.True(t, and.In(0).IsConst())
	assert.Equal(t, uint64(9), and.In(0).ConstValue().Uint64())
	assert.True(t, ir.SameNode(z, and.In(1)))
}

func TestRunXorEqualitySkipsWithoutXorOperand(t *testing.T) {
	g := ir.NewGraph()
	b := g.NewBlock("entry")
	mode := ir.NewIntMode(32, true)
	a := g.NewAddress(b, mode)
	z := g.NewAddress(b, mode)
	n := g.NewNode(ir.OpAnd, mode, b, a, z)

	runXorEquality(g)

	assert.True(t, ir.SameNode(a, n.In(0)))
	assert.True(t, ir.SameNode(z, n.In(1)))
}
