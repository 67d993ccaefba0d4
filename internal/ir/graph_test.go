package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildDiamond builds entry -> (left, right) -> join, returning the blocks
// in that order.
func buildDiamond(g *Graph) (entry, left, right, join *Block) {
	entry = g.NewBlock("entry")
	left = g.NewBlock("left")
	right = g.NewBlock("right")
	join = g.NewBlock("join")
	g.AddEdge(entry, left)
	g.AddEdge(entry, right)
	g.AddEdge(left, join)
	g.AddEdge(right, join)
	return
}

func TestBlockDominatesDiamond(t *testing.T) {
	g := NewGraph()
	entry, left, right, join := buildDiamond(g)

	assert.True(t, g.BlockDominates(entry, join))
	assert.True(t, g.BlockDominates(entry, left))
	assert.False(t, g.BlockDominates(left, right))
	assert.False(t, g.BlockDominates(left, join))
	assert.True(t, g.BlockDominates(join, join))
}

func TestDominatorClosestBlock(t *testing.T) {
	g := NewGraph()
	entry, left, _, _ := buildDiamond(g)

	assert.Equal(t, left, g.DominatorClosestBlock(entry, left))
}

func TestPlaceCombinedFallsBackOffStart(t *testing.T) {
	g := NewGraph()
	entry := g.NewBlock("entry")
	other := g.NewBlock("other")
	g.AddEdge(entry, other)

	// Both operands live in the start block: dominator-closest is the
	// start block itself, so placement must fall back (spec invariant 2).
	placed := g.PlaceCombined(entry, entry, other)
	assert.Equal(t, other, placed)

	placed = g.PlaceCombined(other, other, entry)
	assert.Equal(t, other, placed)
}

func TestLoopInvariance(t *testing.T) {
	g := NewGraph()
	entry := g.NewBlock("entry")
	header := g.NewBlock("header")
	body := g.NewBlock("body")
	exit := g.NewBlock("exit")
	g.AddEdge(entry, header)
	g.AddEdge(header, body)
	g.AddEdge(body, header) // back edge
	g.AddEdge(header, exit)

	mode := NewIntMode(32, true)
	outside := g.NewAddress(entry, mode)
	inside := g.NewAddress(body, mode)

	assert.True(t, g.IsLoopInvariant(outside, body))
	assert.False(t, g.IsLoopInvariant(inside, body))
}

func TestAssureAndConfirmProperties(t *testing.T) {
	g := NewGraph()
	g.NewBlock("entry")

	assert.Panics(t, func() {
		g.ConfirmProperties(PropDominance)
	})

	g.AssureProperties(PropDominance)
	assert.NotPanics(t, func() {
		g.ConfirmProperties(PropDominance)
	})
}
