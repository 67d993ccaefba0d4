package reassoc

import (
	"kanso/internal/errors"
	"kanso/internal/ir"
)

// Optimize is the pass's one procedure-level entry point (spec §6:
// optimize_reassociation(graph)). Stage order follows spec §2/§5: Shannon
// simplification, then XOR-equality simplification, then the forward
// worklist-driven commutative reassociation to fixed point, then the
// reverse pass.
func Optimize(g *ir.Graph) {
	errors.Assert(g.Pinned(), errors.GraphNotPinned, "optimize_reassociation requires a pinned graph")
	g.AssureProperties(ir.PropDominance | ir.PropLoopInfo | ir.PropOutEdges)

	runShannon(g)
	runXorEquality(g)
	runDriver(g)
	runReverse(g)

	g.InvalidateOutEdges()
	g.ConfirmProperties(ir.PropDominance | ir.PropLoopInfo)
}
