package ir

import (
	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"
)

// loopInfo maps each block to its innermost enclosing natural loop, if any.
type loopInfo struct {
	header map[*Block]*Block // block -> innermost loop header (nil if none)
}

// buildLoopInfo finds the graph's natural loops by mirroring the block CFG
// into a lvlath/core.Graph and running lvlath/dfs.DetectCycles to locate
// back edges; a cycle's header is the member block that dominates every
// other member (per the already-computed dominator tree). Nested cycles are
// resolved by picking, for each block, the header deepest in the dominator
// chain — the innermost enclosing loop.
func buildLoopInfo(g *Graph, dom *domInfo) *loopInfo {
	info := &loopInfo{header: make(map[*Block]*Block)}
	if len(g.blocks) == 0 {
		return info
	}

	lg := core.NewGraph(core.WithDirected(true))
	for _, b := range g.blocks {
		_ = lg.AddVertex(blockVertexID(b))
	}
	for _, b := range g.blocks {
		for _, succ := range b.succs {
			_, _ = lg.AddEdge(blockVertexID(b), blockVertexID(succ), 0)
		}
	}

	hasCycles, cycles, err := dfs.DetectCycles(lg)
	if err != nil || !hasCycles {
		return info
	}

	byID := make(map[string]*Block, len(g.blocks))
	for _, b := range g.blocks {
		byID[blockVertexID(b)] = b
	}

	for _, cycle := range cycles {
		members := make([]*Block, 0, len(cycle))
		for _, id := range cycle {
			if b, ok := byID[id]; ok {
				members = append(members, b)
			}
		}
		header := findLoopHeader(dom, members)
		if header == nil {
			continue
		}
		for _, m := range members {
			existing := info.header[m]
			if existing == nil || dom.dominates(existing, header) {
				// header is nested inside (dominated by) existing, i.e.
				// header is the innermost of the two.
				info.header[m] = header
			}
		}
	}
	return info
}

// findLoopHeader returns the member block that dominates every other
// member of the cycle, or nil if the cycle isn't a natural loop under this
// dominator tree (irreducible control flow — out of scope for this pass).
func findLoopHeader(dom *domInfo, members []*Block) *Block {
	for _, candidate := range members {
		dominatesAll := true
		for _, other := range members {
			if other == candidate {
				continue
			}
			if !dom.dominates(candidate, other) {
				dominatesAll = false
				break
			}
		}
		if dominatesAll {
			return candidate
		}
	}
	return nil
}

// isInvariant reports whether n is loop-invariant with respect to block's
// innermost enclosing loop (spec §6: is_loop_invariant). A node is
// trivially invariant with respect to a block that isn't in any loop, and a
// node defined outside block's loop is invariant to it.
func (l *loopInfo) isInvariant(n *Node, block *Block) bool {
	header := l.header[block]
	if header == nil {
		return true
	}
	defBlock := n.block
	if defBlock == nil {
		return true
	}
	return l.header[defBlock] != header && !sameOrNestedLoop(l, defBlock, header)
}

// sameOrNestedLoop reports whether defBlock's own loop nest includes
// header's loop (i.e. defBlock is itself inside the loop headed by
// header, possibly via a more deeply nested loop).
func sameOrNestedLoop(l *loopInfo, defBlock, header *Block) bool {
	cur := l.header[defBlock]
	for cur != nil {
		if cur == header {
			return true
		}
		cur = l.header[cur]
	}
	return defBlock == header
}
