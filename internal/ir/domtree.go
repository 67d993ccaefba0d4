package ir

import (
	"fmt"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
)

// domInfo holds the immediate-dominator map computed over the block CFG.
type domInfo struct {
	idom  map[*Block]*Block
	order []*Block // BFS visit order from the start block
}

// buildDominatorTree computes the dominator tree of g's block CFG, grounded
// on github.com/katalvlaran/lvlath: the CFG is mirrored into a
// lvlath/core.Graph, and lvlath/bfs.BFS supplies the traversal order the
// standard iterative dominator algorithm (Cooper, Harvey & Kennedy) needs.
// The teacher's own IR (kanso internal/ir) carried dominance as a
// precomputed field on BasicBlock; this pass's IR must compute it itself
// since the upstream construction layer is out of scope (spec §1).
func buildDominatorTree(g *Graph) *domInfo {
	info := &domInfo{idom: make(map[*Block]*Block, len(g.blocks))}
	if g.start == nil || len(g.blocks) == 0 {
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

	result, err := bfs.BFS(lg, blockVertexID(g.start))
	if err != nil {
		// An unreachable-from-start CFG is a malformed graph; the pass
		// still must not crash the caller over it (spec §7: total pass).
		return info
	}

	byID := make(map[string]*Block, len(g.blocks))
	for _, b := range g.blocks {
		byID[blockVertexID(b)] = b
	}
	order := make([]*Block, 0, len(result.Order))
	for _, id := range result.Order {
		order = append(order, byID[id])
	}
	info.order = order

	reachable := make(map[*Block]bool, len(order))
	for _, b := range order {
		reachable[b] = true
	}

	info.idom[g.start] = g.start

	// Iterative dominator computation: idom(n) = the dominator-closest
	// predecessor intersection, fixed-pointed until no change. Any
	// processing order converges; using the BFS order is merely faster,
	// not required for correctness.
	changed := true
	for changed {
		changed = false
		for _, b := range order {
			if b == g.start {
				continue
			}
			var newIdom *Block
			for _, p := range b.preds {
				if !reachable[p] || info.idom[p] == nil {
					continue
				}
				if newIdom == nil {
					newIdom = p
					continue
				}
				newIdom = intersect(info.idom, newIdom, p, order)
			}
			if newIdom != nil && info.idom[b] != newIdom {
				info.idom[b] = newIdom
				changed = true
			}
		}
	}
	return info
}

// intersect walks both candidate dominators up the (partially built)
// dominator tree until they agree, using position in the traversal order
// as a stand-in for dominator-tree depth.
func intersect(idom map[*Block]*Block, a, b *Block, order []*Block) *Block {
	depth := make(map[*Block]int, len(order))
	for i, blk := range order {
		depth[blk] = i
	}
	for a != b {
		for depth[a] > depth[b] {
			if idom[a] == nil {
				return b
			}
			a = idom[a]
		}
		for depth[b] > depth[a] {
			if idom[b] == nil {
				return a
			}
			b = idom[b]
		}
	}
	return a
}

func (d *domInfo) dominates(a, b *Block) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b {
		return true
	}
	cur := d.idom[b]
	for cur != nil {
		if cur == a {
			return true
		}
		if d.idom[cur] == cur {
			break // reached the start block's self-loop in the idom map
		}
		cur = d.idom[cur]
	}
	return false
}

func blockVertexID(b *Block) string {
	return fmt.Sprintf("b%d", b.id)
}
