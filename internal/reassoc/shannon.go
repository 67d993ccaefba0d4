package reassoc

import "kanso/internal/ir"

// shannonHit is a pending Shannon optimization (spec §4.6): other's input at
// slot currently points at target (either top itself, or middle when middle
// has other users), reached through a bitwise-only path from base's
// sibling operand.
type shannonHit struct {
	base   *ir.Node
	middle *ir.Node // nil when no NOT/XOR(K) wrapper was stripped
	top    *ir.Node
	other  *ir.Node
	slot   int
	target *ir.Node // top or middle, whichever matched at other's input
}

// runShannon is the Shannon simplification stage (spec §4.6): a structural
// search over bitwise subgraphs rooted at AND/OR nodes, collecting pending
// substitutions and applying those that still check out once collection is
// complete.
func runShannon(g *ir.Graph) {
	visitCounter := make(map[*ir.Node]int)
	walkBase := 0
	var pending []shannonHit

	for _, base := range g.Nodes() {
		if base.Opcode() != ir.OpAnd && base.Opcode() != ir.OpOr {
			continue
		}
		if base.GetMode().IsFloat() && !g.ImpreciseFloatTransformsAllowed() {
			continue
		}
		l, r := base.In(0), base.In(1)
		if l == nil || r == nil {
			continue
		}
		middle, top := stripShannonWrapper(l)
		collectShannonHits(r, top, middle, base, walkBase, visitCounter, &pending)
		// Any node in the graph can be visited at most once per input edge
		// during a single search; len(g.Nodes()) is a safe upper bound on
		// increments accrued this round, so bumping walkBase past it keeps
		// next round's counters from colliding with this round's.
		walkBase += len(g.Nodes()) + 1
	}

	applyShannonHits(g, pending)
}

// stripShannonWrapper peels a NOT or XOR-with-literal wrapper off l, per
// spec §4.6/§9 design note (b): only a literal Const XOR operand promotes
// to a middle node, never a non-literal constant-like leaf.
func stripShannonWrapper(l *ir.Node) (middle, top *ir.Node) {
	if l.IsNot() {
		return l, l.In(0)
	}
	if l.IsEor() {
		a, b := l.In(0), l.In(1)
		if a != nil && b != nil {
			if a.IsConst() && !b.IsConst() {
				return l, b
			}
			if b.IsConst() && !a.IsConst() {
				return l, a
			}
		}
	}
	return nil, l
}

// collectShannonHits walks the bitwise-only subgraph reachable from n,
// recursing into a node's own inputs only once every one of its use-edges
// has been visited during this search (the visitCounter / walkBase
// bookkeeping spec §4.6 describes, avoiding both redundant re-exploration
// of shared nodes and digging into nodes with uses outside this search).
func collectShannonHits(n, top, middle, base *ir.Node, walkBase int, visitCounter map[*ir.Node]int, pending *[]shannonHit) {
	if n == nil {
		return
	}
	if visitCounter[n] < walkBase {
		visitCounter[n] = walkBase // first visit in this search
	}
	visitCounter[n]++
	if visitCounter[n]-walkBase != n.OutCount() {
		return
	}
	if !n.Opcode().IsBitwise() {
		return
	}
	middleEligible := middle != nil && hasOtherUser(middle, base)
	for i, in := range n.Inputs() {
		if in == nil {
			continue
		}
		if ir.SameNode(in, top) {
			*pending = append(*pending, shannonHit{base: base, middle: middle, top: top, other: n, slot: i, target: top})
			continue
		}
		if middleEligible && ir.SameNode(in, middle) {
			*pending = append(*pending, shannonHit{base: base, middle: middle, top: top, other: n, slot: i, target: middle})
			continue
		}
		collectShannonHits(in, top, middle, base, walkBase, visitCounter, pending)
	}
}

func hasOtherUser(n, except *ir.Node) bool {
	for _, u := range n.Users() {
		if !ir.SameNode(u, except) {
			return true
		}
	}
	return false
}

// applyShannonHits re-validates each pending hit (the graph may have been
// mutated by an earlier hit's application — spec §7) and, if still valid,
// replaces the edge with the Shannon-replacement constant.
func applyShannonHits(g *ir.Graph, pending []shannonHit) {
	for _, hit := range pending {
		if !shannonHitValid(hit) {
			continue
		}
		val := shannonReplacementValue(hit)
		constNode := g.NewConst(hit.other.GetBlock(), hit.top.GetMode(), val)
		hit.other.SetIn(hit.slot, constNode)
	}
}

func shannonHitValid(hit shannonHit) bool {
	if hit.slot < 0 || hit.slot >= hit.other.Arity() || !ir.SameNode(hit.other.In(hit.slot), hit.target) {
		return false
	}
	if hit.middle != nil && !hasOperand(hit.base, hit.middle) {
		return false
	}
	topReachable := hasOperand(hit.other, hit.top) || (hit.middle != nil && hasOperand(hit.middle, hit.top))
	return topReachable
}

func hasOperand(n, operand *ir.Node) bool {
	for i := 0; i < n.Arity(); i++ {
		if ir.SameNode(n.In(i), operand) {
			return true
		}
	}
	return false
}

// shannonReplacementValue computes base_identity XOR replacement (spec
// §4.6), where replacement depends on the wrapper stripped to reach top:
// zero when absent, all-ones XOR base identity for NOT, or K XOR base
// identity for XOR-with-literal-K.
func shannonReplacementValue(hit shannonHit) ir.Tarval {
	mode := hit.top.GetMode()
	baseIdentity := ir.AllOnesVal(mode)
	if hit.base.Opcode() == ir.OpOr {
		baseIdentity = ir.ZeroVal(mode)
	}

	var replacement ir.Tarval
	switch {
	case hit.middle == nil:
		replacement = ir.ZeroVal(mode)
	case hit.middle.IsNot():
		replacement = ir.AllOnesVal(mode).Xor(baseIdentity)
	default: // Eor with a literal operand
		k := literalOperand(hit.middle)
		replacement = k.Xor(baseIdentity)
	}
	return baseIdentity.Xor(replacement)
}

func literalOperand(eor *ir.Node) ir.Tarval {
	a, b := eor.In(0), eor.In(1)
	if a != nil && a.IsConst() {
		return a.ConstValue()
	}
	return b.ConstValue()
}
