package reassoc

import "kanso/internal/ir"

// runReverse is the second walk (spec §4.5): no worklist, a single pass
// over every node, running move_consts_up (commutative opcodes) and
// reverse_rule_distributive (Add/Sub) to local fixed point per node.
func runReverse(g *ir.Graph) {
	for _, n := range g.Nodes() {
		if n.GetMode().IsFloat() && !g.ImpreciseFloatTransformsAllowed() {
			continue
		}
		if n.Opcode().IsCommutative() {
			for moveConstsUp(g, n) {
			}
		}
		if n.Opcode() == ir.OpAdd || n.Opcode() == ir.OpSub {
			reverseRuleDistributive(g, n)
		}
	}
}

// moveConstsUp implements spec §4.5's move_consts_up: given n = l ⊕ r,
// skip if either operand is already a constant expression; otherwise try
// opening up l, then r, for a nested constant that can be swapped outside.
func moveConstsUp(g *ir.Graph, n *ir.Node) bool {
	if IsConstantExpr(n.In(0)) || IsConstantExpr(n.In(1)) {
		return false
	}
	if tryHoist(g, n, 0, 1) {
		return true
	}
	return tryHoist(g, n, 1, 0)
}

// tryHoist tries to rewrite n's inner operand at innerSlot — if it has n's
// own opcode and one of its two operands is a constant expression — so
// that constant moves to n's own operand list: (C ⊕ b) ⊕ r ⇒ (r ⊕ b) ⊕ C
// (or the symmetric a-is-kept form).
func tryHoist(g *ir.Graph, n *ir.Node, innerSlot, siblingSlot int) bool {
	inner := n.In(innerSlot)
	sibling := n.In(siblingSlot)
	if inner == nil || inner.Opcode() != n.Opcode() {
		return false
	}

	a, b := inner.In(0), inner.In(1)
	if !a.GetMode().Equal(b.GetMode()) {
		return false
	}

	var hoist, keep *ir.Node
	switch {
	case IsConstantExpr(a):
		hoist, keep = a, b
	case IsConstantExpr(b):
		hoist, keep = b, a
	default:
		return false
	}

	placeBlock := g.PlaceCombined(keep.GetBlock(), sibling.GetBlock(), n.GetBlock())
	if !g.BlockDominates(a.GetBlock(), placeBlock) || !g.BlockDominates(b.GetBlock(), placeBlock) {
		return false
	}

	newInner := g.NewNode(n.Opcode(), keep.GetMode(), placeBlock, keep, sibling)
	n.SetIn(innerSlot, newInner)
	n.SetIn(siblingSlot, hoist)

	// The node constructor may have folded/rewritten newInner's opcode;
	// recheck after construction, not before (spec §9 design note c).
	if newInner.Opcode() == ir.OpAdd || newInner.Opcode() == ir.OpSub {
		reverseRuleDistributive(g, newInner)
	}
	return true
}

// reverseRuleDistributive implements spec §4.5's reverse_rule_distributive:
// (a⊙x)⊕(b⊙x) ⇒ (a⊕b)⊙x for ⊙ ∈ {Mul, Shl}, matching all four positional
// variants for the commutative Mul and only the shift-amount-matches
// variant for the non-commutative Shl.
func reverseRuleDistributive(g *ir.Graph, n *ir.Node) {
	if tryFactor(g, n, ir.OpMul, true) {
		return
	}
	tryFactor(g, n, ir.OpShl, false)
}

func tryFactor(g *ir.Graph, n *ir.Node, factorOp ir.Opcode, commutative bool) bool {
	l, r := n.In(0), n.In(1)
	if l == nil || r == nil || l.Opcode() != factorOp || r.Opcode() != factorOp {
		return false
	}
	la, lb := l.In(0), l.In(1)
	ra, rb := r.In(0), r.In(1)

	var x, a, b *ir.Node
	switch {
	case commutative && ir.SameNode(la, ra):
		x, a, b = la, lb, rb
	case commutative && ir.SameNode(la, rb):
		x, a, b = la, lb, ra
	case commutative && ir.SameNode(lb, ra):
		x, a, b = lb, la, rb
	case commutative && ir.SameNode(lb, rb):
		x, a, b = lb, la, ra
	case !commutative && ir.SameNode(lb, rb):
		x, a, b = lb, la, ra
	default:
		return false
	}

	sumBlock := g.PlaceCombined(a.GetBlock(), b.GetBlock(), n.GetBlock())
	sum := g.NewNode(n.Opcode(), a.GetMode(), sumBlock, a, b)
	outerBlock := g.PlaceCombined(sum.GetBlock(), x.GetBlock(), n.GetBlock())
	result := g.NewNode(factorOp, sum.GetMode(), outerBlock, sum, x)
	g.Exchange(n, result)
	return true
}
