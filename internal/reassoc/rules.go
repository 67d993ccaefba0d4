package reassoc

import "kanso/internal/ir"

// ruleOpcodes is the set of opcodes the commutative reassociation rule is
// registered for (spec §4.3: "registered for opcodes: Add, And, Eor, Mul,
// Or"). RegisterRules is the spec's "one-time registration entry point";
// in this implementation the table is simply this fixed set, since every
// registered opcode shares the same rule function.
var ruleOpcodes = map[ir.Opcode]bool{
	ir.OpAdd: true,
	ir.OpAnd: true,
	ir.OpEor: true,
	ir.OpMul: true,
	ir.OpOr:  true,
}

// RegisterRules is the one-time registration entry point (spec §6). It does
// nothing: the rule is already attached to its five opcodes by the fixed
// ruleOpcodes table above. Exposed as a function so a host that wants to
// confirm registration explicitly (e.g. at pipeline construction) has
// something to call.
func RegisterRules() {}

// HasRule reports whether op has a registered reassociation rule.
func HasRule(op ir.Opcode) bool { return ruleOpcodes[op] }

// reassociate applies Rule A, then (if Rule A did not fire) Rule B, to n.
// It is the per-opcode rule the driver calls repeatedly until it reports no
// change (spec §4.4 point 4).
func reassociate(n *ir.Node) bool {
	if n.GetMode().IsFloat() && !n.Graph().ImpreciseFloatTransformsAllowed() {
		return false
	}
	op := n.Opcode()
	t1, c1 := Normalize(n)
	if t1.Opcode() != op {
		return false
	}
	block := n.GetBlock()
	if applyRuleA(n, block, t1, c1) {
		return true
	}
	return applyRuleB(n, block, t1, c1)
}

// applyRuleA implements Rule A (inner same-op), spec §4.3.
func applyRuleA(n *ir.Node, block *ir.Block, t1, c1 *ir.Node) bool {
	t2, c2 := Normalize(t1)
	cxC1 := Classify(c1, block)
	if cxC1 == NoConstant {
		return false
	}
	cxC2 := Classify(c2, block)
	cxT2 := Classify(t2, block)
	if oscillationBlocked(cxC1, cxC2, cxT2) {
		return false
	}

	combined := combineConsts(n, c1, cxC1, c2, cxC2)
	n.SetIn(0, t2)
	n.SetIn(1, combined)
	return true
}

// applyRuleB implements Rule B (idempotent collapse), spec §4.3, tried only
// after Rule A declined to fire.
func applyRuleB(n *ir.Node, block *ir.Block, t1, c1 *ir.Node) bool {
	l, r := t1.In(0), t1.In(1)
	var other *ir.Node
	switch {
	case ir.SameNode(l, c1):
		other = r
	case ir.SameNode(r, c1):
		other = l
	default:
		return false
	}
	if Classify(other, block) != NoConstant {
		return false
	}

	g := n.Graph()
	placeBlock := g.PlaceCombined(c1.GetBlock(), c1.GetBlock(), n.GetBlock())
	combined := g.NewNode(n.Opcode(), c1.GetMode(), placeBlock, c1, c1)
	n.SetIn(0, other)
	n.SetIn(1, combined)
	return true
}

// oscillationBlocked implements the two termination-preventing patterns
// Rule A must decline on (spec §4.3, §9 "Anti-oscillation"): all three
// operands classified as region-constants, or exactly two region-constants
// with the third unclassified.
func oscillationBlocked(c1, c2, t2 ConstClass) bool {
	region, none := 0, 0
	for _, c := range [...]ConstClass{c1, c2, t2} {
		switch c {
		case RegionConst:
			region++
		case NoConstant:
			none++
		}
	}
	if region == 3 {
		return true
	}
	if region == 2 && none == 1 {
		return true
	}
	return false
}

// combineConsts builds the inner combined node for c1 ⊕ c2 (spec §4.3:
// "the combined inner node is constructed by the optimizing node
// constructor"), widening per WidenPair and placing per spec invariant 2.
func combineConsts(n *ir.Node, c1 *ir.Node, cls1 ConstClass, c2 *ir.Node, cls2 ConstClass) *ir.Node {
	g := n.Graph()
	placeBlock := g.PlaceCombined(c1.GetBlock(), c2.GetBlock(), n.GetBlock())
	w1, w2 := WidenPair(g, placeBlock, c1, cls1, c2, cls2)
	return g.NewNode(n.Opcode(), w1.GetMode(), placeBlock, w1, w2)
}

// WidenPair implements the mode-coercion rule for combining two
// constant-ish operands (spec §4.3): if their integer modes differ, widen
// the narrower to the wider; if equally wide, widen the real-constant to
// the region-constant's mode. Non-integer modes (or already-equal modes)
// pass through unchanged.
func WidenPair(g *ir.Graph, block *ir.Block, a *ir.Node, clsA ConstClass, b *ir.Node, clsB ConstClass) (*ir.Node, *ir.Node) {
	ma, mb := a.GetMode(), b.GetMode()
	if !ma.IsInt() || !mb.IsInt() || ma.Equal(mb) {
		return a, b
	}
	var target ir.Mode
	switch {
	case ma.SizeBits() != mb.SizeBits():
		target = ir.WidestInt(ma, mb)
	case clsA == RealConstant && clsB == RegionConst:
		target = mb
	case clsB == RealConstant && clsA == RegionConst:
		target = ma
	default:
		target = ma
	}
	return g.NewConv(block, a, target), g.NewConv(block, b, target)
}
