package reassoc

import (
	"kanso/internal/errors"
	"kanso/internal/ir"
)

// Normalize implements normalize_commutative (spec §4.2): given a
// commutative binary node, returns its operands ordered (variable,
// constant-ish), applying the three rules in order. "Constant-ish" just
// means the operand Rule A/B will try to combine with its sibling; it is
// not always literally a Const node.
func Normalize(binop *ir.Node) (variable, constant *ir.Node) {
	errors.Assert(binop.Opcode().IsCommutative(), errors.NotCommutative,
		"normalize_commutative called on non-commutative opcode %s", binop.Opcode())

	block := binop.GetBlock()
	a, b := binop.In(0), binop.In(1)
	ca, cb := Classify(a, block), Classify(b, block)

	if ca == RealConstant && cb == RealConstant {
		// Rule 1: keep the non-reference-mode operand as the constant side.
		if !a.GetMode().IsReference() && b.GetMode().IsReference() {
			return b, a
		}
		return a, b
	}

	if ca == RealConstant || (ca == RegionConst && cb == NoConstant) {
		// Rule 2: the constant-ish operand is on the left; swap it to the right.
		return b, a
	}

	// Rule 3: already in the wanted order.
	return a, b
}
