package reassoc

import "kanso/internal/ir"

// foundKind reports which operand replaceUntilOtherUser encountered first
// along a given recursion branch (spec §4.7).
type foundKind int

const (
	foundNone foundKind = iota
	foundFirst
	foundSecond
)

// runXorEquality is the XOR-equality simplification stage (spec §4.7): for
// every AND/OR with one operand an XOR (possibly NOT-wrapped), rewrites
// occurrences of that XOR's operands inside the other operand's bitwise
// subtree by the algebraically equivalent simpler form.
func runXorEquality(g *ir.Graph) {
	for _, n := range g.Nodes() {
		if n.Opcode() != ir.OpAnd && n.Opcode() != ir.OpOr {
			continue
		}
		if n.GetMode().IsFloat() && !g.ImpreciseFloatTransformsAllowed() {
			continue
		}
		tryXorEquality(g, n)
	}
}

func tryXorEquality(g *ir.Graph, n *ir.Node) {
	needNot := n.Opcode() == ir.OpAnd
	l, r := n.In(0), n.In(1)
	xorNode, other, ok := findXorOperand(l, r, &needNot)
	if !ok {
		return
	}
	a, b := xorNode.In(0), xorNode.In(1)
	if a == nil || b == nil {
		return
	}

	switch {
	case b.IsConst():
		replaceUntilOtherUser(g, other, a, b, needNot, true)
	case a.IsConst():
		replaceUntilOtherUser(g, other, b, a, needNot, true)
	default:
		strippedA, notA := stripNot(a)
		strippedB, notB := stripNot(b)
		if notA {
			needNot = !needNot
		}
		if notB {
			needNot = !needNot
		}
		replaceUntilOtherUser(g, other, strippedA, strippedB, needNot, false)
	}
}

// findXorOperand identifies which of l/r is an XOR (possibly NOT-wrapped,
// which flips needNot) and returns it along with the sibling operand.
func findXorOperand(l, r *ir.Node, needNot *bool) (xorNode, other *ir.Node, ok bool) {
	if xor, flip, ok := asXor(l); ok {
		if flip {
			*needNot = !*needNot
		}
		return xor, r, true
	}
	if xor, flip, ok := asXor(r); ok {
		if flip {
			*needNot = !*needNot
		}
		return xor, l, true
	}
	return nil, nil, false
}

func asXor(n *ir.Node) (xor *ir.Node, flipped bool, ok bool) {
	if n == nil {
		return nil, false, false
	}
	if n.IsEor() {
		return n, false, true
	}
	if n.IsNot() && n.In(0) != nil && n.In(0).IsEor() {
		return n.In(0), true, true
	}
	return nil, false, false
}

func stripNot(n *ir.Node) (*ir.Node, bool) {
	if n != nil && n.IsNot() {
		return n.In(0), true
	}
	return n, false
}

// replaceUntilOtherUser recursively walks the bitwise-only subgraph rooted
// at node, where every visited node has exactly one user, substituting
// occurrences of a by b (or NOT b, if needNot) once replace has latched
// true, per spec §4.7.
func replaceUntilOtherUser(g *ir.Graph, node, a, b *ir.Node, needNot, replace bool) foundKind {
	if node == nil || node.OutCount() > 1 || !node.Opcode().IsBitwise() {
		return foundNone
	}

	result := foundNone
	for i := 0; i < node.Arity(); i++ {
		in := node.In(i)
		switch {
		case ir.SameNode(in, a):
			if replace {
				node.SetIn(i, maybeNot(g, node, b, needNot))
			} else {
				replace = true
				a, b = b, a
				result = foundSecond
			}
		case ir.SameNode(in, b):
			if !replace {
				replace = true
				if result == foundNone {
					result = foundFirst
				}
			}
		default:
			if sub := replaceUntilOtherUser(g, in, a, b, needNot, replace); sub == foundSecond {
				a, b = b, a
			}
		}
	}
	return result
}

func maybeNot(g *ir.Graph, at *ir.Node, n *ir.Node, needNot bool) *ir.Node {
	if !needNot {
		return n
	}
	return g.NewNot(at.GetBlock(), n)
}
