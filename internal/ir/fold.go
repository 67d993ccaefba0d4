package ir

// localOptimize is the node constructor's local optimizer (spec invariant
// 1): folds constant-operand binary/unary ops to a literal, and applies a
// handful of cheap algebraic identities a real node constructor would also
// catch (x+0, x*1, x&x, ...). It never performs the reassociation rules
// themselves — those require cross-node context the constructor doesn't
// have (spec §1 Non-goals: "the core does not perform constant folding
// itself [beyond delegating to] a node constructor that may fold").
//
// Returns nil if n should be kept as-is, or the node n should be replaced
// by (possibly n itself, unchanged, if the fold just rewrote it in place —
// though this implementation always returns a distinct node or nil).
func localOptimize(g *Graph, n *Node) *Node {
	switch n.Op {
	case OpAdd, OpSub, OpMul, OpAnd, OpOr, OpEor, OpShl:
		return foldBinary(g, n)
	case OpNot:
		return foldNot(g, n)
	case OpConv:
		return foldConv(g, n)
	default:
		return nil
	}
}

func foldBinary(g *Graph, n *Node) *Node {
	a, b := n.In(0), n.In(1)
	if a == nil || b == nil {
		return nil
	}
	if a.IsConst() && b.IsConst() {
		if result, ok := binaryTarval(n.Op, a.constVal, b.constVal, n.mode); ok {
			return g.NewConst(n.block, n.mode, result)
		}
	}
	if identity := foldIdentity(g, n, a, b); identity != nil {
		return identity
	}
	return nil
}

// foldIdentity applies the identities a real optimizing constructor folds
// opportunistically: additive/multiplicative identity and annihilator
// elements, and idempotent/self-inverse cases. These are independent of
// (and run before) the reassociation pass proper.
func foldIdentity(g *Graph, n *Node, a, b *Node) *Node {
	switch n.Op {
	case OpAdd:
		if b.IsConst() && b.constVal.IsZero() {
			return a
		}
		if a.IsConst() && a.constVal.IsZero() {
			return b
		}
	case OpMul:
		if b.IsConst() && b.constVal.IsZero() {
			return g.NewConst(n.block, n.mode, ZeroVal(n.mode))
		}
		if a.IsConst() && a.constVal.IsZero() {
			return g.NewConst(n.block, n.mode, ZeroVal(n.mode))
		}
		if b.IsConst() && b.constVal.Uint64() == 1 {
			return a
		}
		if a.IsConst() && a.constVal.Uint64() == 1 {
			return b
		}
	case OpAnd:
		if SameNode(a, b) {
			return a
		}
		if b.IsConst() && b.constVal.IsAllOnes() {
			return a
		}
		if a.IsConst() && a.constVal.IsAllOnes() {
			return b
		}
		if b.IsConst() && b.constVal.IsZero() {
			return g.NewConst(n.block, n.mode, ZeroVal(n.mode))
		}
		if a.IsConst() && a.constVal.IsZero() {
			return g.NewConst(n.block, n.mode, ZeroVal(n.mode))
		}
	case OpOr:
		if SameNode(a, b) {
			return a
		}
		if b.IsConst() && b.constVal.IsZero() {
			return a
		}
		if a.IsConst() && a.constVal.IsZero() {
			return b
		}
		if b.IsConst() && b.constVal.IsAllOnes() {
			return g.NewConst(n.block, n.mode, AllOnesVal(n.mode))
		}
		if a.IsConst() && a.constVal.IsAllOnes() {
			return g.NewConst(n.block, n.mode, AllOnesVal(n.mode))
		}
	case OpEor:
		if SameNode(a, b) {
			return g.NewConst(n.block, n.mode, ZeroVal(n.mode))
		}
		if b.IsConst() && b.constVal.IsZero() {
			return a
		}
		if a.IsConst() && a.constVal.IsZero() {
			return b
		}
	case OpShl:
		if b.IsConst() && b.constVal.IsZero() {
			return a
		}
	}
	return nil
}

func foldNot(g *Graph, n *Node) *Node {
	a := n.In(0)
	if a == nil {
		return nil
	}
	if a.IsConst() {
		return g.NewConst(n.block, n.mode, AllOnesVal(n.mode).Xor(a.constVal))
	}
	if a.IsNot() {
		return a.In(0) // double negation
	}
	return nil
}

func foldConv(g *Graph, n *Node) *Node {
	a := n.In(0)
	if a != nil && a.IsConst() {
		return g.NewConst(n.block, n.mode, a.constVal.WidenTo(n.mode))
	}
	return nil
}
