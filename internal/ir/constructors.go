package ir

// This file holds the node constructors (spec §6 "Constructors"). NewNode is
// the generic optimizing constructor spec invariant 1 requires: every new
// node is validated, run through local optimization, and — if that folds it
// to an equivalent existing node — the equivalent is returned instead of the
// freshly built one. The specialized New* helpers below it are thin
// wrappers spec §6 calls out by name (Add, Sub, Mul, Shl, Not, Const, Conv).

func (g *Graph) newRawNode(op Opcode, mode Mode, block *Block, inputs ...*Node) *Node {
	n := &Node{
		id:     g.nextID(),
		graph:  g,
		Op:     op,
		mode:   mode,
		block:  block,
		inputs: append([]*Node(nil), inputs...),
	}
	for _, in := range inputs {
		if in != nil {
			in.addUser(n)
		}
	}
	g.nodes = append(g.nodes, n)
	g.assuredProps &^= PropOutEdges // conservatively: new edges need confirming
	return n
}

// discard removes a just-built node that local optimization folded away
// before anything else could observe it; it never entered a committed edge
// from outside this constructor call.
func (g *Graph) discard(n *Node) {
	for _, in := range n.inputs {
		if in != nil {
			in.removeUser(n)
		}
	}
	for i, existing := range g.nodes {
		if existing == n {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			break
		}
	}
}

// NewNode is the generic optimizing constructor (spec invariant 1).
func (g *Graph) NewNode(op Opcode, mode Mode, block *Block, inputs ...*Node) *Node {
	n := g.newRawNode(op, mode, block, inputs...)
	if folded := localOptimize(g, n); folded != nil && folded != n {
		g.discard(n)
		return folded
	}
	return n
}

// NewAdd, NewSub, NewMul, NewShl, NewNot are the opcode-specific
// constructors spec §6 requires by name.
func (g *Graph) NewAdd(block *Block, a, b *Node) *Node { return g.NewNode(OpAdd, a.mode, block, a, b) }
func (g *Graph) NewSub(block *Block, a, b *Node) *Node { return g.NewNode(OpSub, a.mode, block, a, b) }
func (g *Graph) NewMul(block *Block, a, b *Node) *Node { return g.NewNode(OpMul, a.mode, block, a, b) }
func (g *Graph) NewShl(block *Block, a, b *Node) *Node { return g.NewNode(OpShl, a.mode, block, a, b) }
func (g *Graph) NewAnd(block *Block, a, b *Node) *Node { return g.NewNode(OpAnd, a.mode, block, a, b) }
func (g *Graph) NewOr(block *Block, a, b *Node) *Node  { return g.NewNode(OpOr, a.mode, block, a, b) }
func (g *Graph) NewEor(block *Block, a, b *Node) *Node { return g.NewNode(OpEor, a.mode, block, a, b) }
func (g *Graph) NewNot(block *Block, a *Node) *Node    { return g.NewNode(OpNot, a.mode, block, a) }

// NewConst creates (or reuses, per invariant 1) a literal constant node.
func (g *Graph) NewConst(block *Block, mode Mode, val Tarval) *Node {
	key := constKey{mode: mode, bits: val.Uint64()}
	if existing, ok := g.constCache[key]; ok {
		return existing
	}
	n := g.newRawNode(OpConst, mode, block)
	n.constVal = val
	g.constCache[key] = n
	return n
}

// NewConv creates an integer mode-conversion node (spec §6: "Conv(v,
// mode)"). Folds immediately if v is already a Const.
func (g *Graph) NewConv(block *Block, v *Node, mode Mode) *Node {
	if v.mode.Equal(mode) {
		return v
	}
	if v.IsConst() {
		return g.NewConst(block, mode, v.constVal.WidenTo(mode))
	}
	return g.NewNode(OpConv, mode, block, v)
}

// NewAddress, NewOffset, NewSize, NewAlign, NewTypeConst create the
// constant-like region leaves spec §4.1 classifies as REGION_CONST.
func (g *Graph) NewAddress(block *Block, mode Mode) *Node   { return g.newRawNode(OpAddress, mode, block) }
func (g *Graph) NewOffset(block *Block, mode Mode) *Node    { return g.newRawNode(OpOffset, mode, block) }
func (g *Graph) NewSize(block *Block, mode Mode) *Node      { return g.newRawNode(OpSize, mode, block) }
func (g *Graph) NewAlign(block *Block, mode Mode) *Node     { return g.newRawNode(OpAlign, mode, block) }
func (g *Graph) NewTypeConst(block *Block, mode Mode) *Node { return g.newRawNode(OpTypeConst, mode, block) }

// NewBad creates an error-sentinel node (spec §3: excluded from
// region-constancy even when loop-invariant).
func (g *Graph) NewBad(block *Block, mode Mode) *Node { return g.newRawNode(OpBad, mode, block) }

// Exchange replaces old with replacement throughout the graph: every user
// of old is rewired to point at replacement instead (spec §3: "Replaced
// nodes are unlinked via a graph-level exchange(old, new) primitive").
// old's own input edges are cleared since old no longer participates in
// the data-flow graph; its memory is left for the host allocator to
// reclaim (spec §3 Lifecycles).
func (g *Graph) Exchange(old, replacement *Node) {
	if old == replacement {
		return
	}
	users := append([]*Node(nil), old.users...)
	for _, user := range users {
		for i, in := range user.inputs {
			if in == old {
				user.SetIn(i, replacement)
			}
		}
	}
	for i, in := range old.inputs {
		if in != nil {
			in.removeUser(old)
		}
		old.inputs[i] = nil
	}
	old.users = nil
}
