package ir

import "kanso/internal/errors"

// Property is a bit in the IRG properties mask (spec §6:
// assure_irg_properties/confirm_irg_properties).
type Property int

const (
	PropDominance Property = 1 << iota
	PropLoopInfo
	PropOutEdges
)

const PropAll = PropDominance | PropLoopInfo | PropOutEdges

// HookPhase distinguishes the two points hook_reassociate fires at (spec
// §6 Hooks).
type HookPhase int

const (
	HookBegin HookPhase = iota
	HookEnd
)

// Hook is fired around each node's rule application; informational only
// (spec §6).
type Hook func(phase HookPhase, n *Node)

// Graph is the container of all nodes and blocks of one procedure (spec §3
// Graph entity).
type Graph struct {
	nodes  []*Node
	blocks []*Block
	start  *Block

	nextNodeID  int
	nextBlockID int

	pinned           bool
	impreciseFloat   bool
	assuredProps     Property

	constCache map[constKey]*Node

	dom  *domInfo  // built lazily by AssureProperties(PropDominance)
	loop *loopInfo // built lazily by AssureProperties(PropLoopInfo)

	hooks []Hook
}

type constKey struct {
	mode Mode
	bits uint64
}

// NewGraph creates an empty, pinned graph (spec invariant 5: "The graph
// must be pinned").
func NewGraph() *Graph {
	return &Graph{
		pinned:     true,
		constCache: make(map[constKey]*Node),
	}
}

// SetImpreciseFloatTransforms toggles the policy flag spec §6 calls
// ir_imprecise_float_transforms_allowed().
func (g *Graph) SetImpreciseFloatTransforms(allowed bool) { g.impreciseFloat = allowed }

// ImpreciseFloatTransformsAllowed implements spec §6's policy-flag query.
func (g *Graph) ImpreciseFloatTransformsAllowed() bool { return g.impreciseFloat }

// Pinned reports whether the graph is pinned (non-floating), the
// precondition this pass asserts (spec invariant 5).
func (g *Graph) Pinned() bool { return g.pinned }

func (g *Graph) AddHook(h Hook) { g.hooks = append(g.hooks, h) }

func (g *Graph) fireHook(phase HookPhase, n *Node) {
	for _, h := range g.hooks {
		h(phase, n)
	}
}

// FireHook runs every registered hook around a rule application (spec §6:
// hook_reassociate(begin|end)). Exported so the pass driver, living outside
// this package, can fire it.
func (g *Graph) FireHook(phase HookPhase, n *Node) { g.fireHook(phase, n) }

// InvalidateOutEdges marks the out-edge property as no longer assured.
// Used at pass exit to reflect spec §5's "value-related properties are
// invalidated" contract even though this implementation in fact keeps
// out-edges accurate incrementally (SetIn maintains them as it goes).
func (g *Graph) InvalidateOutEdges() { g.assuredProps &^= PropOutEdges }

// NewBlock creates a new block and registers it with the graph. The first
// block created becomes the start block unless SetStart is called
// explicitly.
func (g *Graph) NewBlock(name string) *Block {
	b := &Block{id: g.nextBlockID, Name: name}
	g.nextBlockID++
	g.blocks = append(g.blocks, b)
	if g.start == nil {
		g.start = b
	}
	g.invalidateControlFlowProps()
	return b
}

// SetStart designates b as the distinguished start block (spec §3).
func (g *Graph) SetStart(b *Block) { g.start = b; g.invalidateControlFlowProps() }

// StartBlock returns the graph's distinguished start block (spec §6).
func (g *Graph) StartBlock() *Block { return g.start }

// AddEdge records a control-flow edge from -> to.
func (g *Graph) AddEdge(from, to *Block) {
	from.addSuccessor(to)
	g.invalidateControlFlowProps()
}

func (g *Graph) invalidateControlFlowProps() {
	g.assuredProps = 0
	g.dom = nil
	g.loop = nil
}

func (g *Graph) Blocks() []*Block { return g.blocks }
func (g *Graph) Nodes() []*Node   { return g.nodes }

// AssureProperties computes any bits of mask not already assured (spec §6:
// assure_irg_properties). Dominance and loop-info are built here, on
// demand, from the block CFG (domtree.go, loopinfo.go); out-edges are
// maintained incrementally by SetIn/newRawNode so that bit is always
// trivially satisfied.
func (g *Graph) AssureProperties(mask Property) {
	if mask&PropDominance != 0 && g.assuredProps&PropDominance == 0 {
		g.dom = buildDominatorTree(g)
		g.assuredProps |= PropDominance
	}
	if mask&PropLoopInfo != 0 && g.assuredProps&PropLoopInfo == 0 {
		if g.dom == nil {
			g.dom = buildDominatorTree(g)
			g.assuredProps |= PropDominance
		}
		g.loop = buildLoopInfo(g, g.dom)
		g.assuredProps |= PropLoopInfo
	}
	g.assuredProps |= mask & PropOutEdges
}

// ConfirmProperties asserts that every property in mask is currently
// assured; it changes no property bits itself. Invalidation of value-related
// properties at pass exit is done separately by InvalidateOutEdges
// (control-flow properties such as dominance survive a reassociation pass;
// the pass never touches blocks). Passing PropDominance|PropLoopInfo here is
// the reassociation pass's own post-condition.
func (g *Graph) ConfirmProperties(mask Property) {
	errors.Assert(g.assuredProps&mask == mask, errors.PropertiesNotAssured,
		"confirm_irg_properties: requested %v, assured %v", mask, g.assuredProps)
}

// BlockDominates reports whether a dominates b in the block dominator tree
// (spec §6: block_dominates).
func (g *Graph) BlockDominates(a, b *Block) bool {
	g.AssureProperties(PropDominance)
	return g.dom.dominates(a, b)
}

// DominatorClosestBlock returns the dominator-closest block of a and b
// (spec GLOSSARY: "the deeper of the two blocks ... given one dominates the
// other").
func (g *Graph) DominatorClosestBlock(a, b *Block) *Block {
	g.AssureProperties(PropDominance)
	if g.dom.dominates(a, b) {
		return b
	}
	if g.dom.dominates(b, a) {
		return a
	}
	return a
}

// PlaceCombined computes the placement block for a new node combining
// operands with blocks a and b, falling back to fallback if the
// dominator-closest block is the start block (spec invariant 2: "never
// place combined constants in the start block").
func (g *Graph) PlaceCombined(a, b, fallback *Block) *Block {
	closest := g.DominatorClosestBlock(a, b)
	if closest == g.start {
		return fallback
	}
	return closest
}

// IsLoopInvariant reports whether n is invariant with respect to block's
// enclosing loop (spec §6: is_loop_invariant).
func (g *Graph) IsLoopInvariant(n *Node, block *Block) bool {
	g.AssureProperties(PropLoopInfo)
	return g.loop.isInvariant(n, block)
}

func (g *Graph) nextID() int {
	id := g.nextNodeID
	g.nextNodeID++
	return id
}
