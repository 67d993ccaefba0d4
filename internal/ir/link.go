package ir

// LinkScope provides scoped ownership of every node's scratch link slot
// (spec §9 "Scratch link ownership"): a pass that wants to stash a sentinel
// or a worklist pointer on nodes acquires a LinkScope, uses it for the
// duration of the pass, and releases it, clearing every slot it touched so
// the next borrower starts from a clean graph. Nothing enforces at compile
// time that two passes don't interleave use of link; this is the same
// discipline libFirm documents in prose rather than in types.
type LinkScope struct {
	g      *Graph
	touched []*Node
}

// NewLinkScope begins a borrow of g's scratch link slots.
func NewLinkScope(g *Graph) *LinkScope {
	return &LinkScope{g: g}
}

// Set records v on n's link slot, remembering n so Release can clear it.
func (s *LinkScope) Set(n *Node, v interface{}) {
	if v != nil {
		s.touched = append(s.touched, n)
	}
	n.SetLink(v)
}

// Get reads n's current link value.
func (s *LinkScope) Get(n *Node) interface{} { return n.Link() }

// Release clears every link slot this scope set, returning the graph to a
// state the next borrower can rely on.
func (s *LinkScope) Release() {
	for _, n := range s.touched {
		n.SetLink(nil)
	}
	s.touched = nil
}
