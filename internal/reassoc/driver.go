package reassoc

import "kanso/internal/ir"

// worklist is the FIFO of nodes to reprocess (spec §3 "Worklist"). A node's
// membership is tracked by its own scratch link slot pointing back at this
// worklist (the "sentinel equal to the worklist's address" of spec §4.4),
// borrowed through an ir.LinkScope so a panic mid-pass (e.g. a precondition
// assertion) still leaves every slot it touched cleared (spec §9 "Scratch
// link ownership": scoped acquisition with guaranteed release).
type worklist struct {
	scope *ir.LinkScope
	queue []*ir.Node
}

func newWorklist(g *ir.Graph) *worklist { return &worklist{scope: ir.NewLinkScope(g)} }

func (w *worklist) push(n *ir.Node) {
	w.scope.Set(n, w)
	w.queue = append(w.queue, n)
}

func (w *worklist) pop() *ir.Node {
	n := w.queue[0]
	w.queue = w.queue[1:]
	w.scope.Set(n, nil)
	return n
}

func (w *worklist) empty() bool { return len(w.queue) == 0 }

func (w *worklist) enqueued(n *ir.Node) bool { return w.scope.Get(n) == w }

// runDriver runs the forward fixed-point worklist (spec §4.4). It assumes
// Shannon and XOR-equality simplification have already run.
func runDriver(g *ir.Graph) {
	wl := newWorklist(g)
	defer wl.scope.Release()

	for _, n := range g.Nodes() {
		n.SetLink(nil)
		wl.push(n)
	}

	for !wl.empty() {
		n := wl.pop()

		if n.GetMode().IsFloat() && !g.ImpreciseFloatTransformsAllowed() {
			continue
		}
		if !HasRule(n.Opcode()) {
			continue
		}

		changed := false
		g.FireHook(ir.HookBegin, n)
		for reassociate(n) {
			changed = true
		}
		g.FireHook(ir.HookEnd, n)

		if changed {
			for _, in := range n.Inputs() {
				if in != nil && !wl.enqueued(in) {
					wl.push(in)
				}
			}
		}
	}
}
