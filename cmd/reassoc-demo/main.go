// Command reassoc-demo builds the end-to-end reassociation scenarios and
// runs the pass over each one, printing the graph shape before and after.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"kanso/internal/ir"
	"kanso/internal/reassoc"
)

// scenario builds one sample graph and returns its root node plus a label
// describing the rewrite it exercises.
type scenario struct {
	name  string
	build func() (g *ir.Graph, root *ir.Node)
}

func main() {
	scenarios := []scenario{
		{"S1: Add(C1, Add(C2, x)) -> Add(x, C1+C2)", scenarioS1},
		{"S2: Mul(C1, Mul(x, C2)) -> Mul(x, C1*C2)", scenarioS2},
		{"S3: Add(Mul(a,x), Mul(b,x)) -> Mul(Add(a,b), x)", scenarioS3},
		{"S4: And(x, Or(x,z)) -> And(x, Or(C,z))", scenarioS4},
		{"S5: And(Xor(a,b), Or(a,b)) -> And(Xor(a,b), Or(a, Not a))", scenarioS5},
		{"S6: Add(C1, Add(C2, Add(C3, x))) -> Add(x, C1+C2+C3)", scenarioS6},
	}

	for _, s := range scenarios {
		runScenario(s)
	}
}

func runScenario(s scenario) {
	color.Cyan("== %s ==", s.name)

	g, root := s.build()
	before := nodeCount(g)
	fmt.Printf("  before: %d nodes, root %s\n", before, describe(root))

	var verbose bool
	for _, a := range os.Args[1:] {
		if a == "-v" {
			verbose = true
		}
	}
	if verbose {
		g.AddHook(reassoc.VerboseHook(os.Stdout))
	}

	reassoc.Optimize(g)

	after := nodeCount(g)
	fmt.Printf("  after:  %d nodes, root %s\n", after, describe(root))

	if after != before {
		color.Green("  -> rewrite fired (%d -> %d nodes)", before, after)
	} else {
		color.Red("  -> no change")
	}
}

func nodeCount(g *ir.Graph) int { return len(g.Nodes()) }

// describe renders n and, recursively, all of its inputs as a nested
// prefix expression: opcodes, plus the literal value for constants. It
// prints no modes, blocks or node ids — this is demo output, not the
// excluded host compiler's back-end printer.
func describe(n *ir.Node) string {
	if n == nil {
		return "<nil>"
	}
	if n.IsConst() {
		return fmt.Sprintf("Const(%d)", n.ConstValue().Uint64())
	}
	if n.Arity() == 0 {
		return n.Opcode().String()
	}
	parts := make([]string, 0, n.Arity())
	for i := 0; i < n.Arity(); i++ {
		parts = append(parts, describe(n.In(i)))
	}
	s := n.Opcode().String() + "("
	for i, p := range parts {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	return s + ")"
}

func scenarioS1() (*ir.Graph, *ir.Node) {
	g := ir.NewGraph()
	b := g.NewBlock("entry")
	mode := ir.NewIntMode(32, true)
	x := g.NewAddress(b, mode)
	c1 := g.NewConst(b, mode, ir.NewTarval(mode, 3))
	c2 := g.NewConst(b, mode, ir.NewTarval(mode, 4))

	inner := g.NewNode(ir.OpAdd, mode, b, c2, x)
	root := g.NewNode(ir.OpAdd, mode, b, c1, inner)
	return g, root
}

func scenarioS2() (*ir.Graph, *ir.Node) {
	g := ir.NewGraph()
	b := g.NewBlock("entry")
	mode := ir.NewIntMode(32, true)
	x := g.NewAddress(b, mode)
	c1 := g.NewConst(b, mode, ir.NewTarval(mode, 3))
	c2 := g.NewConst(b, mode, ir.NewTarval(mode, 5))

	inner := g.NewNode(ir.OpMul, mode, b, x, c2)
	root := g.NewNode(ir.OpMul, mode, b, c1, inner)
	return g, root
}

func scenarioS3() (*ir.Graph, *ir.Node) {
	g := ir.NewGraph()
	b := g.NewBlock("entry")
	mode := ir.NewIntMode(32, true)
	a := g.NewAddress(b, mode)
	bb := g.NewAddress(b, mode)
	x := g.NewAddress(b, mode)

	left := g.NewNode(ir.OpMul, mode, b, a, x)
	right := g.NewNode(ir.OpMul, mode, b, bb, x)
	root := g.NewNode(ir.OpAdd, mode, b, left, right)
	return g, root
}

func scenarioS4() (*ir.Graph, *ir.Node) {
	g := ir.NewGraph()
	b := g.NewBlock("entry")
	mode := ir.NewIntMode(32, true)
	x := g.NewAddress(b, mode)
	z := g.NewAddress(b, mode)

	or := g.NewNode(ir.OpOr, mode, b, x, z)
	root := g.NewNode(ir.OpAnd, mode, b, x, or)
	return g, root
}

func scenarioS5() (*ir.Graph, *ir.Node) {
	g := ir.NewGraph()
	b := g.NewBlock("entry")
	mode := ir.NewIntMode(32, true)
	a := g.NewAddress(b, mode)
	bb := g.NewAddress(b, mode)

	xor := g.NewNode(ir.OpEor, mode, b, a, bb)
	or := g.NewNode(ir.OpOr, mode, b, a, bb)
	root := g.NewNode(ir.OpAnd, mode, b, xor, or)
	return g, root
}

func scenarioS6() (*ir.Graph, *ir.Node) {
	g := ir.NewGraph()
	b := g.NewBlock("entry")
	mode := ir.NewIntMode(32, true)
	x := g.NewAddress(b, mode)
	c1 := g.NewConst(b, mode, ir.NewTarval(mode, 1))
	c2 := g.NewConst(b, mode, ir.NewTarval(mode, 2))
	c3 := g.NewConst(b, mode, ir.NewTarval(mode, 3))

	innermost := g.NewNode(ir.OpAdd, mode, b, c3, x)
	middle := g.NewNode(ir.OpAdd, mode, b, c2, innermost)
	root := g.NewNode(ir.OpAdd, mode, b, c1, middle)
	return g, root
}
