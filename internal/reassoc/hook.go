package reassoc

import (
	"fmt"
	"io"

	"kanso/internal/ir"
)

// VerboseHook returns a Hook (spec §6 hook_reassociate) that prints a line
// per node at rule-application begin/end, the same "what ran and whether it
// changed anything" idiom the teacher's OptimizationPipeline.Run logs with
// fmt.Printf. Intended for cmd/reassoc-demo; production callers register
// nothing and get the default no-op.
func VerboseHook(w io.Writer) ir.Hook {
	return func(phase ir.HookPhase, n *ir.Node) {
		switch phase {
		case ir.HookBegin:
			fmt.Fprintf(w, "  - node #%d (%s): reassociating...\n", n.GetID(), n.Opcode())
		case ir.HookEnd:
			fmt.Fprintf(w, "    done with node #%d\n", n.GetID())
		}
	}
}
