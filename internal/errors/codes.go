package errors

import "fmt"

// Precondition codes for the reassociation pass.
//
// These are never returned as error values: the pass is total for any
// well-formed graph (spec §7), so a violated precondition means a caller
// bug, not a recoverable failure. The code ranges below mirror how the
// original compiler's error package carved out ranges per concern, scaled
// down to this pass's narrower surface.
//
// R0001-R0099: graph-shape preconditions (pinned, properties assured)
// R0100-R0199: rewrite-rule preconditions (commutativity, opcode table)
//
// Stale Shannon/XOR-equality targets (an earlier applied hit invalidating a
// later pending one) are not caller bugs — they're the expected outcome of
// collecting hits before applying any of them — so they are handled by
// quietly re-validating and skipping (shannonHitValid, replaceUntilOtherUser)
// rather than through this panic-raised assertion mechanism. Likewise a
// float-mode node under disallowed imprecise transforms is routinely skipped
// by the driver, not asserted against.
const (
	// R0001: the graph handed to Optimize is not pinned (has floating nodes)
	GraphNotPinned = "R0001"

	// R0002: a required IRG property was not assured before the pass ran
	PropertiesNotAssured = "R0002"

	// R0100: a reassociation rule was invoked on a non-commutative opcode
	NotCommutative = "R0100"
)

// descriptions gives a human-readable explanation per code, the same role
// GetErrorDescription played for the original compiler's diagnostics.
var descriptions = map[string]string{
	GraphNotPinned:       "graph has floating (non-pinned) nodes; reassociation requires a pinned graph",
	PropertiesNotAssured: "dominance/loop-info/out-edges were not assured before the pass ran",
	NotCommutative:       "reassociation rule invoked on a non-commutative opcode",
}

// Describe returns a human-readable description of a precondition code, or
// "unknown precondition" if the code is not recognized.
func Describe(code string) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "unknown precondition"
}

// PreconditionError reports a violated compiler-internal invariant.
type PreconditionError struct {
	Code    string
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, Describe(e.Code))
}

// Assert panics with a PreconditionError if cond is false. Used at the
// boundaries the spec calls out as assertion-enforced (graph pinned, IRG
// properties consistent) rather than as ordinary error returns, because
// violating them indicates a caller bug (spec §7).
func Assert(cond bool, code, format string, args ...interface{}) {
	if !cond {
		panic(&PreconditionError{Code: code, Message: fmt.Sprintf(format, args...)})
	}
}
