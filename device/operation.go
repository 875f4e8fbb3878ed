// Package device models the physical machine: a coupling graph of
// qubits with occupied-time clocks, logical bindings, and all-pairs
// shortest-path tables computed once at load time.
package device

import (
	"fmt"

	"github.com/kegliz/zxsyn/qcir"
	"github.com/kegliz/zxsyn/zx"
)

// Operation is one physical gate instance: kind, qubits, phase, and the
// time window it occupies.
type Operation struct {
	Type  qcir.GateType
	Phase zx.Phase
	Q0    int
	Q1    int // -1 for single-qubit operations
	Begin int
	End   int
}

// NewSingleOp builds a single-qubit operation.
func NewSingleOp(t qcir.GateType, ph zx.Phase, q, begin, end int) Operation {
	return Operation{Type: t, Phase: ph, Q0: q, Q1: -1, Begin: begin, End: end}
}

// NewDoubleOp builds a two-qubit operation.
func NewDoubleOp(t qcir.GateType, ph zx.Phase, q0, q1, begin, end int) Operation {
	return Operation{Type: t, Phase: ph, Q0: q0, Q1: q1, Begin: begin, End: end}
}

// IsSwap reports whether the operation is a SWAP.
func (op Operation) IsSwap() bool { return op.Type == qcir.SwapGate }

// Duration returns the occupied time span.
func (op Operation) Duration() int { return op.End - op.Begin }

func (op Operation) String() string {
	if op.Q1 < 0 {
		return fmt.Sprintf("%-6s Q%-3d        from: %-6d to: %d", op.Type, op.Q0, op.Begin, op.End)
	}
	return fmt.Sprintf("%-6s Q%-3d Q%-3d   from: %-6d to: %d", op.Type, op.Q0, op.Q1, op.Begin, op.End)
}
