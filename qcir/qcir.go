package qcir

import "fmt"

// Sentinel errors for circuit construction.
var (
	ErrBadQubit = fmt.Errorf("qcir: qubit index out of range")
	ErrSpan     = fmt.Errorf("qcir: gate spans invalid qubit range")
)

// QCir is a logical circuit: an ordered gate list over n qubits.
type QCir struct {
	qubits int
	gates  []Gate
}

// New creates an empty circuit over the given qubit count.
func New(qubits int) *QCir {
	return &QCir{qubits: qubits}
}

// NumQubits returns the circuit width.
func (c *QCir) NumQubits() int { return c.qubits }

// NumGates returns the gate count.
func (c *QCir) NumGates() int { return len(c.gates) }

// Gates returns the gate list in circuit order.
func (c *QCir) Gates() []Gate {
	out := make([]Gate, len(c.gates))
	copy(out, c.gates)
	return out
}

// Gate returns the i-th gate.
func (c *QCir) Gate(i int) Gate { return c.gates[i] }

// Append adds a gate at the end of the circuit.
func (c *QCir) Append(g Gate) error {
	if err := c.check(g); err != nil {
		return err
	}
	c.gates = append(c.gates, g)
	return nil
}

// Prepend adds a gate at the front of the circuit.
func (c *QCir) Prepend(g Gate) error {
	if err := c.check(g); err != nil {
		return err
	}
	c.gates = append([]Gate{g}, c.gates...)
	return nil
}

// Reverse flips the gate order in place. Extraction peels gates from the
// output side and reverses once at the end.
func (c *QCir) Reverse() {
	for i, j := 0, len(c.gates)-1; i < j; i, j = i+1, j-1 {
		c.gates[i], c.gates[j] = c.gates[j], c.gates[i]
	}
}

// Copy returns a deep clone.
func (c *QCir) Copy() *QCir {
	nc := &QCir{qubits: c.qubits, gates: make([]Gate, len(c.gates))}
	for i, g := range c.gates {
		ng := g
		ng.Qubits = append([]int(nil), g.Qubits...)
		nc.gates[i] = ng
	}
	return nc
}

// Depth returns the number of layers when gates pack greedily.
func (c *QCir) Depth() int {
	level := make([]int, c.qubits)
	depth := 0
	for _, g := range c.gates {
		at := 0
		for _, q := range g.Qubits {
			if level[q] > at {
				at = level[q]
			}
		}
		at++
		for _, q := range g.Qubits {
			level[q] = at
		}
		if at > depth {
			depth = at
		}
	}
	return depth
}

// TwoQubitCount returns the number of two-qubit gates.
func (c *QCir) TwoQubitCount() int {
	n := 0
	for _, g := range c.gates {
		if g.IsTwoQubit() {
			n++
		}
	}
	return n
}

func (c *QCir) check(g Gate) error {
	if len(g.Qubits) != g.Type.Span() {
		return fmt.Errorf("%w: %s wants %d qubits, got %d",
			ErrSpan, g.Type, g.Type.Span(), len(g.Qubits))
	}
	seen := make(map[int]bool, len(g.Qubits))
	for _, q := range g.Qubits {
		if q < 0 || q >= c.qubits {
			return fmt.Errorf("%w: %d of %d", ErrBadQubit, q, c.qubits)
		}
		if seen[q] {
			return fmt.Errorf("%w: duplicate qubit %d in %s", ErrSpan, q, g.Type)
		}
		seen[q] = true
	}
	return nil
}
