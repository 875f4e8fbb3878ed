package duostra

import (
	"fmt"

	"github.com/kegliz/zxsyn/device"
	"github.com/kegliz/zxsyn/qcir"
)

// Checker validates a routed operation sequence against the logical
// circuit: every physical two-qubit gate must act on adjacent qubits,
// SWAPs must only permute bindings, and the per-qubit logical gate
// order must be consumed exactly.
type Checker struct {
	logical *qcir.QCir
	dev     *device.Device

	perQubit [][]int // logical gate ids per qubit, in circuit order
	pos      []int   // consumption cursor per qubit
}

// NewChecker builds a checker over a fresh device holding the initial
// placement.
func NewChecker(logical *qcir.QCir, dev *device.Device) *Checker {
	c := &Checker{
		logical:  logical,
		dev:      dev,
		perQubit: make([][]int, logical.NumQubits()),
		pos:      make([]int, logical.NumQubits()),
	}
	for i := 0; i < logical.NumGates(); i++ {
		for _, q := range logical.Gate(i).Qubits {
			c.perQubit[q] = append(c.perQubit[q], i)
		}
	}
	return c
}

// next returns the pending logical gate id on qubit q, or -1.
func (c *Checker) next(q int) int {
	if c.pos[q] >= len(c.perQubit[q]) {
		return -1
	}
	return c.perQubit[q][c.pos[q]]
}

// Check replays ops (in begin-time order) and reports the first
// mismatch as an error; nil means the mapping is equivalent.
func (c *Checker) Check(ops []device.Operation) error {
	for _, op := range ops {
		if op.IsSwap() {
			if !c.dev.Qubit(op.Q0).IsAdjacent(op.Q1) {
				return fmt.Errorf("duostra: SWAP on non-adjacent qubits %d, %d", op.Q0, op.Q1)
			}
			c.dev.ApplySwapCheck(op.Q0, op.Q1)
			continue
		}
		if op.Q1 < 0 {
			if err := c.executeSingle(op); err != nil {
				return err
			}
			continue
		}
		if err := c.executeDouble(op); err != nil {
			return err
		}
	}
	return c.checkRemaining()
}

func (c *Checker) executeSingle(op device.Operation) error {
	l := c.dev.Qubit(op.Q0).Logical()
	if l < 0 || l >= c.logical.NumQubits() {
		return fmt.Errorf("duostra: physical %d holds no logical qubit", op.Q0)
	}
	id := c.next(l)
	if id < 0 {
		return fmt.Errorf("duostra: spurious %s on logical %d", op.Type, l)
	}
	g := c.logical.Gate(id)
	if g.Type != op.Type || !g.Phase.Equal(op.Phase) || len(g.Qubits) != 1 {
		return fmt.Errorf("duostra: expected %s on logical %d, got %s", g, l, op.Type)
	}
	c.pos[l]++
	return nil
}

func (c *Checker) executeDouble(op device.Operation) error {
	if !c.dev.Qubit(op.Q0).IsAdjacent(op.Q1) {
		return fmt.Errorf("duostra: %s on non-adjacent qubits %d, %d", op.Type, op.Q0, op.Q1)
	}
	l0 := c.dev.Qubit(op.Q0).Logical()
	l1 := c.dev.Qubit(op.Q1).Logical()
	if l0 < 0 || l1 < 0 || l0 >= c.logical.NumQubits() || l1 >= c.logical.NumQubits() {
		return fmt.Errorf("duostra: %s on unbound qubits %d, %d", op.Type, op.Q0, op.Q1)
	}
	id0, id1 := c.next(l0), c.next(l1)
	if id0 < 0 || id0 != id1 {
		return fmt.Errorf("duostra: dependency violation at %s on logical %d, %d", op.Type, l0, l1)
	}
	g := c.logical.Gate(id0)
	if g.Type != op.Type || !g.Phase.Equal(op.Phase) {
		return fmt.Errorf("duostra: expected %s, got %s", g, op.Type)
	}
	symmetric := g.Type == qcir.CZGate || g.Type == qcir.SwapGate
	oriented := g.Qubits[0] == l0 && g.Qubits[1] == l1
	flipped := g.Qubits[0] == l1 && g.Qubits[1] == l0
	if !oriented && !(symmetric && flipped) {
		return fmt.Errorf("duostra: %s operands reversed: want %v, got [%d %d]",
			g.Type, g.Qubits, l0, l1)
	}
	c.pos[l0]++
	c.pos[l1]++
	return nil
}

func (c *Checker) checkRemaining() error {
	for q, list := range c.perQubit {
		if c.pos[q] != len(list) {
			return fmt.Errorf("duostra: %d logical gates left on qubit %d",
				len(list)-c.pos[q], q)
		}
	}
	return nil
}
