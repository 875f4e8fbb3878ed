// Package sim is the tensor-evaluation oracle: a statevector backend
// for exact circuit equivalence, plus an itsubaki/q sampling runner for
// shot-based inspection.
package sim

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/kegliz/zxsyn/qcir"
	"github.com/kegliz/zxsyn/zx"
)

// State is the statevector of a quantum register. Qubit 0 is the most
// significant bit of the amplitude index.
type State struct {
	numQubits  int
	amplitudes []complex128
}

// NewState creates |0...0> over n qubits.
func NewState(n int) *State {
	s := &State{numQubits: n, amplitudes: make([]complex128, 1<<uint(n))}
	s.amplitudes[0] = 1
	return s
}

// NewBasisState creates the computational basis state |x>.
func NewBasisState(n int, x int) *State {
	s := &State{numQubits: n, amplitudes: make([]complex128, 1<<uint(n))}
	s.amplitudes[x] = 1
	return s
}

// NumQubits returns the register width.
func (s *State) NumQubits() int { return s.numQubits }

// Amplitudes returns the raw statevector.
func (s *State) Amplitudes() []complex128 {
	out := make([]complex128, len(s.amplitudes))
	copy(out, s.amplitudes)
	return out
}

func (s *State) bit(index, qubit int) int {
	return (index >> uint(s.numQubits-1-qubit)) & 1
}

func (s *State) flip(index, qubit int) int {
	return index ^ (1 << uint(s.numQubits-1-qubit))
}

// applySingle applies a 2x2 unitary to one qubit.
func (s *State) applySingle(q int, m [2][2]complex128) {
	done := make([]bool, len(s.amplitudes))
	for i := range s.amplitudes {
		if done[i] || s.bit(i, q) == 1 {
			continue
		}
		j := s.flip(i, q)
		a0, a1 := s.amplitudes[i], s.amplitudes[j]
		s.amplitudes[i] = m[0][0]*a0 + m[0][1]*a1
		s.amplitudes[j] = m[1][0]*a0 + m[1][1]*a1
		done[i], done[j] = true, true
	}
}

// phaseRad converts a phase in units of pi to radians.
func phaseRad(p zx.Phase) float64 { return math.Pi * p.Float() }

// ApplyGate applies one circuit gate to the state.
func (s *State) ApplyGate(g qcir.Gate) error {
	inv := complex(1/math.Sqrt2, 0)
	switch g.Type {
	case qcir.HGate:
		s.applySingle(g.Qubits[0], [2][2]complex128{{inv, inv}, {inv, -inv}})
	case qcir.XGate:
		s.applySingle(g.Qubits[0], [2][2]complex128{{0, 1}, {1, 0}})
	case qcir.YGate:
		s.applySingle(g.Qubits[0], [2][2]complex128{{0, -1i}, {1i, 0}})
	case qcir.ZGate:
		s.applySingle(g.Qubits[0], [2][2]complex128{{1, 0}, {0, -1}})
	case qcir.SGate:
		s.applySingle(g.Qubits[0], [2][2]complex128{{1, 0}, {0, 1i}})
	case qcir.SdgGate:
		s.applySingle(g.Qubits[0], [2][2]complex128{{1, 0}, {0, -1i}})
	case qcir.TGate:
		s.applySingle(g.Qubits[0], [2][2]complex128{{1, 0}, {0, cmplx.Exp(1i * math.Pi / 4)}})
	case qcir.TdgGate:
		s.applySingle(g.Qubits[0], [2][2]complex128{{1, 0}, {0, cmplx.Exp(-1i * math.Pi / 4)}})
	case qcir.RZGate:
		ph := cmplx.Exp(complex(0, phaseRad(g.Phase)))
		s.applySingle(g.Qubits[0], [2][2]complex128{{1, 0}, {0, ph}})
	case qcir.RXGate:
		half := phaseRad(g.Phase) / 2
		c := complex(math.Cos(half), 0)
		is := complex(0, -math.Sin(half))
		s.applySingle(g.Qubits[0], [2][2]complex128{{c, is}, {is, c}})
	case qcir.CXGate:
		ctrl, tgt := g.Qubits[0], g.Qubits[1]
		for i := range s.amplitudes {
			if s.bit(i, ctrl) == 1 && s.bit(i, tgt) == 0 {
				j := s.flip(i, tgt)
				s.amplitudes[i], s.amplitudes[j] = s.amplitudes[j], s.amplitudes[i]
			}
		}
	case qcir.CZGate:
		a, b := g.Qubits[0], g.Qubits[1]
		for i := range s.amplitudes {
			if s.bit(i, a) == 1 && s.bit(i, b) == 1 {
				s.amplitudes[i] = -s.amplitudes[i]
			}
		}
	case qcir.SwapGate:
		a, b := g.Qubits[0], g.Qubits[1]
		for i := range s.amplitudes {
			if s.bit(i, a) == 1 && s.bit(i, b) == 0 {
				j := s.flip(s.flip(i, a), b)
				s.amplitudes[i], s.amplitudes[j] = s.amplitudes[j], s.amplitudes[i]
			}
		}
	default:
		return fmt.Errorf("sim: unsupported gate %s", g.Type)
	}
	return nil
}

// Run plays a whole circuit on the state.
func (s *State) Run(c *qcir.QCir) error {
	if c.NumQubits() != s.numQubits {
		return fmt.Errorf("sim: circuit width %d vs state width %d", c.NumQubits(), s.numQubits)
	}
	for _, g := range c.Gates() {
		if err := s.ApplyGate(g); err != nil {
			return err
		}
	}
	return nil
}
