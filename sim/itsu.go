package sim

import (
	"fmt"

	"github.com/itsubaki/q"
	"github.com/kegliz/zxsyn/qcir"
)

// Sampler runs circuits shot-by-shot on the itsubaki/q backend and
// histograms the measured bit-strings.
type Sampler struct {
	Shots int
}

// NewSampler creates a sampler; shots <= 0 defaults to 1024.
func NewSampler(shots int) *Sampler {
	if shots <= 0 {
		shots = 1024
	}
	return &Sampler{Shots: shots}
}

// Sample executes the circuit, measuring every qubit at the end of each
// shot.
func (s *Sampler) Sample(c *qcir.QCir) (map[string]int, error) {
	hist := make(map[string]int)
	for shot := 0; shot < s.Shots; shot++ {
		key, err := runOnce(c)
		if err != nil {
			return nil, fmt.Errorf("sim: shot %d failed: %w", shot+1, err)
		}
		hist[key]++
	}
	return hist, nil
}

// runOnce plays the circuit one time, returning the measured string.
func runOnce(c *qcir.QCir) (string, error) {
	sim := q.New()
	qs := sim.ZeroWith(c.NumQubits())
	for _, g := range c.Gates() {
		if err := applyItsu(sim, qs, g); err != nil {
			return "", err
		}
	}
	bits := make([]byte, len(qs))
	for i, qb := range qs {
		if sim.Measure(qb).IsOne() {
			bits[i] = '1'
		} else {
			bits[i] = '0'
		}
	}
	return string(bits), nil
}

func applyItsu(sim *q.Q, qs []q.Qubit, g qcir.Gate) error {
	switch g.Type {
	case qcir.HGate:
		sim.H(qs[g.Qubits[0]])
	case qcir.XGate:
		sim.X(qs[g.Qubits[0]])
	case qcir.YGate:
		sim.Y(qs[g.Qubits[0]])
	case qcir.ZGate:
		sim.Z(qs[g.Qubits[0]])
	case qcir.SGate:
		sim.S(qs[g.Qubits[0]])
	case qcir.SdgGate:
		sim.Z(qs[g.Qubits[0]])
		sim.S(qs[g.Qubits[0]])
	case qcir.TGate:
		sim.T(qs[g.Qubits[0]])
	case qcir.TdgGate:
		sim.Z(qs[g.Qubits[0]])
		sim.S(qs[g.Qubits[0]])
		sim.T(qs[g.Qubits[0]])
	case qcir.RZGate:
		return applyRZ(sim, qs[g.Qubits[0]], g)
	case qcir.RXGate:
		sim.H(qs[g.Qubits[0]])
		if err := applyRZ(sim, qs[g.Qubits[0]], g); err != nil {
			return err
		}
		sim.H(qs[g.Qubits[0]])
	case qcir.CXGate:
		sim.CNOT(qs[g.Qubits[0]], qs[g.Qubits[1]])
	case qcir.CZGate:
		sim.CZ(qs[g.Qubits[0]], qs[g.Qubits[1]])
	case qcir.SwapGate:
		sim.Swap(qs[g.Qubits[0]], qs[g.Qubits[1]])
	default:
		return fmt.Errorf("sim: unsupported gate %s", g.Type)
	}
	return nil
}

// applyRZ lowers an RZ whose denominator divides 4 onto T powers.
func applyRZ(sim *q.Q, qb q.Qubit, g qcir.Gate) error {
	den := g.Phase.Den()
	if 4%den != 0 {
		return fmt.Errorf("sim: RZ phase %s is not a multiple of pi/4", g.Phase)
	}
	eighths := g.Phase.Num() * (4 / den) // T = pi/4
	for i := int64(0); i < eighths%8; i++ {
		sim.T(qb)
	}
	return nil
}
