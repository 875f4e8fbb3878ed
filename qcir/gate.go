// Package qcir models logical quantum circuits as ordered gate lists:
// the extractor's output and the router's input. A dependency topology
// over the gate list drives the schedulers.
package qcir

import (
	"fmt"
	"strings"

	"github.com/kegliz/zxsyn/zx"
)

// GateType is the canonical gate name.
type GateType string

const (
	HGate    GateType = "H"
	XGate    GateType = "X"
	YGate    GateType = "Y"
	ZGate    GateType = "Z"
	SGate    GateType = "S"
	SdgGate  GateType = "SDG"
	TGate    GateType = "T"
	TdgGate  GateType = "TDG"
	RZGate   GateType = "RZ"
	RXGate   GateType = "RX"
	CXGate   GateType = "CX"
	CZGate   GateType = "CZ"
	SwapGate GateType = "SWAP"
)

// Gate is one operation on absolute qubit indices. Rotation gates carry
// a phase in units of pi; fixed gates leave it zero.
type Gate struct {
	Type   GateType
	Qubits []int
	Phase  zx.Phase
}

// Span returns how many qubits a gate type acts on.
func (t GateType) Span() int {
	switch t {
	case CXGate, CZGate, SwapGate:
		return 2
	default:
		return 1
	}
}

// IsTwoQubit reports whether the gate couples two qubits.
func (g Gate) IsTwoQubit() bool { return g.Type.Span() == 2 }

func (g Gate) String() string {
	qs := make([]string, len(g.Qubits))
	for i, q := range g.Qubits {
		qs[i] = fmt.Sprint(q)
	}
	if g.Phase.IsZero() && g.Type != RZGate && g.Type != RXGate {
		return fmt.Sprintf("%s(%s)", g.Type, strings.Join(qs, ","))
	}
	return fmt.Sprintf("%s(%s; %s)", g.Type, strings.Join(qs, ","), g.Phase)
}

// Single-qubit constructors.
func NewH(q int) Gate { return Gate{Type: HGate, Qubits: []int{q}} }
func NewX(q int) Gate { return Gate{Type: XGate, Qubits: []int{q}} }
func NewZ(q int) Gate { return Gate{Type: ZGate, Qubits: []int{q}} }
func NewS(q int) Gate { return Gate{Type: SGate, Qubits: []int{q}} }
func NewT(q int) Gate { return Gate{Type: TGate, Qubits: []int{q}} }

// NewRZ builds a Z-rotation by phase (units of pi).
func NewRZ(q int, ph zx.Phase) Gate { return Gate{Type: RZGate, Qubits: []int{q}, Phase: ph} }

// NewRX builds an X-rotation by phase (units of pi).
func NewRX(q int, ph zx.Phase) Gate { return Gate{Type: RXGate, Qubits: []int{q}, Phase: ph} }

// Two-qubit constructors; control first for the controlled gates.
func NewCX(ctrl, tgt int) Gate { return Gate{Type: CXGate, Qubits: []int{ctrl, tgt}} }
func NewCZ(ctrl, tgt int) Gate { return Gate{Type: CZGate, Qubits: []int{ctrl, tgt}} }
func NewSwap(a, b int) Gate    { return Gate{Type: SwapGate, Qubits: []int{a, b}} }

// Factory resolves a gate type by common aliases.
func Factory(name string) (GateType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "h":
		return HGate, nil
	case "x", "not":
		return XGate, nil
	case "y":
		return YGate, nil
	case "z":
		return ZGate, nil
	case "s":
		return SGate, nil
	case "sdg", "sdagger":
		return SdgGate, nil
	case "t":
		return TGate, nil
	case "tdg", "tdagger":
		return TdgGate, nil
	case "rz", "p", "phase":
		return RZGate, nil
	case "rx":
		return RXGate, nil
	case "cx", "cnot":
		return CXGate, nil
	case "cz":
		return CZGate, nil
	case "swap":
		return SwapGate, nil
	}
	return "", ErrUnknownGate{Name: name}
}

// ErrUnknownGate is returned by Factory when the label isn't recognised.
type ErrUnknownGate struct{ Name string }

func (e ErrUnknownGate) Error() string { return "qcir: unknown gate " + e.Name }
