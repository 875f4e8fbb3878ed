// Package convert lowers logical circuits into ZX-graphs, one spider
// chain per qubit wire with Hadamard gates folded into edge kinds.
package convert

import (
	"fmt"

	"github.com/kegliz/zxsyn/qcir"
	"github.com/kegliz/zxsyn/zx"
)

// converter tracks, per wire, the open end of the spider chain and the
// pending edge kind accumulated from Hadamard gates.
type converter struct {
	g    *zx.Graph
	last []zx.VertexID
	pend []zx.EdgeType
	col  float64
}

// ToZX builds the ZX-graph of a circuit.
func ToZX(c *qcir.QCir) (*zx.Graph, error) {
	cv := &converter{
		g:    zx.NewGraph(),
		last: make([]zx.VertexID, c.NumQubits()),
		pend: make([]zx.EdgeType, c.NumQubits()),
		col:  1,
	}
	for q := 0; q < c.NumQubits(); q++ {
		in, err := cv.g.AddInput(q)
		if err != nil {
			return nil, err
		}
		cv.last[q] = in.ID()
	}

	for _, g := range c.Gates() {
		if err := cv.emit(g); err != nil {
			return nil, err
		}
		cv.col++
	}

	for q := 0; q < c.NumQubits(); q++ {
		if err := cv.closeWire(q); err != nil {
			return nil, err
		}
	}
	return cv.g, nil
}

// spider appends a spider to wire q, consuming the pending edge kind.
func (cv *converter) spider(q int, t zx.VertexType, ph zx.Phase) (*zx.Vertex, error) {
	v, err := cv.g.AddSpider(t, ph, float64(q), cv.col)
	if err != nil {
		return nil, err
	}
	if err := cv.g.AddEdge(cv.last[q], v.ID(), cv.pend[q]); err != nil {
		return nil, err
	}
	cv.last[q] = v.ID()
	cv.pend[q] = zx.Simple
	return v, nil
}

func (cv *converter) emit(g qcir.Gate) error {
	switch g.Type {
	case qcir.HGate:
		cv.pend[g.Qubits[0]] = cv.pend[g.Qubits[0]].Toggle()
		return nil
	case qcir.ZGate:
		_, err := cv.spider(g.Qubits[0], zx.ZSpider, zx.PhasePi)
		return err
	case qcir.SGate:
		_, err := cv.spider(g.Qubits[0], zx.ZSpider, zx.NewPhase(1, 2))
		return err
	case qcir.SdgGate:
		_, err := cv.spider(g.Qubits[0], zx.ZSpider, zx.NewPhase(3, 2))
		return err
	case qcir.TGate:
		_, err := cv.spider(g.Qubits[0], zx.ZSpider, zx.NewPhase(1, 4))
		return err
	case qcir.TdgGate:
		_, err := cv.spider(g.Qubits[0], zx.ZSpider, zx.NewPhase(7, 4))
		return err
	case qcir.RZGate:
		_, err := cv.spider(g.Qubits[0], zx.ZSpider, g.Phase)
		return err
	case qcir.XGate:
		_, err := cv.spider(g.Qubits[0], zx.XSpider, zx.PhasePi)
		return err
	case qcir.RXGate:
		_, err := cv.spider(g.Qubits[0], zx.XSpider, g.Phase)
		return err
	case qcir.YGate:
		// Y = iXZ; the global phase is not tracked
		if _, err := cv.spider(g.Qubits[0], zx.ZSpider, zx.PhasePi); err != nil {
			return err
		}
		_, err := cv.spider(g.Qubits[0], zx.XSpider, zx.PhasePi)
		return err
	case qcir.CXGate:
		ctrl, err := cv.spider(g.Qubits[0], zx.ZSpider, zx.PhaseZero)
		if err != nil {
			return err
		}
		tgt, err := cv.spider(g.Qubits[1], zx.XSpider, zx.PhaseZero)
		if err != nil {
			return err
		}
		return cv.g.AddEdge(ctrl.ID(), tgt.ID(), zx.Simple)
	case qcir.CZGate:
		a, err := cv.spider(g.Qubits[0], zx.ZSpider, zx.PhaseZero)
		if err != nil {
			return err
		}
		b, err := cv.spider(g.Qubits[1], zx.ZSpider, zx.PhaseZero)
		if err != nil {
			return err
		}
		return cv.g.AddEdge(a.ID(), b.ID(), zx.Hadamard)
	case qcir.SwapGate:
		a, b := g.Qubits[0], g.Qubits[1]
		cv.last[a], cv.last[b] = cv.last[b], cv.last[a]
		cv.pend[a], cv.pend[b] = cv.pend[b], cv.pend[a]
		return nil
	}
	return fmt.Errorf("convert: unsupported gate %s", g.Type)
}

// closeWire attaches the output boundary of wire q.
func (cv *converter) closeWire(q int) error {
	out, err := cv.g.AddOutput(q)
	if err != nil {
		return err
	}
	lastV, _ := cv.g.Vertex(cv.last[q])
	if cv.pend[q] == zx.Hadamard && lastV.Type() == zx.Boundary {
		// a lone Hadamard wire needs a spider to carry the H edge
		z, err := cv.g.AddSpider(zx.ZSpider, zx.PhaseZero, float64(q), cv.col)
		if err != nil {
			return err
		}
		if err := cv.g.AddEdge(cv.last[q], z.ID(), zx.Hadamard); err != nil {
			return err
		}
		return cv.g.AddEdge(z.ID(), out.ID(), zx.Simple)
	}
	if cv.pend[q] == zx.Simple && lastV.Type() == zx.Boundary {
		return cv.g.AddWire(cv.last[q], out.ID())
	}
	return cv.g.AddEdge(cv.last[q], out.ID(), cv.pend[q])
}
