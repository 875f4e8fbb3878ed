package simp

import (
	"fmt"

	"github.com/kegliz/zxsyn/zx"
)

// Pivot removes a Hadamard edge between two interior Pauli Z-spiders,
// complementing the edges across the three neighbourhood classes and
// shifting phases per the pivot law.
type Pivot struct{}

func (Pivot) Name() string { return "pivot" }

// matchAt checks the precondition on edge (u, v): both interior Pauli
// Z-spiders joined by a Hadamard edge, neighbourhoods pure Hadamard over
// Z-spiders.
func (Pivot) matchAt(g *zx.Graph, uID, vID zx.VertexID) bool {
	for _, id := range []zx.VertexID{uID, vID} {
		v, ok := g.Vertex(id)
		if !ok || v.Type() != zx.ZSpider || !v.Phase().IsPauli() {
			return false
		}
		for _, n := range v.Neighbors() {
			if n.Kind != zx.Hadamard {
				return false
			}
			nb, _ := g.Vertex(n.ID)
			if nb.Type() != zx.ZSpider {
				return false
			}
		}
	}
	u, _ := g.Vertex(uID)
	return u.HasEdge(vID, zx.Hadamard)
}

func (r Pivot) Find(g *zx.Graph) []Match {
	var cands []candidate
	for _, e := range g.Edges() {
		if e.Kind != zx.Hadamard || e.U == e.V || !r.matchAt(g, e.U, e.V) {
			continue
		}
		u, _ := g.Vertex(e.U)
		v, _ := g.Vertex(e.V)
		extra := append(u.NeighborIDs(), v.NeighborIDs()...)
		cands = append(cands, newCandidate([]zx.VertexID{e.U, e.V}, extra...))
	}
	return selectDisjoint(cands)
}

func (r Pivot) Apply(g *zx.Graph, m Match) error {
	if len(m.Vertices) != 2 {
		return fmt.Errorf("simp: pivot wants the edge pair, got %d ids", len(m.Vertices))
	}
	uID, vID := m.Vertices[0], m.Vertices[1]
	if !r.matchAt(g, uID, vID) {
		return fmt.Errorf("simp: pivot precondition lost at (%d, %d)", uID, vID)
	}
	u, _ := g.Vertex(uID)
	v, _ := g.Vertex(vID)
	phaseU, phaseV := u.Phase(), v.Phase()

	nu := neighborsExcept(u, vID)
	nv := neighborsExcept(v, uID)
	inNv := make(map[zx.VertexID]bool, len(nv))
	for _, id := range nv {
		inNv[id] = true
	}
	inNu := make(map[zx.VertexID]bool, len(nu))
	for _, id := range nu {
		inNu[id] = true
	}

	// complement Nu x Nv; diagonal pairs are excluded, their pi lands in
	// the phase update below
	for _, a := range nu {
		for _, b := range nv {
			if a == b {
				continue
			}
			if err := g.AddEdge(a, b, zx.Hadamard); err != nil {
				return err
			}
		}
	}

	both := phaseU.Add(phaseV).Add(zx.PhasePi)
	seen := make(map[zx.VertexID]bool)
	for _, id := range nu {
		if seen[id] {
			continue
		}
		seen[id] = true
		nb, _ := g.Vertex(id)
		if inNv[id] {
			nb.AddPhase(both)
		} else {
			nb.AddPhase(phaseV)
		}
	}
	for _, id := range nv {
		if seen[id] || inNu[id] {
			continue
		}
		seen[id] = true
		nb, _ := g.Vertex(id)
		nb.AddPhase(phaseU)
	}

	if err := g.RemoveVertex(uID); err != nil {
		return err
	}
	return g.RemoveVertex(vID)
}

func (Pivot) Monovariant(g *zx.Graph) int { return g.NumVertices() }

func neighborsExcept(v *zx.Vertex, skip zx.VertexID) []zx.VertexID {
	var out []zx.VertexID
	for _, id := range v.NeighborIDs() {
		if id != skip {
			out = append(out, id)
		}
	}
	return out
}
