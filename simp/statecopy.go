package simp

import (
	"fmt"

	"github.com/kegliz/zxsyn/zx"
)

// StateCopy copies a degree-1 Pauli state through an opposite-colour
// spider: the state and the spider vanish, and a fresh copy of the state
// hangs off every other leg of the spider. The spider's own phase only
// contributes a scalar.
type StateCopy struct{}

func (StateCopy) Name() string { return "state-copy" }

func (StateCopy) Find(g *zx.Graph) []Match {
	var cands []candidate
	for _, s := range g.Vertices() {
		if !s.Type().IsSpider() || s.Degree() != 1 || !s.Phase().IsPauli() {
			continue
		}
		n := s.Neighbors()[0]
		if n.Kind != zx.Simple {
			continue
		}
		w, _ := g.Vertex(n.ID)
		if w.Type() != s.Type().Dual() {
			continue
		}
		extra := w.NeighborIDs() // targets gain a copy each
		cands = append(cands, newCandidate([]zx.VertexID{s.ID(), n.ID}, extra...))
	}
	return selectDisjoint(cands)
}

func (StateCopy) Apply(g *zx.Graph, m Match) error {
	if len(m.Vertices) != 2 {
		return fmt.Errorf("simp: state-copy wants 2 vertices, got %d", len(m.Vertices))
	}
	s, ok := g.Vertex(m.Vertices[0])
	if !ok {
		return fmt.Errorf("%w: %d", zx.ErrVertexNotFound, m.Vertices[0])
	}
	w, ok := g.Vertex(m.Vertices[1])
	if !ok {
		return fmt.Errorf("%w: %d", zx.ErrVertexNotFound, m.Vertices[1])
	}

	kind, phase := s.Type(), s.Phase()
	targets := make([]zx.Neighbor, 0, w.Degree()-1)
	for _, n := range w.Neighbors() {
		if n.ID != s.ID() {
			targets = append(targets, n)
		}
	}
	if err := g.RemoveVertex(s.ID()); err != nil {
		return err
	}
	row, col := w.Row(), w.Col()
	if err := g.RemoveVertex(w.ID()); err != nil {
		return err
	}
	for i, n := range targets {
		c, err := g.AddSpider(kind, phase, row+float64(i)*0.25, col)
		if err != nil {
			return err
		}
		if err := g.AddEdge(c.ID(), n.ID, n.Kind); err != nil {
			return err
		}
	}
	return nil
}

// Monovariant: total edge count; deg(w) edges leave, deg(w)-1 return.
func (StateCopy) Monovariant(g *zx.Graph) int { return g.NumEdges() }
