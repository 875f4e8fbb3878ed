package simp

import (
	"fmt"

	"github.com/kegliz/zxsyn/zx"
)

// IdentityRemoval drops phase-0 degree-2 spiders whose two incident edges
// have the same kind; the two neighbours are joined by a Simple wire.
type IdentityRemoval struct{}

func (IdentityRemoval) Name() string { return "identity-removal" }

func (IdentityRemoval) Find(g *zx.Graph) []Match {
	var cands []candidate
	for _, v := range g.Vertices() {
		if !v.Type().IsSpider() || !v.Phase().IsZero() || v.Degree() != 2 {
			continue
		}
		ns := v.Neighbors()
		if ns[0].Kind != ns[1].Kind || ns[0].ID == ns[1].ID {
			continue
		}
		cands = append(cands, newCandidate(
			[]zx.VertexID{v.ID()}, ns[0].ID, ns[1].ID))
	}
	return selectDisjoint(cands)
}

func (IdentityRemoval) Apply(g *zx.Graph, m Match) error {
	if len(m.Vertices) != 1 {
		return fmt.Errorf("simp: identity-removal wants 1 vertex, got %d", len(m.Vertices))
	}
	v, ok := g.Vertex(m.Vertices[0])
	if !ok {
		return fmt.Errorf("%w: %d", zx.ErrVertexNotFound, m.Vertices[0])
	}
	ns := v.Neighbors()
	if err := g.RemoveVertex(v.ID()); err != nil {
		return err
	}
	// same-kind edges compose to a plain wire
	return g.AddWire(ns[0].ID, ns[1].ID)
}

func (IdentityRemoval) Monovariant(g *zx.Graph) int { return g.NumVertices() }
