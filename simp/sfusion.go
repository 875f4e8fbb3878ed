package simp

import (
	"fmt"

	"github.com/kegliz/zxsyn/zx"
)

// SpiderFusion merges two same-colour spiders joined by a Simple edge.
// The lower-id spider survives and absorbs the other's phase and edges;
// a Hadamard edge between the pair turns into a self-loop and adds pi.
type SpiderFusion struct{}

func (SpiderFusion) Name() string { return "spider-fusion" }

func (SpiderFusion) Find(g *zx.Graph) []Match {
	var cands []candidate
	for _, e := range g.Edges() {
		if e.Kind != zx.Simple || e.U == e.V {
			continue
		}
		u, _ := g.Vertex(e.U)
		v, _ := g.Vertex(e.V)
		if !u.Type().IsSpider() || u.Type() != v.Type() {
			continue
		}
		cands = append(cands, newCandidate([]zx.VertexID{e.U, e.V}))
	}
	return selectDisjoint(cands)
}

func (SpiderFusion) Apply(g *zx.Graph, m Match) error {
	if len(m.Vertices) != 2 {
		return fmt.Errorf("simp: spider-fusion wants 2 vertices, got %d", len(m.Vertices))
	}
	u, ok := g.Vertex(m.Vertices[0])
	if !ok {
		return fmt.Errorf("%w: %d", zx.ErrVertexNotFound, m.Vertices[0])
	}
	v, ok := g.Vertex(m.Vertices[1])
	if !ok {
		return fmt.Errorf("%w: %d", zx.ErrVertexNotFound, m.Vertices[1])
	}

	u.AddPhase(v.Phase())
	moved := v.Neighbors()
	if err := g.RemoveVertex(v.ID()); err != nil {
		return err
	}
	for _, n := range moved {
		switch {
		case n.ID == u.ID() && n.Kind == zx.Simple:
			// the fused edge disappears
		case n.ID == u.ID():
			// Hadamard between the pair becomes a self-loop: +pi
			if err := g.AddEdge(u.ID(), u.ID(), zx.Hadamard); err != nil {
				return err
			}
		default:
			if err := g.AddEdge(u.ID(), n.ID, n.Kind); err != nil {
				return err
			}
		}
	}
	return nil
}

func (SpiderFusion) Monovariant(g *zx.Graph) int { return g.NumVertices() }
