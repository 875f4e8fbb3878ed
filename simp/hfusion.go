package simp

import (
	"fmt"

	"github.com/kegliz/zxsyn/zx"
)

// HadamardFusion cancels two adjacent arity-2 phase-pi H-boxes, splicing
// their outer legs together. The resulting edge kind is the parity of
// Hadamard kinds along the three consumed edges.
type HadamardFusion struct{}

func (HadamardFusion) Name() string { return "hadamard-fusion" }

func (HadamardFusion) isWireHBox(g *zx.Graph, id zx.VertexID) bool {
	v, ok := g.Vertex(id)
	return ok && v.Type() == zx.HBox && v.Degree() == 2 && v.Phase().IsPi()
}

func (r HadamardFusion) Find(g *zx.Graph) []Match {
	var cands []candidate
	for _, e := range g.Edges() {
		if e.U == e.V || !r.isWireHBox(g, e.U) || !r.isWireHBox(g, e.V) {
			continue
		}
		cands = append(cands, newCandidate([]zx.VertexID{e.U, e.V}))
	}
	return selectDisjoint(cands)
}

func (r HadamardFusion) Apply(g *zx.Graph, m Match) error {
	if len(m.Vertices) != 2 {
		return fmt.Errorf("simp: hadamard-fusion wants 2 vertices, got %d", len(m.Vertices))
	}
	h1, ok := g.Vertex(m.Vertices[0])
	if !ok {
		return fmt.Errorf("%w: %d", zx.ErrVertexNotFound, m.Vertices[0])
	}
	h2, ok := g.Vertex(m.Vertices[1])
	if !ok {
		return fmt.Errorf("%w: %d", zx.ErrVertexNotFound, m.Vertices[1])
	}

	outer := func(h, other *zx.Vertex) (zx.Neighbor, bool) {
		for _, n := range h.Neighbors() {
			if n.ID != other.ID() {
				return n, true
			}
		}
		return zx.Neighbor{}, false
	}
	a, ok1 := outer(h1, h2)
	b, ok2 := outer(h2, h1)
	if !ok1 || !ok2 {
		return fmt.Errorf("simp: hadamard-fusion pair %d-%d has no outer legs",
			h1.ID(), h2.ID())
	}
	hadamards := 0
	for _, k := range []zx.EdgeType{a.Kind, b.Kind} {
		if k == zx.Hadamard {
			hadamards++
		}
	}
	for _, k := range g.EdgeKindsBetween(h1.ID(), h2.ID()) {
		if k == zx.Hadamard {
			hadamards++
		}
	}
	kind := zx.Simple
	if hadamards%2 == 1 {
		kind = zx.Hadamard
	}

	if err := g.RemoveVertex(h1.ID()); err != nil {
		return err
	}
	if err := g.RemoveVertex(h2.ID()); err != nil {
		return err
	}
	if kind == zx.Simple {
		return g.AddWire(a.ID, b.ID)
	}
	return g.AddEdge(a.ID, b.ID, kind)
}

func (HadamardFusion) Monovariant(g *zx.Graph) int { return g.NumVertices() }
