package simp

import (
	"fmt"

	"github.com/kegliz/zxsyn/zx"
)

// LocalComplement removes an interior Z-spider with phase +-pi/2 whose
// neighbourhood is all Z-spiders over Hadamard edges, complementing the
// edges among the neighbours and shifting their phases.
type LocalComplement struct{}

func (LocalComplement) Name() string { return "local-complementation" }

// matchAt checks the precondition at v and returns its neighbour ids.
func (LocalComplement) matchAt(g *zx.Graph, v *zx.Vertex) ([]zx.VertexID, bool) {
	if v.Type() != zx.ZSpider || !v.Phase().IsProperClifford() {
		return nil, false
	}
	var ns []zx.VertexID
	for _, n := range v.Neighbors() {
		if n.Kind != zx.Hadamard {
			return nil, false
		}
		nb, _ := g.Vertex(n.ID)
		if nb.Type() != zx.ZSpider {
			return nil, false
		}
		ns = append(ns, n.ID)
	}
	return ns, len(ns) > 0
}

func (r LocalComplement) Find(g *zx.Graph) []Match {
	var cands []candidate
	for _, v := range g.Vertices() {
		ns, ok := r.matchAt(g, v)
		if !ok {
			continue
		}
		cands = append(cands, newCandidate([]zx.VertexID{v.ID()}, ns...))
	}
	return selectDisjoint(cands)
}

func (r LocalComplement) Apply(g *zx.Graph, m Match) error {
	if len(m.Vertices) != 1 {
		return fmt.Errorf("simp: local-complementation wants 1 vertex, got %d", len(m.Vertices))
	}
	v, ok := g.Vertex(m.Vertices[0])
	if !ok {
		return fmt.Errorf("%w: %d", zx.ErrVertexNotFound, m.Vertices[0])
	}
	ns, ok := r.matchAt(g, v)
	if !ok {
		return fmt.Errorf("simp: local-complementation precondition lost at %d", v.ID())
	}
	phase := v.Phase()

	// complement the neighbourhood: adding a Hadamard edge where one
	// exists cancels it, so AddEdge is the toggle
	for i := 0; i < len(ns); i++ {
		for j := i + 1; j < len(ns); j++ {
			if err := g.AddEdge(ns[i], ns[j], zx.Hadamard); err != nil {
				return err
			}
		}
	}
	for _, id := range ns {
		nb, _ := g.Vertex(id)
		nb.AddPhase(phase.Neg())
	}
	return g.RemoveVertex(v.ID())
}

func (LocalComplement) Monovariant(g *zx.Graph) int { return g.NumVertices() }
