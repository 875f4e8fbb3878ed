package simp

import (
	"fmt"

	"github.com/kegliz/zxsyn/zx"
)

// PiCopy commutes the pi phase of a spider into an adjacent degree-1
// state of the opposite colour: the spider's phase drops to zero and the
// state gains pi. Z(pi) with a plugged X-state is equal to Z(0) with the
// state advanced by pi, and symmetrically with colours swapped.
type PiCopy struct{}

func (PiCopy) Name() string { return "pi-copy" }

func (PiCopy) Find(g *zx.Graph) []Match {
	var cands []candidate
	for _, v := range g.Vertices() {
		if !v.Type().IsSpider() || !v.Phase().IsPi() || v.Degree() < 2 {
			continue
		}
		for _, n := range v.Neighbors() {
			if n.Kind != zx.Simple {
				continue
			}
			w, _ := g.Vertex(n.ID)
			if w.Type() != v.Type().Dual() || w.Degree() != 1 {
				continue
			}
			cands = append(cands, newCandidate([]zx.VertexID{v.ID(), n.ID}))
			break // one state per spider per pass
		}
	}
	return selectDisjoint(cands)
}

func (PiCopy) Apply(g *zx.Graph, m Match) error {
	if len(m.Vertices) != 2 {
		return fmt.Errorf("simp: pi-copy wants 2 vertices, got %d", len(m.Vertices))
	}
	v, ok := g.Vertex(m.Vertices[0])
	if !ok {
		return fmt.Errorf("%w: %d", zx.ErrVertexNotFound, m.Vertices[0])
	}
	w, ok := g.Vertex(m.Vertices[1])
	if !ok {
		return fmt.Errorf("%w: %d", zx.ErrVertexNotFound, m.Vertices[1])
	}
	v.SetPhase(zx.PhaseZero)
	w.AddPhase(zx.PhasePi)
	return nil
}

// Monovariant: pi-phase spiders of degree >= 2. The matched spider drops
// out and the degree-1 state can never enter the set.
func (PiCopy) Monovariant(g *zx.Graph) int {
	count := 0
	for _, v := range g.Vertices() {
		if v.Type().IsSpider() && v.Phase().IsPi() && v.Degree() >= 2 {
			count++
		}
	}
	return count
}
