package simp

import (
	"fmt"
	"sort"

	"github.com/kegliz/zxsyn/zx"
)

// Bialgebra contracts a complete bipartite subgraph between phase-0
// Z-spiders and phase-0 X-spiders, each with exactly one outer leg, into
// a single X-Z edge carrying those legs.
type Bialgebra struct{}

func (Bialgebra) Name() string { return "bialgebra" }

// bipartiteSets expands a seed edge (z, x) into the candidate sets
// A (Z side) and B (X side), or returns false when the shape around the
// seed is not a contractible complete bipartite block.
func (Bialgebra) bipartiteSets(g *zx.Graph, zID, xID zx.VertexID) (a, b []zx.VertexID, ok bool) {
	z, _ := g.Vertex(zID)
	x, _ := g.Vertex(xID)

	sideOK := func(v *zx.Vertex, t zx.VertexType) bool {
		return v != nil && v.Type() == t && v.Phase().IsZero()
	}
	if !sideOK(z, zx.ZSpider) || !sideOK(x, zx.XSpider) {
		return nil, nil, false
	}

	collect := func(seed *zx.Vertex, t zx.VertexType) []zx.VertexID {
		var out []zx.VertexID
		for _, n := range seed.Neighbors() {
			if n.Kind != zx.Simple {
				continue
			}
			v, _ := g.Vertex(n.ID)
			if sideOK(v, t) {
				out = append(out, n.ID)
			}
		}
		return out
	}
	a = collect(x, zx.ZSpider) // Z-spiders around the X seed
	b = collect(z, zx.XSpider) // X-spiders around the Z seed
	if len(a)+len(b) < 3 {
		return nil, nil, false // a bare edge; nothing to contract
	}

	inA := make(map[zx.VertexID]bool, len(a))
	for _, id := range a {
		inA[id] = true
	}
	inB := make(map[zx.VertexID]bool, len(b))
	for _, id := range b {
		inB[id] = true
	}

	// every A-B pair joined by a Simple edge, one outer leg per member
	check := func(ids []zx.VertexID, other map[zx.VertexID]bool, want int) bool {
		for _, id := range ids {
			v, _ := g.Vertex(id)
			if v.Degree() != want+1 {
				return false
			}
			inner := 0
			for _, n := range v.Neighbors() {
				if other[n.ID] {
					if n.Kind != zx.Simple {
						return false
					}
					inner++
				} else if inA[n.ID] || inB[n.ID] {
					return false // same-side edge breaks the shape
				}
			}
			if inner != want {
				return false
			}
		}
		return true
	}
	if !check(a, inB, len(b)) || !check(b, inA, len(a)) {
		return nil, nil, false
	}
	return a, b, true
}

func (r Bialgebra) Find(g *zx.Graph) []Match {
	var cands []candidate
	for _, e := range g.Edges() {
		if e.Kind != zx.Simple {
			continue
		}
		zID, xID := e.U, e.V
		if v, _ := g.Vertex(zID); v != nil && v.Type() == zx.XSpider {
			zID, xID = xID, zID
		}
		a, b, ok := r.bipartiteSets(g, zID, xID)
		if !ok {
			continue
		}
		affected := append(append([]zx.VertexID(nil), a...), b...)
		for _, id := range affected {
			v, _ := g.Vertex(id)
			for _, n := range v.Neighbors() {
				affected = append(affected, n.ID) // outer legs stay stable
			}
		}
		cands = append(cands, newCandidate([]zx.VertexID{zID, xID}, affected...))
	}
	return selectDisjoint(cands)
}

func (r Bialgebra) Apply(g *zx.Graph, m Match) error {
	if len(m.Vertices) != 2 {
		return fmt.Errorf("simp: bialgebra wants a seed pair, got %d ids", len(m.Vertices))
	}
	a, b, ok := r.bipartiteSets(g, m.Vertices[0], m.Vertices[1])
	if !ok {
		return fmt.Errorf("simp: bialgebra shape vanished at (%d, %d)",
			m.Vertices[0], m.Vertices[1])
	}

	outerOf := func(ids []zx.VertexID, other []zx.VertexID) []zx.Neighbor {
		isInner := make(map[zx.VertexID]bool)
		for _, id := range other {
			isInner[id] = true
		}
		var outs []zx.Neighbor
		for _, id := range ids {
			v, _ := g.Vertex(id)
			for _, n := range v.Neighbors() {
				if !isInner[n.ID] {
					outs = append(outs, n)
				}
			}
		}
		sort.Slice(outs, func(i, j int) bool { return outs[i].ID < outs[j].ID })
		return outs
	}
	aOuter := outerOf(a, b)
	bOuter := outerOf(b, a)

	zSeed, _ := g.Vertex(m.Vertices[0])
	row, col := zSeed.Row(), zSeed.Col()

	for _, id := range append(append([]zx.VertexID(nil), a...), b...) {
		if err := g.RemoveVertex(id); err != nil {
			return err
		}
	}
	// the contracted pair swaps colours: the X carries the Z side's legs
	x0, err := g.AddSpider(zx.XSpider, zx.PhaseZero, row, col)
	if err != nil {
		return err
	}
	z0, err := g.AddSpider(zx.ZSpider, zx.PhaseZero, row, col+1)
	if err != nil {
		return err
	}
	if err := g.AddEdge(x0.ID(), z0.ID(), zx.Simple); err != nil {
		return err
	}
	for _, n := range aOuter {
		if err := g.AddEdge(x0.ID(), n.ID, n.Kind); err != nil {
			return err
		}
	}
	for _, n := range bOuter {
		if err := g.AddEdge(z0.ID(), n.ID, n.Kind); err != nil {
			return err
		}
	}
	return nil
}

func (Bialgebra) Monovariant(g *zx.Graph) int { return g.NumVertices() }
