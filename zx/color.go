package zx

import "fmt"

// ColorChange flips a spider's colour by conjugating every leg with a
// Hadamard: the vertex kind dualises and each incident edge toggles its
// kind. Boundary legs pick up the usual spider detour when they would
// turn Hadamard.
func (g *Graph) ColorChange(id VertexID) error {
	v, ok := g.vertices[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, id)
	}
	if !v.typ.IsSpider() {
		return fmt.Errorf("%w: colour change on %s", ErrInvalidVertex, v.typ)
	}
	ns := v.Neighbors()
	for _, n := range ns {
		if n.ID == id {
			continue
		}
		g.vertices[n.ID].removeNeighbor(id, n.Kind)
	}
	v.neighbors = nil
	v.typ = v.typ.Dual()
	for _, n := range ns {
		if n.ID == id {
			continue // self-loops were already resolved by normalisation
		}
		if err := g.insertEdge(v, g.vertices[n.ID], n.Kind.Toggle()); err != nil {
			return err
		}
	}
	return nil
}
