package zx

import "fmt"

// insertEdge adds one (u, v, kind) edge and resolves the normalisation
// table in place:
//
//	two Simple edges between the same vertices   -> both cancel (Hopf)
//	two Hadamard edges between the same spiders  -> both cancel
//	Simple + Hadamard                            -> both kept
//	Simple self-loop                             -> dropped
//	Hadamard self-loop on a spider               -> dropped, phase += pi
//	edge touching a boundary                     -> must be Simple; a
//	    Hadamard edge detours through a fresh phase-0 Z-spider
func (g *Graph) insertEdge(u, v *Vertex, k EdgeType) error {
	if u == v {
		switch {
		case k == Simple:
			// identity loop, nothing to record
		case u.typ.IsSpider():
			u.AddPhase(PhasePi)
		}
		return nil
	}

	if u.typ == Boundary && v.typ == Boundary {
		return fmt.Errorf("%w: boundary %d to boundary %d", ErrInvalidEdge, u.id, v.id)
	}

	if u.typ == Boundary || v.typ == Boundary {
		b, s := u, v
		if v.typ == Boundary {
			b, s = v, u
		}
		if b.Degree() >= 1 {
			return fmt.Errorf("%w: boundary %d already connected", ErrInvalidEdge, b.id)
		}
		if k == Hadamard {
			// force the boundary edge Simple via a spider detour
			w, _ := g.AddSpider(ZSpider, PhaseZero, b.row, (b.col+s.col)/2)
			b.addNeighbor(w.id, Simple)
			w.addNeighbor(b.id, Simple)
			return g.insertEdge(w, s, Hadamard)
		}
		b.addNeighbor(s.id, Simple)
		s.addNeighbor(b.id, Simple)
		return nil
	}

	// parallel-edge cancellation
	if u.HasEdge(v.id, k) {
		cancels := k == Simple || (u.typ.IsSpider() && v.typ.IsSpider())
		if cancels {
			u.removeNeighbor(v.id, k)
			v.removeNeighbor(u.id, k)
			return nil
		}
		return nil // keep a single copy of the triple
	}

	u.addNeighbor(v.id, k)
	v.addNeighbor(u.id, k)
	return nil
}

// AddWire splices a bare Simple wire between two boundaries. Composition
// and file loading use it for identity wires, which AddEdge rejects as a
// client error.
func (g *Graph) AddWire(u, v VertexID) error {
	vu, ok := g.vertices[u]
	if !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, u)
	}
	vv, ok := g.vertices[v]
	if !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, v)
	}
	if vu.typ != Boundary || vv.typ != Boundary {
		return g.insertEdge(vu, vv, Simple)
	}
	if vu.Degree() >= 1 || vv.Degree() >= 1 {
		return fmt.Errorf("%w: boundary already connected", ErrInvalidEdge)
	}
	vu.addNeighbor(v, Simple)
	vv.addNeighbor(u, Simple)
	return nil
}

// IsGraphLike reports whether the graph is in the extractor's canonical
// form: all interior vertices are Z-spiders, interior edges are Hadamard,
// and each boundary hangs off its own Z-spider by a Simple edge.
func (g *Graph) IsGraphLike() bool {
	for _, id := range g.order {
		v := g.vertices[id]
		switch v.typ {
		case Boundary:
			if v.Degree() != 1 {
				return false
			}
			n := v.neighbors[0]
			if n.Kind != Simple {
				return false
			}
			nb := g.vertices[n.ID]
			if nb.typ != ZSpider {
				return false
			}
		case ZSpider:
			boundaries := 0
			for _, n := range v.neighbors {
				nb := g.vertices[n.ID]
				if nb.typ == Boundary {
					boundaries++
					if n.Kind != Simple {
						return false
					}
				} else if n.Kind != Hadamard {
					return false
				}
			}
			if boundaries > 1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// CheckInvariants verifies structural health: symmetric adjacency,
// boundary degrees, and distinct boundary qubits. Used by tests.
func (g *Graph) CheckInvariants() error {
	for _, id := range g.order {
		v := g.vertices[id]
		counts := make(map[Neighbor]int)
		for _, n := range v.neighbors {
			counts[n]++
		}
		for n, c := range counts {
			if n.ID == id {
				if c%2 != 0 {
					return fmt.Errorf("zx: unpaired self-loop on %d", id)
				}
				continue
			}
			nb, ok := g.vertices[n.ID]
			if !ok {
				return fmt.Errorf("zx: dangling neighbor %d of %d", n.ID, id)
			}
			back := 0
			for _, m := range nb.neighbors {
				if m.ID == id && m.Kind == n.Kind {
					back++
				}
			}
			if back != c {
				return fmt.Errorf("zx: asymmetric edge (%d, %d, %s)", id, n.ID, n.Kind)
			}
		}
	}
	for _, id := range append(append([]VertexID(nil), g.inputs...), g.outputs...) {
		v, ok := g.vertices[id]
		if !ok {
			return fmt.Errorf("zx: boundary %d missing", id)
		}
		if v.typ != Boundary {
			return fmt.Errorf("zx: io vertex %d is %s", id, v.typ)
		}
		if v.Degree() > 1 {
			return fmt.Errorf("zx: boundary %d has degree %d", id, v.Degree())
		}
	}
	seen := make(map[int]struct{})
	for _, id := range g.inputs {
		q := g.vertices[id].qubit
		if _, dup := seen[q]; dup {
			return fmt.Errorf("zx: duplicate input qubit %d", q)
		}
		seen[q] = struct{}{}
	}
	seen = make(map[int]struct{})
	for _, id := range g.outputs {
		q := g.vertices[id].qubit
		if _, dup := seen[q]; dup {
			return fmt.Errorf("zx: duplicate output qubit %d", q)
		}
		seen[q] = struct{}{}
	}
	return nil
}
