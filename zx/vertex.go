package zx

// Vertex is one node of a ZX-graph. Vertices are owned by their graph and
// reached through it; the adjacency list stores ids, never pointers, so a
// graph clones and moves without back-reference surgery.
type Vertex struct {
	id    VertexID
	typ   VertexType
	phase Phase
	qubit int // boundary wire index; a routing hint elsewhere
	row   float64
	col   float64

	neighbors []Neighbor // insertion-ordered multiset
}

// ID returns the vertex identifier, stable within its graph.
func (v *Vertex) ID() VertexID { return v.id }

// Type returns the vertex kind.
func (v *Vertex) Type() VertexType { return v.typ }

// Phase returns the vertex phase.
func (v *Vertex) Phase() Phase { return v.phase }

// SetPhase overwrites the vertex phase.
func (v *Vertex) SetPhase(p Phase) { v.phase = p }

// AddPhase adds p to the vertex phase.
func (v *Vertex) AddPhase(p Phase) { v.phase = v.phase.Add(p) }

// Qubit returns the logical qubit index.
func (v *Vertex) Qubit() int { return v.qubit }

// SetQubit overwrites the logical qubit index.
func (v *Vertex) SetQubit(q int) { v.qubit = q }

// Row returns the layout row.
func (v *Vertex) Row() float64 { return v.row }

// Col returns the layout column.
func (v *Vertex) Col() float64 { return v.col }

// SetPosition moves the vertex in the layout.
func (v *Vertex) SetPosition(row, col float64) { v.row, v.col = row, col }

// Degree returns the number of incident edges (multi-edges counted).
func (v *Vertex) Degree() int { return len(v.neighbors) }

// Neighbors returns a copy of the adjacency multiset in insertion order.
func (v *Vertex) Neighbors() []Neighbor {
	out := make([]Neighbor, len(v.neighbors))
	copy(out, v.neighbors)
	return out
}

// NeighborIDs returns the distinct neighbor ids in insertion order.
func (v *Vertex) NeighborIDs() []VertexID {
	out := make([]VertexID, 0, len(v.neighbors))
	seen := make(map[VertexID]struct{}, len(v.neighbors))
	for _, n := range v.neighbors {
		if _, ok := seen[n.ID]; ok {
			continue
		}
		seen[n.ID] = struct{}{}
		out = append(out, n.ID)
	}
	return out
}

// HasNeighbor reports whether any edge joins v and id.
func (v *Vertex) HasNeighbor(id VertexID) bool {
	for _, n := range v.neighbors {
		if n.ID == id {
			return true
		}
	}
	return false
}

// HasEdge reports whether an edge of the given kind joins v and id.
func (v *Vertex) HasEdge(id VertexID, k EdgeType) bool {
	for _, n := range v.neighbors {
		if n.ID == id && n.Kind == k {
			return true
		}
	}
	return false
}

func (v *Vertex) addNeighbor(id VertexID, k EdgeType) {
	v.neighbors = append(v.neighbors, Neighbor{ID: id, Kind: k})
}

// removeNeighbor drops the first (id, kind) entry; reports success.
func (v *Vertex) removeNeighbor(id VertexID, k EdgeType) bool {
	for i, n := range v.neighbors {
		if n.ID == id && n.Kind == k {
			v.neighbors = append(v.neighbors[:i], v.neighbors[i+1:]...)
			return true
		}
	}
	return false
}

// removeAllNeighbors drops every entry referring to id; returns the count.
func (v *Vertex) removeAllNeighbors(id VertexID) int {
	kept := v.neighbors[:0]
	removed := 0
	for _, n := range v.neighbors {
		if n.ID == id {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	v.neighbors = kept
	return removed
}
