package zx

import "fmt"

// Graph owns a set of vertices keyed by id and their symmetric adjacency.
// Iteration follows insertion order so that repeated runs over the same
// graph visit vertices deterministically.
type Graph struct {
	vertices map[VertexID]*Vertex
	order    []VertexID
	inputs   []VertexID
	outputs  []VertexID
	nextID   VertexID
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{vertices: make(map[VertexID]*Vertex)}
}

func (g *Graph) newVertex(t VertexType, phase Phase, qubit int, row, col float64) *Vertex {
	v := &Vertex{
		id:    g.nextID,
		typ:   t,
		phase: phase,
		qubit: qubit,
		row:   row,
		col:   col,
	}
	g.nextID++
	g.vertices[v.id] = v
	g.order = append(g.order, v.id)
	return v
}

// AddInput appends a Boundary vertex to the input list.
func (g *Graph) AddInput(qubit int) (*Vertex, error) {
	for _, id := range g.inputs {
		if g.vertices[id].qubit == qubit {
			return nil, fmt.Errorf("%w: input qubit %d", ErrDuplicateQubit, qubit)
		}
	}
	v := g.newVertex(Boundary, PhaseZero, qubit, float64(qubit), 0)
	g.inputs = append(g.inputs, v.id)
	return v, nil
}

// AddOutput appends a Boundary vertex to the output list.
func (g *Graph) AddOutput(qubit int) (*Vertex, error) {
	for _, id := range g.outputs {
		if g.vertices[id].qubit == qubit {
			return nil, fmt.Errorf("%w: output qubit %d", ErrDuplicateQubit, qubit)
		}
	}
	v := g.newVertex(Boundary, PhaseZero, qubit, float64(qubit), 0)
	g.outputs = append(g.outputs, v.id)
	return v, nil
}

// AddSpider adds a Z-, X-, or H-box vertex. Boundaries go through
// AddInput/AddOutput.
func (g *Graph) AddSpider(t VertexType, phase Phase, row, col float64) (*Vertex, error) {
	if t == Boundary {
		return nil, fmt.Errorf("%w: use AddInput or AddOutput for boundaries", ErrInvalidVertex)
	}
	return g.newVertex(t, phase, -1, row, col), nil
}

// Vertex looks a vertex up by id.
func (g *Graph) Vertex(id VertexID) (*Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

// Vertices returns all vertices in insertion order.
func (g *Graph) Vertices() []*Vertex {
	out := make([]*Vertex, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.vertices[id])
	}
	return out
}

// VertexIDs returns all ids in insertion order.
func (g *Graph) VertexIDs() []VertexID {
	out := make([]VertexID, len(g.order))
	copy(out, g.order)
	return out
}

// NumVertices returns the vertex count.
func (g *Graph) NumVertices() int { return len(g.order) }

// Inputs returns the input boundaries in wire order.
func (g *Graph) Inputs() []*Vertex { return g.boundarySeq(g.inputs) }

// Outputs returns the output boundaries in wire order.
func (g *Graph) Outputs() []*Vertex { return g.boundarySeq(g.outputs) }

// InputIDs returns the input boundary ids in wire order.
func (g *Graph) InputIDs() []VertexID { return append([]VertexID(nil), g.inputs...) }

// OutputIDs returns the output boundary ids in wire order.
func (g *Graph) OutputIDs() []VertexID { return append([]VertexID(nil), g.outputs...) }

// NumQubits returns the input arity.
func (g *Graph) NumQubits() int { return len(g.inputs) }

func (g *Graph) boundarySeq(ids []VertexID) []*Vertex {
	out := make([]*Vertex, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.vertices[id])
	}
	return out
}

// IsInput reports whether id is an input boundary.
func (g *Graph) IsInput(id VertexID) bool { return containsID(g.inputs, id) }

// IsOutput reports whether id is an output boundary.
func (g *Graph) IsOutput(id VertexID) bool { return containsID(g.outputs, id) }

func containsID(ids []VertexID, id VertexID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// Edges returns every (u, v, kind) triple once, in deterministic order:
// first endpoint by insertion order, second by adjacency order.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, id := range g.order {
		v := g.vertices[id]
		selfSeen := 0
		for _, n := range v.neighbors {
			switch {
			case n.ID > id:
				out = append(out, Edge{U: id, V: n.ID, Kind: n.Kind})
			case n.ID == id:
				// self-loops carry two half-edge entries; emit once
				selfSeen++
				if selfSeen%2 == 1 {
					out = append(out, Edge{U: id, V: id, Kind: n.Kind})
				}
			}
		}
	}
	return out
}

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int {
	total := 0
	for _, id := range g.order {
		v := g.vertices[id]
		for _, n := range v.neighbors {
			if n.ID == id {
				total += 2 // self-loop occupies both half-edges
			} else {
				total++
			}
		}
	}
	return total / 2
}

// AddEdge connects u and v with the given kind, then normalises per the
// rewrite table: parallel same-kind edges annihilate, self-loops resolve,
// and boundary edges are forced Simple by a spider detour.
func (g *Graph) AddEdge(u, v VertexID, k EdgeType) error {
	vu, ok := g.vertices[u]
	if !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, u)
	}
	vv, ok := g.vertices[v]
	if !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, v)
	}
	return g.insertEdge(vu, vv, k)
}

// RemoveEdge removes one (u, v, kind) edge.
func (g *Graph) RemoveEdge(u, v VertexID, k EdgeType) error {
	vu, ok := g.vertices[u]
	if !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, u)
	}
	vv, ok := g.vertices[v]
	if !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, v)
	}
	if !vu.removeNeighbor(v, k) {
		return fmt.Errorf("%w: (%d, %d, %s)", ErrEdgeNotFound, u, v, k)
	}
	if u != v {
		vv.removeNeighbor(u, k)
	} else {
		vu.removeNeighbor(u, k)
	}
	return nil
}

// RemoveEdges removes every edge between u and v regardless of kind.
func (g *Graph) RemoveEdges(u, v VertexID) error {
	vu, ok := g.vertices[u]
	if !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, u)
	}
	vv, ok := g.vertices[v]
	if !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, v)
	}
	if vu.removeAllNeighbors(v) == 0 {
		return fmt.Errorf("%w: (%d, %d)", ErrEdgeNotFound, u, v)
	}
	if u != v {
		vv.removeAllNeighbors(u)
	}
	return nil
}

// RemoveVertex deletes v with all incident edges, and drops it from the
// input/output lists if present.
func (g *Graph) RemoveVertex(id VertexID) error {
	v, ok := g.vertices[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, id)
	}
	for _, nid := range v.NeighborIDs() {
		if nid == id {
			continue
		}
		g.vertices[nid].removeAllNeighbors(id)
	}
	delete(g.vertices, id)
	g.order = removeID(g.order, id)
	g.inputs = removeID(g.inputs, id)
	g.outputs = removeID(g.outputs, id)
	return nil
}

func removeID(ids []VertexID, id VertexID) []VertexID {
	for i, x := range ids {
		if x == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// RemoveIsolated deletes every non-boundary vertex of degree zero.
func (g *Graph) RemoveIsolated() {
	for _, id := range g.VertexIDs() {
		v := g.vertices[id]
		if v == nil || v.typ == Boundary || v.Degree() != 0 {
			continue
		}
		_ = g.RemoveVertex(id)
	}
}

// ToggleEdge flips every edge between u and v Simple <-> Hadamard, with
// normalisation reapplied.
func (g *Graph) ToggleEdge(u, v VertexID) error {
	vu, ok := g.vertices[u]
	if !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, u)
	}
	vv, ok := g.vertices[v]
	if !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, v)
	}
	var kinds []EdgeType
	for _, n := range vu.neighbors {
		if n.ID == v {
			kinds = append(kinds, n.Kind)
		}
	}
	if len(kinds) == 0 {
		return fmt.Errorf("%w: (%d, %d)", ErrEdgeNotFound, u, v)
	}
	vu.removeAllNeighbors(v)
	if u != v {
		vv.removeAllNeighbors(u)
	}
	for _, k := range kinds {
		if err := g.insertEdge(vu, vv, k.Toggle()); err != nil {
			return err
		}
	}
	return nil
}

// Copy returns a deep clone preserving ids and ordering.
func (g *Graph) Copy() *Graph {
	ng := &Graph{
		vertices: make(map[VertexID]*Vertex, len(g.vertices)),
		order:    append([]VertexID(nil), g.order...),
		inputs:   append([]VertexID(nil), g.inputs...),
		outputs:  append([]VertexID(nil), g.outputs...),
		nextID:   g.nextID,
	}
	for id, v := range g.vertices {
		nv := *v
		nv.neighbors = append([]Neighbor(nil), v.neighbors...)
		ng.vertices[id] = &nv
	}
	return ng
}

// importFrom splices a clone of other into g, assigning fresh ids.
// Returns the old-to-new id map.
func (g *Graph) importFrom(other *Graph) map[VertexID]VertexID {
	remap := make(map[VertexID]VertexID, len(other.order))
	for _, id := range other.order {
		ov := other.vertices[id]
		nv := g.newVertex(ov.typ, ov.phase, ov.qubit, ov.row, ov.col)
		remap[id] = nv.id
	}
	for _, id := range other.order {
		ov := other.vertices[id]
		nu := remap[id]
		for _, n := range ov.neighbors {
			if n.ID < id || (n.ID == id) {
				continue // visit each edge once
			}
			g.vertices[nu].addNeighbor(remap[n.ID], n.Kind)
			g.vertices[remap[n.ID]].addNeighbor(nu, n.Kind)
		}
	}
	// self-loops were skipped above; other is expected normalised, so
	// none survive, but re-add any that do.
	for _, id := range other.order {
		ov := other.vertices[id]
		for _, n := range ov.neighbors {
			if n.ID == id {
				g.vertices[remap[id]].addNeighbor(remap[id], n.Kind)
			}
		}
	}
	return remap
}

// Compose plugs other's inputs onto this graph's outputs wire by wire.
// The boundary pairs vanish and their interior neighbours are joined by
// Simple edges. Fails with ErrArityMismatch when the arities disagree.
func (g *Graph) Compose(other *Graph) error {
	if len(g.outputs) != len(other.inputs) {
		return fmt.Errorf("%w: %d outputs vs %d inputs",
			ErrArityMismatch, len(g.outputs), len(other.inputs))
	}
	remap := g.importFrom(other)

	oldOutputs := append([]VertexID(nil), g.outputs...)
	for i, outID := range oldOutputs {
		inID := remap[other.inputs[i]]
		outV := g.vertices[outID]
		inV := g.vertices[inID]
		if outV.Degree() != 1 || inV.Degree() != 1 {
			return fmt.Errorf("%w: boundary degree != 1", ErrInvalidEdge)
		}
		a := outV.neighbors[0]
		b := inV.neighbors[0]
		if err := g.RemoveVertex(outID); err != nil {
			return err
		}
		if err := g.RemoveVertex(inID); err != nil {
			return err
		}
		// both boundary stubs were Simple; the splice is Simple too
		if err := g.AddWire(a.ID, b.ID); err != nil {
			return err
		}
	}
	g.outputs = make([]VertexID, len(other.outputs))
	for i, id := range other.outputs {
		g.outputs[i] = remap[id]
	}
	return nil
}

// Tensor forms the disjoint union, appending other's boundaries after
// this graph's. Other's qubit indices are offset past this graph's.
func (g *Graph) Tensor(other *Graph) error {
	offset := 0
	for _, id := range append(append([]VertexID(nil), g.inputs...), g.outputs...) {
		if q := g.vertices[id].qubit; q >= offset {
			offset = q + 1
		}
	}
	remap := g.importFrom(other)
	for _, id := range other.inputs {
		nid := remap[id]
		g.vertices[nid].qubit += offset
		g.inputs = append(g.inputs, nid)
	}
	for _, id := range other.outputs {
		nid := remap[id]
		g.vertices[nid].qubit += offset
		g.outputs = append(g.outputs, nid)
	}
	return nil
}

// Adjoint reverses the graph in place: inputs and outputs swap roles and
// every phase is negated.
func (g *Graph) Adjoint() {
	g.inputs, g.outputs = g.outputs, g.inputs
	for _, id := range g.order {
		v := g.vertices[id]
		v.phase = v.phase.Neg()
	}
}
