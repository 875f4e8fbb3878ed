package zx

import "sort"

// TCount returns the number of spiders whose phase is an odd multiple of
// pi/4.
func (g *Graph) TCount() int {
	count := 0
	for _, id := range g.order {
		v := g.vertices[id]
		if v.typ.IsSpider() && v.phase.Den() == 4 {
			count++
		}
	}
	return count
}

// NonCliffordCount returns the number of spiders with a non-Clifford phase.
func (g *Graph) NonCliffordCount() int {
	count := 0
	for _, id := range g.order {
		v := g.vertices[id]
		if v.typ.IsSpider() && !v.phase.IsClifford() {
			count++
		}
	}
	return count
}

// SortIOByQubit reorders the input and output lists by qubit index.
func (g *Graph) SortIOByQubit() {
	byQubit := func(ids []VertexID) {
		sort.SliceStable(ids, func(i, j int) bool {
			return g.vertices[ids[i]].qubit < g.vertices[ids[j]].qubit
		})
	}
	byQubit(g.inputs)
	byQubit(g.outputs)
}

// EdgeKindsBetween lists the kinds of all edges joining u and v, in
// adjacency order.
func (g *Graph) EdgeKindsBetween(u, v VertexID) []EdgeType {
	vu, ok := g.vertices[u]
	if !ok {
		return nil
	}
	var kinds []EdgeType
	for _, n := range vu.neighbors {
		if n.ID == v {
			kinds = append(kinds, n.Kind)
		}
	}
	return kinds
}
