package simp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kegliz/zxsyn/zx"
)

// phaseGadget is a leaf spider of arbitrary phase whose only connection
// runs through a phase-0 hub spider.
type phaseGadget struct {
	leaf    zx.VertexID
	hub     zx.VertexID
	targets []zx.VertexID // sorted
}

// findGadgets scans for phase gadgets in deterministic order.
func findGadgets(g *zx.Graph) []phaseGadget {
	var out []phaseGadget
	for _, hub := range g.Vertices() {
		if hub.Type() != zx.ZSpider || !hub.Phase().IsZero() || hub.Degree() < 2 {
			continue
		}
		var leaf zx.VertexID
		var targets []zx.VertexID
		valid := true
		leafFound := false
		for _, n := range hub.Neighbors() {
			if n.Kind != zx.Hadamard {
				valid = false
				break
			}
			nb, _ := g.Vertex(n.ID)
			if nb.Type() == zx.ZSpider && nb.Degree() == 1 && !leafFound {
				leaf = n.ID
				leafFound = true
				continue
			}
			targets = append(targets, n.ID)
		}
		if !valid || !leafFound || len(targets) == 0 {
			continue
		}
		sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
		out = append(out, phaseGadget{leaf: leaf, hub: hub.ID(), targets: targets})
	}
	return out
}

func (pg phaseGadget) key() string {
	parts := make([]string, len(pg.targets))
	for i, id := range pg.targets {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}

// GadgetFusion merges two phase gadgets sharing the same target set: the
// surviving leaf absorbs the other's phase and the duplicate pair is
// removed.
type GadgetFusion struct{}

func (GadgetFusion) Name() string { return "gadget-fusion" }

func (GadgetFusion) Find(g *zx.Graph) []Match {
	gadgets := findGadgets(g)
	byKey := make(map[string][]phaseGadget)
	var keys []string
	for _, pg := range gadgets {
		k := pg.key()
		if _, seen := byKey[k]; !seen {
			keys = append(keys, k)
		}
		byKey[k] = append(byKey[k], pg)
	}
	sort.Strings(keys)

	var cands []candidate
	for _, k := range keys {
		group := byKey[k]
		for i := 0; i+1 < len(group); i += 2 {
			a, b := group[i], group[i+1]
			cands = append(cands, newCandidate(
				[]zx.VertexID{a.leaf, a.hub, b.leaf, b.hub}))
		}
	}
	return selectDisjoint(cands)
}

func (GadgetFusion) Apply(g *zx.Graph, m Match) error {
	if len(m.Vertices) != 4 {
		return fmt.Errorf("simp: gadget-fusion wants 4 vertices, got %d", len(m.Vertices))
	}
	leaf1, ok := g.Vertex(m.Vertices[0])
	if !ok {
		return fmt.Errorf("%w: %d", zx.ErrVertexNotFound, m.Vertices[0])
	}
	leaf2, ok := g.Vertex(m.Vertices[2])
	if !ok {
		return fmt.Errorf("%w: %d", zx.ErrVertexNotFound, m.Vertices[2])
	}
	leaf1.AddPhase(leaf2.Phase())
	if err := g.RemoveVertex(m.Vertices[2]); err != nil {
		return err
	}
	return g.RemoveVertex(m.Vertices[3])
}

func (GadgetFusion) Monovariant(g *zx.Graph) int { return g.NumVertices() }

// gadgetize unfuses the non-Clifford phase of interior Z-spiders into
// phase gadgets so that duplicate phase terms become fusable. Returns
// the number of gadgets created.
func gadgetize(g *zx.Graph) (int, error) {
	created := 0
	for _, v := range g.Vertices() {
		// degree-1 spiders are already leaves; leave them alone
		if v.Type() != zx.ZSpider || v.Phase().IsClifford() || v.Degree() < 2 {
			continue
		}
		pureHadamard := true
		for _, n := range v.Neighbors() {
			if n.Kind != zx.Hadamard {
				pureHadamard = false
				break
			}
		}
		if !pureHadamard {
			continue
		}
		hub, err := g.AddSpider(zx.ZSpider, zx.PhaseZero, v.Row()-1, v.Col())
		if err != nil {
			return created, err
		}
		leaf, err := g.AddSpider(zx.ZSpider, v.Phase(), v.Row()-2, v.Col())
		if err != nil {
			return created, err
		}
		v.SetPhase(zx.PhaseZero)
		if err := g.AddEdge(v.ID(), hub.ID(), zx.Hadamard); err != nil {
			return created, err
		}
		if err := g.AddEdge(hub.ID(), leaf.ID(), zx.Hadamard); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
