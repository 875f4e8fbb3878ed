package simp

import (
	"testing"

	"github.com/kegliz/zxsyn/zx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addSpider(t *testing.T, g *zx.Graph, kind zx.VertexType, ph zx.Phase) *zx.Vertex {
	t.Helper()
	v, err := g.AddSpider(kind, ph, 0, 0)
	require.NoError(t, err)
	return v
}

func connect(t *testing.T, g *zx.Graph, u, v *zx.Vertex, k zx.EdgeType) {
	t.Helper()
	require.NoError(t, g.AddEdge(u.ID(), v.ID(), k))
}

// Two pi/4 Z-spiders joined by a Simple edge fuse to one pi/2 spider.
func TestSpiderFusion_PhaseSum(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := zx.NewGraph()
	a := addSpider(t, g, zx.ZSpider, zx.NewPhase(1, 4))
	b := addSpider(t, g, zx.ZSpider, zx.NewPhase(1, 4))
	connect(t, g, a, b, zx.Simple)

	rule := SpiderFusion{}
	matches := rule.Find(g)
	require.Len(matches, 1)
	require.NoError(rule.Apply(g, matches[0]))

	assert.Equal(1, g.NumVertices())
	survivor, ok := g.Vertex(a.ID())
	require.True(ok)
	assert.Equal(zx.NewPhase(1, 2), survivor.Phase())
	assert.NoError(g.CheckInvariants())
}

func TestSpiderFusion_MovesEdges(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := zx.NewGraph()
	a := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	b := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	c := addSpider(t, g, zx.XSpider, zx.PhaseZero)
	connect(t, g, a, b, zx.Simple)
	connect(t, g, b, c, zx.Hadamard)

	rule := SpiderFusion{}
	matches := rule.Find(g)
	require.Len(matches, 1)
	require.NoError(rule.Apply(g, matches[0]))

	survivor, _ := g.Vertex(a.ID())
	assert.True(survivor.HasEdge(c.ID(), zx.Hadamard))
	assert.NoError(g.CheckInvariants())
}

func TestSpiderFusion_HadamardPairAddsPi(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := zx.NewGraph()
	a := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	b := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	connect(t, g, a, b, zx.Simple)
	connect(t, g, a, b, zx.Hadamard)

	rule := SpiderFusion{}
	matches := rule.Find(g)
	require.Len(matches, 1)
	require.NoError(rule.Apply(g, matches[0]))

	survivor, _ := g.Vertex(a.ID())
	assert.True(survivor.Phase().IsPi())
	assert.Equal(0, survivor.Degree())
}

func TestIdentityRemoval(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := zx.NewGraph()
	a := addSpider(t, g, zx.ZSpider, zx.NewPhase(1, 4))
	v := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	b := addSpider(t, g, zx.ZSpider, zx.NewPhase(1, 4))
	connect(t, g, a, v, zx.Hadamard)
	connect(t, g, v, b, zx.Hadamard)

	rule := IdentityRemoval{}
	matches := rule.Find(g)
	require.Len(matches, 1)
	assert.Equal([]zx.VertexID{v.ID()}, matches[0].Vertices)
	require.NoError(rule.Apply(g, matches[0]))

	assert.Equal(2, g.NumVertices())
	assert.Equal([]zx.EdgeType{zx.Simple}, g.EdgeKindsBetween(a.ID(), b.ID()))
}

func TestIdentityRemoval_NoMatchOnMixedKinds(t *testing.T) {
	g := zx.NewGraph()
	a := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	v := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	b := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	connect(t, g, a, v, zx.Simple)
	connect(t, g, v, b, zx.Hadamard)

	assert.Empty(t, IdentityRemoval{}.Find(g))
}

// S2: a pi/2 Z-spider with three Z-neighbours over Hadamard edges.
func TestLocalComplement_Scenario(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := zx.NewGraph()
	v := addSpider(t, g, zx.ZSpider, zx.NewPhase(1, 2))
	var ns []*zx.Vertex
	for i := 0; i < 3; i++ {
		n := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
		connect(t, g, v, n, zx.Hadamard)
		ns = append(ns, n)
	}

	rule := LocalComplement{}
	matches := rule.Find(g)
	require.Len(matches, 1)
	require.NoError(rule.Apply(g, matches[0]))

	_, alive := g.Vertex(v.ID())
	assert.False(alive)
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			assert.True(ns[i].HasEdge(ns[j].ID(), zx.Hadamard),
				"pair (%d,%d) should carry a toggled Hadamard edge", i, j)
		}
		// each neighbour lost pi/2
		assert.Equal(zx.NewPhase(3, 2), ns[i].Phase())
	}
	assert.NoError(g.CheckInvariants())
}

func TestLocalComplement_TogglesExistingEdges(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := zx.NewGraph()
	v := addSpider(t, g, zx.ZSpider, zx.NewPhase(3, 2))
	a := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	b := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	connect(t, g, v, a, zx.Hadamard)
	connect(t, g, v, b, zx.Hadamard)
	connect(t, g, a, b, zx.Hadamard) // pre-existing: must vanish

	rule := LocalComplement{}
	matches := rule.Find(g)
	require.Len(matches, 1)
	require.NoError(rule.Apply(g, matches[0]))

	assert.False(a.HasNeighbor(b.ID()))
	assert.Equal(zx.NewPhase(1, 2), a.Phase()) // 0 - 3pi/2 = pi/2
}

// S5: pivot on (u,v) with N(u)={v,a,b}, N(v)={u,a,c}.
func TestPivot_Scenario(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := zx.NewGraph()
	u := addSpider(t, g, zx.ZSpider, zx.PhasePi)
	v := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	a := addSpider(t, g, zx.ZSpider, zx.NewPhase(1, 4))
	b := addSpider(t, g, zx.ZSpider, zx.NewPhase(1, 4))
	c := addSpider(t, g, zx.ZSpider, zx.NewPhase(1, 4))
	connect(t, g, u, v, zx.Hadamard)
	connect(t, g, u, a, zx.Hadamard)
	connect(t, g, u, b, zx.Hadamard)
	connect(t, g, v, a, zx.Hadamard)
	connect(t, g, v, c, zx.Hadamard)

	rule := Pivot{}
	matches := rule.Find(g)
	require.Len(matches, 1)
	require.NoError(rule.Apply(g, matches[0]))

	_, uAlive := g.Vertex(u.ID())
	_, vAlive := g.Vertex(v.ID())
	assert.False(uAlive)
	assert.False(vAlive)

	// Nu\Nv = {b}, Nv\Nu = {c}, Nuv = {a}
	// edges: complement Nu x Nv minus diagonal: (a,c), (b,a), (b,c)
	assert.True(a.HasEdge(c.ID(), zx.Hadamard))
	assert.True(b.HasEdge(a.ID(), zx.Hadamard))
	assert.True(b.HasEdge(c.ID(), zx.Hadamard))

	// phase(a) += pi + 0 + pi = 0; phase(b) += phase(v) = 0;
	// phase(c) += phase(u) = pi
	assert.Equal(zx.NewPhase(1, 4), a.Phase())
	assert.Equal(zx.NewPhase(1, 4), b.Phase())
	assert.Equal(zx.NewPhase(5, 4), c.Phase())
	assert.NoError(g.CheckInvariants())
}

func TestPiCopy(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := zx.NewGraph()
	v := addSpider(t, g, zx.ZSpider, zx.PhasePi)
	w := addSpider(t, g, zx.XSpider, zx.NewPhase(1, 4))
	other := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	connect(t, g, v, w, zx.Simple)
	connect(t, g, v, other, zx.Hadamard)

	rule := PiCopy{}
	before := rule.Monovariant(g)
	matches := rule.Find(g)
	require.Len(matches, 1)
	require.NoError(rule.Apply(g, matches[0]))

	assert.True(v.Phase().IsZero())
	assert.Equal(zx.NewPhase(5, 4), w.Phase())
	assert.Less(rule.Monovariant(g), before)
}

func TestStateCopy(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := zx.NewGraph()
	s := addSpider(t, g, zx.XSpider, zx.PhasePi)
	w := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	t1 := addSpider(t, g, zx.ZSpider, zx.NewPhase(1, 4))
	t2 := addSpider(t, g, zx.ZSpider, zx.NewPhase(1, 4))
	connect(t, g, s, w, zx.Simple)
	connect(t, g, w, t1, zx.Hadamard)
	connect(t, g, w, t2, zx.Hadamard)

	rule := StateCopy{}
	edgesBefore := g.NumEdges()
	matches := rule.Find(g)
	require.Len(matches, 1)
	require.NoError(rule.Apply(g, matches[0]))

	_, sAlive := g.Vertex(s.ID())
	_, wAlive := g.Vertex(w.ID())
	assert.False(sAlive)
	assert.False(wAlive)
	// each target gained a pi X-state on a Hadamard leg
	for _, tv := range []*zx.Vertex{t1, t2} {
		require.Equal(1, tv.Degree())
		n := tv.Neighbors()[0]
		copyV, ok := g.Vertex(n.ID)
		require.True(ok)
		assert.Equal(zx.XSpider, copyV.Type())
		assert.True(copyV.Phase().IsPi())
		assert.Equal(zx.Hadamard, n.Kind)
	}
	assert.Less(g.NumEdges(), edgesBefore)
}

func TestHadamardFusion(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := zx.NewGraph()
	a := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	h1 := addSpider(t, g, zx.HBox, zx.PhasePi)
	h2 := addSpider(t, g, zx.HBox, zx.PhasePi)
	b := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	connect(t, g, a, h1, zx.Simple)
	connect(t, g, h1, h2, zx.Simple)
	connect(t, g, h2, b, zx.Simple)

	rule := HadamardFusion{}
	matches := rule.Find(g)
	require.Len(matches, 1)
	require.NoError(rule.Apply(g, matches[0]))

	assert.Equal(2, g.NumVertices())
	assert.Equal([]zx.EdgeType{zx.Simple}, g.EdgeKindsBetween(a.ID(), b.ID()))
}

func TestBialgebra(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// K_{2,2} between Z(0)s and X(0)s, one outer leg each
	g := zx.NewGraph()
	z1 := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	z2 := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	x1 := addSpider(t, g, zx.XSpider, zx.PhaseZero)
	x2 := addSpider(t, g, zx.XSpider, zx.PhaseZero)
	oz1 := addSpider(t, g, zx.ZSpider, zx.NewPhase(1, 4))
	oz2 := addSpider(t, g, zx.ZSpider, zx.NewPhase(1, 4))
	ox1 := addSpider(t, g, zx.XSpider, zx.NewPhase(1, 4))
	ox2 := addSpider(t, g, zx.XSpider, zx.NewPhase(1, 4))
	for _, z := range []*zx.Vertex{z1, z2} {
		for _, x := range []*zx.Vertex{x1, x2} {
			connect(t, g, z, x, zx.Simple)
		}
	}
	connect(t, g, z1, oz1, zx.Simple)
	connect(t, g, z2, oz2, zx.Simple)
	connect(t, g, x1, ox1, zx.Simple)
	connect(t, g, x2, ox2, zx.Simple)

	rule := Bialgebra{}
	before := g.NumVertices()
	matches := rule.Find(g)
	require.NotEmpty(matches)
	require.NoError(rule.Apply(g, matches[0]))

	assert.Less(g.NumVertices(), before)
	assert.NoError(g.CheckInvariants())

	// the Z-side outer legs now hang off one X-spider and vice versa
	require.Equal(1, oz1.Degree())
	hub, _ := g.Vertex(oz1.Neighbors()[0].ID)
	assert.Equal(zx.XSpider, hub.Type())
	assert.True(hub.HasNeighbor(oz2.ID()))
}

func TestGadgetFusion(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := zx.NewGraph()
	t1 := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	t2 := addSpider(t, g, zx.ZSpider, zx.PhaseZero)

	mkGadget := func(ph zx.Phase) (*zx.Vertex, *zx.Vertex) {
		hub := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
		leaf := addSpider(t, g, zx.ZSpider, ph)
		connect(t, g, hub, leaf, zx.Hadamard)
		connect(t, g, hub, t1, zx.Hadamard)
		connect(t, g, hub, t2, zx.Hadamard)
		return hub, leaf
	}
	_, leaf1 := mkGadget(zx.NewPhase(1, 4))
	hub2, leaf2 := mkGadget(zx.NewPhase(1, 4))

	rule := GadgetFusion{}
	matches := rule.Find(g)
	require.Len(matches, 1)
	require.NoError(rule.Apply(g, matches[0]))

	_, hub2Alive := g.Vertex(hub2.ID())
	_, leaf2Alive := g.Vertex(leaf2.ID())
	assert.False(hub2Alive)
	assert.False(leaf2Alive)
	assert.Equal(zx.NewPhase(1, 2), leaf1.Phase())
}

// Matches returned by any rule must be pairwise vertex-disjoint.
func TestFind_NonOverlap(t *testing.T) {
	require := require.New(t)

	// a fusion chain: a - b - c - d, all Z, Simple edges
	g := zx.NewGraph()
	var vs []*zx.Vertex
	for i := 0; i < 4; i++ {
		vs = append(vs, addSpider(t, g, zx.ZSpider, zx.PhaseZero))
	}
	for i := 0; i+1 < 4; i++ {
		connect(t, g, vs[i], vs[i+1], zx.Simple)
	}

	for _, name := range ListRules() {
		rule, err := LookupRule(name)
		require.NoError(err)
		seen := make(map[zx.VertexID]bool)
		for _, m := range rule.Find(g) {
			for _, id := range m.Vertices {
				require.False(seen[id], "rule %s returned overlapping matches", name)
				seen[id] = true
			}
		}
	}
}

// Every rule's pass strictly decreases its monovariant.
func TestRules_Monovariance(t *testing.T) {
	build := func() *zx.Graph {
		g := zx.NewGraph()
		u, _ := g.AddSpider(zx.ZSpider, zx.PhasePi, 0, 0)
		v, _ := g.AddSpider(zx.ZSpider, zx.PhaseZero, 0, 1)
		a, _ := g.AddSpider(zx.ZSpider, zx.NewPhase(1, 4), 1, 0)
		b, _ := g.AddSpider(zx.ZSpider, zx.PhaseZero, 1, 1)
		_ = g.AddEdge(u.ID(), v.ID(), zx.Hadamard)
		_ = g.AddEdge(u.ID(), a.ID(), zx.Hadamard)
		_ = g.AddEdge(v.ID(), b.ID(), zx.Hadamard)
		return g
	}

	for _, name := range ListRules() {
		rule, err := LookupRule(name)
		require.NoError(t, err)
		g := build()
		matches := rule.Find(g)
		if len(matches) == 0 {
			continue
		}
		before := rule.Monovariant(g)
		require.NoError(t, rule.Apply(g, matches[0]))
		assert.Less(t, rule.Monovariant(g), before,
			"rule %s must strictly decrease its monovariant", name)
	}
}
