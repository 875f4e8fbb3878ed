package simp

import (
	"context"
	"testing"

	"github.com/kegliz/zxsyn/zx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver() *Driver {
	return NewDriver(DriverOptions{})
}

// S1 through the driver: fusing two pi/4 spiders on a wire.
func TestCliffordSimp_FusesWire(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := zx.NewGraph()
	in, _ := g.AddInput(0)
	out, _ := g.AddOutput(0)
	a := addSpider(t, g, zx.ZSpider, zx.NewPhase(1, 4))
	b := addSpider(t, g, zx.ZSpider, zx.NewPhase(1, 4))
	require.NoError(g.AddEdge(in.ID(), a.ID(), zx.Simple))
	connect(t, g, a, b, zx.Simple)
	require.NoError(g.AddEdge(b.ID(), out.ID(), zx.Simple))

	res, err := newTestDriver().CliffordSimp(context.Background(), g)
	require.NoError(err)
	assert.Positive(res.Applied["spider-fusion"])

	// one spider of pi/2 remains between the boundaries
	spiders := 0
	for _, v := range g.Vertices() {
		if v.Type().IsSpider() {
			spiders++
			assert.Equal(zx.NewPhase(1, 2), v.Phase())
		}
	}
	assert.Equal(1, spiders)
	assert.NoError(g.CheckInvariants())
}

// S6: to-graph-like splits a bare wire, clifford-simp restores it.
func TestToGraphLike_BareWireRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := zx.NewGraph()
	in, _ := g.AddInput(0)
	out, _ := g.AddOutput(0)
	require.NoError(g.AddWire(in.ID(), out.ID()))

	d := newTestDriver()
	require.NoError(d.ToGraphLike(context.Background(), g))
	assert.True(g.IsGraphLike(), "to-graph-like must deliver a graph-like graph")
	assert.Greater(g.NumVertices(), 2)

	_, err := d.CliffordSimp(context.Background(), g)
	require.NoError(err)

	// back to a direct Simple wire
	assert.Equal(2, g.NumVertices())
	require.Equal(1, in.Degree())
	n := in.Neighbors()[0]
	assert.Equal(out.ID(), n.ID)
	assert.Equal(zx.Simple, n.Kind)
}

func TestToGraphLike_ColourChange(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// CNOT-shaped graph: Z and X spider joined by a Simple edge
	g := zx.NewGraph()
	in0, _ := g.AddInput(0)
	in1, _ := g.AddInput(1)
	out0, _ := g.AddOutput(0)
	out1, _ := g.AddOutput(1)
	z := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	x := addSpider(t, g, zx.XSpider, zx.PhaseZero)
	require.NoError(g.AddEdge(in0.ID(), z.ID(), zx.Simple))
	require.NoError(g.AddEdge(z.ID(), out0.ID(), zx.Simple))
	require.NoError(g.AddEdge(in1.ID(), x.ID(), zx.Simple))
	require.NoError(g.AddEdge(x.ID(), out1.ID(), zx.Simple))
	connect(t, g, z, x, zx.Simple)

	require.NoError(newTestDriver().ToGraphLike(context.Background(), g))
	assert.True(g.IsGraphLike())
	for _, v := range g.Vertices() {
		assert.NotEqual(zx.XSpider, v.Type())
	}
	assert.NoError(g.CheckInvariants())
}

func TestToGraphLike_RejectsFatHBox(t *testing.T) {
	g := zx.NewGraph()
	h := addSpider(t, g, zx.HBox, zx.PhasePi)
	for i := 0; i < 3; i++ {
		v := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
		connect(t, g, h, v, zx.Simple)
	}
	err := newTestDriver().ToGraphLike(context.Background(), g)
	assert.ErrorIs(t, err, ErrNotReducible)
}

func TestDriver_Interrupted(t *testing.T) {
	g := zx.NewGraph()
	a := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	b := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	connect(t, g, a, b, zx.Simple)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestDriver().CliffordSimp(ctx, g)
	assert.ErrorIs(t, err, ErrInterrupted)
	// graph left valid
	assert.NoError(t, g.CheckInvariants())
}

func TestFullReduce_MergesPhases(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// two pi/4 spiders joined through a phase-0 spider by H edges:
	// identity removal drops the middle spider, fusion merges the phases
	g := zx.NewGraph()
	in, _ := g.AddInput(0)
	out, _ := g.AddOutput(0)
	a := addSpider(t, g, zx.ZSpider, zx.NewPhase(1, 4))
	b := addSpider(t, g, zx.ZSpider, zx.NewPhase(1, 4))
	c := addSpider(t, g, zx.ZSpider, zx.PhaseZero)
	require.NoError(g.AddEdge(in.ID(), a.ID(), zx.Simple))
	connect(t, g, a, c, zx.Hadamard)
	connect(t, g, c, b, zx.Hadamard)
	require.NoError(g.AddEdge(b.ID(), out.ID(), zx.Simple))

	res, err := newTestDriver().FullReduce(context.Background(), g)
	require.NoError(err)
	assert.Positive(res.Iterations)

	// one spider of pi/2 remains between the boundaries
	spiders := 0
	for _, v := range g.Vertices() {
		if v.Type().IsSpider() {
			spiders++
			assert.Equal(zx.NewPhase(1, 2), v.Phase())
		}
	}
	assert.Equal(1, spiders)
	assert.NoError(g.CheckInvariants())
}

func TestRuleRegistry(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	names := ListRules()
	assert.Len(names, 9)
	for _, name := range names {
		rule, err := LookupRule(name)
		require.NoError(err)
		assert.Equal(name, rule.Name())
	}
	_, err := LookupRule("nope")
	assert.Error(err)

	reg := NewRuleRegistry()
	require.NoError(reg.Register(SpiderFusion{}))
	assert.Error(reg.Register(SpiderFusion{})) // duplicate
}
