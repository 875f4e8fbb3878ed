package extract

import (
	"context"
	"testing"

	"github.com/kegliz/zxsyn/qcir"
	"github.com/kegliz/zxsyn/zx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractGraph(t *testing.T, g *zx.Graph) (*qcir.QCir, error) {
	t.Helper()
	return NewExtractor(g, Options{}).Run(context.Background())
}

// identity wires extract to the empty circuit
func TestExtract_BareWires(t *testing.T) {
	require := require.New(t)

	g := zx.NewGraph()
	for q := 0; q < 2; q++ {
		in, err := g.AddInput(q)
		require.NoError(err)
		out, err := g.AddOutput(q)
		require.NoError(err)
		require.NoError(g.AddWire(in.ID(), out.ID()))
	}
	c, err := extractGraph(t, g)
	require.NoError(err)
	assert.Equal(t, 0, c.NumGates())
	assert.Equal(t, 2, c.NumQubits())
}

// crossed wires extract to a single SWAP (S3's extractor half)
func TestExtract_CrossedWiresGiveSwap(t *testing.T) {
	require := require.New(t)

	g := zx.NewGraph()
	in0, _ := g.AddInput(0)
	in1, _ := g.AddInput(1)
	out0, _ := g.AddOutput(0)
	out1, _ := g.AddOutput(1)
	require.NoError(g.AddWire(in0.ID(), out1.ID()))
	require.NoError(g.AddWire(in1.ID(), out0.ID()))

	c, err := extractGraph(t, g)
	require.NoError(err)
	require.Equal(1, c.NumGates())
	assert.Equal(t, qcir.SwapGate, c.Gate(0).Type)
	assert.ElementsMatch(t, []int{0, 1}, c.Gate(0).Qubits)
}

// a single interior Hadamard wire extracts to H
func TestExtract_HadamardWire(t *testing.T) {
	require := require.New(t)

	g := zx.NewGraph()
	in, _ := g.AddInput(0)
	out, _ := g.AddOutput(0)
	a, _ := g.AddSpider(zx.ZSpider, zx.PhaseZero, 0, 1)
	b, _ := g.AddSpider(zx.ZSpider, zx.PhaseZero, 0, 2)
	require.NoError(g.AddEdge(in.ID(), a.ID(), zx.Simple))
	require.NoError(g.AddEdge(a.ID(), b.ID(), zx.Hadamard))
	require.NoError(g.AddEdge(b.ID(), out.ID(), zx.Simple))

	c, err := extractGraph(t, g)
	require.NoError(err)
	require.Equal(1, c.NumGates())
	assert.Equal(t, qcir.HGate, c.Gate(0).Type)
}

// phases absorb into Z rotations as the frontier advances
func TestExtract_PhaseWire(t *testing.T) {
	require := require.New(t)

	g := zx.NewGraph()
	in, _ := g.AddInput(0)
	out, _ := g.AddOutput(0)
	a, _ := g.AddSpider(zx.ZSpider, zx.NewPhase(1, 4), 0, 1)
	b, _ := g.AddSpider(zx.ZSpider, zx.PhaseZero, 0, 2)
	require.NoError(g.AddEdge(in.ID(), a.ID(), zx.Simple))
	require.NoError(g.AddEdge(a.ID(), b.ID(), zx.Hadamard))
	require.NoError(g.AddEdge(b.ID(), out.ID(), zx.Simple))

	c, err := extractGraph(t, g)
	require.NoError(err)
	require.Equal(2, c.NumGates())
	assert.Equal(t, qcir.RZGate, c.Gate(0).Type)
	assert.Equal(t, zx.NewPhase(1, 4), c.Gate(0).Phase)
	assert.Equal(t, qcir.HGate, c.Gate(1).Type)
}

// a Hadamard edge between two boundary spiders extracts to a CZ
func TestExtract_CZ(t *testing.T) {
	require := require.New(t)

	g := zx.NewGraph()
	in0, _ := g.AddInput(0)
	in1, _ := g.AddInput(1)
	out0, _ := g.AddOutput(0)
	out1, _ := g.AddOutput(1)
	u0, _ := g.AddSpider(zx.ZSpider, zx.PhaseZero, 0, 1)
	u1, _ := g.AddSpider(zx.ZSpider, zx.PhaseZero, 1, 1)
	a, _ := g.AddSpider(zx.ZSpider, zx.PhaseZero, 0, 2)
	b, _ := g.AddSpider(zx.ZSpider, zx.PhaseZero, 1, 2)
	require.NoError(g.AddEdge(in0.ID(), u0.ID(), zx.Simple))
	require.NoError(g.AddEdge(u0.ID(), a.ID(), zx.Hadamard))
	require.NoError(g.AddEdge(a.ID(), out0.ID(), zx.Simple))
	require.NoError(g.AddEdge(in1.ID(), u1.ID(), zx.Simple))
	require.NoError(g.AddEdge(u1.ID(), b.ID(), zx.Hadamard))
	require.NoError(g.AddEdge(b.ID(), out1.ID(), zx.Simple))
	require.NoError(g.AddEdge(a.ID(), b.ID(), zx.Hadamard))

	c, err := extractGraph(t, g)
	require.NoError(err)
	czs := 0
	for _, gate := range c.Gates() {
		if gate.Type == qcir.CZGate {
			czs++
		}
	}
	assert.Equal(t, 1, czs)
}

// ladder of interior spiders: CNOTs from elimination, Hadamards from
// frontier advances; the run must terminate cleanly
func TestExtract_InteriorLadder(t *testing.T) {
	require := require.New(t)

	g := zx.NewGraph()
	in0, _ := g.AddInput(0)
	in1, _ := g.AddInput(1)
	out0, _ := g.AddOutput(0)
	out1, _ := g.AddOutput(1)
	a, _ := g.AddSpider(zx.ZSpider, zx.PhaseZero, 0, 1)
	b, _ := g.AddSpider(zx.ZSpider, zx.PhaseZero, 1, 1)
	c1, _ := g.AddSpider(zx.ZSpider, zx.PhaseZero, 0, 2)
	d, _ := g.AddSpider(zx.ZSpider, zx.PhaseZero, 1, 2)
	require.NoError(g.AddEdge(in0.ID(), a.ID(), zx.Simple))
	require.NoError(g.AddEdge(in1.ID(), b.ID(), zx.Simple))
	require.NoError(g.AddEdge(a.ID(), c1.ID(), zx.Hadamard))
	require.NoError(g.AddEdge(b.ID(), d.ID(), zx.Hadamard))
	require.NoError(g.AddEdge(a.ID(), d.ID(), zx.Hadamard))
	require.NoError(g.AddEdge(c1.ID(), out0.ID(), zx.Simple))
	require.NoError(g.AddEdge(d.ID(), out1.ID(), zx.Simple))

	circ, err := extractGraph(t, g)
	require.NoError(err)
	assert.Positive(t, circ.NumGates())

	// elimination must have produced at least one CNOT for the cross edge
	cnots := 0
	for _, gate := range circ.Gates() {
		if gate.Type == qcir.CXGate {
			cnots++
		}
	}
	assert.Positive(t, cnots)
}

func TestExtract_NotGraphLike(t *testing.T) {
	g := zx.NewGraph()
	_, err := g.AddSpider(zx.XSpider, zx.PhaseZero, 0, 0)
	require.NoError(t, err)
	_, err = extractGraph(t, g)
	assert.ErrorIs(t, err, ErrNotGraphLike)
}

func TestExtract_QubitMismatch(t *testing.T) {
	require := require.New(t)

	g := zx.NewGraph()
	in, _ := g.AddInput(0)
	z, _ := g.AddSpider(zx.ZSpider, zx.PhaseZero, 0, 1)
	require.NoError(g.AddEdge(in.ID(), z.ID(), zx.Simple))
	// no outputs at all
	_, err := extractGraph(t, g)
	assert.ErrorIs(t, err, ErrQubitMismatch)
}

func TestExtract_Interrupted(t *testing.T) {
	require := require.New(t)

	g := zx.NewGraph()
	in, _ := g.AddInput(0)
	out, _ := g.AddOutput(0)
	require.NoError(g.AddWire(in.ID(), out.ID()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewExtractor(g, Options{}).Run(ctx)
	assert.ErrorIs(t, err, ErrInterrupted)
}

// the extractor works on a copy: the caller's graph is untouched
func TestExtract_PreservesInput(t *testing.T) {
	require := require.New(t)

	g := zx.NewGraph()
	in, _ := g.AddInput(0)
	out, _ := g.AddOutput(0)
	require.NoError(g.AddWire(in.ID(), out.ID()))
	before := g.NumVertices()

	_, err := extractGraph(t, g)
	require.NoError(err)
	assert.Equal(t, before, g.NumVertices())
	assert.NoError(t, g.CheckInvariants())
}
