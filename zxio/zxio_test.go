package zxio

import (
	"testing"

	"github.com/kegliz/zxsyn/zx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGraph = `
// a 2-qubit CNOT
I0 (0, 0) S2 0
I1 (1, 0) S3 1
Z2 (0, 1) S3
X3 (1, 1)
O4 (0, 2) S2 0
O5 (1, 2) S3 1
`

func TestRead_CNOTGraph(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g, err := ReadString(sampleGraph)
	require.NoError(err)
	require.NoError(g.CheckInvariants())

	assert.Equal(6, g.NumVertices())
	assert.Len(g.Inputs(), 2)
	assert.Len(g.Outputs(), 2)
	assert.Equal(5, g.NumEdges())

	var z, x *zx.Vertex
	for _, v := range g.Vertices() {
		switch v.Type() {
		case zx.ZSpider:
			z = v
		case zx.XSpider:
			x = v
		}
	}
	require.NotNil(z)
	require.NotNil(x)
	assert.True(z.HasEdge(x.ID(), zx.Simple))
}

func TestRead_PhasesAndHadamard(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g, err := ReadString(`
I0 (0, 0) S1
Z1 (0, 1) H2 3/4
Z2 (0, 2) S3
O3 (0, 3)
`)
	require.NoError(err)
	var phased *zx.Vertex
	for _, v := range g.Vertices() {
		if v.Type() == zx.ZSpider && !v.Phase().IsZero() {
			phased = v
		}
	}
	require.NotNil(phased)
	assert.Equal(zx.NewPhase(3, 4), phased.Phase())

	// the H2 reference put a Hadamard edge between the two spiders
	found := false
	for _, e := range g.Edges() {
		if e.Kind == zx.Hadamard {
			found = true
		}
	}
	assert.True(found)
}

func TestRead_AutoPlacementAndQubits(t *testing.T) {
	require := require.New(t)

	g, err := ReadString(`
I0 (-, -) S1
Z1 (-, -)
O2 (-, -) S1
`)
	require.NoError(err)
	assert.Equal(t, 0, g.Inputs()[0].Qubit())
	assert.Equal(t, 0, g.Outputs()[0].Qubit())
}

func TestRead_HBoxDefaultsToPi(t *testing.T) {
	require := require.New(t)

	g, err := ReadString("H0 (0, 0)")
	require.NoError(err)
	v := g.Vertices()[0]
	assert.Equal(t, zx.HBox, v.Type())
	assert.True(t, v.Phase().IsPi())
}

func TestRead_Errors(t *testing.T) {
	cases := map[string]string{
		"bad kind":       "Q0 (0, 0)",
		"bad id":         "Zx (0, 0)",
		"dup id":         "Z0 (0, 0)\nZ0 (1, 1)",
		"bad neighbor":   "Z0 (0, 0) S99",
		"bad phase":      "Z0 (0, 0) 1/x",
		"dup qubit":      "I0 (0, 0) 1\nI1 (1, 0) 1",
		"unclosed coord": "Z0 (0,",
	}
	for name, text := range cases {
		_, err := ReadString(text)
		require.Error(t, err, name)
		var pe *ParseError
		assert.ErrorAs(t, err, &pe, name)
		assert.Positive(t, pe.Line, name)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	require := require.New(t)

	g, err := ReadString(sampleGraph)
	require.NoError(err)

	text, err := WriteString(g, WriteOptions{})
	require.NoError(err)
	g2, err := ReadString(text)
	require.NoError(err)

	assert.Equal(t, g.NumVertices(), g2.NumVertices())
	assert.Equal(t, g.NumEdges(), g2.NumEdges())
	assert.Len(t, g2.Inputs(), 2)
	require.NoError(g2.CheckInvariants())
}

func TestWrite_CompleteListsBothEndpoints(t *testing.T) {
	require := require.New(t)

	g := zx.NewGraph()
	a, _ := g.AddSpider(zx.ZSpider, zx.PhaseZero, 0, 0)
	b, _ := g.AddSpider(zx.ZSpider, zx.PhaseZero, 0, 1)
	require.NoError(g.AddEdge(a.ID(), b.ID(), zx.Hadamard))

	sparse, err := WriteString(g, WriteOptions{})
	require.NoError(err)
	complete, err := WriteString(g, WriteOptions{Complete: true})
	require.NoError(err)
	assert.Less(t, len(sparse), len(complete))

	// both forms parse back to the same graph
	g1, err := ReadString(sparse)
	require.NoError(err)
	g2, err := ReadString(complete)
	require.NoError(err)
	assert.Equal(t, g1.NumEdges(), g2.NumEdges())
}
