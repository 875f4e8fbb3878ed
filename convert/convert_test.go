package convert

import (
	"testing"

	"github.com/kegliz/zxsyn/qcir"
	"github.com/kegliz/zxsyn/zx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToZX_CNOT(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c, err := qcir.NewBuilder(2).CX(0, 1).Build()
	require.NoError(err)
	g, err := ToZX(c)
	require.NoError(err)

	require.NoError(g.CheckInvariants())
	assert.Len(g.Inputs(), 2)
	assert.Len(g.Outputs(), 2)
	// 4 boundaries + Z control + X target
	assert.Equal(6, g.NumVertices())

	var zc, xt *zx.Vertex
	for _, v := range g.Vertices() {
		switch v.Type() {
		case zx.ZSpider:
			zc = v
		case zx.XSpider:
			xt = v
		}
	}
	require.NotNil(zc)
	require.NotNil(xt)
	assert.True(zc.HasEdge(xt.ID(), zx.Simple))
}

func TestToZX_HadamardFoldsIntoEdges(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// H; Z; H on one wire: both edges around the spider are Hadamard
	c, err := qcir.NewBuilder(1).H(0).Z(0).H(0).Build()
	require.NoError(err)
	g, err := ToZX(c)
	require.NoError(err)

	var spider *zx.Vertex
	for _, v := range g.Vertices() {
		if v.Type() == zx.ZSpider && v.Phase().IsPi() {
			spider = v
		}
	}
	require.NotNil(spider)
	// the input side carries a detour because boundary edges stay Simple
	assert.NoError(g.CheckInvariants())
	assert.True(g.NumVertices() >= 3)
}

func TestToZX_DoubleHadamardCancels(t *testing.T) {
	require := require.New(t)

	c, err := qcir.NewBuilder(1).H(0).H(0).Build()
	require.NoError(err)
	g, err := ToZX(c)
	require.NoError(err)
	// wire collapses back to a bare identity
	assert.Equal(t, 2, g.NumVertices())
	in := g.Inputs()[0]
	require.Equal(1, in.Degree())
	assert.Equal(t, zx.Simple, in.Neighbors()[0].Kind)
}

func TestToZX_PhaseGates(t *testing.T) {
	require := require.New(t)

	c, err := qcir.NewBuilder(1).T(0).S(0).RZ(0, zx.NewPhase(1, 8)).Build()
	require.NoError(err)
	g, err := ToZX(c)
	require.NoError(err)

	var phases []zx.Phase
	for _, v := range g.Vertices() {
		if v.Type() == zx.ZSpider {
			phases = append(phases, v.Phase())
		}
	}
	assert.Equal(t, []zx.Phase{zx.NewPhase(1, 4), zx.NewPhase(1, 2), zx.NewPhase(1, 8)}, phases)
}

func TestToZX_SwapCrossesWires(t *testing.T) {
	require := require.New(t)

	c, err := qcir.NewBuilder(2).SWAP(0, 1).Build()
	require.NoError(err)
	g, err := ToZX(c)
	require.NoError(err)

	// input 0 ends up wired to output 1 and vice versa
	in0 := g.Inputs()[0]
	out1 := g.Outputs()[1]
	require.Equal(1, in0.Degree())
	assert.Equal(t, out1.ID(), in0.Neighbors()[0].ID)
	assert.NoError(t, g.CheckInvariants())
}

func TestToZX_CZ(t *testing.T) {
	require := require.New(t)

	c, err := qcir.NewBuilder(2).CZ(0, 1).Build()
	require.NoError(err)
	g, err := ToZX(c)
	require.NoError(err)

	spiders := 0
	for _, v := range g.Vertices() {
		if v.Type() == zx.ZSpider {
			spiders++
		}
	}
	assert.Equal(t, 2, spiders)
	assert.NoError(t, g.CheckInvariants())
}
