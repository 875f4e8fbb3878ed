package renderer

import (
	"testing"

	"github.com/kegliz/zxsyn/zx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Smoke(t *testing.T) {
	require := require.New(t)

	g := zx.NewGraph()
	in, _ := g.AddInput(0)
	out, _ := g.AddOutput(0)
	z, err := g.AddSpider(zx.ZSpider, zx.NewPhase(1, 2), 0, 1)
	require.NoError(err)
	x, err := g.AddSpider(zx.XSpider, zx.PhaseZero, 1, 1)
	require.NoError(err)
	h, err := g.AddSpider(zx.HBox, zx.PhasePi, 2, 2)
	require.NoError(err)
	require.NoError(g.AddEdge(in.ID(), z.ID(), zx.Simple))
	require.NoError(g.AddEdge(z.ID(), x.ID(), zx.Hadamard))
	require.NoError(g.AddEdge(x.ID(), h.ID(), zx.Simple))
	require.NoError(g.AddEdge(z.ID(), out.ID(), zx.Simple))

	img, err := NewRenderer(32).Render(g)
	require.NoError(err)
	bounds := img.Bounds()
	assert.Positive(t, bounds.Dx())
	assert.Positive(t, bounds.Dy())
}
