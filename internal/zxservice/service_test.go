package zxservice

import (
	"context"
	"testing"

	"github.com/kegliz/zxsyn/duostra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wireGraph = `
I0 (0, 0) S1 0
Z1 (0, 1) S2 1/4
Z2 (0, 2) S3 1/4
O3 (0, 3) 0
`

const deviceText = `
Name: pair
Qubits: 2
Gate Set: {cx, cz, h, rz, x}
Coupling: [[1], [0]]
`

func testService() Service {
	cfg := duostra.DefaultConfig()
	cfg.Scheduler = duostra.SchedulerGreedy
	cfg.Placer = duostra.PlacerNaive
	cfg.Verify = true
	return NewService(ServiceOptions{Config: cfg})
}

func TestService_SaveAndFetch(t *testing.T) {
	require := require.New(t)

	s := testService()
	id, err := s.SaveGraphText(wireGraph)
	require.NoError(err)

	text, err := s.GraphText(id)
	require.NoError(err)
	assert.Contains(t, text, "I0")

	_, err = s.GraphText("missing")
	assert.Error(t, err)

	_, err = s.SaveGraphText("Q0 broken")
	assert.Error(t, err)
}

func TestService_SimplifyAndExtract(t *testing.T) {
	require := require.New(t)

	s := testService()
	id, err := s.SaveGraphText(wireGraph)
	require.NoError(err)

	// the two pi/4 spiders fuse into one pi/2 spider
	require.NoError(s.Simplify(context.Background(), id, "clifford-simp"))
	g, err := s.Graph(id)
	require.NoError(err)
	assert.Equal(t, 3, g.NumVertices())

	circuit, err := s.Extract(context.Background(), id)
	require.NoError(err)
	assert.Equal(t, 1, circuit.NumQubits())
	assert.Positive(t, circuit.NumGates())

	assert.Error(t, s.Simplify(context.Background(), id, "frobnicate"))
}

func TestService_MapCircuit(t *testing.T) {
	require := require.New(t)

	s := testService()
	id, err := s.SaveGraphText(wireGraph)
	require.NoError(err)
	circuit, err := s.Extract(context.Background(), id)
	require.NoError(err)

	summary, err := s.MapCircuit(context.Background(), circuit, deviceText)
	require.NoError(err)
	assert.GreaterOrEqual(t, summary.Depth, 0)
	assert.NotNil(t, summary.Operations)

	_, err = s.MapCircuit(context.Background(), circuit, "Qubits: x")
	assert.Error(t, err)
}
