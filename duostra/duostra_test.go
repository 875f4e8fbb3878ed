package duostra

import (
	"context"
	"testing"

	"github.com/kegliz/zxsyn/device"
	"github.com/kegliz/zxsyn/qcir"
	"github.com/kegliz/zxsyn/zx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zxZero() zx.Phase    { return zx.PhaseZero }
func zxQuarter() zx.Phase { return zx.NewPhase(1, 4) }

func testConfig(s SchedulerType) Config {
	cfg := DefaultConfig()
	cfg.Scheduler = s
	cfg.Placer = PlacerNaive
	cfg.Depth = 2
	cfg.Verify = true
	return cfg
}

func mapCircuit(t *testing.T, c *qcir.QCir, dev *device.Device, cfg Config) *Result {
	t.Helper()
	res, err := NewDuostra(cfg, nil).Map(context.Background(), c, dev)
	require.NoError(t, err)
	return res
}

// S3's router half: three adjacent CXs on a 2-qubit line start at
// 0, DOUBLE_DELAY, 2*DOUBLE_DELAY.
func TestRouter_ThreeCXTimes(t *testing.T) {
	require := require.New(t)

	c, err := qcir.NewBuilder(2).CX(0, 1).CX(1, 0).CX(0, 1).Build()
	require.NoError(err)
	dev := device.NewLine(2)

	cfg := testConfig(SchedulerBase)
	res := mapCircuit(t, c, dev, cfg)

	require.Len(res.Operations, 3)
	d := dev.DoubleDelay
	for i, op := range res.Operations {
		assert.Equal(t, qcir.CXGate, op.Type)
		assert.Equal(t, i*d, op.Begin)
		assert.Equal(t, (i+1)*d, op.End)
	}
	assert.Equal(t, 0, res.NumSwaps)
}

// S4: GHZ preparation on a 4-qubit path with identity placement takes
// exactly one SWAP, and the equivalence checker accepts the result.
func TestDuostra_GHZOnPath(t *testing.T) {
	require := require.New(t)

	c, err := qcir.NewBuilder(4).H(0).CX(0, 1).CX(1, 2).CX(1, 3).Build()
	require.NoError(err)
	dev := device.NewLine(4)

	res := mapCircuit(t, c, dev, testConfig(SchedulerGreedy))
	assert.Equal(t, 1, res.NumSwaps)
}

// property 7: after SWAPs, every two-qubit gate acts on adjacent qubits
func TestDuostra_RoutingCorrectness(t *testing.T) {
	require := require.New(t)

	c, err := qcir.NewBuilder(4).
		CX(0, 3).H(1).CX(1, 2).CX(0, 2).RZ(3, zxQuarter()).CX(3, 1).Build()
	require.NoError(err)
	dev := device.NewLine(4)

	for _, st := range []SchedulerType{SchedulerBase, SchedulerNaive, SchedulerGreedy, SchedulerSearch} {
		res := mapCircuit(t, c, dev, testConfig(st))
		check := dev.Clone()
		require.NoError(check.Place(res.Assignment))
		for _, op := range res.Operations {
			if op.Q1 < 0 {
				continue
			}
			assert.True(t, check.Qubit(op.Q0).IsAdjacent(op.Q1),
				"scheduler %s emitted %s on non-adjacent qubits", st, op)
		}
	}
}

// property 8: per physical qubit, begin times strictly increase and
// never overlap the preceding operation
func TestDuostra_MonotoneTime(t *testing.T) {
	require := require.New(t)

	c, err := qcir.NewBuilder(4).CX(0, 3).CX(1, 2).CX(0, 1).CX(2, 3).Build()
	require.NoError(err)
	dev := device.NewLine(4)

	res := mapCircuit(t, c, dev, testConfig(SchedulerGreedy))
	lastEnd := make(map[int]int)
	for _, op := range res.Operations {
		for _, q := range []int{op.Q0, op.Q1} {
			if q < 0 {
				continue
			}
			require.GreaterOrEqual(op.Begin, lastEnd[q],
				"operation %s overlaps qubit %d", op, q)
			lastEnd[q] = op.End
		}
	}
}

func TestDuostra_ArityMismatch(t *testing.T) {
	require := require.New(t)

	c, err := qcir.NewBuilder(3).CX(0, 2).Build()
	require.NoError(err)
	_, err = NewDuostra(testConfig(SchedulerBase), nil).Map(context.Background(), c, device.NewLine(2))
	assert.ErrorIs(t, err, ErrArityMismatch)
}

func TestDuostra_Interrupted(t *testing.T) {
	require := require.New(t)

	c, err := qcir.NewBuilder(2).CX(0, 1).Build()
	require.NoError(err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewDuostra(testConfig(SchedulerBase), nil).Map(ctx, c, device.NewLine(2))
	assert.ErrorIs(t, err, ErrInterrupted)
}

// logical SWAPs route as three CXs, never as binding permutations
func TestDuostra_LogicalSwap(t *testing.T) {
	require := require.New(t)

	c, err := qcir.NewBuilder(2).SWAP(0, 1).Build()
	require.NoError(err)
	res := mapCircuit(t, c, device.NewLine(2), testConfig(SchedulerBase))
	require.Len(res.Operations, 3)
	for _, op := range res.Operations {
		assert.Equal(t, qcir.CXGate, op.Type)
	}
}

// all schedulers agree on the routed gate multiset for a fixed circuit
func TestSchedulers_AllComplete(t *testing.T) {
	require := require.New(t)

	c, err := qcir.NewBuilder(3).H(0).CX(0, 1).CX(0, 2).CX(1, 2).Build()
	require.NoError(err)
	dev := device.NewLine(3)

	for _, st := range []SchedulerType{
		SchedulerBase, SchedulerNaive, SchedulerRandom, SchedulerGreedy, SchedulerSearch,
	} {
		cfg := testConfig(st)
		cfg.Seed = 7
		res := mapCircuit(t, c, dev, cfg)
		assert.Len(t, res.Order, 4, "scheduler %s must route every gate", st)
	}
}

func TestSearchScheduler_Options(t *testing.T) {
	require := require.New(t)

	c, err := qcir.NewBuilder(3).CX(0, 2).CX(1, 2).CX(0, 1).Build()
	require.NoError(err)
	dev := device.NewLine(3)

	cfg := testConfig(SchedulerSearch)
	cfg.Depth = 3
	cfg.NeverCache = false
	cfg.ExecuteSingle = true
	cfg.NumCandidates = 2
	res := mapCircuit(t, c, dev, cfg)
	assert.Len(t, res.Order, 3)
}

func TestChecker_RejectsWrongOrder(t *testing.T) {
	require := require.New(t)

	c, err := qcir.NewBuilder(2).H(0).CX(0, 1).Build()
	require.NoError(err)
	dev := device.NewLine(2)
	require.NoError(dev.Place([]int{0, 1}))

	// CX before H violates the qubit-0 dependency chain
	ops := []device.Operation{
		device.NewDoubleOp(qcir.CXGate, zxZero(), 0, 1, 0, 2),
		device.NewSingleOp(qcir.HGate, zxZero(), 0, 2, 3),
	}
	assert.Error(t, NewChecker(c, dev).Check(ops))

	// correct order passes
	dev2 := device.NewLine(2)
	require.NoError(dev2.Place([]int{0, 1}))
	ops = []device.Operation{
		device.NewSingleOp(qcir.HGate, zxZero(), 0, 0, 1),
		device.NewDoubleOp(qcir.CXGate, zxZero(), 0, 1, 1, 3),
	}
	assert.NoError(t, NewChecker(c, dev2).Check(ops))
}

func TestParseOptions(t *testing.T) {
	st, err := ParseSchedulerType("search")
	require.NoError(t, err)
	assert.Equal(t, SchedulerSearch, st)
	st, err = ParseSchedulerType("static") // alias for naive
	require.NoError(t, err)
	assert.Equal(t, SchedulerNaive, st)
	_, err = ParseSchedulerType("bogus")
	assert.Error(t, err)

	rt, err := ParseRouterType("shortest-path")
	require.NoError(t, err)
	assert.Equal(t, RouterShortestPath, rt)

	pt, err := ParsePlacerType("dfs")
	require.NoError(t, err)
	assert.Equal(t, PlacerDFS, pt)

	mm, err := ParseMinMax("max")
	require.NoError(t, err)
	assert.Equal(t, MaxOption, mm)
	assert.Equal(t, 3, MaxOption.Pick(1, 3))
	assert.Equal(t, 1, MinOption.Pick(1, 3))
}

func TestPlacers(t *testing.T) {
	require := require.New(t)

	dev := device.NewLine(4)
	naive, err := NewPlacer(PlacerNaive, nil)
	require.NoError(err)
	assert.Equal(t, []int{0, 1, 2, 3}, naive.Place(dev))

	dfs, err := NewPlacer(PlacerDFS, nil)
	require.NoError(err)
	assign := dfs.Place(dev)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, assign)
}

func TestRouter_ShortestPathInsertsSwaps(t *testing.T) {
	require := require.New(t)

	c, err := qcir.NewBuilder(3).CX(0, 2).Build()
	require.NoError(err)
	cfg := testConfig(SchedulerBase)
	cfg.Router = RouterShortestPath
	res := mapCircuit(t, c, device.NewLine(3), cfg)
	assert.Equal(t, 1, res.NumSwaps)

	cfg.Router = RouterDuostra
	res = mapCircuit(t, c, device.NewLine(3), cfg)
	assert.Equal(t, 1, res.NumSwaps)
}
