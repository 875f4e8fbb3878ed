package duostra

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/kegliz/zxsyn/device"
	"github.com/kegliz/zxsyn/qcir"
)

// Scheduler hands ready gates to a router in some order.
type Scheduler interface {
	// AssignGates routes the whole topology and returns the device in
	// its final state.
	AssignGates(ctx context.Context, router *Router) (*device.Device, error)

	// Operations returns the emitted physical operations, sorted by
	// begin time once AssignGates returns.
	Operations() []device.Operation

	// Order returns the logical gate ids in routing order.
	Order() []int

	// Clone deep-copies the scheduler state for search-tree workers.
	Clone() Scheduler

	Topology() *qcir.Topology
}

// NewScheduler builds the configured scheduler over a topology.
func NewScheduler(cfg Config, topo *qcir.Topology) (Scheduler, error) {
	switch cfg.Scheduler {
	case SchedulerBase:
		return newBaseScheduler(cfg, topo), nil
	case SchedulerNaive:
		return newNaiveScheduler(cfg, topo), nil
	case SchedulerRandom:
		return newRandomScheduler(cfg, topo), nil
	case SchedulerGreedy:
		return newGreedyScheduler(cfg, topo), nil
	case SchedulerSearch:
		return newSearchScheduler(cfg, topo), nil
	}
	return nil, fmt.Errorf("duostra: scheduler type %d not found", cfg.Scheduler)
}

// NewStaticScheduler is an alias for the naive scheduler; the two names
// have always referred to the same behaviour.
func NewStaticScheduler(cfg Config, topo *qcir.Topology) Scheduler {
	return newNaiveScheduler(cfg, topo)
}

// baseScheduler routes gates in id order. Gate ids follow circuit
// order, so predecessors always come first.
type baseScheduler struct {
	cfg    Config
	topo   *qcir.Topology
	ops    []device.Operation
	order  []int
	sorted bool
}

func newBaseScheduler(cfg Config, topo *qcir.Topology) *baseScheduler {
	return &baseScheduler{cfg: cfg, topo: topo}
}

func (s *baseScheduler) Topology() *qcir.Topology { return s.topo }

func (s *baseScheduler) Clone() Scheduler {
	return &baseScheduler{cfg: s.cfg, topo: s.topo.Clone(),
		ops: append([]device.Operation(nil), s.ops...), order: append([]int(nil), s.order...)}
}

// routeOneGate routes a single gate; with forget the operations are
// dropped (search workers probing costs use this).
func (s *baseScheduler) routeOneGate(router *Router, id int, forget bool) (int, error) {
	ops, err := router.AssignGate(s.topo.Gate(id))
	if err != nil {
		return 0, err
	}
	maxEnd := 0
	for _, op := range ops {
		if op.End > maxEnd {
			maxEnd = op.End
		}
	}
	if !forget {
		s.ops = append(s.ops, ops...)
	}
	s.order = append(s.order, id)
	if err := s.topo.UpdateAvailable(id); err != nil {
		return 0, err
	}
	return maxEnd, nil
}

func (s *baseScheduler) sort() {
	sort.SliceStable(s.ops, func(i, j int) bool { return s.ops[i].Begin < s.ops[j].Begin })
	s.sorted = true
}

func (s *baseScheduler) AssignGates(ctx context.Context, router *Router) (*device.Device, error) {
	for id := 0; id < s.topo.NumGates(); id++ {
		if err := ctx.Err(); err != nil {
			return router.Device(), fmt.Errorf("%w: %v", ErrInterrupted, err)
		}
		if _, err := s.routeOneGate(router, id, false); err != nil {
			return router.Device(), err
		}
	}
	s.sort()
	return router.Device(), nil
}

func (s *baseScheduler) Operations() []device.Operation {
	out := make([]device.Operation, len(s.ops))
	copy(out, s.ops)
	return out
}

func (s *baseScheduler) Order() []int { return append([]int(nil), s.order...) }

// FinalCost is the mapping depth: the end of the last operation.
func FinalCost(ops []device.Operation) int {
	max := 0
	for _, op := range ops {
		if op.End > max {
			max = op.End
		}
	}
	return max
}

// TotalTime is the summed duration of all operations.
func TotalTime(ops []device.Operation) int {
	total := 0
	for _, op := range ops {
		total += op.Duration()
	}
	return total
}

// NumSwaps counts the SWAP operations.
func NumSwaps(ops []device.Operation) int {
	n := 0
	for _, op := range ops {
		if op.IsSwap() {
			n++
		}
	}
	return n
}

// executableGate returns the first ready gate whose qubits are already
// adjacent, or -1.
func executableGate(topo *qcir.Topology, router *Router) int {
	for _, id := range topo.AvailableGates() {
		if router.IsExecutable(topo.Gate(id)) {
			return id
		}
	}
	return -1
}

// naiveScheduler prefers an already-executable gate, else the first
// ready one.
type naiveScheduler struct {
	baseScheduler
}

func newNaiveScheduler(cfg Config, topo *qcir.Topology) *naiveScheduler {
	return &naiveScheduler{baseScheduler{cfg: cfg, topo: topo}}
}

func (s *naiveScheduler) Clone() Scheduler {
	return &naiveScheduler{*s.baseScheduler.Clone().(*baseScheduler)}
}

func (s *naiveScheduler) AssignGates(ctx context.Context, router *Router) (*device.Device, error) {
	for !s.topo.Done() {
		if err := ctx.Err(); err != nil {
			return router.Device(), fmt.Errorf("%w: %v", ErrInterrupted, err)
		}
		waitlist := s.topo.AvailableGates()
		id := executableGate(s.topo, router)
		if id < 0 {
			id = waitlist[0]
		}
		if _, err := s.routeOneGate(router, id, false); err != nil {
			return router.Device(), err
		}
	}
	s.sort()
	return router.Device(), nil
}

// randomScheduler draws ready gates from the seeded generator.
type randomScheduler struct {
	baseScheduler
	rng *rand.Rand
}

func newRandomScheduler(cfg Config, topo *qcir.Topology) *randomScheduler {
	return &randomScheduler{
		baseScheduler: baseScheduler{cfg: cfg, topo: topo},
		rng:           rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (s *randomScheduler) Clone() Scheduler {
	return &randomScheduler{
		baseScheduler: *s.baseScheduler.Clone().(*baseScheduler),
		rng:           rand.New(rand.NewSource(s.cfg.Seed)),
	}
}

func (s *randomScheduler) AssignGates(ctx context.Context, router *Router) (*device.Device, error) {
	for !s.topo.Done() {
		if err := ctx.Err(); err != nil {
			return router.Device(), fmt.Errorf("%w: %v", ErrInterrupted, err)
		}
		waitlist := s.topo.AvailableGates()
		id := waitlist[s.rng.Intn(len(waitlist))]
		if _, err := s.routeOneGate(router, id, false); err != nil {
			return router.Device(), err
		}
	}
	s.sort()
	return router.Device(), nil
}
