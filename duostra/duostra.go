package duostra

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/kegliz/zxsyn/device"
	"github.com/kegliz/zxsyn/internal/logger"
	"github.com/kegliz/zxsyn/qcir"
)

// Duostra is the mapper facade: place, schedule, route, verify.
type Duostra struct {
	cfg Config
	log *logger.Logger
}

// Result carries the mapping outcome and its statistics.
type Result struct {
	Operations      []device.Operation
	PhysicalCircuit *qcir.QCir
	Order           []qcir.Gate // logical gates in routing order
	Device          *device.Device
	Assignment      []int // initial logical -> physical binding

	FinalCost int // mapping depth
	TotalTime int
	NumSwaps  int
}

// NewDuostra builds a mapper with an explicit configuration.
func NewDuostra(cfg Config, l *logger.Logger) *Duostra {
	if l == nil {
		l = logger.NewLogger(logger.LoggerOptions{})
	}
	return &Duostra{cfg: cfg, log: l.SpawnForService("duostra")}
}

// decomposeSwaps lowers logical SWAP gates into three CXs so that every
// SWAP in the routed stream is a routing SWAP.
func decomposeSwaps(c *qcir.QCir) (*qcir.QCir, error) {
	out := qcir.New(c.NumQubits())
	for _, g := range c.Gates() {
		if g.Type != qcir.SwapGate {
			if err := out.Append(g); err != nil {
				return nil, err
			}
			continue
		}
		a, b := g.Qubits[0], g.Qubits[1]
		for _, cx := range []qcir.Gate{qcir.NewCX(a, b), qcir.NewCX(b, a), qcir.NewCX(a, b)} {
			if err := out.Append(cx); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Map routes circuit c onto dev. The device is cloned; the caller's
// copy keeps its pristine state.
func (d *Duostra) Map(ctx context.Context, c *qcir.QCir, dev *device.Device) (*Result, error) {
	if c.NumQubits() > dev.NumQubits() {
		return nil, fmt.Errorf("%w: %d > %d", ErrArityMismatch, c.NumQubits(), dev.NumQubits())
	}
	logical, err := decomposeSwaps(c)
	if err != nil {
		return nil, err
	}

	d.log.Info().Int("gates", logical.NumGates()).
		Int("qubits", logical.NumQubits()).Msg("creating placement")
	work := dev.Clone()
	rng := rand.New(rand.NewSource(d.cfg.Seed))
	placer, err := NewPlacer(d.cfg.Placer, rng)
	if err != nil {
		return nil, err
	}
	assign, err := PlaceAndAssign(placer, work)
	if err != nil {
		return nil, err
	}
	checkDev := work.Clone()

	d.log.Info().Str("scheduler", d.cfg.Scheduler.String()).
		Str("router", d.cfg.Router.String()).Msg("routing")
	topo := qcir.NewTopology(logical)
	scheduler, err := NewScheduler(d.cfg, topo)
	if err != nil {
		return nil, err
	}
	router := NewRouter(work, d.cfg)
	finalDev, err := scheduler.AssignGates(ctx, router)
	if err != nil {
		return nil, err
	}

	ops := scheduler.Operations()
	res := &Result{
		Operations: ops,
		Device:     finalDev,
		Assignment: assign,
		FinalCost:  FinalCost(ops),
		TotalTime:  TotalTime(ops),
		NumSwaps:   NumSwaps(ops),
	}
	for _, id := range scheduler.Order() {
		res.Order = append(res.Order, logical.Gate(id))
	}
	if res.PhysicalCircuit, err = buildPhysicalCircuit(dev, ops); err != nil {
		return nil, err
	}

	if d.cfg.Verify {
		if err := NewChecker(logical, checkDev).Check(ops); err != nil {
			return nil, err
		}
	}
	d.log.Info().Int("depth", res.FinalCost).Int("total", res.TotalTime).
		Int("swaps", res.NumSwaps).Msg("mapping done")
	return res, nil
}

// buildPhysicalCircuit renders the operation stream as a circuit over
// physical qubits; SWAPs decompose into three CXs when the device's gate
// set is non-empty and lacks SWAP.
func buildPhysicalCircuit(dev *device.Device, ops []device.Operation) (*qcir.QCir, error) {
	out := qcir.New(dev.NumQubits())
	nativeSwap := dev.HasGate(qcir.SwapGate) || len(dev.GateSet()) == 0
	for _, op := range ops {
		switch {
		case op.Q1 < 0:
			if err := out.Append(qcir.Gate{Type: op.Type, Qubits: []int{op.Q0}, Phase: op.Phase}); err != nil {
				return nil, err
			}
		case op.IsSwap() && !nativeSwap:
			for _, g := range []qcir.Gate{
				qcir.NewCX(op.Q0, op.Q1), qcir.NewCX(op.Q1, op.Q0), qcir.NewCX(op.Q0, op.Q1),
			} {
				if err := out.Append(g); err != nil {
					return nil, err
				}
			}
		default:
			if err := out.Append(qcir.Gate{Type: op.Type, Qubits: []int{op.Q0, op.Q1}, Phase: op.Phase}); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
