package duostra

import (
	"context"
	"fmt"

	"github.com/kegliz/zxsyn/device"
	"github.com/kegliz/zxsyn/qcir"
)

// candidateWindow truncates the ready set to the configured width.
func candidateWindow(topo *qcir.Topology, width int) []int {
	gates := topo.AvailableGates()
	if width > 0 && len(gates) > width {
		gates = gates[:width]
	}
	return gates
}

// greedyScheduler picks an executable gate when one exists, otherwise
// the waitlist entry with the best heuristic cost.
type greedyScheduler struct {
	baseScheduler
}

func newGreedyScheduler(cfg Config, topo *qcir.Topology) *greedyScheduler {
	return &greedyScheduler{baseScheduler{cfg: cfg, topo: topo}}
}

func (s *greedyScheduler) Clone() Scheduler {
	return &greedyScheduler{*s.baseScheduler.Clone().(*baseScheduler)}
}

// greedyFallback scores the waitlist with the router's cost estimate
// and picks by the configured min/max selection; ties resolve to the
// earlier waitlist entry (the lower gate id).
func (s *greedyScheduler) greedyFallback(router *Router, waitlist []int) int {
	bestIdx := 0
	bestCost := router.GateCost(s.topo.Gate(waitlist[0]), s.cfg.AvailableTime, s.cfg.APSPCoeff)
	for i := 1; i < len(waitlist); i++ {
		cost := router.GateCost(s.topo.Gate(waitlist[i]), s.cfg.AvailableTime, s.cfg.APSPCoeff)
		if s.cfg.CostSelection.Pick(cost, bestCost) == cost && cost != bestCost {
			bestIdx = i
			bestCost = cost
		}
	}
	return waitlist[bestIdx]
}

func (s *greedyScheduler) AssignGates(ctx context.Context, router *Router) (*device.Device, error) {
	for !s.topo.Done() {
		if err := ctx.Err(); err != nil {
			return router.Device(), fmt.Errorf("%w: %v", ErrInterrupted, err)
		}
		waitlist := candidateWindow(s.topo, s.cfg.NumCandidates)
		id := executableGate(s.topo, router)
		if id < 0 {
			id = s.greedyFallback(router, waitlist)
		}
		if _, err := s.routeOneGate(router, id, false); err != nil {
			return router.Device(), err
		}
	}
	s.sort()
	return router.Device(), nil
}
