package duostra

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/kegliz/zxsyn/device"
	"github.com/kegliz/zxsyn/qcir"
)

// treeNodeConf carries the search knobs into the tree.
type treeNodeConf struct {
	neverCache    bool
	executeSingle bool
	candidates    int
}

// treeNode is one state of the look-ahead tree: the gates routed to get
// here, a router/scheduler snapshot, and the accumulated cost.
type treeNode struct {
	conf     treeNodeConf
	gateIDs  []int
	children []*treeNode
	maxCost  int
	router   *Router
	sched    Scheduler
}

// newTreeNode routes its head gates on the snapshot immediately.
func newTreeNode(conf treeNodeConf, gateIDs []int, router *Router, sched Scheduler, maxCost int) (*treeNode, error) {
	n := &treeNode{
		conf:    conf,
		gateIDs: gateIDs,
		maxCost: maxCost,
		router:  router,
		sched:   sched,
	}
	if err := n.routeInternalGates(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *treeNode) isLeaf() bool { return len(n.children) == 0 }

func (n *treeNode) done() bool { return n.sched.Topology().Done() }

func (n *treeNode) canGrow() bool { return !n.done() }

// base gives access to routeOneGate on the snapshot scheduler.
func (n *treeNode) base() *baseScheduler {
	switch s := n.sched.(type) {
	case *baseScheduler:
		return s
	case *naiveScheduler:
		return &s.baseScheduler
	case *greedyScheduler:
		return &s.baseScheduler
	case *searchScheduler:
		return &s.baseScheduler
	}
	panic("duostra: unknown scheduler in search tree")
}

// routeInternalGates executes the head gates, then (with executeSingle)
// keeps going while exactly one continuation is forced.
func (n *treeNode) routeInternalGates() error {
	for _, id := range n.gateIDs {
		cost, err := n.base().routeOneGate(n.router, id, true)
		if err != nil {
			return err
		}
		if cost > n.maxCost {
			n.maxCost = cost
		}
	}
	if len(n.gateIDs) == 0 || !n.conf.executeSingle {
		return nil
	}
	for {
		id := n.immediateNext()
		if id < 0 {
			return nil
		}
		cost, err := n.base().routeOneGate(n.router, id, true)
		if err != nil {
			return err
		}
		if cost > n.maxCost {
			n.maxCost = cost
		}
		n.gateIDs = append(n.gateIDs, id)
	}
}

// immediateNext picks the forced continuation: an executable gate, or
// the only ready gate.
func (n *treeNode) immediateNext() int {
	topo := n.sched.Topology()
	if id := executableGate(topo, n.router); id >= 0 {
		return id
	}
	if avail := topo.AvailableGates(); len(avail) == 1 {
		return avail[0]
	}
	return -1
}

// grow adds one child per ready gate.
func (n *treeNode) grow() error {
	avail := n.sched.Topology().AvailableGates()
	n.children = make([]*treeNode, 0, len(avail))
	for _, id := range avail {
		child, err := newTreeNode(n.conf, []int{id}, n.router.Clone(), n.sched.Clone(), n.maxCost)
		if err != nil {
			return err
		}
		n.children = append(n.children, child)
	}
	return nil
}

// bestChild consumes the subtree and returns the cheapest child at the
// given look-ahead depth; ties resolve to the lower head gate id.
func (n *treeNode) bestChild(ctx context.Context, depth int) (*treeNode, error) {
	if n.isLeaf() {
		if err := n.grow(); err != nil {
			return nil, err
		}
	}
	bestIdx := -1
	bestCost := math.MaxInt
	for i, child := range n.children {
		cost, err := child.bestCost(ctx, depth)
		if err != nil {
			return nil, err
		}
		if cost < bestCost {
			bestIdx = i
			bestCost = cost
		}
	}
	if bestIdx < 0 {
		return nil, fmt.Errorf("duostra: search node has no children")
	}
	return n.children[bestIdx], nil
}

// bestCost recursively evaluates the subtree to the given depth.
func (n *treeNode) bestCost(ctx context.Context, depth int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInterrupted, err)
	}
	if n.isLeaf() {
		if depth <= 0 || !n.canGrow() {
			return n.maxCost, nil
		}
		if depth > 1 {
			if err := n.grow(); err != nil {
				return 0, err
			}
		}
	}
	if depth == 1 {
		return n.bestCostLeaf()
	}

	children := n.children
	if n.conf.candidates > 0 && n.conf.candidates < len(children) {
		sorted := append([]*treeNode(nil), children...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].maxCost < sorted[j].maxCost })
		children = sorted[:n.conf.candidates]
	}

	best := math.MaxInt
	for _, child := range children {
		cost, err := child.bestCost(ctx, depth-1)
		if err != nil {
			return 0, err
		}
		if cost < best {
			best = cost
		}
	}
	if n.conf.neverCache {
		n.children = nil
	}
	return best, nil
}

// bestCostLeaf probes one gate ahead. Sub-trees are evaluated in
// parallel on deep copies; the reduction is min with ties resolved to
// the lowest gate id, so the result is deterministic.
func (n *treeNode) bestCostLeaf() (int, error) {
	avail := n.sched.Topology().AvailableGates()
	if len(avail) == 0 {
		return n.maxCost, nil
	}
	costs := make([]int, len(avail))
	errs := make([]error, len(avail))
	var wg sync.WaitGroup
	for i, id := range avail {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			child, err := newTreeNode(n.conf, []int{id}, n.router.Clone(), n.sched.Clone(), n.maxCost)
			if err != nil {
				errs[i] = err
				return
			}
			costs[i] = child.maxCost
		}(i, id)
	}
	wg.Wait()
	best := math.MaxInt
	for i := range avail { // ascending gate id: deterministic tie-break
		if errs[i] != nil {
			return 0, errs[i]
		}
		if costs[i] < best {
			best = costs[i]
		}
	}
	return best, nil
}

// searchScheduler drives the look-ahead tree: the best child at the
// configured depth becomes the new root until the topology is empty.
type searchScheduler struct {
	baseScheduler
	lookAhead     int
	neverCache    bool
	executeSingle bool
}

func newSearchScheduler(cfg Config, topo *qcir.Topology) *searchScheduler {
	s := &searchScheduler{
		baseScheduler: baseScheduler{cfg: cfg, topo: topo},
		lookAhead:     cfg.Depth,
		neverCache:    cfg.NeverCache,
		executeSingle: cfg.ExecuteSingle,
	}
	if s.lookAhead <= 0 {
		s.lookAhead = 1
	}
	// with a single level of look-ahead there is nothing to cache
	if !s.neverCache && s.lookAhead == 1 {
		s.neverCache = true
	}
	return s
}

func (s *searchScheduler) Clone() Scheduler {
	return &searchScheduler{
		baseScheduler: *s.baseScheduler.Clone().(*baseScheduler),
		lookAhead:     s.lookAhead,
		neverCache:    s.neverCache,
		executeSingle: s.executeSingle,
	}
}

func (s *searchScheduler) AssignGates(ctx context.Context, router *Router) (*device.Device, error) {
	conf := treeNodeConf{
		neverCache:    s.neverCache,
		executeSingle: s.executeSingle,
		candidates:    s.cfg.NumCandidates,
	}
	root, err := newTreeNode(conf, nil, router.Clone(), s.Clone(), 0)
	if err != nil {
		return router.Device(), err
	}
	for !root.done() {
		if err := ctx.Err(); err != nil {
			return router.Device(), fmt.Errorf("%w: %v", ErrInterrupted, err)
		}
		next, err := root.bestChild(ctx, s.lookAhead)
		if err != nil {
			return router.Device(), err
		}
		root = next
		for _, id := range root.gateIDs {
			if _, err := s.routeOneGate(router, id, false); err != nil {
				return router.Device(), err
			}
		}
	}
	s.sort()
	return router.Device(), nil
}
