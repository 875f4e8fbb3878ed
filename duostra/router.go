package duostra

import (
	"container/heap"
	"fmt"

	"github.com/kegliz/zxsyn/device"
	"github.com/kegliz/zxsyn/qcir"
	"github.com/kegliz/zxsyn/zx"
)

// Router executes one logical gate on the device, inserting SWAPs along
// a routed path when the endpoints are not adjacent.
type Router struct {
	dev     *device.Device
	duostra bool   // bidirectional search vs precomputed shortest path
	tie     MinMax // tied SWAP candidates prefer lower/higher logical id
	avail   MinMax // edge cost from min or max of occupied times
}

// NewRouter wraps a device. The device is owned by the router from here
// on; clone it first if the caller needs the pristine state.
func NewRouter(dev *device.Device, cfg Config) *Router {
	return &Router{
		dev:     dev,
		duostra: cfg.Router == RouterDuostra,
		tie:     cfg.TieBreaker,
		avail:   cfg.AvailableTime,
	}
}

// Device exposes the routed device.
func (r *Router) Device() *device.Device { return r.dev }

// Clone deep-copies the router and its device.
func (r *Router) Clone() *Router {
	nr := *r
	nr.dev = r.dev.Clone()
	return &nr
}

// physicalQubits resolves a gate's logical operands.
func (r *Router) physicalQubits(g qcir.Gate) (int, int) {
	p0 := r.dev.PhysicalByLogical(g.Qubits[0])
	p1 := -1
	if len(g.Qubits) > 1 {
		p1 = r.dev.PhysicalByLogical(g.Qubits[1])
	}
	return p0, p1
}

// IsExecutable reports whether the gate's qubits are already adjacent.
func (r *Router) IsExecutable(g qcir.Gate) bool {
	if !g.IsTwoQubit() {
		return true
	}
	p0, p1 := r.physicalQubits(g)
	if p0 < 0 || p1 < 0 {
		return false
	}
	return r.dev.Qubit(p0).IsAdjacent(p1)
}

// GateCost estimates when the gate could start, weighing in the routing
// distance with the apsp coefficient.
func (r *Router) GateCost(g qcir.Gate, avail MinMax, apspCoeff int) int {
	p0, p1 := r.physicalQubits(g)
	if p0 < 0 {
		return 0
	}
	if p1 < 0 {
		return r.dev.Qubit(p0).OccupiedTime()
	}
	cost := avail.Pick(r.dev.Qubit(p0).OccupiedTime(), r.dev.Qubit(p1).OccupiedTime())
	return cost + apspCoeff*r.dev.SwapDelay*(r.dev.Distance(p0, p1)-1)
}

// AssignGate routes and applies one logical gate, returning the emitted
// operations in execution order.
func (r *Router) AssignGate(g qcir.Gate) ([]device.Operation, error) {
	if !g.IsTwoQubit() {
		return []device.Operation{r.executeSingle(g)}, nil
	}
	if g.Type == qcir.SwapGate {
		// a logical SWAP is three CXs; routing SWAPs would collide with
		// the binding bookkeeping
		var ops []device.Operation
		a, b := g.Qubits[0], g.Qubits[1]
		for _, cx := range []qcir.Gate{qcir.NewCX(a, b), qcir.NewCX(b, a), qcir.NewCX(a, b)} {
			sub, err := r.AssignGate(cx)
			if err != nil {
				return nil, err
			}
			ops = append(ops, sub...)
		}
		return ops, nil
	}

	p0, p1 := r.physicalQubits(g)
	if p0 < 0 || p1 < 0 {
		return nil, fmt.Errorf("duostra: gate %s has unplaced qubits", g)
	}
	var (
		ops []device.Operation
		err error
	)
	if r.duostra {
		ops, err = r.duostraRouting(g.Type, g.Phase, p0, p1)
	} else {
		ops, err = r.apspRouting(g.Type, g.Phase, p0, p1)
	}
	if err != nil {
		return nil, err
	}
	for _, op := range ops {
		r.dev.ApplyGate(op)
	}
	return ops, nil
}

// executeSingle emits and applies a single-qubit operation.
func (r *Router) executeSingle(g qcir.Gate) device.Operation {
	p := r.dev.PhysicalByLogical(g.Qubits[0])
	q := r.dev.Qubit(p)
	op := device.NewSingleOp(g.Type, g.Phase, p, q.OccupiedTime(), q.OccupiedTime()+r.dev.SingleDelay)
	r.dev.ApplyGate(op)
	return op
}

// apspRouting walks the precomputed shortest path, swapping from the
// cheaper end until the qubits meet.
func (r *Router) apspRouting(t qcir.GateType, ph zx.Phase, p0, p1 int) ([]device.Operation, error) {
	var ops []device.Operation
	if r.dev.Distance(p0, p1) >= r.dev.NumQubits() {
		return nil, fmt.Errorf("%w: physical %d and %d", ErrUnroutable, p0, p1)
	}
	for !r.dev.Qubit(p0).IsAdjacent(p1) {
		next0, _ := r.dev.NextSwap(p0, p1)
		next1, _ := r.dev.NextSwap(p1, p0)
		cost0 := r.avail.Pick(r.availableAt(ops, p0), r.availableAt(ops, next0))
		cost1 := r.avail.Pick(r.availableAt(ops, p1), r.availableAt(ops, next1))
		swapFirst := cost0 < cost1
		if cost0 == cost1 {
			l0 := r.dev.Qubit(p0).Logical()
			l1 := r.dev.Qubit(p1).Logical()
			swapFirst = r.tie.Pick(l0, l1) == l0
		}
		if swapFirst {
			ops = append(ops, r.swapOpTracked(&ops, p0, next0))
			p0 = next0
		} else {
			ops = append(ops, r.swapOpTracked(&ops, p1, next1))
			p1 = next1
		}
	}
	ops = append(ops, r.finalGateOp(ops, t, ph, p0, p1))
	return ops, nil
}

// gateOp builds the final two-qubit gate on adjacent physical qubits.
func (r *Router) gateOp(t qcir.GateType, ph zx.Phase, a, b int) device.Operation {
	qa, qb := r.dev.Qubit(a), r.dev.Qubit(b)
	begin := qa.OccupiedTime()
	if qb.OccupiedTime() > begin {
		begin = qb.OccupiedTime()
	}
	return device.NewDoubleOp(t, ph, a, b, begin, begin+r.dev.DoubleDelay)
}

// starNode is one frontier entry of the bidirectional search.
type starNode struct {
	cost    int
	id      int
	logical int
	source  bool // false: grown from p0, true: from p1
}

type starHeap struct {
	nodes []starNode
	tie   MinMax
}

func (h *starHeap) Len() int { return len(h.nodes) }
func (h *starHeap) Less(i, j int) bool {
	a, b := h.nodes[i], h.nodes[j]
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	// tied SWAP candidates resolve on logical id per configuration
	if a.logical != b.logical {
		if h.tie == MinOption {
			return a.logical < b.logical
		}
		return a.logical > b.logical
	}
	return a.id < b.id
}
func (h *starHeap) Swap(i, j int)      { h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i] }
func (h *starHeap) Push(x interface{}) { h.nodes = append(h.nodes, x.(starNode)) }
func (h *starHeap) Pop() interface{} {
	old := h.nodes
	n := len(old)
	x := old[n-1]
	h.nodes = old[:n-1]
	return x
}

// duostraRouting runs the bidirectional search of the Duostra mapper:
// both endpoints expand frontiers by occupied-time cost until they
// touch, then SWAPs trace both half-paths back to the meeting edge.
func (r *Router) duostraRouting(t qcir.GateType, ph zx.Phase, p0, p1 int) ([]device.Operation, error) {
	if r.dev.Qubit(p0).IsAdjacent(p1) {
		return []device.Operation{r.gateOp(t, ph, p0, p1)}, nil
	}
	r.dev.ResetRouting()
	q0, q1 := r.dev.Qubit(p0), r.dev.Qubit(p1)
	q0.Mark(false, -1)
	q1.Mark(true, -1)

	pq := &starHeap{tie: r.tie}
	heap.Init(pq)
	heap.Push(pq, starNode{cost: q0.OccupiedTime(), id: p0, logical: q0.Logical(), source: false})
	heap.Push(pq, starNode{cost: q1.OccupiedTime(), id: p1, logical: q1.Logical(), source: true})

	meet0, meet1 := -1, -1
	for pq.Len() > 0 && meet0 < 0 {
		node := heap.Pop(pq).(starNode)
		q := r.dev.Qubit(node.id)
		for _, adj := range q.Adjacencies() {
			aq := r.dev.Qubit(adj)
			if !aq.Marked() {
				aq.Mark(node.source, node.id)
				// frontier expansion cost: max(occupied, incumbent)
				cost := aq.OccupiedTime()
				if node.cost > cost {
					cost = node.cost
				}
				heap.Push(pq, starNode{cost: cost, id: adj, logical: aq.Logical(), source: node.source})
				continue
			}
			if aq.Source() != node.source {
				if node.source {
					meet0, meet1 = adj, node.id
				} else {
					meet0, meet1 = node.id, adj
				}
				break
			}
		}
	}
	if meet0 < 0 {
		return nil, fmt.Errorf("%w: physical %d and %d", ErrUnroutable, p0, p1)
	}

	// swap each endpoint down its half-path to the meeting edge
	var ops []device.Operation
	cur := p0
	for _, hop := range r.traceback(meet0) {
		ops = append(ops, r.swapOpTracked(&ops, cur, hop))
		cur = hop
	}
	end0 := cur
	cur = p1
	for _, hop := range r.traceback(meet1) {
		ops = append(ops, r.swapOpTracked(&ops, cur, hop))
		cur = hop
	}
	ops = append(ops, r.finalGateOp(ops, t, ph, end0, cur))
	return ops, nil
}

// traceback returns the hop sequence from the search root towards the
// meeting qubit (roots excluded, meeting qubit included; empty when the
// root is the meeting qubit).
func (r *Router) traceback(meet int) []int {
	var rev []int
	for cur := meet; cur >= 0; cur = r.dev.Qubit(cur).Pred() {
		rev = append(rev, cur)
	}
	// drop the root itself
	rev = rev[:len(rev)-1]
	out := make([]int, len(rev))
	for i, q := range rev {
		out[len(rev)-1-i] = q
	}
	return out
}

// swapOpTracked builds a SWAP whose begin time accounts for ops already
// planned in this routing batch but not yet applied to the device.
func (r *Router) swapOpTracked(planned *[]device.Operation, a, b int) device.Operation {
	begin := r.availableAt(*planned, a)
	if t := r.availableAt(*planned, b); t > begin {
		begin = t
	}
	return device.NewDoubleOp(qcir.SwapGate, zx.PhaseZero, a, b, begin, begin+r.dev.SwapDelay)
}

func (r *Router) finalGateOp(planned []device.Operation, t qcir.GateType, ph zx.Phase, a, b int) device.Operation {
	begin := r.availableAt(planned, a)
	if tb := r.availableAt(planned, b); tb > begin {
		begin = tb
	}
	return device.NewDoubleOp(t, ph, a, b, begin, begin+r.dev.DoubleDelay)
}

// availableAt is the earliest free instant of physical qubit p, given
// the planned-but-unapplied operations.
func (r *Router) availableAt(planned []device.Operation, p int) int {
	at := r.dev.Qubit(p).OccupiedTime()
	for _, op := range planned {
		if (op.Q0 == p || op.Q1 == p) && op.End > at {
			at = op.End
		}
	}
	return at
}
