package device

import (
	"errors"
	"fmt"
	"math"

	"github.com/kegliz/zxsyn/qcir"
)

// Default gate delays, overridable per device.
const (
	DefaultSingleDelay = 1
	DefaultDoubleDelay = 2
	DefaultSwapDelay   = 6
)

// Unbound marks a physical qubit with no logical binding.
const Unbound = -1

var (
	// ErrAlreadyBound indicates Place hit a qubit that is already bound.
	ErrAlreadyBound = errors.New("device: physical qubit already bound")

	// ErrBadAssignment indicates a placement that is not injective or
	// references an unknown physical qubit.
	ErrBadAssignment = errors.New("device: bad placement assignment")
)

// Info carries per-qubit or per-edge delay/error annotations.
type Info struct {
	Time  float64
	Error float64
}

// PhysicalQubit is one vertex of the coupling graph. The mark/take
// scratch fields belong to the router's bidirectional search.
type PhysicalQubit struct {
	id          int
	adjacencies []int
	occupied    int
	logical     int

	marked   bool
	taken    bool
	source   bool
	pred     int
	cost     int
	swapTime int
}

// ID returns the physical index.
func (q *PhysicalQubit) ID() int { return q.id }

// Adjacencies returns the neighbouring physical indices.
func (q *PhysicalQubit) Adjacencies() []int { return q.adjacencies }

// OccupiedTime returns the earliest instant the qubit is free.
func (q *PhysicalQubit) OccupiedTime() int { return q.occupied }

// SetOccupiedTime advances the qubit clock.
func (q *PhysicalQubit) SetOccupiedTime(t int) { q.occupied = t }

// Logical returns the bound logical qubit, or Unbound.
func (q *PhysicalQubit) Logical() int { return q.logical }

// SetLogical rebinds the qubit.
func (q *PhysicalQubit) SetLogical(l int) { q.logical = l }

// IsAdjacent reports a coupling edge to p.
func (q *PhysicalQubit) IsAdjacent(p int) bool {
	for _, a := range q.adjacencies {
		if a == p {
			return true
		}
	}
	return false
}

// Mark stamps the qubit during routing: which source it was reached
// from and through which predecessor.
func (q *PhysicalQubit) Mark(source bool, pred int) {
	q.marked = true
	q.source = source
	q.pred = pred
}

// Marked reports whether routing touched the qubit.
func (q *PhysicalQubit) Marked() bool { return q.marked }

// Source reports which endpoint's frontier reached the qubit.
func (q *PhysicalQubit) Source() bool { return q.source }

// Pred returns the routing predecessor.
func (q *PhysicalQubit) Pred() int { return q.pred }

// TakeRoute commits the qubit to the routed path.
func (q *PhysicalQubit) TakeRoute(cost, swapTime int) {
	q.cost = cost
	q.swapTime = swapTime
	q.taken = true
}

// Taken reports route membership.
func (q *PhysicalQubit) Taken() bool { return q.taken }

// Cost returns the routing cost stamp.
func (q *PhysicalQubit) Cost() int { return q.cost }

// SwapTime returns the instant the path swap begins here.
func (q *PhysicalQubit) SwapTime() int { return q.swapTime }

// ResetRouting clears the routing scratch state.
func (q *PhysicalQubit) ResetRouting() {
	q.marked = false
	q.taken = false
	q.cost = q.occupied
}

// Device is the coupling graph plus its shortest-path tables.
type Device struct {
	name    string
	qubits  []*PhysicalQubit
	gateSet []qcir.GateType

	qubitInfo map[int]Info
	adjInfo   map[[2]int]Info

	distance    [][]int
	predecessor [][]int

	SingleDelay int
	DoubleDelay int
	SwapDelay   int
}

// New creates a device with n disconnected qubits and default delays.
func New(name string, n int) *Device {
	d := &Device{
		name:        name,
		qubits:      make([]*PhysicalQubit, n),
		qubitInfo:   make(map[int]Info),
		adjInfo:     make(map[[2]int]Info),
		SingleDelay: DefaultSingleDelay,
		DoubleDelay: DefaultDoubleDelay,
		SwapDelay:   DefaultSwapDelay,
	}
	for i := range d.qubits {
		d.qubits[i] = &PhysicalQubit{id: i, logical: Unbound}
	}
	return d
}

// NewLine creates an n-qubit path device, the common test fixture.
func NewLine(n int) *Device {
	d := New(fmt.Sprintf("line-%d", n), n)
	for i := 0; i+1 < n; i++ {
		d.AddAdjacency(i, i+1)
	}
	d.CalculatePath()
	return d
}

// Name returns the device name.
func (d *Device) Name() string { return d.name }

// NumQubits returns the physical qubit count.
func (d *Device) NumQubits() int { return len(d.qubits) }

// Qubit returns physical qubit i.
func (d *Device) Qubit(i int) *PhysicalQubit { return d.qubits[i] }

// GateSet returns the native gates.
func (d *Device) GateSet() []qcir.GateType { return d.gateSet }

// AddGateType extends the native gate set.
func (d *Device) AddGateType(t qcir.GateType) { d.gateSet = append(d.gateSet, t) }

// HasGate reports whether t is native.
func (d *Device) HasGate(t qcir.GateType) bool {
	for _, g := range d.gateSet {
		if g == t {
			return true
		}
	}
	return false
}

// AddAdjacency couples qubits a and b with default edge info.
func (d *Device) AddAdjacency(a, b int) {
	if a > b {
		a, b = b, a
	}
	if !d.qubits[a].IsAdjacent(b) {
		d.qubits[a].adjacencies = append(d.qubits[a].adjacencies, b)
		d.qubits[b].adjacencies = append(d.qubits[b].adjacencies, a)
	}
	if _, ok := d.adjInfo[[2]int{a, b}]; !ok {
		d.adjInfo[[2]int{a, b}] = Info{}
	}
}

// SetAdjacencyInfo annotates the (a, b) coupling.
func (d *Device) SetAdjacencyInfo(a, b int, info Info) {
	if a > b {
		a, b = b, a
	}
	d.adjInfo[[2]int{a, b}] = info
}

// AdjacencyInfo returns the (a, b) coupling annotation.
func (d *Device) AdjacencyInfo(a, b int) Info {
	if a > b {
		a, b = b, a
	}
	return d.adjInfo[[2]int{a, b}]
}

// SetQubitInfo annotates qubit a.
func (d *Device) SetQubitInfo(a int, info Info) { d.qubitInfo[a] = info }

// QubitInfo returns qubit a's annotation.
func (d *Device) QubitInfo(a int) Info { return d.qubitInfo[a] }

// NumAdjacencies returns the coupling edge count.
func (d *Device) NumAdjacencies() int { return len(d.adjInfo) }

// CalculatePath recomputes the all-pairs shortest-path tables with
// Floyd-Warshall.
func (d *Device) CalculatePath() {
	n := len(d.qubits)
	const inf = math.MaxInt32
	d.distance = make([][]int, n)
	d.predecessor = make([][]int, n)
	for i := 0; i < n; i++ {
		d.distance[i] = make([]int, n)
		d.predecessor[i] = make([]int, n)
		for j := 0; j < n; j++ {
			d.distance[i][j] = inf
			d.predecessor[i][j] = -1
		}
		d.distance[i][i] = 0
	}
	for i := 0; i < n; i++ {
		for _, a := range d.qubits[i].adjacencies {
			d.distance[i][a] = 1
			d.predecessor[i][a] = i
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if d.distance[i][k] == inf {
				continue
			}
			for j := 0; j < n; j++ {
				if d.distance[k][j] == inf {
					continue
				}
				if d.distance[i][j] > d.distance[i][k]+d.distance[k][j] {
					d.distance[i][j] = d.distance[i][k] + d.distance[k][j]
					d.predecessor[i][j] = d.predecessor[k][j]
				}
			}
		}
	}
}

// Distance returns the hop count between physical qubits.
func (d *Device) Distance(i, j int) int { return d.distance[i][j] }

// Path returns the physical qubit sequence from s to t inclusive.
func (d *Device) Path(s, t int) []int {
	if s == t {
		return []int{s}
	}
	if d.predecessor[s][t] == -1 {
		return nil
	}
	// walk back from t using predecessors on the s-rooted row
	rev := []int{t}
	for cur := t; cur != s; {
		cur = d.predecessor[s][cur]
		rev = append(rev, cur)
	}
	path := make([]int, len(rev))
	for i, q := range rev {
		path[len(rev)-1-i] = q
	}
	return path
}

// NextSwap returns the neighbour of source on the shortest path towards
// target, and the earliest time a swap there could start.
func (d *Device) NextSwap(source, target int) (int, int) {
	path := d.Path(source, target)
	next := path[1]
	qs := d.qubits[source]
	qn := d.qubits[next]
	cost := qs.occupied
	if qn.occupied > cost {
		cost = qn.occupied
	}
	return next, cost
}

// PhysicalByLogical finds the physical qubit bound to logical id, or -1.
func (d *Device) PhysicalByLogical(id int) int {
	for _, q := range d.qubits {
		if q.logical == id {
			return q.id
		}
	}
	return -1
}

// Mapping returns logical binding per physical qubit.
func (d *Device) Mapping() []int {
	out := make([]int, len(d.qubits))
	for i, q := range d.qubits {
		out[i] = q.logical
	}
	return out
}

// Place binds logical qubit i to physical assignment[i]. Bindings must
// land on unbound qubits and be injective.
func (d *Device) Place(assignment []int) error {
	seen := make(map[int]bool, len(assignment))
	for _, p := range assignment {
		if p < 0 || p >= len(d.qubits) || seen[p] {
			return fmt.Errorf("%w: physical %d", ErrBadAssignment, p)
		}
		seen[p] = true
	}
	for i, p := range assignment {
		if d.qubits[p].logical != Unbound {
			return fmt.Errorf("%w: physical %d", ErrAlreadyBound, p)
		}
		d.qubits[p].logical = i
	}
	return nil
}

// ApplyGate advances the clocks of the involved qubits, and for SWAP
// also exchanges the logical bindings.
func (d *Device) ApplyGate(op Operation) {
	q0 := d.qubits[op.Q0]
	if op.Q1 < 0 {
		q0.SetOccupiedTime(op.Begin + d.SingleDelay)
		q0.ResetRouting()
		return
	}
	q1 := d.qubits[op.Q1]
	switch op.Type {
	case qcir.SwapGate:
		q0.logical, q1.logical = q1.logical, q0.logical
		q0.SetOccupiedTime(op.Begin + d.SwapDelay)
		q1.SetOccupiedTime(op.Begin + d.SwapDelay)
	default:
		q0.SetOccupiedTime(op.Begin + d.DoubleDelay)
		q1.SetOccupiedTime(op.Begin + d.DoubleDelay)
	}
}

// ApplySwapCheck performs a checker-side SWAP: bindings exchange and
// both clocks advance past a double-gate window.
func (d *Device) ApplySwapCheck(a, b int) {
	q0, q1 := d.qubits[a], d.qubits[b]
	q0.logical, q1.logical = q1.logical, q0.logical
	t := q0.occupied
	if q1.occupied > t {
		t = q1.occupied
	}
	q0.SetOccupiedTime(t + d.DoubleDelay)
	q1.SetOccupiedTime(t + d.DoubleDelay)
}

// ResetRouting clears routing scratch on every qubit.
func (d *Device) ResetRouting() {
	for _, q := range d.qubits {
		q.ResetRouting()
	}
}

// Clone deep-copies the device, including bindings and clocks.
func (d *Device) Clone() *Device {
	nd := &Device{
		name:        d.name,
		qubits:      make([]*PhysicalQubit, len(d.qubits)),
		gateSet:     append([]qcir.GateType(nil), d.gateSet...),
		qubitInfo:   make(map[int]Info, len(d.qubitInfo)),
		adjInfo:     make(map[[2]int]Info, len(d.adjInfo)),
		distance:    d.distance, // immutable after CalculatePath
		predecessor: d.predecessor,
		SingleDelay: d.SingleDelay,
		DoubleDelay: d.DoubleDelay,
		SwapDelay:   d.SwapDelay,
	}
	for i, q := range d.qubits {
		nq := *q
		nq.adjacencies = append([]int(nil), q.adjacencies...)
		nd.qubits[i] = &nq
	}
	for k, v := range d.qubitInfo {
		nd.qubitInfo[k] = v
	}
	for k, v := range d.adjInfo {
		nd.adjInfo[k] = v
	}
	return nd
}
