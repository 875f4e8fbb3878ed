package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/kegliz/zxsyn/internal/logger"
	"github.com/kegliz/zxsyn/qcir"
	"github.com/kegliz/zxsyn/zx"
)

var (
	// ErrNotGraphLike indicates the extractor precondition failed.
	ErrNotGraphLike = errors.New("extract: graph is not graph-like")

	// ErrQubitMismatch indicates unequal input and output arity.
	ErrQubitMismatch = errors.New("extract: input/output arity mismatch")

	// ErrExtractionStalled indicates no CNOT schedule reduces the
	// frontier even after the repair stage; an upstream bug.
	ErrExtractionStalled = errors.New("extract: frontier cannot be reduced")

	// ErrInterrupted indicates the cooperative cancel was observed.
	ErrInterrupted = errors.New("extract: interrupted")
)

// Extractor walks a graph-like ZX-graph right to left, peeling gates off
// the output frontier until only the input permutation remains.
//
// Gates are collected outputs-first and the circuit is reversed once at
// the end. Because the biadjacency rows live on the output side, a
// logged XOR (src, tgt) surfaces as a CNOT with control tgt, target src.
type Extractor struct {
	g   *zx.Graph
	log *logger.Logger

	blocksize int

	frontier []zx.VertexID // per wire; 0 when the wire is done
	active   []bool
	masks    []uint64 // input-wire links per wire (bit j = input j)
	inputPos map[zx.VertexID]int

	rev []qcir.Gate // gates in right-to-left order
}

// Options configures an Extractor.
type Options struct {
	Logger *logger.Logger

	// Blocksize is the elimination window width; 0 picks a default.
	Blocksize int
}

// NewExtractor prepares extraction over a private copy of g.
func NewExtractor(g *zx.Graph, options Options) *Extractor {
	l := options.Logger
	if l == nil {
		l = logger.NewLogger(logger.LoggerOptions{})
	}
	bs := options.Blocksize
	if bs <= 0 {
		bs = 2
	}
	return &Extractor{g: g.Copy(), log: l.SpawnForService("extract"), blocksize: bs}
}

// Run extracts the circuit. The graph copy is consumed.
func (e *Extractor) Run(ctx context.Context) (*qcir.QCir, error) {
	if err := e.initFrontier(); err != nil {
		return nil, err
	}
	maxIters := 4*e.g.NumVertices() + 8
	for iter := 0; ; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInterrupted, err)
		}
		if iter > maxIters {
			return nil, fmt.Errorf("%w: no convergence after %d iterations",
				ErrExtractionStalled, iter)
		}
		e.extractPhases()
		e.extractCZs()

		neighbors := e.internalNeighbors()
		if len(neighbors) == 0 {
			break
		}
		if err := e.eliminate(neighbors); err != nil {
			return nil, err
		}
		advanced, err := e.advance()
		if err != nil {
			return nil, err
		}
		if advanced == 0 {
			// permutation repair: swap two live rows and retry once
			if err := e.repair(); err != nil {
				return nil, err
			}
			if err := e.eliminate(e.internalNeighbors()); err != nil {
				return nil, err
			}
			advanced, err = e.advance()
			if err != nil {
				return nil, err
			}
			if advanced == 0 {
				return nil, fmt.Errorf("%w: frontier stuck at %d internal neighbours",
					ErrExtractionStalled, len(e.internalNeighbors()))
			}
		}
	}
	if err := e.finish(); err != nil {
		return nil, err
	}

	c := qcir.New(len(e.frontier))
	for i := len(e.rev) - 1; i >= 0; i-- {
		if err := c.Append(e.rev[i]); err != nil {
			return nil, err
		}
	}
	e.log.Debug().Int("gates", c.NumGates()).Msg("extraction complete")
	return c, nil
}

// initFrontier checks preconditions and absorbs the boundary edges: the
// output edges become the frontier array, input edges become mask bits.
func (e *Extractor) initFrontier() error {
	// input-to-output Simple wires are accepted beside a graph-like rest
	rest := e.g.Copy()
	for _, id := range rest.InputIDs() {
		v, _ := rest.Vertex(id)
		if v.Degree() != 1 || v.Neighbors()[0].Kind != zx.Simple {
			continue
		}
		if nb, _ := rest.Vertex(v.Neighbors()[0].ID); nb.Type() == zx.Boundary {
			_ = rest.RemoveVertex(nb.ID())
			_ = rest.RemoveVertex(id)
		}
	}
	if !rest.IsGraphLike() {
		return ErrNotGraphLike
	}
	ins, outs := e.g.InputIDs(), e.g.OutputIDs()
	if len(ins) != len(outs) {
		return fmt.Errorf("%w: %d inputs, %d outputs", ErrQubitMismatch, len(ins), len(outs))
	}
	if len(ins) > 64 {
		return fmt.Errorf("%w: more than 64 qubits", ErrQubitMismatch)
	}
	e.inputPos = make(map[zx.VertexID]int, len(ins))
	for i, id := range ins {
		e.inputPos[id] = i
	}
	n := len(outs)
	e.frontier = make([]zx.VertexID, n)
	e.active = make([]bool, n)
	e.masks = make([]uint64, n)
	for q, outID := range outs {
		out, _ := e.g.Vertex(outID)
		if out.Degree() != 1 {
			return ErrNotGraphLike
		}
		nb := out.Neighbors()[0]
		if err := e.g.RemoveEdge(outID, nb.ID, nb.Kind); err != nil {
			return err
		}
		if pos, isInput := e.inputPos[nb.ID]; isInput {
			// bare wire straight to an input
			e.masks[q] = 1 << uint(pos)
			continue
		}
		e.frontier[q] = nb.ID
		e.active[q] = true
		e.stripInputEdges(q)
	}
	return nil
}

// stripInputEdges moves wire q's frontier-to-input edges into its mask.
func (e *Extractor) stripInputEdges(q int) {
	v, _ := e.g.Vertex(e.frontier[q])
	for _, n := range v.Neighbors() {
		pos, isInput := e.inputPos[n.ID]
		if !isInput {
			continue
		}
		_ = e.g.RemoveEdge(v.ID(), n.ID, n.Kind)
		e.masks[q] ^= 1 << uint(pos)
	}
}

// extractPhases peels frontier phases off as Z rotations.
func (e *Extractor) extractPhases() {
	for q, active := range e.active {
		if !active {
			continue
		}
		v, _ := e.g.Vertex(e.frontier[q])
		if !v.Phase().IsZero() {
			e.rev = append(e.rev, qcir.NewRZ(q, v.Phase()))
			v.SetPhase(zx.PhaseZero)
		}
	}
}

// extractCZs peels Hadamard edges between frontier vertices off as CZs.
func (e *Extractor) extractCZs() {
	pos := make(map[zx.VertexID]int, len(e.frontier))
	for q, active := range e.active {
		if active {
			pos[e.frontier[q]] = q
		}
	}
	for q, active := range e.active {
		if !active {
			continue
		}
		v, _ := e.g.Vertex(e.frontier[q])
		for _, n := range v.Neighbors() {
			q2, inFrontier := pos[n.ID]
			if !inFrontier || q2 <= q {
				continue
			}
			_ = e.g.RemoveEdge(v.ID(), n.ID, zx.Hadamard)
			e.rev = append(e.rev, qcir.NewCZ(q, q2))
		}
	}
}

// internalNeighbors lists the frontier's interior neighbours in
// first-seen order over ascending wires.
func (e *Extractor) internalNeighbors() []zx.VertexID {
	inFrontier := make(map[zx.VertexID]bool, len(e.frontier))
	for q, active := range e.active {
		if active {
			inFrontier[e.frontier[q]] = true
		}
	}
	var out []zx.VertexID
	seen := make(map[zx.VertexID]bool)
	for q, active := range e.active {
		if !active {
			continue
		}
		v, _ := e.g.Vertex(e.frontier[q])
		for _, n := range v.Neighbors() {
			if inFrontier[n.ID] || seen[n.ID] {
				continue
			}
			if _, isInput := e.inputPos[n.ID]; isInput {
				continue
			}
			seen[n.ID] = true
			out = append(out, n.ID)
		}
	}
	return out
}

// eliminate builds the frontier biadjacency, reduces it, and replays the
// op log onto the graph, the masks, and the emitted CNOTs.
func (e *Extractor) eliminate(neighbors []zx.VertexID) error {
	if len(neighbors) == 0 {
		return nil
	}
	colOf := make(map[zx.VertexID]int, len(neighbors))
	for c, id := range neighbors {
		colOf[id] = c
	}
	m := NewBiMatrix(len(e.frontier), len(neighbors))
	for q, active := range e.active {
		if !active {
			continue
		}
		v, _ := e.g.Vertex(e.frontier[q])
		for _, n := range v.Neighbors() {
			if c, ok := colOf[n.ID]; ok {
				m.Set(q, c, 1)
			}
		}
	}
	if _, err := m.GaussianElimination(e.blocksize); err != nil {
		return err
	}
	for _, op := range m.OpLog() {
		if op.Swap {
			continue
		}
		if !e.active[op.Src] || !e.active[op.Tgt] {
			continue // ops on dead rows carry no graph content
		}
		// graph replay: tgt's neighbourhood XORs in src's
		src, _ := e.g.Vertex(e.frontier[op.Src])
		tgt := e.frontier[op.Tgt]
		for _, n := range src.Neighbors() {
			if _, ok := colOf[n.ID]; !ok {
				continue
			}
			if err := e.g.AddEdge(tgt, n.ID, zx.Hadamard); err != nil {
				return err
			}
		}
		e.masks[op.Tgt] ^= e.masks[op.Src]
		// rows sit on the output side: control is the modified row
		e.rev = append(e.rev, qcir.NewCX(op.Tgt, op.Src))
	}
	return nil
}

// advance moves every frontier vertex with a unique interior neighbour
// one hop inward, emitting the Hadamard of the hop.
func (e *Extractor) advance() (int, error) {
	claimed := make(map[zx.VertexID]bool)
	advanced := 0
	for q, active := range e.active {
		if !active || e.masks[q] != 0 {
			continue
		}
		v, _ := e.g.Vertex(e.frontier[q])
		if v.Degree() != 1 {
			continue
		}
		n := v.Neighbors()[0]
		if _, isInput := e.inputPos[n.ID]; isInput {
			continue
		}
		if claimed[n.ID] {
			continue
		}
		claimed[n.ID] = true
		if err := e.g.RemoveVertex(v.ID()); err != nil {
			return advanced, err
		}
		e.rev = append(e.rev, qcir.NewH(q))
		e.frontier[q] = n.ID
		e.stripInputEdges(q)
		advanced++
	}
	// wires whose frontier lost all connections terminate on their mask
	for q, active := range e.active {
		if !active {
			continue
		}
		v, _ := e.g.Vertex(e.frontier[q])
		if v.Degree() == 0 && e.masks[q] != 0 {
			if !v.Phase().IsZero() {
				e.rev = append(e.rev, qcir.NewRZ(q, v.Phase()))
			}
			if err := e.g.RemoveVertex(v.ID()); err != nil {
				return advanced, err
			}
			e.active[q] = false
			advanced++
		}
	}
	return advanced, nil
}

// repair swaps the two lowest live wires to break a stall, emitting the
// SWAP it costs.
func (e *Extractor) repair() error {
	live := make([]int, 0, 2)
	for q, active := range e.active {
		if active {
			live = append(live, q)
			if len(live) == 2 {
				break
			}
		}
	}
	if len(live) < 2 {
		return fmt.Errorf("%w: single stuck wire", ErrExtractionStalled)
	}
	i, j := live[0], live[1]
	e.frontier[i], e.frontier[j] = e.frontier[j], e.frontier[i]
	e.masks[i], e.masks[j] = e.masks[j], e.masks[i]
	e.rev = append(e.rev, qcir.NewSwap(i, j))
	e.log.Debug().Int("i", i).Int("j", j).Msg("frontier repair swap")
	return nil
}

// isPermutation reports a square 0/1 matrix with a single 1 per row and
// column.
func isPermutation(m *BiMatrix) bool {
	seen := make([]bool, m.Cols())
	for i := 0; i < m.Rows(); i++ {
		col := m.SingletonCol(i)
		if col < 0 || seen[col] {
			return false
		}
		seen[col] = true
	}
	return true
}

// finish reduces the residual input-link matrix to a permutation with
// CNOTs, then emits the permutation as SWAPs.
func (e *Extractor) finish() error {
	n := len(e.frontier)
	// any still-active frontier vertices must now be pure mask carriers
	for q, active := range e.active {
		if !active {
			continue
		}
		v, _ := e.g.Vertex(e.frontier[q])
		if v.Degree() != 0 || e.masks[q] == 0 {
			return fmt.Errorf("%w: wire %d left dangling", ErrExtractionStalled, q)
		}
		if err := e.g.RemoveVertex(v.ID()); err != nil {
			return err
		}
		e.active[q] = false
	}

	// gauss the mask matrix down to a permutation; an already-pure
	// permutation needs no CNOTs
	m := NewBiMatrix(n, n)
	for q := 0; q < n; q++ {
		for j := 0; j < n; j++ {
			if e.masks[q]&(1<<uint(j)) != 0 {
				m.Set(q, j, 1)
			}
		}
	}
	if !isPermutation(m) {
		if _, err := m.GaussianElimination(e.blocksize); err != nil {
			return err
		}
		for _, op := range m.OpLog() {
			if op.Swap {
				continue
			}
			e.rev = append(e.rev, qcir.NewCX(op.Tgt, op.Src))
		}
	}
	perm := make([]int, n)
	for q := 0; q < n; q++ {
		col := m.SingletonCol(q)
		if col < 0 {
			return fmt.Errorf("%w: input links are not invertible", ErrExtractionStalled)
		}
		perm[q] = col
	}
	for q := 0; q < n; q++ {
		if perm[q] == q {
			continue
		}
		for j := q + 1; j < n; j++ {
			if perm[j] == q {
				e.rev = append(e.rev, qcir.NewSwap(q, j))
				perm[q], perm[j] = perm[j], perm[q]
				break
			}
		}
		if perm[q] != q {
			return fmt.Errorf("%w: input permutation is not a bijection", ErrExtractionStalled)
		}
	}
	return nil
}
