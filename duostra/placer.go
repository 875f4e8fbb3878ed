package duostra

import (
	"fmt"
	"math/rand"

	"github.com/kegliz/zxsyn/device"
)

// Placer produces the initial logical-to-physical assignment:
// assignment[i] is the physical qubit of logical i.
type Placer interface {
	Place(d *device.Device) []int
}

// NewPlacer builds the configured placer; random placement draws from
// the seeded generator.
func NewPlacer(t PlacerType, rng *rand.Rand) (Placer, error) {
	switch t {
	case PlacerNaive:
		return naivePlacer{}, nil
	case PlacerRandom:
		return &randomPlacer{rng: rng}, nil
	case PlacerDFS:
		return dfsPlacer{}, nil
	}
	return nil, fmt.Errorf("duostra: placer type %d not found", t)
}

// PlaceAndAssign runs the placer and binds the result onto the device.
func PlaceAndAssign(p Placer, d *device.Device) ([]int, error) {
	assign := p.Place(d)
	if err := d.Place(assign); err != nil {
		return nil, err
	}
	return assign, nil
}

// naivePlacer binds logical i to physical i.
type naivePlacer struct{}

func (naivePlacer) Place(d *device.Device) []int {
	assign := make([]int, d.NumQubits())
	for i := range assign {
		assign[i] = i
	}
	return assign
}

// randomPlacer shuffles the identity assignment.
type randomPlacer struct{ rng *rand.Rand }

func (p *randomPlacer) Place(d *device.Device) []int {
	assign := make([]int, d.NumQubits())
	for i := range assign {
		assign[i] = i
	}
	p.rng.Shuffle(len(assign), func(i, j int) {
		assign[i], assign[j] = assign[j], assign[i]
	})
	return assign
}

// dfsPlacer orders qubits depth-first from qubit 0, descending into
// corner qubits immediately so chains fill contiguously.
type dfsPlacer struct{}

func (dfsPlacer) Place(d *device.Device) []int {
	assign := make([]int, 0, d.NumQubits())
	marked := make([]bool, d.NumQubits())
	var dfs func(cur int)
	dfs = func(cur int) {
		marked[cur] = true
		assign = append(assign, cur)
		q := d.Qubit(cur)
		var waitlist []int
		for _, adj := range q.Adjacencies() {
			if marked[adj] {
				continue
			}
			if len(d.Qubit(adj).Adjacencies()) == 1 {
				dfs(adj)
			} else {
				waitlist = append(waitlist, adj)
			}
		}
		for _, adj := range waitlist {
			if !marked[adj] {
				dfs(adj)
			}
		}
	}
	dfs(0)
	// disconnected remainders go in index order
	for i := 0; i < d.NumQubits(); i++ {
		if !marked[i] {
			dfs(i)
		}
	}
	return assign
}
