// Package duostra maps logical circuits onto a device coupling graph:
// placers choose the initial binding, a router executes gates by
// inserting SWAPs along searched paths, and schedulers pick the order
// in which ready gates reach the router.
package duostra

import (
	"errors"
	"fmt"
)

var (
	// ErrArityMismatch indicates more logical qubits than the device has
	// physical ones.
	ErrArityMismatch = errors.New("duostra: more logical than physical qubits")

	// ErrInterrupted indicates the cooperative cancel was observed.
	ErrInterrupted = errors.New("duostra: interrupted")

	// ErrUnroutable indicates the coupling graph has no path between the
	// qubits of a gate.
	ErrUnroutable = errors.New("duostra: no route between gate qubits")
)

// SchedulerType selects the scheduling algorithm.
type SchedulerType uint8

const (
	SchedulerBase SchedulerType = iota
	SchedulerNaive
	SchedulerRandom
	SchedulerGreedy
	SchedulerSearch
)

func (t SchedulerType) String() string {
	switch t {
	case SchedulerBase:
		return "base"
	case SchedulerNaive:
		return "naive"
	case SchedulerRandom:
		return "random"
	case SchedulerGreedy:
		return "greedy"
	default:
		return "search"
	}
}

// ParseSchedulerType resolves a scheduler name.
func ParseSchedulerType(s string) (SchedulerType, error) {
	switch s {
	case "base":
		return SchedulerBase, nil
	case "naive", "static":
		return SchedulerNaive, nil
	case "random":
		return SchedulerRandom, nil
	case "greedy":
		return SchedulerGreedy, nil
	case "search":
		return SchedulerSearch, nil
	}
	return 0, fmt.Errorf("duostra: unknown scheduler %q", s)
}

// RouterType selects the routing algorithm.
type RouterType uint8

const (
	RouterShortestPath RouterType = iota
	RouterDuostra
)

func (t RouterType) String() string {
	if t == RouterShortestPath {
		return "shortest_path"
	}
	return "duostra"
}

// ParseRouterType resolves a router name.
func ParseRouterType(s string) (RouterType, error) {
	switch s {
	case "shortest_path", "shortest-path", "apsp":
		return RouterShortestPath, nil
	case "duostra":
		return RouterDuostra, nil
	}
	return 0, fmt.Errorf("duostra: unknown router %q", s)
}

// PlacerType selects the initial placement strategy.
type PlacerType uint8

const (
	PlacerNaive PlacerType = iota
	PlacerRandom
	PlacerDFS
)

func (t PlacerType) String() string {
	switch t {
	case PlacerNaive:
		return "naive"
	case PlacerRandom:
		return "random"
	default:
		return "dfs"
	}
}

// ParsePlacerType resolves a placer name.
func ParsePlacerType(s string) (PlacerType, error) {
	switch s {
	case "naive", "static":
		return PlacerNaive, nil
	case "random":
		return PlacerRandom, nil
	case "dfs":
		return PlacerDFS, nil
	}
	return 0, fmt.Errorf("duostra: unknown placer %q", s)
}

// MinMax selects between the min and max variants of a policy.
type MinMax uint8

const (
	MinOption MinMax = iota
	MaxOption
)

func (m MinMax) String() string {
	if m == MinOption {
		return "min"
	}
	return "max"
}

// ParseMinMax resolves a min/max option.
func ParseMinMax(s string) (MinMax, error) {
	switch s {
	case "min":
		return MinOption, nil
	case "max":
		return MaxOption, nil
	}
	return 0, fmt.Errorf("duostra: expected min or max, got %q", s)
}

// Pick applies the policy to two values.
func (m MinMax) Pick(a, b int) int {
	if m == MinOption {
		if a < b {
			return a
		}
		return b
	}
	if a > b {
		return a
	}
	return b
}

// Config is the explicit configuration value threaded through the
// mapper; there is no global state and randomness comes from Seed.
type Config struct {
	Scheduler SchedulerType
	Router    RouterType
	Placer    PlacerType

	TieBreaker    MinMax // on tied cost prefer lower/higher logical id
	AvailableTime MinMax // edge cost from min or max of occupied times
	CostSelection MinMax // greedy child selection

	NumCandidates int // candidate window; 0 means unbounded
	APSPCoeff     int // weight of the shortest-path term

	Depth         int  // search look-ahead depth
	NeverCache    bool // drop search children after each visit
	ExecuteSingle bool // route ready single-qubit gates eagerly

	Verify bool  // run the mapping equivalence checker afterwards
	Seed   int64 // random scheduler/placer seed
}

// DefaultConfig mirrors the stock search-scheduler setup.
func DefaultConfig() Config {
	return Config{
		Scheduler:     SchedulerSearch,
		Router:        RouterDuostra,
		Placer:        PlacerDFS,
		TieBreaker:    MinOption,
		AvailableTime: MaxOption,
		CostSelection: MinOption,
		NumCandidates: 0,
		APSPCoeff:     1,
		Depth:         4,
		NeverCache:    true,
		ExecuteSingle: false,
	}
}
