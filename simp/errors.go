package simp

import "errors"

var (
	// ErrNoProgress indicates a pass failed to reduce its rule's
	// monovariant; the driver disables the rule for the rest of the
	// strategy.
	ErrNoProgress = errors.New("simp: rewrite pass made no progress")

	// ErrInterrupted indicates the cooperative cancellation flag was
	// observed; the graph is left valid but partially simplified.
	ErrInterrupted = errors.New("simp: interrupted")

	// ErrNotReducible indicates to-graph-like met a vertex it cannot
	// normalise (an H-box that is not a plain Hadamard wire).
	ErrNotReducible = errors.New("simp: graph cannot be made graph-like")
)
