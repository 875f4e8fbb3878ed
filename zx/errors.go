package zx

import "errors"

// Sentinel errors for graph edits. Callers assert with errors.Is.
var (
	// ErrVertexNotFound indicates an operation referenced an id not in the graph.
	ErrVertexNotFound = errors.New("zx: vertex not found")

	// ErrInvalidEdge indicates an edge addition that would violate the
	// structural invariants (boundary-to-boundary, or a second edge on a
	// boundary vertex).
	ErrInvalidEdge = errors.New("zx: invalid edge")

	// ErrInvalidVertex indicates a spider addition with the Boundary kind;
	// boundaries are added through AddInput/AddOutput.
	ErrInvalidVertex = errors.New("zx: invalid vertex kind")

	// ErrDuplicateQubit indicates two inputs (or two outputs) on one qubit.
	ErrDuplicateQubit = errors.New("zx: duplicate boundary qubit")

	// ErrArityMismatch indicates composition of graphs whose output and
	// input counts disagree.
	ErrArityMismatch = errors.New("zx: arity mismatch")

	// ErrEdgeNotFound indicates a removal or toggle of a non-existent edge.
	ErrEdgeNotFound = errors.New("zx: edge not found")
)
