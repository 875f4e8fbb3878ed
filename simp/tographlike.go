package simp

import (
	"context"
	"fmt"

	"github.com/kegliz/zxsyn/zx"
)

// ToGraphLike normalises a graph into the extractor's canonical form:
// H-boxes become Hadamard edges, X-spiders change colour to Z, adjacent
// same-colour spiders fuse, and every boundary ends up on its own
// Z-spider over a Simple edge.
func (d *Driver) ToGraphLike(ctx context.Context, g *zx.Graph) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInterrupted, err)
	}

	if err := dissolveHBoxes(g); err != nil {
		return err
	}

	// promote every X-spider to Z by conjugating its legs
	for _, v := range g.Vertices() {
		if v.Type() == zx.XSpider {
			if err := g.ColorChange(v.ID()); err != nil {
				return err
			}
		}
	}

	// fuse neighbours now joined by Simple edges
	if _, err := d.runQueue(ctx, g, []string{"spider-fusion"}); err != nil {
		return err
	}

	return conditionBoundaries(g)
}

// dissolveHBoxes replaces every arity-2 phase-pi H-box with a Hadamard
// edge between its two legs. Any other H-box has no graph-like
// counterpart and fails the normalisation.
func dissolveHBoxes(g *zx.Graph) error {
	for _, v := range g.Vertices() {
		if v.Type() != zx.HBox {
			continue
		}
		if v.Degree() != 2 || !v.Phase().IsPi() {
			return fmt.Errorf("%w: H-box %d has arity %d phase %s",
				ErrNotReducible, v.ID(), v.Degree(), v.Phase())
		}
		ns := v.Neighbors()
		hadamards := 1 // the box itself
		for _, n := range ns {
			if n.Kind == zx.Hadamard {
				hadamards++
			}
		}
		if err := g.RemoveVertex(v.ID()); err != nil {
			return err
		}
		kind := zx.Hadamard
		if hadamards%2 == 0 {
			kind = zx.Simple
		}
		if ns[0].ID == ns[1].ID {
			if err := g.AddEdge(ns[0].ID, ns[1].ID, kind); err != nil {
				return err
			}
			continue
		}
		if kind == zx.Simple {
			if err := g.AddWire(ns[0].ID, ns[1].ID); err != nil {
				return err
			}
		} else if err := g.AddEdge(ns[0].ID, ns[1].ID, kind); err != nil {
			return err
		}
	}
	return nil
}

// conditionBoundaries gives every boundary a private Z-spider reached by
// a Simple edge.
func conditionBoundaries(g *zx.Graph) error {
	// identity wires first: boundary-to-boundary gets a spider between
	for _, b := range g.Inputs() {
		if b.Degree() != 1 {
			continue
		}
		n := b.Neighbors()[0]
		nb, _ := g.Vertex(n.ID)
		if nb.Type() != zx.Boundary {
			continue
		}
		if err := g.RemoveEdge(b.ID(), n.ID, zx.Simple); err != nil {
			return err
		}
		z, err := g.AddSpider(zx.ZSpider, zx.PhaseZero, b.Row(), (b.Col()+nb.Col())/2)
		if err != nil {
			return err
		}
		// Hadamard on both sides; the boundary detour keeps the legs
		// Simple and the pair of detour spiders cancels later
		if err := g.AddEdge(b.ID(), z.ID(), zx.Hadamard); err != nil {
			return err
		}
		if err := g.AddEdge(z.ID(), nb.ID(), zx.Hadamard); err != nil {
			return err
		}
	}

	// spiders holding several boundaries shed the extras onto fresh ones
	boundaryCount := func(vid zx.VertexID) int {
		v, _ := g.Vertex(vid)
		count := 0
		for _, n := range v.Neighbors() {
			nb, _ := g.Vertex(n.ID)
			if nb.Type() == zx.Boundary {
				count++
			}
		}
		return count
	}
	for _, b := range append(g.Inputs(), g.Outputs()...) {
		if b.Degree() != 1 {
			continue
		}
		n := b.Neighbors()[0]
		nb, _ := g.Vertex(n.ID)
		if nb.Type() != zx.ZSpider || boundaryCount(n.ID) <= 1 {
			continue
		}
		// splice b - w1 -H- w2 -H- spider, detaching b from the spider
		if err := g.RemoveEdge(b.ID(), n.ID, zx.Simple); err != nil {
			return err
		}
		w1, err := g.AddSpider(zx.ZSpider, zx.PhaseZero, b.Row(), b.Col()+0.5)
		if err != nil {
			return err
		}
		w2, err := g.AddSpider(zx.ZSpider, zx.PhaseZero, b.Row(), b.Col()+1)
		if err != nil {
			return err
		}
		if err := g.AddEdge(b.ID(), w1.ID(), zx.Simple); err != nil {
			return err
		}
		if err := g.AddEdge(w1.ID(), w2.ID(), zx.Hadamard); err != nil {
			return err
		}
		if err := g.AddEdge(w2.ID(), n.ID, zx.Hadamard); err != nil {
			return err
		}
	}
	return nil
}
