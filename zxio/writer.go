package zxio

import (
	"fmt"
	"io"
	"strings"

	"github.com/kegliz/zxsyn/zx"
)

// WriteOptions controls .zx output.
type WriteOptions struct {
	// Complete writes every edge on both endpoints instead of only on
	// the lower-id one.
	Complete bool
}

// Write renders a graph in the .zx format.
func Write(w io.Writer, g *zx.Graph, options WriteOptions) error {
	for _, v := range g.Vertices() {
		line, err := renderVertex(g, v, options)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteString renders a graph into a string.
func WriteString(g *zx.Graph, options WriteOptions) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, g, options); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func renderVertex(g *zx.Graph, v *zx.Vertex, options WriteOptions) (string, error) {
	var kind string
	switch {
	case g.IsInput(v.ID()):
		kind = "I"
	case g.IsOutput(v.ID()):
		kind = "O"
	case v.Type() == zx.ZSpider:
		kind = "Z"
	case v.Type() == zx.XSpider:
		kind = "X"
	case v.Type() == zx.HBox:
		kind = "H"
	default:
		return "", fmt.Errorf("zxio: vertex %d has no kind", v.ID())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s%d (%g, %g)", kind, v.ID(), v.Row(), v.Col())
	for _, n := range v.Neighbors() {
		if !options.Complete && n.ID < v.ID() {
			continue // the lower endpoint already wrote this edge
		}
		fmt.Fprintf(&sb, " %s%d", n.Kind, n.ID)
	}
	switch kind {
	case "I", "O":
		fmt.Fprintf(&sb, " %d", v.Qubit())
	case "H":
		if !v.Phase().IsPi() {
			fmt.Fprintf(&sb, " %s", v.Phase().RatString())
		}
	default:
		if !v.Phase().IsZero() {
			fmt.Fprintf(&sb, " %s", v.Phase().RatString())
		}
	}
	return sb.String(), nil
}
