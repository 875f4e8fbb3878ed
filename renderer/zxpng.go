// Package renderer draws ZX-graphs as PNG images using the vertex
// layout coordinates: spiders as coloured dots, H-boxes as squares,
// Hadamard edges dashed.
package renderer

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/kegliz/zxsyn/zx"
)

// ZXPNG renders graphs onto a grid of Cell-sized tiles.
type ZXPNG struct{ Cell float64 }

// NewRenderer returns a renderer with the given cell size in pixels.
func NewRenderer(cellPx int) ZXPNG { return ZXPNG{Cell: float64(cellPx)} }

// Render draws the graph.
func (r ZXPNG) Render(g *zx.Graph) (image.Image, error) {
	maxRow, maxCol := 1.0, 1.0
	for _, v := range g.Vertices() {
		if v.Row() > maxRow {
			maxRow = v.Row()
		}
		if v.Col() > maxCol {
			maxCol = v.Col()
		}
	}
	w := int((maxCol + 2) * r.Cell)
	h := int((maxRow + 2) * r.Cell)

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// edges first so the vertices paint over them
	dc.SetLineWidth(1.5)
	for _, e := range g.Edges() {
		u, _ := g.Vertex(e.U)
		v, _ := g.Vertex(e.V)
		x0, y0 := r.at(u)
		x1, y1 := r.at(v)
		if e.Kind == zx.Hadamard {
			dc.SetRGB(0.2, 0.4, 0.9)
			dc.SetDash(4, 4)
		} else {
			dc.SetRGB(0, 0, 0)
			dc.SetDash()
		}
		dc.DrawLine(x0, y0, x1, y1)
		dc.Stroke()
	}
	dc.SetDash()

	for _, v := range g.Vertices() {
		x, y := r.at(v)
		switch v.Type() {
		case zx.Boundary:
			dc.SetRGB(0, 0, 0)
			dc.DrawCircle(x, y, r.Cell/10)
			dc.Fill()
		case zx.ZSpider:
			dc.SetRGB(0.55, 0.85, 0.55)
			r.spider(dc, v, x, y)
		case zx.XSpider:
			dc.SetRGB(0.9, 0.5, 0.5)
			r.spider(dc, v, x, y)
		case zx.HBox:
			dc.SetRGB(0.95, 0.85, 0.3)
			half := r.Cell / 5
			dc.DrawRectangle(x-half, y-half, 2*half, 2*half)
			dc.Fill()
			dc.SetRGB(0, 0, 0)
			dc.DrawRectangle(x-half, y-half, 2*half, 2*half)
			dc.Stroke()
		}
	}
	return dc.Image(), nil
}

func (r ZXPNG) at(v *zx.Vertex) (float64, float64) {
	return (v.Col() + 1) * r.Cell, (v.Row() + 1) * r.Cell
}

func (r ZXPNG) spider(dc *gg.Context, v *zx.Vertex, x, y float64) {
	dc.DrawCircle(x, y, r.Cell/4)
	dc.Fill()
	dc.SetRGB(0, 0, 0)
	dc.DrawCircle(x, y, r.Cell/4)
	dc.Stroke()
	if !v.Phase().IsZero() {
		dc.DrawStringAnchored(fmt.Sprint(v.Phase()), x, y-r.Cell/3, 0.5, 0.5)
	}
}
