package export

import (
	"image/color"
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/colornames"

	"github.com/signetlab/signet/pkg/graph"
	"github.com/signetlab/signet/pkg/layout"
)

const (
	nodeRadius  = 18.0
	canvasPad   = 60.0
	arrowLength = 10.0
	arrowWidth  = 5.0
)

// PNG draws the positioned network onto a raster canvas and encodes it.
// Edges are drawn first so nodes sit on top; directed networks get an
// arrowhead at the target rim.
func PNG(res *layout.Result, w io.Writer, opts Options) error {
	width, height := canvasSize(res)
	hl := highlightSet(opts.Highlight)
	hlColor := resolveHighlight(opts)

	dc := gg.NewContext(width, height)
	dc.SetColor(colornames.White)
	dc.Clear()

	for _, e := range res.Net.Edges() {
		from, okFrom := res.Positions[e.From]
		to, okTo := res.Positions[e.To]
		if !okFrom || !okTo {
			continue
		}
		col := resolveColor(attrString(e.Attrs, graph.AttrColor), colornames.Dimgray)
		dc.SetColor(col)
		dc.SetLineWidth(attrFloat(e.Attrs, graph.AttrPenWidth, 1))
		dc.DrawLine(from.X, from.Y, to.X, to.Y)
		dc.Stroke()

		if res.Net.Directed() {
			drawArrowPNG(dc, from, to, col)
		}
	}

	for _, n := range res.Net.Nodes() {
		pos, ok := res.Positions[n.ID]
		if !ok {
			continue
		}
		fill := resolveColor(attrString(n.Attrs, graph.AttrFillColor), colornames.Lightgray)
		if hl[n.ID] {
			fill = hlColor
		}
		dc.SetColor(fill)
		dc.DrawCircle(pos.X, pos.Y, nodeRadius)
		dc.Fill()

		dc.SetColor(resolveColor(attrString(n.Attrs, graph.AttrColor), colornames.Black))
		dc.SetLineWidth(attrFloat(n.Attrs, graph.AttrPenWidth, 1))
		dc.DrawCircle(pos.X, pos.Y, nodeRadius)
		dc.Stroke()

		dc.SetColor(colornames.Black)
		dc.DrawStringAnchored(n.ID, pos.X, pos.Y-nodeRadius-8, 0.5, 0.5)
	}

	return dc.EncodePNG(w)
}

func drawArrowPNG(dc *gg.Context, from, to layout.Position, col color.RGBA) {
	tipX, tipY, leftX, leftY, rightX, rightY, ok := arrowPoints(from, to)
	if !ok {
		return
	}
	dc.SetColor(col)
	dc.MoveTo(tipX, tipY)
	dc.LineTo(leftX, leftY)
	dc.LineTo(rightX, rightY)
	dc.ClosePath()
	dc.Fill()
}

// arrowPoints computes the arrowhead triangle for a directed edge, tip at
// the target node's rim. Reports false for zero-length edges.
func arrowPoints(from, to layout.Position) (tipX, tipY, leftX, leftY, rightX, rightY float64, ok bool) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return 0, 0, 0, 0, 0, 0, false
	}
	dx /= dist
	dy /= dist

	tipX = to.X - dx*nodeRadius
	tipY = to.Y - dy*nodeRadius

	px, py := -dy, dx
	leftX = tipX - dx*arrowLength + px*arrowWidth
	leftY = tipY - dy*arrowLength + py*arrowWidth
	rightX = tipX - dx*arrowLength - px*arrowWidth
	rightY = tipY - dy*arrowLength - py*arrowWidth
	return tipX, tipY, leftX, leftY, rightX, rightY, true
}

// canvasSize fits the canvas to the positioned extent with padding, clamped
// to a readable minimum.
func canvasSize(res *layout.Result) (int, int) {
	maxX, maxY := 0.0, 0.0
	for _, pos := range res.Positions {
		maxX = math.Max(maxX, pos.X)
		maxY = math.Max(maxY, pos.Y)
	}
	width := int(maxX + canvasPad)
	height := int(maxY + canvasPad)
	if width < 320 {
		width = 320
	}
	if height < 240 {
		height = 240
	}
	return width, height
}
