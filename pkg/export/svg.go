package export

import (
	"fmt"
	"io"

	"github.com/ajstarks/svgo"
	"golang.org/x/image/colornames"

	"github.com/signetlab/signet/pkg/graph"
	"github.com/signetlab/signet/pkg/layout"
)

// SVG draws the positioned network as a standalone SVG document with the
// same scene as the raster exporter.
func SVG(res *layout.Result, w io.Writer, opts Options) error {
	width, height := canvasSize(res)
	hl := highlightSet(opts.Highlight)
	hlColor := resolveHighlight(opts)

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	for _, e := range res.Net.Edges() {
		from, okFrom := res.Positions[e.From]
		to, okTo := res.Positions[e.To]
		if !okFrom || !okTo {
			continue
		}
		col := resolveColor(attrString(e.Attrs, graph.AttrColor), colornames.Dimgray)
		canvas.Line(int(from.X), int(from.Y), int(to.X), int(to.Y),
			fmt.Sprintf("stroke:%s;stroke-width:%g", cssColor(col), attrFloat(e.Attrs, graph.AttrPenWidth, 1)))

		if res.Net.Directed() {
			tipX, tipY, leftX, leftY, rightX, rightY, ok := arrowPoints(from, to)
			if ok {
				canvas.Polygon(
					[]int{int(tipX), int(leftX), int(rightX)},
					[]int{int(tipY), int(leftY), int(rightY)},
					fmt.Sprintf("fill:%s", cssColor(col)))
			}
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
		stroke := resolveColor(attrString(n.Attrs, graph.AttrColor), colornames.Black)
		canvas.Circle(int(pos.X), int(pos.Y), int(nodeRadius),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%g",
				cssColor(fill), cssColor(stroke), attrFloat(n.Attrs, graph.AttrPenWidth, 1)))
		canvas.Text(int(pos.X), int(pos.Y-nodeRadius-8), n.ID,
			"fill:black;font-size:12px;font-family:sans-serif;text-anchor:middle")
	}

	canvas.End()
	return nil
}
