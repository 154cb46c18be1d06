package render

import (
	"math"

	"github.com/sidsharmaji/PDF-Master-pro/model"
)

// drawShape paints one vector shape. Kinds with no dedicated geometry
// fall back to a plain rectangle so an unmapped preset still shows its
// fill instead of disappearing.
func drawShape(ctx *Context, sh *model.Shape) {
	x, y, w, h := ctx.Box(sh.BBox)
	restore := ctx.Surface.SetOpacity(styleOpacity(sh.Style))
	defer restore()
	ctx.Surface.Layer(x, y, w, h, sh.Style.Rotation, func(s Surface) {
		paintShape(ctx, s, sh, x, y, w, h)
	})
}

func paintShape(ctx *Context, s Surface, sh *model.Shape, x, y, w, h float64) {
	fill := colorOrNil(sh.Style.Fill)
	stroke := colorOrNil(sh.Style.BorderColor)
	strokeW := 0.0
	if stroke != nil {
		strokeW = math.Max(ctx.Length(sh.Style.BorderWidth), 1)
	}
	if fill == nil && stroke == nil {
		return
	}

	switch sh.Kind {
	case model.ShapeEllipse:
		s.DrawEllipse(x, y, w, h, fill, stroke, strokeW)
	case model.ShapeTriangle:
		s.DrawPolygon([]Point{
			{x + w/2, y},
			{x + w, y + h},
			{x, y + h},
		}, fill, stroke, strokeW)
	case model.ShapeDiamond:
		s.DrawPolygon([]Point{
			{x + w/2, y},
			{x + w, y + h/2},
			{x + w/2, y + h},
			{x, y + h/2},
		}, fill, stroke, strokeW)
	case model.ShapeArrow:
		s.DrawPolygon(arrowPoints(x, y, w, h), fill, stroke, strokeW)
	case model.ShapeLine:
		// A line's box encodes its endpoints corner to corner. Connector
		// strokes usually arrive as border color, but fill-only sources
		// still draw.
		c := stroke
		if c == nil {
			c = fill
			strokeW = math.Max(ctx.Length(sh.Style.BorderWidth), 1)
		}
		s.DrawLine(x, y, x+w, y+h, c, strokeW)
	case model.ShapeRoundedRectangle:
		s.DrawPolygon(roundedRectPoints(x, y, w, h, ctx.Length(sh.CornerRadius)), fill, stroke, strokeW)
	default:
		s.DrawRect(x, y, w, h, fill, stroke, strokeW, sh.Style.BorderStyle)
	}
}

// arrowPoints builds a right-pointing block arrow: a shaft across the
// left part of the box, a triangular head across the rest.
func arrowPoints(x, y, w, h float64) []Point {
	headW := w * 0.4
	bx := x + w - headW
	return []Point{
		{x, y + h*0.25},
		{bx, y + h*0.25},
		{bx, y},
		{x + w, y + h/2},
		{bx, y + h},
		{bx, y + h*0.75},
		{x, y + h*0.75},
	}
}

// roundedRectPoints approximates the outline with short arc segments so
// the polygon primitives can both fill and stroke it.
func roundedRectPoints(x, y, w, h, r float64) []Point {
	r = math.Min(r, math.Min(w, h)/2)
	if r < 1 {
		return []Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	}
	const seg = 6
	arc := func(cx, cy, from float64) []Point {
		pts := make([]Point, 0, seg+1)
		for i := 0; i <= seg; i++ {
			a := from + (math.Pi/2)*float64(i)/seg
			pts = append(pts, Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
		}
		return pts
	}
	var pts []Point
	pts = append(pts, arc(x+w-r, y+r, -math.Pi/2)...)
	pts = append(pts, arc(x+w-r, y+h-r, 0)...)
	pts = append(pts, arc(x+r, y+h-r, math.Pi/2)...)
	pts = append(pts, arc(x+r, y+r, math.Pi)...)
	return pts
}
