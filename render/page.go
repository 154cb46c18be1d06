package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/sidsharmaji/PDF-Master-pro/model"
)

// Page paints one page onto the context surface: background, elements in
// z-order, then the watermark. Painters degrade on their own (clipping,
// placeholders) rather than fail, so there is nothing to return; panics
// from malformed input are the caller's concern.
func Page(ctx *Context, page *model.Page) {
	pw, ph := ctx.Surface.Size()
	bg := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if page.Background != nil {
		bg = page.Background.NRGBA(1)
	}
	ctx.Surface.DrawRect(0, 0, float64(pw), float64(ph), bg, nil, 0, model.BorderSolid)

	elems := make([]model.Element, len(page.Elements))
	copy(elems, page.Elements)
	model.SortByZ(elems)
	for _, el := range elems {
		Element(ctx, el)
	}
	if ctx.Watermark != "" {
		watermark(ctx)
	}
}

// Element dispatches one element to its painter.
func Element(ctx *Context, el model.Element) {
	switch e := el.(type) {
	case *model.Text:
		drawText(ctx, e)
	case *model.Image:
		drawImage(ctx, e)
	case *model.Shape:
		drawShape(ctx, e)
	case *model.Table:
		drawTable(ctx, e)
	default:
		ctx.logger().Debug("no painter for element", "type", el.Type().String())
	}
}

// ErrorPage paints the substitute sheet used when rendering a page
// fails: light gray with a centered notice. Substituting instead of
// dropping keeps the output page count equal to the document's.
func ErrorPage(ctx *Context, number int) {
	pw, ph := ctx.Surface.Size()
	w, h := float64(pw), float64(ph)
	ctx.Surface.DrawRect(0, 0, w, h, color.NRGBA{R: 230, G: 230, B: 230, A: 255}, nil, 0, model.BorderSolid)

	msg := fmt.Sprintf("Error rendering page %d", number)
	face := ctx.faces().Face(false, false, 16*ctx.deviceScale())
	tw := measure(face, msg)
	baseline := h/2 + float64(face.Metrics().Ascent)/64/2
	ctx.Surface.DrawText(msg, face, (w-tw)/2, baseline, color.NRGBA{R: 90, G: 90, B: 90, A: 255})
}

// watermark stamps the configured text corner to corner in large
// translucent gray. It goes on after the content so it cannot be hidden
// behind an opaque element.
func watermark(ctx *Context) {
	pw, ph := ctx.Surface.Size()
	w, h := float64(pw), float64(ph)

	fontPx := w / 8
	face := ctx.faces().Face(true, false, fontPx)
	tw := measure(face, ctx.Watermark)
	for tw > w*0.9 && fontPx > 8 {
		fontPx *= 0.9
		face = ctx.faces().Face(true, false, fontPx)
		tw = measure(face, ctx.Watermark)
	}

	angle := -math.Atan2(h, w) * 180 / math.Pi
	fg := color.NRGBA{R: 128, G: 128, B: 128, A: 70}
	ctx.Surface.Layer(0, 0, w, h, angle, func(s Surface) {
		baseline := h/2 + float64(face.Metrics().Ascent)/64/3
		s.DrawText(ctx.Watermark, face, (w-tw)/2, baseline, fg)
	})
}

// styleOpacity reads an element's effective opacity. Zero means the
// source never carried an explicit value, so it paints opaque.
func styleOpacity(s model.Style) float64 {
	if s.Opacity <= 0 || s.Opacity > 1 {
		return 1
	}
	return s.Opacity
}

// styleFontSize guards against unset font sizes on bare styles.
func styleFontSize(s model.Style) float64 {
	if s.FontSize > 0 {
		return s.FontSize
	}
	return model.DefaultStyle().FontSize
}

// colorOrNil converts an optional model color for the surface, keeping
// nil as an untyped nil so absent attributes skip drawing.
func colorOrNil(c *model.Color) color.Color {
	if c == nil {
		return nil
	}
	return c.NRGBA(1)
}
