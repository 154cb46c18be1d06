// Package render rasterizes model pages onto in-memory RGBA surfaces.
//
// Painters never talk to pixels directly: they emit draw calls on the
// Surface interface in absolute output coordinates, and the Raster
// implementation turns those into pixel writes. Geometry mapping from
// the source canvas to the output page is the caller's job via
// Context, which carries the page layout and device scale alongside
// the surface, the font cache and a logger.
package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	xdraw "golang.org/x/image/draw"

	"github.com/sidsharmaji/PDF-Master-pro/model"
)

// Point is one polygon vertex in absolute output pixels.
type Point struct {
	X, Y float64
}

// Surface is the drawing contract painters emit to. Coordinates are
// absolute output pixels; nil colors mean the attribute is absent and
// nothing is drawn for it.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (w, h int)

	// DrawText draws one line of text with its baseline at (x, y).
	DrawText(s string, face font.Face, x, y float64, c color.Color)

	// DrawImage scales src into the given box.
	DrawImage(src image.Image, x, y, w, h float64)

	// DrawRect fills and/or strokes an axis-aligned rectangle. The
	// stroke straddles the rectangle edge and honors the border style.
	DrawRect(x, y, w, h float64, fill, stroke color.Color, strokeWidth float64, style model.BorderStyle)

	// DrawLine strokes a straight segment.
	DrawLine(x1, y1, x2, y2 float64, c color.Color, width float64)

	// DrawEllipse fills and/or strokes the ellipse inscribed in the box.
	DrawEllipse(x, y, w, h float64, fill, stroke color.Color, strokeWidth float64)

	// DrawPolygon fills and/or strokes a closed polygon.
	DrawPolygon(pts []Point, fill, stroke color.Color, strokeWidth float64)

	// SetOpacity scales the alpha of subsequent draws and returns a
	// restore function, so translucency stays scoped to one element.
	SetOpacity(alpha float64) func()

	// Layer runs draw against a scratch surface and composites the
	// result rotated by angle degrees clockwise around the center of
	// the given box. A zero angle draws directly with no scratch.
	Layer(x, y, w, h, angle float64, draw func(Surface))
}

// Raster is an in-memory RGBA Surface.
type Raster struct {
	img     *image.RGBA
	opacity float64
}

// NewRaster creates a white surface, the paper every page starts from.
func NewRaster(w, h int) *Raster {
	r := newLayer(w, h)
	r.fillRect(r.img.Bounds(), color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return r
}

// newLayer creates a fully transparent surface for rotated compositing.
func newLayer(w, h int) *Raster {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Raster{
		img:     image.NewRGBA(image.Rect(0, 0, w, h)),
		opacity: 1,
	}
}

// Size returns the surface dimensions in pixels.
func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image exposes the backing image.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// PNG encodes the surface.
func (r *Raster) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SetOpacity scales the alpha of subsequent draws until the returned
// restore function runs. Nested scopes multiply.
func (r *Raster) SetOpacity(alpha float64) func() {
	prev := r.opacity
	switch {
	case alpha < 0:
		alpha = 0
	case alpha > 1:
		alpha = 1
	}
	r.opacity = prev * alpha
	return func() { r.opacity = prev }
}

// tint converts a draw color to straight-alpha channels with the
// surface opacity applied. The second result is false when there is
// nothing to draw.
func (r *Raster) tint(c color.Color) (color.NRGBA, bool) {
	if c == nil {
		return color.NRGBA{}, false
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if r.opacity < 1 {
		n.A = uint8(float64(n.A)*r.opacity + 0.5)
	}
	return n, n.A > 0
}

// blend draws c over the pixel at (x, y) with straight-alpha blending
// through direct Pix access.
func (r *Raster) blend(x, y int, c color.NRGBA) {
	b := r.img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y || c.A == 0 {
		return
	}
	off := (y-b.Min.Y)*r.img.Stride + (x-b.Min.X)*4
	pix := r.img.Pix
	if c.A == 255 {
		pix[off] = c.R
		pix[off+1] = c.G
		pix[off+2] = c.B
		pix[off+3] = 255
		return
	}
	a := uint32(c.A)
	ia := 255 - a
	pix[off] = uint8((uint32(c.R)*a + uint32(pix[off])*ia) / 255)
	pix[off+1] = uint8((uint32(c.G)*a + uint32(pix[off+1])*ia) / 255)
	pix[off+2] = uint8((uint32(c.B)*a + uint32(pix[off+2])*ia) / 255)
	pix[off+3] = uint8(uint32(pix[off+3]) + (255-uint32(pix[off+3]))*a/255)
}

// brush stamps a width-sized square centered on (x, y), the pen used by
// line and outline strokes.
func (r *Raster) brush(x, y int, c color.NRGBA, width int) {
	if width <= 1 {
		r.blend(x, y, c)
		return
	}
	half := width / 2
	for dy := -half; dy < width-half; dy++ {
		for dx := -half; dx < width-half; dx++ {
			r.blend(x+dx, y+dy, c)
		}
	}
}

// fillRect fills a pixel rectangle, taking the fast draw path when the
// color is opaque and row-blending otherwise.
func (r *Raster) fillRect(rect image.Rectangle, c color.NRGBA) {
	rect = rect.Intersect(r.img.Bounds())
	if rect.Empty() || c.A == 0 {
		return
	}
	if c.A == 255 {
		draw.Draw(r.img, rect, image.NewUniform(c), image.Point{}, draw.Src)
		return
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r.blend(x, y, c)
		}
	}
}

func pxRect(x, y, w, h float64) image.Rectangle {
	return image.Rect(round(x), round(y), round(x+w), round(y+h))
}

func round(v float64) int {
	return int(math.Round(v))
}

// DrawRect fills and/or strokes an axis-aligned rectangle.
func (r *Raster) DrawRect(x, y, w, h float64, fill, stroke color.Color, strokeWidth float64, style model.BorderStyle) {
	rect := pxRect(x, y, w, h)
	if fc, ok := r.tint(fill); ok {
		r.fillRect(rect, fc)
	}
	sc, ok := r.tint(stroke)
	if !ok || strokeWidth <= 0 {
		return
	}
	width := max(round(strokeWidth), 1)
	if style == model.BorderSolid {
		r.fillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+width), sc)
		r.fillRect(image.Rect(rect.Min.X, rect.Max.Y-width, rect.Max.X, rect.Max.Y), sc)
		r.fillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+width, rect.Max.Y), sc)
		r.fillRect(image.Rect(rect.Max.X-width, rect.Min.Y, rect.Max.X, rect.Max.Y), sc)
		return
	}
	dash, gap := dashPattern(style, width)
	r.dashedHLine(rect.Min.X, rect.Max.X, rect.Min.Y+width/2, sc, width, dash, gap)
	r.dashedHLine(rect.Min.X, rect.Max.X, rect.Max.Y-1-width/2, sc, width, dash, gap)
	r.dashedVLine(rect.Min.X+width/2, rect.Min.Y, rect.Max.Y, sc, width, dash, gap)
	r.dashedVLine(rect.Max.X-1-width/2, rect.Min.Y, rect.Max.Y, sc, width, dash, gap)
}

func dashPattern(style model.BorderStyle, width int) (dash, gap int) {
	if style == model.BorderDotted {
		return max(width, 1), max(2*width, 2)
	}
	return max(4*width, 4), max(3*width, 3)
}

func (r *Raster) dashedHLine(x1, x2, y int, c color.NRGBA, width, dash, gap int) {
	for x := x1; x < x2; x += dash + gap {
		end := min(x+dash, x2)
		r.fillRect(image.Rect(x, y-width/2, end, y-width/2+width), c)
	}
}

func (r *Raster) dashedVLine(x, y1, y2 int, c color.NRGBA, width, dash, gap int) {
	for y := y1; y < y2; y += dash + gap {
		end := min(y+dash, y2)
		r.fillRect(image.Rect(x-width/2, y, x-width/2+width, end), c)
	}
}

// DrawLine strokes a straight segment with a square brush stepped along
// the longer axis.
func (r *Raster) DrawLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	sc, ok := r.tint(c)
	if !ok {
		return
	}
	pw := max(round(width), 1)
	ix1, iy1, ix2, iy2 := round(x1), round(y1), round(x2), round(y2)
	dx := abs(ix2 - ix1)
	dy := abs(iy2 - iy1)
	steps := max(dx, dy)
	if steps == 0 {
		r.brush(ix1, iy1, sc, pw)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		px := round(float64(ix1) + t*float64(ix2-ix1))
		py := round(float64(iy1) + t*float64(iy2-iy1))
		r.brush(px, py, sc, pw)
	}
}

// DrawEllipse fills and/or strokes the ellipse inscribed in the box.
// The fill is scanline-based; the outline walks the parameter circle.
func (r *Raster) DrawEllipse(x, y, w, h float64, fill, stroke color.Color, strokeWidth float64) {
	if w <= 0 || h <= 0 {
		return
	}
	rx, ry := w/2, h/2
	cx, cy := x+rx, y+ry
	if fc, ok := r.tint(fill); ok {
		for py := round(y); py < round(y + h); py++ {
			t := (float64(py) + 0.5 - cy) / ry
			if t < -1 || t > 1 {
				continue
			}
			half := rx * math.Sqrt(1-t*t)
			r.fillRect(image.Rect(round(cx-half), py, round(cx+half), py+1), fc)
		}
	}
	sc, ok := r.tint(stroke)
	if !ok || strokeWidth <= 0 {
		return
	}
	pw := max(round(strokeWidth), 1)
	steps := max(round(2*math.Pi*(rx+ry)/2), 16)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		r.brush(round(cx+rx*math.Cos(a)), round(cy+ry*math.Sin(a)), sc, pw)
	}
}

// DrawPolygon fills a closed polygon with even-odd scanlines and then
// strokes its edges.
func (r *Raster) DrawPolygon(pts []Point, fill, stroke color.Color, strokeWidth float64) {
	if len(pts) < 3 {
		return
	}
	if fc, ok := r.tint(fill); ok {
		r.fillPolygon(pts, fc)
	}
	sc, ok := r.tint(stroke)
	if !ok || strokeWidth <= 0 {
		return
	}
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		r.DrawLine(a.X, a.Y, b.X, b.Y, sc, strokeWidth)
	}
}

func (r *Raster) fillPolygon(pts []Point, c color.NRGBA) {
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	for py := round(minY); py < round(maxY); py++ {
		sy := float64(py) + 0.5
		var xs []float64
		for i := range pts {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if (a.Y <= sy) == (b.Y <= sy) {
				continue
			}
			t := (sy - a.Y) / (b.Y - a.Y)
			xs = append(xs, a.X+t*(b.X-a.X))
		}
		if len(xs) < 2 {
			continue
		}
		for i := 1; i < len(xs); i++ {
			for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
				xs[j], xs[j-1] = xs[j-1], xs[j]
			}
		}
		for i := 0; i+1 < len(xs); i += 2 {
			r.fillRect(image.Rect(round(xs[i]), py, round(xs[i+1]), py+1), c)
		}
	}
}

// DrawText draws one line of text with its baseline at (x, y).
func (r *Raster) DrawText(s string, face font.Face, x, y float64, c color.Color) {
	if s == "" || face == nil {
		return
	}
	tc, ok := r.tint(c)
	if !ok {
		return
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(tc),
		Face: face,
		Dot:  fixed.P(round(x), round(y)),
	}
	d.DrawString(s)
}

// DrawImage scales src into the box with bilinear filtering. Translucent
// scopes scale into a scratch buffer first so the opacity applies to the
// image's own alpha.
func (r *Raster) DrawImage(src image.Image, x, y, w, h float64) {
	dw, dh := round(w), round(h)
	if dw < 1 || dh < 1 {
		return
	}
	dst := image.Rect(round(x), round(y), round(x)+dw, round(y)+dh)
	if r.opacity >= 1 {
		xdraw.ApproxBiLinear.Scale(r.img, dst, src, src.Bounds(), xdraw.Over, nil)
		return
	}
	tmp := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.ApproxBiLinear.Scale(tmp, tmp.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	for py := 0; py < dh; py++ {
		for px := 0; px < dw; px++ {
			tc := color.NRGBAModel.Convert(tmp.RGBAAt(px, py)).(color.NRGBA)
			tc.A = uint8(float64(tc.A)*r.opacity + 0.5)
			r.blend(dst.Min.X+px, dst.Min.Y+py, tc)
		}
	}
}

// Layer runs draw against a transparent scratch surface and composites
// the result rotated clockwise around the center of the given box. The
// scratch shares the full surface coordinate space, so painters draw at
// the same absolute positions either way.
func (r *Raster) Layer(x, y, w, h, angle float64, drawFn func(Surface)) {
	if angle == 0 {
		drawFn(r)
		return
	}
	b := r.img.Bounds()
	tmp := newLayer(b.Dx(), b.Dy())
	tmp.opacity = r.opacity
	drawFn(tmp)

	cx, cy := x+w/2, y+h/2
	rad := angle * math.Pi / 180
	sin, cos := math.Sincos(rad)

	// Stroke widths can spill slightly past the element box.
	bounds := rotatedBounds(cx, cy, w+8, h+8, rad).Intersect(b)
	for dy := bounds.Min.Y; dy < bounds.Max.Y; dy++ {
		ry := float64(dy) + 0.5 - cy
		for dx := bounds.Min.X; dx < bounds.Max.X; dx++ {
			rx := float64(dx) + 0.5 - cx
			sx := round(cx + rx*cos + ry*sin - 0.5)
			sy := round(cy - rx*sin + ry*cos - 0.5)
			if !image.Pt(sx, sy).In(b) {
				continue
			}
			off := (sy-b.Min.Y)*tmp.img.Stride + (sx-b.Min.X)*4
			if a := tmp.img.Pix[off+3]; a > 0 {
				r.blend(dx, dy, color.NRGBA{
					R: tmp.img.Pix[off],
					G: tmp.img.Pix[off+1],
					B: tmp.img.Pix[off+2],
					A: a,
				})
			}
		}
	}
}

// rotatedBounds returns the axis-aligned pixel box covering a w by h
// rectangle rotated around (cx, cy).
func rotatedBounds(cx, cy, w, h, rad float64) image.Rectangle {
	cos := math.Abs(math.Cos(rad))
	sin := math.Abs(math.Sin(rad))
	rw := w*cos + h*sin
	rh := w*sin + h*cos
	return image.Rect(round(cx-rw/2), round(cy-rh/2), round(cx+rw/2)+1, round(cy+rh/2)+1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
