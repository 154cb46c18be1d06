package render

import (
	"io"
	"log/slog"

	"github.com/sidsharmaji/PDF-Master-pro/layout"
	"github.com/sidsharmaji/PDF-Master-pro/model"
)

// Context carries everything the painters need for one page: the canvas
// to page mapping, the device scale, the output surface, the shared font
// cache, and an optional logger. The zero values of Scale, Faces and Log
// mean native scale, a private cache and silence.
type Context struct {
	Layout  layout.PageLayout
	Scale   float64
	Surface Surface
	Faces   *FaceCache
	Log     *slog.Logger

	// Watermark is stamped diagonally across the page after all
	// elements when non-empty.
	Watermark string
}

// Point maps a canvas coordinate to device pixels.
func (c *Context) Point(x, y float64) (float64, float64) {
	px, py := c.Layout.Place(x, y)
	s := c.deviceScale()
	return px * s, py * s
}

// Length maps a canvas distance to device pixels.
func (c *Context) Length(v float64) float64 {
	return v * c.Layout.Scale * c.deviceScale()
}

// Box maps an element bounding box to device pixels.
func (c *Context) Box(b model.BBox) (x, y, w, h float64) {
	x, y = c.Point(b.X, b.Y)
	return x, y, c.Length(b.Width), c.Length(b.Height)
}

// FontPixels converts a font size in points to device pixels. Font
// sizes scale with the canvas like every other length.
func (c *Context) FontPixels(pt float64) float64 {
	return c.Length(pt * 96 / 72)
}

func (c *Context) deviceScale() float64 {
	if c.Scale <= 0 {
		return 1
	}
	return c.Scale
}

func (c *Context) faces() *FaceCache {
	if c.Faces == nil {
		c.Faces = NewFaceCache()
	}
	return c.Faces
}

func (c *Context) logger() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
