package layout

import "math"

const (
	// Margin is the content margin reserved on every page edge, in pixels.
	Margin = 20

	// DefaultCanvasWidth and DefaultCanvasHeight stand in for a source
	// canvas whose dimensions are missing or zero.
	DefaultCanvasWidth  = 1280
	DefaultCanvasHeight = 720
)

// PageLayout describes how a source canvas maps onto one output page. All
// values are normalized pixels.
type PageLayout struct {
	// PageWidth and PageHeight are the full output page dimensions.
	PageWidth  float64
	PageHeight float64

	// Scale is the uniform factor applied to source coordinates.
	Scale float64

	// OffsetX and OffsetY translate scaled source coordinates onto the
	// page, centering the content inside the margins.
	OffsetX float64
	OffsetY float64

	// Margin is the content margin reserved on every edge.
	Margin float64
}

// Place maps a source coordinate onto the output page.
func (pl PageLayout) Place(x, y float64) (float64, float64) {
	return pl.OffsetX + x*pl.Scale, pl.OffsetY + y*pl.Scale
}

// Fit computes the layout that places a canvasW by canvasH source canvas
// on the page selected by s. The scale is uniform, so the canvas is never
// stretched; the leftover space on the slack axis is split evenly, which
// centers the content inside the margins. A zero or negative canvas
// dimension falls back to the default canvas.
func Fit(canvasW, canvasH float64, s Settings) PageLayout {
	if canvasW <= 0 || canvasH <= 0 {
		canvasW = DefaultCanvasWidth
		canvasH = DefaultCanvasHeight
	}
	pageW, pageH := s.PagePixels()
	availW := pageW - 2*Margin
	availH := pageH - 2*Margin
	scale := math.Min(availW/canvasW, availH/canvasH)
	return PageLayout{
		PageWidth:  pageW,
		PageHeight: pageH,
		Scale:      scale,
		OffsetX:    Margin + (availW-canvasW*scale)/2,
		OffsetY:    Margin + (availH-canvasH*scale)/2,
		Margin:     Margin,
	}
}
