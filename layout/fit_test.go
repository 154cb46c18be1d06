package layout

import (
	"math"
	"testing"
)

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestFit_UniformScale(t *testing.T) {
	pl := Fit(1280, 720, Settings{Size: PageA4})

	pageW, pageH := Settings{Size: PageA4}.PagePixels()
	if !closeTo(pl.PageWidth, pageW) || !closeTo(pl.PageHeight, pageH) {
		t.Errorf("page = %gx%g, want %gx%g", pl.PageWidth, pl.PageHeight, pageW, pageH)
	}

	// A 16:9 canvas on portrait A4 is width-bound.
	want := (pageW - 2*Margin) / 1280
	if !closeTo(pl.Scale, want) {
		t.Errorf("Scale = %g, want %g", pl.Scale, want)
	}
	if !closeTo(pl.OffsetX, Margin) {
		t.Errorf("OffsetX = %g, want %g", pl.OffsetX, float64(Margin))
	}
}

func TestFit_CentersSlackAxis(t *testing.T) {
	pl := Fit(1280, 720, Settings{Size: PageA4})

	_, pageH := Settings{Size: PageA4}.PagePixels()
	availH := pageH - 2*Margin
	wantOffY := Margin + (availH-720*pl.Scale)/2
	if !closeTo(pl.OffsetY, wantOffY) {
		t.Errorf("OffsetY = %g, want %g", pl.OffsetY, wantOffY)
	}

	// Leftover space below equals leftover space above.
	below := pl.PageHeight - Margin - (pl.OffsetY + 720*pl.Scale - Margin) - Margin
	above := pl.OffsetY - Margin
	if !closeTo(below, above) {
		t.Errorf("vertical slack not split evenly: above %g below %g", above, below)
	}
}

func TestFit_LandscapeSwapsBeforeComputing(t *testing.T) {
	pl := Fit(1280, 720, Settings{Size: PageLetter, Landscape: true})

	if !closeTo(pl.PageWidth, 1056) || !closeTo(pl.PageHeight, 816) {
		t.Errorf("page = %gx%g, want 1056x816", pl.PageWidth, pl.PageHeight)
	}
	want := math.Min((1056-2*Margin)/1280, (816-2*Margin)/720)
	if !closeTo(pl.Scale, want) {
		t.Errorf("Scale = %g, want %g", pl.Scale, want)
	}
}

func TestFit_ZeroCanvasFallsBack(t *testing.T) {
	got := Fit(0, 0, Settings{Size: PageA4})
	want := Fit(DefaultCanvasWidth, DefaultCanvasHeight, Settings{Size: PageA4})

	if got != want {
		t.Errorf("Fit(0,0) = %+v, want %+v", got, want)
	}
}

func TestFit_NeverStretches(t *testing.T) {
	// A square canvas must stay square regardless of page aspect.
	pl := Fit(500, 500, Settings{Size: PageLegal})

	w := 500 * pl.Scale
	h := 500 * pl.Scale
	if !closeTo(w, h) {
		t.Errorf("scaled canvas %gx%g is not square", w, h)
	}
	if w > pl.PageWidth-2*Margin+1e-6 || h > pl.PageHeight-2*Margin+1e-6 {
		t.Errorf("scaled canvas %gx%g exceeds content box", w, h)
	}
}

func TestPageLayoutPlace(t *testing.T) {
	pl := Fit(1280, 720, Settings{Size: PageA4})

	x, y := pl.Place(0, 0)
	if !closeTo(x, pl.OffsetX) || !closeTo(y, pl.OffsetY) {
		t.Errorf("Place(0,0) = (%g,%g), want (%g,%g)", x, y, pl.OffsetX, pl.OffsetY)
	}

	x, y = pl.Place(100, 50)
	if !closeTo(x, pl.OffsetX+100*pl.Scale) || !closeTo(y, pl.OffsetY+50*pl.Scale) {
		t.Errorf("Place(100,50) = (%g,%g)", x, y)
	}
}
