package layout

import "testing"

func TestPageSizePoints(t *testing.T) {
	tests := []struct {
		size PageSize
		w, h float64
	}{
		{PageA4, 595.28, 841.89},
		{PageLetter, 612, 792},
		{PageLegal, 612, 1008},
		{PageA3, 841.89, 1190.55},
		{PageTabloid, 792, 1224},
		{PageSize(99), 595.28, 841.89}, // unknown falls back to A4
	}

	for _, tt := range tests {
		w, h := tt.size.Points()
		if !closeTo(w, tt.w) || !closeTo(h, tt.h) {
			t.Errorf("%v.Points() = %gx%g, want %gx%g", tt.size, w, h, tt.w, tt.h)
		}
	}
}

func TestPageSizePixels(t *testing.T) {
	w, h := PageLetter.Pixels()
	if !closeTo(w, 816) || !closeTo(h, 1056) {
		t.Errorf("Letter pixels = %gx%g, want 816x1056", w, h)
	}

	// Pixels are points scaled by 96/72.
	pw, ph := PageA3.Points()
	w, h = PageA3.Pixels()
	if !closeTo(w, pw*96/72) || !closeTo(h, ph*96/72) {
		t.Errorf("A3 pixels = %gx%g, want %gx%g", w, h, pw*96/72, ph*96/72)
	}
}

func TestSettingsOrientation(t *testing.T) {
	portrait := Settings{Size: PageLetter}
	landscape := Settings{Size: PageLetter, Landscape: true}

	pw, ph := portrait.PagePixels()
	lw, lh := landscape.PagePixels()
	if !closeTo(pw, lh) || !closeTo(ph, lw) {
		t.Errorf("landscape %gx%g is not the swap of portrait %gx%g", lw, lh, pw, ph)
	}

	ptw, pth := landscape.PagePoints()
	if !closeTo(ptw, 792) || !closeTo(pth, 612) {
		t.Errorf("landscape Letter points = %gx%g, want 792x612", ptw, pth)
	}
}

func TestPageSizeString(t *testing.T) {
	if PageA4.String() != "A4" {
		t.Errorf("PageA4.String() = %q", PageA4.String())
	}
	if PageTabloid.String() != "Tabloid" {
		t.Errorf("PageTabloid.String() = %q", PageTabloid.String())
	}
	if PageSize(99).String() != "Unknown" {
		t.Errorf("PageSize(99).String() = %q", PageSize(99).String())
	}
}
