package layout

// PageSize selects the physical dimensions of the output page.
type PageSize int

const (
	PageA4 PageSize = iota
	PageLetter
	PageLegal
	PageA3
	PageTabloid
)

// String returns the page size name.
func (p PageSize) String() string {
	switch p {
	case PageA4:
		return "A4"
	case PageLetter:
		return "Letter"
	case PageLegal:
		return "Legal"
	case PageA3:
		return "A3"
	case PageTabloid:
		return "Tabloid"
	default:
		return "Unknown"
	}
}

// pageSizePoints holds the portrait dimensions of each size class in PDF
// points (1/72 inch).
var pageSizePoints = map[PageSize][2]float64{
	PageA4:      {595.28, 841.89},
	PageLetter:  {612, 792},
	PageLegal:   {612, 1008},
	PageA3:      {841.89, 1190.55},
	PageTabloid: {792, 1224},
}

// Points returns the portrait page dimensions in PDF points. Unknown
// values fall back to A4.
func (p PageSize) Points() (w, h float64) {
	d, ok := pageSizePoints[p]
	if !ok {
		d = pageSizePoints[PageA4]
	}
	return d[0], d[1]
}

// Pixels returns the portrait page dimensions in normalized pixels at
// 96 DPI.
func (p PageSize) Pixels() (w, h float64) {
	pw, ph := p.Points()
	return pw * 96 / 72, ph * 96 / 72
}

// Settings selects the output page geometry for one conversion run. The
// zero value is portrait A4.
type Settings struct {
	Size      PageSize
	Landscape bool
}

// PagePixels returns the output page dimensions in normalized pixels with
// the orientation applied. A landscape request swaps the base dimensions
// before any layout computation, never after.
func (s Settings) PagePixels() (w, h float64) {
	w, h = s.Size.Pixels()
	if s.Landscape {
		w, h = h, w
	}
	return w, h
}

// PagePoints returns the output page dimensions in PDF points with the
// orientation applied.
func (s Settings) PagePoints() (w, h float64) {
	w, h = s.Size.Points()
	if s.Landscape {
		w, h = h, w
	}
	return w, h
}
