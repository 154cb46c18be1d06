package render

import (
	"math"
	"strings"

	"github.com/sidsharmaji/PDF-Master-pro/model"
)

// Header cells get a light fill so split tables still read as tables on
// continuation pages even without explicit cell styling.
var headerFill = model.Color{R: 0.93, G: 0.93, B: 0.95}

// drawTable paints a table over its box. Column widths divide the
// element width equally across the first row's cell count, so extra
// cells in ragged later rows are not painted; row heights divide the
// element height equally. Cell text wraps to the column and clips to
// the row.
func drawTable(ctx *Context, tbl *model.Table) {
	rows, cols := tbl.RowCount(), tbl.ColCount()
	x, y, w, h := ctx.Box(tbl.BBox)
	if rows == 0 || cols == 0 || w <= 0 || h <= 0 {
		return
	}
	restore := ctx.Surface.SetOpacity(styleOpacity(tbl.Style))
	defer restore()
	ctx.Surface.Layer(x, y, w, h, tbl.Style.Rotation, func(s Surface) {
		colW := w / float64(cols)
		rowH := h / float64(rows)

		grid := model.Color{R: 0.7, G: 0.7, B: 0.7}
		if tbl.Style.BorderColor != nil {
			grid = *tbl.Style.BorderColor
		}

		for i, row := range tbl.Rows {
			for j := 0; j < cols && j < len(row); j++ {
				paintCell(ctx, s, row[j], x+float64(j)*colW, y+float64(i)*rowH, colW, rowH, grid)
			}
		}
	})
}

func cellPad(fontPx float64) float64 {
	return math.Max(2, fontPx*0.15)
}

// paintCell fills, outlines and fills in one cell. Headers paint bold
// over the header fill unless the cell styles say otherwise.
func paintCell(ctx *Context, s Surface, cell model.Cell, x, y, w, h float64, grid model.Color) {
	fill := colorOrNil(cell.Style.Fill)
	if fill == nil && cell.Header {
		fill = headerFill.NRGBA(1)
	}
	s.DrawRect(x, y, w, h, fill, grid.NRGBA(1), 1, model.BorderSolid)
	if strings.TrimSpace(cell.Text) == "" {
		return
	}

	fontPx := ctx.FontPixels(styleFontSize(cell.Style))
	face := ctx.faces().Face(cell.Style.Bold || cell.Header, cell.Style.Italic, fontPx)
	pad := cellPad(fontPx)
	maxW := w - 2*pad
	if maxW < 1 {
		return
	}
	ascent := float64(face.Metrics().Ascent) / 64
	fg := cell.Style.Color.NRGBA(1)
	baseline := y + pad + ascent
	for _, ln := range wrapText(face, cell.Text, maxW) {
		// Clip whole lines that would land past the row, never shrink.
		if baseline > y+h-1 {
			break
		}
		lx := x + pad
		switch cell.Style.Align {
		case model.AlignCenter:
			lx = x + (w-ln.width)/2
		case model.AlignRight:
			lx = x + w - pad - ln.width
		}
		s.DrawText(ln.text, face, lx, baseline, fg)
		baseline += fontPx * lineHeightFactor
	}
}
