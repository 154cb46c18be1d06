package layout

import (
	"strings"

	"github.com/sidsharmaji/PDF-Master-pro/model"
)

// Block is one unit of flow content: a paragraph, an image, or a table in
// document order. Exactly one of Text, Image and Table is set. Bounding
// boxes are assigned during pagination, so blocks are consumed by
// [Paginate] and must not be reused.
type Block struct {
	Text  *model.Text
	Image *model.Image
	Table *model.Table

	// SpaceBefore and SpaceAfter are vertical gaps around the block in
	// pixels. SpaceBefore is suppressed at the top of a page.
	SpaceBefore float64
	SpaceAfter  float64

	// Indent shifts the block right from the content edge, in pixels.
	Indent float64

	// PageBreak forces the block onto a new page.
	PageBreak bool
}

// Flow height estimation constants. The painter wraps text with real font
// measurements and clips to the assigned box, so the estimate only has to
// be close enough to pick sensible break points.
const (
	lineHeightFactor = 1.35
	avgGlyphFactor   = 0.5
	cellPadding      = 4.0
	minRowHeight     = 22.0

	// defaultImageWidth and defaultImageHeight size an image block whose
	// intrinsic dimensions are unknown.
	defaultImageWidth  = 320
	defaultImageHeight = 240
)

// Paginate packs blocks top to bottom into as many output pages as they
// need. A block that does not fit in the remaining space starts a new
// page. A table taller than the space left splits at a row boundary and
// continues on following pages, repeating a leading header row; any other
// block taller than a whole page is clipped to one. The returned
// document's canvas is the content box of the chosen page size, so fitting
// it back onto the same settings yields scale 1. Zero blocks still produce
// a single blank page.
func Paginate(blocks []Block, s Settings) *model.Document {
	pageW, pageH := s.PagePixels()
	availW := pageW - 2*Margin
	availH := pageH - 2*Margin

	doc := model.NewDocument()
	doc.Metadata.CanvasWidth = availW
	doc.Metadata.CanvasHeight = availH

	page := &model.Page{}
	y := 0.0
	z := 0
	flush := func() {
		doc.AddPage(page)
		page = &model.Page{}
		y = 0
		z = 0
	}

	queue := blocks
	for qi := 0; qi < len(queue); qi++ {
		b := &queue[qi]
		if b.Text == nil && b.Image == nil && b.Table == nil {
			continue
		}
		if b.PageBreak && len(page.Elements) > 0 {
			flush()
		}

		indent := b.Indent
		if indent < 0 || indent > availW-1 {
			indent = 0
		}
		maxW := availW - indent

		var w, h float64
		switch {
		case b.Text != nil:
			w = maxW
			h = textHeight(b.Text, maxW)
		case b.Image != nil:
			w, h = imageSize(b.Image, maxW, availH)
		case b.Table != nil:
			w = maxW
			h = tableHeight(b.Table, maxW)
		}

		space := b.SpaceBefore
		if len(page.Elements) == 0 {
			space = 0
		}

		if b.Table != nil && h > availH-y-space {
			remaining := availH - y - space
			head, tail := splitTable(b.Table, w, remaining)
			accept := tail != nil
			if accept && len(page.Elements) > 0 && (len(head.Rows) < 2 || tableHeight(head, w) > remaining) {
				// A cramped cut mid-page; retry on a fresh page instead.
				accept = false
			}
			if !accept && len(page.Elements) > 0 {
				flush()
				space = 0
				head, tail = splitTable(b.Table, w, availH)
				accept = tail != nil
			}
			if accept {
				b.Table = head
				rest := Block{Table: tail, Indent: b.Indent, SpaceAfter: b.SpaceAfter}
				b.SpaceAfter = 0
				queue = append(queue[:qi+1], append([]Block{rest}, queue[qi+1:]...)...)
				b = &queue[qi]
				h = tableHeight(head, w)
			}
		}

		if len(page.Elements) > 0 && y+space+h > availH {
			flush()
			space = 0
		}
		y += space
		if h > availH {
			h = availH
		}

		box := model.NewBBox(indent, y, w, h)
		switch {
		case b.Text != nil:
			b.Text.BBox = box
			b.Text.ZOrder = z
			page.AddElement(b.Text)
		case b.Image != nil:
			b.Image.BBox = box
			b.Image.ZOrder = z
			page.AddElement(b.Image)
		case b.Table != nil:
			b.Table.BBox = box
			b.Table.ZOrder = z
			page.AddElement(b.Table)
		}
		y += h + b.SpaceAfter
		z++
	}

	if len(page.Elements) > 0 || doc.PageCount() == 0 {
		doc.AddPage(page)
	}
	doc.Metadata.PageCount = doc.PageCount()
	return doc
}

// textHeight estimates the painted height of a paragraph wrapped to the
// given width.
func textHeight(t *model.Text, width float64) float64 {
	size := t.Style.FontSize
	for _, r := range t.Runs {
		if r.Style.FontSize > size {
			size = r.Style.FontSize
		}
	}
	if size <= 0 {
		size = model.DefaultStyle().FontSize
	}
	fontPx := size * 96 / 72
	lines := 0
	for _, hard := range strings.Split(t.GetText(), "\n") {
		lines += estimateLines(hard, width, fontPx)
	}
	if lines < 1 {
		lines = 1
	}
	return float64(lines) * fontPx * lineHeightFactor
}

// estimateLines predicts how many wrapped lines a single hard line of text
// occupies at the given width, using an average glyph width.
func estimateLines(text string, width, fontPx float64) int {
	capacity := int(width / (fontPx * avgGlyphFactor))
	if capacity < 1 {
		capacity = 1
	}
	n := len([]rune(text))
	if n == 0 {
		return 1
	}
	return (n + capacity - 1) / capacity
}

// imageSize scales an image block's intrinsic dimensions down to the
// available box, preserving aspect ratio. Images are never scaled up.
func imageSize(img *model.Image, maxW, maxH float64) (w, h float64) {
	w, h = img.BBox.Width, img.BBox.Height
	if w <= 0 || h <= 0 {
		w, h = defaultImageWidth, defaultImageHeight
	}
	if w > maxW {
		h *= maxW / w
		w = maxW
	}
	if h > maxH {
		w *= maxH / h
		h = maxH
	}
	return w, h
}

// tableHeight estimates the painted height of a table at the given width.
// The column count follows the first row, matching the painter.
func tableHeight(tbl *model.Table, width float64) float64 {
	cols := tbl.ColCount()
	if cols == 0 {
		return 0
	}
	colW := width / float64(cols)
	total := 0.0
	for _, row := range tbl.Rows {
		total += rowHeight(row, cols, colW)
	}
	return total
}

// rowHeight estimates one row as the tallest of its cell contents.
func rowHeight(row []model.Cell, cols int, colW float64) float64 {
	rowH := minRowHeight
	for i, cell := range row {
		if i >= cols {
			break
		}
		size := cell.Style.FontSize
		if size <= 0 {
			size = model.DefaultStyle().FontSize
		}
		fontPx := size * 96 / 72
		lines := 0
		for _, hard := range strings.Split(cell.Text, "\n") {
			lines += estimateLines(hard, colW-2*cellPadding, fontPx)
		}
		h := float64(lines)*fontPx*lineHeightFactor + 2*cellPadding
		if h > rowH {
			rowH = h
		}
	}
	return rowH
}

// splitTable breaks a table at a row boundary so the head fits maxH. When
// the first row is a header row it is repeated at the top of the tail, and
// the head always keeps at least one data row below it so a bare header is
// never left dangling. A nil tail means the whole table fits.
func splitTable(tbl *model.Table, width, maxH float64) (head, tail *model.Table) {
	cols := tbl.ColCount()
	if cols == 0 || len(tbl.Rows) < 2 {
		return tbl, nil
	}
	colW := width / float64(cols)
	repeat := headerRow(tbl.Rows[0])

	total := 0.0
	cut := 0
	for i, row := range tbl.Rows {
		h := rowHeight(row, cols, colW)
		if i > 0 && total+h > maxH {
			break
		}
		total += h
		cut = i + 1
	}
	if repeat && cut < 2 {
		cut = 2
	}
	if cut >= len(tbl.Rows) {
		return tbl, nil
	}

	head = &model.Table{Rows: tbl.Rows[:cut], Style: tbl.Style}
	tailRows := tbl.Rows[cut:]
	if repeat {
		tailRows = append([][]model.Cell{tbl.Rows[0]}, tailRows...)
	}
	return head, &model.Table{Rows: tailRows, Style: tbl.Style}
}

// headerRow reports whether every cell in the row is a header cell.
func headerRow(row []model.Cell) bool {
	for _, cell := range row {
		if !cell.Header {
			return false
		}
	}
	return len(row) > 0
}
