package htmldoc

import (
	"golang.org/x/net/html"

	"github.com/sidsharmaji/PDF-Master-pro/layout"
	"github.com/sidsharmaji/PDF-Master-pro/model"
)

// table converts a table element into a table block. A caption becomes an
// italic paragraph above the table.
func (b *blockBuilder) table(n *html.Node) {
	if caption := findChild(n, "caption"); caption != nil {
		style := model.DefaultStyle()
		style.Italic = true
		b.paragraph(caption, style, 0, 0, listItemSpacing)
	}

	t := tableElement(n)
	if t == nil {
		return
	}
	b.add(layout.Block{Table: t, SpaceAfter: paraSpacing})
}

// openSpan tracks a rowspan continuing into following rows at one grid
// column.
type openSpan struct {
	rows   int
	style  model.Style
	header bool
}

// tableElement builds the cell grid. Column and row spans are flattened
// into empty spacer cells so every row lines up with the first row's
// column count, which is what the renderer divides the width by.
func tableElement(n *html.Node) *model.Table {
	t := &model.Table{}
	var spans []openSpan

	addRows := func(container *html.Node, header bool) {
		for c := container.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || c.Data != "tr" {
				continue
			}
			if row := tableRow(c, header, &spans); len(row) > 0 {
				t.Rows = append(t.Rows, row)
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead":
			addRows(c, true)
		case "tbody", "tfoot":
			addRows(c, false)
		case "tr":
			if row := tableRow(c, false, &spans); len(row) > 0 {
				t.Rows = append(t.Rows, row)
			}
		}
	}

	if len(t.Rows) == 0 {
		return nil
	}
	return t
}

// tableRow builds one row, first yielding grid positions claimed by
// rowspans from earlier rows, then laying down this row's cells.
func tableRow(tr *html.Node, header bool, spans *[]openSpan) []model.Cell {
	var row []model.Cell
	col := 0

	claim := func() {
		for col < len(*spans) && (*spans)[col].rows > 0 {
			(*spans)[col].rows--
			row = append(row, model.Cell{Style: (*spans)[col].style, Header: (*spans)[col].header})
			col++
		}
	}

	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		claim()

		cell := model.Cell{
			Text:   normalizeText(textContent(c)),
			Style:  model.DefaultStyle(),
			Header: header || c.Data == "th",
		}
		colSpan := intAttr(c, "colspan", 1)
		rowSpan := intAttr(c, "rowspan", 1)

		for len(*spans) < col+colSpan {
			*spans = append(*spans, openSpan{})
		}
		for i := 0; i < colSpan; i++ {
			out := cell
			if i > 0 {
				out.Text = ""
			}
			row = append(row, out)
			if rowSpan > 1 {
				(*spans)[col] = openSpan{rows: rowSpan - 1, style: cell.Style, header: cell.Header}
			}
			col++
		}
	}
	claim()
	return row
}

// findChild returns the first direct child element with the given name.
func findChild(n *html.Node, tagName string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tagName {
			return c
		}
	}
	return nil
}
