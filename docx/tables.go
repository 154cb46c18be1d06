package docx

import (
	"strconv"
	"strings"

	"github.com/sidsharmaji/PDF-Master-pro/model"
)

// tableElement converts a parsed table into a model table. The grid is
// kept rectangular for the renderer: a gridSpan repeats as empty spacer
// cells after the spanning one, and a vertical-merge continuation stays
// in place as an empty cell, so column positions line up across rows.
func tableElement(tbl *tableXML, styles *StyleResolver) *model.Table {
	if len(tbl.Rows) == 0 {
		return nil
	}
	t := &model.Table{}
	for _, row := range tbl.Rows {
		header := row.Properties.Header.on()
		var cells []model.Cell
		for _, tc := range row.Cells {
			cell := tableCell(tc, styles, header)
			cells = append(cells, cell)
			for i := 1; i < cellSpan(tc); i++ {
				cells = append(cells, model.Cell{Style: cell.Style, Header: header})
			}
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// cellSpan returns the gridSpan of a cell, at least 1.
func cellSpan(tc tableCellXML) int {
	n, err := strconv.Atoi(tc.Properties.GridSpan.Val)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// tableCell converts one cell. The first paragraph's style carries the
// cell formatting; further paragraphs contribute text only.
func tableCell(tc tableCellXML, styles *StyleResolver, header bool) model.Cell {
	cell := model.Cell{Header: header, Style: styles.defaults.style}

	var parts []string
	for i := range tc.Paragraphs {
		p := &tc.Paragraphs[i]
		if i == 0 {
			rs := styles.Resolve(p.Properties.Style.Val)
			if a, ok := alignment(p.Properties.Justification.Val); ok {
				rs.style.Align = a
			}
			cell.Style = rs.style
		}
		if text := paragraphText(p); text != "" {
			parts = append(parts, text)
		}
	}
	cell.Text = strings.TrimSpace(strings.Join(parts, "\n"))

	if c, ok := model.ParseColor(tc.Properties.Shading.Fill); ok {
		cell.Style.Fill = &c
	}
	switch tc.Properties.VAlign.Val {
	case "center":
		cell.Style.VAlign = model.VAlignMiddle
	case "bottom":
		cell.Style.VAlign = model.VAlignBottom
	}
	return cell
}
