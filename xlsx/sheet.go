package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sidsharmaji/PDF-Master-pro/layout"
	"github.com/sidsharmaji/PDF-Master-pro/model"
)

const (
	sheetTitleSize    = 14.0
	sheetTitleSpacing = 14.0
	tableSpacing      = 10.0
)

type blockBuilder struct {
	blocks   []layout.Block
	problems []model.Problem
	title    string
}

func (b *blockBuilder) add(block layout.Block) {
	b.blocks = append(b.blocks, block)
}

func (b *blockBuilder) problem(msg string, args ...any) {
	b.problems = append(b.problems, model.Problem{Message: fmt.Sprintf(msg, args...)})
}

// sheet emits one worksheet as a heading block carrying the sheet name
// followed by a table block. Sheets with no content produce nothing.
// Values come through excelize already formatted, and merged regions
// surface the way excelize reports them: the anchor cell carries the
// value and the rest of the region reads as empty cells, which keeps
// the grid rectangular.
func (b *blockBuilder) sheet(f *excelize.File, name string) {
	rows, err := f.GetRows(name)
	if err != nil {
		b.problem("reading sheet %q: %v", name, err)
		return
	}

	minRow, maxRow, minCol, maxCol := contentBounds(rows)
	if maxRow < 0 {
		return
	}

	if b.title == "" {
		b.title = name
	}
	b.add(layout.Block{
		Text:       sheetTitle(name),
		PageBreak:  true,
		SpaceAfter: sheetTitleSpacing,
	})

	// The window is rectangular even though excelize trims trailing
	// empty cells per row, so ragged rows pad out with empty cells.
	tbl := &model.Table{Rows: make([][]model.Cell, 0, maxRow-minRow+1)}
	for _, row := range rows[minRow : maxRow+1] {
		cells := make([]model.Cell, maxCol-minCol+1)
		for j := range cells {
			cells[j] = model.Cell{Style: model.DefaultStyle(), Header: len(tbl.Rows) == 0}
			if c := minCol + j; c < len(row) {
				cells[j].Text = row[c]
			}
		}
		tbl.Rows = append(tbl.Rows, cells)
	}
	b.add(layout.Block{Table: tbl, SpaceAfter: tableSpacing})
}

// contentBounds finds the rectangle spanned by non-blank cells, so
// empty margin rows and columns around the data do not render. maxRow
// is -1 when the sheet has no content at all. Empty rows inside the
// rectangle are kept; they separate data regions on the sheet.
func contentBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	maxRow, maxCol = -1, -1
	for i, row := range rows {
		for j, v := range row {
			if strings.TrimSpace(v) == "" {
				continue
			}
			if maxRow < 0 {
				minRow, minCol = i, j
			}
			maxRow = i
			minCol = min(minCol, j)
			maxCol = max(maxCol, j)
		}
	}
	return minRow, maxRow, minCol, maxCol
}

// sheetTitle builds the bold heading that precedes each sheet's table.
func sheetTitle(name string) *model.Text {
	st := model.DefaultStyle()
	st.Bold = true
	st.FontSize = sheetTitleSize
	return &model.Text{
		Runs:  []model.Run{{Text: name, Style: st}},
		Style: st,
	}
}
