package model

import "strings"

// Table represents a table element: ordered rows of styled cells. Rows may
// be ragged; rendering divides the element width across the first row's
// cell count and does not paint extra cells in later rows.
type Table struct {
	Rows   [][]Cell
	BBox   BBox
	Style  Style
	ZOrder int
}

func (t *Table) Type() ElementType { return ElementTypeTable }
func (t *Table) BoundingBox() BBox { return t.BBox }
func (t *Table) ZIndex() int       { return t.ZOrder }

// GetText returns the table content as tab-separated rows
func (t *Table) GetText() string {
	var sb strings.Builder
	for i, row := range t.Rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, cell := range row {
			if j > 0 {
				sb.WriteString("\t")
			}
			sb.WriteString(cell.Text)
		}
	}
	return sb.String()
}

// NewTable creates a table with the given dimensions, all cells empty
func NewTable(rows, cols int) *Table {
	table := &Table{
		Rows: make([][]Cell, rows),
	}
	for i := 0; i < rows; i++ {
		table.Rows[i] = make([]Cell, cols)
	}
	return table
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the first row, which is the
// column count used for layout.
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// GetCell returns the cell at the given row and column (0-indexed), or nil
// when out of range.
func (t *Table) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// Cell represents a single table cell
type Cell struct {
	Text   string
	Style  Style
	Header bool
}
