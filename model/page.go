package model

import "strings"

// Page represents a single page or slide. Elements are kept in extraction
// order; callers that need paint order use SortByZ.
type Page struct {
	Number     int    // 1-indexed, assigned by Document.AddPage
	ID         string // source identifier (slide id or entry name)
	Title      string
	Layout     string // source layout kind, if any
	Background *Color // nil means the default page background
	Elements   []Element
	Notes      string
	Hidden     bool
}

// NewPage creates a new empty page
func NewPage() *Page {
	return &Page{
		Elements: make([]Element, 0),
	}
}

// AddElement appends an element to the page
func (p *Page) AddElement(elem Element) {
	p.Elements = append(p.Elements, elem)
}

// ExtractText concatenates the text of all text-bearing elements in
// extraction order, one element per line.
func (p *Page) ExtractText() string {
	var sb strings.Builder
	for _, elem := range p.Elements {
		te, ok := elem.(TextElement)
		if !ok {
			continue
		}
		t := strings.TrimRight(te.GetText(), "\n")
		if t == "" {
			continue
		}
		sb.WriteString(t)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ExtractTables returns all table elements on the page
func (p *Page) ExtractTables() []*Table {
	var tables []*Table
	for _, elem := range p.Elements {
		if table, ok := elem.(*Table); ok {
			tables = append(tables, table)
		}
	}
	return tables
}
