package model

import (
	"strings"
	"time"
)

// Document represents one extracted input file: metadata plus pages in
// source order.
type Document struct {
	Metadata Metadata
	Pages    []*Page
}

// Problem records a non-fatal issue encountered while building or
// rendering a Document. Readers and painters accumulate Problems
// instead of failing; the affected element is dropped or replaced by
// a placeholder and the rest of the document proceeds.
type Problem struct {
	Page    int // 1-indexed page number, 0 for document-level issues
	Message string
}

// Metadata contains document-level information. CanvasWidth and
// CanvasHeight are the source canvas dimensions in normalized pixels;
// PageCount is the page/slide count the source declares, which may exceed
// len(Document.Pages) only when trailing pages were unreadable.
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Keywords     string
	Application  string
	Created      time.Time
	Modified     time.Time
	CanvasWidth  float64
	CanvasHeight float64
	PageCount    int
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Pages: make([]*Page, 0),
	}
}

// AddPage appends a page and assigns its 1-indexed number
func (d *Document) AddPage(page *Page) {
	page.Number = len(d.Pages) + 1
	d.Pages = append(d.Pages, page)
}

// GetPage returns a page by number (1-indexed)
func (d *Document) GetPage(number int) *Page {
	if number < 1 || number > len(d.Pages) {
		return nil
	}
	return d.Pages[number-1]
}

// PageCount returns the number of assembled pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// VisiblePages returns the pages to render. Hidden pages are excluded
// unless includeHidden is set.
func (d *Document) VisiblePages(includeHidden bool) []*Page {
	if includeHidden {
		return d.Pages
	}
	pages := make([]*Page, 0, len(d.Pages))
	for _, p := range d.Pages {
		if !p.Hidden {
			pages = append(pages, p)
		}
	}
	return pages
}

// ExtractText returns all text content concatenated, pages separated by
// blank lines.
func (d *Document) ExtractText() string {
	var sb strings.Builder
	for i, page := range d.Pages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(page.ExtractText())
	}
	return sb.String()
}

// ExtractTables returns all tables from all pages
func (d *Document) ExtractTables() []*Table {
	var tables []*Table
	for _, page := range d.Pages {
		tables = append(tables, page.ExtractTables()...)
	}
	return tables
}
