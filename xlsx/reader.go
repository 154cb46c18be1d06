// Package xlsx reads Excel workbooks (XLSX) into the page model.
//
// Cell access goes through excelize, which resolves shared strings,
// number formats and merged regions. Each worksheet is emitted as a
// heading block carrying the sheet name followed by a single table
// block; layout.Paginate packs those onto pages, splitting long sheets
// at row boundaries:
//
//	r, err := xlsx.Open("ledger.xlsx")
//	doc, problems, err := r.Document(layout.Settings{Size: layout.PageA4})
package xlsx

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sidsharmaji/PDF-Master-pro/layout"
	"github.com/sidsharmaji/PDF-Master-pro/model"
)

// Options control which sheets are extracted.
type Options struct {
	// IncludeHidden keeps sheets whose visibility is off. Hidden
	// sheets are skipped by default, matching what a user sees when
	// the workbook is open.
	IncludeHidden bool
}

// Reader provides access to XLSX workbook content.
type Reader struct {
	file *excelize.File
	opts Options
}

// Open opens an XLSX workbook from a file.
func Open(filename string) (*Reader, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	return &Reader{file: f}, nil
}

// New opens an XLSX workbook held in memory with default options.
func New(data []byte) (*Reader, error) {
	return NewWithOptions(data, Options{})
}

// NewWithOptions opens an in-memory workbook.
func NewWithOptions(data []byte, opts Options) (*Reader, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	return &Reader{file: f, opts: opts}, nil
}

// Close releases resources associated with the Reader. Large workbooks
// spill to temporary files, so callers should always close.
func (r *Reader) Close() error {
	return r.file.Close()
}

// SheetNames returns the names of the sheets that extraction will
// visit, in workbook order.
func (r *Reader) SheetNames() []string {
	var names []string
	for _, name := range r.file.GetSheetList() {
		if !r.opts.IncludeHidden && !r.visible(name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

// visible reports whether a sheet is shown in the workbook's tab bar.
// Lookup errors count as visible so an odd workbook loses nothing.
func (r *Reader) visible(name string) bool {
	v, err := r.file.GetSheetVisible(name)
	if err != nil {
		return true
	}
	return v
}

// Metadata returns workbook metadata from the document properties.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{}
	if props, err := r.file.GetDocProps(); err == nil && props != nil {
		meta.Title = props.Title
		meta.Author = props.Creator
		meta.Subject = props.Subject
		meta.Keywords = props.Keywords
		meta.Created = parseW3CDTF(props.Created)
		meta.Modified = parseW3CDTF(props.Modified)
	}
	if app, err := r.file.GetAppProps(); err == nil && app != nil {
		meta.Application = app.Application
	}
	return meta
}

// Blocks returns the workbook content as ordered flow blocks ready for
// layout.Paginate. Problems report sheets that could not be read; the
// remaining sheets are still returned.
func (r *Reader) Blocks() ([]layout.Block, []model.Problem, error) {
	b := r.build()
	return b.blocks, b.problems, nil
}

// Document paginates the sheet tables onto the given page settings and
// attaches the workbook metadata. The title falls back to the first
// extracted sheet name when the document properties carry none.
func (r *Reader) Document(s layout.Settings) (*model.Document, []model.Problem, error) {
	b := r.build()
	doc := layout.Paginate(b.blocks, s)

	meta := r.Metadata()
	meta.CanvasWidth = doc.Metadata.CanvasWidth
	meta.CanvasHeight = doc.Metadata.CanvasHeight
	meta.PageCount = doc.Metadata.PageCount
	if meta.Title == "" {
		meta.Title = b.title
	}
	doc.Metadata = meta
	return doc, b.problems, nil
}

func (r *Reader) build() *blockBuilder {
	b := &blockBuilder{}
	for _, name := range r.file.GetSheetList() {
		if !r.opts.IncludeHidden && !r.visible(name) {
			continue
		}
		b.sheet(r.file, name)
	}
	return b
}

// parseW3CDTF parses the date format used by OOXML core properties.
func parseW3CDTF(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, pattern := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(pattern, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
