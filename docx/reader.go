// Package docx reads Word documents (DOCX) into the page model.
//
// The reader parses word/document.xml with typed structures, resolves
// paragraph and run formatting through the style inheritance chains in
// word/styles.xml, and emits the body as ordered flow blocks. Pagination
// onto output pages is the layout package's job:
//
//	r, err := docx.Open("report.docx")
//	doc, problems, err := r.Document(layout.Settings{Size: layout.PageA4})
//
// Word documents do not store page boundaries, so page breaks come from
// explicit breaks and from packing blocks into the chosen page height.
package docx

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sidsharmaji/PDF-Master-pro/format"
	"github.com/sidsharmaji/PDF-Master-pro/layout"
	"github.com/sidsharmaji/PDF-Master-pro/model"
	"github.com/sidsharmaji/PDF-Master-pro/opc"
)

// Word's default Letter page, in pixels at 96 DPI.
const (
	defaultPageWidth  = 816
	defaultPageHeight = 1056
)

// Reader reads a DOCX package.
type Reader struct {
	pkg       *opc.Container
	doc       *documentXML
	rels      *relationshipsXML
	styles    *StyleResolver
	numbering *NumberingResolver
	coreProps *corePropertiesXML
	appProps  *appPropertiesXML
}

// Open opens a DOCX document from a file.
func Open(filename string) (*Reader, error) {
	pkg, err := opc.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening package: %w", err)
	}
	return newReader(pkg)
}

// New opens a DOCX document held in memory.
func New(data []byte) (*Reader, error) {
	pkg, err := opc.New(data)
	if err != nil {
		return nil, fmt.Errorf("opening package: %w", err)
	}
	return newReader(pkg)
}

func newReader(pkg *opc.Container) (*Reader, error) {
	r := &Reader{pkg: pkg}

	if err := r.validate(); err != nil {
		return nil, err
	}

	var doc documentXML
	if err := r.readXML("word/document.xml", &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	r.doc = &doc

	// Everything else is optional; absence falls back to defaults.
	r.parseRelationships()
	r.parseStyles()
	r.parseNumbering()
	r.parseCoreProperties()
	r.parseAppProperties()

	return r, nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}
	for _, name := range required {
		if !r.pkg.Has(name) {
			return fmt.Errorf("missing required file: %s", name)
		}
	}
	return nil
}

// readXML reads and unmarshals an XML part from the package.
func (r *Reader) readXML(name string, v any) error {
	data, err := r.pkg.ReadBytes(name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

func (r *Reader) parseRelationships() {
	r.rels = &relationshipsXML{}
	var rels relationshipsXML
	if err := r.readXML("word/_rels/document.xml.rels", &rels); err == nil {
		r.rels = &rels
	}
}

func (r *Reader) parseStyles() {
	var styles *stylesXML
	var parsed stylesXML
	if err := r.readXML("word/styles.xml", &parsed); err == nil {
		styles = &parsed
	}
	r.styles = NewStyleResolver(styles)
}

func (r *Reader) parseNumbering() {
	var numbering *numberingXML
	var parsed numberingXML
	if err := r.readXML("word/numbering.xml", &parsed); err == nil {
		numbering = &parsed
	}
	r.numbering = NewNumberingResolver(numbering)
}

func (r *Reader) parseCoreProperties() {
	var props corePropertiesXML
	if err := r.readXML("docProps/core.xml", &props); err == nil {
		r.coreProps = &props
	}
}

func (r *Reader) parseAppProperties() {
	var props appPropertiesXML
	if err := r.readXML("docProps/app.xml", &props); err == nil {
		r.appProps = &props
	}
}

// relTarget resolves a relationship id to a package part name.
func (r *Reader) relTarget(id string) string {
	for _, rel := range r.rels.Relationships {
		if rel.ID == id {
			return opc.Resolve("word", rel.Target)
		}
	}
	return ""
}

// PageSize returns the document's own page dimensions in pixels, derived
// from the final section properties. Word's Letter default applies when
// the section does not declare a size.
func (r *Reader) PageSize() (w, h float64) {
	w, h = defaultPageWidth, defaultPageHeight
	sect := r.doc.Body.SectPr
	if sect == nil {
		return w, h
	}
	if v, ok := parseTwips(sect.PgSz.W); ok && v > 0 {
		w = v
	}
	if v, ok := parseTwips(sect.PgSz.H); ok && v > 0 {
		h = v
	}
	return w, h
}

// Metadata returns the document metadata. The canvas reflects the
// document's own page size; pagination replaces it with the output
// content box.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{}
	if r.coreProps != nil {
		meta.Title = r.coreProps.Title
		meta.Author = r.coreProps.Creator
		meta.Subject = r.coreProps.Subject
		meta.Keywords = r.coreProps.Keywords
		meta.Created = parseW3CDTF(r.coreProps.Created)
		meta.Modified = parseW3CDTF(r.coreProps.Modified)
	}
	if r.appProps != nil {
		meta.Application = r.appProps.Application
		meta.PageCount = r.appProps.Pages
	}
	meta.CanvasWidth, meta.CanvasHeight = r.PageSize()
	return meta
}

// Blocks returns the document body as ordered flow blocks ready for
// layout.Paginate. Problems report content that could not be fully
// loaded; the affected element is kept as a placeholder.
func (r *Reader) Blocks() ([]layout.Block, []model.Problem, error) {
	b := r.build()
	return b.blocks, b.problems, nil
}

// Document paginates the flow content onto the given page settings and
// attaches the document metadata. The title falls back to the first
// top-level heading when the core properties carry none.
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
	r.numbering.Reset()
	b := &blockBuilder{reader: r}
	for _, item := range r.doc.Body.Items {
		switch {
		case item.Paragraph != nil:
			b.paragraph(item.Paragraph)
		case item.Table != nil:
			b.table(item.Table)
		}
	}
	return b
}

// blockBuilder accumulates flow blocks in document order.
type blockBuilder struct {
	reader   *Reader
	blocks   []layout.Block
	problems []model.Problem
	title    string

	// pageBreak carries a trailing explicit break to the next block.
	pageBreak bool
}

func (b *blockBuilder) add(block layout.Block) {
	if b.pageBreak {
		block.PageBreak = true
		b.pageBreak = false
	}
	b.blocks = append(b.blocks, block)
}

func (b *blockBuilder) problem(msg string, args ...any) {
	b.problems = append(b.problems, model.Problem{Message: fmt.Sprintf(msg, args...)})
}

// paragraph converts one paragraph into text and image blocks. An
// explicit page break splits the paragraph, so content after the break
// starts on the next page; inline drawings split it the same way because
// the page model cannot embed images inside text.
func (b *blockBuilder) paragraph(p *paragraphXML) {
	rs := b.reader.styles.Resolve(p.Properties.Style.Val)
	applyParagraphProps(&rs, &p.Properties)

	if rs.heading == 1 && b.title == "" {
		if s := strings.TrimSpace(paragraphText(p)); s != "" {
			b.title = s
		}
	}

	indent := rs.indent
	var marker string
	if num := p.Properties.NumPr; num != nil && num.NumID.Val != "" && num.NumID.Val != "0" {
		ilvl, _ := strconv.Atoi(num.ILvl.Val)
		marker = b.reader.numbering.Marker(num.NumID.Val, ilvl)
		if li := b.reader.numbering.Indent(num.NumID.Val, ilvl); li > indent {
			indent = li
		}
	}

	var parts []layout.Block
	breakNext := false
	addPart := func(block layout.Block) {
		block.PageBreak = block.PageBreak || breakNext
		breakNext = false
		parts = append(parts, block)
	}

	text := &model.Text{Style: rs.style}
	if marker != "" {
		text.Runs = append(text.Runs, model.Run{Text: marker + " ", Style: rs.style})
	}
	flushText := func() {
		if !text.IsBlank() {
			addPart(layout.Block{Text: text, Indent: indent})
		}
		text = &model.Text{Style: rs.style}
	}

	for _, run := range p.Runs {
		style := resolveRun(rs.style, run.Properties)
		for _, piece := range run.Content {
			switch {
			case piece.Text != "":
				text.Runs = append(text.Runs, model.Run{Text: piece.Text, Style: style})
			case piece.Tab:
				text.Runs = append(text.Runs, model.Run{Text: "\t", Style: style})
			case piece.Break == "line":
				text.Runs = append(text.Runs, model.Run{Text: "\n", Style: style})
			case piece.Break == "page":
				flushText()
				breakNext = true
			case piece.Drawing != nil:
				flushText()
				if img := b.imageElement(piece.Drawing); img != nil {
					addPart(layout.Block{Image: img, Indent: indent})
				}
			}
		}
	}
	flushText()

	if breakNext {
		b.pageBreak = true
	}
	if len(parts) == 0 {
		return
	}
	parts[0].SpaceBefore = rs.spaceBefore
	parts[len(parts)-1].SpaceAfter = rs.spaceAfter
	for _, part := range parts {
		b.add(part)
	}
}

func (b *blockBuilder) table(tbl *tableXML) {
	t := tableElement(tbl, b.reader.styles)
	if t == nil {
		return
	}
	b.add(layout.Block{Table: t, SpaceAfter: b.reader.styles.defaults.spaceAfter})
}

// imageElement loads a drawing's picture. The element is returned even
// when the bytes cannot be loaded, so the renderer can paint a
// placeholder in the reserved box. Drawings without picture content
// (charts, text boxes) are skipped.
func (b *blockBuilder) imageElement(d *drawingXML) *model.Image {
	content := d.Inline
	if content == nil {
		content = d.Anchor
	}
	if content == nil {
		return nil
	}
	img := &model.Image{
		BBox: model.NewBBox(0, 0, parseEMU(content.Extent.CX), parseEMU(content.Extent.CY)),
	}
	if content.Blip == nil || content.Blip.Embed == "" {
		b.problem("image drawing has no relationship reference")
		return img
	}
	target := b.reader.relTarget(content.Blip.Embed)
	if target == "" {
		b.problem("image relationship %q not found", content.Blip.Embed)
		return img
	}
	img.Ref = target
	data, err := b.reader.pkg.ReadBytes(target)
	if err != nil {
		b.problem("reading image %s: %v", target, err)
		return img
	}
	img.Data = data
	img.MIME = format.DetectBytes(data).MIME()
	return img
}

// paragraphText returns a paragraph's plain text with tabs and breaks
// normalized.
func paragraphText(p *paragraphXML) string {
	var sb strings.Builder
	for _, run := range p.Runs {
		for _, piece := range run.Content {
			switch {
			case piece.Text != "":
				sb.WriteString(piece.Text)
			case piece.Tab:
				sb.WriteString("\t")
			case piece.Break != "":
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
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
