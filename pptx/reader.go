// Package pptx provides PPTX (Office Open XML Presentation) document parsing.
//
// The reader extracts each slide into a positioned page: text boxes,
// pictures, shapes and tables keep the coordinates the slide gives them,
// converted from EMUs to normalized pixels. Slide-level failures degrade
// to placeholder pages so the page count always matches the source.
package pptx

import (
	"encoding/xml"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/sidsharmaji/PDF-Master-pro/model"
	"github.com/sidsharmaji/PDF-Master-pro/opc"
)

// emuPerPixel converts English Metric Units to pixels at 96 DPI.
const emuPerPixel = 9525

// defaultFontSize is the body text size in points used when a run
// carries no explicit size.
const defaultFontSize = 18.0

// Reader provides access to PPTX document content.
type Reader struct {
	pkg       *opc.Container
	pres      *presentationXML
	presRels  *relationshipsXML
	theme     *palette
	coreProps *corePropertiesXML
	appProps  *appPropertiesXML
}

// Open opens a PPTX file for reading.
func Open(filename string) (*Reader, error) {
	pkg, err := opc.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening package: %w", err)
	}
	return newReader(pkg)
}

// New opens a PPTX document held in memory.
func New(data []byte) (*Reader, error) {
	pkg, err := opc.New(data)
	if err != nil {
		return nil, fmt.Errorf("opening package: %w", err)
	}
	return newReader(pkg)
}

func newReader(pkg *opc.Container) (*Reader, error) {
	r := &Reader{pkg: pkg}

	// Validate required files exist
	if err := r.validate(); err != nil {
		return nil, err
	}

	// Parse presentation relationships first
	if err := r.parseRelationships(); err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}

	// Parse presentation to get slide size and order
	if err := r.parsePresentation(); err != nil {
		return nil, fmt.Errorf("parsing presentation: %w", err)
	}

	// Theme and metadata are optional
	r.parseTheme()
	r.parseCoreProperties()
	r.parseAppProperties()

	return r, nil
}

// validate checks that required PPTX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"ppt/presentation.xml",
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

// parseRelationships parses the presentation relationships file.
func (r *Reader) parseRelationships() error {
	var rels relationshipsXML
	if err := r.readXML("ppt/_rels/presentation.xml.rels", &rels); err != nil {
		// Relationships are optional; slide order falls back to
		// filename numbering without them.
		r.presRels = &relationshipsXML{}
		return nil
	}
	r.presRels = &rels
	return nil
}

// parsePresentation parses the main presentation file.
func (r *Reader) parsePresentation() error {
	var pres presentationXML
	if err := r.readXML("ppt/presentation.xml", &pres); err != nil {
		return err
	}
	r.pres = &pres
	return nil
}

// parseTheme loads the color scheme the presentation links to. Missing
// or unparseable themes leave a nil palette, which resolves scheme
// colors to black on white.
func (r *Reader) parseTheme() {
	target := "ppt/theme/theme1.xml"
	for _, rel := range r.presRels.Relationship {
		if strings.Contains(rel.Type, "/theme") {
			target = opc.Resolve("ppt", rel.Target)
			break
		}
	}
	data, err := r.pkg.ReadBytes(target)
	if err != nil {
		return
	}
	if p, err := parseTheme(data); err == nil {
		r.theme = p
	}
}

// parseCoreProperties parses docProps/core.xml (optional).
func (r *Reader) parseCoreProperties() {
	var props corePropertiesXML
	if err := r.readXML("docProps/core.xml", &props); err != nil {
		return
	}
	r.coreProps = &props
}

// parseAppProperties parses docProps/app.xml (optional).
func (r *Reader) parseAppProperties() {
	var props appPropertiesXML
	if err := r.readXML("docProps/app.xml", &props); err != nil {
		return
	}
	r.appProps = &props
}

// CanvasSize returns the declared slide dimensions in pixels, or zero
// values when the presentation does not declare a size.
func (r *Reader) CanvasSize() (width, height float64) {
	if r.pres == nil || r.pres.SlideSz == nil {
		return 0, 0
	}
	return float64(r.pres.SlideSz.Cx) / emuPerPixel, float64(r.pres.SlideSz.Cy) / emuPerPixel
}

// slidePaths returns slide part names in presentation order. The
// declared sldIdLst order wins; packages without one fall back to
// numeric filename order.
func (r *Reader) slidePaths() []string {
	if r.pres != nil && r.pres.SlideIdList != nil && len(r.pres.SlideIdList.SlideId) > 0 {
		targets := make(map[string]string)
		for _, rel := range r.presRels.Relationship {
			targets[rel.ID] = rel.Target
		}
		var paths []string
		for _, sid := range r.pres.SlideIdList.SlideId {
			if t, ok := targets[sid.RID]; ok {
				paths = append(paths, opc.Resolve("ppt", t))
			}
		}
		if len(paths) > 0 {
			return paths
		}
	}

	var paths []string
	for _, name := range r.pkg.List("ppt/slides/slide") {
		if strings.HasSuffix(name, ".xml") {
			paths = append(paths, name)
		}
	}
	sort.Slice(paths, func(i, j int) bool {
		return extractSlideNumber(paths[i]) < extractSlideNumber(paths[j])
	})
	return paths
}

// extractSlideNumber extracts the slide number from a path like
// "ppt/slides/slide1.xml".
func extractSlideNumber(slidePath string) int {
	var num int
	if _, err := fmt.Sscanf(path.Base(slidePath), "slide%d.xml", &num); err != nil {
		return 0
	}
	return num
}

// slideRelationships parses the .rels file for a slide. Slides without
// one get an empty relationship set.
func (r *Reader) slideRelationships(slidePath string) *relationshipsXML {
	relsPath := path.Join(path.Dir(slidePath), "_rels", path.Base(slidePath)+".rels")
	var rels relationshipsXML
	if err := r.readXML(relsPath, &rels); err != nil {
		return &relationshipsXML{}
	}
	return &rels
}

// notesText returns the speaker notes linked from a slide, or "".
func (r *Reader) notesText(slidePath string, rels *relationshipsXML) string {
	for _, rel := range rels.Relationship {
		if !strings.Contains(rel.Type, "notesSlide") {
			continue
		}
		target := opc.Resolve(path.Dir(slidePath), rel.Target)
		var notes notesSlideXML
		if err := r.readXML(target, &notes); err != nil {
			return ""
		}
		return extractNotesText(&notes)
	}
	return ""
}

// extractNotesText collects paragraph text from a notes slide, skipping
// the slide image placeholder.
func extractNotesText(notes *notesSlideXML) string {
	var lines []string
	for _, node := range notes.CSld.SpTree.Nodes {
		sp := node.Sp
		if sp == nil {
			continue
		}
		if ph := sp.NvSpPr.NvPr.Ph; ph != nil && ph.Type == "sldImg" {
			continue
		}
		if sp.TxBody == nil {
			continue
		}
		for i := range sp.TxBody.P {
			text := paragraphText(&sp.TxBody.P[i])
			if strings.TrimSpace(text) != "" {
				lines = append(lines, text)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// paragraphText concatenates the literal text of a paragraph's runs
// and fields.
func paragraphText(p *pXML) string {
	var sb strings.Builder
	for _, run := range p.R {
		sb.WriteString(run.T)
	}
	for _, fld := range p.Fld {
		sb.WriteString(fld.T)
	}
	return sb.String()
}

// Metadata returns document metadata from the package properties.
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
		meta.PageCount = r.appProps.Slides
	}
	meta.CanvasWidth, meta.CanvasHeight = r.CanvasSize()
	return meta
}

// parseW3CDTF parses the date format used by OOXML core properties.
// Unparseable values yield the zero time.
func parseW3CDTF(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// SlideCount returns the number of slides in the presentation.
func (r *Reader) SlideCount() int {
	return len(r.slidePaths())
}

// Document extracts the full positioned page model. Slides that cannot
// be read or parsed become placeholder pages carrying an error notice,
// so every source slide is accounted for. Recoverable issues are
// returned as problems alongside the document.
func (r *Reader) Document() (*model.Document, []model.Problem, error) {
	doc := model.NewDocument()
	doc.Metadata = r.Metadata()

	var problems []model.Problem
	for i, slidePath := range r.slidePaths() {
		number := i + 1
		page, probs := r.buildPage(slidePath, number)
		problems = append(problems, probs...)
		doc.AddPage(page)
	}

	if doc.Metadata.PageCount == 0 {
		doc.Metadata.PageCount = doc.PageCount()
	}
	return doc, problems, nil
}
