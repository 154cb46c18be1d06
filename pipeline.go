// pipeline.go drives one conversion: input bytes to page model to rendered pages
package pdfmaster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/sidsharmaji/PDF-Master-pro/docx"
	"github.com/sidsharmaji/PDF-Master-pro/format"
	"github.com/sidsharmaji/PDF-Master-pro/htmldoc"
	"github.com/sidsharmaji/PDF-Master-pro/layout"
	"github.com/sidsharmaji/PDF-Master-pro/model"
	"github.com/sidsharmaji/PDF-Master-pro/pptx"
	"github.com/sidsharmaji/PDF-Master-pro/render"
	"github.com/sidsharmaji/PDF-Master-pro/xlsx"
)

// Pipeline pacing constants.
const (
	// pageChunkSize is the number of pages rendered between cancellation
	// checks. Chunking affects responsiveness only, never page order or
	// content.
	pageChunkSize = 5

	// imageLoadTimeout bounds the decode check of one embedded image.
	imageLoadTimeout = 10 * time.Second
)

// openDocument reads the input and extracts it into the page model,
// dispatching on the detected format.
func (c *Converter) openDocument() (*model.Document, []model.Problem, error) {
	data, err := c.sourceBytes()
	if err != nil {
		return nil, nil, &PackageReadError{Path: c.filename, Err: err}
	}

	f := c.detectFormat(data)
	switch f {
	case format.PPTX:
		r, err := pptx.New(data)
		if err != nil {
			return nil, nil, &PackageReadError{Path: c.filename, Err: err}
		}
		return r.Document()

	case format.DOCX:
		r, err := docx.New(data)
		if err != nil {
			return nil, nil, &PackageReadError{Path: c.filename, Err: err}
		}
		return r.Document(c.options.settings())

	case format.XLSX:
		r, err := xlsx.NewWithOptions(data, xlsx.Options{IncludeHidden: c.options.includeHidden})
		if err != nil {
			return nil, nil, &PackageReadError{Path: c.filename, Err: err}
		}
		defer r.Close()
		return r.Document(c.options.settings())

	case format.HTML:
		r, err := htmldoc.New(data)
		if err != nil {
			return nil, nil, &PackageReadError{Path: c.filename, Err: err}
		}
		return r.Document(c.options.settings())

	case format.PNG, format.JPEG, format.GIF, format.BMP, format.TIFF, format.WebP:
		return c.imageDocument(data, f)

	case format.PDF:
		return nil, nil, fmt.Errorf("input is already a PDF (the pdfops package covers PDF tools): %w", ErrUnsupportedFormat)

	case format.ODT, format.ODP:
		return nil, nil, fmt.Errorf("OpenDocument input (%s): %w", f, ErrUnsupportedFormat)

	default:
		return nil, nil, &PackageReadError{Path: c.filename, Err: errors.New("unrecognized input format")}
	}
}

// imageDocument wraps a raster image input as a single-page document
// whose canvas matches the image, so the standard fit pipeline centers
// it on the output page at maximum size.
func (c *Converter) imageDocument(data []byte, f format.Format) (*model.Document, []model.Problem, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil, &ConversionFatalError{Path: c.filename, Err: fmt.Errorf("decoding %s input: %w", f, err)}
	}

	w, h := float64(cfg.Width), float64(cfg.Height)
	doc := model.NewDocument()
	doc.Metadata.CanvasWidth = w
	doc.Metadata.CanvasHeight = h
	doc.Metadata.PageCount = 1

	page := model.NewPage()
	page.AddElement(&model.Image{
		Ref:   c.filename,
		Data:  data,
		MIME:  f.MIME(),
		BBox:  model.NewBBox(0, 0, w, h),
		Style: model.DefaultStyle(),
	})
	doc.AddPage(page)
	return doc, nil, nil
}

// problemWarnings converts reader problems to caller-facing warnings.
// Each problem is also logged as its typed error so log collectors can
// classify the recovery.
func (c *Converter) problemWarnings(problems []model.Problem) []Warning {
	if len(problems) == 0 {
		return nil
	}
	log := c.logger()
	warns := make([]Warning, len(problems))
	for i, p := range problems {
		log.Debug("recovered extraction problem", "page", p.Page,
			"err", &ElementParseError{Page: p.Page, Err: errors.New(p.Message)})
		warns[i] = Warning{Page: p.Page, Message: p.Message}
	}
	return warns
}

// renderPages rasterizes the document's visible pages in order. Pages
// that fail to paint are substituted with an error page so the output
// page count matches the document, and every substitution is reported
// as a warning.
func (c *Converter) renderPages(ctx context.Context, doc *model.Document) ([][]byte, []Warning, error) {
	opts := c.options
	pages := doc.VisiblePages(opts.includeHidden)
	if len(pages) == 0 {
		return nil, nil, &ConversionFatalError{Path: c.filename, Err: errors.New("document has no visible pages")}
	}

	pl := layout.Fit(doc.Metadata.CanvasWidth, doc.Metadata.CanvasHeight, opts.settings())
	scale := opts.deviceScale()
	pw := int(math.Round(pl.PageWidth * scale))
	ph := int(math.Round(pl.PageHeight * scale))

	log := c.logger()
	faces := render.NewFaceCache()
	progress := newProgress(opts.progress)
	progress.report(0, len(pages))

	out := make([][]byte, 0, len(pages))
	var warns []Warning
	for i, page := range pages {
		if i%pageChunkSize == 0 {
			if err := ctx.Err(); err != nil {
				return nil, warns, fmt.Errorf("conversion canceled at page %d: %w", i+1, err)
			}
		}

		if opts.includeImages {
			warns = append(warns, c.prepareImages(ctx, page, log)...)
		}

		rc := &render.Context{Layout: pl, Scale: scale, Faces: faces, Log: log, Watermark: opts.watermark}
		png, err := paintPage(rc, page, pw, ph, opts.includeImages)
		if err != nil {
			rerr := &PageRenderError{Page: page.Number, Err: err}
			log.Warn("substituting error page", "page", page.Number, "err", rerr)
			warns = append(warns, Warning{Page: page.Number, Message: rerr.Error()})
			if png, err = paintErrorPage(rc, page.Number, pw, ph); err != nil {
				return nil, warns, fmt.Errorf("page %d: %w", page.Number, err)
			}
		}
		out = append(out, png)
		progress.report(i+1, len(pages))
	}
	return out, warns, nil
}

// paintPage renders one page to an encoded PNG. A panic from a malformed
// page becomes an error so the caller can substitute the error page
// instead of losing the whole run.
func paintPage(rc *render.Context, page *model.Page, w, h int, includeImages bool) (png []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("painting panicked: %v", r)
		}
	}()

	if !includeImages {
		page = withoutImages(page)
	}
	surf := render.NewRaster(w, h)
	rc.Surface = surf
	render.Page(rc, page)
	return surf.PNG()
}

// paintErrorPage renders the substitute sheet for a failed page.
func paintErrorPage(rc *render.Context, number, w, h int) ([]byte, error) {
	surf := render.NewRaster(w, h)
	rc.Surface = surf
	render.ErrorPage(rc, number)
	return surf.PNG()
}

// withoutImages returns a shallow copy of the page with image elements
// removed. The filter applies at paint time so the extracted document is
// never reshaped by settings.
func withoutImages(page *model.Page) *model.Page {
	filtered := *page
	filtered.Elements = make([]model.Element, 0, len(page.Elements))
	for _, el := range page.Elements {
		if _, ok := el.(*model.Image); ok {
			continue
		}
		filtered.Elements = append(filtered.Elements, el)
	}
	return &filtered
}

// prepareImages validates every embedded image on a page before painting.
// An image that cannot be decoded in time has its data cleared, which
// sends the painter down the placeholder path instead of stalling the
// conversion.
func (c *Converter) prepareImages(ctx context.Context, page *model.Page, log *slog.Logger) []Warning {
	var warns []Warning
	for _, el := range page.Elements {
		img, ok := el.(*model.Image)
		if !ok || len(img.Data) == 0 {
			continue
		}
		if err := checkImage(ctx, img.Data); err != nil {
			lerr := &ImageLoadError{Page: page.Number, Ref: img.Ref, Err: err}
			log.Warn("substituting image placeholder", "page", page.Number, "ref", img.Ref, "err", lerr)
			warns = append(warns, Warning{Page: page.Number, Message: lerr.Error()})
			img.Data = nil
		}
	}
	return warns
}

// checkImage parses the image header under the load timeout. A timed-out
// parse keeps running in the background; its result is discarded.
func checkImage(ctx context.Context, data []byte) error {
	done := make(chan error, 1)
	go func() {
		_, _, err := image.DecodeConfig(bytes.NewReader(data))
		done <- err
	}()

	t := time.NewTimer(imageLoadTimeout)
	defer t.Stop()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return fmt.Errorf("decode timed out after %s", imageLoadTimeout)
	}
}

// progressReporter emits conversion percentages at page boundaries,
// skipping repeats so the reported sequence is strictly increasing.
type progressReporter struct {
	fn   func(int)
	last int
}

func newProgress(fn func(int)) *progressReporter {
	return &progressReporter{fn: fn, last: -1}
}

func (p *progressReporter) report(done, total int) {
	if p.fn == nil || total <= 0 {
		return
	}
	pct := done * 100 / total
	if pct > p.last {
		p.last = pct
		p.fn(pct)
	}
}
