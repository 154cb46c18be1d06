package pdfmaster

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sidsharmaji/PDF-Master-pro/format"
	"github.com/sidsharmaji/PDF-Master-pro/layout"
	"github.com/sidsharmaji/PDF-Master-pro/model"
	"github.com/sidsharmaji/PDF-Master-pro/ocr"
	"github.com/sidsharmaji/PDF-Master-pro/pdfout"
)

// Page size classes re-exported so callers do not need the layout
// package for the common case.
const (
	PageA4      = layout.PageA4
	PageLetter  = layout.PageLetter
	PageLegal   = layout.PageLegal
	PageA3      = layout.PageA3
	PageTabloid = layout.PageTabloid
)

// DPI bounds. The layout coordinate space is defined at defaultDPI;
// higher values scale the raster output without moving anything.
const (
	defaultDPI = 96
	maxDPI     = 600
)

// Result is the outcome of a successful conversion. Recovered counts the
// non-fatal errors that were absorbed along the way (dropped elements,
// placeholder images, substituted pages); a result with Recovered > 0 is
// still a complete, usable PDF.
type Result struct {
	PDF       []byte
	PageCount int
	Recovered int
}

// Converter provides a fluent interface for converting office documents,
// HTML, workbooks and images to PDF. Each configuration method returns a
// new Converter instance, making it safe for concurrent use and allowing
// method chaining.
type Converter struct {
	// Source: filename names the input; data, when non-nil, holds the
	// input bytes and filename is only a display and detection hint.
	filename string
	data     []byte

	// Configuration
	options convertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Converter with a deep copy of
// options. This ensures immutability - each chain method returns a new
// instance.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		data:     c.data,
		options:  c.options.clone(),
		err:      c.err,
	}
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// PageSize selects the output page size class.
//
// Example:
//
//	res, _, err := pdfmaster.Open("deck.pptx").PageSize(pdfmaster.PageLetter).ToPDF(ctx)
func (c *Converter) PageSize(size layout.PageSize) *Converter {
	newConv := c.clone()
	newConv.options.size = size
	return newConv
}

// Landscape rotates the output page to landscape orientation.
//
// Example:
//
//	res, _, err := pdfmaster.Open("deck.pptx").Landscape().ToPDF(ctx)
func (c *Converter) Landscape() *Converter {
	newConv := c.clone()
	newConv.options.landscape = true
	return newConv
}

// Portrait selects portrait orientation, the default. It exists so a
// shared base converter configured with Landscape can be flipped back.
func (c *Converter) Portrait() *Converter {
	newConv := c.clone()
	newConv.options.landscape = false
	return newConv
}

// DPI sets the output raster density. The default is 96; higher values
// sharpen the rendered pages at the cost of size. Values outside 1-600
// fail the conversion.
//
// Example:
//
//	res, _, err := pdfmaster.Open("deck.pptx").DPI(150).ToPDF(ctx)
func (c *Converter) DPI(dpi int) *Converter {
	newConv := c.clone()
	if dpi < 1 || dpi > maxDPI {
		if newConv.err == nil {
			newConv.err = fmt.Errorf("dpi must be between 1 and %d, got %d", maxDPI, dpi)
		}
		return newConv
	}
	newConv.options.dpi = dpi
	return newConv
}

// ExcludeImages skips image elements when painting. Their boxes stay
// empty; nothing reflows.
func (c *Converter) ExcludeImages() *Converter {
	newConv := c.clone()
	newConv.options.includeImages = false
	return newConv
}

// IncludeHiddenPages renders pages the source marks hidden, such as
// skipped slides. Hidden pages are excluded by default.
func (c *Converter) IncludeHiddenPages() *Converter {
	newConv := c.clone()
	newConv.options.includeHidden = true
	return newConv
}

// Watermark stamps the given text diagonally across every output page.
// An empty text leaves pages unmarked.
//
// Example:
//
//	res, _, err := pdfmaster.Open("deck.pptx").Watermark("DRAFT").ToPDF(ctx)
func (c *Converter) Watermark(text string) *Converter {
	newConv := c.clone()
	newConv.options.watermark = text
	return newConv
}

// Compress runs the assembled PDF through an optimization pass before
// returning it.
func (c *Converter) Compress() *Converter {
	newConv := c.clone()
	newConv.options.compress = true
	return newConv
}

// Progress registers a callback invoked at page boundaries with a
// monotonically increasing percentage from 0 to 100. The callback runs
// on the converting goroutine and should return quickly.
func (c *Converter) Progress(fn func(percent int)) *Converter {
	newConv := c.clone()
	newConv.options.progress = fn
	return newConv
}

// Logger sets the logger that receives recovery notes during
// conversion. Without one the converter is silent.
func (c *Converter) Logger(l *slog.Logger) *Converter {
	newConv := c.clone()
	newConv.options.logger = l
	return newConv
}

// OCRLanguages sets the language hints passed to the OCR engine by
// ImageText. Multiple calls are cumulative.
//
// Example:
//
//	text, err := pdfmaster.Open("scan.png").OCRLanguages("eng", "deu").ImageText(ctx)
func (c *Converter) OCRLanguages(languages ...string) *Converter {
	newConv := c.clone()
	newConv.options.ocrLanguages = append(newConv.options.ocrLanguages, languages...)
	return newConv
}

// InputFormat reads the input and reports its detected format. Content
// detection runs first; the filename extension breaks ties for inputs
// without a recognizable signature.
//
// Example:
//
//	f, err := pdfmaster.Open("upload.bin").InputFormat()
func (c *Converter) InputFormat() (format.Format, error) {
	if c.err != nil {
		return format.Unknown, c.err
	}
	data, err := c.sourceBytes()
	if err != nil {
		return format.Unknown, err
	}
	return c.detectFormat(data), nil
}

// ============================================================================
// Terminal Operations (execute the conversion and return results)
// ============================================================================

// ToPDF runs the full conversion pipeline and returns the assembled PDF.
//
// Partial success is a first-class outcome: elements that fail to parse
// are dropped, images that fail to load get placeholders, and pages that
// fail to render are substituted with an error page, so a usable PDF
// comes back whenever at least the page structure could be read. The
// returned warnings describe everything that was recovered; the result's
// Recovered field carries their count.
//
// Example:
//
//	res, warnings, err := pdfmaster.Open("deck.pptx").Landscape().DPI(150).ToPDF(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("deck.pdf", res.PDF, 0644)
func (c *Converter) ToPDF(ctx context.Context) (*Result, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	doc, problems, err := c.openDocument()
	if err != nil {
		return nil, nil, err
	}
	warns := c.problemWarnings(problems)

	pngs, renderWarns, err := c.renderPages(ctx, doc)
	warns = append(warns, renderWarns...)
	if err != nil {
		return nil, warns, err
	}

	pdf, err := pdfout.Assemble(pngs, c.options.settings())
	if err != nil {
		return nil, warns, fmt.Errorf("assembling pdf: %w", err)
	}
	if c.options.compress {
		pdf, err = pdfout.Optimize(pdf)
		if err != nil {
			return nil, warns, fmt.Errorf("compressing pdf: %w", err)
		}
	}

	return &Result{PDF: pdf, PageCount: len(pngs), Recovered: len(warns)}, warns, nil
}

// Document extracts the input into the intermediate page model without
// rendering it. The document is exclusively owned by the caller.
//
// Example:
//
//	doc, warnings, err := pdfmaster.Open("deck.pptx").Document(ctx)
//	for _, page := range doc.Pages {
//	    fmt.Printf("page %d: %d elements\n", page.Number, len(page.Elements))
//	}
func (c *Converter) Document(ctx context.Context) (*model.Document, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	doc, problems, err := c.openDocument()
	if err != nil {
		return nil, nil, err
	}
	return doc, c.problemWarnings(problems), nil
}

// Text extracts the plain text content of the input, pages separated by
// blank lines.
//
// Example:
//
//	text, warnings, err := pdfmaster.Open("report.docx").Text(ctx)
func (c *Converter) Text(ctx context.Context) (string, []Warning, error) {
	doc, warnings, err := c.Document(ctx)
	if err != nil {
		return "", warnings, err
	}
	return doc.ExtractText(), warnings, nil
}

// ImageText recognizes text in a raster image input using the OCR
// engine. It requires a build with the ocr tag; otherwise it fails with
// ocr.ErrOCRNotEnabled.
//
// Example:
//
//	text, err := pdfmaster.Open("scan.png").ImageText(ctx)
func (c *Converter) ImageText(ctx context.Context) (string, error) {
	if c.err != nil {
		return "", c.err
	}

	data, err := c.sourceBytes()
	if err != nil {
		return "", err
	}
	if f := c.detectFormat(data); !f.IsImage() {
		return "", fmt.Errorf("image text needs a raster image input, got %s", f)
	}

	client, err := ocr.New(c.options.ocrLanguages...)
	if err != nil {
		return "", fmt.Errorf("starting ocr: %w", err)
	}
	defer client.Close()

	return client.Recognize(ctx, data)
}

// ============================================================================
// Internal helpers
// ============================================================================

// sourceBytes returns the input bytes, reading the file when the
// converter was opened by name.
func (c *Converter) sourceBytes() ([]byte, error) {
	if c.data != nil {
		return c.data, nil
	}
	if c.filename == "" {
		return nil, fmt.Errorf("no input specified")
	}
	data, err := os.ReadFile(c.filename)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

// detectFormat determines the input format, preferring content detection
// over the filename extension.
func (c *Converter) detectFormat(data []byte) format.Format {
	if f := format.DetectBytes(data); f != format.Unknown {
		return f
	}
	return format.Detect(c.filename)
}

func (c *Converter) logger() *slog.Logger {
	if c.options.logger != nil {
		return c.options.logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
