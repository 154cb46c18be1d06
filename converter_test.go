package pdfmaster

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/sidsharmaji/PDF-Master-pro/format"
	"github.com/sidsharmaji/PDF-Master-pro/layout"
	"github.com/sidsharmaji/PDF-Master-pro/ocr"
)

// ============================================================================
// Fixtures
// ============================================================================

func writeZipFile(t *testing.T, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("creating %s in zip: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Default Extension="png" ContentType="image/png"/>
  <Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>
</Types>`

// buildPPTX assembles an in-memory presentation with the given slide
// bodies on a 960x720 pixel canvas.
func buildPPTX(t *testing.T, slides []string, extra map[string]string) []byte {
	t.Helper()
	return buildPPTXCanvas(t, 9144000, 6858000, slides, extra)
}

// buildPPTXCanvas is buildPPTX with an explicit slide size in EMU.
func buildPPTXCanvas(t *testing.T, cx, cy int, slides []string, extra map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	writeZipFile(t, zw, "[Content_Types].xml", contentTypesXML)

	var idList, relList strings.Builder
	for i := range slides {
		n := strconv.Itoa(i + 1)
		idList.WriteString(`<p:sldId id="` + strconv.Itoa(256+i) + `" r:id="rId` + n + `"/>`)
		relList.WriteString(`<Relationship Id="rId` + n +
			`" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide` +
			n + `.xml"/>`)
	}

	presentation := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <p:sldIdLst>` + idList.String() + `</p:sldIdLst>
  <p:sldSz cx="` + strconv.Itoa(cx) + `" cy="` + strconv.Itoa(cy) + `"/>
</p:presentation>`
	writeZipFile(t, zw, "ppt/presentation.xml", presentation)

	presRels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		relList.String() + `</Relationships>`
	writeZipFile(t, zw, "ppt/_rels/presentation.xml.rels", presRels)

	for i, body := range slides {
		writeZipFile(t, zw, "ppt/slides/slide"+strconv.Itoa(i+1)+".xml", body)
	}

	names := make([]string, 0, len(extra))
	for name := range extra {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		writeZipFile(t, zw, name, extra[name])
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

func slideWith(children string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <p:cSld>
    <p:spTree>
      <p:nvGrpSpPr><p:cNvPr id="1" name=""/></p:nvGrpSpPr>
` + children + `
    </p:spTree>
  </p:cSld>
</p:sld>`
}

func titleShape(text string) string {
	return `<p:sp>
  <p:nvSpPr>
    <p:cNvPr id="2" name="Title 1"/>
    <p:nvPr><p:ph type="title"/></p:nvPr>
  </p:nvSpPr>
  <p:spPr>
    <a:xfrm>
      <a:off x="476250" y="190500"/>
      <a:ext cx="1905000" cy="952500"/>
    </a:xfrm>
  </p:spPr>
  <p:txBody>
    <a:bodyPr/>
    <a:p><a:r><a:t>` + text + `</a:t></a:r></a:p>
  </p:txBody>
</p:sp>`
}

func pictureShape(relID string) string {
	return `<p:pic>
  <p:nvPicPr><p:cNvPr id="12" name="Picture"/></p:nvPicPr>
  <p:blipFill><a:blip r:embed="` + relID + `"/></p:blipFill>
  <p:spPr>
    <a:xfrm><a:off x="476250" y="476250"/><a:ext cx="1905000" cy="952500"/></a:xfrm>
  </p:spPr>
</p:pic>`
}

func pictureRels(target string) string {
	return `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId7" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="` + target + `"/>
</Relationships>`
}

// textSlides returns n slides, each with one title box.
func textSlides(n int) []string {
	slides := make([]string, n)
	for i := range slides {
		slides[i] = slideWith(titleShape("Slide " + strconv.Itoa(i+1)))
	}
	return slides
}

const htmlPage = `<!DOCTYPE html>
<html><head><title>Quarterly Notes</title></head>
<body><h1>Quarterly Notes</h1><p>Revenue grew in every region.</p></body></html>`

// solidPNG encodes a w-by-h image filled with a single color.
func solidPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding fixture image: %v", err)
	}
	return buf.Bytes()
}

// realPNG returns a small decodable image.
func realPNG(t *testing.T) []byte {
	t.Helper()
	return solidPNG(t, 40, 30, color.RGBA{R: 200, G: 60, B: 40, A: 255})
}

// pngStub carries a PNG magic number but no decodable header.
var pngStub = string([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0, 0, 0, 0})

func pdfPages(t *testing.T, pdf []byte) int {
	t.Helper()
	n, err := api.PageCount(bytes.NewReader(pdf), pdfmodel.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("reading back page count: %v", err)
	}
	return n
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding rendered page: %v", err)
	}
	return img
}

// inkBounds returns the bounding box of the pixels keep selects.
func inkBounds(img image.Image, keep func(r, g, b uint8) bool) (minX, minY, maxX, maxY int, found bool) {
	b := img.Bounds()
	minX, minY = b.Max.X, b.Max.Y
	maxX, maxY = b.Min.X, b.Min.Y
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if !keep(uint8(r>>8), uint8(g>>8), uint8(bl>>8)) {
				continue
			}
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
			found = true
		}
	}
	return minX, minY, maxX, maxY, found
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// ============================================================================
// Conversion
// ============================================================================

func TestOpen_MissingFile(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "gone.pptx")).ToPDF(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var perr *PackageReadError
	if !errors.As(err, &perr) {
		t.Errorf("error type = %T, want *PackageReadError", err)
	}
}

func TestToPDF_Presentation(t *testing.T) {
	data := buildPPTX(t, textSlides(2), nil)

	res, warnings, err := FromBytes(data, "deck.pptx").ToPDF(context.Background())
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if !bytes.HasPrefix(res.PDF, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
	if res.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2", res.PageCount)
	}
	if res.Recovered != 0 {
		t.Errorf("Recovered = %d, want 0", res.Recovered)
	}
	if n := pdfPages(t, res.PDF); n != 2 {
		t.Errorf("PDF page count = %d, want 2", n)
	}
}

func TestToPDF_HTML(t *testing.T) {
	res, warnings, err := FromBytes([]byte(htmlPage), "notes.html").ToPDF(context.Background())
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if res.PageCount < 1 {
		t.Errorf("PageCount = %d, want at least 1", res.PageCount)
	}
	if n := pdfPages(t, res.PDF); n != res.PageCount {
		t.Errorf("PDF page count = %d, Result says %d", n, res.PageCount)
	}
}

func TestToPDF_Image(t *testing.T) {
	res, warnings, err := FromBytes(realPNG(t), "photo.png").ToPDF(context.Background())
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if res.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", res.PageCount)
	}
}

func TestToPDF_UndecodableImageInput(t *testing.T) {
	_, _, err := FromBytes([]byte(pngStub), "photo.png").ToPDF(context.Background())
	if err == nil {
		t.Fatal("expected error for undecodable image input")
	}
	var ferr *ConversionFatalError
	if !errors.As(err, &ferr) {
		t.Errorf("error type = %T, want *ConversionFatalError", err)
	}
}

func TestToPDF_PDFInputRejected(t *testing.T) {
	_, _, err := FromBytes([]byte("%PDF-1.7\n"), "done.pdf").ToPDF(context.Background())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("error = %v, want ErrUnsupportedFormat", err)
	}
	if !strings.Contains(err.Error(), "pdfops") {
		t.Errorf("error = %v, want a pointer to the pdfops package", err)
	}
}

func TestToPDF_OpenDocumentRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	writeZipFile(t, zw, "mimetype", "application/vnd.oasis.opendocument.text")
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}

	_, _, err := FromBytes(buf.Bytes(), "letter.odt").ToPDF(context.Background())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestToPDF_UnknownInput(t *testing.T) {
	_, _, err := FromBytes([]byte("just some text"), "mystery.bin").ToPDF(context.Background())
	if err == nil {
		t.Fatal("expected error for unrecognized input")
	}
	var perr *PackageReadError
	if !errors.As(err, &perr) {
		t.Errorf("error type = %T, want *PackageReadError", err)
	}
}

// ============================================================================
// Recovery and warnings
// ============================================================================

func TestRecoveredSlideBecomesWarning(t *testing.T) {
	data := buildPPTX(t, []string{slideWith(titleShape("Good")), "<p:sld"}, nil)

	res, warnings, err := FromBytes(data, "deck.pptx").ToPDF(context.Background())
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if res.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2 (failed slide keeps its slot)", res.PageCount)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if warnings[0].Page != 2 {
		t.Errorf("warning page = %d, want 2", warnings[0].Page)
	}
	if res.Recovered != 1 {
		t.Errorf("Recovered = %d, want 1", res.Recovered)
	}
}

func TestBadEmbeddedImageGetsPlaceholder(t *testing.T) {
	data := buildPPTX(t, []string{slideWith(pictureShape("rId7"))}, map[string]string{
		"ppt/slides/_rels/slide1.xml.rels": pictureRels("../media/image1.png"),
		"ppt/media/image1.png":             pngStub,
	})

	res, warnings, err := FromBytes(data, "deck.pptx").ToPDF(context.Background())
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if res.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", res.PageCount)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if warnings[0].Page != 1 {
		t.Errorf("warning page = %d, want 1", warnings[0].Page)
	}
	if !strings.Contains(warnings[0].Message, "loading image") {
		t.Errorf("warning = %q, want an image load message", warnings[0].Message)
	}
}

func TestExcludeImages_SkipsImageChecks(t *testing.T) {
	data := buildPPTX(t, []string{slideWith(pictureShape("rId7"))}, map[string]string{
		"ppt/slides/_rels/slide1.xml.rels": pictureRels("../media/image1.png"),
		"ppt/media/image1.png":             pngStub,
	})

	res, warnings, err := FromBytes(data, "deck.pptx").ExcludeImages().ToPDF(context.Background())
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if res.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", res.PageCount)
	}
	if len(warnings) != 0 {
		t.Errorf("excluded images should not be checked, got warnings: %v", warnings)
	}
}

// ============================================================================
// Configuration
// ============================================================================

func TestChainImmutability(t *testing.T) {
	base := Open("deck.pptx")

	landscape := base.Landscape()
	letter := base.PageSize(PageLetter)

	if base.options.landscape {
		t.Error("base should stay portrait")
	}
	if !landscape.options.landscape {
		t.Error("derived converter should be landscape")
	}
	if base.options.size != PageA4 {
		t.Error("base page size should stay A4")
	}
	if letter.options.size != PageLetter {
		t.Error("derived converter should be Letter")
	}
	if letter.options.landscape {
		t.Error("size change should not leak orientation")
	}
}

func TestOCRLanguagesCopied(t *testing.T) {
	base := Open("scan.png").OCRLanguages("eng")
	more := base.OCRLanguages("deu")

	if len(base.options.ocrLanguages) != 1 || base.options.ocrLanguages[0] != "eng" {
		t.Errorf("base languages = %v, want [eng]", base.options.ocrLanguages)
	}
	if len(more.options.ocrLanguages) != 2 {
		t.Errorf("derived languages = %v, want [eng deu]", more.options.ocrLanguages)
	}
}

func TestDPIValidation(t *testing.T) {
	c := Open("deck.pptx").DPI(0)
	if c.err == nil {
		t.Error("DPI(0) should record an error")
	}
	if _, _, err := c.ToPDF(context.Background()); err == nil {
		t.Error("terminal operation should surface the configuration error")
	}

	if c := Open("deck.pptx").DPI(maxDPI + 1); c.err == nil {
		t.Error("DPI above the limit should record an error")
	}
	if c := Open("deck.pptx").DPI(300); c.err != nil {
		t.Errorf("DPI(300) recorded error: %v", c.err)
	}
}

func TestDeviceScale(t *testing.T) {
	opts := defaultOptions()
	if got := opts.deviceScale(); got != 1 {
		t.Errorf("default scale = %v, want 1", got)
	}
	opts.dpi = 192
	if got := opts.deviceScale(); got != 2 {
		t.Errorf("scale at 192 dpi = %v, want 2", got)
	}
}

func TestLandscapeOutput(t *testing.T) {
	data := buildPPTX(t, textSlides(1), nil)
	res := MustResult(FromBytes(data, "deck.pptx").Landscape().ToPDF(context.Background()))

	dims, err := api.PageDims(bytes.NewReader(res.PDF), pdfmodel.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("PageDims: %v", err)
	}
	if dims[0].Width <= dims[0].Height {
		t.Errorf("dims = %.2fx%.2f, want landscape", dims[0].Width, dims[0].Height)
	}
}

func TestCompressKeepsPages(t *testing.T) {
	data := buildPPTX(t, textSlides(2), nil)
	res, _, err := FromBytes(data, "deck.pptx").Compress().ToPDF(context.Background())
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if n := pdfPages(t, res.PDF); n != 2 {
		t.Errorf("page count after compression = %d, want 2", n)
	}
}

// TestFullDeckRender pushes a 720x540 deck through the whole pipeline at
// A4 landscape 150dpi and inspects the page rasters: slide 1's text must
// sit at the top-left of the scaled, centered content box, and slide 2's
// 100x50 image must keep its 2:1 shape inside a square destination box.
func TestFullDeckRender(t *testing.T) {
	const emu = 9525
	hello := `<p:sp>
  <p:nvSpPr><p:cNvPr id="2" name="Hello"/></p:nvSpPr>
  <p:spPr>
    <a:xfrm><a:off x="0" y="0"/><a:ext cx="` + strconv.Itoa(400*emu) + `" cy="` + strconv.Itoa(100*emu) + `"/></a:xfrm>
  </p:spPr>
  <p:txBody>
    <a:bodyPr/>
    <a:p><a:r><a:rPr sz="1200"/><a:t>Hello</a:t></a:r></a:p>
  </p:txBody>
</p:sp>`
	pic := `<p:pic>
  <p:nvPicPr><p:cNvPr id="3" name="Red"/></p:nvPicPr>
  <p:blipFill><a:blip r:embed="rId7"/></p:blipFill>
  <p:spPr>
    <a:xfrm><a:off x="` + strconv.Itoa(260*emu) + `" y="` + strconv.Itoa(170*emu) + `"/><a:ext cx="` + strconv.Itoa(200*emu) + `" cy="` + strconv.Itoa(200*emu) + `"/></a:xfrm>
  </p:spPr>
</p:pic>`
	deck := buildPPTXCanvas(t, 720*emu, 540*emu,
		[]string{slideWith(hello), slideWith(pic)},
		map[string]string{
			"ppt/slides/_rels/slide2.xml.rels": pictureRels("../media/image1.png"),
			"ppt/media/image1.png":             string(solidPNG(t, 100, 50, color.RGBA{R: 255, A: 255})),
		})

	c := FromBytes(deck, "deck.pptx").PageSize(PageA4).Landscape().DPI(150)

	res, warnings, err := c.ToPDF(context.Background())
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if res.PageCount != 2 {
		t.Fatalf("PageCount = %d, want 2", res.PageCount)
	}
	dims, err := api.PageDims(bytes.NewReader(res.PDF), pdfmodel.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("PageDims: %v", err)
	}
	for i, d := range dims {
		if math.Abs(d.Width-841.89) > 0.5 || math.Abs(d.Height-595.28) > 0.5 {
			t.Errorf("page %d dims = %.2fx%.2f, want A4 landscape", i+1, d.Width, d.Height)
		}
	}

	// Replay the render so the rasters themselves can be checked.
	doc, problems, err := c.openDocument()
	if err != nil {
		t.Fatalf("openDocument: %v", err)
	}
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	pages, _, err := c.renderPages(context.Background(), doc)
	if err != nil {
		t.Fatalf("renderPages: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("rendered %d pages, want 2", len(pages))
	}

	pl := layout.Fit(doc.Metadata.CanvasWidth, doc.Metadata.CanvasHeight, c.options.settings())
	dev := c.options.deviceScale()
	ox, oy := pl.Place(0, 0)
	ox, oy = ox*dev, oy*dev

	// The only ink on page 1 is "Hello", so its bounding box must hug
	// the content box corner.
	minX, minY, _, _, found := inkBounds(decodePNG(t, pages[0]), func(r, g, b uint8) bool {
		return r < 200 && g < 200 && b < 200
	})
	if !found {
		t.Fatal("no text ink on page 1")
	}
	if float64(minX) < ox-1 || float64(minX) > ox+60 {
		t.Errorf("text ink starts at x=%d, want just inside content box edge %.1f", minX, ox)
	}
	if float64(minY) < oy-1 || float64(minY) > oy+60 {
		t.Errorf("text ink starts at y=%d, want just inside content box edge %.1f", minY, oy)
	}

	rx0, ry0, rx1, ry1, found := inkBounds(decodePNG(t, pages[1]), func(r, g, b uint8) bool {
		return r > 150 && g < 100 && b < 100
	})
	if !found {
		t.Fatal("no red ink on page 2")
	}
	w := float64(rx1 - rx0 + 1)
	h := float64(ry1 - ry0 + 1)
	if ratio := w / h; math.Abs(ratio-2) > 0.1 {
		t.Errorf("painted image ratio = %.3f, want 2.0", ratio)
	}
	if boxW := 200 * pl.Scale * dev; math.Abs(w-boxW) > 4 {
		t.Errorf("painted image width = %.0f, want about %.0f to fill the box", w, boxW)
	}
}

// ============================================================================
// Progress and cancellation
// ============================================================================

func TestProgressMonotonic(t *testing.T) {
	data := buildPPTX(t, textSlides(7), nil)

	var reports []int
	_, _, err := FromBytes(data, "deck.pptx").
		Progress(func(pct int) { reports = append(reports, pct) }).
		ToPDF(context.Background())
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}

	if len(reports) == 0 {
		t.Fatal("expected progress reports")
	}
	if reports[0] != 0 {
		t.Errorf("first report = %d, want 0", reports[0])
	}
	if last := reports[len(reports)-1]; last != 100 {
		t.Errorf("last report = %d, want 100", last)
	}
	for i := 1; i < len(reports); i++ {
		if reports[i] <= reports[i-1] {
			t.Errorf("reports not strictly increasing: %v", reports)
			break
		}
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := buildPPTX(t, textSlides(1), nil)
	_, _, err := FromBytes(data, "deck.pptx").ToPDF(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

// ============================================================================
// Other terminal operations
// ============================================================================

func TestText(t *testing.T) {
	text, warnings, err := FromBytes([]byte(htmlPage), "notes.html").Text(context.Background())
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if !strings.Contains(text, "Revenue grew in every region") {
		t.Errorf("text = %q, want the paragraph content", text)
	}
}

func TestDocument(t *testing.T) {
	data := buildPPTX(t, textSlides(2), nil)
	doc, _, err := FromBytes(data, "deck.pptx").Document(context.Background())
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if doc.PageCount() != 2 {
		t.Errorf("PageCount = %d, want 2", doc.PageCount())
	}
	if !closeTo(doc.Metadata.CanvasWidth, 960) || !closeTo(doc.Metadata.CanvasHeight, 720) {
		t.Errorf("canvas = %.0fx%.0f, want 960x720", doc.Metadata.CanvasWidth, doc.Metadata.CanvasHeight)
	}
}

func TestInputFormat(t *testing.T) {
	data := buildPPTX(t, textSlides(1), nil)
	f, err := FromBytes(data, "deck.pptx").InputFormat()
	if err != nil {
		t.Fatalf("InputFormat: %v", err)
	}
	if f != format.PPTX {
		t.Errorf("format = %v, want PPTX", f)
	}

	f, err = FromBytes([]byte(htmlPage), "").InputFormat()
	if err != nil {
		t.Fatalf("InputFormat: %v", err)
	}
	if f != format.HTML {
		t.Errorf("format = %v, want HTML", f)
	}
}

func TestImageText_RequiresImageInput(t *testing.T) {
	_, err := FromBytes([]byte(htmlPage), "notes.html").ImageText(context.Background())
	if err == nil {
		t.Fatal("expected error for non-image input")
	}
	if !strings.Contains(err.Error(), "raster image") {
		t.Errorf("error = %v, want an input-type explanation", err)
	}
}

func TestImageText_DisabledBuild(t *testing.T) {
	if client, err := ocr.New(); err == nil {
		client.Close()
		t.Skip("ocr support compiled in")
	}

	_, err := FromBytes(realPNG(t), "scan.png").ImageText(context.Background())
	if !errors.Is(err, ocr.ErrOCRNotEnabled) {
		t.Errorf("error = %v, want ErrOCRNotEnabled", err)
	}
}

// ============================================================================
// Helpers and batch
// ============================================================================

func TestMust(t *testing.T) {
	// Must passes values through on success
	if got := Must("hello", nil); got != "hello" {
		t.Errorf("expected 'hello', got %q", got)
	}

	// Must panics on error
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected Must to panic on error")
		}
	}()
	Must("", os.ErrNotExist)
}

func TestMustResult(t *testing.T) {
	res := &Result{PageCount: 3}
	if got := MustResult(res, nil, nil); got != res {
		t.Error("expected the result to pass through")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected MustResult to panic on error")
		}
	}()
	MustResult[*Result](nil, nil, os.ErrNotExist)
}

func TestFormatWarnings(t *testing.T) {
	if got := FormatWarnings(nil); got != "" {
		t.Errorf("FormatWarnings(nil) = %q, want empty", got)
	}

	warns := []Warning{
		{Page: 2, Message: "slide XML malformed"},
		{Message: "missing core properties"},
	}
	got := FormatWarnings(warns)
	want := "page 2: slide XML malformed\nmissing core properties"
	if got != want {
		t.Errorf("FormatWarnings = %q, want %q", got, want)
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := &PackageReadError{Path: "deck.pptx", Err: os.ErrNotExist}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("PackageReadError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "deck.pptx") {
		t.Errorf("message = %q, want the path", err.Error())
	}
}

func TestConvertAll(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "deck.pptx")
	if err := os.WriteFile(good, buildPPTX(t, textSlides(1), nil), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	missing := filepath.Join(dir, "gone.pptx")

	items := ConvertAll(context.Background(), []string{good, missing}, nil)
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}

	if items[0].Path != good || items[1].Path != missing {
		t.Error("items should keep submission order")
	}
	if items[0].Err != nil {
		t.Errorf("first item failed: %v", items[0].Err)
	}
	if items[0].Result == nil || items[0].Result.PageCount != 1 {
		t.Error("first item should carry a one-page result")
	}
	if items[1].Err == nil {
		t.Error("second item should fail")
	}
	var perr *PackageReadError
	if !errors.As(items[1].Err, &perr) {
		t.Errorf("second item error = %T, want *PackageReadError", items[1].Err)
	}
}

func TestConvertAll_BaseSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.pptx")
	if err := os.WriteFile(path, buildPPTX(t, textSlides(1), nil), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	base := Open("").Landscape()
	items := ConvertAll(context.Background(), []string{path}, base)
	if items[0].Err != nil {
		t.Fatalf("convert: %v", items[0].Err)
	}

	dims, err := api.PageDims(bytes.NewReader(items[0].Result.PDF), pdfmodel.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("PageDims: %v", err)
	}
	if dims[0].Width <= dims[0].Height {
		t.Error("base orientation should apply to batch items")
	}

	if base.filename != "" {
		t.Error("batch must not mutate the base converter")
	}
}

func TestConvertAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := ConvertAll(ctx, []string{"a.pptx", "b.pptx"}, nil)
	for i, item := range items {
		if !errors.Is(item.Err, context.Canceled) {
			t.Errorf("item %d error = %v, want context.Canceled", i, item.Err)
		}
	}
}
