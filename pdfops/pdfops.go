// Package pdfops provides the suite's file-level PDF tools: merge,
// split, compress, image import, stamping and inspection. Every
// operation is a thin pdfcpu wrapper over file paths with validated
// arguments and wrapped errors; the office-to-PDF pipeline lives in the
// root package, not here.
package pdfops

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/sidsharmaji/PDF-Master-pro/ocr"
)

func conf() *model.Configuration {
	return model.NewDefaultConfiguration()
}

// Merge concatenates the input PDFs into out, in argument order.
func Merge(inputs []string, out string) error {
	if len(inputs) < 2 {
		return fmt.Errorf("merge needs at least two inputs, got %d", len(inputs))
	}
	if err := api.MergeCreateFile(inputs, out, false, conf()); err != nil {
		return fmt.Errorf("merging %d files: %w", len(inputs), err)
	}
	return nil
}

// Split writes the input's pages into outDir, span pages per output
// file. A span below one means single-page files.
func Split(in, outDir string, span int) error {
	if span < 1 {
		span = 1
	}
	if err := api.SplitFile(in, outDir, span, conf()); err != nil {
		return fmt.Errorf("splitting %s: %w", in, err)
	}
	return nil
}

// Compress rewrites in through the optimizer, dropping duplicate and
// unused objects.
func Compress(in, out string) error {
	if err := api.OptimizeFile(in, out, conf()); err != nil {
		return fmt.Errorf("compressing %s: %w", in, err)
	}
	return nil
}

// OCRText holds the recognition sidecar for one input image.
type OCRText struct {
	Path string
	Text string
	Err  error
}

// ImagesToPDF builds a PDF with one page per image file, pages sized to
// each image. With a non-nil client every image also runs through text
// recognition; per-image recognition failures land in the sidecar and
// never fail the PDF build.
func ImagesToPDF(ctx context.Context, images []string, out string, client *ocr.Client) ([]OCRText, error) {
	if len(images) == 0 {
		return nil, errors.New("no images given")
	}
	if err := api.ImportImagesFile(images, out, nil, conf()); err != nil {
		return nil, fmt.Errorf("importing images: %w", err)
	}
	if client == nil {
		return nil, nil
	}

	sidecar := make([]OCRText, 0, len(images))
	for _, path := range images {
		if err := ctx.Err(); err != nil {
			return sidecar, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			sidecar = append(sidecar, OCRText{Path: path, Err: err})
			continue
		}
		text, err := client.Recognize(ctx, data)
		sidecar = append(sidecar, OCRText{Path: path, Text: text, Err: err})
	}
	return sidecar, nil
}

// Stamp overlays the text diagonally on every page, translucent gray.
func Stamp(in, out, text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("empty stamp text")
	}
	desc := "fontname:Helvetica, points:48, scalefactor:0.9 rel, opacity:0.4, fillcolor:#808080"
	if err := api.AddTextWatermarksFile(in, out, nil, true, text, desc, conf()); err != nil {
		return fmt.Errorf("stamping %s: %w", in, err)
	}
	return nil
}

// PageCount reports the number of pages in the input.
func PageCount(in string) (int, error) {
	n, err := api.PageCountFile(in)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", in, err)
	}
	return n, nil
}

// Dim is one page's media box size in points.
type Dim struct {
	Width  float64
	Height float64
}

// PageDims reports every page's media box size in points.
func PageDims(in string) ([]Dim, error) {
	dims, err := api.PageDimsFile(in)
	if err != nil {
		return nil, fmt.Errorf("reading page dimensions of %s: %w", in, err)
	}
	out := make([]Dim, len(dims))
	for i, d := range dims {
		out[i] = Dim{Width: d.Width, Height: d.Height}
	}
	return out, nil
}
