// Package pdfout assembles rendered page images into the final PDF.
//
// Pages arrive as encoded PNGs, one per output page, already rastered at
// the target size and DPI. Each image becomes one full-bleed PDF page
// whose media box carries the page size in points, so viewers report the
// intended paper size regardless of the raster resolution.
package pdfout

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/sidsharmaji/PDF-Master-pro/layout"
)

// ErrNoPages is returned when there is nothing to assemble.
var ErrNoPages = errors.New("no pages to assemble")

// Assemble builds a single PDF from rendered page images in order, sized
// in points per the layout settings.
func Assemble(pages [][]byte, s layout.Settings) ([]byte, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	wpt, hpt := s.PagePoints()
	imp, err := api.Import(fmt.Sprintf("dim:%.2f %.2f, pos:full", wpt, hpt), types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("building import description: %w", err)
	}

	readers := make([]io.Reader, len(pages))
	for i, p := range pages {
		readers[i] = bytes.NewReader(p)
	}
	var buf bytes.Buffer
	if err := api.ImportImages(nil, &buf, readers, imp, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("importing page images: %w", err)
	}
	return buf.Bytes(), nil
}

// Optimize rewrites the PDF through pdfcpu's optimizer, dropping
// duplicate and unused objects. Used when the compress flag is set.
func Optimize(pdf []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := api.Optimize(bytes.NewReader(pdf), &buf, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("optimizing output: %w", err)
	}
	return buf.Bytes(), nil
}
