package pdfout

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/sidsharmaji/PDF-Master-pro/layout"
	"github.com/sidsharmaji/PDF-Master-pro/render"
)

func pagePNG(t *testing.T) []byte {
	t.Helper()
	data, err := render.NewRaster(119, 168).PNG()
	if err != nil {
		t.Fatalf("encoding page fixture: %v", err)
	}
	return data
}

func TestAssemble_OnePagePerImage(t *testing.T) {
	pages := [][]byte{pagePNG(t), pagePNG(t), pagePNG(t)}
	pdf, err := Assemble(pages, layout.Settings{Size: layout.PageA4})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}

	n, err := api.PageCount(bytes.NewReader(pdf), pdfmodel.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != 3 {
		t.Errorf("page count = %d, want 3", n)
	}
}

func TestAssemble_PageSizeInPoints(t *testing.T) {
	pdf, err := Assemble([][]byte{pagePNG(t)}, layout.Settings{Size: layout.PageA4})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	dims, err := api.PageDims(bytes.NewReader(pdf), pdfmodel.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("PageDims: %v", err)
	}
	if len(dims) != 1 {
		t.Fatalf("got %d pages, want 1", len(dims))
	}
	if math.Abs(dims[0].Width-595.28) > 0.1 || math.Abs(dims[0].Height-841.89) > 0.1 {
		t.Errorf("page dims = %.2fx%.2f, want 595.28x841.89", dims[0].Width, dims[0].Height)
	}
}

func TestAssemble_Landscape(t *testing.T) {
	s := layout.Settings{Size: layout.PageLetter, Landscape: true}
	pdf, err := Assemble([][]byte{pagePNG(t)}, s)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	dims, err := api.PageDims(bytes.NewReader(pdf), pdfmodel.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("PageDims: %v", err)
	}
	if dims[0].Width <= dims[0].Height {
		t.Errorf("landscape dims = %.2fx%.2f, want width > height", dims[0].Width, dims[0].Height)
	}
}

func TestAssemble_NoPages(t *testing.T) {
	if _, err := Assemble(nil, layout.Settings{}); !errors.Is(err, ErrNoPages) {
		t.Errorf("Assemble(nil) error = %v, want ErrNoPages", err)
	}
}

func TestOptimize_KeepsDocumentReadable(t *testing.T) {
	pdf, err := Assemble([][]byte{pagePNG(t), pagePNG(t)}, layout.Settings{Size: layout.PageA4})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	opt, err := Optimize(pdf)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	n, err := api.PageCount(bytes.NewReader(opt), pdfmodel.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("PageCount after optimize: %v", err)
	}
	if n != 2 {
		t.Errorf("page count after optimize = %d, want 2", n)
	}
}
