package pdfmaster

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat reports input in a format the converter detects
// but does not handle, such as OpenDocument files or an already-finished
// PDF.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// PackageReadError reports an input that could not be opened at all: the
// file is unreadable, the bytes are not a valid container, or a required
// entry is missing. It is fatal for that input; a batch continues with
// the remaining files.
type PackageReadError struct {
	Path string
	Err  error
}

func (e *PackageReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("reading package: %v", e.Err)
	}
	return fmt.Sprintf("reading package %s: %v", e.Path, e.Err)
}

func (e *PackageReadError) Unwrap() error { return e.Err }

// ElementParseError reports a single element whose markup could not be
// interpreted. Always recovered: the element is dropped or kept as a
// placeholder and the page continues.
type ElementParseError struct {
	Page int
	Err  error
}

func (e *ElementParseError) Error() string {
	return fmt.Sprintf("page %d: parsing element: %v", e.Page, e.Err)
}

func (e *ElementParseError) Unwrap() error { return e.Err }

// PageRenderError reports a page whose paint step failed outright.
// Always recovered: a substitute error page takes the page's slot so the
// output page count and pagination stay consistent.
type PageRenderError struct {
	Page int
	Err  error
}

func (e *PageRenderError) Error() string {
	return fmt.Sprintf("page %d: rendering: %v", e.Page, e.Err)
}

func (e *PageRenderError) Unwrap() error { return e.Err }

// ImageLoadError reports image data that could not be decoded within the
// load timeout. Always recovered: the painter draws the placeholder in
// the image's reserved box.
type ImageLoadError struct {
	Page int
	Ref  string
	Err  error
}

func (e *ImageLoadError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("page %d: loading image: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("page %d: loading image %s: %v", e.Page, e.Ref, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// ConversionFatalError reports a run that could not produce a single
// page. It is the terminal failure of a conversion; partial results with
// placeholder pages never use it.
type ConversionFatalError struct {
	Path string
	Err  error
}

func (e *ConversionFatalError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("conversion failed: %v", e.Err)
	}
	return fmt.Sprintf("converting %s: %v", e.Path, e.Err)
}

func (e *ConversionFatalError) Unwrap() error { return e.Err }
