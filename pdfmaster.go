// Package pdfmaster provides a fluent API for converting office documents,
// web pages, and images to PDF.
//
// Basic usage:
//
//	res, warnings, err := pdfmaster.Open("slides.pptx").ToPDF(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdfmaster.FormatWarnings(warnings))
//	}
//	os.WriteFile("slides.pdf", res.PDF, 0644)
//
// With options:
//
//	res, _, err := pdfmaster.Open("report.docx").
//	    PageSize(pdfmaster.PageLetter).
//	    Landscape().
//	    Watermark("DRAFT").
//	    ToPDF(ctx)
//
// For advanced use cases, the lower-level pptx, docx, htmldoc, xlsx,
// render, and pdfops packages are also available.
package pdfmaster

// Open opens a document file and returns a Converter for fluent
// configuration. The file is read when a terminal operation such as
// ToPDF runs, not at Open time.
//
// Example:
//
//	res, warnings, err := pdfmaster.Open("slides.pptx").ToPDF(ctx)
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes creates a Converter from document data already in memory.
// The name is optional: its extension backs up content-based format
// detection, and it labels the input in errors and warnings.
//
// Example:
//
//	data, err := os.ReadFile("slides.pptx")
//	if err != nil {
//	    // handle error
//	}
//	res, warnings, err := pdfmaster.FromBytes(data, "slides.pptx").ToPDF(ctx)
func FromBytes(data []byte, name string) *Converter {
	return &Converter{
		filename: name,
		data:     data,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	f := pdfmaster.Must(pdfmaster.Open("slides.pptx").InputFormat())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResult is a helper that wraps a call to ToPDF(), Document(), or
// Text() and panics if the error is non-nil. It discards warnings and
// returns just the value. It is intended for use in scripts or tests
// where error handling would be cumbersome.
//
// Example:
//
//	res := pdfmaster.MustResult(pdfmaster.Open("slides.pptx").ToPDF(ctx))
func MustResult[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
