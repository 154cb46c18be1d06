package pdfmaster

import (
	"log/slog"

	"github.com/sidsharmaji/PDF-Master-pro/layout"
)

// convertOptions holds configuration for one conversion run.
type convertOptions struct {
	// Output page geometry
	size      layout.PageSize
	landscape bool
	dpi       int

	// Content selection
	includeImages bool
	includeHidden bool

	// Output treatments
	watermark string
	compress  bool

	// Run hooks
	progress     func(percent int)
	logger       *slog.Logger
	ocrLanguages []string
}

// defaultOptions returns the default conversion options: portrait A4 at
// the 96 DPI base scale, images included, hidden pages excluded.
func defaultOptions() convertOptions {
	return convertOptions{
		size:          layout.PageA4,
		landscape:     false,
		dpi:           defaultDPI,
		includeImages: true,
		includeHidden: false,
	}
}

// clone creates a deep copy of convertOptions.
func (o convertOptions) clone() convertOptions {
	newOpts := o

	// Deep copy the language list
	if o.ocrLanguages != nil {
		newOpts.ocrLanguages = make([]string, len(o.ocrLanguages))
		copy(newOpts.ocrLanguages, o.ocrLanguages)
	}

	return newOpts
}

// settings returns the page geometry the options select.
func (o convertOptions) settings() layout.Settings {
	return layout.Settings{Size: o.size, Landscape: o.landscape}
}

// deviceScale returns the raster scale factor relative to the 96 DPI
// layout base.
func (o convertOptions) deviceScale() float64 {
	if o.dpi <= 0 {
		return 1
	}
	return float64(o.dpi) / defaultDPI
}
