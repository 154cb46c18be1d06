package pdfmaster

import "context"

// BatchItem is the outcome of converting one file in a batch. Result is
// nil when Err is set.
type BatchItem struct {
	// Path is the input file this item describes.
	Path string

	// Result holds the converted PDF when the conversion succeeded.
	Result *Result

	// Warnings lists the problems recovered during this conversion.
	Warnings []Warning

	// Err is the fatal error for this file, nil on success.
	Err error
}

// ConvertAll converts the given files one at a time, in submission
// order, and returns one item per file. The base converter supplies the
// settings for every file; its own input is ignored, and a nil base
// means default settings. One file's failure never aborts the rest: its
// item records the error and the batch moves on. Canceling the context
// fails each remaining file with the context's error.
//
// Example:
//
//	base := pdfmaster.Open("").PageSize(pdfmaster.PageLetter).Compress()
//	items := pdfmaster.ConvertAll(ctx, []string{"a.pptx", "b.docx"}, base)
//	for _, item := range items {
//	    if item.Err != nil {
//	        log.Printf("%s: %v", item.Path, item.Err)
//	        continue
//	    }
//	    os.WriteFile(item.Path+".pdf", item.Result.PDF, 0644)
//	}
func ConvertAll(ctx context.Context, paths []string, base *Converter) []BatchItem {
	if base == nil {
		base = &Converter{options: defaultOptions()}
	}

	items := make([]BatchItem, len(paths))
	for i, path := range paths {
		c := base.clone()
		c.filename = path
		c.data = nil
		res, warns, err := c.ToPDF(ctx)
		items[i] = BatchItem{Path: path, Result: res, Warnings: warns, Err: err}
	}
	return items
}
