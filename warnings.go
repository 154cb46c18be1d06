package pdfmaster

import (
	"fmt"
	"strings"
)

// Warning records a non-fatal issue encountered during a conversion.
// Terminal operations return warnings beside their result: the run
// succeeded, but an element was dropped, an image was replaced by its
// placeholder, or a whole page was substituted. Page is the 1-indexed
// source page the issue belongs to, 0 for document-level issues.
type Warning struct {
	Page    int
	Message string
}

// String formats the warning with its page prefix.
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return w.Message
}

// FormatWarnings joins warnings into a single newline-separated string
// for display or logging.
//
// Example:
//
//	res, warnings, err := pdfmaster.Open("deck.pptx").ToPDF(ctx)
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdfmaster.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
