// Package layout maps the normalized page model onto physical output pages.
//
// Two strategies cover the two kinds of input. Positioned documents
// (presentations) carry their own canvas; [Fit] computes the uniform scale
// and centering offsets that place that canvas on the chosen output page.
// Flow documents (word processing, HTML, spreadsheets) arrive as an ordered
// sequence of [Block] values; [Paginate] packs them top to bottom into as
// many pages as they need.
//
// # Fitting a canvas
//
//	pl := layout.Fit(doc.Metadata.CanvasWidth, doc.Metadata.CanvasHeight, settings)
//	x, y := pl.Place(element.BBox.X, element.BBox.Y)
//
// The scale is always uniform, so the source aspect ratio is preserved; a
// fixed margin is reserved on every edge and the scaled content is centered
// in what remains.
//
// # Paginating flow content
//
//	doc := layout.Paginate(blocks, settings)
//
// Pagination assigns each block a bounding box on the page it lands on.
// The resulting document's canvas equals the content box of the chosen
// page size, so fitting it back onto the same settings yields scale 1.
//
// All dimensions are normalized pixels at 96 DPI. The renderer applies its
// own DPI multiplier on top of the values produced here.
package layout
