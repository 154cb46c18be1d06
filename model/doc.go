// Package model provides the intermediate page model shared by all
// conversion pipelines.
//
// Extraction (pptx, docx, htmldoc, xlsx) produces these types; layout and
// rendering consume them. The model is built once per conversion run and
// discarded after the output document is emitted.
//
// # Document Structure
//
// The [Document] type represents one input file: document-level [Metadata]
// plus an ordered list of pages.
//
//	doc := model.NewDocument()
//	doc.Metadata.Title = "Quarterly Review"
//	doc.AddPage(page)
//
// Page order is the source's natural page/slide order and is preserved
// end-to-end. Each [Page] carries its background, speaker notes, hidden
// flag, and an ordered list of [Element] values.
//
// # Elements
//
// All page content implements the [Element] interface. The concrete types:
//
//   - [Text] - block of styled text runs
//   - [Image] - raster image with an opaque source reference
//   - [Shape] - vector shape ([ShapeKind])
//   - [Table] - rows of styled cells
//
// Elements are painted in ascending z-index order; ties keep extraction
// order. [SortByZ] performs that stable ordering.
//
// # Coordinates
//
// All positions and sizes are in normalized pixels: source-native units
// (EMUs for presentations, twips for word-processing documents) divided by
// a fixed linear constant so that one unit equals one CSS pixel at 96 DPI.
// The origin is the top-left corner of the page canvas.
//
// # Styles
//
// [Style] holds fully resolved, concrete values. Extraction folds raw
// markup attributes into a [StylePatch] (explicitly-set fields only) and
// applies it with [ResolveStyle]: a set field overrides the inherited
// value, an unset field falls through to it.
package model
