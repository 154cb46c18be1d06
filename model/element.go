package model

import (
	"sort"
	"strings"
)

// ElementType represents the type of page element
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeText
	ElementTypeImage
	ElementTypeShape
	ElementTypeTable
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeText:
		return "Text"
	case ElementTypeImage:
		return "Image"
	case ElementTypeShape:
		return "Shape"
	case ElementTypeTable:
		return "Table"
	default:
		return "Unknown"
	}
}

// Element is the interface for all page elements
type Element interface {
	Type() ElementType
	BoundingBox() BBox
	ZIndex() int
}

// TextElement is an interface for elements containing text
type TextElement interface {
	Element
	GetText() string
}

// SortByZ orders elements for painting: ascending z-index, ties keep the
// original (extraction) order.
func SortByZ(elems []Element) {
	sort.SliceStable(elems, func(i, j int) bool {
		return elems[i].ZIndex() < elems[j].ZIndex()
	})
}

// Run is one styled span of text within a Text element. A run whose text
// is "\n" marks a paragraph boundary.
type Run struct {
	Text  string
	Style Style
}

// Text represents a block of styled text runs
type Text struct {
	Runs   []Run
	BBox   BBox
	Style  Style // container style: background, border, alignment
	ZOrder int
}

func (t *Text) Type() ElementType { return ElementTypeText }
func (t *Text) BoundingBox() BBox { return t.BBox }
func (t *Text) ZIndex() int       { return t.ZOrder }

// GetText concatenates all runs in document order
func (t *Text) GetText() string {
	var sb strings.Builder
	for _, r := range t.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// IsBlank reports whether the element holds only whitespace
func (t *Text) IsBlank() bool {
	return strings.TrimSpace(t.GetText()) == ""
}

// RunStyle returns the style text in this element is measured and painted
// with: the first non-break run's style, or the container style when the
// element has no runs.
func (t *Text) RunStyle() Style {
	for _, r := range t.Runs {
		if r.Text != "\n" {
			return r.Style
		}
	}
	return t.Style
}

// Image represents a raster image placed on the page. Ref is the opaque
// source reference (package entry name or data URI); Data holds the
// resolved bytes when extraction could load them.
type Image struct {
	Ref    string
	Data   []byte
	MIME   string
	BBox   BBox
	Style  Style
	ZOrder int
}

func (i *Image) Type() ElementType { return ElementTypeImage }
func (i *Image) BoundingBox() BBox { return i.BBox }
func (i *Image) ZIndex() int       { return i.ZOrder }

// ShapeKind identifies the geometry of a Shape element
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeRoundedRectangle
	ShapeEllipse
	ShapeTriangle
	ShapeDiamond
	ShapeArrow
	ShapeLine
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRoundedRectangle:
		return "RoundedRectangle"
	case ShapeEllipse:
		return "Ellipse"
	case ShapeTriangle:
		return "Triangle"
	case ShapeDiamond:
		return "Diamond"
	case ShapeArrow:
		return "Arrow"
	case ShapeLine:
		return "Line"
	default:
		return "Rectangle"
	}
}

// Shape represents a vector shape
type Shape struct {
	Kind ShapeKind
	// CornerRadius applies to rounded rectangles, in normalized pixels.
	CornerRadius float64
	BBox         BBox
	Style        Style
	ZOrder       int
}

func (s *Shape) Type() ElementType { return ElementTypeShape }
func (s *Shape) BoundingBox() BBox { return s.BBox }
func (s *Shape) ZIndex() int       { return s.ZOrder }
