package model

import "image/color"

// Color is an RGB color with channels in 0..1
type Color struct {
	R, G, B float64
}

// Conventional fallback colors for unresolved theme references: white for
// background roles, black for foreground roles.
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// ParseColor parses a 6-digit hex color token with no prefix, the form
// Office documents use natively ("1F4E79"). It reports false for any other
// input so callers can keep the inherited color.
func ParseColor(s string) (Color, bool) {
	if len(s) != 6 {
		return Color{}, false
	}
	var v [3]float64
	for i := 0; i < 3; i++ {
		hi, ok1 := hexVal(s[2*i])
		lo, ok2 := hexVal(s[2*i+1])
		if !ok1 || !ok2 {
			return Color{}, false
		}
		v[i] = float64(hi*16+lo) / 255
	}
	return Color{R: v[0], G: v[1], B: v[2]}, true
}

func hexVal(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	}
	return 0, false
}

// NRGBA converts the color to 8-bit channels with the given alpha (0..1)
func (c Color) NRGBA(alpha float64) color.NRGBA {
	return color.NRGBA{
		R: channel8(c.R),
		G: channel8(c.G),
		B: channel8(c.B),
		A: channel8(alpha),
	}
}

func channel8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// TextAlignment represents horizontal text alignment
type TextAlignment int

const (
	AlignLeft TextAlignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// VerticalAlignment represents vertical anchoring within an element box
type VerticalAlignment int

const (
	VAlignTop VerticalAlignment = iota
	VAlignMiddle
	VAlignBottom
)

// BorderStyle represents how an element border is stroked
type BorderStyle int

const (
	BorderSolid BorderStyle = iota
	BorderDashed
	BorderDotted
)

// Style holds fully resolved, concrete styling for an element or run.
// Fill, BorderColor and Shadow are optional; a nil color pointer means the
// attribute is absent, not black.
type Style struct {
	FontFamily    string
	FontSize      float64 // points
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Color         Color  // text / stroke foreground
	Fill          *Color // element background or run highlight
	BorderColor   *Color
	BorderWidth   float64 // normalized pixels
	BorderStyle   BorderStyle
	Opacity       float64 // 0..1, 1 fully opaque
	Rotation      float64 // degrees clockwise
	Align         TextAlignment
	VAlign        VerticalAlignment
	Shadow        bool
}

// DefaultStyle returns the root of every inheritance chain: black 11pt
// Calibri, fully opaque, top-left anchored.
func DefaultStyle() Style {
	return Style{
		FontFamily: "Calibri",
		FontSize:   11,
		Color:      Black,
		Opacity:    1,
	}
}

// StylePatch carries only explicitly-set style attributes. Nil fields are
// unset and fall through to the inherited value during resolution.
type StylePatch struct {
	FontFamily    *string
	FontSize      *float64
	Bold          *bool
	Italic        *bool
	Underline     *bool
	Strikethrough *bool
	Color         *Color
	Fill          *Color
	BorderColor   *Color
	BorderWidth   *float64
	BorderStyle   *BorderStyle
	Opacity       *float64
	Rotation      *float64
	Align         *TextAlignment
	VAlign        *VerticalAlignment
	Shadow        *bool
}

// ResolveStyle merges an explicitly-set patch over an inherited style.
// Set fields override; unset fields keep the inherited value. The returned
// style shares no pointers with either input.
func ResolveStyle(parent Style, patch StylePatch) Style {
	out := parent
	if parent.Fill != nil {
		f := *parent.Fill
		out.Fill = &f
	}
	if parent.BorderColor != nil {
		b := *parent.BorderColor
		out.BorderColor = &b
	}
	if patch.FontFamily != nil {
		out.FontFamily = *patch.FontFamily
	}
	if patch.FontSize != nil {
		out.FontSize = *patch.FontSize
	}
	if patch.Bold != nil {
		out.Bold = *patch.Bold
	}
	if patch.Italic != nil {
		out.Italic = *patch.Italic
	}
	if patch.Underline != nil {
		out.Underline = *patch.Underline
	}
	if patch.Strikethrough != nil {
		out.Strikethrough = *patch.Strikethrough
	}
	if patch.Color != nil {
		out.Color = *patch.Color
	}
	if patch.Fill != nil {
		f := *patch.Fill
		out.Fill = &f
	}
	if patch.BorderColor != nil {
		b := *patch.BorderColor
		out.BorderColor = &b
	}
	if patch.BorderWidth != nil {
		out.BorderWidth = *patch.BorderWidth
	}
	if patch.BorderStyle != nil {
		out.BorderStyle = *patch.BorderStyle
	}
	if patch.Opacity != nil {
		out.Opacity = *patch.Opacity
	}
	if patch.Rotation != nil {
		out.Rotation = *patch.Rotation
	}
	if patch.Align != nil {
		out.Align = *patch.Align
	}
	if patch.VAlign != nil {
		out.VAlign = *patch.VAlign
	}
	if patch.Shadow != nil {
		out.Shadow = *patch.Shadow
	}
	return out
}
