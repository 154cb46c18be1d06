package render

import (
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/font"

	"github.com/sidsharmaji/PDF-Master-pro/model"
)

const lineHeightFactor = 1.35

// textLine is one wrapped line tagged with its paragraph position, which
// justification needs since a paragraph's last line stays left-aligned.
type textLine struct {
	line
	lastOfPara bool
}

// drawText paints one text element: the container fill and border first,
// then the runs wrapped inside the padded box. The element paints in a
// single style, the first non-break run's, so mixed-style content shows
// in its leading style.
func drawText(ctx *Context, t *model.Text) {
	x, y, w, h := ctx.Box(t.BBox)
	if w <= 0 || h <= 0 {
		return
	}
	restore := ctx.Surface.SetOpacity(styleOpacity(t.Style))
	defer restore()
	ctx.Surface.Layer(x, y, w, h, t.Style.Rotation, func(s Surface) {
		paintTextBox(ctx, s, t, x, y, w, h)
	})
}

func paintTextBox(ctx *Context, s Surface, t *model.Text, x, y, w, h float64) {
	stroke := colorOrNil(t.Style.BorderColor)
	strokeW := 0.0
	if stroke != nil {
		strokeW = math.Max(ctx.Length(t.Style.BorderWidth), 1)
	}
	fill := colorOrNil(t.Style.Fill)
	if fill != nil || stroke != nil {
		s.DrawRect(x, y, w, h, fill, stroke, strokeW, t.Style.BorderStyle)
	}
	if t.IsBlank() {
		return
	}

	rs := t.RunStyle()
	fontPx := ctx.FontPixels(styleFontSize(rs))
	face := ctx.faces().Face(rs.Bold, rs.Italic, fontPx)
	pad := math.Max(3, fontPx*0.2)
	maxW := w - 2*pad
	if maxW < 1 {
		return
	}

	var lines []textLine
	for _, para := range paragraphs(t) {
		wrapped := wrapText(face, para, maxW)
		for i, ln := range wrapped {
			lines = append(lines, textLine{line: ln, lastOfPara: i == len(wrapped)-1})
		}
	}

	lineH := fontPx * lineHeightFactor
	total := float64(len(lines)) * lineH
	startY := y + pad
	// Overflow clamps to the top so the opening lines stay visible and
	// only the bottom clips.
	if total < h-2*pad {
		switch t.Style.VAlign {
		case model.VAlignMiddle:
			startY = y + (h-total)/2
		case model.VAlignBottom:
			startY = y + h - pad - total
		}
	}

	metrics := face.Metrics()
	ascent := float64(metrics.Ascent) / 64
	fg := rs.Color.NRGBA(1)
	thickness := math.Max(1, fontPx/16)

	for i, ln := range lines {
		baseline := startY + float64(i)*lineH + ascent
		if baseline-ascent > y+h {
			break
		}
		justified := t.Style.Align == model.AlignJustify && !ln.lastOfPara && ln.text != ""
		lw := ln.width
		if justified {
			lw = maxW
		}
		lx := x + pad
		switch t.Style.Align {
		case model.AlignCenter:
			lx = x + (w-lw)/2
		case model.AlignRight:
			lx = x + w - pad - lw
		}

		if highlight := colorOrNil(rs.Fill); highlight != nil && ln.text != "" {
			s.DrawRect(lx-1, baseline-ascent, lw+2, lineH, highlight, nil, 0, model.BorderSolid)
		}
		if rs.Shadow && ln.text != "" {
			off := math.Max(1, fontPx*0.06)
			shadow := color.NRGBA{A: 90}
			if justified {
				drawJustified(s, face, ln.text, lx+off, baseline+off, maxW, shadow)
			} else {
				s.DrawText(ln.text, face, lx+off, baseline+off, shadow)
			}
		}
		if justified {
			drawJustified(s, face, ln.text, lx, baseline, maxW, fg)
		} else {
			s.DrawText(ln.text, face, lx, baseline, fg)
		}
		if rs.Underline {
			s.DrawLine(lx, baseline+2, lx+lw, baseline+2, fg, thickness)
		}
		if rs.Strikethrough {
			sy := baseline - ascent/3
			s.DrawLine(lx, sy, lx+lw, sy, fg, thickness)
		}
	}
}

// paragraphs splits the element's runs at explicit break runs and joins
// the rest into plain paragraph strings.
func paragraphs(t *model.Text) []string {
	var paras []string
	var cur strings.Builder
	for _, r := range t.Runs {
		if r.Text == "\n" {
			paras = append(paras, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteString(r.Text)
	}
	return append(paras, cur.String())
}

// drawJustified spreads the line's words so the final glyph lands on the
// right edge. Lines with one word, or already wider than the box, draw
// plainly instead.
func drawJustified(s Surface, face font.Face, text string, x, baseline, maxW float64, c color.Color) {
	words := strings.Fields(text)
	if len(words) < 2 {
		s.DrawText(text, face, x, baseline, c)
		return
	}
	var total float64
	for _, w := range words {
		total += measure(face, w)
	}
	gap := (maxW - total) / float64(len(words)-1)
	if gap <= 0 {
		s.DrawText(text, face, x, baseline, c)
		return
	}
	pos := x
	for _, w := range words {
		s.DrawText(w, face, pos, baseline, c)
		pos += measure(face, w) + gap
	}
}
