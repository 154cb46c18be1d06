package render

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// line is one wrapped line with its measured advance, so alignment and
// decorations reuse the measurement instead of repeating it.
type line struct {
	text  string
	width float64
}

// measure returns the advance width of s in pixels, including kerning.
// Runes the face has no glyph for are skipped, matching how missing
// glyphs render as nothing rather than widening the line.
func measure(face font.Face, s string) float64 {
	var w fixed.Int26_6
	prev := rune(-1)
	for _, r := range s {
		if prev >= 0 {
			w += face.Kern(prev, r)
		}
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			prev = r
			continue
		}
		w += adv
		prev = r
	}
	return float64(w) / 64
}

// wrapText greedily packs words into lines no wider than maxWidth. A
// word too wide for a line of its own is hard-broken at the widest
// fitting rune prefix, so no line ever exceeds the box by more than a
// single unbreakable rune.
func wrapText(face font.Face, text string, maxWidth float64) []line {
	words := strings.Fields(text)
	if len(words) == 0 {
		// An empty paragraph still occupies one line of height.
		return []line{{}}
	}

	var parts []string
	for _, w := range words {
		for measure(face, w) > maxWidth {
			head, tail := splitWord(face, w, maxWidth)
			if tail == "" {
				break
			}
			parts = append(parts, head)
			w = tail
		}
		parts = append(parts, w)
	}

	var lines []line
	cur := parts[0]
	for _, p := range parts[1:] {
		cand := cur + " " + p
		if measure(face, cand) <= maxWidth {
			cur = cand
			continue
		}
		lines = append(lines, line{text: cur, width: measure(face, cur)})
		cur = p
	}
	return append(lines, line{text: cur, width: measure(face, cur)})
}

// splitWord cuts the widest rune prefix of w that fits maxWidth. The
// prefix keeps at least one rune so splitting always makes progress; a
// single rune that cannot fit comes back whole with an empty tail.
func splitWord(face font.Face, w string, maxWidth float64) (head, tail string) {
	runes := []rune(w)
	if len(runes) < 2 {
		return w, ""
	}
	cut := 1
	for i := 2; i < len(runes); i++ {
		if measure(face, string(runes[:i])) > maxWidth {
			break
		}
		cut = i
	}
	return string(runes[:cut]), string(runes[cut:])
}
