package render

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// faceKey identifies one cached face. Sizes are bucketed to quarter
// pixels so float jitter does not multiply cache entries.
type faceKey struct {
	bold   bool
	italic bool
	size   int
}

// FaceCache parses and caches scaled font faces. The suite bundles the
// Go font family and maps every document font onto it, so rendering
// never depends on fonts installed on the host. The cache is safe for
// concurrent use; a converter owns one and threads it through Context.
type FaceCache struct {
	mu    sync.Mutex
	faces map[faceKey]font.Face
	sfnts [4]*opentype.Font
}

// NewFaceCache creates an empty cache. Fonts are parsed on first use.
func NewFaceCache() *FaceCache {
	return &FaceCache{faces: make(map[faceKey]font.Face)}
}

// Face returns a face for the style at the given pixel size. Any parse
// or construction failure falls back to the fixed 7x13 face so text
// always draws.
func (fc *FaceCache) Face(bold, italic bool, sizePx float64) font.Face {
	if sizePx < 4 {
		sizePx = 4
	}
	if sizePx > 400 {
		sizePx = 400
	}
	key := faceKey{bold: bold, italic: italic, size: int(sizePx*4 + 0.5)}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if f, ok := fc.faces[key]; ok {
		return f
	}
	f := fc.build(key)
	fc.faces[key] = f
	return f
}

func (fc *FaceCache) build(key faceKey) font.Face {
	idx := 0
	if key.bold {
		idx |= 1
	}
	if key.italic {
		idx |= 2
	}
	if fc.sfnts[idx] == nil {
		var ttf []byte
		switch {
		case key.bold && key.italic:
			ttf = gobolditalic.TTF
		case key.bold:
			ttf = gobold.TTF
		case key.italic:
			ttf = goitalic.TTF
		default:
			ttf = goregular.TTF
		}
		f, err := opentype.Parse(ttf)
		if err != nil {
			return basicfont.Face7x13
		}
		fc.sfnts[idx] = f
	}
	// At 72 DPI the point size is the pixel size.
	face, err := opentype.NewFace(fc.sfnts[idx], &opentype.FaceOptions{
		Size:    float64(key.size) / 4,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
