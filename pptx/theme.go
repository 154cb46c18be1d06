package pptx

import (
	"encoding/xml"

	"github.com/sidsharmaji/PDF-Master-pro/model"
)

// palette holds the resolved theme color scheme for a presentation.
// Scheme color references in slides (schemeClr val="accent1") resolve
// against it. A zero palette falls back to black text on white.
type palette struct {
	colors map[string]model.Color
}

// parseTheme builds a palette from a ppt/theme/theme*.xml document.
func parseTheme(data []byte) (*palette, error) {
	var theme themeXML
	if err := xml.Unmarshal(data, &theme); err != nil {
		return nil, err
	}

	scheme := theme.ThemeElements.ClrScheme
	p := &palette{colors: make(map[string]model.Color)}
	p.put("dk1", scheme.Dk1)
	p.put("lt1", scheme.Lt1)
	p.put("dk2", scheme.Dk2)
	p.put("lt2", scheme.Lt2)
	p.put("accent1", scheme.Accent1)
	p.put("accent2", scheme.Accent2)
	p.put("accent3", scheme.Accent3)
	p.put("accent4", scheme.Accent4)
	p.put("accent5", scheme.Accent5)
	p.put("accent6", scheme.Accent6)
	p.put("hlink", scheme.Hlink)
	p.put("folHlink", scheme.FolHlink)
	return p, nil
}

func (p *palette) put(name string, c themeColorXML) {
	if c.SrgbClr != nil {
		if col, ok := model.ParseColor(c.SrgbClr.Val); ok {
			p.colors[name] = col
			return
		}
	}
	if c.SysClr != nil {
		if col, ok := model.ParseColor(c.SysClr.LastClr); ok {
			p.colors[name] = col
			return
		}
		// System colors without a cached value resolve to their
		// conventional meaning.
		switch c.SysClr.Val {
		case "windowText":
			p.colors[name] = model.Black
		case "window":
			p.colors[name] = model.White
		}
	}
}

// resolve maps a scheme color name to a concrete color. Slide-level
// names (tx1, bg1) alias the theme slots (dk1, lt1) per the OOXML
// color mapping. Unknown names fall back to black for foreground
// roles and white for background roles.
func (p *palette) resolve(name string, background bool) model.Color {
	switch name {
	case "tx1":
		name = "dk1"
	case "tx2":
		name = "dk2"
	case "bg1":
		name = "lt1"
	case "bg2":
		name = "lt2"
	}
	if p != nil {
		if c, ok := p.colors[name]; ok {
			return c
		}
	}
	if background {
		return model.White
	}
	return model.Black
}

// fillColor resolves a solidFill to a concrete color. The second
// return reports whether the fill carried a usable color at all.
func (p *palette) fillColor(fill *solidFillXML, background bool) (model.Color, bool) {
	if fill == nil {
		return model.Color{}, false
	}
	if fill.SrgbClr != nil {
		if c, ok := model.ParseColor(fill.SrgbClr.Val); ok {
			return c, true
		}
	}
	if fill.SchemeClr != nil && fill.SchemeClr.Val != "" {
		return p.resolve(fill.SchemeClr.Val, background), true
	}
	return model.Color{}, false
}

// fillAlpha reports the opacity carried by a solidFill, in the range
// 0 to 1. Fills without an explicit alpha are fully opaque.
func fillAlpha(fill *solidFillXML) float64 {
	if fill == nil {
		return 1
	}
	var a *alphaXML
	if fill.SrgbClr != nil {
		a = fill.SrgbClr.Alpha
	} else if fill.SchemeClr != nil {
		a = fill.SchemeClr.Alpha
	}
	if a == nil {
		return 1
	}
	v := float64(a.Val) / 100000.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
