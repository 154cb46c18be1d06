package docx

import (
	"strconv"
	"strings"

	"github.com/sidsharmaji/PDF-Master-pro/model"
)

// resolvedStyle is a fully resolved paragraph style: character formatting
// plus the flow geometry the paginator needs. Distances are pixels.
type resolvedStyle struct {
	style       model.Style
	spaceBefore float64
	spaceAfter  float64
	indent      float64
	heading     int // 1-9 for headings, 0 otherwise
}

// Word's built-in default of 8pt spacing after a paragraph, in twips.
const defaultSpaceAfterTwips = "160"

// StyleResolver resolves paragraph styles through the basedOn inheritance
// chain in word/styles.xml. Resolution order is document defaults, then
// each chain entry from base to derived; direct paragraph formatting is
// applied on top by the caller. Results are cached per style id.
type StyleResolver struct {
	styles   map[string]*styleDefXML
	resolved map[string]resolvedStyle
	defaults resolvedStyle
}

// NewStyleResolver builds a resolver from a parsed styles part. A nil
// styles part leaves only the built-in defaults: Calibri 11pt black with
// Word's standard paragraph spacing.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	r := &StyleResolver{
		styles:   make(map[string]*styleDefXML),
		resolved: make(map[string]resolvedStyle),
	}
	r.defaults = resolvedStyle{style: model.DefaultStyle()}
	r.defaults.spaceAfter, _ = parseTwips(defaultSpaceAfterTwips)

	if styles == nil {
		return r
	}
	for i := range styles.Styles {
		s := &styles.Styles[i]
		if s.StyleID != "" {
			r.styles[s.StyleID] = s
		}
	}
	if rpr := styles.DocDefaults.RPrDefault.RPr; rpr != nil {
		r.defaults.style = model.ResolveStyle(r.defaults.style, runPatch(rpr))
	}
	if ppr := styles.DocDefaults.PPrDefault.PPr; ppr != nil {
		applyParagraphProps(&r.defaults, ppr)
	}
	return r
}

// Resolve returns the effective style for a paragraph style id. Unknown
// or empty ids resolve to the document defaults.
func (r *StyleResolver) Resolve(styleID string) resolvedStyle {
	if styleID == "" {
		return r.defaults
	}
	if cached, ok := r.resolved[styleID]; ok {
		return cached
	}
	out := r.defaults
	for _, def := range r.chain(styleID) {
		if def.PPr != nil {
			applyParagraphProps(&out, def.PPr)
		}
		if def.RPr != nil {
			out.style = model.ResolveStyle(out.style, runPatch(def.RPr))
		}
	}
	out.heading = headingLevel(r.styles[styleID], out)
	r.resolved[styleID] = out
	return out
}

// chain returns the style definitions from base to derived. A visited set
// guards against basedOn cycles.
func (r *StyleResolver) chain(styleID string) []*styleDefXML {
	var defs []*styleDefXML
	visited := make(map[string]bool)
	for id := styleID; id != "" && !visited[id]; {
		visited[id] = true
		def, ok := r.styles[id]
		if !ok {
			break
		}
		defs = append([]*styleDefXML{def}, defs...)
		id = def.BasedOn.Val
	}
	return defs
}

// resolveRun folds direct run formatting over the paragraph's effective
// style.
func resolveRun(base model.Style, props *runPropsXML) model.Style {
	if props == nil {
		return base
	}
	return model.ResolveStyle(base, runPatch(props))
}

// runPatch converts run properties into a style patch. "auto" colors and
// empty attributes stay unset so the inherited value shows through.
func runPatch(props *runPropsXML) model.StylePatch {
	var patch model.StylePatch
	if props == nil {
		return patch
	}
	if props.Fonts.ASCII != "" {
		f := props.Fonts.ASCII
		patch.FontFamily = &f
	}
	if pt, ok := parseHalfPoints(props.Size.Val); ok {
		patch.FontSize = &pt
	}
	if props.Bold != nil {
		b := props.Bold.on()
		patch.Bold = &b
	}
	if props.Italic != nil {
		i := props.Italic.on()
		patch.Italic = &i
	}
	if props.Underline.Val != "" {
		u := props.Underline.Val != "none"
		patch.Underline = &u
	}
	if props.Strike != nil {
		s := props.Strike.on()
		patch.Strikethrough = &s
	}
	if c, ok := model.ParseColor(props.Color.Val); ok {
		patch.Color = &c
	}
	if c, ok := highlightColor(props.Highlight.Val); ok {
		patch.Fill = &c
	} else if c, ok := model.ParseColor(props.Shading.Fill); ok {
		patch.Fill = &c
	}
	return patch
}

// applyParagraphProps folds paragraph properties into a resolved style.
func applyParagraphProps(out *resolvedStyle, props *paragraphPropsXML) {
	if a, ok := alignment(props.Justification.Val); ok {
		out.style.Align = a
	}
	if v, ok := parseTwips(props.Spacing.Before); ok {
		out.spaceBefore = v
	}
	if v, ok := parseTwips(props.Spacing.After); ok {
		out.spaceAfter = v
	}
	if v, ok := parseTwips(props.Indent.Left); ok {
		out.indent = v
	}
}

// headingLevel detects whether a style is a heading. Built-in ids win,
// then the display name, then the outline level; as a last resort a bold
// style at 14pt or larger counts as a minor heading.
func headingLevel(def *styleDefXML, rs resolvedStyle) int {
	if def == nil {
		return 0
	}
	if lvl := builtinHeading(def.StyleID); lvl > 0 {
		return lvl
	}
	name := strings.ToLower(def.Name.Val)
	if rest, ok := strings.CutPrefix(name, "heading "); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 && n <= 9 {
			return n
		}
	}
	if def.PPr != nil && def.PPr.OutlineLvl.Val != "" {
		if n, err := strconv.Atoi(def.PPr.OutlineLvl.Val); err == nil && n >= 0 && n < 9 {
			return n + 1
		}
	}
	if rs.style.Bold && rs.style.FontSize >= 14 {
		switch {
		case rs.style.FontSize >= 20:
			return 1
		case rs.style.FontSize >= 16:
			return 2
		default:
			return 3
		}
	}
	return 0
}

func builtinHeading(styleID string) int {
	id := strings.ToLower(styleID)
	switch id {
	case "title":
		return 1
	case "subtitle":
		return 2
	}
	if rest, ok := strings.CutPrefix(id, "heading"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 && n <= 9 {
			return n
		}
	}
	return 0
}

// alignment maps w:jc values onto text alignments.
func alignment(val string) (model.TextAlignment, bool) {
	switch val {
	case "left", "start":
		return model.AlignLeft, true
	case "center":
		return model.AlignCenter, true
	case "right", "end":
		return model.AlignRight, true
	case "both", "distribute":
		return model.AlignJustify, true
	default:
		return model.AlignLeft, false
	}
}

// highlightNames maps w:highlight values onto colors.
var highlightNames = map[string]model.Color{
	"yellow":      {R: 1, G: 1, B: 0},
	"green":       {R: 0, G: 1, B: 0},
	"cyan":        {R: 0, G: 1, B: 1},
	"magenta":     {R: 1, G: 0, B: 1},
	"blue":        {R: 0, G: 0, B: 1},
	"red":         {R: 1, G: 0, B: 0},
	"darkBlue":    {R: 0, G: 0, B: 0.5},
	"darkCyan":    {R: 0, G: 0.5, B: 0.5},
	"darkGreen":   {R: 0, G: 0.5, B: 0},
	"darkMagenta": {R: 0.5, G: 0, B: 0.5},
	"darkRed":     {R: 0.5, G: 0, B: 0},
	"darkYellow":  {R: 0.5, G: 0.5, B: 0},
	"darkGray":    {R: 0.5, G: 0.5, B: 0.5},
	"lightGray":   {R: 0.75, G: 0.75, B: 0.75},
	"black":       {R: 0, G: 0, B: 0},
	"white":       {R: 1, G: 1, B: 1},
}

func highlightColor(name string) (model.Color, bool) {
	if name == "" || name == "none" {
		return model.Color{}, false
	}
	c, ok := highlightNames[name]
	return c, ok
}

// parseHalfPoints converts a font size attribute (half-points) to points.
func parseHalfPoints(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v / 2, true
}

// 1440 twips per inch against 96 pixels per inch.
const twipsPerPixel = 15

// parseTwips converts a twips attribute to normalized pixels.
func parseTwips(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v / twipsPerPixel, true
}

// parseEMU converts an EMU attribute to normalized pixels.
func parseEMU(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v / 9525
}
