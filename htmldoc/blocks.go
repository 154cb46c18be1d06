package htmldoc

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/sidsharmaji/PDF-Master-pro/layout"
	"github.com/sidsharmaji/PDF-Master-pro/model"
)

const (
	monoFontFamily  = "Courier New"
	codeFontSize    = 10.0
	smallScale      = 0.8
	paraSpacing     = 10.0
	headingSpacing  = 14.0
	listIndent      = 24.0
	quoteIndent     = 40.0
	listItemSpacing = 4.0
)

// headingSizes maps h1..h6 to point sizes, following the browser default
// scale with a 12pt body.
var headingSizes = [6]float64{24, 18, 14, 12, 10, 9}

// listBullets follows the browser ladder: disc, circle, then square for
// every deeper level.
var listBullets = [3]string{"•", "○", "▪"}

var linkColor, _ = model.ParseColor("0563C1")
var markColor, _ = model.ParseColor("FFFF00")

// skipTags are elements whose content never renders.
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"svg": true, "math": true, "iframe": true, "object": true, "embed": true,
	"canvas": true, "video": true, "audio": true, "select": true,
	"button": true, "input": true, "textarea": true,
}

// blockTags are elements that open a new flow block. Anything else found
// at block level joins an anonymous paragraph, the way browsers wrap loose
// inline content in an anonymous box.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "details": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "summary": true, "table": true, "ul": true,
}

// blockBuilder accumulates flow blocks in document order.
type blockBuilder struct {
	reader   *Reader
	blocks   []layout.Block
	problems []model.Problem
	title    string
}

func (b *blockBuilder) add(block layout.Block) {
	b.blocks = append(b.blocks, block)
}

func (b *blockBuilder) problem(msg string, args ...any) {
	b.problems = append(b.problems, model.Problem{Message: fmt.Sprintf(msg, args...)})
}

func (b *blockBuilder) excluded(n *html.Node) bool {
	return b.reader.filter != nil && b.reader.filter.exclude(n)
}

// walk processes the children of a container element. Block elements
// dispatch to their handlers; consecutive inline content between them is
// gathered into an anonymous paragraph.
func (b *blockBuilder) walk(n *html.Node) {
	var ps *paragraphState
	flush := func() {
		if ps != nil {
			b.finish(ps, 0, paraSpacing)
			ps = nil
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockTags[c.Data] {
			flush()
			b.block(c)
			continue
		}
		if c.Type == html.ElementNode && (skipTags[c.Data] || b.excluded(c)) {
			continue
		}
		if c.Type != html.TextNode && c.Type != html.ElementNode {
			continue
		}
		if ps == nil {
			if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
				continue
			}
			ps = b.newParagraph(0)
		}
		ps.inline(c, model.DefaultStyle())
	}
	flush()
}

// block dispatches one block-level element.
func (b *blockBuilder) block(n *html.Node) {
	if skipTags[n.Data] || b.excluded(n) {
		return
	}
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		b.heading(n, int(n.Data[1]-'0'))
	case "p":
		b.paragraph(n, model.DefaultStyle(), 0, 0, paraSpacing)
	case "div":
		if hasBlockChildren(n) {
			b.walk(n)
		} else {
			b.paragraph(n, model.DefaultStyle(), 0, 0, paraSpacing)
		}
	case "ul", "ol":
		b.list(n, 0, n.Data == "ol")
	case "blockquote":
		if hasBlockChildren(n) {
			b.walk(n)
		} else {
			b.paragraph(n, model.DefaultStyle(), quoteIndent, 0, paraSpacing)
		}
	case "pre":
		b.pre(n)
	case "figcaption", "dt":
		style := model.DefaultStyle()
		if n.Data == "figcaption" {
			style.Italic = true
		} else {
			style.Bold = true
		}
		b.paragraph(n, style, 0, 0, listItemSpacing)
	case "dd":
		b.paragraph(n, model.DefaultStyle(), listIndent, 0, listItemSpacing)
	case "hr":
		// No visible rule; the spacing break is enough.
	case "table":
		b.table(n)
	default:
		// article, section, main, figure, forms and other containers.
		b.walk(n)
	}
}

func (b *blockBuilder) heading(n *html.Node, level int) {
	style := model.DefaultStyle()
	style.Bold = true
	style.FontSize = headingSizes[level-1]
	if b.title == "" && level == 1 {
		b.title = normalizeText(textContent(n))
	}
	b.paragraph(n, style, 0, headingSpacing, headingSpacing/2)
}

// paragraph converts the inline content of one element into text and
// image blocks, then applies the spacing to the first and last of them.
func (b *blockBuilder) paragraph(n *html.Node, style model.Style, indent, before, after float64) {
	ps := b.newParagraph(indent)
	ps.children(n, style)
	b.finish(ps, before, after)
}

func (b *blockBuilder) finish(ps *paragraphState, before, after float64) {
	ps.flushText()
	if len(ps.parts) == 0 {
		return
	}
	ps.parts[0].SpaceBefore = before
	ps.parts[len(ps.parts)-1].SpaceAfter = after
	for _, part := range ps.parts {
		b.add(part)
	}
}

// list emits one block per item, indented by nesting depth. Ordered lists
// count in decimal as browsers do by default; nested lists restart.
func (b *blockBuilder) list(n *html.Node, level int, ordered bool) {
	counter := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" || b.excluded(c) {
			continue
		}
		counter++
		marker := listBullets[min(level, len(listBullets)-1)]
		if ordered {
			marker = fmt.Sprintf("%d.", counter)
		}
		b.listItem(c, level, marker)
	}
}

// listItem renders the item's own content with a marker prefix, then
// recurses into nested lists one level deeper.
func (b *blockBuilder) listItem(li *html.Node, level int, marker string) {
	style := model.DefaultStyle()
	ps := b.newParagraph(listIndent * float64(level+1))
	ps.text.Runs = append(ps.text.Runs, model.Run{Text: marker + " ", Style: style})

	var nested []*html.Node
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
			nested = append(nested, c)
			continue
		}
		ps.inline(c, style)
	}
	// An item holding only a nested list gets no dangling marker.
	if len(ps.parts) == 0 && len(ps.text.Runs) == 1 {
		ps.text.Runs = nil
	}
	b.finish(ps, 0, listItemSpacing)

	for _, c := range nested {
		if !b.excluded(c) {
			b.list(c, level+1, c.Data == "ol")
		}
	}
}

// pre keeps whitespace and renders in a monospace face.
func (b *blockBuilder) pre(n *html.Node) {
	text := strings.Trim(rawText(n), "\n")
	if strings.TrimSpace(text) == "" {
		return
	}
	style := model.DefaultStyle()
	style.FontFamily = monoFontFamily
	style.FontSize = codeFontSize
	t := &model.Text{
		Runs:  []model.Run{{Text: text, Style: style}},
		Style: style,
	}
	b.add(layout.Block{Text: t, SpaceAfter: paraSpacing})
}

// paragraphState assembles the runs of one paragraph. Images split the
// paragraph into multiple parts, mirroring how inline drawings split a
// Word paragraph.
type paragraphState struct {
	b      *blockBuilder
	indent float64
	text   *model.Text
	parts  []layout.Block
}

func (b *blockBuilder) newParagraph(indent float64) *paragraphState {
	return &paragraphState{b: b, indent: indent, text: &model.Text{Style: model.DefaultStyle()}}
}

func (ps *paragraphState) flushText() {
	// Boundary whitespace before a split or the paragraph end is noise.
	for n := len(ps.text.Runs); n > 0; n = len(ps.text.Runs) {
		trimmed := strings.TrimRight(ps.text.Runs[n-1].Text, " \n")
		if trimmed != "" {
			ps.text.Runs[n-1].Text = trimmed
			break
		}
		ps.text.Runs = ps.text.Runs[:n-1]
	}
	if !ps.text.IsBlank() {
		ps.parts = append(ps.parts, layout.Block{Text: ps.text, Indent: ps.indent})
	}
	ps.text = &model.Text{Style: model.DefaultStyle()}
}

func (ps *paragraphState) children(n *html.Node, style model.Style) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		ps.inline(c, style)
	}
}

// inline walks inline content, folding formatting elements into the style
// passed down to their children.
func (ps *paragraphState) inline(n *html.Node, style model.Style) {
	if n.Type == html.TextNode {
		ps.appendText(n.Data, style)
		return
	}
	if n.Type != html.ElementNode {
		return
	}
	if skipTags[n.Data] || ps.b.excluded(n) {
		return
	}

	switch n.Data {
	case "br":
		ps.text.Runs = append(ps.text.Runs, model.Run{Text: "\n", Style: style})
	case "img":
		ps.image(n)
	case "b", "strong":
		style.Bold = true
	case "i", "em", "cite", "dfn", "var":
		style.Italic = true
	case "u", "ins":
		style.Underline = true
	case "s", "del", "strike":
		style.Strikethrough = true
	case "code", "kbd", "samp", "tt":
		style.FontFamily = monoFontFamily
	case "mark":
		c := markColor
		style.Fill = &c
	case "a":
		style.Underline = true
		style.Color = linkColor
	case "sub", "sup", "small":
		style.FontSize *= smallScale
	case "p", "div", "blockquote":
		// Block content flattened inline, e.g. paragraphs inside a list
		// item. A line break separates it from what came before.
		if len(ps.text.Runs) > 0 {
			ps.text.Runs = append(ps.text.Runs, model.Run{Text: "\n", Style: style})
		}
	}
	ps.children(n, style)
}

// appendText adds a text run with whitespace collapsed. A leading space is
// dropped at the start of a paragraph or after an existing boundary space,
// so formatting whitespace in the source never doubles up.
func (ps *paragraphState) appendText(s string, style model.Style) {
	s = collapseSpace(s)
	if s == "" {
		return
	}
	if len(ps.text.Runs) == 0 || ps.endsWithSpace() {
		s = strings.TrimPrefix(s, " ")
		if s == "" {
			return
		}
	}
	ps.text.Runs = append(ps.text.Runs, model.Run{Text: s, Style: style})
}

func (ps *paragraphState) endsWithSpace() bool {
	if len(ps.text.Runs) == 0 {
		return false
	}
	last := ps.text.Runs[len(ps.text.Runs)-1].Text
	return strings.HasSuffix(last, " ") || strings.HasSuffix(last, "\n")
}

// image emits an image element, splitting the paragraph around it. Only
// data URIs carry pixel data; other sources keep their reference and are
// rendered as placeholders.
func (ps *paragraphState) image(n *html.Node) {
	src := attr(n, "src")
	img := &model.Image{
		BBox: model.BBox{
			Width:  float64(intAttr(n, "width", 0)),
			Height: float64(intAttr(n, "height", 0)),
		},
	}
	switch {
	case strings.HasPrefix(src, "data:"):
		mime, data, err := parseDataURI(src)
		if err != nil {
			ps.b.problem("decoding inline image: %v", err)
		} else {
			img.Data = data
			img.MIME = mime
		}
	case src != "":
		img.Ref = src
		ps.b.problem("image %q is not embedded, rendering placeholder", src)
	default:
		ps.b.problem("image with no source, rendering placeholder")
	}
	ps.flushText()
	ps.parts = append(ps.parts, layout.Block{Image: img, Indent: ps.indent})
}

// parseDataURI decodes an RFC 2397 data URI into its media type and bytes.
func parseDataURI(src string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(src, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data uri")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data uri has no payload")
	}

	mime := header
	isBase64 := strings.HasSuffix(header, ";base64")
	if isBase64 {
		mime = strings.TrimSuffix(header, ";base64")
	}
	mime, _, _ = strings.Cut(mime, ";")
	if mime == "" {
		mime = "text/plain"
	}

	if isBase64 {
		// Attribute values may wrap long payloads across lines.
		payload = strings.Map(func(r rune) rune {
			if r == '\n' || r == '\r' || r == '\t' || r == ' ' {
				return -1
			}
			return r
		}, payload)
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("decoding base64 payload: %w", err)
		}
		return mime, data, nil
	}
	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, fmt.Errorf("unescaping payload: %w", err)
	}
	return mime, []byte(decoded), nil
}

// collapseSpace reduces every whitespace run to a single space without
// trimming, so word boundaries survive across adjacent text nodes.
func collapseSpace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			space = true
		default:
			if space {
				sb.WriteByte(' ')
				space = false
			}
			sb.WriteRune(r)
		}
	}
	if space {
		sb.WriteByte(' ')
	}
	return sb.String()
}

// rawText concatenates text nodes without collapsing, for pre content.
func rawText(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && n.Data == "br" {
			sb.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}

// hasBlockChildren reports whether an element directly contains
// block-level elements.
func hasBlockChildren(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockTags[c.Data] {
			return true
		}
	}
	return false
}
