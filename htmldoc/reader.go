// Package htmldoc extracts HTML content into flow blocks for pagination.
//
// Input bytes are decoded to UTF-8 using the charset named by a
// Content-Type hint or a meta tag, sanitized with bluemonday to drop
// scripts and event handlers, and then walked as an x/net/html tree.
// Headings, paragraphs, lists, tables and embedded data-URI images become
// layout blocks; layout.Paginate turns those into pages, so the package
// plays the same role for HTML that the docx package plays for Word files.
package htmldoc

import (
	"bytes"
	"fmt"
	"mime"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/sidsharmaji/PDF-Master-pro/layout"
	"github.com/sidsharmaji/PDF-Master-pro/model"
)

// Options control how the input is interpreted.
type Options struct {
	// ContentType is an optional media type hint, e.g. from an HTTP
	// response header. Its charset parameter takes priority over any
	// meta tag in the document.
	ContentType string

	// KeepBoilerplate disables navigation and chrome filtering, so
	// nav bars, site headers and footers render like any other content.
	KeepBoilerplate bool
}

// Reader provides access to parsed HTML content.
type Reader struct {
	root   *html.Node
	title  string
	meta   map[string]string
	filter *boilerplateFilter
}

// Open parses an HTML file.
func Open(filename string) (*Reader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	return New(data)
}

// New parses HTML from a byte slice with default options.
func New(data []byte) (*Reader, error) {
	return NewWithOptions(data, Options{})
}

// NewWithOptions parses HTML after charset decoding and sanitization.
// Metadata comes from the unsanitized tree because sanitization strips
// the head; content comes from the sanitized tree.
func NewWithOptions(data []byte, opts Options) (*Reader, error) {
	decoded := decodeCharset(data, opts.ContentType)

	raw, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	r := &Reader{meta: make(map[string]string)}
	r.extractHead(raw)

	clean, err := html.Parse(bytes.NewReader(contentPolicy.SanitizeBytes(decoded)))
	if err != nil {
		return nil, fmt.Errorf("parsing sanitized html: %w", err)
	}
	r.root = clean

	if !opts.KeepBoilerplate {
		r.filter = newBoilerplateFilter(clean)
	}
	return r, nil
}

// contentPolicy keeps document structure and inline images while dropping
// scripts, styles and event handlers. Head content is removed entirely so
// title text cannot leak into the body as a stray paragraph; class, id and
// role survive for the boilerplate filter.
var contentPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()
	p.AllowElements("nav", "header", "footer", "aside", "main", "article",
		"section", "figure", "figcaption", "details", "summary", "caption")
	p.AllowAttrs("class", "id", "role").Globally()
	p.SkipElementsContent("head", "title")
	return p
}()

// extractHead pulls the title and meta tags out of the head element.
func (r *Reader) extractHead(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "head" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "title":
				r.title = strings.Join(strings.Fields(textContent(c)), " ")
			case "meta":
				name, content := "", ""
				for _, a := range c.Attr {
					switch a.Key {
					case "name", "property":
						name = a.Val
					case "content":
						content = a.Val
					}
				}
				if name != "" && content != "" {
					r.meta[name] = content
				}
			}
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractHead(c)
	}
}

// Metadata returns document metadata assembled from the title tag and
// common meta tags. Open Graph values fill gaps left by the plain ones.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{Title: r.title}
	if meta.Title == "" {
		meta.Title = r.meta["og:title"]
	}
	meta.Author = r.meta["author"]
	meta.Subject = r.meta["description"]
	if meta.Subject == "" {
		meta.Subject = r.meta["og:description"]
	}
	meta.Keywords = r.meta["keywords"]
	meta.Application = r.meta["generator"]
	return meta
}

// Blocks extracts the body content as flow blocks in document order.
func (r *Reader) Blocks() ([]layout.Block, []model.Problem, error) {
	b := r.build()
	return b.blocks, b.problems, nil
}

// Document paginates the flow content onto the given page settings and
// attaches the document metadata. The title falls back to the first
// heading when neither the title tag nor Open Graph carries one.
func (r *Reader) Document(s layout.Settings) (*model.Document, []model.Problem, error) {
	b := r.build()
	doc := layout.Paginate(b.blocks, s)

	meta := r.Metadata()
	meta.CanvasWidth = doc.Metadata.CanvasWidth
	meta.CanvasHeight = doc.Metadata.CanvasHeight
	meta.PageCount = doc.Metadata.PageCount
	if meta.Title == "" {
		meta.Title = b.title
	}
	doc.Metadata = meta
	return doc, b.problems, nil
}

func (r *Reader) build() *blockBuilder {
	b := &blockBuilder{reader: r}
	body := findElement(r.root, "body")
	if body == nil {
		body = r.root
	}
	b.walk(body)
	return b
}

// decodeCharset converts the input to UTF-8. A byte order mark wins over
// any declared charset; otherwise the Content-Type hint is consulted, then
// a meta tag within the first kilobyte. Unknown or missing charsets leave
// the bytes untouched on the assumption they are already UTF-8.
func decodeCharset(data []byte, contentType string) []byte {
	var name string
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return data[3:]
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		name = "utf-16be"
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		name = "utf-16le"
	default:
		name = charsetParam(contentType)
		if name == "" {
			name = sniffCharset(data)
		}
	}
	if name == "" || strings.EqualFold(name, "utf-8") {
		return data
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return data
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return data
	}
	return bytes.TrimPrefix(decoded, []byte("\uFEFF"))
}

// charsetParam extracts the charset parameter from a media type string.
func charsetParam(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

const metaScanLimit = 1024

var metaCharsetPattern = regexp.MustCompile(`(?i)charset\s*=\s*["']?\s*([A-Za-z0-9][A-Za-z0-9._\-]*)`)

// sniffCharset looks for a meta charset declaration near the top of the
// document, covering both <meta charset="..."> and the http-equiv form.
func sniffCharset(data []byte) string {
	head := data
	if len(head) > metaScanLimit {
		head = head[:metaScanLimit]
	}
	if m := metaCharsetPattern.FindSubmatch(head); m != nil {
		return string(m[1])
	}
	return ""
}

// findElement returns the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tagName); found != nil {
			return found
		}
	}
	return nil
}

// attr returns the value of an attribute on a node, or "".
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// intAttr parses an integer attribute, returning def when absent or bad.
func intAttr(n *html.Node, key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSuffix(attr(n, key), "px"))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// textContent concatenates the text of a subtree. Line break elements
// become newlines; skipped elements contribute nothing.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode {
			if skipTags[n.Data] {
				return
			}
			if n.Data == "br" {
				sb.WriteString("\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.TrimSpace(sb.String())
}

// normalizeText collapses runs of whitespace within each line while
// preserving explicit line breaks.
func normalizeText(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
