package htmldoc

import (
	"regexp"

	"golang.org/x/net/html"
)

// boilerplatePattern matches class and id tokens that mark navigation and
// page chrome. Word-boundary groups keep "menu" from matching "document".
var boilerplatePattern = regexp.MustCompile(`(?i)(^|[^a-z])(nav|navbar|navigation|menu|topnav|sidenav|breadcrumbs?|` +
	`site-header|page-header|masthead|banner|` +
	`footer|site-footer|page-footer|colophon|` +
	`sidebar|widget|widget-area)([^a-z]|$)`)

// boilerplateFilter decides which elements carry page chrome rather than
// document content. Semantic elements and ARIA roles are always honored;
// header and footer only count when they sit at the top level, so an
// article's own header still renders.
type boilerplateFilter struct {
	body    *html.Node
	wrapper *html.Node
}

func newBoilerplateFilter(root *html.Node) *boilerplateFilter {
	f := &boilerplateFilter{body: findElement(root, "body")}
	if f.body == nil {
		f.body = root
	}
	f.wrapper = singleWrapper(f.body)
	return f
}

// singleWrapper detects the common <body><div id="page">...</div></body>
// shape, so top-level checks see through the one structural wrapper.
func singleWrapper(body *html.Node) *html.Node {
	var found *html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "div", "main":
			if found != nil {
				return nil
			}
			found = c
		case "script", "style", "noscript", "template":
			// Ignored.
		default:
			return nil
		}
	}
	return found
}

func (f *boilerplateFilter) exclude(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "nav", "aside":
		return true
	case "header", "footer":
		if f.topLevel(n) {
			return true
		}
	}
	switch attr(n, "role") {
	case "navigation", "complementary":
		return true
	case "banner", "contentinfo":
		if f.topLevel(n) {
			return true
		}
	}
	if c := attr(n, "class"); c != "" && boilerplatePattern.MatchString(c) {
		return true
	}
	if id := attr(n, "id"); id != "" && boilerplatePattern.MatchString(id) {
		return true
	}
	return false
}

func (f *boilerplateFilter) topLevel(n *html.Node) bool {
	return n.Parent == f.body || (f.wrapper != nil && n.Parent == f.wrapper)
}
