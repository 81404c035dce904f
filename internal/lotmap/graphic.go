package lotmap

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Graphic is a parsed site plan. The markup is parsed as an HTML fragment in a
// body context so that <svg> and its descendants become foreign (SVG namespace)
// elements, exactly as they would when injected into the page.
type Graphic struct {
	root       *html.Node
	classRules []classRule
}

// classRule is a single ".name { fill: ... }" rule from a <style> block.
type classRule struct {
	class string
	fill  string
}

// the css tokenizer keeps comments inside selectors and values, so they go first
var cssComment = regexp.MustCompile(`(?s)/\*.*?\*/`)

// ParseGraphic reads SVG markup.
func ParseGraphic(r io.Reader) (*Graphic, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("lotmap: parse graphic: %w", err)
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	g := &Graphic{root: root}
	if g.find(func(n *html.Node) bool { return n.Data == "svg" }) == nil {
		return nil, fmt.Errorf("lotmap: parse graphic: no <svg> element")
	}
	g.classRules = collectClassRules(root)
	return g, nil
}

// Markup renders the graphic back to markup.
func (g *Graphic) Markup() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, g.root); err != nil {
		return "", fmt.Errorf("lotmap: render graphic: %w", err)
	}
	return buf.String(), nil
}

// walk visits element nodes depth-first in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			visit(c)
		}
		walk(c, visit)
	}
}

func (g *Graphic) find(match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(g.root, func(n *html.Node) {
		if found == nil && match(n) {
			found = n
		}
	})
	return found
}

// withID lists every element carrying an id attribute, in document order.
func (g *Graphic) withID() []*html.Node {
	var out []*html.Node
	walk(g.root, func(n *html.Node) {
		if id, ok := attr(n, "id"); ok && strings.TrimSpace(id) != "" {
			out = append(out, n)
		}
	})
	return out
}

func collectClassRules(root *html.Node) []classRule {
	var rules []classRule
	walk(root, func(n *html.Node) {
		if n.Data != "style" {
			return
		}
		var text strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				text.WriteString(c.Data)
			}
		}
		sheet, err := parser.Parse(cssComment.ReplaceAllString(text.String(), " "))
		if err != nil {
			// an unreadable stylesheet contributes no rules
			return
		}
		rules = appendClassRules(rules, sheet.Rules)
	})
	return rules
}

// appendClassRules keeps plain ".name" selectors that declare a fill. Rules
// nested in at-rules such as @media are included.
func appendClassRules(rules []classRule, list []*css.Rule) []classRule {
	for _, rule := range list {
		if rule.Kind == css.AtRule {
			rules = appendClassRules(rules, rule.Rules)
			continue
		}
		var fill string
		for _, decl := range rule.Declarations {
			if strings.EqualFold(decl.Property, "fill") {
				fill = strings.TrimSpace(decl.Value)
			}
		}
		if fill == "" {
			continue
		}
		for _, sel := range rule.Selectors {
			if strings.HasPrefix(sel, ".") && len(sel) > 1 && !strings.ContainsAny(sel[1:], ". #:[>+~") {
				rules = append(rules, classRule{class: sel[1:], fill: fill})
			}
		}
	}
	return rules
}

// ownFill reports the fill declared on the element itself: inline style first,
// then stylesheet class rules (last rule wins), then the presentation attribute.
func (g *Graphic) ownFill(n *html.Node) (string, bool) {
	if style, ok := attr(n, "style"); ok {
		if v, ok := parseStyle(style).get("fill"); ok {
			return v, true
		}
	}
	if classes, ok := attr(n, "class"); ok && len(g.classRules) > 0 {
		fields := strings.Fields(classes)
		var fill string
		var found bool
		for _, rule := range g.classRules {
			for _, cls := range fields {
				if cls == rule.class {
					fill, found = rule.fill, true
				}
			}
		}
		if found {
			return fill, true
		}
	}
	if v, ok := attr(n, "fill"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), true
	}
	return "", false
}

// resolvedFill walks up the ancestors like CSS inheritance does. SVG shapes
// without any fill paint black.
func (g *Graphic) resolvedFill(n *html.Node) string {
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		if v, ok := g.ownFill(cur); ok && !strings.EqualFold(v, "inherit") {
			return strings.ToLower(v)
		}
	}
	return "black"
}

var primitives = map[string]bool{
	"path":    true,
	"polygon": true,
	"rect":    true,
	"ellipse": true,
}

// paintable reports a drawable primitive whose resolved fill is not "none".
func (g *Graphic) paintable(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode || !primitives[strings.ToLower(n.Data)] {
		return false
	}
	return g.resolvedFill(n) != "none"
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}
