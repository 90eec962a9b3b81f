// Package goquery implements newsdigest.Parser on top of goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsdigest"
	"golang.org/x/net/html"
)

// Ensure Parser implements newsdigest.Parser at compile time.
var _ newsdigest.Parser = (*Parser)(nil)

// Parser parses HTML with goquery.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses raw HTML and returns the document node.
func (p *Parser) Parse(rawHTML string) (newsdigest.Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, newsdigest.Errorf(newsdigest.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Node{sel: doc.Selection}, nil
}

// Ensure Node implements newsdigest.Node at compile time.
var _ newsdigest.Node = (*Node)(nil)

// Node adapts a single-element goquery selection to newsdigest.Node.
type Node struct {
	sel *goquery.Selection
}

// FindAll returns all descendants matching the set in document order.
func (n *Node) FindAll(set newsdigest.TagSet) []newsdigest.Node {
	var nodes []newsdigest.Node
	n.sel.Find(set.CSS()).Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &Node{sel: s})
	})
	return nodes
}

// FindFirst returns the first descendant matching the set.
func (n *Node) FindFirst(set newsdigest.TagSet) newsdigest.Node {
	return wrap(n.sel.Find(set.CSS()).First())
}

// NextSibling returns the nearest following sibling matching the set.
func (n *Node) NextSibling(set newsdigest.TagSet) newsdigest.Node {
	return wrap(n.sel.NextAllFiltered(set.CSS()).First())
}

// Parent returns the parent element.
func (n *Node) Parent() newsdigest.Node {
	return wrap(n.sel.Parent())
}

// Text returns the trimmed text content.
func (n *Node) Text() string {
	return strings.TrimSpace(n.sel.Text())
}

// Strings returns the trimmed, non-empty descendant text nodes.
func (n *Node) Strings() []string {
	var out []string
	for _, node := range n.sel.Nodes {
		out = appendStrings(out, node)
	}
	return out
}

// Attr returns the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// wrap returns nil for an empty selection so callers can test for absence.
func wrap(sel *goquery.Selection) newsdigest.Node {
	if sel.Length() == 0 {
		return nil
	}
	return &Node{sel: sel}
}

// appendStrings walks n depth-first collecting visible text.
func appendStrings(out []string, n *html.Node) []string {
	switch n.Type {
	case html.TextNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			out = append(out, s)
		}
		return out
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return out
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = appendStrings(out, c)
	}
	return out
}
