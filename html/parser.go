// Package html implements newsdigest.Parser by walking golang.org/x/net/html
// nodes directly, without a selector engine.
package html

import (
	"strings"

	"github.com/fwojciec/newsdigest"
	"golang.org/x/net/html"
)

// Ensure Parser implements newsdigest.Parser at compile time.
var _ newsdigest.Parser = (*Parser)(nil)

// Parser parses HTML with the x/net/html tokenizer.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses raw HTML and returns the document node.
func (p *Parser) Parse(rawHTML string) (newsdigest.Node, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, newsdigest.Errorf(newsdigest.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Node{n: doc}, nil
}

// Ensure Node implements newsdigest.Node at compile time.
var _ newsdigest.Node = (*Node)(nil)

// Node adapts an *html.Node to newsdigest.Node.
type Node struct {
	n *html.Node
}

// FindAll returns all descendants matching the set in document order.
func (n *Node) FindAll(set newsdigest.TagSet) []newsdigest.Node {
	var nodes []newsdigest.Node
	walk(n.n, func(d *html.Node) bool {
		if matches(d, set) {
			nodes = append(nodes, &Node{n: d})
		}
		return true
	})
	return nodes
}

// FindFirst returns the first descendant matching the set.
func (n *Node) FindFirst(set newsdigest.TagSet) newsdigest.Node {
	var found *html.Node
	walk(n.n, func(d *html.Node) bool {
		if matches(d, set) {
			found = d
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return &Node{n: found}
}

// NextSibling returns the nearest following sibling matching the set.
func (n *Node) NextSibling(set newsdigest.TagSet) newsdigest.Node {
	for s := n.n.NextSibling; s != nil; s = s.NextSibling {
		if matches(s, set) {
			return &Node{n: s}
		}
	}
	return nil
}

// Parent returns the parent element.
func (n *Node) Parent() newsdigest.Node {
	if p := n.n.Parent; p != nil && p.Type == html.ElementNode {
		return &Node{n: p}
	}
	return nil
}

// Text returns the trimmed text content.
func (n *Node) Text() string {
	var sb strings.Builder
	collectText(&sb, n.n)
	return strings.TrimSpace(sb.String())
}

// Strings returns the trimmed, non-empty descendant text nodes.
func (n *Node) Strings() []string {
	return appendStrings(nil, n.n)
}

// Attr returns the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// walk visits the descendants of n in document order until visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !visit(c) || !walk(c, visit) {
			return false
		}
	}
	return true
}

func matches(n *html.Node, set newsdigest.TagSet) bool {
	if n.Type != html.ElementNode {
		return false
	}
	return set.Match(n.Data, func(name string) bool {
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == name {
				return true
			}
		}
		return false
	})
}

func collectText(sb *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(sb, c)
	}
}

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
