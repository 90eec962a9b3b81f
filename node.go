package newsdigest

import "strings"

// TagSet selects elements by tag name, optionally restricted to elements
// that carry a given attribute.
type TagSet struct {
	Tags []string
	Attr string
}

// Tags returns a TagSet matching any of the given lowercase tag names.
func Tags(tags ...string) TagSet {
	return TagSet{Tags: tags}
}

// With returns a copy of the set restricted to elements carrying attr.
func (s TagSet) With(attr string) TagSet {
	s.Attr = attr
	return s
}

// Match reports whether an element with the given tag name belongs to the set.
// hasAttr is consulted only when the set requires an attribute.
func (s TagSet) Match(tag string, hasAttr func(name string) bool) bool {
	for _, t := range s.Tags {
		if t != tag {
			continue
		}
		return s.Attr == "" || hasAttr(s.Attr)
	}
	return false
}

// CSS renders the set as a CSS selector group, e.g. "h1, h2" or "a[href]".
func (s TagSet) CSS() string {
	parts := make([]string, len(s.Tags))
	for i, t := range s.Tags {
		if s.Attr != "" {
			t += "[" + s.Attr + "]"
		}
		parts[i] = t
	}
	return strings.Join(parts, ", ")
}

// Tag sets used by the extraction strategies.
var (
	HeadingTags   = Tags("h1", "h2", "h3")
	ArticleTags   = Tags("article")
	ParagraphTags = Tags("p")
	TimeTags      = Tags("time")
	LinkTags      = Tags("a").With("href")
)

// Node is a single element of a parsed HTML tree. Query methods return
// matches in document order. Methods returning a Node return nil when
// nothing matches.
type Node interface {
	// FindAll returns all descendants in the set.
	FindAll(set TagSet) []Node

	// FindFirst returns the first descendant in the set.
	FindFirst(set TagSet) Node

	// NextSibling returns the nearest following sibling element in the set.
	NextSibling(set TagSet) Node

	// Parent returns the parent element.
	Parent() Node

	// Text returns the text content with surrounding whitespace trimmed.
	Text() string

	// Strings returns every descendant text node, trimmed, skipping empties.
	Strings() []string

	// Attr returns the value of the named attribute and whether it exists.
	Attr(name string) (string, bool)
}

// Parser parses raw HTML into a tree and returns its root node.
type Parser interface {
	Parse(html string) (Node, error)
}
