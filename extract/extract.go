// Package extract finds candidate news articles in a parsed page using
// three cascading heuristics. All heuristics run on every page; overlap
// between them is resolved later by newsdigest.Dedupe.
package extract

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/newsdigest"
	"golang.org/x/sync/errgroup"
)

// MinAnchorTextLength is the rune count anchor text needs to be treated as
// a headline by the anchor strategy.
const MinAnchorTextLength = 20

// boilerplatePrefixes mark navigation anchors rather than headlines.
var boilerplatePrefixes = []string{"read more", "learn more", "home"}

// Ensure Extractor implements newsdigest.Extractor at compile time.
var _ newsdigest.Extractor = (*Extractor)(nil)

// StrategyFunc extracts candidates from a tree, resolving links against base.
type StrategyFunc func(root newsdigest.Node, base *url.URL) []*newsdigest.Article

// Extractor runs the structured, heading and anchor strategies in order.
type Extractor struct {
	// Concurrent runs the strategies in parallel. Output order is the same
	// as the sequential run.
	Concurrent bool
}

// NewExtractor creates a new sequential Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the concatenated candidates of all strategies.
func (e *Extractor) Extract(root newsdigest.Node, baseURL string) ([]*newsdigest.Article, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, newsdigest.Errorf(newsdigest.EINVALID, "invalid base URL: %v", err)
	}
	if root == nil {
		return nil, nil
	}

	strategies := []StrategyFunc{Structured, Headings, Anchors}
	results := make([][]*newsdigest.Article, len(strategies))

	if e.Concurrent {
		var g errgroup.Group
		for i, strategy := range strategies {
			g.Go(func() error {
				results[i] = strategy(root, base)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, strategy := range strategies {
			results[i] = strategy(root, base)
		}
	}

	var articles []*newsdigest.Article
	for _, r := range results {
		articles = append(articles, r...)
	}
	return articles, nil
}

// Structured extracts one candidate per <article> element from its first
// heading, link, paragraph and <time>.
func Structured(root newsdigest.Node, base *url.URL) []*newsdigest.Article {
	var articles []*newsdigest.Article
	for _, block := range root.FindAll(newsdigest.ArticleTags) {
		title := text(block.FindFirst(newsdigest.HeadingTags))
		if !validTitle(title) {
			continue
		}
		articles = append(articles, &newsdigest.Article{
			Title:    title,
			Link:     link(block.FindFirst(newsdigest.LinkTags), base),
			Snippet:  newsdigest.OptionalString(text(block.FindFirst(newsdigest.ParagraphTags))),
			Date:     date(block.FindFirst(newsdigest.TimeTags)),
			Strategy: newsdigest.StrategyStructured,
		})
	}
	return articles
}

// Headings extracts one candidate per h1-h3 heading. A linked heading uses
// the link text as title; the snippet is the next sibling paragraph or the
// first paragraph under the heading's parent.
func Headings(root newsdigest.Node, base *url.URL) []*newsdigest.Article {
	var articles []*newsdigest.Article
	for _, h := range root.FindAll(newsdigest.HeadingTags) {
		var title string
		var href *string
		if a := h.FindFirst(newsdigest.LinkTags); a != nil {
			title = a.Text()
			href = link(a, base)
		} else {
			title = h.Text()
		}
		if !validTitle(title) {
			continue
		}

		p := h.NextSibling(newsdigest.ParagraphTags)
		if p == nil {
			if parent := h.Parent(); parent != nil {
				p = parent.FindFirst(newsdigest.ParagraphTags)
			}
		}

		articles = append(articles, &newsdigest.Article{
			Title:    title,
			Link:     href,
			Snippet:  newsdigest.OptionalString(text(p)),
			Strategy: newsdigest.StrategyHeading,
		})
	}
	return articles
}

// Anchors treats every long enough link as a headline, skipping
// "read more" style boilerplate.
func Anchors(root newsdigest.Node, base *url.URL) []*newsdigest.Article {
	var articles []*newsdigest.Article
	for _, a := range root.FindAll(newsdigest.LinkTags) {
		title := strings.Join(a.Strings(), " ")
		if utf8.RuneCountInString(title) < MinAnchorTextLength || isBoilerplate(title) {
			continue
		}
		articles = append(articles, &newsdigest.Article{
			Title:    title,
			Link:     link(a, base),
			Strategy: newsdigest.StrategyAnchor,
		})
	}
	return articles
}

func validTitle(title string) bool {
	return utf8.RuneCountInString(title) > newsdigest.MinTitleLength
}

func isBoilerplate(s string) bool {
	s = strings.ToLower(s)
	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func text(n newsdigest.Node) string {
	if n == nil {
		return ""
	}
	return n.Text()
}

func link(a newsdigest.Node, base *url.URL) *string {
	if a == nil {
		return nil
	}
	href, _ := a.Attr("href")
	return newsdigest.ResolveLink(base, href)
}

// date prefers a non-empty datetime attribute over the displayed text.
func date(n newsdigest.Node) *string {
	if n == nil {
		return nil
	}
	if dt, ok := n.Attr("datetime"); ok && strings.TrimSpace(dt) != "" {
		return &dt
	}
	return newsdigest.OptionalString(n.Text())
}
