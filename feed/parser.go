// Package feed reads RSS, Atom and JSON feeds with gofeed and converts
// their items into newsdigest articles.
package feed

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsdigest"
	"github.com/mmcdole/gofeed"
)

var _ newsdigest.FeedParser = (*Parser)(nil)

// Parser implements newsdigest.FeedParser using gofeed.
// A gofeed.Parser is created per call since it is not safe for concurrent use.
type Parser struct{}

// NewParser creates a new feed Parser.
func NewParser() *Parser {
	return &Parser{}
}

// IsFeed reports whether body looks like an RSS, Atom or JSON feed.
func (p *Parser) IsFeed(body string) bool {
	return gofeed.DetectFeedType(strings.NewReader(body)) != gofeed.FeedTypeUnknown
}

// ParseFeed converts feed items to articles in feed order. Items whose
// title is too short are skipped.
func (p *Parser) ParseFeed(body, baseURL string) ([]*newsdigest.Article, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, newsdigest.Errorf(newsdigest.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	f, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, newsdigest.Errorf(newsdigest.EINVALID, "parse feed: %v", err)
	}

	articles := make([]*newsdigest.Article, 0, len(f.Items))
	for _, item := range f.Items {
		if item == nil {
			continue
		}
		title := strings.TrimSpace(item.Title)
		if utf8.RuneCountInString(title) <= newsdigest.MinTitleLength {
			continue
		}
		articles = append(articles, &newsdigest.Article{
			Title:    title,
			Link:     newsdigest.ResolveLink(base, item.Link),
			Snippet:  newsdigest.OptionalString(plainText(item.Description)),
			Date:     newsdigest.OptionalString(published(item)),
			Strategy: newsdigest.StrategyFeed,
		})
	}
	return articles, nil
}

// plainText strips markup from an item description and collapses whitespace.
func plainText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	text := s
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
		doc.Find("script, style").Remove()
		text = doc.Text()
	}
	return strings.Join(strings.Fields(text), " ")
}

func published(item *gofeed.Item) string {
	if d := strings.TrimSpace(item.Published); d != "" {
		return d
	}
	return strings.TrimSpace(item.Updated)
}
