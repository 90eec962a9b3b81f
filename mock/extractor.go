package mock

import "github.com/fwojciec/newsdigest"

var _ newsdigest.Parser = (*Parser)(nil)

// Parser is a mock implementation of newsdigest.Parser.
type Parser struct {
	ParseFn func(html string) (newsdigest.Node, error)
}

func (p *Parser) Parse(html string) (newsdigest.Node, error) {
	return p.ParseFn(html)
}

var _ newsdigest.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of newsdigest.Extractor.
type Extractor struct {
	ExtractFn func(root newsdigest.Node, baseURL string) ([]*newsdigest.Article, error)
}

func (e *Extractor) Extract(root newsdigest.Node, baseURL string) ([]*newsdigest.Article, error) {
	return e.ExtractFn(root, baseURL)
}

var _ newsdigest.FeedParser = (*FeedParser)(nil)

// FeedParser is a mock implementation of newsdigest.FeedParser.
type FeedParser struct {
	IsFeedFn    func(body string) bool
	ParseFeedFn func(body, baseURL string) ([]*newsdigest.Article, error)
}

func (p *FeedParser) IsFeed(body string) bool {
	return p.IsFeedFn(body)
}

func (p *FeedParser) ParseFeed(body, baseURL string) ([]*newsdigest.Article, error) {
	return p.ParseFeedFn(body, baseURL)
}
