package newsdigest

// Extractor finds candidate articles in a parsed page.
type Extractor interface {
	// Extract returns candidates in strategy order. Relative links are
	// resolved against baseURL. Returns EINVALID if baseURL cannot be parsed.
	Extract(root Node, baseURL string) ([]*Article, error)
}

// FeedParser turns syndication feeds into candidate articles.
type FeedParser interface {
	// IsFeed reports whether body is an RSS, Atom or JSON feed.
	IsFeed(body string) bool

	// ParseFeed converts feed items to articles, resolving links against baseURL.
	ParseFeed(body string, baseURL string) ([]*Article, error)
}
