package newsdigest

import (
	"context"
	"strings"
)

// Strategy identifies the heuristic that produced an Article.
type Strategy string

// Extraction strategies, in the order they run.
const (
	StrategyStructured Strategy = "structured"
	StrategyHeading    Strategy = "heading"
	StrategyAnchor     Strategy = "anchor"
	StrategyFeed       Strategy = "feed"
)

// MinTitleLength is the rune count a title must exceed to be kept.
const MinTitleLength = 8

// Article represents a candidate news entry extracted from a page.
// Optional fields are nil when absent, never pointers to empty strings.
// Articles are not modified after extraction.
type Article struct {
	Title    string   `json:"title"`
	Link     *string  `json:"link,omitempty"`
	Snippet  *string  `json:"snippet,omitempty"`
	Date     *string  `json:"date,omitempty"`
	Strategy Strategy `json:"strategy,omitempty"`
}

// OptionalString returns a pointer to s, or nil if s is empty.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Digest holds the outcome of a single digest run.
type Digest struct {
	URL        string     `json:"url"`
	Keywords   []string   `json:"keywords"`
	Candidates []*Article `json:"candidates"`
	Matches    []*Article `json:"matches"`
	Message    string     `json:"message"`
}

// Digester produces a keyword digest for a page.
type Digester interface {
	// Digest fetches the page at url, extracts and filters its articles,
	// and renders the digest message.
	// Returns EINVALID for malformed URLs and EUNAVAILABLE when the page
	// cannot be fetched.
	Digest(ctx context.Context, url string, keywords []string) (*Digest, error)
}

// NormalizeTitle returns the identity key used for deduplication:
// whitespace runs collapsed to one space, trimmed, lowercased.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

// Dedupe drops articles whose normalized title was already seen.
// The first occurrence wins entirely and order is preserved.
// Articles with an empty normalized title are dropped.
func Dedupe(articles []*Article) []*Article {
	seen := make(map[string]struct{}, len(articles))
	unique := make([]*Article, 0, len(articles))
	for _, a := range articles {
		if a == nil {
			continue
		}
		key := NormalizeTitle(a.Title)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, a)
	}
	return unique
}

// FilterByKeywords returns the articles whose title, snippet or link
// contains any of the keywords, ignoring case. Matching is plain substring
// search, so short keywords may match inside unrelated words.
func FilterByKeywords(articles []*Article, keywords []string) []*Article {
	kws := make([]string, len(keywords))
	for i, k := range keywords {
		kws[i] = strings.ToLower(k)
	}

	results := make([]*Article, 0, len(articles))
	for _, a := range articles {
		if a == nil {
			continue
		}
		hay := strings.ToLower(haystack(a))
		for _, k := range kws {
			if strings.Contains(hay, k) {
				results = append(results, a)
				break
			}
		}
	}
	return results
}

// haystack joins the non-empty searchable fields with single spaces.
func haystack(a *Article) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{a.Title, deref(a.Snippet), deref(a.Link)} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
