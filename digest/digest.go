// Package digest orchestrates a single digest run: fetch a page, extract
// candidate articles, dedupe and filter them, and render the message.
package digest

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/fwojciec/newsdigest"
)

var _ newsdigest.Digester = (*Digester)(nil)

// Digester implements newsdigest.Digester.
type Digester struct {
	Fetcher     newsdigest.Fetcher
	Parser      newsdigest.Parser
	Extractor   newsdigest.Extractor
	Feeds       newsdigest.FeedParser   // optional
	RateLimiter newsdigest.DomainLimiter // optional
	Limit       int
}

// Digest fetches rawURL and builds a digest of the articles matching keywords.
func (d *Digester) Digest(ctx context.Context, rawURL string, keywords []string) (*newsdigest.Digest, error) {
	rawURL = strings.TrimSpace(rawURL)
	u, err := validateURL(rawURL)
	if err != nil {
		return nil, err
	}

	if d.RateLimiter != nil {
		if err := d.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, stageError("rate limit", err)
		}
	}

	body, err := d.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, stageError("fetch", err)
	}

	candidates, err := d.candidates(body, rawURL)
	if err != nil {
		return nil, err
	}
	candidates = newsdigest.Dedupe(candidates)
	matches := newsdigest.FilterByKeywords(candidates, keywords)

	return &newsdigest.Digest{
		URL:        rawURL,
		Keywords:   keywords,
		Candidates: candidates,
		Matches:    matches,
		Message:    newsdigest.FormatDigest(matches, strings.Join(keywords, " "), d.Limit),
	}, nil
}

func (d *Digester) candidates(body, baseURL string) ([]*newsdigest.Article, error) {
	if d.Feeds != nil && d.Feeds.IsFeed(body) {
		articles, err := d.Feeds.ParseFeed(body, baseURL)
		if err != nil {
			return nil, stageError("feed", err)
		}
		return articles, nil
	}

	root, err := d.Parser.Parse(body)
	if err != nil {
		return nil, stageError("parse", err)
	}
	articles, err := d.Extractor.Extract(root, baseURL)
	if err != nil {
		return nil, stageError("extract", err)
	}
	return articles, nil
}

func validateURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, newsdigest.Errorf(newsdigest.EINVALID, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, newsdigest.Errorf(newsdigest.EINVALID, "invalid URL %q: scheme must be http or https", rawURL)
	}
	if u.Host == "" {
		return nil, newsdigest.Errorf(newsdigest.EINVALID, "invalid URL %q: missing host", rawURL)
	}
	return u, nil
}

// stageError labels err with the stage that failed, keeping its code.
func stageError(stage string, err error) error {
	var e *newsdigest.Error
	if errors.As(err, &e) {
		return newsdigest.Errorf(e.Code, "%s: %s", stage, e.Message)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return newsdigest.Errorf(newsdigest.EUNAVAILABLE, "%s: %v", stage, err)
	}
	return newsdigest.Errorf(newsdigest.EINTERNAL, "%s: %v", stage, err)
}
