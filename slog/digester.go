package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsdigest"
)

// Ensure LoggingDigester implements newsdigest.Digester.
var _ newsdigest.Digester = (*LoggingDigester)(nil)

// LoggingDigester wraps a Digester with logging.
type LoggingDigester struct {
	next   newsdigest.Digester
	logger *slog.Logger
}

// NewLoggingDigester creates a new LoggingDigester.
func NewLoggingDigester(next newsdigest.Digester, logger *slog.Logger) *LoggingDigester {
	return &LoggingDigester{next: next, logger: logger}
}

// Digest logs candidate and match counts for each run.
func (d *LoggingDigester) Digest(ctx context.Context, url string, keywords []string) (result *newsdigest.Digest, err error) {
	defer func(begin time.Time) {
		var candidates, matches int
		if result != nil {
			candidates = len(result.Candidates)
			matches = len(result.Matches)
		}
		d.logger.Info("digest",
			"url", url,
			"keywords", keywords,
			"candidates", candidates,
			"matches", matches,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Digest(ctx, url, keywords)
}
