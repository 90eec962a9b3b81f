package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/newsdigest"
	"github.com/fwojciec/newsdigest/mock"
	ndslog "github.com/fwojciec/newsdigest/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingDigester_Digest(t *testing.T) {
	t.Parallel()

	t.Run("logs counts and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Digester{
			DigestFn: func(ctx context.Context, url string, keywords []string) (*newsdigest.Digest, error) {
				a := &newsdigest.Article{Title: "Climate summit opens today"}
				b := &newsdigest.Article{Title: "Football results are in"}
				return &newsdigest.Digest{
					URL:        url,
					Candidates: []*newsdigest.Article{a, b},
					Matches:    []*newsdigest.Article{a},
				}, nil
			},
		}

		d := ndslog.NewLoggingDigester(inner, logger)
		result, err := d.Digest(context.Background(), "https://example.com/news", []string{"climate"})

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/news", result.URL)
		output := buf.String()
		assert.Contains(t, output, "msg=digest")
		assert.Contains(t, output, "url=https://example.com/news")
		assert.Contains(t, output, "keywords=[climate]")
		assert.Contains(t, output, "candidates=2")
		assert.Contains(t, output, "matches=1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Digester{
			DigestFn: func(ctx context.Context, url string, keywords []string) (*newsdigest.Digest, error) {
				return nil, newsdigest.Errorf(newsdigest.EUNAVAILABLE, "fetch: HTTP 503 for %s", url)
			},
		}

		d := ndslog.NewLoggingDigester(inner, logger)
		_, err := d.Digest(context.Background(), "https://example.com/news", []string{"climate"})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "candidates=0")
		assert.Contains(t, output, "err=")
		assert.Contains(t, output, "HTTP 503")
	})
}
