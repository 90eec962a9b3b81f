package mock

import (
	"context"

	"github.com/fwojciec/newsdigest"
)

var _ newsdigest.Digester = (*Digester)(nil)

// Digester is a mock implementation of newsdigest.Digester.
type Digester struct {
	DigestFn func(ctx context.Context, url string, keywords []string) (*newsdigest.Digest, error)
}

func (d *Digester) Digest(ctx context.Context, url string, keywords []string) (*newsdigest.Digest, error) {
	return d.DigestFn(ctx, url, keywords)
}
