package mock

import (
	"context"
	"time"

	"github.com/fwojciec/newsdigest"
)

var _ newsdigest.ChatClient = (*ChatClient)(nil)

// ChatClient is a mock implementation of newsdigest.ChatClient.
type ChatClient struct {
	SendMessageFn func(ctx context.Context, chatID int64, text string) error
	GetUpdatesFn  func(ctx context.Context, offset int64, timeout time.Duration) ([]newsdigest.ChatUpdate, error)
}

func (c *ChatClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	return c.SendMessageFn(ctx, chatID, text)
}

func (c *ChatClient) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]newsdigest.ChatUpdate, error) {
	return c.GetUpdatesFn(ctx, offset, timeout)
}
