package newsdigest

import (
	"context"
	"time"
)

// ChatUpdate is a single incoming chat message.
type ChatUpdate struct {
	ID     int64
	ChatID int64
	Text   string
}

// ChatClient sends and receives chat messages.
type ChatClient interface {
	// SendMessage delivers text to a chat as a single message.
	SendMessage(ctx context.Context, chatID int64, text string) error

	// GetUpdates long-polls for messages with an ID at or above offset.
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]ChatUpdate, error)
}
