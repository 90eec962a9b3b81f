// Package bot serves digests over a chat client in response to /scrape
// commands.
package bot

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/newsdigest"
)

const (
	// Command triggers a digest.
	Command = "/scrape"

	// UsageMessage is sent when the command has too few arguments.
	UsageMessage = "Usage: /scrape <url> <keyword>"

	// ErrorPrefix starts every error reply.
	ErrorPrefix = "⚠️ Error: "

	// DefaultMaxMessageLen is the longest message sent in one piece, in runes.
	DefaultMaxMessageLen = 4000

	// DefaultPollTimeout is the long-poll timeout for GetUpdates.
	DefaultPollTimeout = 30 * time.Second

	// DefaultPollBackoff is the pause after a failed poll.
	DefaultPollBackoff = 5 * time.Second
)

// Bot answers /scrape commands with keyword digests.
type Bot struct {
	Chat     newsdigest.ChatClient
	Digester newsdigest.Digester
	Logger   *slog.Logger

	// AllowedChats restricts which chats are served. Empty allows all.
	AllowedChats  []int64
	MaxMessageLen int
	PollTimeout   time.Duration
	PollBackoff   time.Duration
}

// Run polls for updates and handles them in arrival order until ctx is
// canceled. Poll failures are logged and retried after PollBackoff.
func (b *Bot) Run(ctx context.Context) error {
	var offset int64
	for {
		updates, err := b.Chat.GetUpdates(ctx, offset, b.pollTimeout())
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			b.logger().Warn("poll failed", "err", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(b.pollBackoff()):
			}
			continue
		}

		for _, u := range updates {
			if u.ID >= offset {
				offset = u.ID + 1
			}
			if err := b.HandleUpdate(ctx, u); err != nil {
				b.logger().Error("handle update", "update", u.ID, "chat", u.ChatID, "err", err)
			}
		}
	}
}

// HandleUpdate answers a single update. Updates that are not /scrape
// commands, or come from chats outside AllowedChats, are ignored. The
// returned error reports a failure to deliver a reply.
func (b *Bot) HandleUpdate(ctx context.Context, u newsdigest.ChatUpdate) error {
	args, ok := parseCommand(u.Text)
	if !ok || !b.allowed(u.ChatID) {
		return nil
	}

	if len(args) < 2 {
		return b.Chat.SendMessage(ctx, u.ChatID, UsageMessage)
	}
	url := args[0]
	keyword := strings.Join(args[1:], " ")

	result, err := b.Digester.Digest(ctx, url, []string{keyword})
	if err != nil {
		return b.Chat.SendMessage(ctx, u.ChatID, ErrorPrefix+newsdigest.ErrorMessage(err))
	}

	for _, chunk := range SplitMessage(result.Message, b.maxMessageLen()) {
		if err := b.Chat.SendMessage(ctx, u.ChatID, chunk); err != nil {
			return err
		}
	}
	return nil
}

// SplitMessage cuts text into consecutive pieces of at most limit runes.
// Text at or under limit is returned whole.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultMaxMessageLen
	}
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	for len(runes) > 0 {
		n := min(limit, len(runes))
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	return chunks
}

// parseCommand returns the arguments of a /scrape or /scrape@BotName
// command.
func parseCommand(text string) ([]string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, false
	}
	cmd, _, _ := strings.Cut(fields[0], "@")
	if cmd != Command {
		return nil, false
	}
	return fields[1:], true
}

func (b *Bot) allowed(chatID int64) bool {
	return len(b.AllowedChats) == 0 || slices.Contains(b.AllowedChats, chatID)
}

func (b *Bot) maxMessageLen() int {
	if b.MaxMessageLen > 0 {
		return b.MaxMessageLen
	}
	return DefaultMaxMessageLen
}

func (b *Bot) pollTimeout() time.Duration {
	if b.PollTimeout > 0 {
		return b.PollTimeout
	}
	return DefaultPollTimeout
}

func (b *Bot) pollBackoff() time.Duration {
	if b.PollBackoff > 0 {
		return b.PollBackoff
	}
	return DefaultPollBackoff
}

func (b *Bot) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.New(slog.DiscardHandler)
}
