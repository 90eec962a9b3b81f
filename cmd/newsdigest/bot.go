package main

import (
	"github.com/fwojciec/newsdigest/bot"
)

// Run executes the bot command until the context is canceled.
func (c *BotCmd) Run(deps *Dependencies) error {
	b := &bot.Bot{
		Chat:          deps.Chat,
		Digester:      deps.Digester,
		Logger:        deps.Logger,
		AllowedChats:  deps.Config.Telegram.AllowedChats,
		MaxMessageLen: deps.Config.Telegram.MaxMessageLen,
		PollTimeout:   deps.Config.Telegram.PollTimeout,
	}

	deps.Logger.Info("bot started", "allowed_chats", len(b.AllowedChats))
	return b.Run(deps.Ctx)
}
