package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/newsdigest"
	"github.com/fwojciec/newsdigest/config"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Config   *config.Config
	Logger   *slog.Logger
	Digester newsdigest.Digester
	Chat     newsdigest.ChatClient
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"c" type:"path" help:"YAML configuration file"`
	Debug  bool   `help:"Enable debug logging"`

	Scrape ScrapeCmd `cmd:"" help:"Print a digest of articles matching a keyword"`
	Bot    BotCmd    `cmd:"" help:"Serve /scrape commands over Telegram"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL     string        `arg:"" help:"Page or feed URL"`
	Keyword []string      `arg:"" help:"Keyword phrase"`
	Limit   int           `short:"n" help:"Maximum articles listed (default from config)"`
	Timeout time.Duration `short:"t" help:"Fetch timeout (default from config)"`
	JSON    bool          `name:"json" help:"Print matching articles as JSON"`
	Parser  string        `help:"HTML parser: goquery or html (default from config)"`
}

// BotCmd is the "bot" subcommand.
type BotCmd struct{}

// apply overrides cfg with flags that were set.
func (c *ScrapeCmd) apply(cfg *config.Config) {
	if c.Limit != 0 {
		cfg.Digest.Limit = c.Limit
	}
	if c.Timeout != 0 {
		cfg.Fetch.Timeout = c.Timeout
	}
	if c.Parser != "" {
		cfg.Digest.Parser = c.Parser
	}
}
