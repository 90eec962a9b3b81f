package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsdigest"
	"github.com/fwojciec/newsdigest/config"
	"github.com/fwojciec/newsdigest/digest"
	"github.com/fwojciec/newsdigest/extract"
	"github.com/fwojciec/newsdigest/feed"
	"github.com/fwojciec/newsdigest/goquery"
	ndhtml "github.com/fwojciec/newsdigest/html"
	ndhttp "github.com/fwojciec/newsdigest/http"
	ndslog "github.com/fwojciec/newsdigest/slog"
	"github.com/fwojciec/newsdigest/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. Real implementations are used when nil.
	Fetcher newsdigest.Fetcher
	Chat    newsdigest.ChatClient
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsdigest"),
		kong.Description("Extract news articles from a page and digest those matching a keyword."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newsdigest --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", newsdigest.ErrorMessage(err))
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]
	if cmd == "scrape" {
		cli.Scrape.apply(cfg)
	}
	if cli.Debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", newsdigest.ErrorMessage(err))
		return err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Config = cfg
	deps.Logger = logger

	fetcher := m.Fetcher
	if fetcher == nil {
		opts := []ndhttp.Option{
			ndhttp.WithTimeout(cfg.Fetch.Timeout),
			ndhttp.WithHeaders(cfg.Fetch.Headers),
		}
		if cfg.Fetch.UserAgent != "" {
			opts = append(opts, ndhttp.WithUserAgent(cfg.Fetch.UserAgent))
		}
		fetcher = ndhttp.NewFetcher(opts...)
	}
	fetcher = ndslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	extractor := extract.NewExtractor()
	extractor.Concurrent = cfg.Digest.Concurrent

	deps.Digester = ndslog.NewLoggingDigester(&digest.Digester{
		Fetcher:     fetcher,
		Parser:      newParser(cfg.Digest.Parser),
		Extractor:   extractor,
		Feeds:       feed.NewParser(),
		RateLimiter: digest.NewDomainLimiter(cfg.Fetch.RatePerSecond),
		Limit:       cfg.Digest.Limit,
	}, logger)

	if cmd == "bot" {
		deps.Chat = m.Chat
		if deps.Chat == nil {
			if cfg.Telegram.Token == "" {
				fmt.Fprintln(stderr, "Hint: set TELEGRAM_TOKEN or telegram.token in the config file")
				return newsdigest.Errorf(newsdigest.EINVALID, "telegram token not set")
			}
			deps.Chat = telegram.NewClient(cfg.Telegram.Token)
		}
	}

	return kongCtx.Run(deps)
}

func newParser(name string) newsdigest.Parser {
	if name == config.ParserHTML {
		return ndhtml.NewParser()
	}
	return goquery.NewParser()
}
