// Package config loads newsdigest settings from a YAML file with
// environment overrides.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/newsdigest"
	"gopkg.in/yaml.v3"
)

// Parser names accepted in digest.parser.
const (
	ParserGoquery = "goquery"
	ParserHTML    = "html"
)

// Config is the complete newsdigest configuration.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Digest   DigestConfig   `yaml:"digest"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// FetchConfig controls page retrieval.
type FetchConfig struct {
	Timeout       time.Duration     `yaml:"timeout"`
	UserAgent     string            `yaml:"user_agent"`
	Headers       map[string]string `yaml:"headers"`
	RatePerSecond float64           `yaml:"rate_per_second"`
}

// DigestConfig controls extraction and formatting.
type DigestConfig struct {
	Limit      int    `yaml:"limit"`
	Concurrent bool   `yaml:"concurrent"`
	Parser     string `yaml:"parser"`
}

// TelegramConfig controls the chat bot.
type TelegramConfig struct {
	Token         string        `yaml:"token"`
	AllowedChats  []int64       `yaml:"allowed_chats"`
	PollTimeout   time.Duration `yaml:"poll_timeout"`
	MaxMessageLen int           `yaml:"max_message_len"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Fetch: FetchConfig{
			Timeout:       12 * time.Second,
			RatePerSecond: 1,
		},
		Digest: DigestConfig{
			Limit:  newsdigest.DefaultDigestLimit,
			Parser: ParserGoquery,
		},
		Telegram: TelegramConfig{
			PollTimeout:   30 * time.Second,
			MaxMessageLen: 4000,
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, newsdigest.Errorf(newsdigest.EINVALID, "read config: %v", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, newsdigest.Errorf(newsdigest.EINVALID, "parse config %s: %v", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables read with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if token := firstEnv(getenv, "TELEGRAM_TOKEN", "TOKEN"); token != "" {
		c.Telegram.Token = token
	}
	if chat := firstEnv(getenv, "TELEGRAM_CHAT_ID", "CHAT_ID"); chat != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(chat), 10, 64)
		if err != nil {
			return newsdigest.Errorf(newsdigest.EINVALID, "invalid chat ID %q", chat)
		}
		c.Telegram.AllowedChats = append(c.Telegram.AllowedChats, id)
	}
	if ua := getenv("NEWSDIGEST_USER_AGENT"); ua != "" {
		c.Fetch.UserAgent = ua
	}
	if debug := getenv("DEBUG"); debug != "" {
		c.Debug = debug == "true" || debug == "1"
	}
	return nil
}

// Validate reports the first invalid setting as an EINVALID error.
func (c *Config) Validate() error {
	switch {
	case c.Fetch.Timeout <= 0:
		return newsdigest.Errorf(newsdigest.EINVALID, "fetch.timeout must be positive")
	case c.Fetch.RatePerSecond < 0:
		return newsdigest.Errorf(newsdigest.EINVALID, "fetch.rate_per_second must be non-negative")
	case c.Digest.Limit < 1:
		return newsdigest.Errorf(newsdigest.EINVALID, "digest.limit must be at least 1")
	case c.Digest.Parser != ParserGoquery && c.Digest.Parser != ParserHTML:
		return newsdigest.Errorf(newsdigest.EINVALID, "digest.parser must be %q or %q", ParserGoquery, ParserHTML)
	case c.Telegram.PollTimeout < 0:
		return newsdigest.Errorf(newsdigest.EINVALID, "telegram.poll_timeout must be non-negative")
	case c.Telegram.MaxMessageLen < 1:
		return newsdigest.Errorf(newsdigest.EINVALID, "telegram.max_message_len must be at least 1")
	}
	return nil
}

func firstEnv(getenv func(string) string, keys ...string) string {
	for _, k := range keys {
		if v := getenv(k); v != "" {
			return v
		}
	}
	return ""
}
