package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/newsdigest"
	"github.com/fwojciec/newsdigest/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// clearEnv unsets every variable ApplyEnv reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TELEGRAM_TOKEN", "TOKEN", "TELEGRAM_CHAT_ID", "CHAT_ID", "NEWSDIGEST_USER_AGENT", "DEBUG"} {
		t.Setenv(k, "")
	}
}

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	assert.Equal(t, 12*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 5, cfg.Digest.Limit)
	assert.Equal(t, config.ParserGoquery, cfg.Digest.Parser)
	assert.Equal(t, 4000, cfg.Telegram.MaxMessageLen)
	assert.Equal(t, 30*time.Second, cfg.Telegram.PollTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("reads YAML over defaults", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, `
fetch:
  timeout: 5s
  user_agent: "test-agent"
  headers:
    Accept-Language: en
  rate_per_second: 2.5
digest:
  limit: 10
  concurrent: true
  parser: html
telegram:
  token: "abc"
  allowed_chats: [1, 2]
  max_message_len: 3000
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, "test-agent", cfg.Fetch.UserAgent)
		assert.Equal(t, map[string]string{"Accept-Language": "en"}, cfg.Fetch.Headers)
		assert.InDelta(t, 2.5, cfg.Fetch.RatePerSecond, 0.001)
		assert.Equal(t, 10, cfg.Digest.Limit)
		assert.True(t, cfg.Digest.Concurrent)
		assert.Equal(t, config.ParserHTML, cfg.Digest.Parser)
		assert.Equal(t, []int64{1, 2}, cfg.Telegram.AllowedChats)
		assert.Equal(t, 3000, cfg.Telegram.MaxMessageLen)
		assert.Equal(t, 30*time.Second, cfg.Telegram.PollTimeout, "unset fields keep defaults")
	})

	t.Run("environment overrides file", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, "telegram:\n  token: from-file\n")
		t.Setenv("TELEGRAM_TOKEN", "from-env")
		t.Setenv("TELEGRAM_CHAT_ID", "42")

		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, "from-env", cfg.Telegram.Token)
		assert.Equal(t, []int64{42}, cfg.Telegram.AllowedChats)
	})

	t.Run("empty path returns defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("missing file is EINVALID", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Equal(t, newsdigest.EINVALID, newsdigest.ErrorCode(err))
	})

	t.Run("malformed YAML is EINVALID", func(t *testing.T) {
		path := writeConfig(t, "fetch: [unclosed")
		_, err := config.Load(path)
		require.Error(t, err)
		assert.Equal(t, newsdigest.EINVALID, newsdigest.ErrorCode(err))
	})

	t.Run("invalid values are EINVALID", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, "digest:\n  parser: regex\n")
		_, err := config.Load(path)
		require.Error(t, err)
		assert.Equal(t, newsdigest.EINVALID, newsdigest.ErrorCode(err))
		assert.Contains(t, newsdigest.ErrorMessage(err), "digest.parser")
	})
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Parallel()

	t.Run("falls back to short variable names", func(t *testing.T) {
		t.Parallel()

		cfg := config.Default()
		err := cfg.ApplyEnv(env(map[string]string{"TOKEN": "short", "CHAT_ID": "7"}))

		require.NoError(t, err)
		assert.Equal(t, "short", cfg.Telegram.Token)
		assert.Equal(t, []int64{7}, cfg.Telegram.AllowedChats)
	})

	t.Run("prefers prefixed variable names", func(t *testing.T) {
		t.Parallel()

		cfg := config.Default()
		err := cfg.ApplyEnv(env(map[string]string{"TELEGRAM_TOKEN": "long", "TOKEN": "short"}))

		require.NoError(t, err)
		assert.Equal(t, "long", cfg.Telegram.Token)
	})

	t.Run("sets user agent and debug", func(t *testing.T) {
		t.Parallel()

		cfg := config.Default()
		err := cfg.ApplyEnv(env(map[string]string{"NEWSDIGEST_USER_AGENT": "ua/1", "DEBUG": "true"}))

		require.NoError(t, err)
		assert.Equal(t, "ua/1", cfg.Fetch.UserAgent)
		assert.True(t, cfg.Debug)
	})

	t.Run("rejects non-numeric chat ID", func(t *testing.T) {
		t.Parallel()

		cfg := config.Default()
		err := cfg.ApplyEnv(env(map[string]string{"TELEGRAM_CHAT_ID": "@channel"}))

		require.Error(t, err)
		assert.Equal(t, newsdigest.EINVALID, newsdigest.ErrorCode(err))
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{"zero timeout", func(c *config.Config) { c.Fetch.Timeout = 0 }, "fetch.timeout"},
		{"negative rate", func(c *config.Config) { c.Fetch.RatePerSecond = -1 }, "fetch.rate_per_second"},
		{"zero limit", func(c *config.Config) { c.Digest.Limit = 0 }, "digest.limit"},
		{"unknown parser", func(c *config.Config) { c.Digest.Parser = "lxml" }, "digest.parser"},
		{"negative poll timeout", func(c *config.Config) { c.Telegram.PollTimeout = -time.Second }, "telegram.poll_timeout"},
		{"zero message length", func(c *config.Config) { c.Telegram.MaxMessageLen = 0 }, "telegram.max_message_len"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()

			require.Error(t, err)
			assert.Equal(t, newsdigest.EINVALID, newsdigest.ErrorCode(err))
			assert.Contains(t, newsdigest.ErrorMessage(err), tt.field)
		})
	}
}
