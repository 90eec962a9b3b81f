// Package telegram implements newsdigest.ChatClient on the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/fwojciec/newsdigest"
)

// DefaultAPIURL is the Telegram Bot API endpoint.
const DefaultAPIURL = "https://api.telegram.org"

// DefaultRequestTimeout bounds a single API request, on top of any
// long-poll timeout.
const DefaultRequestTimeout = 15 * time.Second

// Ensure Client implements newsdigest.ChatClient.
var _ newsdigest.ChatClient = (*Client)(nil)

// Client talks to the Telegram Bot API.
type Client struct {
	token   string
	apiURL  string
	timeout time.Duration
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIURL overrides DefaultAPIURL.
func WithAPIURL(u string) Option {
	return func(c *Client) {
		c.apiURL = u
	}
}

// WithRequestTimeout overrides DefaultRequestTimeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a client for the bot identified by token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		apiURL:  DefaultAPIURL,
		timeout: DefaultRequestTimeout,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type response struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

type update struct {
	UpdateID int64    `json:"update_id"`
	Message  *message `json:"message"`
}

type message struct {
	Chat struct {
		ID int64 `json:"id"`
	} `json:"chat"`
	Text string `json:"text"`
}

// SendMessage sends text to chatID as plain text with link previews disabled.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	payload := map[string]any{
		"chat_id":                  chatID,
		"text":                     text,
		"disable_web_page_preview": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode sendMessage: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("sendMessage"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req)
	return err
}

// GetUpdates long-polls for updates starting at offset. Updates without a
// text message are returned with empty Text so the caller can advance past them.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]newsdigest.ChatUpdate, error) {
	params := url.Values{}
	if offset > 0 {
		params.Set("offset", strconv.FormatInt(offset, 10))
	}
	params.Set("timeout", strconv.Itoa(int(timeout/time.Second)))
	params.Set("allowed_updates", `["message"]`)

	ctx, cancel := context.WithTimeout(ctx, timeout+c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("getUpdates")+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create getUpdates request: %w", err)
	}

	result, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var raw []update
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, fmt.Errorf("decode getUpdates: %w", err)
	}

	updates := make([]newsdigest.ChatUpdate, 0, len(raw))
	for _, u := range raw {
		cu := newsdigest.ChatUpdate{ID: u.UpdateID}
		if u.Message != nil {
			cu.ChatID = u.Message.Chat.ID
			cu.Text = u.Message.Text
		}
		updates = append(updates, cu)
	}
	return updates, nil
}

func (c *Client) endpoint(method string) string {
	return c.apiURL + "/bot" + c.token + "/" + method
}

// do performs req and returns the result field of a successful response.
func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		// url.Error would print the URL, which embeds the token.
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return nil, newsdigest.Errorf(newsdigest.EUNAVAILABLE, "telegram %s: %v", method(req), err)
	}
	defer resp.Body.Close()

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, newsdigest.Errorf(newsdigest.EUNAVAILABLE, "telegram %s: status %d", method(req), resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, newsdigest.Errorf(newsdigest.EUNAUTHORIZED, "telegram %s: %s", method(req), r.Description)
	case resp.StatusCode >= 400 || !r.OK:
		return nil, newsdigest.Errorf(newsdigest.EUNAVAILABLE, "telegram %s: status %d: %s", method(req), resp.StatusCode, r.Description)
	}
	return r.Result, nil
}

func method(req *http.Request) string {
	return path.Base(req.URL.Path)
}
