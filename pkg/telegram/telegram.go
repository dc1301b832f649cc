package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Behyna/hypeconnect/pkg/httpclient"
)

type Config struct {
	Enable   bool          `mapstructure:"enable"`
	BaseURL  string        `mapstructure:"base_url"`
	BotToken string        `mapstructure:"bot_token"`
	ChatID   string        `mapstructure:"chat_id"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

var (
	ErrRateLimited = errors.New("RATE_LIMITED")
	ErrUnavailable = errors.New("UNAVAILABLE")
	ErrRejected    = errors.New("REJECTED")
)

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type Notifier interface {
	Send(ctx context.Context, text string) error
}

type client struct {
	http   httpclient.HTTPClient
	config Config
}

func NewNotifier(cfg Config, http httpclient.HTTPClient) Notifier {
	return &client{http: http, config: cfg}
}

// Send posts text to the configured admin chat. ErrRateLimited and
// ErrUnavailable are worth retrying, ErrRejected is not. A disabled notifier
// drops every message.
func (c *client) Send(ctx context.Context, text string) error {
	if !c.config.Enable {
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.config.BaseURL, c.config.BotToken)
	resp, err := c.http.PostJSON(ctx, url, sendMessageRequest{ChatID: c.config.ChatID, Text: text}, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == 200:
		return nil
	case resp.StatusCode == 429:
		return ErrRateLimited
	case resp.StatusCode >= 500:
		return ErrUnavailable
	default:
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}
}

func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUnavailable)
}
