// Package telegram delivers notifications to a Telegram chat through the Bot API.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// maxMessageRunes keeps messages below Telegram's 4096 character limit.
const maxMessageRunes = 3900

type Config struct {
	Token  string
	ChatID int64
	// Endpoint overrides tgbotapi.APIEndpoint, e.g. for a local Bot API server.
	Endpoint string
	// Rate is the number of messages per second allowed to the chat.
	Rate    float64
	Timeout time.Duration
}

type Sender struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	limiter *rate.Limiter
}

// New builds a sender without contacting the Bot API, so an unreachable
// Telegram only surfaces as failed sends. Use Check to verify the token.
func New(cfg Config) (*Sender, error) {
	if cfg.Token == "" {
		return nil, errors.New("telegram token is empty")
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = tgbotapi.APIEndpoint
	}

	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	bot := &tgbotapi.BotAPI{
		Token:  cfg.Token,
		Client: &http.Client{Timeout: cfg.Timeout},
		Buffer: 100,
	}
	bot.SetAPIEndpoint(cfg.Endpoint)

	return &Sender{
		bot:     bot,
		chatID:  cfg.ChatID,
		limiter: rate.NewLimiter(rate.Limit(cfg.Rate), 1),
	}, nil
}

// Check calls getMe and reports whether the token is accepted.
func (s *Sender) Check() error {
	if _, err := s.bot.GetMe(); err != nil {
		return fmt.Errorf("checking telegram token: %w", err)
	}

	return nil
}

func (s *Sender) Send(ctx context.Context, text string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limit: %w", err)
	}

	msg := tgbotapi.NewMessage(s.chatID, truncate(text, maxMessageRunes))
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}

	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n]) + "…"
}
