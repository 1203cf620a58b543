package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"market-pulse/internal/domain"

	log "github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"
)

const digestTimeout = 90 * time.Second

type DigestBuilder interface {
	Build(ctx context.Context) domain.Digest
}

// NewBot returns nil without error when no token is configured.
func NewBot(token string) (*tele.Bot, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		log.Info("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil, nil
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return b, nil
}

// Register wires the chat commands. /digest previews without pushing.
func Register(b *tele.Bot, digests DigestBuilder) {
	if b == nil {
		return
	}
	b.Handle("/ping", handlePing)
	b.Handle("/digest", digestHandler(digests))
}

func StartTelegramBot(b *tele.Bot) {
	if b == nil {
		return
	}
	log.Info("Telegram bot started")
	go b.Start()
}

func handlePing(c tele.Context) error {
	return c.Send("pong")
}

func digestHandler(digests DigestBuilder) tele.HandlerFunc {
	return func(c tele.Context) error {
		if digests == nil {
			return c.Send("Digest service unavailable")
		}
		ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
		defer cancel()

		d := digests.Build(ctx)
		return c.Send(d.Title + "\n\n" + d.Body)
	}
}
