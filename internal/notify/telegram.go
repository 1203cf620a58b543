package notify

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// TelegramSender is the subset of *tele.Bot used for pushes.
type TelegramSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type TelegramSink struct {
	bot    TelegramSender
	chatID int64
}

func NewTelegramSink(bot TelegramSender, chatID int64) *TelegramSink {
	return &TelegramSink{bot: bot, chatID: chatID}
}

func (s *TelegramSink) Name() string { return "telegram" }

func (s *TelegramSink) Send(_ context.Context, msg Message) error {
	if s.bot == nil || s.chatID == 0 {
		return fmt.Errorf("telegram sink not configured")
	}
	if _, err := s.bot.Send(tele.ChatID(s.chatID), msg.Title+"\n\n"+msg.Body); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
