package bot

import (
	"context"
	"testing"

	"market-pulse/internal/domain"

	tele "gopkg.in/telebot.v3"
)

type fakeContext struct {
	tele.Context
	sent []interface{}
}

func (c *fakeContext) Send(what interface{}, _ ...interface{}) error {
	c.sent = append(c.sent, what)
	return nil
}

type digestStub struct {
	calls int
}

func (s *digestStub) Build(context.Context) domain.Digest {
	s.calls++
	return domain.Digest{Title: "Market signals (09:00) - BTC: 30,000 USD", Body: "no signal today"}
}

func TestNewBotSkipsWithoutToken(t *testing.T) {
	b, err := NewBot("  ")
	if err != nil || b != nil {
		t.Fatalf("expected nil bot without error, got %v %v", b, err)
	}
	Register(nil, nil)
	StartTelegramBot(nil)
}

func TestPing(t *testing.T) {
	c := &fakeContext{}
	if err := handlePing(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.sent) != 1 || c.sent[0] != "pong" {
		t.Fatalf("unexpected reply: %v", c.sent)
	}
}

func TestDigestCommandRepliesWithPreview(t *testing.T) {
	stub := &digestStub{}
	c := &fakeContext{}
	if err := digestHandler(stub)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected one build, got %d", stub.calls)
	}
	want := "Market signals (09:00) - BTC: 30,000 USD\n\nno signal today"
	if len(c.sent) != 1 || c.sent[0] != want {
		t.Fatalf("unexpected reply: %v", c.sent)
	}
}

func TestDigestCommandWithoutService(t *testing.T) {
	c := &fakeContext{}
	if err := digestHandler(nil)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.sent) != 1 || c.sent[0] != "Digest service unavailable" {
		t.Fatalf("unexpected reply: %v", c.sent)
	}
}
