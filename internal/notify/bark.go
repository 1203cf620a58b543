package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBarkBaseURL = "https://api.day.app"
	DefaultBarkGroup   = "投资信号"
	DefaultBarkSound   = "anticipate"
)

type BarkConfig struct {
	BaseURL string
	Key     string
	Group   string
	Sound   string
	Timeout time.Duration
}

// BarkSink pushes to an iOS device through the Bark service.
type BarkSink struct {
	client *resty.Client
	cfg    BarkConfig
	tracer trace.Tracer
}

type barkPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Group string `json:"group"`
	Sound string `json:"sound"`
}

func NewBarkSink(cfg BarkConfig, tracer trace.Tracer) *BarkSink {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBarkBaseURL
	}
	if cfg.Group == "" {
		cfg.Group = DefaultBarkGroup
	}
	if cfg.Sound == "" {
		cfg.Sound = DefaultBarkSound
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &BarkSink{
		client: resty.New().SetTimeout(cfg.Timeout),
		cfg:    cfg,
		tracer: tracer,
	}
}

func (s *BarkSink) Name() string { return "bark" }

func (s *BarkSink) Send(ctx context.Context, msg Message) error {
	ctx, span := s.tracer.Start(ctx, "bark.send")
	defer span.End()

	if strings.TrimSpace(s.cfg.Key) == "" {
		return fmt.Errorf("bark key is empty")
	}
	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/" + url.PathEscape(s.cfg.Key) + "/"

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(barkPayload{
			Title: msg.Title,
			Body:  msg.Body,
			Group: s.cfg.Group,
			Sound: s.cfg.Sound,
		}).
		Post(endpoint)
	if err != nil {
		return fmt.Errorf("bark request: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("bark API error %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
