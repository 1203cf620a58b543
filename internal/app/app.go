// Package app assembles the digest pipeline from configuration.
package app

import (
	"market-pulse/internal/config"
	"market-pulse/internal/marketdata"
	"market-pulse/internal/notify"
	"market-pulse/internal/provider"
	"market-pulse/internal/service"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
	tele "gopkg.in/telebot.v3"
)

func NewGateway(cfg *config.Config, tracer trace.Tracer) *marketdata.Gateway {
	gwCfg := marketdata.DefaultConfig()
	if funds := cfg.Funds(); len(funds) > 0 {
		gwCfg.Funds = funds
	}
	return marketdata.NewGateway(
		tracer,
		provider.NewBinanceProvider(tracer, 0),
		provider.NewFearGreedProvider(tracer, 0),
		provider.NewVIXProvider(tracer, 0),
		provider.NewHaoETFProvider(tracer, 0),
		gwCfg,
	)
}

// NewNotifier enables Bark when a key is set and Telegram when both a bot
// and a chat id are available.
func NewNotifier(cfg *config.Config, tracer trace.Tracer, bot *tele.Bot) *notify.Notifier {
	var sinks []notify.Sink
	if cfg.BarkKey != "" {
		sinks = append(sinks, notify.NewBarkSink(notify.BarkConfig{
			BaseURL: cfg.BarkBaseURL,
			Key:     cfg.BarkKey,
			Group:   cfg.BarkGroup,
			Sound:   cfg.BarkSound,
		}, tracer))
	}
	if bot != nil && cfg.TelegramChatID != 0 {
		sinks = append(sinks, notify.NewTelegramSink(bot, cfg.TelegramChatID))
	}
	if len(sinks) == 0 {
		log.Warn("no push channel configured, digests will only be logged")
	}
	return notify.NewNotifier(sinks...)
}

func NewDigestService(cfg *config.Config, tracer trace.Tracer, bot *tele.Bot) *service.DigestService {
	return service.NewDigestService(
		tracer,
		NewGateway(cfg, tracer),
		NewNotifier(cfg, tracer, bot),
		cfg.DigestLocation,
	)
}
