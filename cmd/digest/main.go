package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"market-pulse/internal/app"
	"market-pulse/internal/bot"
	"market-pulse/internal/config"
	"market-pulse/internal/domain"
	"market-pulse/internal/logging"
	"market-pulse/pkg/tracing"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

const runTimeout = 2 * time.Minute

type digestRunner interface {
	Run(ctx context.Context) domain.Digest
}

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	initTracerFunc       = tracing.InitTracer
	newBotFunc           = bot.NewBot
	newDigestServiceFunc = func(cfg *config.Config, tracer trace.Tracer) digestRunner {
		tgBot, err := newBotFunc(cfg.TelegramBotToken)
		if err != nil {
			log.Errorf("Telegram disabled: %v", err)
			tgBot = nil
		}
		return app.NewDigestService(cfg, tracer, tgBot)
	}
	stdout io.Writer = os.Stdout
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	signalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	quietStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	bodyStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(1, 2)
)

// Runs one digest cycle and exits 0 whatever the upstream sources did. It takes
// no arguments; previews go through GET /api/digest or the /digest command.
func main() {
	_ = loadEnvFunc()
	cfg := loadConfigFunc()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx, "market-pulse-digest")
	if err != nil {
		log.Errorf("tracing disabled: %v", err)
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Errorf("error shutting down tracer provider: %v", err)
			}
		}()
	}
	if tracer == nil {
		tracer = trace.NewNoopTracerProvider().Tracer("market-pulse-digest")
	}

	d := newDigestServiceFunc(cfg, tracer).Run(ctx)
	fmt.Fprintln(stdout, render(d))
}

func render(d domain.Digest) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n")
	if len(d.Signals) == 0 {
		b.WriteString(quietStyle.Render("no signal today"))
		b.WriteString("\n")
	}
	for _, s := range d.Signals {
		b.WriteString(signalStyle.Render("• " + s.Text))
		b.WriteString("\n")
	}
	b.WriteString(bodyStyle.Render(strings.TrimRight(d.Body, "\n")))
	return b.String()
}
