package main

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"market-pulse/internal/app"
	"market-pulse/internal/bot"
	"market-pulse/internal/config"
	"market-pulse/internal/domain"
	"market-pulse/internal/logging"
	"market-pulse/pkg/tracing"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

const (
	serverName    = "market-pulse"
	serverVersion = "1.0.0"
)

type digestRunner interface {
	Build(ctx context.Context) domain.Digest
	Run(ctx context.Context) domain.Digest
}

type digestInput struct {
	Push bool `json:"push,omitempty" jsonschema:"deliver the digest to the configured push channels as well as returning it"`
}

type digestOutput struct {
	GeneratedAt string   `json:"generated_at"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Signals     []string `json:"signals"`
	Pushed      bool     `json:"pushed"`
}

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	initTracerFunc       = tracing.InitTracer
	newDigestServiceFunc = func(cfg *config.Config, tracer trace.Tracer) digestRunner {
		tgBot, err := bot.NewBot(cfg.TelegramBotToken)
		if err != nil {
			log.Errorf("Telegram disabled: %v", err)
			tgBot = nil
		}
		return app.NewDigestService(cfg, tracer, tgBot)
	}
	runStdioFunc = func(ctx context.Context, server *mcp.Server) error {
		return server.Run(ctx, &mcp.StdioTransport{})
	}
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
	setupSignalNotify      = signal.Notify
)

func main() {
	_ = loadEnvFunc()
	cfg := loadConfigFunc()
	// stdout carries the protocol on stdio, so logs always go to stderr.
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-quit:
			cancel()
		case <-ctx.Done():
		}
	}()

	tp, tracer, err := initTracerFunc(ctx, "market-pulse-mcp")
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Errorf("error shutting down tracer provider: %v", err)
		}
	}()

	timeout := time.Duration(cfg.MCPRequestTimeoutSecs) * time.Second
	server := newMCPServer(newDigestServiceFunc(cfg, tracer), timeout)

	switch cfg.MCPTransport {
	case "http":
		if err := serveHTTP(ctx, cfg, server); err != nil {
			log.Errorf("MCP HTTP server stopped: %v", err)
		}
	default:
		log.Info("MCP server listening on stdio")
		if err := runStdioFunc(ctx, server); err != nil && ctx.Err() == nil {
			log.Errorf("MCP stdio session ended: %v", err)
		}
	}
}

func newMCPServer(digests digestRunner, timeout time.Duration) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "market_digest",
		Description: "Collect BTC drawdown, crypto fear & greed, VIX, AHR999 and QDII ETF premiums and return the evaluated trading advisories.",
	}, digestTool(digests, timeout))
	return server
}

func digestTool(digests digestRunner, timeout time.Duration) mcp.ToolHandlerFor[digestInput, digestOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in digestInput) (*mcp.CallToolResult, digestOutput, error) {
		if digests == nil {
			return nil, digestOutput{}, fmt.Errorf("digest service unavailable")
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		var d domain.Digest
		if in.Push {
			d = digests.Run(ctx)
		} else {
			d = digests.Build(ctx)
		}

		out := digestOutput{
			GeneratedAt: d.GeneratedAt.Format(time.RFC3339),
			Title:       d.Title,
			Body:        d.Body,
			Signals:     d.SignalTexts(),
			Pushed:      in.Push,
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: d.Title + "\n\n" + d.Body}},
		}, out, nil
	}
}

func serveHTTP(ctx context.Context, cfg *config.Config, server *mcp.Server) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", bearerAuth(cfg.MCPAuthToken, handler))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.MCPHTTPBind, strconv.Itoa(cfg.MCPHTTPPort)),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("MCP server listening on HTTP")
		errCh <- startHTTPServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return shutdownHTTPServerFunc(srv, shutdownCtx)
}

// bearerAuth is a no-op when token is empty.
func bearerAuth(token string, next http.Handler) http.Handler {
	token = strings.TrimSpace(token)
	if token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provided, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(provided) == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(provided)), []byte(token)) != 1 {
			http.Error(w, "invalid bearer token", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
