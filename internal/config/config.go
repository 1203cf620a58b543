package config

import (
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"market-pulse/internal/domain"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultDigestCron     = "0 9 * * *"
	DefaultDigestTimezone = "Asia/Shanghai"
)

type Config struct {
	BarkKey     string
	BarkBaseURL string
	BarkGroup   string
	BarkSound   string

	TelegramBotToken string
	TelegramChatID   int64

	ETFCodes []string

	DigestCron       string
	DigestTimezone   string
	DigestLocation   *time.Location
	DigestRunOnStart bool

	HTTPPort string
	APIKey   string

	MCPTransport          string
	MCPHTTPBind           string
	MCPHTTPPort           int
	MCPAuthToken          string
	MCPRequestTimeoutSecs int

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	cfg := &Config{
		BarkKey:          strings.TrimSpace(os.Getenv("BARK_KEY")),
		BarkBaseURL:      strings.TrimSpace(os.Getenv("BARK_BASE_URL")),
		BarkGroup:        strings.TrimSpace(os.Getenv("BARK_GROUP")),
		BarkSound:        strings.TrimSpace(os.Getenv("BARK_SOUND")),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		APIKey:           os.Getenv("API_KEY"),
		MCPAuthToken:     os.Getenv("MCP_AUTH_TOKEN"),
	}

	if cfg.BarkKey == "" {
		log.Warn("BARK_KEY not set, Bark push disabled")
	}
	if cfg.TelegramBotToken == "" {
		log.Warn("TELEGRAM_BOT_TOKEN not set")
	}

	if v := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.TelegramChatID = n
		} else {
			log.Warnf("invalid TELEGRAM_CHAT_ID=%q, Telegram push disabled", v)
		}
	}

	cfg.ETFCodes = splitCodes(os.Getenv("ETF_CODES"))
	if len(cfg.ETFCodes) == 0 {
		for _, f := range domain.DefaultFunds {
			cfg.ETFCodes = append(cfg.ETFCodes, f.Code)
		}
	}

	cfg.DigestCron = strings.TrimSpace(os.Getenv("DIGEST_CRON"))
	if cfg.DigestCron == "" {
		cfg.DigestCron = DefaultDigestCron
	}

	cfg.DigestTimezone = strings.TrimSpace(os.Getenv("DIGEST_TIMEZONE"))
	if cfg.DigestTimezone == "" {
		cfg.DigestTimezone = DefaultDigestTimezone
	}
	loc, err := time.LoadLocation(cfg.DigestTimezone)
	if err != nil {
		log.Warnf("invalid DIGEST_TIMEZONE=%q, defaulting to %s", cfg.DigestTimezone, DefaultDigestTimezone)
		cfg.DigestTimezone = DefaultDigestTimezone
		loc, _ = time.LoadLocation(DefaultDigestTimezone)
	}
	cfg.DigestLocation = loc

	cfg.DigestRunOnStart = strings.EqualFold(strings.TrimSpace(os.Getenv("DIGEST_RUN_ON_START")), "true")

	cfg.HTTPPort = strings.TrimSpace(os.Getenv("HTTP_PORT"))
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}

	cfg.MCPTransport = strings.ToLower(strings.TrimSpace(os.Getenv("MCP_TRANSPORT")))
	if cfg.MCPTransport == "" {
		cfg.MCPTransport = "stdio"
	}
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		log.Warnf("unsupported MCP_TRANSPORT=%q, defaulting to stdio", cfg.MCPTransport)
		cfg.MCPTransport = "stdio"
	}

	cfg.MCPHTTPBind = strings.TrimSpace(os.Getenv("MCP_HTTP_BIND"))
	if cfg.MCPHTTPBind == "" {
		cfg.MCPHTTPBind = "127.0.0.1"
	}

	cfg.MCPHTTPPort = 8090
	if v := strings.TrimSpace(os.Getenv("MCP_HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MCPHTTPPort = n
		}
	}

	cfg.MCPRequestTimeoutSecs = 60
	if v := strings.TrimSpace(os.Getenv("MCP_REQUEST_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MCPRequestTimeoutSecs = n
		}
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if cfg.LogFormat != "json" {
		cfg.LogFormat = "text"
	}

	return cfg
}

// Funds resolves the configured codes to funds, keeping the known display
// names and falling back to the code for unknown funds.
func (c *Config) Funds() []domain.Fund {
	names := make(map[string]string, len(domain.DefaultFunds))
	for _, f := range domain.DefaultFunds {
		names[f.Code] = f.Name
	}
	out := make([]domain.Fund, 0, len(c.ETFCodes))
	for _, code := range c.ETFCodes {
		name, ok := names[code]
		if !ok {
			name = code
		}
		out = append(out, domain.Fund{Code: code, Name: name})
	}
	return out
}

func splitCodes(raw string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		code := strings.TrimSpace(part)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
