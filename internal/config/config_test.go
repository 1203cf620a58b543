package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BARK_KEY", "BARK_BASE_URL", "BARK_GROUP", "BARK_SOUND",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "ETF_CODES",
		"DIGEST_CRON", "DIGEST_TIMEZONE", "DIGEST_RUN_ON_START",
		"HTTP_PORT", "API_KEY", "MCP_TRANSPORT", "MCP_HTTP_BIND",
		"MCP_HTTP_PORT", "MCP_AUTH_TOKEN", "MCP_REQUEST_TIMEOUT_SECS",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.DigestCron != DefaultDigestCron {
		t.Fatalf("expected default cron, got %q", cfg.DigestCron)
	}
	if cfg.DigestLocation == nil || cfg.DigestLocation.String() != "Asia/Shanghai" {
		t.Fatalf("expected Asia/Shanghai, got %v", cfg.DigestLocation)
	}
	if cfg.DigestRunOnStart {
		t.Fatalf("run on start should default to false")
	}
	if cfg.HTTPPort != "8080" || cfg.MCPTransport != "stdio" || cfg.MCPHTTPPort != 8090 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("unexpected log defaults: %s %s", cfg.LogLevel, cfg.LogFormat)
	}
	funds := cfg.Funds()
	if len(funds) != 4 || funds[0].Code != "513500" || funds[0].Name != "博时标普500" {
		t.Fatalf("unexpected default funds: %+v", funds)
	}
}

func TestLoadWithEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BARK_KEY", "key")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("ETF_CODES", " 513100, 999999 ,513100")
	t.Setenv("DIGEST_CRON", "30 8 * * 1-5")
	t.Setenv("DIGEST_TIMEZONE", "UTC")
	t.Setenv("DIGEST_RUN_ON_START", "TRUE")
	t.Setenv("MCP_TRANSPORT", "HTTP")
	t.Setenv("MCP_HTTP_PORT", "9000")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Load()
	if cfg.BarkKey != "key" || cfg.TelegramBotToken != "token" || cfg.TelegramChatID != -100123 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.DigestCron != "30 8 * * 1-5" || cfg.DigestLocation.String() != "UTC" || !cfg.DigestRunOnStart {
		t.Fatalf("unexpected schedule config: %+v", cfg)
	}
	if cfg.MCPTransport != "http" || cfg.MCPHTTPPort != 9000 || cfg.LogFormat != "json" {
		t.Fatalf("unexpected transport config: %+v", cfg)
	}

	funds := cfg.Funds()
	if len(funds) != 2 {
		t.Fatalf("expected duplicate codes removed, got %+v", funds)
	}
	if funds[0].Name != "国泰纳斯达克100" || funds[1].Name != "999999" {
		t.Fatalf("unexpected fund names: %+v", funds)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_CHAT_ID", "abc")
	t.Setenv("DIGEST_TIMEZONE", "Mars/Olympus")
	t.Setenv("MCP_TRANSPORT", "carrier-pigeon")
	t.Setenv("MCP_HTTP_PORT", "bad")

	cfg := Load()
	if cfg.TelegramChatID != 0 {
		t.Fatalf("invalid chat id should be ignored, got %d", cfg.TelegramChatID)
	}
	if cfg.DigestTimezone != DefaultDigestTimezone || cfg.DigestLocation.String() != "Asia/Shanghai" {
		t.Fatalf("invalid timezone should fall back, got %s", cfg.DigestTimezone)
	}
	if cfg.MCPTransport != "stdio" || cfg.MCPHTTPPort != 8090 {
		t.Fatalf("unexpected fallbacks: %+v", cfg)
	}
}
