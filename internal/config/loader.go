package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (BindFlags)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadFromEnv overlays environment variables onto cfg. Only non-empty
// env vars override the existing value. Server variables use the
// CONNECT4_ prefix; REDIS_CONNSTRING and OTEL_EXPORTER_OTLP_ENDPOINT are
// honoured under their usual names.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("CONNECT4_TCP_ADDR"); v != "" {
		cfg.TCPAddr = v
	}
	if v := os.Getenv("CONNECT4_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("REDIS_CONNSTRING"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTLPEndpoint = v
	}
	if v := os.Getenv("CONNECT4_OTLP_ENDPOINT"); v != "" {
		cfg.OTLPEndpoint = v
	}
	if envBool("CONNECT4_STDOUT_TRACES") {
		cfg.StdoutTraces = true
	}
	if v := os.Getenv("CONNECT4_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	// Rules
	if v := envInt("CONNECT4_ROWS"); v > 0 {
		cfg.Rows = v
	}
	if v := envInt("CONNECT4_COLUMNS"); v > 0 {
		cfg.Columns = v
	}
	if v := envInt("CONNECT4_WIN_LENGTH"); v > 0 {
		cfg.WinLength = v
	}

	if v, ok := envDuration("CONNECT4_BOT_THINK"); ok {
		cfg.BotThinkTime = v
	}
	if v, ok := envDuration("CONNECT4_SHUTDOWN_GRACE"); ok {
		cfg.ShutdownGrace = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

// envDuration accepts Go durations ("750ms") or whole seconds ("5").
func envDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d, true
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		return time.Duration(n) * time.Second, true
	}
	return 0, false
}
