package config

import (
	"testing"
	"time"

	flag "github.com/spf13/pflag"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	r := cfg.Rules()
	if r.Rows != 6 || r.Columns != 7 || r.WinLength != 4 {
		t.Errorf("Rules() = %+v, want 6x7 connect 4", r)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"missing tcp addr", func(c *Config) { c.TCPAddr = "" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"zero rows", func(c *Config) { c.Rows = 0 }, true},
		{"win length 1", func(c *Config) { c.WinLength = 1 }, true},
		{"line does not fit", func(c *Config) { c.Rows, c.Columns, c.WinLength = 3, 3, 5 }, true},
		{"connect five on 9x9", func(c *Config) { c.Rows, c.Columns, c.WinLength = 9, 9, 5 }, false},
		{"zero grace", func(c *Config) { c.ShutdownGrace = 0 }, true},
		{"negative think", func(c *Config) { c.BotThinkTime = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CONNECT4_TCP_ADDR", ":9000")
	t.Setenv("REDIS_CONNSTRING", "redis://cache:6379/0")
	t.Setenv("CONNECT4_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("CONNECT4_STDOUT_TRACES", "yes")
	t.Setenv("CONNECT4_LOG_LEVEL", "DEBUG")
	t.Setenv("CONNECT4_COLUMNS", "9")
	t.Setenv("CONNECT4_BOT_THINK", "250ms")
	t.Setenv("CONNECT4_SHUTDOWN_GRACE", "10")

	cfg := Default()
	LoadFromEnv(cfg)

	if cfg.TCPAddr != ":9000" {
		t.Errorf("TCPAddr = %q, want :9000", cfg.TCPAddr)
	}
	if cfg.HTTPAddr != DefaultHTTPAddr {
		t.Errorf("HTTPAddr = %q, want default", cfg.HTTPAddr)
	}
	if cfg.RedisAddr != "redis://cache:6379/0" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.OTLPEndpoint != "collector:4317" || !cfg.StdoutTraces {
		t.Errorf("telemetry = %q/%v", cfg.OTLPEndpoint, cfg.StdoutTraces)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Columns != 9 || cfg.Rows != DefaultRows {
		t.Errorf("board = %dx%d, want %dx9", cfg.Rows, cfg.Columns, DefaultRows)
	}
	if cfg.BotThinkTime != 250*time.Millisecond {
		t.Errorf("BotThinkTime = %v", cfg.BotThinkTime)
	}
	if cfg.ShutdownGrace != 10*time.Second {
		t.Errorf("ShutdownGrace = %v", cfg.ShutdownGrace)
	}
}

func TestLoadFromEnv_IgnoresGarbage(t *testing.T) {
	t.Setenv("CONNECT4_ROWS", "many")
	t.Setenv("CONNECT4_BOT_THINK", "soon")

	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Rows != DefaultRows {
		t.Errorf("Rows = %d, want default", cfg.Rows)
	}
	if cfg.BotThinkTime != DefaultBotThinkTime {
		t.Errorf("BotThinkTime = %v, want default", cfg.BotThinkTime)
	}
}

func TestBindFlags_FlagsWinOverEnv(t *testing.T) {
	t.Setenv("CONNECT4_TCP_ADDR", ":9000")
	t.Setenv("CONNECT4_HTTP_ADDR", ":9090")

	cfg := Default()
	LoadFromEnv(cfg)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	BindFlags(fs, cfg)
	if err := fs.Parse([]string{"--tcp-addr", ":7000", "-L", "warn", "--win-length=5"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.TCPAddr != ":7000" {
		t.Errorf("TCPAddr = %q, want flag value", cfg.TCPAddr)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want env value", cfg.HTTPAddr)
	}
	if cfg.LogLevel != "warn" || cfg.WinLength != 5 {
		t.Errorf("LogLevel/WinLength = %q/%d", cfg.LogLevel, cfg.WinLength)
	}
}
