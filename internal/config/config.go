// Package config defines the runtime configuration of the session server.
package config

import (
	"ctchen222/Connect-Four/internal/game"
	"ctchen222/Connect-Four/internal/validator"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
)

// Config holds every tuneable of the server process.
type Config struct {
	// ── Listeners ────────────────────────────────────────────────────
	TCPAddr  string `flag:"tcp-addr" validate:"required"`
	HTTPAddr string `flag:"http-addr" validate:"required"`

	// ── Backing services ─────────────────────────────────────────────
	RedisAddr    string // empty keeps live sessions in memory
	OTLPEndpoint string // empty disables OTLP export
	StdoutTraces bool

	// ── Rules ────────────────────────────────────────────────────────
	Rows      int `flag:"rows" validate:"min=1,max=64"`
	Columns   int `flag:"columns" validate:"min=1,max=64"`
	WinLength int `flag:"win-length" validate:"min=2"`

	// ── Behaviour ────────────────────────────────────────────────────
	LogLevel      string        `flag:"log-level" validate:"oneof=debug info warn warning error"`
	BotThinkTime  time.Duration `flag:"bot-think" validate:"min=0"`
	ShutdownGrace time.Duration `flag:"shutdown-grace" validate:"gt=0"`
}

// Rules returns the board rules described by the config.
func (c *Config) Rules() game.Rules {
	return game.Rules{Rows: c.Rows, Columns: c.Columns, WinLength: c.WinLength}
}

// Validate checks field constraints and that the rules are playable.
func (c *Config) Validate() error {
	if err := validator.GetValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	return nil
}

// BindFlags registers the server flags on fs. Current values of cfg are
// used as flag defaults, so call it after LoadFromEnv.
func BindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.TCPAddr, "tcp-addr", cfg.TCPAddr, "Listen address for integer-protocol peers")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "Listen address for WebSocket peers and the HTTP API")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address or URL for live session state (empty: in memory)")
	fs.StringVar(&cfg.OTLPEndpoint, "otlp-endpoint", cfg.OTLPEndpoint, "OTLP gRPC collector endpoint (empty: disabled)")
	fs.BoolVar(&cfg.StdoutTraces, "stdout-traces", cfg.StdoutTraces, "Print traces to stdout")
	fs.IntVar(&cfg.Rows, "rows", cfg.Rows, "Board rows")
	fs.IntVar(&cfg.Columns, "columns", cfg.Columns, "Board columns")
	fs.IntVar(&cfg.WinLength, "win-length", cfg.WinLength, "Tokens in a row needed to win")
	fs.StringVarP(&cfg.LogLevel, "log-level", "L", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.DurationVar(&cfg.BotThinkTime, "bot-think", cfg.BotThinkTime, "Delay before a bot answers")
	fs.DurationVar(&cfg.ShutdownGrace, "shutdown-grace", cfg.ShutdownGrace, "Time allowed for graceful shutdown")
}
