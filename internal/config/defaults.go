package config

import "time"

// ── Default values ───────────────────────────────────────────────────

const (
	// DefaultTCPAddr is where raw integer-protocol peers connect.
	DefaultTCPAddr = ":8000"

	// DefaultHTTPAddr serves the WebSocket endpoint and the session API.
	DefaultHTTPAddr = ":8080"

	DefaultLogLevel = "info"

	DefaultRows      = 6
	DefaultColumns   = 7
	DefaultWinLength = 4

	// DefaultBotThinkTime is how long a bot waits before answering.
	DefaultBotThinkTime = 500 * time.Millisecond

	// DefaultShutdownGrace bounds HTTP shutdown and telemetry flushing.
	DefaultShutdownGrace = 5 * time.Second
)

// Default returns a Config populated with the defaults above.
func Default() *Config {
	return &Config{
		TCPAddr:       DefaultTCPAddr,
		HTTPAddr:      DefaultHTTPAddr,
		LogLevel:      DefaultLogLevel,
		Rows:          DefaultRows,
		Columns:       DefaultColumns,
		WinLength:     DefaultWinLength,
		BotThinkTime:  DefaultBotThinkTime,
		ShutdownGrace: DefaultShutdownGrace,
	}
}
