package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// HistoryPath is the sqlite file used for best-effort message history.
	// Empty disables persistence entirely.
	HistoryPath string `mapstructure:"history_path" yaml:"history_path"`

	MaxMessageBytes   int `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	MessagesPerMinute int `mapstructure:"messages_per_minute" yaml:"messages_per_minute"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		HistoryPath:       "",
		MaxMessageBytes:   4 << 10,
		MessagesPerMinute: 120,
	}
}
