package config

import (
	"log/slog"

	"git.home.luguber.info/inful/docnav/internal/foundation/normalization"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevels = normalization.NewEnum("log level", map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

// NormalizeLogLevel maps raw input to a LogLevel, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel {
	return logLevels.Lookup(raw)
}

// SlogLevel converts the level for use with log/slog.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormats = normalization.NewEnum("log format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

// NormalizeLogFormat maps raw input to a LogFormat, defaulting to text.
func NormalizeLogFormat(raw string) LogFormat {
	return logFormats.Lookup(raw)
}
