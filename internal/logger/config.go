package logger

import (
	"log/slog"
	"strings"
)

// Config describes the handler behind the client's log file
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// DefaultConfig keeps the CLI quiet: only warnings and errors are written.
func DefaultConfig() Config {
	return Config{
		Level:       slog.LevelWarn.String(),
		Format:      LogFormatText,
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
		Environment: EnvironmentDev,
	}
}

// ForEnvironment adjusts the defaults for env. A dev build logs debug lines
// with source positions, a prod build logs JSON at info.
func ForEnvironment(env string) Config {
	cfg := DefaultConfig()
	cfg.Environment = env
	switch strings.ToLower(env) {
	case EnvironmentDev:
		cfg.Level = slog.LevelDebug.String()
		cfg.AddSource = true
	case EnvironmentProd:
		cfg.Level = slog.LevelInfo.String()
		cfg.Format = LogFormatJSON
	}
	return cfg
}

// LogLevel parses Level the way slog does ("debug", "WARN", "info+2") and
// falls back to info for anything it cannot read.
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelWarning:
		return slog.LevelWarn
	case LogLevelQuiet:
		return slog.LevelError
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// IsJSON reports whether records are written as JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes returns the attributes stamped on every record, skipping
// empty ones
func (c Config) BaseAttributes() []slog.Attr {
	attrs := make([]slog.Attr, 0, 3)
	for _, kv := range [][2]string{
		{AttrKeyService, c.ServiceName},
		{AttrKeyVersion, c.Version},
		{AttrKeyEnvironment, c.Environment},
	} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}
	return attrs
}
