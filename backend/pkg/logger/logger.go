package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every entry written by the process logger
const ServiceName = "eventgraph"

// Logger is the process logger. It stays nil until Init succeeds.
var Logger *zap.Logger

var fallback = sync.OnceValue(func() *zap.Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l.With(zap.String("service", ServiceName))
})

// Init builds the process logger for env. Production writes JSON at info,
// anything else writes colored console output at debug. A non-empty level
// ("debug", "info", "warn", "error") replaces the env default.
func Init(env, level string) error {
	cfg, err := buildConfig(env, level)
	if err != nil {
		return err
	}

	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	Logger = built.With(zap.String("service", ServiceName))
	return nil
}

func buildConfig(env, level string) (zap.Config, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return cfg, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	return cfg, nil
}

// Sync flushes any buffered log entries
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Get returns the process logger, or a shared development logger before Init
func Get() *zap.Logger {
	if Logger == nil {
		return fallback()
	}
	return Logger
}

// Named returns a child of the process logger tagged with a component name
func Named(component string) *zap.Logger {
	return Get().With(zap.String("component", component))
}
