// Package logger provides structured logging using Zap.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init initializes the global logger for the given environment.
// "production" gets the JSON encoder, "test" discards everything, and any
// other value uses the human-readable development console encoder.
// LOG_LEVEL (debug, info, warn, error) overrides the environment's default level.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		switch env {
		case "production":
			cfg := zap.NewProductionConfig()
			applyLevel(&cfg)
			base, err = cfg.Build()
		case "test":
			base = zap.NewNop()
		default:
			cfg := zap.NewDevelopmentConfig()
			applyLevel(&cfg)
			base, err = cfg.Build()
		}

		if err != nil {
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

func applyLevel(cfg *zap.Config) {
	raw := os.Getenv("LOG_LEVEL")
	if raw == "" {
		return
	}
	if level, err := zap.ParseAtomicLevel(raw); err == nil {
		cfg.Level = level
	}
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
