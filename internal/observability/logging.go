// Package observability provides logger construction and shared log fields.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/chutes/internal/config"
)

// LoggerName is the root name attached to every logger built here.
const LoggerName = "chutes"

// NewLogger creates a structured logger from the given logging configuration.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig, opts ...zap.Option) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Named(LoggerName), nil
}

// SimulationFields returns the fields that identify a run's settings in logs.
func SimulationFields(cfg config.SimulationConfig) []zap.Field {
	return []zap.Field{
		zap.Uint64("seed", cfg.Seed),
		zap.Int("die_sides", cfg.DieSides),
		zap.Bool("shuffle_players", cfg.ShufflePlayers),
		zap.Bool("carry_over", cfg.CarryOver),
		zap.String("source", cfg.Source),
	}
}
