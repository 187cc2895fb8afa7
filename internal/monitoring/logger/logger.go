// Package logger builds the zap logger used by termwatch.
package logger

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FlushFunc flushes buffered log entries. It must be called before the
// process exits.
type FlushFunc func(ctx context.Context) error

// New creates a new logger instance with the given configuration. Entries go
// to stdout and, if configured, to an OTEL collector.
func New(ctx context.Context, config *Config) (*zap.Logger, FlushFunc, error) {
	if config == nil {
		config = &Config{}
		config.Default()
	}

	// Construct zap configuration.
	zapConfig := zap.Config{
		Level:             zap.NewAtomicLevelAt(config.Level),
		Encoding:          config.Encoding,
		DisableStacktrace: true,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "name",
			CallerKey:      "caller",
			MessageKey:     "msg",
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, nil, err
	}

	// Add hostname to the logger.
	hostname, err := os.Hostname()
	if err == nil {
		logger = logger.With(zap.String("host", hostname))
	} else {
		logger.Error("Could not detect hostname", zap.Error(err))
	}

	flush := func(context.Context) error {
		return logger.Sync()
	}

	// If OTEL exporter is configured, add exporter to the logger.
	if config.OTEL != nil {
		otelCore, shutdown, err := setupOTELExporter(ctx, config.OTEL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to setup OTEL exporter: %w", err)
		}

		logger = logger.WithOptions(
			zap.WrapCore(func(core zapcore.Core) zapcore.Core {
				return zapcore.NewTee(core, otelCore)
			}),
		)

		flush = func(ctx context.Context) error {
			// Sync errors on stdout are common and not actionable.
			_ = logger.Sync()
			return shutdown(ctx)
		}
	}

	return logger, flush, nil
}
