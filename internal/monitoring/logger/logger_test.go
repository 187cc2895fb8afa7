package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestNew_Default verifies that a nil configuration yields an info-level
// console logger.
func TestNew_Default(t *testing.T) {
	logger, flush, err := New(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, flush)

	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

// TestNew_Level verifies that the configured level is applied.
func TestNew_Level(t *testing.T) {
	logger, _, err := New(context.Background(), &Config{
		Encoding: "json",
		Level:    zapcore.DebugLevel,
	})
	require.NoError(t, err)

	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

// TestNew_BadEncoding verifies that an unknown encoding is rejected.
func TestNew_BadEncoding(t *testing.T) {
	_, _, err := New(context.Background(), &Config{Encoding: "xml"})
	assert.Error(t, err)
}
