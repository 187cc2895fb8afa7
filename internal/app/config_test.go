package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/yanet-platform/termwatch/internal/shutdown"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "termwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

// TestLoadConfig verifies that every section of a full config is read.
func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
coordinator:
  model: tasks
  mode: coordinated
  poll_interval: 50ms
  signals: [TERM, sigint]
server:
  http_addr: 127.0.0.1:9000
worker:
  workers: 8
  job_interval: 2s
  job_duration: 300ms
  retries: 3
  retry_delay: 10ms
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, zapcore.DebugLevel, config.Logger.Level)
	assert.Equal(t, "console", config.Logger.Encoding)
	assert.Equal(t, ModelTasks, config.Coordinator.Model)
	assert.False(t, config.Coordinator.Immediate())
	assert.Equal(t, 50*time.Millisecond, config.Coordinator.PollInterval)
	assert.Equal(t, []string{"TERM", "sigint"}, config.Coordinator.Signals)
	assert.Equal(t, "127.0.0.1:9000", config.Server.HTTPAddr)
	assert.Equal(t, 8, config.Worker.Workers)
	assert.Equal(t, 300*time.Millisecond, config.Worker.GetJobDuration())
	assert.Equal(t, 2*time.Second, config.Worker.Scheduler.GetInterval())
	assert.Equal(t, 3, config.Worker.Scheduler.GetRetries())
	assert.Equal(t, 10*time.Millisecond, config.Worker.Scheduler.GetRetryDelay())

	opts, err := config.Coordinator.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 2)
}

// TestLoadConfig_Defaults verifies that an empty config gets every default.
func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, ModelThreads, config.Coordinator.Model)
	assert.Equal(t, ModeCoordinated, config.Coordinator.Mode)
	assert.Equal(t, shutdown.DefaultPollInterval, config.Coordinator.PollInterval)
	assert.Equal(t, "[::1]:14080", config.Server.HTTPAddr)
	assert.Equal(t, 4, config.Worker.Workers)
	assert.Equal(t, zapcore.InfoLevel, config.Logger.Level)
}

// TestLoadConfig_PartialWorker verifies that fields missing from a written
// worker section get their defaults while explicit zero retries are kept.
func TestLoadConfig_PartialWorker(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, "worker:\n  retries: 0\n"))
	require.NoError(t, err)

	assert.Equal(t, defaultWorkers, config.Worker.Workers)
	assert.Equal(t, defaultJobDuration, config.Worker.JobDuration)
	assert.Equal(t, 0, config.Worker.Scheduler.GetRetries())
	assert.Equal(t, time.Second, config.Worker.Scheduler.GetInterval())
}

// TestLoadConfig_Invalid verifies that unknown models and modes and missing
// files are rejected.
func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "coordinator:\n  model: fibers\n"))
	require.ErrorIs(t, err, errInvalidConfig)

	_, err = LoadConfig(writeConfig(t, "coordinator:\n  mode: eventually\n"))
	require.ErrorIs(t, err, errInvalidConfig)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

// TestCoordinatorConfig_Options verifies that configured signal names turn
// into coordinator options and uncatchable ones are rejected.
func TestCoordinatorConfig_Options(t *testing.T) {
	config := CoordinatorConfig{Signals: []string{"SIGKILL"}}
	_, err := config.Options()
	require.ErrorIs(t, err, errInvalidConfig)
	require.ErrorIs(t, err, shutdown.ErrUnsupportedSignal)

	config = CoordinatorConfig{Mode: ModeImmediate, Signals: []string{"HUP"}}
	assert.True(t, config.Immediate())
	opts, err := config.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 2)
}
