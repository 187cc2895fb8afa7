package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"

	"github.com/yanet-platform/termwatch/internal/monitoring/logger"
	"github.com/yanet-platform/termwatch/internal/scheduler"
	"github.com/yanet-platform/termwatch/internal/server"
	"github.com/yanet-platform/termwatch/internal/shutdown"
)

// Scheduling models of the shutdown listener.
const (
	ModelThreads = "threads"
	ModelTasks   = "tasks"
)

// Listener modes.
const (
	ModeCoordinated = "coordinated"
	ModeImmediate   = "immediate"
)

const (
	defaultWorkers     = 4
	defaultJobDuration = 500 * time.Millisecond
)

var errInvalidConfig = errors.New("invalid config")

type Config struct {
	Logger      *logger.Config     `yaml:"logging"`
	Coordinator *CoordinatorConfig `yaml:"coordinator"`
	Server      *server.Config     `yaml:"server"`
	Worker      *WorkerConfig      `yaml:"worker"`
}

// CoordinatorConfig selects how the shutdown listener runs.
type CoordinatorConfig struct {
	// Model is the scheduling model: threads or tasks.
	Model string `yaml:"model"`
	// Mode is coordinated (drain before exit) or immediate (log and exit).
	Mode string `yaml:"mode"`
	// PollInterval is the delay between checks for drain completion.
	PollInterval time.Duration `yaml:"poll_interval"`
	// Signals overrides the termination signals, by name.
	Signals []string `yaml:"signals"`
}

// Default sets the default values for the configuration.
func (m *CoordinatorConfig) Default() {
	m.Model = ModelThreads
	m.Mode = ModeCoordinated
	m.PollInterval = shutdown.DefaultPollInterval
}

// Immediate reports whether the listener only observes the signal.
func (m *CoordinatorConfig) Immediate() bool {
	return m.Mode == ModeImmediate
}

// NewModel returns the configured scheduling model. Task listeners join group
// and live as long as ctx.
func (m *CoordinatorConfig) NewModel(ctx context.Context, group *errgroup.Group) (shutdown.Model, error) {
	switch m.Model {
	case ModelThreads:
		return shutdown.Threads(), nil
	case ModelTasks:
		return shutdown.Tasks(ctx, group), nil
	default:
		return nil, fmt.Errorf("%w: unknown coordinator model %q", errInvalidConfig, m.Model)
	}
}

// Options returns the coordinator options the configuration implies.
func (m *CoordinatorConfig) Options() ([]shutdown.Option, error) {
	opts := []shutdown.Option{
		shutdown.WithPollInterval(m.PollInterval),
	}

	if len(m.Signals) > 0 {
		signals := make([]os.Signal, 0, len(m.Signals))
		for _, name := range m.Signals {
			sig, err := shutdown.ParseSignal(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", errInvalidConfig, err)
			}
			signals = append(signals, sig)
		}
		opts = append(opts, shutdown.WithSignals(signals...))
	}

	return opts, nil
}

func (m *CoordinatorConfig) validate() error {
	if m.Model != ModelThreads && m.Model != ModelTasks {
		return fmt.Errorf("%w: unknown coordinator model %q", errInvalidConfig, m.Model)
	}
	if m.Mode != ModeCoordinated && m.Mode != ModeImmediate {
		return fmt.Errorf("%w: unknown coordinator mode %q", errInvalidConfig, m.Mode)
	}
	return nil
}

// WorkerConfig describes the reference workload.
type WorkerConfig struct {
	// Workers is the number of jobs executed concurrently.
	Workers int `yaml:"workers"`
	// JobDuration is how long a single job takes.
	JobDuration time.Duration `yaml:"job_duration"`

	Scheduler scheduler.Config `yaml:",inline"`
}

// Default sets the default values for the configuration.
func (m *WorkerConfig) Default() {
	m.Workers = defaultWorkers
	m.JobDuration = defaultJobDuration
	m.Scheduler.Default()
}

// GetJobDuration returns the job duration.
// If the duration is not set, it returns the default value.
func (m *WorkerConfig) GetJobDuration() time.Duration {
	if m.JobDuration <= 0 {
		return defaultJobDuration
	}
	return m.JobDuration
}

// LoadConfig reads the YAML configuration at path. Missing sections get
// their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.setDefaults()
	if err := config.Coordinator.validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (m *Config) setDefaults() {
	if m.Logger == nil {
		m.Logger = &logger.Config{}
		m.Logger.Default()
	}
	if m.Logger.Encoding == "" {
		m.Logger.Encoding = "console"
	}

	if m.Coordinator == nil {
		m.Coordinator = &CoordinatorConfig{}
		m.Coordinator.Default()
	}
	if m.Coordinator.Model == "" {
		m.Coordinator.Model = ModelThreads
	}
	if m.Coordinator.Mode == "" {
		m.Coordinator.Mode = ModeCoordinated
	}

	if m.Server == nil {
		m.Server = &server.Config{}
		m.Server.Default()
	}
	if m.Server.HTTPAddr == "" {
		m.Server.Default()
	}

	if m.Worker == nil {
		m.Worker = &WorkerConfig{}
		m.Worker.Default()
	}
	if m.Worker.Workers <= 0 {
		m.Worker.Workers = defaultWorkers
	}
	if m.Worker.JobDuration <= 0 {
		m.Worker.JobDuration = defaultJobDuration
	}
}
