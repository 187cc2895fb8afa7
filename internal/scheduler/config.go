package scheduler

import "time"

const (
	defaultInterval   = time.Second            // default delay between jobs
	defaultRetries    = 1                      // default number of retry attempts
	defaultRetryDelay = 100 * time.Millisecond // default delay before retrying
)

// Config holds the configuration for scheduling jobs. Unset values select the
// defaults.
type Config struct {
	// Interval between job executions.
	Interval time.Duration `yaml:"job_interval"`
	// Number of retry attempts after a failed job. Zero disables retries.
	Retries *int `yaml:"retries"`
	// Delay before retrying.
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// Default sets the configuration to default values.
func (m *Config) Default() {
	m.Interval = defaultInterval
	retries := defaultRetries
	m.Retries = &retries
	m.RetryDelay = defaultRetryDelay
}

// GetInterval returns the delay between jobs.
// If the interval is not set, it returns the default interval.
func (m Config) GetInterval() time.Duration {
	if m.Interval <= 0 {
		return defaultInterval
	}
	return m.Interval
}

// GetRetries returns the number of retry attempts.
// If retries are not set, it returns the default number of retries.
func (m Config) GetRetries() int {
	if m.Retries == nil {
		return defaultRetries
	}
	return max(*m.Retries, 0)
}

// GetRetryDelay returns the retry delay duration.
// If retry delay is not set, it returns the default retry delay value.
func (m Config) GetRetryDelay() time.Duration {
	if m.RetryDelay <= 0 {
		return defaultRetryDelay
	}
	return m.RetryDelay
}
