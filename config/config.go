package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360/fixedcap/errors"
	"github.com/c360/fixedcap/pkg/retry"
	"github.com/c360/fixedcap/pkg/spsc"
)

// Config represents a complete benchmark run: what to send, through which
// queue, how latencies are kept, and how the run is observed.
type Config struct {
	Scenario ScenarioConfig `json:"scenario" yaml:"scenario"`
	Queue    QueueConfig    `json:"queue" yaml:"queue"`
	Latency  LatencyConfig  `json:"latency" yaml:"latency"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// ScenarioConfig defines the producer workload.
type ScenarioConfig struct {
	Name     string   `json:"name" yaml:"name"`
	Items    int      `json:"items" yaml:"items"`              // Items to send
	Rate     float64  `json:"rate,omitempty" yaml:"rate,omitempty"`     // Items per second, 0 = unpaced
	Burst    int      `json:"burst,omitempty" yaml:"burst,omitempty"`    // Rate limiter burst
	Timeout  Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`  // Whole-run limit, 0 = none
	WorkTime Duration `json:"work_time,omitempty" yaml:"work_time,omitempty"` // Simulated processing per item
}

// QueueConfig defines the SPSC queue under test.
type QueueConfig struct {
	Slots   int           `json:"slots" yaml:"slots"` // Backing slots; usable capacity is slots-1
	Mode    string        `json:"mode" yaml:"mode"`  // cross-core or single-core
	Backoff BackoffConfig `json:"backoff" yaml:"backoff"`
}

// BackoffConfig mirrors retry.Config with file-friendly durations.
type BackoffConfig struct {
	MaxAttempts  int      `json:"max_attempts" yaml:"max_attempts"`
	InitialDelay Duration `json:"initial_delay" yaml:"initial_delay"`
	MaxDelay     Duration `json:"max_delay" yaml:"max_delay"`
	Multiplier   float64  `json:"multiplier" yaml:"multiplier"`
	Jitter       bool     `json:"jitter" yaml:"jitter"`
}

// LatencyConfig sizes the window of recent latencies kept for the report.
type LatencyConfig struct {
	Window int `json:"window" yaml:"window"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Port    int    `json:"port" yaml:"port"`
	Path    string `json:"path" yaml:"path"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`  // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // json, text
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Scenario: ScenarioConfig{
			Name:  "default",
			Items: 1_000_000,
		},
		Queue: QueueConfig{
			Slots: 1024,
			Mode:  spsc.CrossCore.String(),
			Backoff: BackoffConfig{
				MaxAttempts:  1000,
				InitialDelay: Duration(time.Microsecond),
				MaxDelay:     Duration(time.Millisecond),
				Multiplier:   2.0,
			},
		},
		Latency: LatencyConfig{
			Window: 4096,
		},
		Metrics: MetricsConfig{
			Port: 9090,
			Path: "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks semantic constraints the schema cannot express.
func (c *Config) Validate() error {
	var problems []string

	if c.Scenario.Items < 1 {
		problems = append(problems, "scenario.items must be at least 1")
	}
	if c.Scenario.Rate < 0 {
		problems = append(problems, "scenario.rate cannot be negative")
	}
	if c.Scenario.Rate > 0 && c.Scenario.Burst < 1 {
		problems = append(problems, "scenario.burst must be at least 1 when rate is set")
	}
	if c.Scenario.Timeout < 0 || c.Scenario.WorkTime < 0 {
		problems = append(problems, "scenario durations cannot be negative")
	}

	if c.Queue.Slots < 2 {
		problems = append(problems, fmt.Sprintf("queue.slots must be at least 2, got %d", c.Queue.Slots))
	}
	if _, ok := spsc.ParseMode(c.Queue.Mode); !ok {
		problems = append(problems, fmt.Sprintf("queue.mode %q is not cross-core or single-core", c.Queue.Mode))
	}
	if _, err := retry.NewBackoff(c.Queue.Backoff.RetryConfig()); err != nil {
		problems = append(problems, fmt.Sprintf("queue.backoff: %v", err))
	}

	if c.Latency.Window < 1 {
		problems = append(problems, "latency.window must be at least 1")
	}

	if c.Metrics.Enabled {
		if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
			problems = append(problems, fmt.Sprintf("metrics.port %d out of range", c.Metrics.Port))
		}
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			problems = append(problems, "metrics.path must start with /")
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q is not debug, info, warn or error", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not json or text", c.Log.Format))
	}

	if len(problems) > 0 {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrInvalidConfig, strings.Join(problems, "; ")),
			"Config", "Validate", "check constraints")
	}
	return nil
}

// QueueMode returns the parsed queue mode. Call after Validate.
func (c *Config) QueueMode() spsc.Mode {
	m, _ := spsc.ParseMode(c.Queue.Mode)
	return m
}

// RetryConfig converts the backoff section for the retry package.
func (b BackoffConfig) RetryConfig() retry.Config {
	return retry.Config{
		MaxAttempts:  b.MaxAttempts,
		InitialDelay: time.Duration(b.InitialDelay),
		MaxDelay:     time.Duration(b.MaxDelay),
		Multiplier:   b.Multiplier,
		AddJitter:    b.Jitter,
	}
}

// String returns the configuration as indented JSON.
func (c *Config) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return string(data)
}

// Duration is a time.Duration that reads as a Go duration string ("250us",
// "5s") or an integer count of nanoseconds, and writes as a string.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return d.set(v)
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch val := v.(type) {
	case string:
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", val, err)
		}
		*d = Duration(parsed)
	case float64:
		*d = Duration(int64(val))
	case int:
		*d = Duration(val)
	case nil:
		*d = 0
	default:
		return fmt.Errorf("invalid duration %v", v)
	}
	return nil
}
