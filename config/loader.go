package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360/fixedcap/errors"
)

// DefaultEnvPrefix is the environment variable prefix read by NewLoader.
const DefaultEnvPrefix = "SPSCBENCH"

// Loader reads a configuration file over the defaults, applies environment
// overrides and validates the result.
type Loader struct {
	envPrefix string
	lookupEnv func(string) (string, bool)
}

// NewLoader creates a loader reading SPSCBENCH_* overrides from the process
// environment.
func NewLoader() *Loader {
	return &Loader{
		envPrefix: DefaultEnvPrefix,
		lookupEnv: os.LookupEnv,
	}
}

// WithEnv replaces the environment lookup, mainly for tests.
func (l *Loader) WithEnv(prefix string, lookup func(string) (string, bool)) *Loader {
	l.envPrefix = prefix
	l.lookupEnv = lookup
	return l
}

// LoadFile loads path over Default(). An empty path loads the defaults alone.
func (l *Loader) LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := safeReadFile(path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return nil, errors.WrapInvalid(
					fmt.Errorf("%w: %s", errors.ErrConfigNotFound, path), "Loader", "LoadFile", "read config")
			}
			return nil, errors.WrapInvalid(
				fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err), "Loader", "LoadFile", "read config")
		}
		format, _ := formatOf(path)
		if err := l.decode(cfg, data, format, path); err != nil {
			return nil, err
		}
	}

	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load decodes data in the given format over Default() and validates it.
func (l *Loader) Load(data []byte, format Format) (*Config, error) {
	cfg := Default()
	if err := l.decode(cfg, data, format, "<bytes>"); err != nil {
		return nil, err
	}
	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode checks data against the schema, then overlays it on cfg. Fields
// absent from data keep their current values.
func (l *Loader) decode(cfg *Config, data []byte, format Format, source string) error {
	var doc any
	switch format {
	case FormatJSON:
		if err := validateJSONDepth(data); err != nil {
			return errors.WrapInvalid(
				fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err), "Loader", "Load", "parse "+source)
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return errors.WrapInvalid(
				fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err), "Loader", "Load", "parse "+source)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return errors.WrapInvalid(
				fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err), "Loader", "Load", "parse "+source)
		}
	default:
		return errors.WrapInvalid(
			fmt.Errorf("%w: unknown format %d", errors.ErrInvalidConfig, format), "Loader", "Load", "parse "+source)
	}

	if doc == nil {
		// empty document
		return nil
	}

	problems, err := validateSchema(doc)
	if err != nil {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err), "Loader", "Load", "schema validation of "+source)
	}
	if len(problems) > 0 {
		return schemaError(problems, source)
	}

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
	}
	if err != nil {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err), "Loader", "Load", "decode "+source)
	}
	return nil
}

// applyEnvOverrides applies PREFIX_SECTION_FIELD environment overrides.
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	overrides := []struct {
		key   string
		apply func(string) error
	}{
		{"SCENARIO_ITEMS", intSetter(&cfg.Scenario.Items)},
		{"SCENARIO_RATE", floatSetter(&cfg.Scenario.Rate)},
		{"SCENARIO_BURST", intSetter(&cfg.Scenario.Burst)},
		{"SCENARIO_TIMEOUT", durationSetter(&cfg.Scenario.Timeout)},
		{"QUEUE_SLOTS", intSetter(&cfg.Queue.Slots)},
		{"QUEUE_MODE", stringSetter(&cfg.Queue.Mode)},
		{"LATENCY_WINDOW", intSetter(&cfg.Latency.Window)},
		{"METRICS_ENABLED", boolSetter(&cfg.Metrics.Enabled)},
		{"METRICS_PORT", intSetter(&cfg.Metrics.Port)},
		{"LOG_LEVEL", stringSetter(&cfg.Log.Level)},
		{"LOG_FORMAT", stringSetter(&cfg.Log.Format)},
	}

	for _, o := range overrides {
		key := l.envPrefix + "_" + o.key
		val, ok := l.lookupEnv(key)
		if !ok || val == "" {
			continue
		}
		if err := validateEnvVar(key, val); err != nil {
			return errors.WrapInvalid(
				fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err), "Loader", "applyEnvOverrides", "read "+key)
		}
		if err := o.apply(strings.TrimSpace(val)); err != nil {
			return errors.WrapInvalid(
				fmt.Errorf("%w: %s: %w", errors.ErrInvalidConfig, key, err), "Loader", "applyEnvOverrides", "parse "+key)
		}
	}
	return nil
}

func intSetter(dst *int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err == nil {
			*dst = v
		}
		return err
	}
}

func floatSetter(dst *float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err == nil {
			*dst = v
		}
		return err
	}
}

func boolSetter(dst *bool) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseBool(s)
		if err == nil {
			*dst = v
		}
		return err
	}
}

func durationSetter(dst *Duration) func(string) error {
	return func(s string) error {
		v, err := time.ParseDuration(s)
		if err == nil {
			*dst = Duration(v)
		}
		return err
	}
}

func stringSetter(dst *string) func(string) error {
	return func(s string) error {
		*dst = s
		return nil
	}
}
