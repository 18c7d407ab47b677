package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath      string
	LogLevel        string
	LogFormat       string
	MetricsPort     int
	ShutdownTimeout time.Duration
	ShowVersion     bool
	ShowHelp        bool
	Validate        bool

	usage func()
}

func parseFlags(args []string, output io.Writer) (*CLIConfig, error) {
	cfg := &CLIConfig{}
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(output)

	// Define flags with environment variable fallback
	fs.StringVar(&cfg.ConfigPath, "config",
		getEnv("SPSCBENCH_CONFIG", ""),
		"Path to a JSON or YAML scenario file (env: SPSCBENCH_CONFIG)")

	fs.StringVar(&cfg.ConfigPath, "c",
		getEnv("SPSCBENCH_CONFIG", ""),
		"Path to a JSON or YAML scenario file (env: SPSCBENCH_CONFIG)")

	fs.StringVar(&cfg.LogLevel, "log-level", "",
		"Log level override: debug, info, warn, error (config file or SPSCBENCH_LOG_LEVEL otherwise)")

	fs.StringVar(&cfg.LogFormat, "log-format", "",
		"Log format override: json, text (config file or SPSCBENCH_LOG_FORMAT otherwise)")

	fs.IntVar(&cfg.MetricsPort, "metrics-port", 0,
		"Serve Prometheus metrics on this port, overriding the config file")

	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout",
		getEnvDuration("SPSCBENCH_SHUTDOWN_TIMEOUT", 10*time.Second),
		"Time allowed for the consumer to drain at the end of a run (env: SPSCBENCH_SHUTDOWN_TIMEOUT)")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	fs.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	fs.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	fs.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	fs.Usage = func() {
		printDetailedHelp(fs, output)
	}
	cfg.usage = fs.Usage

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.LogLevel != "" && !contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	if cfg.LogFormat != "" && !contains([]string{"json", "text"}, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}
	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout: %s", cfg.ShutdownTimeout)
	}
	return nil
}

func printDetailedHelp(fs *flag.FlagSet, w io.Writer) {
	_, _ = fmt.Fprintf(w, `%s - SPSC queue throughput and latency bench

Usage: %s [options]

Options:
`, appName, appName)
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(w, `
Examples:
  # Run the default scenario (1M items through a 1024-slot queue)
  %s

  # Run a paced scenario from a file with metrics exposed
  %s --config=scenarios/paced.yaml --metrics-port=9090

  # Run with environment overrides
  export SPSCBENCH_QUEUE_SLOTS=64
  export SPSCBENCH_QUEUE_MODE=single-core
  %s

  # Validate configuration only
  %s --config=scenarios/paced.yaml --validate

Version: %s
`, appName, appName, appName, appName, Version)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
