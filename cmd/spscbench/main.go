// Package main implements spscbench, which pushes a configurable workload
// through a lock-free SPSC queue and reports throughput and latency.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/c360/fixedcap/config"
	"github.com/c360/fixedcap/health"
	"github.com/c360/fixedcap/metric"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "spscbench"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	if err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cliCfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("invalid flags: %w", err)
	}
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		_, _ = fmt.Fprintf(stdout, "%s version %s\n", appName, Version)
		return nil
	}
	if cliCfg.ShowHelp {
		cliCfg.usage()
		return nil
	}

	cfg, err := initializeConfiguration(cliCfg)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log.Level, cfg.Log.Format, stderr)
	slog.SetDefault(logger)

	if cliCfg.Validate {
		logger.Info("Configuration is valid", "config_path", cliCfg.ConfigPath)
		return nil
	}

	registry := metric.NewMetricsRegistry()
	b, err := newBench(cfg, logger, registry, cliCfg.ShutdownTimeout)
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		stop := startMetricsServer(cfg.Metrics, registry, b.health, logger)
		defer stop()
	}

	rep, err := b.run(ctx)
	if rep != nil {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(rep); encErr != nil {
			logger.Warn("Failed to write report", "error", encErr)
		}
	}
	return err
}

// initializeConfiguration loads the scenario and applies flag overrides.
func initializeConfiguration(cliCfg *CLIConfig) (*config.Config, error) {
	cfg, err := config.NewLoader().LoadFile(cliCfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cliCfg.LogLevel != "" {
		cfg.Log.Level = cliCfg.LogLevel
	}
	if cliCfg.LogFormat != "" {
		cfg.Log.Format = cliCfg.LogFormat
	}
	if cliCfg.MetricsPort > 0 {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Port = cliCfg.MetricsPort
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// startMetricsServer serves the registry in the background and returns a
// function that shuts it down.
func startMetricsServer(cfg config.MetricsConfig, registry *metric.MetricsRegistry,
	check func() health.Status, logger *slog.Logger,
) func() {
	server := metric.NewServer(cfg.Port, cfg.Path, registry)
	server.SetHealthCheck(check)
	if err := server.Listen(); err != nil {
		logger.Error("Metrics server failed", "error", err)
		return func() {}
	}
	go func() {
		if err := server.Serve(); err != nil {
			logger.Error("Metrics server failed", "error", err)
		}
	}()
	logger.Info("Serving metrics", "address", server.Address())

	return func() {
		if err := server.Stop(); err != nil {
			logger.Warn("Failed to stop metrics server", "error", err)
		}
	}
}
