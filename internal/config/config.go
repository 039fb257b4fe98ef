// Package config provides configuration loading and management.
//
// Precedence, lowest to highest: built-in defaults, YAML config file,
// PERFSCOPE_* environment variables, command-line flags (applied by the CLI
// layer on top of the loaded config).
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Transport names accepted by the server.
const (
	TransportStdio      = "stdio"
	TransportSSE        = "sse"
	TransportStreamable = "streamable-http"
)

// Config is the root configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Collectors CollectorsConfig `yaml:"collectors"`
	Profiler   ProfilerConfig   `yaml:"profiler"`
}

// ServerConfig configures the MCP transport.
type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Transport string `yaml:"transport"`
	// Stateless disables per-session state on the streamable HTTP transport.
	Stateless bool `yaml:"stateless"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// CollectorsConfig configures the telemetry collectors.
type CollectorsConfig struct {
	// TopProcesses is the default number of top consumers reported by the
	// process collector.
	TopProcesses int `yaml:"top_processes"`
}

// ProfilerConfig configures the perf profiler.
type ProfilerConfig struct {
	// PerfPath is the perf binary to invoke (resolved via PATH when bare).
	PerfPath string `yaml:"perf_path"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      22222,
			Transport: TransportStdio,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Collectors: CollectorsConfig{
			TopProcesses: 10,
		},
		Profiler: ProfilerConfig{
			PerfPath: "perf",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment overrides. An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides fields from PERFSCOPE_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("PERFSCOPE_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("PERFSCOPE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("PERFSCOPE_TRANSPORT"); v != "" {
		c.Server.Transport = v
	}
	if v := os.Getenv("PERFSCOPE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PERFSCOPE_PERF_PATH"); v != "" {
		c.Profiler.PerfPath = v
	}
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	switch c.Server.Transport {
	case TransportStdio, TransportSSE, TransportStreamable:
	default:
		return fmt.Errorf("invalid transport %q (expected %s, %s or %s)",
			c.Server.Transport, TransportStdio, TransportSSE, TransportStreamable)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}

	if c.Collectors.TopProcesses < 1 {
		return fmt.Errorf("collectors.top_processes must be positive, got %d", c.Collectors.TopProcesses)
	}

	return nil
}
