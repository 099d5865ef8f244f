// Copyright 2025 Joseph Cumines
//
// Configuration package for the Things MCP server

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// TransportType represents the MCP transport type
type TransportType string

const (
	// TransportStdio uses stdin/stdout for communication
	TransportStdio TransportType = "stdio"
	// TransportSSE uses HTTP/SSE for communication
	TransportSSE TransportType = "sse"
	// TransportHTTP uses the streamable HTTP transport
	TransportHTTP TransportType = "http"
)

// Config holds the configuration for the Things MCP server.
//
// Values are resolved in increasing precedence: defaults, the YAML file named
// by THINGS_MCP_CONFIG (or LoadFile's argument), then environment variables.
// Command line flags are applied on top by the caller.
type Config struct {
	// AuthToken is the default Things auth token for update operations.
	// It is read once and never re-read at call time.
	AuthToken         string        `yaml:"auth_token"`
	AppName           string        `yaml:"app_name"`
	Interpreter       string        `yaml:"osascript_path"`
	Opener            string        `yaml:"open_path"`
	HTTPAddress       string        `yaml:"http_address"`
	// APIKey, when set, is required as a Bearer token on HTTP transports.
	APIKey            string        `yaml:"api_key"`
	CORSOrigin        string        `yaml:"cors_origin"`
	AuditLogFile      string        `yaml:"audit_log_file"`
	OTLPEndpoint      string        `yaml:"otlp_endpoint"`
	Transport         TransportType `yaml:"transport"`
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`
	HTTPReadTimeout   time.Duration `yaml:"http_read_timeout"`
	// RateLimit is the HTTP request rate per second; zero disables limiting.
	RateLimit int `yaml:"rate_limit"`
	// RequestTimeout bounds each tool invocation; zero means no limit.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Debug          bool          `yaml:"debug"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		AppName:           "Things3",
		Interpreter:       "osascript",
		Opener:            "open",
		Transport:         TransportStdio,
		HTTPAddress:       "127.0.0.1:8080",
		CORSOrigin:        "*",
		HeartbeatInterval: 30 * time.Second,
		HTTPReadTimeout:   30 * time.Second,
	}
}

// Load loads the configuration from the optional THINGS_MCP_CONFIG file and
// environment variables.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("THINGS_MCP_CONFIG"))
}

// LoadFile is Load with an explicit config file path; an empty path skips
// the file layer.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	heartbeatInterval, err := getEnvAsDuration("MCP_HEARTBEAT_INTERVAL", cfg.HeartbeatInterval)
	if err != nil {
		return nil, err
	}

	requestTimeout, err := getEnvAsDuration("MCP_REQUEST_TIMEOUT", cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}

	httpReadTimeout, err := getEnvAsDuration("MCP_HTTP_READ_TIMEOUT", cfg.HTTPReadTimeout)
	if err != nil {
		return nil, err
	}

	rateLimit, err := getEnvAsInt("MCP_RATE_LIMIT", cfg.RateLimit)
	if err != nil {
		return nil, err
	}

	cfg.AuthToken = getEnv("THINGS_AUTH_TOKEN", cfg.AuthToken)
	cfg.AppName = getEnv("THINGS_APP_NAME", cfg.AppName)
	cfg.Interpreter = getEnv("THINGS_OSASCRIPT_PATH", cfg.Interpreter)
	cfg.Opener = getEnv("THINGS_OPEN_PATH", cfg.Opener)
	cfg.Debug = getEnvAsBool("THINGS_MCP_DEBUG", cfg.Debug)
	cfg.AuditLogFile = getEnv("MCP_AUDIT_LOG_FILE", cfg.AuditLogFile)
	cfg.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTLPEndpoint)
	// MCP Transport configuration
	cfg.Transport = TransportType(getEnv("MCP_TRANSPORT", string(cfg.Transport)))
	cfg.HTTPAddress = getEnv("MCP_HTTP_ADDRESS", cfg.HTTPAddress)
	cfg.CORSOrigin = getEnv("MCP_CORS_ORIGIN", cfg.CORSOrigin)
	cfg.APIKey = getEnv("MCP_API_KEY", cfg.APIKey)
	cfg.HeartbeatInterval = heartbeatInterval
	cfg.HTTPReadTimeout = httpReadTimeout
	cfg.RateLimit = rateLimit
	cfg.RequestTimeout = requestTimeout

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks invariants that flags may have changed after loading.
func (c *Config) Validate() error {
	if c.AppName == "" {
		return fmt.Errorf("app name cannot be empty")
	}

	switch c.Transport {
	case TransportStdio, TransportSSE, TransportHTTP:
	default:
		return fmt.Errorf("invalid transport type: %s (must be 'stdio', 'sse' or 'http')", c.Transport)
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout cannot be negative: %s", c.RequestTimeout)
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit cannot be negative: %d", c.RateLimit)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q (expected integer)", key, value)
	}
	return result, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q (expected duration, e.g., '30s', '5m')", key, value)
	}
	return d, nil
}
