package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"

	ConfigPathEnvVar = "CONFIG_PATH"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `koanf:"service_name"`
	HTTPPort    string `koanf:"http_port"`
	PostgresDSN string `koanf:"postgres_dsn"`
	StoreDriver string `koanf:"store_driver"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RequestTimeout    time.Duration `koanf:"request_timeout"`

	SlugMaxAttempts int `koanf:"slug_max_attempts"`
	StreamBuffer    int `koanf:"stream_buffer"`
}

func defaultConfig() Config {
	return Config{
		ServiceName:       "beastypage",
		HTTPPort:          "8080",
		StoreDriver:       StoreDriverPostgres,
		LogLevel:          "info",
		LogFormat:         "json",
		RateLimitRequests: 60,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    15 * time.Second,
		SlugMaxAttempts:   6,
		StreamBuffer:      128,
	}
}

// Load layers defaults, an optional YAML file and then the environment.
func Load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load config defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return Config{}, fmt.Errorf("load config env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.ServiceName = strings.TrimSpace(c.ServiceName)
	c.HTTPPort = strings.TrimSpace(c.HTTPPort)
	c.PostgresDSN = strings.TrimSpace(c.PostgresDSN)
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

func (c Config) Validate() error {
	var errs []error
	switch c.StoreDriver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if c.PostgresDSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN is required when STORE_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("unsupported LOG_FORMAT %q", c.LogFormat))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unsupported LOG_LEVEL %q", c.LogLevel))
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("rate limit requests and window must be positive"))
	}
	if c.SlugMaxAttempts <= 0 {
		errs = append(errs, errors.New("SLUG_MAX_ATTEMPTS must be positive"))
	}
	if c.StreamBuffer <= 0 {
		errs = append(errs, errors.New("STREAM_BUFFER must be positive"))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address for HTTPPort.
func (c Config) Addr() string {
	if c.HTTPPort == "" {
		return ":8080"
	}
	if strings.HasPrefix(c.HTTPPort, ":") {
		return c.HTTPPort
	}
	return ":" + c.HTTPPort
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var envKeys = map[string]string{
	"SERVICE_NAME":        "service_name",
	"HTTP_PORT":           "http_port",
	"POSTGRES_DSN":        "postgres_dsn",
	"STORE_DRIVER":        "store_driver",
	"LOG_LEVEL":           "log_level",
	"LOG_FORMAT":          "log_format",
	"RATE_LIMIT_REQUESTS": "rate_limit_requests",
	"RATE_LIMIT_WINDOW":   "rate_limit_window",
	"REQUEST_TIMEOUT":     "request_timeout",
	"SLUG_MAX_ATTEMPTS":   "slug_max_attempts",
	"STREAM_BUFFER":       "stream_buffer",
}

// envTransform maps known variables to config keys; an empty key makes koanf
// skip the variable.
func envTransform(key string) string {
	return envKeys[key]
}
