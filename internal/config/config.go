package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

// Config holds the main configuration for the application.
type Config struct {
	Server  Server         `mapstructure:"server"`
	Retry   retry.Strategy `mapstructure:"retry"`
	Channel Channel        `mapstructure:"channel"`
	Workers Workers        `mapstructure:"workers"`
}

// Server holds HTTP server-related configuration.
type Server struct {
	HTTPPort        string        `mapstructure:"http_port"`        // HTTP port to listen on
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // grace period for in-flight requests
}

// Channel holds the behaviour of the simulated delivery channels.
type Channel struct {
	FailureRate float64       `mapstructure:"failure_rate"` // probability of a failed attempt
	Latency     time.Duration `mapstructure:"latency"`      // duration of a single attempt
}

// Workers holds the dispatch pool configuration.
type Workers struct {
	Count     int `mapstructure:"count"`      // number of worker goroutines
	QueueSize int `mapstructure:"queue_size"` // buffered notifications, 0 means count*10
}

// Addr returns the listen address for the HTTP server.
func (s Server) Addr() string {
	return ":" + s.HTTPPort
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort == "":
		return errors.New("server.http_port is required")
	case c.Retry.Attempts < 0:
		return fmt.Errorf("retry.attempts must not be negative, got %d", c.Retry.Attempts)
	case c.Retry.Delay < 0:
		return fmt.Errorf("retry.delay must not be negative, got %s", c.Retry.Delay)
	case c.Retry.Backoff < 1:
		return fmt.Errorf("retry.backoff must be at least 1, got %v", c.Retry.Backoff)
	case c.Channel.FailureRate < 0 || c.Channel.FailureRate > 1:
		return fmt.Errorf("channel.failure_rate must be within [0, 1], got %v", c.Channel.FailureRate)
	case c.Channel.Latency < 0:
		return fmt.Errorf("channel.latency must not be negative, got %s", c.Channel.Latency)
	case c.Workers.Count < 1:
		return fmt.Errorf("workers.count must be at least 1, got %d", c.Workers.Count)
	}

	return nil
}

var envBindings = map[string]string{
	"server.http_port":        "PORT",
	"server.shutdown_timeout": "SHUTDOWN_TIMEOUT",

	"retry.attempts": "MAX_RETRIES",
	"retry.delay":    "RETRY_BASE_DELAY",
	"retry.backoff":  "RETRY_BACKOFF",

	"channel.failure_rate": "CHANNEL_FAILURE_RATE",
	"channel.latency":      "CHANNEL_LATENCY",

	"workers.count":      "WORKERS_COUNT",
	"workers.queue_size": "WORKERS_QUEUE_SIZE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_port", "3000")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("retry.attempts", 3)
	v.SetDefault("retry.delay", time.Second)
	v.SetDefault("retry.backoff", 2.0)

	v.SetDefault("channel.failure_rate", 0.3)
	v.SetDefault("channel.latency", 500*time.Millisecond)

	v.SetDefault("workers.count", 8)
	v.SetDefault("workers.queue_size", 0)
}

// Load reads the configuration from the YAML file at path, if it exists, and
// from environment variables, which take precedence. An empty path skips the
// file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Must loads the configuration from ./config/config.yaml and the environment.
//
// It panics if the configuration cannot be read or is invalid.
func Must() *Config {
	cfg, err := Load("./config/config.yaml")
	if err != nil {
		zlog.Logger.Panic().Err(err).Msg("failed to load config")
	}

	return cfg
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}

	return errors.Is(err, fs.ErrNotExist)
}
