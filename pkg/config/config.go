package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

var errInvalidPort = errors.New("config: invalid PORT number")

// Config holds the application configuration.
type Config struct {
	ServerPort string `mapstructure:"PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	// GRPCAddress is the backend engine endpoint.
	GRPCAddress string `mapstructure:"OPENPERF_GRPC_ADDRESS"`
	// DescriptorSetPath optionally points at a binary FileDescriptorSet
	// describing the backend. Empty means the built-in schema.
	DescriptorSetPath string `mapstructure:"OPENPERF_DESCRIPTOR_SET"`

	ShutdownTimeoutSeconds int `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
}

// Load reads configuration from the environment and an optional .env file.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// A missing .env file is fine, production runs on plain environment variables.
	_ = v.ReadInConfig()

	v.SetDefault("PORT", "3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("OPENPERF_GRPC_ADDRESS", "localhost:50051")
	v.SetDefault("OPENPERF_DESCRIPTOR_SET", "")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, cfg.validate()
}

func (c *Config) validate() error {
	port, err := strconv.Atoi(c.ServerPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.ServerPort)
	}
	return nil
}

// ShutdownTimeout is the grace period given to in-flight requests on exit.
func (c *Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
