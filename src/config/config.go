package config

import (
	"fmt"
	"net/url"
	"os"

	"corona-observer/src/models"

	"gopkg.in/yaml.v3"
)

const (
	EnvDBConnectionString = "CORONA_DB_CONNECTION_STRING"
	EnvLogLevel           = "CORONA_LOG_LEVEL"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// Default returns the configuration used when no file is given. Every optional
// component is off, so the program only fetches and renders.
func Default() *Config {
	return &Config{MConfig: &models.MConfig{
		Name:     "corona-observer",
		LogLevel: "INFO",
		LogFile:  "logs/corona-observer.log",
		Server: models.MServerConfig{
			Host: "127.0.0.1",
			Port: 8089,
		},
		Grpc: models.MGrpcConfig{
			Host: "127.0.0.1",
			Port: 50061,
		},
		Storage: models.MStorageConfig{
			DBType: "sqlite",
			DBPath: "corona.db",
		},
		Network: models.MNetworkConfig{
			RequestTimeout:   30,
			MaxRetries:       2,
			RetryBaseDelayMs: 500,
		},
		DataSource: models.MDataSourceConfig{
			ConfirmedURL: DefaultConfirmedURL,
			DeathsURL:    DefaultDeathsURL,
			RecoveredURL: DefaultRecoveredURL,
			HomeURL:      DefaultHomeURL,
		},
		UI: models.MUIConfig{
			DefaultSort: "confirmed",
		},
	}}
}

// -----------------------------------------------------------------------------

// NewConfig loads configPath over the defaults. An empty path yields the
// defaults alone. Environment overrides are applied before validation.
func NewConfig(configPath string) (*Config, error) {
	config := Default()

	if configPath != "" {
		// 1. Read the YAML file content
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
		}

		// 2. Unmarshal over the defaults so omitted keys keep their value
		if err := yaml.Unmarshal(data, config.MConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
		}
	}

	config.ApplyEnv()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// ApplyEnv lets secrets and the log level come from the environment (or a
// .env file loaded by main).
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDBConnectionString); v != "" {
		c.Storage.DBConnectionString = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration
	if c.Server.Enabled {
		if c.Server.Host == "" {
			return fmt.Errorf("server host cannot be empty")
		}
		if err := validatePort(c.Server.Port); err != nil {
			return fmt.Errorf("server: %w", err)
		}
	}

	// Validate gRPC configuration
	if c.Grpc.Enabled {
		if c.Grpc.Host == "" {
			return fmt.Errorf("grpc host cannot be empty")
		}
		if err := validatePort(c.Grpc.Port); err != nil {
			return fmt.Errorf("grpc: %w", err)
		}
	}

	// Validate Storage configuration
	if c.Storage.Enabled {
		switch c.Storage.DBType {
		case "sqlite":
			if c.Storage.DBPath == "" {
				return fmt.Errorf("database path cannot be empty for sqlite")
			}
		case "postgres":
			if c.Storage.DBConnectionString == "" {
				return fmt.Errorf("database connection string cannot be empty for postgres")
			}
		default:
			return fmt.Errorf("unsupported database type %q", c.Storage.DBType)
		}
	}

	// Validate Network configuration
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	if c.Network.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if c.Network.RetryBaseDelayMs < 0 {
		return fmt.Errorf("retry base delay cannot be negative")
	}

	// Validate DataSource configuration
	sources := map[string]string{
		"confirmed_url": c.DataSource.ConfirmedURL,
		"deaths_url":    c.DataSource.DeathsURL,
		"recovered_url": c.DataSource.RecoveredURL,
	}
	for key, raw := range sources {
		if raw == "" {
			return fmt.Errorf("%s cannot be empty", key)
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%s must be an http(s) URL, got %q", key, raw)
		}
	}
	if c.DataSource.UpdateIntervalSeconds < 0 {
		return fmt.Errorf("update interval cannot be negative")
	}

	// Validate UI configuration
	if _, err := models.ParseMetric(c.UI.DefaultSort); err != nil {
		return fmt.Errorf("ui default_sort: %w", err)
	}

	return nil
}

func validatePort(port int) error {
	if port <= 1024 || port > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 1025 and 65535)", port)
	}
	return nil
}

// -----------------------------------------------------------------------------

// DefaultSort returns the metric the table starts sorted by.
func (c *Config) DefaultSort() models.Metric {
	m, _ := models.ParseMetric(c.UI.DefaultSort)
	return m
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
