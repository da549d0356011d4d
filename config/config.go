package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Limits    LimitsConfig
	RateLimit RateLimitConfig
	Parser    ParserConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LimitsConfig holds request size limits
type LimitsConfig struct {
	MaxBodyMB     int `mapstructure:"max_body_mb"`
	MaxTextChars  int `mapstructure:"max_text_chars"`
	MaxBatchItems int `mapstructure:"max_batch_items"`
	MaxBatchChars int `mapstructure:"max_batch_chars"`
}

// RateLimitConfig holds per-client rate limiting configuration
type RateLimitConfig struct {
	PerClientPerMinute int           `mapstructure:"per_client_per_minute"`
	IdleTTL            time.Duration `mapstructure:"idle_ttl"`
}

// ParserConfig holds extraction engine configuration
type ParserConfig struct {
	MinConfidence      float64 `mapstructure:"min_confidence"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/invoice-parser/")

	// Environment variable settings
	v.SetEnvPrefix("INVOICEPARSER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:8081"})

	// Request size limit defaults
	v.SetDefault("limits.max_body_mb", 5)
	v.SetDefault("limits.max_text_chars", 10000)
	v.SetDefault("limits.max_batch_items", 100)
	v.SetDefault("limits.max_batch_chars", 50000)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_client_per_minute", 10)
	v.SetDefault("ratelimit.idle_ttl", "10m")

	// Parser defaults
	v.SetDefault("parser.min_confidence", 0.3)
	v.SetDefault("parser.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Limits.MaxBodyMB <= 0 {
		return fmt.Errorf("limits.max_body_mb must be positive, got: %d", config.Limits.MaxBodyMB)
	}

	if config.Limits.MaxTextChars <= 0 || config.Limits.MaxBatchItems <= 0 || config.Limits.MaxBatchChars <= 0 {
		return fmt.Errorf("request limits must all be positive")
	}

	if config.RateLimit.PerClientPerMinute <= 0 {
		return fmt.Errorf("ratelimit.per_client_per_minute must be positive, got: %d", config.RateLimit.PerClientPerMinute)
	}

	if config.Parser.MinConfidence < 0 || config.Parser.MinConfidence >= 1 {
		return fmt.Errorf("parser.min_confidence must be in [0, 1), got: %g", config.Parser.MinConfidence)
	}

	return nil
}
