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
	LLM       LLMConfig
	Scanner   ScannerConfig
	History   HistoryConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LLMConfig holds reasoning-service configuration. An empty APIKey is
// valid: the judge then runs in fallback mode instead of failing startup.
type LLMConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ScannerConfig holds competitor-scanner configuration
type ScannerConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Sites         []string      `mapstructure:"sites"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxCandidates int           `mapstructure:"max_candidates"`
	// SimilarityFloor overrides every storefront's own floor when > 0.
	SimilarityFloor int `mapstructure:"similarity_floor"`
}

// HistoryConfig holds price-history lookup configuration
type HistoryConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/askziva/")

	// Environment variable settings
	v.SetEnvPrefix("ASKZIVA")
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
	v.SetDefault("server.allowed_origins", []string{"*"})

	// LLM defaults. The empty api_key default registers the key so the
	// env var binds; an unset key just puts the judge in fallback mode.
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.timeout", "30s")

	// Scanner defaults
	v.SetDefault("scanner.enabled", true)
	v.SetDefault("scanner.sites", []string{"flipkart", "croma"})
	v.SetDefault("scanner.timeout", "35s")
	v.SetDefault("scanner.max_candidates", 4)
	v.SetDefault("scanner.similarity_floor", 0)

	// History defaults
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.base_url", "https://pricehistoryapp.com")
	v.SetDefault("history.timeout", "35s")

	// Cache defaults
	v.SetDefault("cache.ttl", "6h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
}

// knownSites are the storefront scanner variants this build ships with
var knownSites = map[string]bool{
	"flipkart": true,
	"croma":    true,
}

// validate validates the configuration. An unset LLM API key is allowed:
// the judge degrades to its fallback policy instead of blocking startup.
func validate(config *Config) error {
	for _, site := range config.Scanner.Sites {
		if !knownSites[site] {
			return fmt.Errorf("unknown scanner site: %s", site)
		}
	}

	if config.Scanner.Timeout <= 0 {
		return fmt.Errorf("scanner timeout must be positive, got: %s", config.Scanner.Timeout)
	}

	if config.History.Timeout <= 0 {
		return fmt.Errorf("history timeout must be positive, got: %s", config.History.Timeout)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
