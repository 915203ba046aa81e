package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	WhatsApp   WhatsAppConfig
	Sarvam     SarvamConfig
	Storefront StorefrontConfig
	Mongo      MongoConfig
	Catalog    CatalogConfig
	Cache      CacheConfig
	Debug      DebugConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
}

// WhatsAppConfig holds WhatsApp Cloud API configuration
type WhatsAppConfig struct {
	AccessToken   string `mapstructure:"access_token"`
	PhoneNumberID string `mapstructure:"phone_number_id"`
	VerifyToken   string `mapstructure:"verify_token"`
}

// SarvamConfig holds Sarvam AI configuration
type SarvamConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// StorefrontConfig holds the remote catalog API configuration
type StorefrontConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Enabled bool   `mapstructure:"enabled"`
}

// MongoConfig holds database configuration
type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// CatalogConfig holds catalog file configuration
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// DebugConfig holds per-service debug logging toggles
type DebugConfig struct {
	Intent     bool `mapstructure:"intent"`
	Ranking    bool `mapstructure:"ranking"`
	Storefront bool `mapstructure:"storefront"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/rosechem-bot/")

	v.SetEnvPrefix("ROSECHEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")

	v.SetDefault("whatsapp.verify_token", "")

	v.SetDefault("sarvam.base_url", "https://api.sarvam.ai")
	v.SetDefault("sarvam.model", "sarvam-m")

	v.SetDefault("storefront.base_url", "https://www.rosechemicals.in")
	v.SetDefault("storefront.enabled", true)

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "rosechem_bot")

	v.SetDefault("catalog.path", "data/products.json")

	v.SetDefault("cache.ttl", "30m")

	v.SetDefault("debug.intent", false)
	v.SetDefault("debug.ranking", false)
	v.SetDefault("debug.storefront", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.WhatsApp.VerifyToken == "" {
		return fmt.Errorf("WhatsApp verify token is required (set ROSECHEM_WHATSAPP_VERIFY_TOKEN)")
	}

	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required")
	}

	if config.Storefront.Enabled && config.Storefront.BaseURL == "" {
		return fmt.Errorf("storefront base URL is required when storefront is enabled")
	}

	return nil
}
