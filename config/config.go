package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PROXYMAKERS_API_TOKEN
const EnvPrefix = "PROXYMAKERS"

// placeholderToken is the value shipped in the example config
const placeholderToken = "your-api-token-here"

// Load loads the configuration from file, .env and environment. A missing
// config file is only an error when configPath names one explicitly.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".proxymakers"))
		}
		v.AddConfigPath("/etc/proxymakers/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Keys must be known to viper for AutomaticEnv to reach them in Unmarshal
	v.SetDefault("api.token", "")
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.debug", false)

	v.SetDefault("defaults.service", "proxy_ipv4")
	v.SetDefault("defaults.geo", "US")
	v.SetDefault("defaults.period", 30)
	v.SetDefault("defaults.schedule", "none")

	v.SetDefault("output.format", "table")

	v.SetDefault("safety.dry_run", false)
	v.SetDefault("safety.confirm_orders", true)
	v.SetDefault("safety.max_concurrency", 5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", "auto")

	v.SetDefault("update.repository", "s0up4200/proxymakers")
}

// validate checks if the configuration is valid. The token is not checked
// here so that commands which never call the API still work without one.
func validate(cfg *Config) error {
	if cfg.API.Token == placeholderToken {
		return fmt.Errorf("api.token must be set to a valid API token")
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.Logging.Level) {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	if !slices.Contains([]string{"console", "json"}, cfg.Logging.Format) {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if !slices.Contains([]string{"auto", "always", "never"}, cfg.Logging.Color) {
		return fmt.Errorf("invalid logging color: %s (must be 'auto', 'always' or 'never')", cfg.Logging.Color)
	}

	if !slices.Contains([]string{"table", "json", "yaml"}, cfg.Output.Format) {
		return fmt.Errorf("invalid output.format: %s (must be 'table', 'json' or 'yaml')", cfg.Output.Format)
	}

	if cfg.Defaults.Period < 1 || cfg.Defaults.Period > 90 {
		return fmt.Errorf("invalid defaults.period: %d (must be between 1 and 90)", cfg.Defaults.Period)
	}

	if cfg.Safety.MaxConcurrency < 1 {
		return fmt.Errorf("safety.max_concurrency must be at least 1")
	}

	return nil
}
