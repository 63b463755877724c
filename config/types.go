package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Output   OutputConfig   `mapstructure:"output"`
	Safety   SafetyConfig   `mapstructure:"safety"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Update   UpdateConfig   `mapstructure:"update"`
}

// APIConfig holds ProxyMakers API connection details
type APIConfig struct {
	Token   string        `mapstructure:"token"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Debug   bool          `mapstructure:"debug"`
}

// DefaultsConfig holds values used when order flags are omitted
type DefaultsConfig struct {
	Service  string `mapstructure:"service"`
	Geo      string `mapstructure:"geo"`
	Period   int    `mapstructure:"period"`
	Schedule string `mapstructure:"schedule"`
}

// OutputConfig controls how command results are printed
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// SafetyConfig contains safety-related settings
type SafetyConfig struct {
	DryRun         bool `mapstructure:"dry_run"`
	ConfirmOrders  bool `mapstructure:"confirm_orders"`
	MaxConcurrency int  `mapstructure:"max_concurrency"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  string `mapstructure:"color"`
}

// UpdateConfig holds the release source used by the update command
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}
