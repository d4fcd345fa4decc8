package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// Config is the local CLI/SDK configuration: where the EdgeOS API lives
// and which tenant and popup every call is scoped to. It is read from
// config.yaml in the config directory and overridable field by field
// with EDGEOS_* environment variables.
type Config struct {
	APIURL   string    `yaml:"api_url" mapstructure:"api_url"`
	Token    string    `yaml:"token" mapstructure:"token"`
	TenantID string    `yaml:"tenant_id" mapstructure:"tenant_id"`
	PopupID  int64     `yaml:"popup_id" mapstructure:"popup_id"`
	Log      LogConfig `yaml:"log" mapstructure:"log"`
	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // "debug", "info", "warn", "error"
	Format string `yaml:"format" mapstructure:"format"` // "json" or "text"
}

// Dir returns the config directory: EDGEOS_CONFIG_DIR when set,
// otherwise ~/.edgeos.
func Dir() string {
	if dir := os.Getenv("EDGEOS_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".edgeos"
	}
	return filepath.Join(home, ".edgeos")
}

// Path returns the config file path inside Dir.
func Path() string {
	return filepath.Join(Dir(), configFileName)
}

// Load reads the configuration. A missing config file is not an error;
// environment variables alone are enough to operate.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("api_url", "https://api.edgeos.city")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("timeout_seconds", 30)

	v.BindEnv("api_url", "EDGEOS_API_URL")
	v.BindEnv("token", "EDGEOS_TOKEN")
	v.BindEnv("tenant_id", "EDGEOS_TENANT_ID")
	v.BindEnv("popup_id", "EDGEOS_POPUP_ID")
	v.BindEnv("log.level", "EDGEOS_LOG_LEVEL")
	v.BindEnv("log.format", "EDGEOS_LOG_FORMAT")

	v.SetConfigFile(Path())
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// Save writes the configuration back to the config file. Used by
// `tenants use` to persist the selected tenant context. The token stays
// in the file with owner-only permissions.
func (c *Config) Save() error {
	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(Path(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
