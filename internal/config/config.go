package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr string `mapstructure:"http_addr"`

	// Env selects dev/prod behavior (dev seeds a starter door, user and
	// controller key on startup).
	Env    string `mapstructure:"env"`
	DBPath string `mapstructure:"db_path"`

	// AdminToken guards the key-lifecycle and log-read endpoints. Empty
	// disables the admin surface entirely.
	AdminToken string `mapstructure:"admin_token"`

	AllowedOrigins []string `mapstructure:"allowed_origins"`

	LogLevel string `mapstructure:"log_level"`

	ShutdownTimeoutSec int `mapstructure:"shutdown_timeout_sec"`
}

// Load reads an optional config file (./config.yaml or /etc/janus/) and the
// JANUS_* environment, with env taking precedence.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/janus/")
	v.AddConfigPath(".")

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("env", "dev")
	v.SetDefault("db_path", "./data/janus.db")
	v.SetDefault("admin_token", "")
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("log_level", "info")
	v.SetDefault("shutdown_timeout_sec", 5)

	v.SetEnvPrefix("JANUS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No config file; defaults and env vars apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env != "dev" && cfg.Env != "prod" {
		// fail-soft: treat unknown as dev
		cfg.Env = "dev"
	}

	return &cfg, nil
}
