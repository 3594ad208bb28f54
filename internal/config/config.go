// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port          int           `yaml:"port"`
	CookieSecret  string        `yaml:"cookie_secret"`
	CookieDomain  string        `yaml:"cookie_domain"`
	SecureCookie  bool          `yaml:"secure_cookie"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	AllowedOrigin string        `yaml:"allowed_origin"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type TopUpConfig struct {
	PollInterval      time.Duration `yaml:"poll_interval"`
	SuccessCloseDelay time.Duration `yaml:"success_close_delay"`
	OptionsCacheTTL   time.Duration `yaml:"options_cache_ttl"`
}

type CatalogConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Backend BackendConfig `yaml:"backend"`
	Redis   RedisConfig   `yaml:"redis"`
	TopUp   TopUpConfig   `yaml:"topup"`
	Catalog CatalogConfig `yaml:"catalog"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Runtime.Dev = dev

	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.SessionTTL <= 0 {
		cfg.Server.SessionTTL = 7 * 24 * time.Hour
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Backend.Timeout <= 0 {
		cfg.Backend.Timeout = 30 * time.Second
	}
	if cfg.TopUp.PollInterval <= 0 {
		cfg.TopUp.PollInterval = 5 * time.Second
	}
	if cfg.TopUp.SuccessCloseDelay <= 0 {
		cfg.TopUp.SuccessCloseDelay = 2 * time.Second
	}
	if cfg.TopUp.OptionsCacheTTL <= 0 {
		cfg.TopUp.OptionsCacheTTL = time.Minute
	}
	if cfg.Catalog.CacheTTL <= 0 {
		cfg.Catalog.CacheTTL = 5 * time.Minute
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend.base_url is required")
	}
	if cfg.Server.CookieSecret == "" && !dev {
		return nil, fmt.Errorf("server.cookie_secret is required outside dev mode")
	}
	return &cfg, nil
}
