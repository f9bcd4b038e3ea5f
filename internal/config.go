package internal

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	API     APIConfig     `mapstructure:"api"`
	Store   StoreConfig   `mapstructure:"store"`
	Polling PollingConfig `mapstructure:"polling"`
	Server  ServerConfig  `mapstructure:"http_server"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

// APIConfig points at the remote CRM backend.
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	PathPrefix string        `mapstructure:"path_prefix"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type StoreConfig struct {
	Driver          string        `mapstructure:"driver"`
	Source          string        `mapstructure:"source"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type PollingConfig struct {
	Orders    time.Duration `mapstructure:"orders_interval"`
	Dashboard time.Duration `mapstructure:"dashboard_interval"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type RedisConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Addr       string        `mapstructure:"addr"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.API.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("api config: %v", err))
	}

	if err := c.Store.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("store config: %v", err))
	}

	if err := c.Polling.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("polling config: %v", err))
	}

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Redis.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("redis config: %v", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *APIConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https, got %q", u.Scheme)
	}
	if c.PathPrefix != "" && !strings.HasPrefix(c.PathPrefix, "/") {
		return errors.New("path_prefix must start with /")
	}
	if c.Timeout < 0 {
		return errors.New("timeout cannot be negative")
	}
	return nil
}

// Endpoint is the base every backend path is appended to.
func (c *APIConfig) Endpoint() string {
	return strings.TrimRight(c.BaseURL, "/") + strings.TrimRight(c.PathPrefix, "/")
}

func (c *StoreConfig) Validate() error {
	switch c.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns && c.MaxOpenConns > 0 {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *PollingConfig) Validate() error {
	if c.Orders <= 0 {
		return errors.New("orders_interval must be positive")
	}
	if c.Dashboard <= 0 {
		return errors.New("dashboard_interval must be positive")
	}
	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.AllowedOrigins != "" {
		for _, origin := range c.Origins() {
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *ServerConfig) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *RedisConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Addr == "" {
		return errors.New("addr is required when redis is enabled")
	}
	if c.SessionTTL <= 0 {
		return errors.New("session_ttl must be positive")
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown level %q", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "", "json", "text":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	return nil
}
