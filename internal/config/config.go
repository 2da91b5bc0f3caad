package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for the investa binary
type Config struct {
	Environment string        `yaml:"environment" toml:"environment"`
	Server      ServerConfig  `yaml:"server" toml:"server"`
	Logging     LoggingConfig `yaml:"logging" toml:"logging"`
	NAV         NAVConfig     `yaml:"nav" toml:"nav"`
	Cache       CacheConfig   `yaml:"cache" toml:"cache"`
	SMTP        SMTPConfig    `yaml:"smtp" toml:"smtp"`
	Contact     ContactConfig `yaml:"contact" toml:"contact"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `yaml:"host" toml:"host"`
	Port         int    `yaml:"port" toml:"port"`
	ReadTimeout  string `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout" toml:"write_timeout"`
	IdleTimeout  string `yaml:"idle_timeout" toml:"idle_timeout"`
}

// Addr returns host:port for net/http
func (c ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

func (c ServerConfig) GetReadTimeout() time.Duration  { return parseDuration(c.ReadTimeout, 15*time.Second) }
func (c ServerConfig) GetWriteTimeout() time.Duration { return parseDuration(c.WriteTimeout, 30*time.Second) }
func (c ServerConfig) GetIdleTimeout() time.Duration  { return parseDuration(c.IdleTimeout, 60*time.Second) }

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // console or json
}

// NAVConfig configures the mutual fund NAV API client and the returns tracker
type NAVConfig struct {
	BaseURL         string `yaml:"base_url" toml:"base_url"`
	RateLimit       int    `yaml:"rate_limit" toml:"rate_limit"`
	Timeout         string `yaml:"timeout" toml:"timeout"`
	RefreshInterval string `yaml:"refresh_interval" toml:"refresh_interval"`
	CacheTTL        string `yaml:"cache_ttl" toml:"cache_ttl"`
}

func (c NAVConfig) GetTimeout() time.Duration { return parseDuration(c.Timeout, 15*time.Second) }

func (c NAVConfig) GetRefreshInterval() time.Duration {
	return parseDuration(c.RefreshInterval, time.Minute)
}

func (c NAVConfig) GetCacheTTL() time.Duration { return parseDuration(c.CacheTTL, 30*time.Minute) }

// CacheConfig selects the NAV history cache backend
type CacheConfig struct {
	Backend string      `yaml:"backend" toml:"backend"` // memory or redis
	Redis   RedisConfig `yaml:"redis" toml:"redis"`
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Addr     string `yaml:"addr" toml:"addr"`
	Password string `yaml:"password" toml:"password"`
	DB       int    `yaml:"db" toml:"db"`
}

// SMTPConfig holds the mailbox used to relay contact enquiries
type SMTPConfig struct {
	Host     string `yaml:"host" toml:"host"`
	Port     int    `yaml:"port" toml:"port"`
	Email    string `yaml:"email" toml:"email"`
	Password string `yaml:"password" toml:"password"`
}

// Enabled reports whether credentials are present
func (c SMTPConfig) Enabled() bool {
	return c.Email != "" && c.Password != ""
}

// ContactConfig throttles the contact form endpoint
type ContactConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" toml:"requests_per_minute"`
}

const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  "15s",
			WriteTimeout: "30s",
			IdleTimeout:  "60s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		NAV: NAVConfig{
			BaseURL:         "https://api.mfapi.in/mf",
			RateLimit:       5,
			Timeout:         "15s",
			RefreshInterval: "60s",
			CacheTTL:        "30m",
		},
		Cache: CacheConfig{
			Backend: CacheMemory,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
		Contact: ContactConfig{
			RequestsPerMinute: 5,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := unmarshal(path, data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func unmarshal(path string, data []byte, config *Config) error {
	if isTOML(path) {
		return toml.Unmarshal(data, config)
	}
	return yaml.Unmarshal(data, config)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func applyEnvOverrides(config *Config) {
	if env := os.Getenv("INVESTA_ENV"); env != "" {
		config.Environment = env
	}
	if host := os.Getenv("INVESTA_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("INVESTA_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if level := os.Getenv("INVESTA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if addr := os.Getenv("INVESTA_REDIS_ADDR"); addr != "" {
		config.Cache.Backend = CacheRedis
		config.Cache.Redis.Addr = addr
	}

	// Same variable names the contact form relay has always read.
	if v := os.Getenv("SMTP_EMAIL"); v != "" {
		config.SMTP.Email = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		config.SMTP.Password = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		config.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			config.SMTP.Port = p
		}
	}
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json", "":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be 'console' or 'json'"))
	}
	if c.NAV.BaseURL == "" {
		errs = append(errs, errors.New("nav.base_url is required"))
	}
	if c.NAV.RateLimit < 0 {
		errs = append(errs, errors.New("nav.rate_limit cannot be negative"))
	}
	for field, value := range map[string]string{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
		"server.idle_timeout":  c.Server.IdleTimeout,
		"nav.timeout":          c.NAV.Timeout,
		"nav.refresh_interval": c.NAV.RefreshInterval,
		"nav.cache_ttl":        c.NAV.CacheTTL,
	} {
		if value == "" {
			continue
		}
		if d, err := time.ParseDuration(value); err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be a positive duration, got %q", field, value))
		}
	}
	switch c.Cache.Backend {
	case CacheMemory, "":
	case CacheRedis:
		if c.Cache.Redis.Addr == "" {
			errs = append(errs, errors.New("cache.redis.addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.backend must be 'memory' or 'redis', got %q", c.Cache.Backend))
	}
	if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("smtp.port must be between 1 and 65535, got %d", c.SMTP.Port))
	}
	if c.Contact.RequestsPerMinute < 0 {
		errs = append(errs, errors.New("contact.requests_per_minute cannot be negative"))
	}

	return errors.Join(errs...)
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// SaveToFile writes the configuration as YAML, or TOML for .toml paths.
func (c *Config) SaveToFile(filename string) error {
	var (
		data []byte
		err  error
	)
	if isTOML(filename) {
		data, err = toml.Marshal(c)
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
