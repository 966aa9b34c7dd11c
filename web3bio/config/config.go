package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/liuran001/Web3Bio-Go/web3bio"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// Hosts of the identity API.
const (
	ProductionEndpoint = "https://api.web3.bio"
	StagingEndpoint    = "https://api-staging.web3.bio"
	MetadataEndpoint   = "https://metadata.web3.bio"
)

// APIKeySources lists the environment variables consulted for the API key,
// highest priority first.
var APIKeySources = []string{
	"WEB3BIO_API_KEY",
	"REACT_APP_WEB3BIO_API_KEY",
	"NEXT_PUBLIC_WEB3BIO_API_KEY",
	"VITE_WEB3BIO_API_KEY",
}

var _ web3bio.Config = (*Config)(nil)

// Config wraps viper and provides typed accessors.
type Config struct {
	v      *viper.Viper
	apiKey string
}

// Settings is the validated, typed view of the configuration.
type Settings struct {
	Endpoint           string        `validate:"required,url"`
	MetadataEndpoint   string        `validate:"required,url"`
	APIKey             string        `validate:"-"`
	Timeout            time.Duration `validate:"gt=0"`
	RetryMax           int           `validate:"gte=0,lte=10"`
	RetryWaitMin       time.Duration `validate:"gte=0"`
	RetryWaitMax       time.Duration `validate:"gtefield=RetryWaitMin"`
	BreakerMaxFailures int           `validate:"gte=1"`
	RateLimitPerSecond float64       `validate:"gte=0"`
	RateLimitBurst     int           `validate:"gte=0"`
	CacheBackend       string        `validate:"oneof=memory sqlite none"`
	CacheTTL           time.Duration `validate:"gte=0"`
	CacheSize          int           `validate:"gte=1"`
	CacheDatabase      string        `validate:"required_if=CacheBackend sqlite"`
	DBMaxOpenConns     int           `validate:"gte=0"`
	DBMaxIdleConns     int           `validate:"gte=0"`
	DBConnMaxLifetime  time.Duration `validate:"gte=0"`
	WorkerPoolSize     int           `validate:"gte=1"`
	LogLevel           string        `validate:"oneof=debug info warn warning error"`
	LogFormat          string        `validate:"oneof=text json"`
	LogSource          bool
}

// Load reads an optional config file (INI, YAML, JSON or TOML) and prepares defaults.
// An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("WEB3BIO")
	v.AutomaticEnv()

	path = strings.TrimSpace(path)
	switch {
	case path == "":
	case strings.EqualFold(filepath.Ext(path), ".ini"):
		if err := loadINI(v, path); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	default:
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	c := &Config{v: v}
	c.apiKey = resolveAPIKey(os.LookupEnv, v.GetString("APIKey"))
	return c, nil
}

// FromViper wraps an existing viper instance, e.g. one with CLI flags bound.
func FromViper(v *viper.Viper) *Config {
	setDefaults(v)
	return &Config{v: v, apiKey: resolveAPIKey(os.LookupEnv, v.GetString("APIKey"))}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Environment", "production")
	v.SetDefault("Endpoint", "")
	v.SetDefault("MetadataEndpoint", MetadataEndpoint)
	v.SetDefault("Timeout", "15s")
	v.SetDefault("RetryMax", 2)
	v.SetDefault("RetryWaitMin", "200ms")
	v.SetDefault("RetryWaitMax", "2s")
	v.SetDefault("BreakerMaxFailures", 5)
	v.SetDefault("RateLimitPerSecond", 0.0)
	v.SetDefault("RateLimitBurst", 1)
	v.SetDefault("CacheBackend", "memory")
	v.SetDefault("CacheTTL", "5m")
	v.SetDefault("CacheSize", 512)
	v.SetDefault("CacheDatabase", "web3bio-cache.db")
	v.SetDefault("DBMaxOpenConns", 1)
	v.SetDefault("DBMaxIdleConns", 1)
	v.SetDefault("DBConnMaxLifetime", "1h")
	v.SetDefault("WorkerPoolSize", 4)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFormat", "text")
	v.SetDefault("LogSource", false)
}

// resolveAPIKey walks the environment sources once, falling back to the configured value.
func resolveAPIKey(lookup func(string) (string, bool), configured string) string {
	for _, name := range APIKeySources {
		if val, ok := lookup(name); ok && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}
	}
	return strings.TrimSpace(configured)
}

// GetString returns a string value.
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt returns an int value.
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 returns a float64 value.
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool returns a bool value.
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetDuration returns a duration value.
func (c *Config) GetDuration(key string) time.Duration {
	return c.v.GetDuration(key)
}

// Viper exposes the underlying instance, e.g. for binding CLI flags.
func (c *Config) Viper() *viper.Viper {
	return c.v
}

// APIKey returns the key resolved at load time, or "" when none was found.
func (c *Config) APIKey() string {
	return c.apiKey
}

// Endpoint returns the API base URL, honoring an explicit override before Environment.
func (c *Config) Endpoint() string {
	if ep := strings.TrimRight(strings.TrimSpace(c.v.GetString("Endpoint")), "/"); ep != "" {
		return ep
	}
	if strings.EqualFold(strings.TrimSpace(c.v.GetString("Environment")), "staging") {
		return StagingEndpoint
	}
	return ProductionEndpoint
}

// Settings builds and validates the typed settings.
func (c *Config) Settings() (Settings, error) {
	s := Settings{
		Endpoint:           c.Endpoint(),
		MetadataEndpoint:   strings.TrimRight(c.v.GetString("MetadataEndpoint"), "/"),
		APIKey:             c.apiKey,
		Timeout:            c.v.GetDuration("Timeout"),
		RetryMax:           c.v.GetInt("RetryMax"),
		RetryWaitMin:       c.v.GetDuration("RetryWaitMin"),
		RetryWaitMax:       c.v.GetDuration("RetryWaitMax"),
		BreakerMaxFailures: c.v.GetInt("BreakerMaxFailures"),
		RateLimitPerSecond: c.v.GetFloat64("RateLimitPerSecond"),
		RateLimitBurst:     c.v.GetInt("RateLimitBurst"),
		CacheBackend:       strings.ToLower(strings.TrimSpace(c.v.GetString("CacheBackend"))),
		CacheTTL:           c.v.GetDuration("CacheTTL"),
		CacheSize:          c.v.GetInt("CacheSize"),
		CacheDatabase:      c.v.GetString("CacheDatabase"),
		DBMaxOpenConns:     c.v.GetInt("DBMaxOpenConns"),
		DBMaxIdleConns:     c.v.GetInt("DBMaxIdleConns"),
		DBConnMaxLifetime:  c.v.GetDuration("DBConnMaxLifetime"),
		WorkerPoolSize:     c.v.GetInt("WorkerPoolSize"),
		LogLevel:           strings.ToLower(strings.TrimSpace(c.v.GetString("LogLevel"))),
		LogFormat:          strings.ToLower(strings.TrimSpace(c.v.GetString("LogFormat"))),
		LogSource:          c.v.GetBool("LogSource"),
	}
	if err := validator.New().Struct(s); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

// loadINI merges the default section at config-file precedence, below flags and env.
func loadINI(v *viper.Viper, path string) error {
	cfg, err := ini.Load(path)
	if err != nil {
		return err
	}

	values := make(map[string]any)
	for _, key := range cfg.Section("").Keys() {
		values[key.Name()] = key.Value()
	}
	return v.MergeConfigMap(values)
}
