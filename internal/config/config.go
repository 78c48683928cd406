// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads the appstore settings. Values are layered: built-in
// defaults, the TOML file, a .env file, APPSTORE_* environment variables and
// finally command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// Defaults mirrored by the storefront.
const (
	DefaultAPIURL    = "http://localhost:1337"
	DefaultTimeout   = 10 * time.Second
	DefaultCacheTTL  = 5 * time.Minute
	DefaultPageSize  = 6
	DefaultRateLimit = 10.0
	DefaultRateBurst = 5
	DefaultLogLevel  = "info"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every setting the CLI and TUI need. Durations are kept as
// strings such as "10s" and parsed by Validate.
type Config struct {
	APIURL    string  `toml:"api_url"    json:"api_url"    env:"APPSTORE_API_URL"`
	APIToken  string  `toml:"api_token"  json:"api_token"  env:"APPSTORE_API_TOKEN"`
	Timeout   string  `toml:"timeout"    json:"timeout"    env:"APPSTORE_TIMEOUT"`
	Language  string  `toml:"language"   json:"language"   env:"APPSTORE_LANGUAGE"`
	PageSize  int     `toml:"page_size"  json:"page_size"  env:"APPSTORE_PAGE_SIZE"`
	CacheTTL  string  `toml:"cache_ttl"  json:"cache_ttl"  env:"APPSTORE_CACHE_TTL"`
	RateLimit float64 `toml:"rate_limit" json:"rate_limit" env:"APPSTORE_RATE_LIMIT"`
	RateBurst int     `toml:"rate_burst" json:"rate_burst" env:"APPSTORE_RATE_BURST"`
	LogLevel  string  `toml:"log_level"  json:"log_level"  env:"APPSTORE_LOG_LEVEL"`
	LogFile   string  `toml:"log_file"   json:"log_file"   env:"APPSTORE_LOG_FILE"`

	timeout  time.Duration
	cacheTTL time.Duration
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		APIURL:    DefaultAPIURL,
		Timeout:   DefaultTimeout.String(),
		PageSize:  DefaultPageSize,
		CacheTTL:  DefaultCacheTTL.String(),
		RateLimit: DefaultRateLimit,
		RateBurst: DefaultRateBurst,
		LogLevel:  DefaultLogLevel,
		timeout:   DefaultTimeout,
		cacheTTL:  DefaultCacheTTL,
	}
}

// LoadOptions selects the files Load reads.
type LoadOptions struct {
	// Path is the TOML file. A missing file is an error only when Explicit is set.
	Path     string
	Explicit bool
	// EnvFile is an optional dotenv file; missing files are ignored.
	EnvFile string
}

// Load builds the configuration from defaults, the TOML file, the dotenv
// file and the environment, then validates it.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Defaults()

	if opts.Path == "" {
		opts.Path = DefaultPath()
	}

	if err := cfg.mergeFile(opts.Path, opts.Explicit); err != nil {
		return nil, err
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	}

	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("%w: environment: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string, explicit bool) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}

		return fmt.Errorf("%w: failed to read config file: %w", ErrInvalidConfig, err)
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: failed to parse config file %s: %w", ErrInvalidConfig, path, err)
	}

	return nil
}

// Validate checks every field and caches the parsed durations.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.APIURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("%w: api_url %q must be an absolute http(s) URL", ErrInvalidConfig, c.APIURL)
	}

	c.APIURL = strings.TrimRight(c.APIURL, "/")

	if c.timeout, err = parsePositiveDuration("timeout", c.Timeout); err != nil {
		return err
	}

	if c.cacheTTL, err = parseDuration("cache_ttl", c.CacheTTL); err != nil {
		return err
	}

	if c.PageSize < 1 {
		return fmt.Errorf("%w: page_size must be at least 1, got %d", ErrInvalidConfig, c.PageSize)
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("%w: rate_limit must not be negative", ErrInvalidConfig)
	}

	if c.RateBurst < 1 {
		return fmt.Errorf("%w: rate_burst must be at least 1, got %d", ErrInvalidConfig, c.RateBurst)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q: %w", ErrInvalidConfig, c.LogLevel, err)
	}

	c.LogFile = ExpandPath(c.LogFile)

	return nil
}

func parseDuration(field, value string) (time.Duration, error) {
	duration, err := time.ParseDuration(value)
	if err != nil || duration < 0 {
		return 0, fmt.Errorf("%w: %s %q is not a valid duration", ErrInvalidConfig, field, value)
	}

	return duration, nil
}

func parsePositiveDuration(field, value string) (time.Duration, error) {
	duration, err := parseDuration(field, value)
	if err != nil {
		return 0, err
	}

	if duration == 0 {
		return 0, fmt.Errorf("%w: %s must be greater than zero", ErrInvalidConfig, field)
	}

	return duration, nil
}

// TimeoutDuration returns the validated request timeout.
func (c *Config) TimeoutDuration() time.Duration {
	if c.timeout == 0 {
		return DefaultTimeout
	}

	return c.timeout
}

// CacheTTLDuration returns the validated cache lifetime. Zero disables caching.
func (c *Config) CacheTTLDuration() time.Duration {
	return c.cacheTTL
}

// Overrides carries command-line values. Empty fields leave the config as is.
type Overrides struct {
	APIURL   string
	Language string
	Timeout  time.Duration
	PageSize int
	LogLevel string
}

// Apply layers flag values over the loaded configuration and revalidates.
func (c *Config) Apply(o Overrides) error {
	if o.APIURL != "" {
		c.APIURL = o.APIURL
	}

	if o.Language != "" {
		c.Language = o.Language
	}

	if o.Timeout > 0 {
		c.Timeout = o.Timeout.String()
	}

	if o.PageSize > 0 {
		c.PageSize = o.PageSize
	}

	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}

	return c.Validate()
}

// PageSizeOrDefault returns PageSize when it is one of allowed, else the first allowed size.
func (c *Config) PageSizeOrDefault(allowed []int) int {
	if slices.Contains(allowed, c.PageSize) || len(allowed) == 0 {
		return c.PageSize
	}

	return allowed[0]
}

// Redacted returns a copy that is safe to print, with the API token masked.
func (c *Config) Redacted() Config {
	redacted := *c
	if redacted.APIToken != "" {
		redacted.APIToken = "********"
	}

	return redacted
}

// Marshal renders the redacted configuration as TOML, for `config show`.
func (c *Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c.Redacted())
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	return data, nil
}
