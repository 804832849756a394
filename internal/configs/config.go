package configs

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/smallwat3r/shhh/internal/api"
	kerrors "github.com/smallwat3r/shhh/internal/errors"
	"github.com/smallwat3r/shhh/internal/requester"
)

const (
	DefaultServerURL      = "http://localhost:5000"
	DefaultTimeoutSeconds = 30
	DefaultDays           = 3
	DefaultTries          = 5
	DefaultMaxLength      = 250
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Secrets SecretsConfig `toml:"secrets"`
}

type ServerConfig struct {
	URL             string `toml:"url"`
	Retries         int    `toml:"retries"`
	BackoffMs       int    `toml:"backoff_ms"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	DetachedRetries bool   `toml:"detached_retries"`
}

type SecretsConfig struct {
	Days           int  `toml:"days"`
	Tries          int  `toml:"tries"`
	MaxLength      int  `toml:"max_length"`
	HaveIBeenPwned bool `toml:"haveibeenpwned"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	policy := requester.DefaultPolicy()
	return &Config{
		Server: ServerConfig{
			URL:            DefaultServerURL,
			Retries:        policy.RetriesRemaining,
			BackoffMs:      int(policy.Backoff / time.Millisecond),
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Secrets: SecretsConfig{
			Days:      DefaultDays,
			Tries:     DefaultTries,
			MaxLength: DefaultMaxLength,
		},
	}
}

// LoadConfig reads the user config file, applies environment overrides and
// validates the result. A missing file yields the defaults.
func LoadConfig() (*Config, error) {
	config := Default()

	if _, err := os.Stat(ConfigPath()); err == nil {
		unknown, err := LoadTOML(ConfigPath(), config)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", kerrors.ErrInvalidConfig, err)
		}
		if len(unknown) > 0 {
			return nil, fmt.Errorf("%w: unknown keys %s", kerrors.ErrInvalidConfig, strings.Join(unknown, ", "))
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig writes the config to the user config file.
func SaveConfig(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if err := SaveTOML(ConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// ConfigExists reports whether the user config file is present.
func ConfigExists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

func (c *Config) applyEnv() error {
	if host := strings.TrimSpace(os.Getenv("SHHH_HOST")); host != "" {
		c.Server.URL = host
	}

	if raw := strings.TrimSpace(os.Getenv("SHHH_RETRIES")); raw != "" {
		retries, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: SHHH_RETRIES must be an integer, got %q", kerrors.ErrInvalidConfig, raw)
		}
		c.Server.Retries = retries
	}

	return nil
}

// Validate checks every field holds a usable value.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: server url %q is not an absolute URL", kerrors.ErrInvalidConfig, c.Server.URL)
	}
	if c.Server.Retries < 0 {
		return fmt.Errorf("%w: retries must not be negative", kerrors.ErrInvalidConfig)
	}
	if c.Server.BackoffMs <= 0 {
		return fmt.Errorf("%w: backoff_ms must be positive", kerrors.ErrInvalidConfig)
	}
	if c.Server.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: timeout_seconds must be positive", kerrors.ErrInvalidConfig)
	}
	if c.Secrets.Days < api.MinDays || c.Secrets.Days > api.MaxDays {
		return fmt.Errorf("%w: days must be between %d and %d", kerrors.ErrInvalidConfig, api.MinDays, api.MaxDays)
	}
	if c.Secrets.Tries < api.MinTries || c.Secrets.Tries > api.MaxTries {
		return fmt.Errorf("%w: tries must be between %d and %d", kerrors.ErrInvalidConfig, api.MinTries, api.MaxTries)
	}
	if c.Secrets.MaxLength <= 0 {
		return fmt.Errorf("%w: max_length must be positive", kerrors.ErrInvalidConfig)
	}
	return nil
}

// Policy returns the retry policy described by the server section.
func (c *Config) Policy() requester.Policy {
	return requester.Policy{
		RetriesRemaining: c.Server.Retries,
		Backoff:          time.Duration(c.Server.BackoffMs) * time.Millisecond,
	}
}

// Timeout returns the time budget for one action.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}
