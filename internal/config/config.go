package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ahrism10M501/voca/internal/models"
	"github.com/ahrism10M501/voca/internal/repositories/vocab"
	"github.com/spf13/pflag"
)

// Config holds runtime settings for the voca CLI.
type Config struct {
	Driver    string
	DSN       string
	LogLevel  string
	LogFormat string

	// DefaultLevel and DefaultDay apply to imports that do not name them.
	DefaultLevel string
	DefaultDay   int

	ReconnectAttempts uint64
	ReconnectBackoff  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Driver = "sqlite"
	c.DSN = "vocab.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.DefaultLevel = "<unknown>"
	c.DefaultDay = 1
	c.ReconnectAttempts = 5
	c.ReconnectBackoff = 200 * time.Millisecond
}

// Validate checks values that cannot be repaired later.
func (c *Config) Validate(levels models.Levels) error {
	var errs []error
	if _, err := vocab.DialectFor(c.Driver); err != nil {
		errs = append(errs, err)
	}
	if c.DSN == "" {
		errs = append(errs, errors.New("dsn must not be empty"))
	}
	if _, err := levels.Parse(c.DefaultLevel); err != nil {
		errs = append(errs, err)
	}
	if c.ReconnectAttempts == 0 {
		errs = append(errs, errors.New("reconnect attempts must be at least 1"))
	}
	if c.ReconnectBackoff <= 0 {
		errs = append(errs, fmt.Errorf("reconnect backoff must be positive, got %s", c.ReconnectBackoff))
	}
	return errors.Join(errs...)
}

// Load builds a Config from defaults, then the JSON file named by f (if
// any), then the flags set on fs. Later sources take precedence.
func Load(fs *pflag.FlagSet, f *Flags, levels models.Levels) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, f.ConfigPath); err != nil {
		return nil, err
	}
	f.apply(fs, cfg)
	if err := cfg.Validate(levels); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
