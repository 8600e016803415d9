package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key apart from a zero value.
type JsonConfig struct {
	Driver            *string `json:"driver"`
	DSN               *string `json:"dsn"`
	LogLevel          *string `json:"log_level"`
	LogFormat         *string `json:"log_format"`
	DefaultLevel      *string `json:"default_level"`
	DefaultDay        *int    `json:"default_day"`
	ReconnectAttempts *uint64 `json:"reconnect_attempts"`
	ReconnectBackoff  *string `json:"reconnect_backoff"`
}

// parseJson overlays cfg with the keys present in the file at path.
// An empty path loads nothing.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	setIf(&cfg.Driver, jc.Driver)
	setIf(&cfg.DSN, jc.DSN)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)
	setIf(&cfg.DefaultLevel, jc.DefaultLevel)
	setIf(&cfg.DefaultDay, jc.DefaultDay)
	setIf(&cfg.ReconnectAttempts, jc.ReconnectAttempts)

	if jc.ReconnectBackoff != nil {
		d, err := time.ParseDuration(*jc.ReconnectBackoff)
		if err != nil {
			return fmt.Errorf("failed to parse reconnect_backoff: %w", err)
		}
		cfg.ReconnectBackoff = d
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
