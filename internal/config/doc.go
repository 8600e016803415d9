// Package config loads runtime configuration for the voca CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / --config (see parseJson).
//  3. Command-line flags the user actually set (see (*Flags).apply).
//
// Supported flags
//
//	--driver string        store driver: sqlite or postgres
//	--dsn string           database file (sqlite) or connection URL (postgres)
//	--log-level string     debug, info, warn or error
//	--log-format string    text or json
//	--reconnect int        connection attempts before giving up
//
// # JSON schema
//
// Every key is optional; missing keys keep their default. Durations are Go
// duration strings:
//
//	{
//	  "driver": "sqlite",
//	  "dsn": "vocab.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "default_level": "intermediate",
//	  "default_day": 1,
//	  "reconnect_attempts": 5,
//	  "reconnect_backoff": "200ms"
//	}
package config
