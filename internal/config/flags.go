package config

import "github.com/spf13/pflag"

// Flags receives the global command-line flags. Values only reach the
// Config for flags the user actually set.
type Flags struct {
	ConfigPath        string
	Driver            string
	DSN               string
	LogLevel          string
	LogFormat         string
	ReconnectAttempts uint64
}

// RegisterFlags declares the global flags on fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	var d Config
	d.LoadDefaults()

	f := &Flags{}
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "path to JSON config file")
	fs.StringVar(&f.Driver, "driver", d.Driver, "store driver (sqlite, postgres)")
	fs.StringVar(&f.DSN, "dsn", d.DSN, "database file or connection URL")
	fs.StringVar(&f.LogLevel, "log-level", d.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFormat, "log-format", d.LogFormat, "log format (text, json)")
	fs.Uint64Var(&f.ReconnectAttempts, "reconnect", d.ReconnectAttempts, "connection attempts before giving up")
	return f
}

func (f *Flags) apply(fs *pflag.FlagSet, cfg *Config) {
	if fs.Changed("driver") {
		cfg.Driver = f.Driver
	}
	if fs.Changed("dsn") {
		cfg.DSN = f.DSN
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.LogLevel
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = f.LogFormat
	}
	if fs.Changed("reconnect") {
		cfg.ReconnectAttempts = f.ReconnectAttempts
	}
}
