// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

// Package config layers server configuration from defaults, an optional
// YAML file, and command-line flags, in that order of precedence.
package config

import (
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Config is the fully resolved server configuration.
type Config struct {
	// Host and Port form the telnet listen address.
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// MetricsAddr is the observability listen address; empty disables it.
	MetricsAddr string `koanf:"metrics-addr"`

	LogFormat string `koanf:"log-format"`
	LogLevel  string `koanf:"log-level"`

	// EchoIO logs every line in and out at debug level.
	EchoIO bool `koanf:"echo-io"`
	// ShowTracebacks appends internal error detail to the generic failure
	// message players see. Development only.
	ShowTracebacks bool `koanf:"show-tracebacks"`
	// Init seeds a fresh world into an empty store before serving.
	Init bool `koanf:"init"`

	// MOTD is printed after login; empty prints nothing.
	MOTD string `koanf:"motd"`
	// OnLogin lines run in order against a session right after login.
	OnLogin []string `koanf:"on-login"`

	// BootstrapID names the character that is always a wizard.
	BootstrapID int64 `koanf:"bootstrap-id"`
	// BootstrapPassword is the initial password given to the bootstrap
	// account when the world is seeded.
	BootstrapPassword string `koanf:"bootstrap-password"`

	// Texts overrides user-visible message templates by key.
	Texts map[string]string `koanf:"texts"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Host:              "::",
		Port:              7072,
		LogFormat:         "json",
		LogLevel:          "info",
		OnLogin:           []string{"look"},
		BootstrapID:       1,
		BootstrapPassword: "potrzebie",
	}
}

// Load resolves the configuration. path names an optional YAML file; flags,
// when non-nil, override both defaults and file values for flags the user
// actually set.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	def := Defaults()
	if err := k.Load(confmap.Provider(map[string]any{
		"host":               def.Host,
		"port":               def.Port,
		"metrics-addr":       def.MetricsAddr,
		"log-format":         def.LogFormat,
		"log-level":          def.LogLevel,
		"on-login":           def.OnLogin,
		"bootstrap-id":       def.BootstrapID,
		"bootstrap-password": def.BootstrapPassword,
	}, "."), nil); err != nil {
		return Config{}, oops.Code("CONFIG_DEFAULTS_FAILED").Wrap(err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code("CONFIG_FILE_FAILED").With("path", path).Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}
	return cfg, nil
}
