// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

// Package config loads Quill configuration from the XDG config file with
// command-line flag overrides.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/quillmail/quill/internal/xdg"
)

// Config holds the settings the command core consumes.
type Config struct {
	// HooksFile is the Lua file hooks are resolved from.
	HooksFile string
	// Aliases maps command-word aliases to replacement command-line
	// prefixes.
	Aliases map[string]string
	// LogFormat is "json" or "text".
	LogFormat string
	// MetricsAddr is the observability listen address; empty disables it.
	MetricsAddr string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HooksFile: xdg.DefaultHooksFile(),
		Aliases:   map[string]string{},
		LogFormat: "text",
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.In("config").
			With("log_format", c.LogFormat).
			Errorf("log_format must be 'json' or 'text', got %q", c.LogFormat)
	}
	return nil
}

// Load reads the YAML config file at path (the XDG default when path is
// empty; a missing file yields defaults) and overlays any changed flags.
// Flag names map to config keys with dashes replaced by underscores.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = xdg.DefaultConfigFile()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.In("config").With("path", path).Wrap(err)
		}
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k,
			func(f *pflag.Flag) (string, any) {
				return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
			})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.In("config").Wrap(err)
		}
	}

	// Empty strings mean "not set"; they must not clobber defaults when a
	// flag is present but unchanged.
	cfg := Default()
	if v := k.String("hooks_file"); v != "" {
		cfg.HooksFile = v
	}
	if v := k.String("log_format"); v != "" {
		cfg.LogFormat = v
	}
	if v := k.String("metrics_addr"); v != "" {
		cfg.MetricsAddr = v
	}
	if k.Exists("aliases") {
		cfg.Aliases = k.StringMap("aliases")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
