// Package xdg resolves the XDG base directories Quill keeps its
// configuration, data, and state under.
package xdg

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "quill"

// baseDir resolves one XDG base directory: the environment override when
// set, the home-relative fallback otherwise.
func baseDir(envVar string, fallback ...string) string {
	if base := os.Getenv(envVar); base != "" {
		return filepath.Join(base, appName)
	}
	parts := append([]string{os.Getenv("HOME")}, fallback...)
	parts = append(parts, appName)
	return filepath.Join(parts...)
}

// ConfigDir is where config.yaml and hooks.lua live.
func ConfigDir() string { return baseDir("XDG_CONFIG_HOME", ".config") }

// DataDir holds long-lived application data.
func DataDir() string { return baseDir("XDG_DATA_HOME", ".local", "share") }

// StateDir holds recreatable state such as logs.
func StateDir() string { return baseDir("XDG_STATE_HOME", ".local", "state") }

// DefaultConfigFile is the config path used when --config is not given.
func DefaultConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultHooksFile is the hooks path used when the config does not name one.
func DefaultHooksFile() string {
	return filepath.Join(ConfigDir(), "hooks.lua")
}

// EnsureDir creates path and any missing parents, private to the user.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
