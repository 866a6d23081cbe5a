// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the Deadball
// desktop shell.
//
// Configuration is loaded from a single file specified by:
//   - DEADBALL_SHELL_CONFIG environment variable, or
//   - --config flag passed to the shell binary
//
// Unlike a server deployment, a desktop shell must start with no
// config file at all — end users never write one. When neither source
// names a file, Load returns the built-in defaults, which match the
// packaged application layout.
//
// The config file may contain environment-specific sections
// (development, production) that override base values when the
// environment matches.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvVar is the environment variable naming the config file.
const EnvVar = "DEADBALL_SHELL_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for working against a local backend checkout.
	Development Environment = "development"
	// Production is for packaged desktop builds.
	Production Environment = "production"
)

// Config is the master configuration for the shell.
type Config struct {
	// Environment identifies the deployment type (development, production).
	Environment Environment `yaml:"environment"`

	// Backend configures how the sidecar server is launched.
	Backend BackendConfig `yaml:"backend"`

	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// Per-environment overrides, applied after the base config is loaded.
	Development *Overrides `yaml:"development,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides contains fields that can be overridden per environment.
type Overrides struct {
	Backend *BackendConfig `yaml:"backend,omitempty"`
	Paths   *PathsConfig   `yaml:"paths,omitempty"`
}

// BackendConfig configures the sidecar backend server process.
type BackendConfig struct {
	// Host is the loopback address the backend binds. The shell never
	// exposes the backend beyond the local machine.
	Host string `yaml:"host"`

	// Port is the backend's HTTP port. The UI layer hardcodes the
	// same value in its API base URL.
	Port int `yaml:"port"`

	// ServerModule is the ASGI application reference passed to
	// uvicorn (python -m uvicorn <ServerModule> ...). Empty means
	// "whatever the bundle manifest names" (app.main:app by
	// convention, see lib/resources).
	ServerModule string `yaml:"server_module"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// DevCheckout is the backend working tree used when developing
	// without any packaging step. Probed first during resolution;
	// empty disables the tier.
	DevCheckout string `yaml:"dev_checkout"`

	// DataDir is the per-user writable directory that receives the
	// extracted backend copy on first run. Empty means the platform
	// user-config directory plus "deadball".
	DataDir string `yaml:"data_dir"`

	// Resources is the application's bundled-resources directory
	// holding the packaged backend template archive. Empty means
	// "resources" next to the running executable.
	Resources string `yaml:"resources"`

	// LogFile is the diagnostics log location. Empty means the
	// well-known default (see lib/diaglog).
	LogFile string `yaml:"log_file"`
}

// Default returns the built-in configuration used when no config file
// is present: the backend on 127.0.0.1:8000, server module taken from
// the bundle manifest.
func Default() *Config {
	return &Config{
		Environment: Production,
		Backend: BackendConfig{
			Host: "127.0.0.1",
			Port: 8000,
		},
	}
}

// Load reads the configuration. flagPath is the --config flag value;
// when empty, the DEADBALL_SHELL_CONFIG environment variable is
// consulted. When neither names a file, the defaults are returned.
// Environment override sections are applied before returning.
func Load(flagPath string) (*Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	switch config.Environment {
	case "", Development, Production:
	default:
		return nil, fmt.Errorf("config %s: unknown environment %q", path, config.Environment)
	}

	config.applyOverrides()
	return config, nil
}

// applyOverrides merges the section matching the active environment
// over the base values. Only sections present in the override replace
// their base counterpart; absent sections leave the base untouched.
func (c *Config) applyOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}
	if overrides.Backend != nil {
		c.Backend = *overrides.Backend
	}
	if overrides.Paths != nil {
		c.Paths = *overrides.Paths
	}
}
