// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shell.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestLoadNoFileReturnsDefaults(t *testing.T) {
	t.Setenv(EnvVar, "")

	config, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.Backend.Host != "127.0.0.1" {
		t.Errorf("Backend.Host = %q, want %q", config.Backend.Host, "127.0.0.1")
	}
	if config.Backend.Port != 8000 {
		t.Errorf("Backend.Port = %d, want 8000", config.Backend.Port)
	}
	if config.Backend.ServerModule != "" {
		t.Errorf("Backend.ServerModule = %q, want empty (manifest decides)", config.Backend.ServerModule)
	}
}

func TestLoadFromFlag(t *testing.T) {
	path := writeConfig(t, `
environment: production
backend:
  host: 127.0.0.1
  port: 8123
  server_module: app.main:app
paths:
  dev_checkout: /home/dev/deadball/backend
`)

	config, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.Backend.Port != 8123 {
		t.Errorf("Backend.Port = %d, want 8123", config.Backend.Port)
	}
	if config.Paths.DevCheckout != "/home/dev/deadball/backend" {
		t.Errorf("Paths.DevCheckout = %q, want the configured checkout", config.Paths.DevCheckout)
	}
}

func TestLoadFromEnvironmentVariable(t *testing.T) {
	path := writeConfig(t, "backend:\n  port: 9000\n")
	t.Setenv(EnvVar, path)

	config, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.Backend.Port != 9000 {
		t.Errorf("Backend.Port = %d, want 9000", config.Backend.Port)
	}
}

func TestFlagTakesPrecedenceOverEnvironment(t *testing.T) {
	flagPath := writeConfig(t, "backend:\n  port: 9001\n")
	t.Setenv(EnvVar, filepath.Join(t.TempDir(), "nonexistent.yaml"))

	config, err := Load(flagPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.Backend.Port != 9001 {
		t.Errorf("Backend.Port = %d, want 9001", config.Backend.Port)
	}
}

func TestEnvironmentOverridesApplied(t *testing.T) {
	path := writeConfig(t, `
environment: development
backend:
  host: 127.0.0.1
  port: 8000
  server_module: app.main:app
paths:
  log_file: /tmp/base.log
development:
  paths:
    dev_checkout: /home/dev/deadball/backend
production:
  backend:
    host: 127.0.0.1
    port: 8100
    server_module: app.main:app
`)

	config, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// The development paths section replaces the base paths wholesale.
	if config.Paths.DevCheckout != "/home/dev/deadball/backend" {
		t.Errorf("Paths.DevCheckout = %q, want the development override", config.Paths.DevCheckout)
	}
	if config.Paths.LogFile != "" {
		t.Errorf("Paths.LogFile = %q, want empty (section replaced)", config.Paths.LogFile)
	}
	// The production section must not apply in development.
	if config.Backend.Port != 8000 {
		t.Errorf("Backend.Port = %d, want 8000 (production override must not apply)", config.Backend.Port)
	}
}

func TestUnknownEnvironmentRejected(t *testing.T) {
	path := writeConfig(t, "environment: staging\n")

	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted unknown environment, want error")
	}
}

func TestMissingFileIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load accepted a nonexistent explicit config path, want error")
	}
}
