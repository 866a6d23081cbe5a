// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

package diaglog

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell.log")

	sink := OpenSink(path)
	if _, err := sink.Write([]byte("first line\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A second sink on the same path must append, not truncate.
	sink = OpenSink(path)
	if _, err := sink.Write([]byte("second line\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	sink.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "first line") || !strings.Contains(got, "second line") {
		t.Errorf("log content = %q, want both lines", got)
	}
}

func TestSinkNeverFails(t *testing.T) {
	// A path whose parent does not exist cannot be opened. The sink
	// must still accept writes without error.
	sink := OpenSink(filepath.Join(t.TempDir(), "missing", "shell.log"))
	n, err := sink.Write([]byte("dropped\n"))
	if err != nil {
		t.Fatalf("Write on unopened sink: %v", err)
	}
	if n != len("dropped\n") {
		t.Errorf("Write n = %d, want %d", n, len("dropped\n"))
	}
	if err := sink.Close(); err != nil {
		t.Errorf("Close on unopened sink: %v", err)
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell.log")

	logger, closer := New(path, slog.LevelInfo)
	logger.Info("backend resolved", "tier", "dev-checkout")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "backend resolved") {
		t.Errorf("log content = %q, want the logged event", string(data))
	}
	if !strings.Contains(string(data), "dev-checkout") {
		t.Errorf("log content = %q, want the tier attribute", string(data))
	}
}

func TestNewBelowLevelFiltered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell.log")

	logger, closer := New(path, slog.LevelInfo)
	logger.Debug("probe miss", "tier", "data-copy")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "probe miss") {
		t.Errorf("debug event written at info level: %q", string(data))
	}
}
