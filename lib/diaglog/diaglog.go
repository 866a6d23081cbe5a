// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

package diaglog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// DefaultPath returns the well-known diagnostics log location. The
// log lives in the system temporary directory so it survives neither
// reboots nor cleanups — it exists for "why did the backend not come
// up on this machine" triage, not for archival.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "deadball-shell.log")
}

// Sink is a best-effort append-only log file. Write never returns an
// error: a sink that failed to open, or whose underlying write fails,
// silently drops the data. Diagnostics must never take the shell down
// with them.
type Sink struct {
	mu   sync.Mutex
	file *os.File
}

// OpenSink opens (creating if needed) the append-only log file at
// path. The returned sink is always usable; open failure produces a
// sink that discards writes.
func OpenSink(path string) *Sink {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return &Sink{}
	}
	return &Sink{file: file}
}

// Write appends p to the log file. Always reports success.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil {
		s.file.Write(p)
	}
	return len(p), nil
}

// Close closes the underlying file. Safe on a sink that never opened.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// New returns a structured logger that writes one JSON line per event
// to stderr and, best effort, to the diagnostics log file at path.
// The returned closer flushes the file handle; closing is optional
// (the OS reclaims the handle at exit) but keeps tests tidy.
func New(path string, level slog.Level) (*slog.Logger, io.Closer) {
	sink := OpenSink(path)
	handler := slog.NewJSONHandler(io.MultiWriter(os.Stderr, sink), &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler), sink
}
