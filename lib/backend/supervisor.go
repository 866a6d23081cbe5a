// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"log/slog"
	"os/exec"
	"sync"
	"syscall"
)

// Notifier receives the one outbound notification the supervisor
// emits: a spawn failure the UI layer should surface to the user. The
// desktop build forwards it to the webview as a "backend-error"
// event.
type Notifier interface {
	BackendError(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

// BackendError calls f.
func (f NotifierFunc) BackendError(message string) { f(message) }

// Supervisor owns the single shared slot for the current backend
// child process. The slot is empty at startup, populated at most once
// by a successful spawn, and emptied at most once by the first
// effective Terminate. There is no restart: after termination the
// slot stays empty for the life of the shell.
//
// The mutex serializes the spawn goroutine's install against
// shutdown callers racing to take the handle. A Terminate arriving
// before the spawn goroutine installs sees an empty slot and
// no-ops; the late install is tolerated because application exit is
// a one-shot event sequence — nothing spawns after shutdown begins,
// so the next (and final) Terminate still reaps the child.
type Supervisor struct {
	mu      sync.Mutex
	running *exec.Cmd

	logger   *slog.Logger
	notifier Notifier
}

// NewSupervisor returns an empty supervisor. notifier may be nil when
// no UI layer is attached (failures are still logged).
func NewSupervisor(logger *slog.Logger, notifier Notifier) *Supervisor {
	return &Supervisor{logger: logger, notifier: notifier}
}

// SpawnAsync starts the backend on its own goroutine and returns
// immediately. Backend startup can take seconds (dependency imports,
// server bind) and must never block the UI event thread. On failure
// the error is logged and emitted once through the notifier; there is
// no retry, and the shell keeps running without a backend.
func (s *Supervisor) SpawnAsync(command RuntimeCommand) {
	go s.spawn(command)
}

func (s *Supervisor) spawn(command RuntimeCommand) {
	cmd := command.Command()
	if err := cmd.Start(); err != nil {
		s.logger.Error("backend failed to start",
			"interpreter", command.Interpreter,
			"dir", command.Dir,
			"error", err)
		if s.notifier != nil {
			s.notifier.BackendError(err.Error())
		}
		return
	}

	s.mu.Lock()
	s.running = cmd
	s.mu.Unlock()

	s.logger.Info("backend started",
		"pid", cmd.Process.Pid,
		"interpreter", command.Interpreter,
		"dir", command.Dir)
}

// Terminate takes the handle out of the slot, kills the process
// group, and blocks until the OS confirms the child has exited. It is
// idempotent and safe under concurrency: the first caller takes the
// handle, every other caller sees an empty slot and returns without
// blocking. Kill and wait failures are swallowed — the process is
// already dead, and the shell is exiting regardless.
func (s *Supervisor) Terminate() {
	s.mu.Lock()
	cmd := s.running
	s.running = nil
	s.mu.Unlock()

	if cmd == nil {
		return
	}

	pid := cmd.Process.Pid
	// Negative PID: the whole process group, so uvicorn workers go
	// down with the server. Falls back to the single process when the
	// group is already gone.
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		cmd.Process.Kill()
	}
	cmd.Wait()

	s.logger.Info("backend terminated", "pid", pid)
}

// Running reports whether the slot currently holds a live handle.
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running != nil
}
