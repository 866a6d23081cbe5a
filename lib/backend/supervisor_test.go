// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"
)

// sleepCommand returns a RuntimeCommand that runs a long sleep
// instead of a Python server. The supervisor only needs an executable
// it can start and kill.
func sleepCommand(t *testing.T) RuntimeCommand {
	t.Helper()
	return RuntimeCommand{
		Interpreter: "sleep",
		Args:        []string{"60"},
		Dir:         t.TempDir(),
	}
}

type countingNotifier struct {
	count atomic.Int32
	last  atomic.Value
}

func (n *countingNotifier) BackendError(message string) {
	n.count.Add(1)
	n.last.Store(message)
}

func TestTerminateEmptySlot(t *testing.T) {
	supervisor := NewSupervisor(testLogger(), nil)

	done := make(chan struct{})
	go func() {
		supervisor.Terminate()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Terminate on an empty slot blocked")
	}
	if supervisor.Running() {
		t.Error("Running() = true after no-op Terminate")
	}
}

func TestSpawnThenTerminate(t *testing.T) {
	supervisor := NewSupervisor(testLogger(), nil)
	supervisor.spawn(sleepCommand(t))

	if !supervisor.Running() {
		t.Fatal("Running() = false after successful spawn")
	}
	supervisor.mu.Lock()
	pid := supervisor.running.Process.Pid
	supervisor.mu.Unlock()

	supervisor.Terminate()

	if supervisor.Running() {
		t.Error("Running() = true after Terminate")
	}
	// The child was reaped by Terminate's wait, so the PID no longer
	// names a process we own.
	if err := syscall.Kill(pid, 0); err == nil {
		t.Errorf("process %d still alive after Terminate", pid)
	}
}

func TestConcurrentTerminate(t *testing.T) {
	supervisor := NewSupervisor(testLogger(), nil)
	supervisor.spawn(sleepCommand(t))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			supervisor.Terminate()
		}()
	}
	wg.Wait()

	if supervisor.Running() {
		t.Error("Running() = true after concurrent Terminate calls")
	}
}

func TestTerminateBeforeSpawnInstall(t *testing.T) {
	supervisor := NewSupervisor(testLogger(), nil)

	// Shutdown arriving before the spawn goroutine has installed the
	// handle: the slot is empty, Terminate is a no-op, and the late
	// install stays until the final Terminate of the exit sequence.
	supervisor.Terminate()
	supervisor.spawn(sleepCommand(t))
	if !supervisor.Running() {
		t.Fatal("late install after no-op Terminate was lost")
	}
	supervisor.Terminate()
	if supervisor.Running() {
		t.Error("Running() = true after final Terminate")
	}
}

func TestSpawnFailureNotifiesOnce(t *testing.T) {
	notifier := &countingNotifier{}
	supervisor := NewSupervisor(testLogger(), notifier)

	command := RuntimeCommand{
		Interpreter: filepath.Join(t.TempDir(), "missing-python"),
		Args:        []string{"-m", "uvicorn", "app.main:app"},
		Dir:         t.TempDir(),
	}
	supervisor.spawn(command)

	if got := notifier.count.Load(); got != 1 {
		t.Errorf("notification count = %d, want 1", got)
	}
	if supervisor.Running() {
		t.Error("Running() = true after failed spawn")
	}
	if message, _ := notifier.last.Load().(string); message == "" {
		t.Error("notification carried an empty failure description")
	}
}

func TestSpawnAsyncInstallsHandle(t *testing.T) {
	supervisor := NewSupervisor(testLogger(), nil)
	supervisor.SpawnAsync(sleepCommand(t))

	deadline := time.Now().Add(5 * time.Second)
	for !supervisor.Running() {
		if time.Now().After(deadline) {
			t.Fatal("SpawnAsync never installed the handle")
		}
		time.Sleep(10 * time.Millisecond)
	}
	supervisor.Terminate()
}
