// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// RuntimeCommand is the fully materialized backend launch
// specification. Built fresh for every spawn attempt and immutable
// once constructed; Command derives a new exec.Cmd from it each time.
type RuntimeCommand struct {
	// Interpreter is the Python executable path, or a bare command
	// name resolved on PATH at spawn time.
	Interpreter string

	// Args are the interpreter arguments.
	Args []string

	// Dir is the working directory: the resolved backend location.
	Dir string

	// Env holds KEY=VALUE overrides appended to the inherited
	// environment.
	Env []string
}

// NewRuntimeCommand builds the launch specification for the uvicorn
// server: interpreter -m uvicorn <module> --host <host> --port <port>,
// run from the backend directory with PYTHONPATH pointing at it so
// the application package imports regardless of how the interpreter
// was installed.
func NewRuntimeCommand(location Location, interpreter, serverModule, host string, port int) RuntimeCommand {
	return RuntimeCommand{
		Interpreter: interpreter,
		Args: []string{
			"-m", "uvicorn", serverModule,
			"--host", host,
			"--port", strconv.Itoa(port),
		},
		Dir: location.Dir,
		Env: []string{"PYTHONPATH=" + location.Dir},
	}
}

// Command materializes the specification as an exec.Cmd. The backend
// inherits the shell's stdout and stderr (its logs surface in the
// shell's streams while developing) and runs in its own process group
// so termination reaps uvicorn together with any workers it forked.
func (c RuntimeCommand) Command() *exec.Cmd {
	cmd := exec.Command(c.Interpreter, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), c.Env...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	return cmd
}
