// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"os"
	"path/filepath"
)

// InterpreterEnvVar names the environment variable that overrides
// interpreter location when no project virtual environment exists.
const InterpreterEnvVar = "PYTHON"

// fallbackInterpreter is the bare command name resolved on PATH at
// spawn time when nothing better exists.
const fallbackInterpreter = "python3"

// LocateInterpreter returns the Python executable to launch the
// backend at backendDir with. It never fails; the last resort is the
// bare "python3" resolved through PATH by the spawn itself.
//
// Priority: a virtual environment one level above the backend (the
// layout of a source checkout, where .venv sits beside backend/),
// then one inside it, then the PYTHON environment variable, then the
// PATH fallback. The virtual-environment candidates are existence
// checks; the last two are taken on faith and surface as a spawn
// error when wrong.
func LocateInterpreter(backendDir string) string {
	candidates := []string{
		filepath.Join(backendDir, "..", ".venv", "bin", "python"),
		filepath.Join(backendDir, ".venv", "bin", "python"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if interpreter := os.Getenv(InterpreterEnvVar); interpreter != "" {
		return interpreter
	}
	return fallbackInterpreter
}
