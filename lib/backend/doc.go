// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

// Package backend supervises the sidecar backend server: the Python
// uvicorn process the desktop UI talks to over loopback HTTP.
//
// The package covers three concerns:
//
//   - Resolution ([Resolver]): finding the backend working directory
//     across the deployment layouts a desktop build can land in —
//     development checkout, previously provisioned per-user copy,
//     packaged template archive (extracted on first run), directory
//     next to the executable, and a last-resort relative fallback.
//     The tiers are probed in that fixed order; the first existing
//     candidate wins.
//
//   - Interpreter location ([LocateInterpreter]): choosing the Python
//     executable, preferring project virtual environments over a
//     system interpreter.
//
//   - Supervision ([Supervisor]): spawning the backend off the UI
//     event thread, tracking the single live child handle under
//     concurrent access, and terminating it — idempotently, from any
//     exit path — so no orphaned backend outlives the shell.
//
// The package never health-checks the backend and never restarts a
// crashed one; the only lifecycle events are one spawn at setup and
// one (possibly repeated, no-op after the first) terminate at exit.
package backend
