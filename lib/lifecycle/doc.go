// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

// Package lifecycle connects the host application's lifecycle events
// to the backend supervisor.
//
// The host (the windowing layer in the desktop build, the signal
// handler in the headless shell binary) delivers four moments: setup,
// window-close-requested, exit-requested, and final exit. Setup
// triggers backend resolution and spawn; the other three all funnel
// into the supervisor's idempotent Terminate, so the backend is
// reaped on every exit path no matter which event fires first or how
// many of them fire.
package lifecycle
