// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

// deadball-shell is the host process of the Deadball desktop
// application: it supervises the Python backend sidecar the UI talks
// to over loopback HTTP.
//
// On startup it resolves the backend working directory (development
// checkout, provisioned per-user copy, packaged template archive,
// executable-relative bundle, fixed fallback — in that order),
// provisions a writable copy from the template archive on first run,
// picks a Python interpreter, and spawns uvicorn off the event
// thread. On SIGINT/SIGTERM — standing in for the windowing layer's
// close and exit events — it kills and reaps the backend before
// exiting, so no orphaned server outlives the shell.
//
// The binary never restarts a crashed backend and never proxies its
// HTTP traffic; a spawn failure leaves the shell running with the
// failure recorded in the diagnostics log and emitted as a single
// backend-error notification.
package main
