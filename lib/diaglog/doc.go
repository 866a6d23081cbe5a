// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

// Package diaglog provides the shell's diagnostics sink: an
// append-only plain-text log at a fixed well-known location, one line
// per event, no rotation.
//
// The desktop shell has no terminal attached when launched from a
// window manager, so stderr alone is not enough to diagnose packaging
// problems on end-user machines ("which resolution tier produced the
// backend directory", "why did extraction fail"). Every event is
// therefore written both to stderr (visible when developing) and to
// the log file (recoverable from a user report).
//
// The sink is strictly best-effort. A log location that cannot be
// opened or written must never prevent the shell from starting the
// backend — logging failures are swallowed, not surfaced.
package diaglog
