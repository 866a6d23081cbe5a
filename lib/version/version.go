// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

// Package version exposes build-time version information for the
// shell binary. The variables are injected at build time via ldflags:
//
//	go build -ldflags "-X .../lib/version.Version=1.2.0 \
//	    -X .../lib/version.GitCommit=$(git rev-parse --short HEAD) \
//	    -X .../lib/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Development builds without ldflags report "dev (unknown, unknown)".
package version

import (
	"fmt"
	"runtime"
)

// Build-time variables, overridden via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	GitDirty  = "false"
	BuildTime = "unknown"
)

// Info returns a one-line human-readable version string.
func Info() string {
	dirty := ""
	if GitDirty == "true" {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, GitCommit, dirty, BuildTime)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}
