// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/deadball-project/deadball-desktop/lib/archive"
	"github.com/deadball-project/deadball-desktop/lib/resources"
)

// Tier names one candidate rule in the ordered location resolution
// chain. Logged with every resolution decision.
type Tier string

const (
	// TierDevCheckout is the configured development working tree.
	TierDevCheckout Tier = "dev-checkout"
	// TierDataCopy is a previously provisioned per-user copy.
	TierDataCopy Tier = "data-copy"
	// TierExtracted is a copy freshly extracted from the packaged
	// template archive.
	TierExtracted Tier = "extracted"
	// TierExecRelative is a backend directory next to the running
	// executable (unpacked development bundles).
	TierExecRelative Tier = "exec-relative"
	// TierFallback is the fixed last-resort relative path.
	TierFallback Tier = "fallback"
)

// FallbackDir is the last-resort backend location, relative to the
// process working directory. It matches the layout of a source
// checkout with the shell started from a sibling directory, and may
// well not exist — the subsequent spawn attempt surfaces that.
const FallbackDir = "../backend"

// copyDirName is the name of the writable backend copy inside the
// per-user data directory.
const copyDirName = "backend"

// Location is a resolved backend working root plus the tier that
// produced it.
type Location struct {
	Dir  string
	Tier Tier
}

// DefaultDataDir returns the per-user writable application data
// directory ("deadball" under the platform user-config directory).
// Falls back to the empty string when the platform reports no config
// directory, which disables the data-copy and extraction tiers.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "deadball")
}

// Resolver finds the backend working directory. The zero value with a
// logger is usable; empty fields disable their tiers.
type Resolver struct {
	// DevCheckout is the tier-1 development working tree.
	DevCheckout string

	// DataDir is the per-user writable directory holding (or
	// receiving) the backend copy for tiers 2 and 3.
	DataDir string

	// ResourcesDir is the bundled-resources directory searched for
	// the template archive in tier 3.
	ResourcesDir string

	// ExecutableDir overrides the running executable's directory for
	// the tier-4 probe. Empty means the real executable location.
	ExecutableDir string

	Logger *slog.Logger
}

// Resolve returns the backend location. It never fails: when no
// candidate exists the fixed fallback path is returned, and the
// caller discovers the miss when the spawn attempt fails. Each tier
// decision is logged so packaging problems can be diagnosed from the
// diagnostics log alone.
func (r *Resolver) Resolve() Location {
	probes := []struct {
		tier Tier
		run  func() (string, bool)
	}{
		{TierDevCheckout, r.probeDevCheckout},
		{TierDataCopy, r.probeDataCopy},
		{TierExtracted, r.provisionFromTemplate},
		{TierExecRelative, r.probeExecRelative},
	}

	for _, probe := range probes {
		dir, ok := probe.run()
		if !ok {
			r.Logger.Debug("backend location tier missed", "tier", probe.tier)
			continue
		}
		r.Logger.Info("backend location resolved", "tier", probe.tier, "dir", dir)
		return Location{Dir: dir, Tier: probe.tier}
	}

	r.Logger.Warn("no backend candidate exists, using fallback", "dir", FallbackDir)
	return Location{Dir: FallbackDir, Tier: TierFallback}
}

func (r *Resolver) probeDevCheckout() (string, bool) {
	if r.DevCheckout == "" {
		return "", false
	}
	return r.DevCheckout, dirExists(r.DevCheckout)
}

func (r *Resolver) probeDataCopy() (string, bool) {
	if r.DataDir == "" {
		return "", false
	}
	copyDir := filepath.Join(r.DataDir, copyDirName)
	return copyDir, dirExists(copyDir)
}

func (r *Resolver) probeExecRelative() (string, bool) {
	executableDir := r.ExecutableDir
	if executableDir == "" {
		executable, err := os.Executable()
		if err != nil {
			return "", false
		}
		executableDir = filepath.Dir(executable)
	}
	candidate := filepath.Join(executableDir, copyDirName)
	return candidate, dirExists(candidate)
}

// provisionFromTemplate is the one tier with side effects: it creates
// the data directory and extracts the packaged template archive into
// it. Any failure is logged and reported as a miss so resolution
// falls through to the next tier instead of aborting startup.
func (r *Resolver) provisionFromTemplate() (string, bool) {
	if r.ResourcesDir == "" || r.DataDir == "" {
		return "", false
	}

	manifest, err := resources.Load(r.ResourcesDir)
	if err != nil {
		r.Logger.Error("unreadable bundle manifest", "resources", r.ResourcesDir, "error", err)
		return "", false
	}
	archivePath := manifest.ArchivePath(r.ResourcesDir)
	if _, err := os.Stat(archivePath); err != nil {
		return "", false
	}

	copyDir := filepath.Join(r.DataDir, copyDirName)
	r.Logger.Info("provisioning backend from template archive",
		"archive", archivePath, "dir", copyDir)

	if err := os.MkdirAll(r.DataDir, 0755); err != nil {
		r.Logger.Error("creating data directory failed", "dir", r.DataDir, "error", err)
		return "", false
	}
	if err := archive.Extract(archivePath, copyDir); err != nil {
		r.Logger.Error("template extraction failed", "archive", archivePath, "error", err)
		// A partial tree must not satisfy the data-copy probe on the
		// next run.
		os.RemoveAll(copyDir)
		return "", false
	}

	r.recordProvision(archivePath)
	return copyDir, true
}

// recordProvision writes the provision record beside the extracted
// copy. Best effort: the copy is already usable, so a record failure
// is logged and otherwise ignored.
func (r *Resolver) recordProvision(archivePath string) {
	record := ProvisionRecord{
		Archive:   archivePath,
		Timestamp: time.Now().UTC(),
	}
	if digest, err := archive.HashFile(archivePath); err != nil {
		r.Logger.Warn("hashing template archive failed", "archive", archivePath, "error", err)
	} else {
		record.Digest = archive.FormatDigest(digest)
	}

	if err := WriteProvisionRecord(r.DataDir, record); err != nil {
		r.Logger.Warn("writing provision record failed", "error", err)
		return
	}
	r.Logger.Info("backend provisioned", "archive", archivePath, "digest", record.Digest)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
