// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

// Package resources reads the bundled-resources directory of a
// packaged desktop build.
//
// The packaging step places the backend template archive in the
// resources directory together with a manifest describing it. The
// manifest is hand-authored alongside the packaging scripts, so it is
// JSONC (JSON extended with // line comments, /* block comments */,
// and trailing commas) rather than strict JSON.
//
// A resources directory without a manifest is still usable: the
// conventional archive name and server module are assumed. This keeps
// development bundles (a bare directory with just the archive dropped
// in) working without any authoring step.
package resources

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

const (
	// ManifestName is the manifest file name inside the resources
	// directory.
	ManifestName = "manifest.jsonc"

	// DefaultArchiveName is the conventional backend template archive
	// name used when no manifest is present.
	DefaultArchiveName = "backend.tar.zst"

	// DefaultServerModule is the ASGI application reference of the
	// packaged backend.
	DefaultServerModule = "app.main:app"
)

// Manifest describes the packaged backend bundle.
type Manifest struct {
	// Archive is the template archive file name, relative to the
	// resources directory.
	Archive string `json:"archive"`

	// ServerModule is the ASGI application reference passed to
	// uvicorn. Overrides the shell config when set.
	ServerModule string `json:"server_module"`
}

// Default returns the manifest assumed for a resources directory
// without a manifest file.
func Default() *Manifest {
	return &Manifest{
		Archive:      DefaultArchiveName,
		ServerModule: DefaultServerModule,
	}
}

// Load reads and parses the manifest from the resources directory.
// A missing manifest file yields the defaults; a malformed one is an
// error (a packaging step that wrote a broken manifest should not be
// silently papered over). Fields left empty in the manifest keep
// their default values.
func Load(resourcesDir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(resourcesDir, ManifestName))
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	manifest := Default()
	if err := json.Unmarshal(jsonc.ToJSON(data), manifest); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ManifestName, err)
	}
	if manifest.Archive == "" {
		manifest.Archive = DefaultArchiveName
	}
	if manifest.ServerModule == "" {
		manifest.ServerModule = DefaultServerModule
	}
	return manifest, nil
}

// ArchivePath returns the absolute path of the template archive
// described by the manifest.
func (m *Manifest) ArchivePath(resourcesDir string) string {
	return filepath.Join(resourcesDir, m.Archive)
}
