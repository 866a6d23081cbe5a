// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

package lifecycle

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/deadball-project/deadball-desktop/lib/backend"
	"github.com/deadball-project/deadball-desktop/lib/config"
	"github.com/deadball-project/deadball-desktop/lib/resources"
)

// Event is a host-application lifecycle moment delivered to the
// bridge.
type Event int

const (
	// EventSetup fires once when the host application finishes its
	// own initialization and the backend should start.
	EventSetup Event = iota

	// EventCloseRequested fires when the user asks the main window
	// to close.
	EventCloseRequested

	// EventExitRequested fires when the host application begins its
	// exit sequence.
	EventExitRequested

	// EventExit fires as the final host event before the process
	// ends.
	EventExit
)

// String returns the event name used in logs.
func (e Event) String() string {
	switch e {
	case EventSetup:
		return "setup"
	case EventCloseRequested:
		return "close-requested"
	case EventExitRequested:
		return "exit-requested"
	case EventExit:
		return "exit"
	default:
		return fmt.Sprintf("unknown(%d)", int(e))
	}
}

// Bridge wires host-application lifecycle events to the backend
// supervisor: setup starts the backend, every termination trigger
// funnels into the supervisor's one idempotent Terminate. Whichever
// close/exit event fires first does the real work; the rest are free
// no-ops.
type Bridge struct {
	resolver   *backend.Resolver
	supervisor *backend.Supervisor
	backendCfg config.BackendConfig
	logger     *slog.Logger
}

// New returns a bridge wiring the resolver and supervisor together
// under the given backend configuration.
func New(resolver *backend.Resolver, supervisor *backend.Supervisor, backendCfg config.BackendConfig, logger *slog.Logger) *Bridge {
	return &Bridge{
		resolver:   resolver,
		supervisor: supervisor,
		backendCfg: backendCfg,
		logger:     logger,
	}
}

// HandleEvent dispatches a host lifecycle event. Close, exit-requested
// and final-exit all terminate the backend; calling HandleEvent for
// several of them in sequence (as real hosts do) is safe.
func (b *Bridge) HandleEvent(event Event) {
	b.logger.Debug("lifecycle event", "event", event.String())
	switch event {
	case EventSetup:
		b.setup()
	case EventCloseRequested, EventExitRequested, EventExit:
		b.supervisor.Terminate()
	}
}

// setup resolves the backend location, picks the interpreter, and
// hands the launch specification to the supervisor. SpawnAsync
// returns immediately — setup never blocks the host's event thread on
// backend start latency.
func (b *Bridge) setup() {
	location := b.resolver.Resolve()
	interpreter := backend.LocateInterpreter(location.Dir)

	command := backend.NewRuntimeCommand(location, interpreter,
		b.serverModule(), b.backendCfg.Host, b.backendCfg.Port)

	b.logger.Info("starting backend",
		"dir", location.Dir,
		"tier", string(location.Tier),
		"interpreter", interpreter,
		"address", fmt.Sprintf("%s:%d", b.backendCfg.Host, b.backendCfg.Port))
	b.supervisor.SpawnAsync(command)
}

// serverModule returns the ASGI module to launch: the config value
// when set, otherwise whatever the bundle manifest names (which
// defaults to the conventional app.main:app even without a manifest
// file).
func (b *Bridge) serverModule() string {
	if b.backendCfg.ServerModule != "" {
		return b.backendCfg.ServerModule
	}
	manifest, err := resources.Load(b.resolver.ResourcesDir)
	if err != nil {
		b.logger.Warn("unreadable bundle manifest, using conventional server module", "error", err)
		return resources.DefaultServerModule
	}
	return manifest.ServerModule
}

// SaveFile writes a generated document (a scorecard PDF rendered by
// the UI layer) to a user-chosen path. This is the one boundary
// operation the shell exposes besides lifecycle itself: a direct,
// unsupervised write with no retry or cleanup.
func (b *Bridge) SaveFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
