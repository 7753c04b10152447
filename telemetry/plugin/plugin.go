// Package plugin implements the Lifecycle & Plugin Host: activation order,
// the per-activation config snapshot, reset semantics, and the guarantee
// that teardown runs exactly once per activation.
package plugin

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ozanturksever/claritygo/logutil"
	"github.com/ozanturksever/claritygo/telemetry/config"
	"github.com/ozanturksever/claritygo/telemetry/instrumentation"
	"github.com/ozanturksever/claritygo/telemetry/pipeline"
)

// Capability is the set every plugin satisfies. Activate receives an
// immutable config snapshot; runtime config mutation is not supported. The
// host runs Teardown exactly once per Start/Stop cycle for every plugin
// registered at Stop time, whether or not its Activate returned an error.
type Capability interface {
	Reset() error
	Activate(cfg config.Config) error
	Teardown() error
}

// ErrAlreadyRunning is returned by Start when a session is already active.
// The host reports this as a ClarityDuplicated instrumentation event and
// refuses the second activation rather than running two instances
// concurrently.
var ErrAlreadyRunning = errors.New("plugin: host already running")

type registered struct {
	name   string
	plugin Capability
}

// Host owns the ordered set of registered plugins for one session and
// drives their activation, reset, and teardown in registration order.
type Host struct {
	mu       sync.Mutex
	plugins  []registered
	running  bool
	pipeline *pipeline.Pipeline
}

// NewHost returns a Host that reports duplicate-activation attempts through
// pipe.
func NewHost(pipe *pipeline.Pipeline) *Host {
	return &Host{pipeline: pipe}
}

// Register adds a plugin to the activation order. Registration is only
// valid before Start; plugins registered while running are not activated
// until the next Start.
func (h *Host) Register(name string, c Capability) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.plugins = append(h.plugins, registered{name: name, plugin: c})
}

// Start resets then activates every registered plugin in registration
// order, passing cfg to each. A second Start while already running is
// refused: it reports exactly one ClarityDuplicated instrumentation event
// and returns ErrAlreadyRunning without touching any plugin.
func (h *Host) Start(cfg config.Config) error {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		h.pipeline.Instrument(instrumentation.KindClarityDuplicated, instrumentation.ClarityDuplicated{})
		return ErrAlreadyRunning
	}
	h.running = true
	plugins := append([]registered(nil), h.plugins...)
	h.mu.Unlock()

	if err := h.executeEach(plugins, func(r registered) error { return r.plugin.Reset() }, "reset"); err != nil {
		logutil.Logf("plugin: reset failures during Start: %v", err)
	}
	if err := h.executeEach(plugins, func(r registered) error { return r.plugin.Activate(cfg) }, "activate"); err != nil {
		logutil.Logf("plugin: activate failures during Start: %v", err)
	}
	return nil
}

// Stop tears down every registered plugin exactly once, in registration
// order, and marks the host no longer running so a subsequent Start is
// accepted.
func (h *Host) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	plugins := append([]registered(nil), h.plugins...)
	h.mu.Unlock()

	if err := h.executeEach(plugins, func(r registered) error { return r.plugin.Teardown() }, "teardown"); err != nil {
		logutil.Logf("plugin: teardown failures during Stop: %v", err)
	}
}

// Running reports whether the host is between a successful Start and Stop.
func (h *Host) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

func (h *Host) executeEach(plugins []registered, step func(registered) error, label string) error {
	var errs []string
	for _, r := range plugins {
		if err := step(r); err != nil {
			errs = append(errs, fmt.Sprintf("%s(%s): %v", label, r.name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
