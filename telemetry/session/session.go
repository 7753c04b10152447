// Package session wires the five components into one explicit session
// object per page activation, replacing the teacher's global-singleton bus
// pattern: every dependency is constructed and owned here rather than
// reached through a package-level sync.Once.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/ozanturksever/claritygo/bridge"
	"github.com/ozanturksever/claritygo/telemetry/batch"
	"github.com/ozanturksever/claritygo/telemetry/config"
	"github.com/ozanturksever/claritygo/telemetry/ids"
	"github.com/ozanturksever/claritygo/telemetry/instrumentation"
	"github.com/ozanturksever/claritygo/telemetry/layout"
	"github.com/ozanturksever/claritygo/telemetry/pipeline"
	"github.com/ozanturksever/claritygo/telemetry/plugin"
	"github.com/ozanturksever/claritygo/telemetry/shadow"
	"github.com/ozanturksever/claritygo/telemetry/wire"
)

// Session owns every per-activation dependency: the node registry, the
// Shadow DOM Mirror, the Layout Tracker, the Event Pipeline, the Batcher,
// and the Plugin Host. Exactly one Session exists per page activation; a
// page wanting two independent telemetry instances constructs two.
type Session struct {
	ImpressionID string
	Config       config.Config

	Registry *ids.Registry
	Mirror   *shadow.Mirror
	Tracker  *layout.Tracker
	Pipeline *pipeline.Pipeline
	Batcher  *batch.Worker
	Host     *plugin.Host

	uploader Uploader
	root     bridge.DOMElement
	observer layout.MutationObserver
}

// Uploader delivers a compressed batch to the collector. Matches
// telemetry/upload.Uploader's signature structurally (not imported
// directly, to avoid a dependency cycle); any telemetry/upload
// implementation satisfies this interface as-is.
type Uploader interface {
	Upload(ctx context.Context, data []byte) error
}

// New constructs a Session with every component wired together: the
// Tracker's sink feeds the Pipeline, the Pipeline's sink feeds the Batcher,
// and the Batcher's output channel is drained into uploader by a goroutine
// that reports failed uploads as XhrError instrumentation events.
func New(impressionID string, cfg config.Config, scheduler layout.Scheduler, uploader Uploader) *Session {
	registry := ids.NewRegistry()
	mirror := shadow.NewMirror(registry)

	start := time.Now()
	worker := batch.NewWorker(impressionID, cfg.BatchLimit, batch.GzipCompressor, nil)
	pipe := pipeline.New(func(e wire.Event) { worker.AddEvent(e) }, start)

	tracker := layout.New(mirror, registry, scheduler, cfg.TimeToYield, func(s layout.State) {
		pipe.AddEvent(wire.OriginLayout, s)
	})

	s := &Session{
		ImpressionID: impressionID,
		Config:       cfg,
		Registry:     registry,
		Mirror:       mirror,
		Tracker:      tracker,
		Pipeline:     pipe,
		Batcher:      worker,
		uploader:     uploader,
	}
	if cfg.ValidateConsistency {
		tracker.SetMutationHook(func() { s.checkConsistencyAfterMutation() })
	}
	s.Host = plugin.NewHost(pipe)
	go s.drainUploads()
	return s
}

// checkConsistencyAfterMutation re-checks the mirror against the live DOM
// once a mutation batch has been folded, matching the Layout Tracker's
// "re-check consistency; if still consistent, translate" step. It is a
// no-op before Start has recorded a root element.
func (s *Session) checkConsistencyAfterMutation() {
	if s.root == nil {
		return
	}
	s.CheckConsistency(s.root, "mutation")
}

func (s *Session) drainUploads() {
	for compressed := range s.Batcher.Out() {
		if s.uploader == nil {
			continue
		}
		if err := s.uploader.Upload(context.Background(), compressed.CompressedData); err != nil {
			s.Pipeline.Instrument(instrumentation.KindXhrError, instrumentation.XhrError{
				Status: 0,
				URL:    s.Config.UploadURL,
			})
		}
	}
}

// Start activates the session: backfills the DOM rooted at root, registers
// a mutation observer over the same root so subsequent changes keep
// flowing through the Layout Tracker, then starts every registered plugin.
// Activation is refused if this Session is already running (see
// plugin.Host.Start).
func (s *Session) Start(root bridge.DOMElement) error {
	if s.Host.Running() {
		return fmt.Errorf("session: start: %w", s.Host.Start(s.Config))
	}

	done := make(chan struct{})
	s.Tracker.Backfill(root, func() { close(done) })
	<-done

	s.root = root
	s.observer = layout.NewObserver(s.Tracker, root)
	s.observer.Start()

	if err := s.Host.Start(s.Config); err != nil {
		return fmt.Errorf("session: start: %w", err)
	}
	return nil
}

// Stop disconnects the mutation observer, tears down every plugin, and
// stops the Batcher. The Session cannot be restarted after Stop; construct
// a new one for a fresh activation.
func (s *Session) Stop() {
	if s.observer != nil {
		s.observer.Stop()
	}
	s.Host.Stop()
	s.Pipeline.Teardown()
	s.Batcher.Stop()
}

// CheckConsistency runs the Shadow DOM Mirror's consistency check against
// root and, on divergence, reports a ShadowDomInconsistent instrumentation
// event. When Config.ValidateConsistency is set, Start wires this to run
// automatically after every mutation batch the Tracker folds (via
// layout.Tracker.SetMutationHook); callers may also poll it directly on a
// timer. After degradedModeThreshold consecutive failures the mirror enters
// degraded mode and HandleMutation drops further mutation records until a
// later check finds the mirror and the live DOM in agreement again.
func (s *Session) CheckConsistency(root bridge.DOMElement, routine string) {
	if !s.Config.ValidateConsistency {
		return
	}
	ok, div := s.Mirror.Consistent(root, time.Now().UnixMilli())
	if ok {
		return
	}
	s.Pipeline.Instrument(instrumentation.KindShadowDomInconsistent, instrumentation.ShadowDomInconsistent{
		Live:           indexTreeToInt64(div.Live),
		Shadow:         indexTreeToInt64(div.Shadow),
		LastConsistent: div.LastConsistent,
		FirstEvent:     div.FirstEvent,
		Routine:        routine,
	})
}

// indexTreeToInt64 converts an adjacency map keyed and valued by ids.Index
// into the plain int64 form instrumentation.ShadowDomInconsistent's wire
// shape uses, since a named integer type doesn't implicitly convert across
// map element types.
func indexTreeToInt64(tree map[ids.Index][]ids.Index) map[int64][]int64 {
	out := make(map[int64][]int64, len(tree))
	for k, v := range tree {
		children := make([]int64, len(v))
		for i, c := range v {
			children[i] = int64(c)
		}
		out[int64(k)] = children
	}
	return out
}
