// Package pipeline implements the Event Pipeline: the foreground bus that
// stamps plugin-produced state into wire events and forwards them to the
// Batcher, and the diagnostic channel ("instrument") every other package
// reports anomalies through.
package pipeline

import (
	"sync"
	"time"

	"github.com/ozanturksever/claritygo/bridge"
	"github.com/ozanturksever/claritygo/telemetry/instrumentation"
	"github.com/ozanturksever/claritygo/telemetry/wire"
)

// Sink receives every stamped event the pipeline produces, in emission
// order. In production this is the Batcher's AddEvent entry point.
type Sink func(wire.Event)

// binding records one listener registration so Teardown can unbind it.
type binding struct {
	target  bridge.DOMElement
	typ     string
	handler func(bridge.DOMEvent)
}

// Pipeline assigns ids and timestamps to plugin-produced data, forwards the
// resulting wire.Event values to a Sink, and tracks every listener bound
// through it so Teardown can unbind them en masse. Exactly one Pipeline
// exists per session.Session.
type Pipeline struct {
	mu        sync.Mutex
	nextID    int64
	start     time.Time
	sink      Sink
	bindings  []binding
}

// New returns a Pipeline that forwards stamped events to sink. start fixes
// the zero point for relative timestamps (normally the moment the owning
// session activates).
func New(sink Sink, start time.Time) *Pipeline {
	return &Pipeline{sink: sink, start: start}
}

// AddEvent completes data into a wire.Event: a fresh monotonically
// increasing id, origin, and the current wall-clock time, then forwards it
// to the Sink.
func (p *Pipeline) AddEvent(origin wire.Origin, data wire.Projectable) wire.Event {
	return p.addEventAt(origin, data, nowMillis())
}

// addEventAt is AddEvent with an explicit wall-clock time, split out so
// AddMultipleEvents can stamp every event in a batch with the same instant
// without skewing contiguous id allocation.
func (p *Pipeline) addEventAt(origin wire.Origin, data wire.Projectable, at int64) wire.Event {
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.mu.Unlock()

	e := wire.Event{
		ID:     id,
		Origin: origin,
		Type:   data.WireType(),
		Time:   at,
		Data:   data,
	}
	if p.sink != nil {
		p.sink(e)
	}
	return e
}

// AddMultipleEvents stamps and forwards every item in order, preserving
// list order and allocating contiguous ids.
func (p *Pipeline) AddMultipleEvents(origin wire.Origin, items []wire.Projectable) []wire.Event {
	at := nowMillis()
	out := make([]wire.Event, len(items))
	for i, item := range items {
		out[i] = p.addEventAt(origin, item, at)
	}
	return out
}

// Instrument wraps a diagnostic record in a standard event and forwards it
// with origin = Instrumentation. Every anomaly anywhere in the agent should
// reach the pipeline through this single entry point.
func (p *Pipeline) Instrument(kind instrumentation.Kind, data wire.Projectable) wire.Event {
	return p.AddEvent(wire.OriginInstrumentation, data)
}

// Bind registers handler on target for eventType and records the
// registration so Teardown can unbind it. Callers should always route
// DOM listener registration through Bind rather than calling
// target.AddEventListener directly, so a plugin's listeners are guaranteed
// to be cleaned up on teardown.
func (p *Pipeline) Bind(target bridge.DOMElement, eventType string, handler func(bridge.DOMEvent)) {
	target.AddEventListener(eventType, handler)
	p.mu.Lock()
	p.bindings = append(p.bindings, binding{target: target, typ: eventType, handler: handler})
	p.mu.Unlock()
}

// Teardown unbinds every listener registered through Bind. It is safe to
// call once per activation; calling it again is a no-op since the binding
// list is drained.
func (p *Pipeline) Teardown() {
	p.mu.Lock()
	bindings := p.bindings
	p.bindings = nil
	p.mu.Unlock()

	for _, b := range bindings {
		b.target.RemoveEventListener(b.typ, b.handler)
	}
}

// Timestamp returns high-resolution milliseconds since the pipeline's start
// when relative is true, or wall-clock milliseconds otherwise.
func (p *Pipeline) Timestamp(relative bool) int64 {
	if relative {
		return time.Since(p.start).Milliseconds()
	}
	return nowMillis()
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
