// Package layout implements the Layout Tracker: it discovers the initial
// DOM in time-sliced backfill passes, folds incoming mutation batches into
// the Shadow DOM Mirror, and emits the resulting layout.State changes to
// the Event Pipeline.
package layout

import (
	"time"

	"github.com/ozanturksever/claritygo/bridge"
	"github.com/ozanturksever/claritygo/logutil"
	"github.com/ozanturksever/claritygo/telemetry/ids"
	"github.com/ozanturksever/claritygo/telemetry/shadow"
)

// Source identifies what triggered a layout.State emission.
type Source int

const (
	SourceDiscover Source = iota
	SourceMutation
	SourceScroll
	SourceInput
)

// Action mirrors shadow.Action on the wire-facing layout.State type so
// callers outside the shadow package don't need to import it directly.
type Action = shadow.Action

const (
	ActionInsert = shadow.ActionInsert
	ActionUpdate = shadow.ActionUpdate
	ActionMove   = shadow.ActionMove
	ActionRemove = shadow.ActionRemove
)

// State is one layout change emitted by the Tracker.
type State struct {
	Index            ids.Index
	Parent           ids.Index
	Previous         ids.Index
	Next             ids.Index
	Source           Source
	Action           Action
	Tag              string
	Attributes       map[string]string
	Layout           *shadow.LayoutGeometry
	Text             string
	MutationSequence *uint64
}

func (State) WireType() string { return "layout.State" }

// Scheduler abstracts the "zero-delay timer yield point" the backfill walk
// uses to cooperate with the host page's event loop: Schedule must invoke
// fn some time after delay has elapsed, without blocking the caller.
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
}

// Sink receives State values as the Tracker produces them. In production
// this is the Event Pipeline's addEvent entry point.
type Sink func(State)

// MutationObserver watches a container element for DOM mutations and folds
// every one into a Tracker via HandleMutation until Stop is called. The
// js/wasm build backs this with a real MutationObserver; other builds get a
// no-op, since there is no live DOM to observe outside the browser.
type MutationObserver interface {
	Start()
	Stop()
}

// Tracker owns one session's discovery walk, mutation folding, and watch
// binding bookkeeping.
type Tracker struct {
	mirror      *shadow.Mirror
	registry    *ids.Registry
	scheduler   Scheduler
	sink        Sink
	timeToYield time.Duration

	watched      map[ids.Index]bool
	lastScrollAt map[ids.Index][2]float64
	seq          uint64

	onMutation func()
}

// SetMutationHook registers fn to run after every mutation batch this
// Tracker successfully folds (i.e. not one dropped because the mirror was
// degraded). Session wiring uses this to re-check consistency and feed the
// ShadowDomInconsistent / degraded-mode loop described in the Layout
// Tracker's mutation-handling steps.
func (t *Tracker) SetMutationHook(fn func()) {
	t.onMutation = fn
}

// scrollThreshold is the minimum Euclidean distance (in px) a scroll
// position must move from the last emitted one before another scroll State
// is emitted for the same index.
const scrollThreshold = 5

// New returns a Tracker that folds mutations into mirror and emits every
// resulting State to sink.
func New(mirror *shadow.Mirror, registry *ids.Registry, scheduler Scheduler, timeToYield time.Duration, sink Sink) *Tracker {
	return &Tracker{
		mirror:      mirror,
		registry:    registry,
		scheduler:   scheduler,
		sink:         sink,
		timeToYield:  timeToYield,
		watched:      make(map[ids.Index]bool),
		lastScrollAt: make(map[ids.Index][2]float64),
	}
}

// Backfill walks root's subtree in document order, discovering every node
// into the mirror and emitting a State for each, yielding to the scheduler
// whenever the current time-slice's deadline passes. done is called once
// the entire subtree has been discovered.
func (t *Tracker) Backfill(root bridge.DOMElement, done func()) {
	queue := []queueEntry{{el: root, parent: 0}}
	t.backfillStep(queue, done)
}

type queueEntry struct {
	el     bridge.DOMElement
	parent ids.Index
}

func (t *Tracker) backfillStep(queue []queueEntry, done func()) {
	deadline := time.Now().Add(t.timeToYield)
	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]

		change := t.mirror.Discover(entry.el, entry.parent, classify(entry.el), snapshotOf(entry.el))
		t.emit(entry.el, change, SourceDiscover)
		t.bindWatchers(entry.el, change)

		for _, child := range entry.el.Children() {
			queue = append(queue, queueEntry{el: child, parent: change.Index})
		}

		if len(queue) > 0 && time.Now().After(deadline) {
			remaining := queue
			t.scheduler.Schedule(0, func() { t.backfillStep(remaining, done) })
			return
		}
	}
	done()
}

// HandleMutation folds one MutationRecord into the mirror and emits a State
// for every effect, in insert -> move -> update -> remove order within the
// batch: inserted/moved additions and attribute/character-data updates
// emit first, removed subtrees last. If the mirror is degraded, the record
// is dropped entirely; records are folded again only after a
// Mirror.Consistent check finds the mirror and the live DOM in agreement.
func (t *Tracker) HandleMutation(rec shadow.MutationRecord) {
	if t.mirror.Degraded() {
		return
	}

	t.seq++
	seq := t.seq

	parentIdx := t.registry.Lookup(rec.Target)
	if parentIdx == 0 {
		logutil.Logf("layout: mutation target has no assigned index, dropping record")
		return
	}

	for _, added := range rec.AddedElements {
		change := t.mirror.Discover(added, parentIdx, classify(added), snapshotOf(added))
		t.emitWithSeq(added, change, SourceMutation, &seq)
		t.bindWatchers(added, change)
	}

	if rec.AttributeName != "" || rec.CharacterData {
		change := t.mirror.Discover(rec.Target, parentIdx, classify(rec.Target), snapshotOf(rec.Target))
		t.emitWithSeq(rec.Target, change, SourceMutation, &seq)
		t.bindWatchers(rec.Target, change)
	}

	for _, removed := range rec.RemovedElements {
		for _, change := range t.mirror.Remove(removed) {
			t.emitWithSeq(nil, change, SourceMutation, &seq)
		}
	}

	if t.onMutation != nil {
		t.onMutation()
	}
}

// bindWatchers registers a scroll listener on a scrollable node the moment
// a State with Action Insert or Update is emitted for it — and only then.
// No input or change listeners are registered for any node. A
// node that becomes scrollable later, with no further Insert/Update for its
// index, is never watched; this matches the documented behavior rather than
// reactively re-evaluating watchability on every layout pass.
func (t *Tracker) bindWatchers(el bridge.DOMElement, change shadow.Change) {
	if change.Action != shadow.ActionInsert && change.Action != shadow.ActionUpdate {
		return
	}
	if t.watched[change.Index] {
		return
	}
	if change.Node.Snapshot.Layout == nil || !change.Node.Snapshot.Layout.Scrollable {
		return
	}
	t.watched[change.Index] = true
	t.lastScrollAt[change.Index] = [2]float64{change.Node.Snapshot.Layout.ScrollX, change.Node.Snapshot.Layout.ScrollY}
	el.AddEventListener("scroll", func(bridge.DOMEvent) {
		t.handleScroll(el, change.Index, change.Node)
	})
}

// handleScroll re-reads el's current scroll position and emits a State only
// if it has moved at least scrollThreshold px from the last position that
// produced an emission for this index — squared-distance comparison avoids
// a sqrt on every scroll tick.
func (t *Tracker) handleScroll(el bridge.DOMElement, index ids.Index, node shadow.Node) {
	g, ok := el.(bridge.Geometric)
	if !ok {
		return
	}
	x, y, w, h, sx, sy, scrollable := g.BoundingBox()

	last := t.lastScrollAt[index]
	dx, dy := sx-last[0], sy-last[1]
	if dx*dx+dy*dy <= scrollThreshold*scrollThreshold {
		return
	}
	t.lastScrollAt[index] = [2]float64{sx, sy}

	node.Snapshot.Layout = &shadow.LayoutGeometry{X: x, Y: y, Width: w, Height: h, ScrollX: sx, ScrollY: sy, Scrollable: scrollable}
	t.emit(el, shadow.Change{Index: index, Action: shadow.ActionUpdate, Node: node}, SourceScroll)
}

func (t *Tracker) emit(el bridge.DOMElement, change shadow.Change, source Source) {
	t.emitWithSeq(el, change, source, nil)
}

func (t *Tracker) emitWithSeq(el bridge.DOMElement, change shadow.Change, source Source, seq *uint64) {
	if t.sink == nil {
		return
	}
	node := change.Node
	t.sink(State{
		Index:            change.Index,
		Parent:           node.ParentID,
		Action:           change.Action,
		Source:           source,
		Tag:              node.Snapshot.Tag,
		Attributes:       node.Snapshot.Attributes,
		Layout:           node.Snapshot.Layout,
		Text:             node.Snapshot.Text,
		MutationSequence: seq,
	})
}

func classify(el bridge.DOMElement) shadow.Kind {
	switch el.TagName() {
	case "script", "style", "#comment":
		return shadow.KindIgnored
	case "#text":
		return shadow.KindText
	default:
		return shadow.KindElement
	}
}

func snapshotOf(el bridge.DOMElement) shadow.Snapshot {
	if el.TagName() == "#text" {
		return shadow.Snapshot{Text: el.TextContent()}
	}
	attrs := map[string]string{}
	if cls := el.ClassName(); cls != "" {
		attrs["class"] = cls
	}
	if id := el.ID(); id != "" {
		attrs["id"] = id
	}
	snap := shadow.Snapshot{Tag: el.TagName(), Attributes: attrs}
	if g, ok := el.(bridge.Geometric); ok {
		x, y, w, h, sx, sy, scrollable := g.BoundingBox()
		snap.Layout = &shadow.LayoutGeometry{X: x, Y: y, Width: w, Height: h, ScrollX: sx, ScrollY: sy, Scrollable: scrollable}
	}
	return snap
}
