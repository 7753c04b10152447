// Package batch implements the Batcher: the background context that
// accumulates stamped events, enforces the configured byte budget per
// batch, compresses, and frames the result with a gap-free sequence number
// for the uploader.
package batch

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"time"

	"github.com/ozanturksever/claritygo/telemetry/instrumentation"
	"github.com/ozanturksever/claritygo/telemetry/wire"
)

func nowMillis() int64 { return time.Now().UnixMilli() }

// Compressor turns a serialized payload into opaque bytes for upload. The
// default is GzipCompressor; callers may substitute any byte-to-bytes
// function.
type Compressor func(data []byte) ([]byte, error)

// GzipCompressor compresses data with compress/gzip at the default level.
func GzipCompressor(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Envelope identifies one flushed batch within a session.
type Envelope struct {
	ImpressionID   string `json:"impressionId"`
	SequenceNumber uint64 `json:"sequenceNumber"`
	Time           int64  `json:"time"`
}

// Metadata carries session identity, attached to the wire payload only on
// the batch with SequenceNumber == 0.
type Metadata map[string]any

// Payload is the pre-compression wire form of one flushed batch.
type Payload struct {
	Envelope Envelope    `json:"envelope"`
	Metadata Metadata    `json:"metadata,omitempty"`
	Events   []wire.Array `json:"events"`
}

// CompressedBatch is emitted back to the foreground once a batch flushes.
// RawData is the uncompressed JSON payload CompressedData was produced
// from; nothing in this module retries an upload from it.
type CompressedBatch struct {
	CompressedData []byte
	RawData        []byte
	EventCount     int
}

// Worker owns one session's batch-accumulation state and runs it on a
// dedicated goroutine, communicating with the foreground exclusively
// through channels — the same isolated-execution-context discipline a
// browser Worker would provide, without requiring one: Go's wasm runtime is
// itself single-threaded and cooperative, so a goroutine that only yields
// at channel operations already gives the foreground the same guarantee a
// real Worker message-passing boundary would (compression never runs
// interleaved with foreground code). See DESIGN.md for why this replaces a
// literal browser Worker.
type Worker struct {
	addEventCh chan wire.Event
	forceCh    chan struct{}
	outCh      chan CompressedBatch
	stopCh     chan struct{}

	impressionID string
	batchLimit   int
	compressor   Compressor
	metadata     Metadata

	events         []wire.Event
	bytes          int
	sequence       uint64
	singleXhrError bool
}

// NewWorker constructs and starts a Worker. impressionID identifies the
// session across every batch it emits; metadata is attached once, to the
// sequence-0 batch.
func NewWorker(impressionID string, batchLimit int, compressor Compressor, metadata Metadata) *Worker {
	if compressor == nil {
		compressor = GzipCompressor
	}
	w := &Worker{
		addEventCh:   make(chan wire.Event, 256),
		forceCh:      make(chan struct{}, 1),
		outCh:        make(chan CompressedBatch, 8),
		stopCh:       make(chan struct{}),
		impressionID: impressionID,
		batchLimit:   batchLimit,
		compressor:   compressor,
		metadata:     metadata,
	}
	go w.run()
	return w
}

// Out returns the channel CompressedBatch values are delivered on.
func (w *Worker) Out() <-chan CompressedBatch { return w.outCh }

// AddEvent enqueues event for batching. It never blocks the caller beyond
// the channel's buffer; a full buffer indicates the background context has
// fallen behind.
func (w *Worker) AddEvent(event wire.Event) {
	select {
	case w.addEventCh <- event:
	default:
		// Buffer full: drop rather than block the foreground. A bounded
		// channel this size is not expected to fill under normal operation.
	}
}

// ForceCompression requests an immediate flush of any partial batch.
func (w *Worker) ForceCompression() {
	select {
	case w.forceCh <- struct{}{}:
	default:
	}
}

// Stop terminates the worker goroutine. No further events are accepted
// afterward.
func (w *Worker) Stop() {
	close(w.stopCh)
}

func (w *Worker) run() {
	defer close(w.outCh)
	for {
		select {
		case e := <-w.addEventCh:
			w.onAddEvent(e)
		case <-w.forceCh:
			w.flush()
		case <-w.stopCh:
			return
		}
	}
}

func (w *Worker) onAddEvent(e wire.Event) {
	array, err := wire.Project(e)
	if err != nil {
		return
	}
	encoded, err := json.Marshal(array)
	if err != nil {
		return
	}
	length := len(encoded)

	if w.bytes > 0 && w.bytes+length > w.batchLimit {
		w.flush()
	}

	w.events = append(w.events, e)
	w.bytes += length
	w.singleXhrError = len(w.events) == 1 && e.Type == string(instrumentation.KindXhrError)

	if w.bytes >= w.batchLimit {
		w.flush()
	}
}

// flush serializes, compresses, and emits the current batch, unless it is
// empty or consists solely of a single suppressed XhrError (dropping that
// batch breaks the feedback loop a failing collector would otherwise
// create: an upload failure reporting itself, forever). The accumulated
// state is always reset, sent or not, so a dropped batch cannot wedge
// future accumulation.
func (w *Worker) flush() {
	if w.bytes == 0 {
		return
	}
	defer func() {
		w.events = nil
		w.bytes = 0
		w.singleXhrError = false
	}()
	if w.singleXhrError {
		return
	}

	arrays := make([]wire.Array, len(w.events))
	for i, e := range w.events {
		a, err := wire.Project(e)
		if err != nil {
			continue
		}
		arrays[i] = a
	}

	payload := Payload{
		Envelope: Envelope{
			ImpressionID:   w.impressionID,
			SequenceNumber: w.sequence,
			Time:           nowMillis(),
		},
		Events: arrays,
	}
	if w.sequence == 0 {
		payload.Metadata = w.metadata
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		w.sequence++
		return
	}
	compressed, err := w.compressor(raw)
	if err != nil {
		compressed = nil
	}

	w.outCh <- CompressedBatch{
		CompressedData: compressed,
		RawData:        raw,
		EventCount:     len(w.events),
	}
	w.sequence++
}
