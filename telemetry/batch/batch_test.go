package batch

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ozanturksever/claritygo/telemetry/instrumentation"
	"github.com/ozanturksever/claritygo/telemetry/wire"
)

type testPayload struct{ V string }

func (testPayload) WireType() string { return "test.Payload" }

func newEvent(id int64, kind string) wire.Event {
	return wire.Event{ID: id, Origin: wire.OriginLayout, Type: kind, Time: id, Data: testPayload{V: kind}}
}

func recvBatch(t *testing.T, w *Worker) CompressedBatch {
	t.Helper()
	select {
	case b := <-w.Out():
		return b
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a compressed batch")
		return CompressedBatch{}
	}
}

func TestForceCompressionFlushesPartialBatch(t *testing.T) {
	w := NewWorker("impression-1", 1<<20, nil, Metadata{"session": "s1"})
	defer w.Stop()

	w.AddEvent(newEvent(1, "test.Payload"))
	w.ForceCompression()

	batch := recvBatch(t, w)
	if batch.EventCount != 1 {
		t.Fatalf("EventCount = %d, want 1", batch.EventCount)
	}

	var payload Payload
	if err := json.Unmarshal(batch.RawData, &payload); err != nil {
		t.Fatalf("unmarshal raw payload: %v", err)
	}
	if payload.Envelope.SequenceNumber != 0 {
		t.Fatalf("SequenceNumber = %d, want 0", payload.Envelope.SequenceNumber)
	}
	if payload.Metadata == nil {
		t.Fatalf("expected metadata on sequence 0")
	}
}

func TestMetadataOnlyOnSequenceZero(t *testing.T) {
	w := NewWorker("impression-1", 1<<20, nil, Metadata{"session": "s1"})
	defer w.Stop()

	w.AddEvent(newEvent(1, "test.Payload"))
	w.ForceCompression()
	recvBatch(t, w)

	w.AddEvent(newEvent(2, "test.Payload"))
	w.ForceCompression()
	second := recvBatch(t, w)

	var payload Payload
	if err := json.Unmarshal(second.RawData, &payload); err != nil {
		t.Fatalf("unmarshal raw payload: %v", err)
	}
	if payload.Envelope.SequenceNumber != 1 {
		t.Fatalf("SequenceNumber = %d, want 1", payload.Envelope.SequenceNumber)
	}
	if payload.Metadata != nil {
		t.Fatalf("expected no metadata on sequence 1, got %+v", payload.Metadata)
	}
}

func TestSizeOverflowFlushesAutomatically(t *testing.T) {
	w := NewWorker("impression-1", 40, nil, nil)
	defer w.Stop()

	for i := int64(1); i <= 5; i++ {
		w.AddEvent(newEvent(i, "test.Payload"))
	}

	batch := recvBatch(t, w)
	if batch.EventCount == 0 {
		t.Fatalf("expected at least one automatic flush from size overflow")
	}
}

func TestLoneXhrErrorBatchIsSuppressed(t *testing.T) {
	w := NewWorker("impression-1", 1<<20, nil, nil)
	defer w.Stop()

	w.AddEvent(newEvent(1, string(instrumentation.KindXhrError)))
	w.ForceCompression()

	// Follow with a normal event and force again: if the suppressed batch
	// had not reset state, this would report EventCount == 2 or arrive with
	// a stale sequence number.
	w.AddEvent(newEvent(2, "test.Payload"))
	w.ForceCompression()

	batch := recvBatch(t, w)
	if batch.EventCount != 1 {
		t.Fatalf("EventCount = %d, want 1 (the XhrError batch should have been dropped)", batch.EventCount)
	}
	var payload Payload
	if err := json.Unmarshal(batch.RawData, &payload); err != nil {
		t.Fatalf("unmarshal raw payload: %v", err)
	}
	if payload.Envelope.SequenceNumber != 0 {
		t.Fatalf("SequenceNumber = %d, want 0 (dropped batch must not consume a sequence number)", payload.Envelope.SequenceNumber)
	}
}

func TestSequenceNumbersAreGapFree(t *testing.T) {
	w := NewWorker("impression-1", 1<<20, nil, nil)
	defer w.Stop()

	var seqs []uint64
	for i := int64(1); i <= 3; i++ {
		w.AddEvent(newEvent(i, "test.Payload"))
		w.ForceCompression()
		batch := recvBatch(t, w)
		var payload Payload
		if err := json.Unmarshal(batch.RawData, &payload); err != nil {
			t.Fatalf("unmarshal raw payload: %v", err)
		}
		seqs = append(seqs, payload.Envelope.SequenceNumber)
	}
	for i, s := range seqs {
		if s != uint64(i) {
			t.Fatalf("sequence numbers = %v, want 0,1,2", seqs)
		}
	}
}
