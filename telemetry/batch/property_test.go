package batch

import (
	"encoding/json"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// TestSequenceNumbersGapFreeUnderRandomFlushPattern generates an arbitrary
// mix of AddEvent/ForceCompression calls (excluding XhrError events, which
// have their own suppression semantics covered separately) and asserts
// invariant 3: every batch the worker emits carries sequence numbers
// 0, 1, 2, …, k with no gaps.
func TestSequenceNumbersGapFreeUnderRandomFlushPattern(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := NewWorker("impression-1", 1<<20, nil, nil)
		defer w.Stop()

		ops := rapid.SliceOfN(rapid.SampledFrom([]string{"add", "add", "add", "flush"}), 1, 60).Draw(rt, "ops")

		var nextID int64 = 1
		var flushedAny bool
		for _, op := range ops {
			switch op {
			case "add":
				w.AddEvent(newEvent(nextID, "test.Payload"))
				nextID++
			case "flush":
				w.ForceCompression()
				flushedAny = true
			}
		}
		w.ForceCompression() // drain whatever partial batch remains

		var seqs []uint64
		for {
			select {
			case b, ok := <-w.Out():
				if !ok {
					goto done
				}
				var payload Payload
				if err := json.Unmarshal(b.RawData, &payload); err != nil {
					rt.Fatalf("unmarshal raw payload: %v", err)
				}
				seqs = append(seqs, payload.Envelope.SequenceNumber)
			case <-time.After(50 * time.Millisecond):
				goto done
			}
		}
	done:
		if !flushedAny && len(seqs) == 0 {
			return
		}
		for i, s := range seqs {
			if s != uint64(i) {
				rt.Fatalf("sequence numbers = %v, want 0..%d with no gaps", seqs, len(seqs)-1)
			}
		}
	})
}
