package wire

import (
	"encoding/json"
	"testing"

	"pgregory.net/rapid"
)

type testPayload struct {
	Foo string `json:"foo"`
	Bar int    `json:"bar"`
}

func (testPayload) WireType() string { return "test.payload" }

func TestProjectUnprojectRoundTrip(t *testing.T) {
	e := Event{ID: 42, Origin: OriginLayout, Type: "test.payload", Time: 1000, Data: testPayload{Foo: "hi", Bar: 7}}
	arr, err := Project(e)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	var got testPayload
	round, err := Unproject(arr, &got)
	if err != nil {
		t.Fatalf("Unproject: %v", err)
	}
	if round.ID != e.ID || round.Origin != e.Origin || round.Type != e.Type || round.Time != e.Time {
		t.Fatalf("round trip mismatch: got %+v, want %+v", round, e)
	}
	if got != e.Data.(testPayload) {
		t.Fatalf("data round trip mismatch: got %+v, want %+v", got, e.Data)
	}
}

func TestMarshalUnmarshalArrayRoundTrip(t *testing.T) {
	e := Event{ID: 1, Origin: OriginInstrumentation, Type: "test.payload", Time: 5, Data: testPayload{Foo: "x", Bar: 1}}
	arr, err := Project(e)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	data, err := MarshalArray(arr)
	if err != nil {
		t.Fatalf("MarshalArray: %v", err)
	}

	var decoded []json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("wire array did not decode as a JSON array: %v", err)
	}
	if len(decoded) != 5 {
		t.Fatalf("len(decoded) = %d, want 5", len(decoded))
	}

	back, err := UnmarshalArray(data)
	if err != nil {
		t.Fatalf("UnmarshalArray: %v", err)
	}
	var got testPayload
	if _, err := Unproject(back, &got); err != nil {
		t.Fatalf("Unproject after UnmarshalArray: %v", err)
	}
	if got != e.Data.(testPayload) {
		t.Fatalf("data mismatch after full wire round trip: got %+v", got)
	}
}

// TestRoundTripIsBijective generates random events and asserts that
// projecting then unprojecting always recovers the same id/origin/type/time
// tuple, the invariant the wire codec exists to guarantee.
func TestRoundTripIsBijective(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := Event{
			ID:     rapid.Int64Range(0, 1<<40).Draw(rt, "id"),
			Origin: Origin(rapid.IntRange(0, 3).Draw(rt, "origin")),
			Type:   "test.payload",
			Time:   rapid.Int64Range(0, 1<<40).Draw(rt, "time"),
			Data:   testPayload{Foo: rapid.String().Draw(rt, "foo"), Bar: rapid.Int().Draw(rt, "bar")},
		}
		arr, err := Project(e)
		if err != nil {
			rt.Fatalf("Project: %v", err)
		}
		var got testPayload
		round, err := Unproject(arr, &got)
		if err != nil {
			rt.Fatalf("Unproject: %v", err)
		}
		if round.ID != e.ID || round.Origin != e.Origin || round.Time != e.Time {
			rt.Fatalf("round trip mismatch: got %+v, want %+v", round, e)
		}
		if got != e.Data.(testPayload) {
			rt.Fatalf("data mismatch: got %+v, want %+v", got, e.Data)
		}
	})
}
