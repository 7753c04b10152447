// Package wire defines the on-wire event form and the bijective
// array-projection codec that turns a structured event into the compact
// positional array the collector expects, and back.
package wire

import (
	"encoding/json"
	"fmt"
)

// Projectable is implemented by every event payload that can be framed onto
// the wire. The payload value itself is JSON-marshaled as the array's final
// element.
type Projectable interface {
	// WireType is the stable string discriminator stored as the event's
	// "type" array element.
	WireType() string
}

// Event is the structured, in-memory form of one telemetry event before it
// is projected onto the wire.
type Event struct {
	ID     int64
	Origin Origin
	Type   string
	Time   int64
	Data   Projectable
}

// Origin enumerates where an event came from, mirrored 1:1 onto the wire as
// an integer so the collector need not parse a string per event.
type Origin int

const (
	OriginLayout Origin = iota
	OriginInteraction
	OriginInstrumentation
	OriginPerformance
)

// Array is the bijective positional projection of an Event:
// [id, origin, type, time, data]. Field order is fixed by the wire
// contract; changing it is a breaking protocol change.
type Array [5]json.RawMessage

// Project converts e into its array form. The Data field is marshaled
// through encoding/json, so Projectable implementations need no special
// handling beyond being JSON-serializable.
func Project(e Event) (Array, error) {
	var a Array
	var err error
	if a[0], err = json.Marshal(e.ID); err != nil {
		return a, fmt.Errorf("wire: marshal id: %w", err)
	}
	if a[1], err = json.Marshal(e.Origin); err != nil {
		return a, fmt.Errorf("wire: marshal origin: %w", err)
	}
	if a[2], err = json.Marshal(e.Type); err != nil {
		return a, fmt.Errorf("wire: marshal type: %w", err)
	}
	if a[3], err = json.Marshal(e.Time); err != nil {
		return a, fmt.Errorf("wire: marshal time: %w", err)
	}
	if a[4], err = json.Marshal(e.Data); err != nil {
		return a, fmt.Errorf("wire: marshal data: %w", err)
	}
	return a, nil
}

// Unproject reverses Project, decoding data into the value pointed to by
// dataPtr (normally a pointer to the concrete Projectable type registered
// for e's Type field).
func Unproject(a Array, dataPtr any) (Event, error) {
	var e Event
	if err := json.Unmarshal(a[0], &e.ID); err != nil {
		return e, fmt.Errorf("wire: unmarshal id: %w", err)
	}
	if err := json.Unmarshal(a[1], &e.Origin); err != nil {
		return e, fmt.Errorf("wire: unmarshal origin: %w", err)
	}
	if err := json.Unmarshal(a[2], &e.Type); err != nil {
		return e, fmt.Errorf("wire: unmarshal type: %w", err)
	}
	if err := json.Unmarshal(a[3], &e.Time); err != nil {
		return e, fmt.Errorf("wire: unmarshal time: %w", err)
	}
	if dataPtr != nil {
		if err := json.Unmarshal(a[4], dataPtr); err != nil {
			return e, fmt.Errorf("wire: unmarshal data: %w", err)
		}
	}
	return e, nil
}

// MarshalArray serializes a into the JSON array form sent on the wire.
func MarshalArray(a Array) ([]byte, error) {
	return json.Marshal([...]json.RawMessage{a[0], a[1], a[2], a[3], a[4]})
}

// UnmarshalArray parses the JSON array form back into an Array.
func UnmarshalArray(data []byte) (Array, error) {
	var raw [5]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Array{}, fmt.Errorf("wire: unmarshal array: %w", err)
	}
	return Array(raw), nil
}
