//go:build !(js && wasm)

package layout

import "github.com/ozanturksever/claritygo/bridge"

// noopObserver is the MutationObserver used outside js/wasm builds, where
// there is no native MutationObserver to wrap. Tests drive HandleMutation
// directly instead of relying on a live browser to generate mutation
// records.
type noopObserver struct{}

// NewObserver mirrors observer_wasm.go's constructor signature so session
// wiring is identical across build targets.
func NewObserver(tracker *Tracker, container bridge.DOMElement) MutationObserver {
	return noopObserver{}
}

func (noopObserver) Start() {}
func (noopObserver) Stop()  {}
