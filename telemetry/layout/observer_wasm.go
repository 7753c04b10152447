//go:build js && wasm

package layout

import (
	"syscall/js"

	"honnef.co/go/js/dom/v2"

	"github.com/ozanturksever/claritygo/bridge"
	"github.com/ozanturksever/claritygo/telemetry/shadow"
)

// Observer wraps a native MutationObserver, translating its records into
// shadow.MutationRecord batches and folding each one into a Tracker. One
// Observer watches one container element and its whole subtree.
type Observer struct {
	jsObserver js.Value
	callback   js.Func
	tracker    *Tracker
	container  bridge.DOMElement
}

// NewObserver creates (but does not start) an Observer over container that
// feeds tracker.
func NewObserver(tracker *Tracker, container bridge.DOMElement) MutationObserver {
	o := &Observer{tracker: tracker, container: container}
	o.callback = js.FuncOf(o.handleMutations)
	o.jsObserver = js.Global().Get("MutationObserver").New(o.callback.Value)
	return o
}

// Start begins observing childList, attribute, and character-data
// mutations across the container's whole subtree.
func (o *Observer) Start() {
	node, ok := o.container.Raw().(dom.Element)
	if !ok {
		return
	}
	raw := node.Underlying()
	options := js.ValueOf(map[string]any{
		"childList":       true,
		"subtree":         true,
		"attributes":      true,
		"characterData":   true,
	})
	o.jsObserver.Call("observe", raw, options)
}

// Stop disconnects the native observer. The Observer cannot be restarted
// after Stop; construct a new one instead.
func (o *Observer) Stop() {
	o.jsObserver.Call("disconnect")
	o.callback.Release()
}

func (o *Observer) handleMutations(this js.Value, args []js.Value) any {
	if len(args) == 0 {
		return nil
	}
	records := args[0]
	count := records.Length()
	for i := 0; i < count; i++ {
		record := records.Index(i)
		o.tracker.HandleMutation(toMutationRecord(record))
	}
	return nil
}

func toMutationRecord(record js.Value) shadow.MutationRecord {
	rec := shadow.MutationRecord{
		Target: bridge.NewRealDOMElement(dom.WrapElement(record.Get("target"))),
	}

	switch record.Get("type").String() {
	case "childList":
		rec.AddedElements = toElements(record.Get("addedNodes"))
		rec.RemovedElements = toElements(record.Get("removedNodes"))
	case "attributes":
		rec.AttributeName = record.Get("attributeName").String()
	case "characterData":
		rec.CharacterData = true
	}
	return rec
}

func toElements(nodeList js.Value) []bridge.DOMElement {
	n := nodeList.Length()
	out := make([]bridge.DOMElement, 0, n)
	for i := 0; i < n; i++ {
		node := nodeList.Index(i)
		if node.Get("nodeType").Int() != 1 { // Element nodes only.
			continue
		}
		if el := bridge.NewRealDOMElement(dom.WrapElement(node)); el != nil {
			out = append(out, el)
		}
	}
	return out
}
