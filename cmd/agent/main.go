//go:build js && wasm

// Command agent is the wasm entrypoint: it builds a session.Session wired
// to the real browser DOM and exposes start/stop to the host page.
package main

import (
	"encoding/json"
	"syscall/js"

	"honnef.co/go/js/dom/v2"

	"github.com/ozanturksever/claritygo/bridge"
	"github.com/ozanturksever/claritygo/logutil"
	"github.com/ozanturksever/claritygo/telemetry/config"
	"github.com/ozanturksever/claritygo/telemetry/layout"
	"github.com/ozanturksever/claritygo/telemetry/session"
	"github.com/ozanturksever/claritygo/telemetry/upload"
)

var current *session.Session

func main() {
	js.Global().Set("claritygoStart", js.FuncOf(start))
	js.Global().Set("claritygoStop", js.FuncOf(stop))
	select {}
}

func start(this js.Value, args []js.Value) any {
	if current != nil {
		logutil.Log("claritygo: start requested while already running")
		return false
	}

	cfg := config.Default()
	if len(args) > 0 && args[0].Type() == js.TypeObject {
		m, err := jsValueToMap(args[0])
		if err != nil {
			logutil.Logf("claritygo: ignoring malformed config: %v", err)
		} else if parsed, err := config.FromMap(m); err != nil {
			logutil.Logf("claritygo: ignoring malformed config: %v", err)
		} else {
			cfg = parsed
		}
	}

	var uploader session.Uploader
	if cfg.UploadURL != "" {
		uploader = upload.NewFetchUploader(cfg.UploadURL)
	}

	impressionID := js.Global().Get("crypto").Call("randomUUID").String()
	current = session.New(impressionID, cfg, layout.JSScheduler{}, uploader)

	body := dom.GetWindow().Document().QuerySelector("body")
	if body == nil {
		logutil.Log("claritygo: document has no body element, refusing to start")
		current = nil
		return false
	}
	root := bridge.NewRealDOMElement(body)
	if err := current.Start(root); err != nil {
		logutil.Logf("claritygo: start failed: %v", err)
		current = nil
		return false
	}
	return true
}

func stop(this js.Value, args []js.Value) any {
	if current == nil {
		return false
	}
	current.Stop()
	current = nil
	return true
}

// jsValueToMap converts a plain JS object into a map[string]any via a JSON
// round-trip, matching how the rest of the agent treats host-supplied
// config objects.
func jsValueToMap(v js.Value) (map[string]any, error) {
	encoded := js.Global().Get("JSON").Call("stringify", v).String()
	var m map[string]any
	if err := json.Unmarshal([]byte(encoded), &m); err != nil {
		return nil, err
	}
	return m, nil
}
