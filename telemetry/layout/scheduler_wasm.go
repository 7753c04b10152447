//go:build js && wasm

package layout

import (
	"syscall/js"
	"time"
)

// JSScheduler implements Scheduler by posting to the host page's event
// loop via setTimeout, the real "zero-delay timer" yield point: Backfill
// gives up its time-slice without blocking a worker thread that doesn't
// exist on the main thread.
type JSScheduler struct{}

func (JSScheduler) Schedule(delay time.Duration, fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	js.Global().Call("setTimeout", cb.Value, delay.Milliseconds())
}
