//go:build js && wasm

package upload

import (
	"context"
	"fmt"
	"syscall/js"
)

// FetchUploader posts compressed batches to a fixed URL through the
// browser's fetch API, the js/wasm counterpart to HTTPUploader. A Go
// net/http client has no transport under js/wasm, so this goes through
// syscall/js directly, following the same js.FuncOf/js.Global().Call
// conventions as the layout package's wasm-tagged scheduler and observer.
type FetchUploader struct {
	URL string
}

// NewFetchUploader returns a FetchUploader posting to url.
func NewFetchUploader(url string) *FetchUploader {
	return &FetchUploader{URL: url}
}

func (u *FetchUploader) Upload(ctx context.Context, data []byte) error {
	body := bytesToUint8Array(data)
	init := js.ValueOf(map[string]any{
		"method": "POST",
		"headers": map[string]any{
			"Content-Type":     "application/octet-stream",
			"Content-Encoding": "gzip",
		},
		"body": body,
	})

	resultCh := make(chan error, 1)
	onFulfilled := js.FuncOf(func(this js.Value, args []js.Value) any {
		resp := args[0]
		status := resp.Get("status").Int()
		if status >= 400 {
			resultCh <- fmt.Errorf("upload: collector returned status %d", status)
			return nil
		}
		resultCh <- nil
		return nil
	})
	onRejected := js.FuncOf(func(this js.Value, args []js.Value) any {
		reason := "unknown error"
		if len(args) > 0 {
			reason = args[0].Call("toString").String()
		}
		resultCh <- fmt.Errorf("upload: fetch failed: %s", reason)
		return nil
	})
	defer onFulfilled.Release()
	defer onRejected.Release()

	js.Global().Call("fetch", u.URL, init).Call("then", onFulfilled).Call("catch", onRejected)

	select {
	case err := <-resultCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func bytesToUint8Array(data []byte) js.Value {
	array := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(array, data)
	return array
}
