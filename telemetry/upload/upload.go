// Package upload defines the collector transport. Semantics beyond
// delivering opaque compressed bytes to an endpoint are out of scope; the
// interface exists to give the XhrError instrumentation path (§7) a
// concrete failure source.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"
)

// Uploader delivers a compressed batch to the collector endpoint.
type Uploader interface {
	Upload(ctx context.Context, data []byte) error
}

// HTTPUploader posts compressed batches to a fixed URL with net/http. It is
// the non-wasm implementation; js/wasm builds use FetchUploader instead.
type HTTPUploader struct {
	URL    string
	Client *http.Client
}

// NewHTTPUploader returns an HTTPUploader with a default client timeout.
func NewHTTPUploader(url string) *HTTPUploader {
	return &HTTPUploader{URL: url, Client: &http.Client{Timeout: 10 * time.Second}}
}

func (u *HTTPUploader) Upload(ctx context.Context, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.URL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("upload: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Content-Encoding", "gzip")

	resp, err := u.Client.Do(req)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("upload: collector returned status %d", resp.StatusCode)
	}
	return nil
}
