//go:build !js && !wasm

// Package e2e drives a compiled wasm build of the telemetry agent inside a
// real headless Chrome instance and asserts on the events it captures.
package e2e

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/ozanturksever/claritygo/internal/devserver"
)

// collectorStub records every request body it receives so the scenario can
// assert the agent actually flushed a batch over the wire.
type collectorStub struct {
	srv     *httptest.Server
	bodies  [][]byte
	reqSeen chan struct{}
}

func newCollectorStub() *collectorStub {
	c := &collectorStub{reqSeen: make(chan struct{}, 64)}
	c.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		c.bodies = append(c.bodies, buf)
		w.WriteHeader(http.StatusAccepted)
		select {
		case c.reqSeen <- struct{}{}:
		default:
		}
	}))
	return c
}

func (c *collectorStub) URL() string { return c.srv.URL }
func (c *collectorStub) Close()      { c.srv.Close() }

// buildScenarioWeb writes a harness page into dir that points the agent's
// upload URL at the collector stub, mirroring web/index.html but with the
// collector wired in via a query-string-free inline config.
func buildScenarioWeb(t *testing.T, dir, collectorURL string) {
	t.Helper()
	html := fmt.Sprintf(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>e2e harness</title></head>
<body>
<p id="status">loading</p>
<ul id="list"></ul>
<button id="add-node">add node</button>
<script src="/wasm_exec.js"></script>
<script>
const go = new Go();
WebAssembly.instantiateStreaming(fetch("/agent.wasm"), go.importObject).then((result) => {
  go.run(result.instance);
  document.getElementById("status").textContent = "ready";
  window.claritygoStart({uploadURL: %q, batchLimit: 1});
});
document.getElementById("add-node").addEventListener("click", () => {
  const li = document.createElement("li");
  li.textContent = "node";
  document.getElementById("list").appendChild(li);
});
</script>
</body></html>`, collectorURL)
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(html), 0o644); err != nil {
		t.Fatalf("write scenario index.html: %v", err)
	}
}

// TestAgentCapturesDOMMutationAndUploadsBatch drives a full stack: a real
// devserver building and serving the wasm agent, a headless Chrome loading
// it, a manual DOM mutation via the harness button, and a fake collector
// asserting the agent flushed at least one compressed batch.
func TestAgentCapturesDOMMutationAndUploadsBatch(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not available to build the wasm agent")
	}
	if !chromeAvailable() {
		t.Skip("no headless Chrome binary available in this environment")
	}

	repoRoot := repoRootDir(t)
	webDir := t.TempDir()
	collector := newCollectorStub()
	defer collector.Close()

	buildScenarioWeb(t, webDir, collector.URL())

	srv := devserver.NewServer(webDir, filepath.Join(repoRoot, "cmd", "agent"), filepath.Join(webDir, "agent.wasm"), "localhost:0")
	if err := srv.Start(); err != nil {
		t.Fatalf("devserver start: %v", err)
	}
	defer srv.Stop()

	tctx := MustNewChromedpContext(ExtendedTimeoutConfig())
	defer tctx.Cancel()
	LogConsole(tctx.Ctx, t.Log)

	err := chromedp.Run(tctx.Ctx,
		Actions.NavigateAndWaitForLoad(srv.URL(), "#status"),
		Actions.WaitForWASMInit("#add-node", 1*time.Second),
		Actions.ClickAndWait("#add-node", 500*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("chromedp scenario failed: %v", err)
	}

	select {
	case <-collector.reqSeen:
	case <-time.After(5 * time.Second):
		t.Fatalf("collector never received an uploaded batch")
	}

	if len(collector.bodies) == 0 {
		t.Fatalf("expected at least one uploaded batch body")
	}
}

func chromeAvailable() bool {
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func repoRootDir(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	// telemetry/e2e -> repo root is two levels up.
	return filepath.Join(wd, "..", "..")
}
