// Package devserver implements a development server for the telemetry
// agent's wasm build: it serves the static harness page, rebuilds the
// agent on source changes, and pushes a live-reload signal to the browser
// over server-sent events.
package devserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ozanturksever/claritygo/logutil"
)

// sseHub fans out live-reload notifications to every connected browser tab.
type sseHub struct {
	mu      sync.Mutex
	clients map[chan string]struct{}
}

func newSSEHub() *sseHub { return &sseHub{clients: make(map[chan string]struct{})} }

func (h *sseHub) addClient(ch chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[ch] = struct{}{}
}

func (h *sseHub) removeClient(ch chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, ch)
	close(ch)
}

func (h *sseHub) broadcast(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Server serves the agent harness page, the compiled agent.wasm binary,
// and a live-reload channel that rebuilds the agent whenever its sources
// change.
type Server struct {
	webDir      string
	agentPkg    string
	outPath     string
	addr        string
	agentConfig map[string]any
	hub         *sseHub
	server      *http.Server
	listener    net.Listener
	watchStop   context.CancelFunc
}

// NewServer returns a Server rooted at webDir, building agentPkg (a Go
// package path or directory, passed to `go build`) into outPath whenever
// requested or on a source change.
func NewServer(webDir, agentPkg, outPath, addr string) *Server {
	if addr == "" {
		addr = "localhost:0"
	}
	return &Server{webDir: webDir, agentPkg: agentPkg, outPath: outPath, addr: addr, hub: newSSEHub()}
}

// SetAgentConfig injects cfg as window.__claritygoConfig in every served
// HTML page, letting a harness page call window.claritygoStart(window.__claritygoConfig)
// to pick up devserver-supplied defaults without hardcoding them in markup.
func (s *Server) SetAgentConfig(cfg map[string]any) {
	s.agentConfig = cfg
}

// BuildAgent cross-compiles agentPkg to outPath with GOOS=js GOARCH=wasm.
func (s *Server) BuildAgent() error {
	logutil.Logf("==> Building wasm agent from %s\n", s.agentPkg)
	cmd := exec.Command("go", "build", "-o", s.outPath, s.agentPkg)
	cmd.Env = append(os.Environ(), "GOOS=js", "GOARCH=wasm")
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		scanner := bufio.NewScanner(bytes.NewReader(out))
		for scanner.Scan() {
			logutil.Log(scanner.Text())
		}
	}
	return err
}

// Start builds the agent once, then serves the harness page (with a
// live-reload script injected), wasm_exec.js, and the compiled binary.
func (s *Server) Start() error {
	if err := s.BuildAgent(); err != nil {
		logutil.Logf("initial build failed: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveIndex)
	mux.HandleFunc("/wasm_exec.js", s.serveWasmExec)
	mux.HandleFunc("/agent.wasm", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/wasm")
		http.ServeFile(w, r, s.outPath)
	})
	mux.HandleFunc("/__livereload", s.serveLiveReload)

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("devserver: listen: %w", err)
	}
	s.listener = listener
	s.addr = listener.Addr().String()
	s.server = &http.Server{Handler: mux}

	go func() {
		logutil.Logf("==> Serving http://%s\n", s.addr)
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logutil.Logf("devserver: serve error: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	s.watchStop = cancel
	go func() {
		if err := s.watch(ctx); err != nil {
			logutil.Logf("devserver: watch error: %v", err)
		}
	}()

	time.Sleep(100 * time.Millisecond)
	return nil
}

// Stop shuts down the server and its source watcher.
func (s *Server) Stop() error {
	if s.watchStop != nil {
		s.watchStop()
	}
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	if s.listener != nil {
		s.listener.Close()
	}
	return err
}

// URL returns the server's base URL.
func (s *Server) URL() string { return fmt.Sprintf("http://%s", s.addr) }

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.ServeFile(w, r, filepath.Join(s.webDir, filepath.Clean(r.URL.Path)))
		return
	}
	data, err := os.ReadFile(filepath.Join(s.webDir, "index.html"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	injected := injectLiveReload(string(data))
	if s.agentConfig != nil {
		injected = injectAgentConfig(injected, s.agentConfig)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(injected))
}

// injectLiveReload appends the live-reload client script before </body>, or
// at the end of the document if no </body> tag is present.
func injectLiveReload(html string) string {
	script := `<script>
new EventSource('/__livereload').onmessage = function(e) {
  if (e.data === 'reload') { location.reload(); }
};
</script>`
	if idx := strings.LastIndex(html, "</body>"); idx != -1 {
		return html[:idx] + script + html[idx:]
	}
	return html + script
}

// injectAgentConfig prepends window.__claritygoConfig, encoded as JSON,
// before the first <script> tag so the harness page's own bootstrap script
// can read it before calling claritygoStart.
func injectAgentConfig(html string, cfg map[string]any) string {
	encoded, err := json.Marshal(cfg)
	if err != nil {
		logutil.Logf("devserver: marshal agent config: %v", err)
		return html
	}
	script := fmt.Sprintf("<script>window.__claritygoConfig = %s;</script>", encoded)
	if idx := strings.Index(html, "<script"); idx != -1 {
		return html[:idx] + script + html[idx:]
	}
	return html + script
}

func (s *Server) serveWasmExec(w http.ResponseWriter, r *http.Request) {
	path, err := locateWasmExecJS()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/javascript")
	http.ServeFile(w, r, path)
}

// locateWasmExecJS finds the wasm_exec.js shipped with the local Go
// toolchain. Its path moved between Go releases, so both known locations
// are tried.
func locateWasmExecJS() (string, error) {
	root := runtime.GOROOT()
	candidates := []string{
		filepath.Join(root, "lib", "wasm", "wasm_exec.js"),
		filepath.Join(root, "misc", "wasm", "wasm_exec.js"),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("devserver: wasm_exec.js not found under %s", root)
}

func (s *Server) serveLiveReload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch := make(chan string, 8)
	s.hub.addClient(ch)
	defer s.hub.removeClient(ch)

	fmt.Fprint(w, "event: ping\ndata: ok\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-ch:
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range []string{"telemetry", "bridge", "cmd/agent", "logutil"} {
		filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info == nil {
				return nil
			}
			if info.IsDir() {
				if strings.HasPrefix(info.Name(), ".") {
					return filepath.SkipDir
				}
				_ = watcher.Add(path)
			}
			return nil
		})
	}

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	rebuild := func() {
		if err := s.BuildAgent(); err != nil {
			logutil.Logf("devserver: rebuild failed: %v", err)
			return
		}
		s.hub.broadcast("reload")
		logutil.Log("devserver: reload signaled")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-watcher.Events:
			if !strings.HasSuffix(ev.Name, ".go") {
				continue
			}
			debounce.Reset(200 * time.Millisecond)
		case <-debounce.C:
			rebuild()
		case err := <-watcher.Errors:
			logutil.Logf("devserver: watcher error: %v", err)
		}
	}
}
