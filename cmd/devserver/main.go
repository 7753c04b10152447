package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ozanturksever/claritygo/internal/devserver"
	"github.com/ozanturksever/claritygo/logutil"
	"github.com/ozanturksever/claritygo/telemetry/config"
)

func main() {
	webDir := flag.String("web", "web", "directory to serve static assets from")
	agentPkg := flag.String("agent", "./cmd/agent", "package path of the wasm agent to build")
	out := flag.String("out", "web/agent.wasm", "output path for the compiled agent")
	addr := flag.String("addr", "localhost:8089", "address to listen on")
	configPath := flag.String("config", "", "optional YAML file of agent defaults to inject into the served page")
	flag.Parse()

	srv := devserver.NewServer(*webDir, *agentPkg, *out, *addr)

	if *configPath != "" {
		cfg, err := config.LoadFile(*configPath)
		if err != nil {
			logutil.Logf("devserver: %v", err)
			os.Exit(1)
		}
		srv.SetAgentConfig(cfg.ToMap())
	}

	if err := srv.Start(); err != nil {
		logutil.Logf("devserver: %v", err)
		os.Exit(1)
	}
	logutil.Logf("==> claritygo devserver listening on %s\n", srv.URL())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logutil.Log("==> shutting down")
	if err := srv.Stop(); err != nil {
		logutil.Logf("devserver: shutdown: %v", err)
	}
}
