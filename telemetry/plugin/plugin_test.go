package plugin

import (
	"errors"
	"testing"
	"time"

	"github.com/ozanturksever/claritygo/telemetry/config"
	"github.com/ozanturksever/claritygo/telemetry/instrumentation"
	"github.com/ozanturksever/claritygo/telemetry/pipeline"
	"github.com/ozanturksever/claritygo/telemetry/wire"
)

type recordingPlugin struct {
	name   string
	log    *[]string
	failOn string
}

func (p *recordingPlugin) Reset() error {
	*p.log = append(*p.log, p.name+":reset")
	if p.failOn == "reset" {
		return errors.New("boom")
	}
	return nil
}

func (p *recordingPlugin) Activate(config.Config) error {
	*p.log = append(*p.log, p.name+":activate")
	if p.failOn == "activate" {
		return errors.New("boom")
	}
	return nil
}

func (p *recordingPlugin) Teardown() error {
	*p.log = append(*p.log, p.name+":teardown")
	if p.failOn == "teardown" {
		return errors.New("boom")
	}
	return nil
}

func TestStartRunsResetThenActivateInOrder(t *testing.T) {
	var log []string
	pipe := pipeline.New(func(wire.Event) {}, time.Now())
	host := NewHost(pipe)
	host.Register("a", &recordingPlugin{name: "a", log: &log})
	host.Register("b", &recordingPlugin{name: "b", log: &log})

	if err := host.Start(config.Default()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	want := []string{"a:reset", "b:reset", "a:activate", "b:activate"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
}

func TestSecondStartIsRefusedAndReportsOnce(t *testing.T) {
	var events []wire.Event
	pipe := pipeline.New(func(e wire.Event) { events = append(events, e) }, time.Now())
	host := NewHost(pipe)
	host.Register("a", &recordingPlugin{name: "a", log: &[]string{}})

	if err := host.Start(config.Default()); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	err := host.Start(config.Default())
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Start error = %v, want ErrAlreadyRunning", err)
	}

	var dupCount int
	for _, e := range events {
		if e.Type == string(instrumentation.KindClarityDuplicated) {
			dupCount++
		}
	}
	if dupCount != 1 {
		t.Fatalf("ClarityDuplicated events = %d, want 1", dupCount)
	}
}

func TestStopTearsDownExactlyOncePerActivation(t *testing.T) {
	var log []string
	pipe := pipeline.New(func(wire.Event) {}, time.Now())
	host := NewHost(pipe)
	host.Register("a", &recordingPlugin{name: "a", log: &log})

	if err := host.Start(config.Default()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	host.Stop()
	host.Stop() // second call must be a no-op: teardown already ran

	teardowns := 0
	for _, entry := range log {
		if entry == "a:teardown" {
			teardowns++
		}
	}
	if teardowns != 1 {
		t.Fatalf("teardowns = %d, want 1", teardowns)
	}
	if host.Running() {
		t.Fatalf("host still reports Running after Stop")
	}
}

func TestStartAfterStopIsAcceptedAgain(t *testing.T) {
	var log []string
	pipe := pipeline.New(func(wire.Event) {}, time.Now())
	host := NewHost(pipe)
	host.Register("a", &recordingPlugin{name: "a", log: &log})

	if err := host.Start(config.Default()); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	host.Stop()
	if err := host.Start(config.Default()); err != nil {
		t.Fatalf("Start after Stop: %v", err)
	}
}
