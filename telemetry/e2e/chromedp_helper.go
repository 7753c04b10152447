//go:build !js && !wasm

package e2e

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// ChromedpConfig holds configuration options for chromedp browser setup.
type ChromedpConfig struct {
	// Headless determines if the browser runs in headless mode
	Headless bool
	// Timeout sets the context timeout for the entire test
	Timeout time.Duration
	// DisableGPU disables GPU acceleration
	DisableGPU bool
	// NoSandbox disables the sandbox
	NoSandbox bool
	// DisableDevShmUsage disables /dev/shm usage
	DisableDevShmUsage bool
	// AdditionalFlags allows adding custom Chrome flags
	AdditionalFlags []chromedp.ExecAllocatorOption
}

// DefaultConfig returns a sensible default configuration for chromedp tests.
func DefaultConfig() ChromedpConfig {
	return ChromedpConfig{
		Headless:           true,
		Timeout:            15 * time.Second,
		DisableGPU:         true,
		NoSandbox:          true,
		DisableDevShmUsage: true,
	}
}

// VisibleConfig returns a configuration for visible browser testing (useful for debugging).
func VisibleConfig() ChromedpConfig {
	return ChromedpConfig{
		Headless:           false,
		Timeout:            15 * time.Second,
		DisableGPU:         false,
		NoSandbox:          true,
		DisableDevShmUsage: true,
	}
}

// ExtendedTimeoutConfig returns a configuration with a longer timeout for complex scenarios.
func ExtendedTimeoutConfig() ChromedpConfig {
	config := DefaultConfig()
	config.Timeout = 30 * time.Second
	return config
}

// ChromedpTestContext holds the context and cancel function for a chromedp scenario.
type ChromedpTestContext struct {
	Ctx    context.Context
	Cancel context.CancelFunc
}

// NewChromedpContext creates a new chromedp context with the given configuration.
// The returned ChromedpTestContext should be cleaned up with defer ctx.Cancel().
func NewChromedpContext(config ChromedpConfig) (*ChromedpTestContext, error) {
	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", config.Headless),
		chromedp.Flag("disable-gpu", config.DisableGPU),
		chromedp.Flag("no-sandbox", config.NoSandbox),
	)

	if config.DisableDevShmUsage {
		opts = append(opts, chromedp.Flag("disable-dev-shm-usage", true))
	}

	opts = append(opts, config.AdditionalFlags...)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	combinedCancel := func() {
		browserCancel()
		allocCancel()
		cancel()
	}

	return &ChromedpTestContext{
		Ctx:    browserCtx,
		Cancel: combinedCancel,
	}, nil
}

// MustNewChromedpContext is like NewChromedpContext but panics on error.
func MustNewChromedpContext(config ChromedpConfig) *ChromedpTestContext {
	ctx, err := NewChromedpContext(config)
	if err != nil {
		panic(err)
	}
	return ctx
}

// CommonTestActions provides chromedp action sequences shared across scenarios.
type CommonTestActions struct{}

// WaitForWASMInit waits for a visible element and adds a settle delay for the
// wasm agent to finish its initial backfill.
func (CommonTestActions) WaitForWASMInit(selector string, delay time.Duration) chromedp.Action {
	return chromedp.Tasks{
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Sleep(delay),
	}
}

// NavigateAndWaitForLoad navigates to a URL and waits for the page to load.
func (CommonTestActions) NavigateAndWaitForLoad(url, waitSelector string) chromedp.Action {
	return chromedp.Tasks{
		chromedp.Navigate(url),
		chromedp.WaitVisible(waitSelector, chromedp.ByQuery),
		chromedp.Sleep(500 * time.Millisecond),
	}
}

// ClickAndWait clicks an element and waits for a specified duration.
func (CommonTestActions) ClickAndWait(selector string, wait time.Duration) chromedp.Action {
	return chromedp.Tasks{
		chromedp.Click(selector, chromedp.ByQuery),
		chromedp.Sleep(wait),
	}
}

// SendKeysAndWait sends keys to an element and waits for a specified duration.
func (CommonTestActions) SendKeysAndWait(selector, text string, wait time.Duration) chromedp.Action {
	return chromedp.Tasks{
		chromedp.SendKeys(selector, text, chromedp.ByQuery),
		chromedp.Sleep(wait),
	}
}

// Actions is a package-level instance for convenient access to common actions.
var Actions = CommonTestActions{}

// LogConsole registers a listener on ctx that forwards every browser-side
// console.* call to log, formatted as "console.<type>: <args>". Scenario
// tests use this to surface the agent's own logutil output (and any JS
// exceptions) in their own output instead of only the pass/fail result.
func LogConsole(ctx context.Context, log func(string)) {
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		evt, ok := ev.(*runtime.EventConsoleAPICalled)
		if !ok {
			return
		}
		var args []string
		for _, arg := range evt.Args {
			args = append(args, string(arg.Value))
		}
		log(fmt.Sprintf("console.%s: %v", evt.Type, args))
	})
}
