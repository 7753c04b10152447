package layout

import "time"

// GoroutineScheduler implements Scheduler with time.AfterFunc. It is the
// Scheduler used outside js/wasm builds (tests, the e2e harness running
// host-side logic) where there is no browser event loop to post to.
type GoroutineScheduler struct{}

func (GoroutineScheduler) Schedule(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}

// FakeScheduler runs fn synchronously on the calling goroutine. Tests use
// it to make backfill time-slicing deterministic: Backfill's yield becomes
// an ordinary recursive call instead of a real asynchronous hop.
type FakeScheduler struct{}

func (FakeScheduler) Schedule(_ time.Duration, fn func()) {
	fn()
}
