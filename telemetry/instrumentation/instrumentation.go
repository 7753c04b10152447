// Package instrumentation defines the closed set of diagnostic event kinds
// the telemetry agent reports about itself, and their payload shapes. Every
// anomaly anywhere in the agent becomes exactly one of these, never a panic
// or a silently swallowed error.
package instrumentation

// Kind is the closed set of instrumentation event kinds.
type Kind string

const (
	KindJsError                Kind = "JsError"
	KindXhrError                Kind = "XhrError"
	KindShadowDomInconsistent   Kind = "ShadowDomInconsistent"
	KindClarityDuplicated       Kind = "ClarityDuplicated"
	KindPerformanceStateError   Kind = "PerformanceStateError"
	KindNavigationTiming        Kind = "NavigationTiming"
	KindResourceTiming          Kind = "ResourceTiming"
)

// JsError reports an uncaught exception observed on the host page.
type JsError struct {
	Message string `json:"message"`
	Source  string `json:"source"`
	Line    int    `json:"line"`
	Col     int    `json:"col"`
}

func (JsError) WireType() string { return string(KindJsError) }

// XhrError reports a failed upload to the collector. The Batcher drops a
// batch whose only event is a single XhrError, so a failing collector cannot
// cause a feedback loop of failure reports.
type XhrError struct {
	Status int    `json:"status"`
	URL    string `json:"url"`
}

func (XhrError) WireType() string { return string(KindXhrError) }

// ShadowDomInconsistent reports a detected divergence between the Shadow
// DOM Mirror and the live DOM. Live and Shadow are adjacency maps keyed by
// node index, as produced by shadow.Mirror.CreateIndexJSON.
type ShadowDomInconsistent struct {
	Live           map[int64][]int64 `json:"live"`
	Shadow         map[int64][]int64 `json:"shadow"`
	LastConsistent int64             `json:"lastConsistent"`
	FirstEvent     int64             `json:"firstEvent"`
	Routine        string            `json:"routine"`
}

func (ShadowDomInconsistent) WireType() string { return string(KindShadowDomInconsistent) }

// ClarityDuplicated reports that Host.Start observed a second concurrent
// activation attempt for a session that is already running.
type ClarityDuplicated struct{}

func (ClarityDuplicated) WireType() string { return string(KindClarityDuplicated) }

// PerformanceStateError reports that the Performance API returned an
// unexpected or unusable state (e.g. navigation timing entries missing).
type PerformanceStateError struct {
	Reason string `json:"reason"`
}

func (PerformanceStateError) WireType() string { return string(KindPerformanceStateError) }

// NavigationTiming carries the subset of the Navigation Timing API the
// agent reports once per session.
type NavigationTiming struct {
	FetchStart         float64 `json:"fetchStart"`
	DomContentLoaded   float64 `json:"domContentLoaded"`
	LoadEventEnd       float64 `json:"loadEventEnd"`
	ResponseStart      float64 `json:"responseStart"`
}

func (NavigationTiming) WireType() string { return string(KindNavigationTiming) }

// ResourceEntry is one entry from the Resource Timing API.
type ResourceEntry struct {
	Name            string  `json:"name"`
	InitiatorType   string  `json:"initiatorType"`
	StartTime       float64 `json:"startTime"`
	Duration        float64 `json:"duration"`
	TransferSize    float64 `json:"transferSize"`
}

// ResourceTiming batches resource timing entries collected since the last
// report.
type ResourceTiming struct {
	Entries []ResourceEntry `json:"entries"`
}

func (ResourceTiming) WireType() string { return string(KindResourceTiming) }
