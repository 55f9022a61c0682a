package metrics

import (
	"sync"
	"time"
)

type operationStats struct {
	calls           int
	errors          int
	lastStatus      int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about remote API calls and
// mirrors them to OpenTelemetry instruments when those are configured.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*operationStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*operationStats),
		otel:  otel,
	}
}

// RecordAPICall counts one remote API call for an operation. Status is the
// HTTP status, or zero when the request never got a response.
func (r *Recorder) RecordAPICall(operation string, status int, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stats[operation]
	if !ok {
		stats = &operationStats{}
		r.stats[operation] = stats
	}
	stats.calls++
	stats.lastStatus = status
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAPICall(operation, status, duration, err)
	}
}

// APICalls returns the total calls recorded for an operation.
func (r *Recorder) APICalls(operation string) int {
	return r.Snapshot(operation).Calls
}

// APIErrors returns the failed calls recorded for an operation.
func (r *Recorder) APIErrors(operation string) int {
	return r.Snapshot(operation).Errors
}

// LastCallLatency returns the last recorded latency for an operation.
func (r *Recorder) LastCallLatency(operation string) time.Duration {
	return r.Snapshot(operation).LastCallLatency
}

// Snapshot is a copy of the current stats for an operation.
type Snapshot struct {
	Calls           int
	Errors          int
	LastStatus      int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(operation string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[operation]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastStatus:      stats.lastStatus,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks console API requests.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordRefreshCycle tracks one background refresh of a view.
func (r *Recorder) RecordRefreshCycle(view string, duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordRefresh(view, duration, err)
}
