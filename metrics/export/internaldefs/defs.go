package internaldefs

import (
	memory "github.com/kvsession/memory"
)

// CounterDef defines a public type used by memory APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   memory.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by memory APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   memory.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session store.
var CounterDefs = []CounterDef{
	{ID: memory.MetricSessionCreated, Name: "memory_session_created_total", Help: "Created session handles."},
	{ID: memory.MetricSessionLoaded, Name: "memory_session_loaded_total", Help: "Successful session loads."},
	{ID: memory.MetricSessionAbsent, Name: "memory_session_absent_total", Help: "Loads that found no session."},
	{ID: memory.MetricSessionCorrupted, Name: "memory_session_corrupted_total", Help: "Loads that found an undecodable payload."},
	{ID: memory.MetricSessionSaved, Name: "memory_session_saved_total", Help: "Successful session saves."},
	{ID: memory.MetricSessionExtended, Name: "memory_session_extended_total", Help: "Successful expiry refreshes."},
	{ID: memory.MetricSessionClosed, Name: "memory_session_closed_total", Help: "Session close operations."},
	{ID: memory.MetricBackendError, Name: "memory_backend_error_total", Help: "Redis operations that failed."},
}

// HistogramDefs is an exported constant or variable used by the session store.
var HistogramDefs = []HistogramDef{
	{ID: memory.MetricLoadLatency, Name: "memory_load_latency_seconds", Help: "Load latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the session store.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session store.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
