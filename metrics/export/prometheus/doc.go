// Package prometheus provides Prometheus collectors for session store metrics.
//
// [NewPrometheusExporter] accepts a [memory.Store] and exposes an [http.Handler]
// that renders all store counters and histograms in Prometheus text exposition
// format. Counter names are prefixed memory_*_total; the single histogram is
// memory_load_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate store state.
package prometheus
