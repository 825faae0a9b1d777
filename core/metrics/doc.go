// Package metrics exposes Prometheus collectors for reconciliation runs.
//
// All recording methods are safe on a nil *Metrics, so callers that run without
// metrics (tests, one-shot CLI commands) simply pass nil.
package metrics
