// Package metric provides Prometheus metrics for VoteLedger.
//
// All metrics live in a dedicated registry (not the library default)
// so tests can build isolated registries. Metrics include:
//
//   - checkpoint append and weight query counters
//   - mint/transfer counters, supply and step gauges
//   - HTTP request counts and latency histograms
//   - auth failure counters
//
// Badger storage size gauges register themselves through
// BadgerEngine.RegisterMetrics. Metrics are exposed at /metrics.
package metric
