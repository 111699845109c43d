// Package metrics exposes queue and worker statistics over Prometheus.
//
// Metrics are observability only: nothing in pkg/queue or pkg/worker
// reads them back, and a scrape outage never changes task state. The
// directory layout under the queue root remains the sole source of
// truth (spec.md §7).
package metrics
