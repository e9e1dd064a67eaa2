// Package metrics exports sink counters to Prometheus.
//
// The collector reads handler.Stats on each scrape and emits
// logz_sink_records_written_total and logz_sink_records_failed_total
// (labels sink, level) and logz_sink_records_filtered_total (label sink).
package metrics
