package metrics

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Philipp01105/logz/core"
	"github.com/Philipp01105/logz/handler"
)

const (
	namespace = "logz"
	subsystem = "sink"
)

// Source lists the sinks whose counters are exported.
type Source interface {
	SinkStats() []handler.StatsProvider
}

// Collector is a prometheus.Collector over per-sink Stats. Sinks that
// share a name are summed.
type Collector struct {
	source Source

	written  *prometheus.Desc
	failed   *prometheus.Desc
	filtered *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector reading src on every scrape.
func NewCollector(src Source) *Collector {
	return &Collector{
		source: src,
		written: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "records_written_total"),
			"Records written by a sink, by level.",
			[]string{"sink", "level"}, nil,
		),
		failed: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "records_failed_total"),
			"Records a sink failed to write, by level.",
			[]string{"sink", "level"}, nil,
		),
		filtered: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "records_filtered_total"),
			"Records rejected by a sink's level filter.",
			[]string{"sink"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.written
	ch <- c.failed
	ch <- c.filtered
}

type totals struct {
	written  [len(core.Levels)]uint64
	failed   [len(core.Levels)]uint64
	filtered uint64
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	bySink := make(map[string]*totals)
	for _, sp := range c.source.SinkStats() {
		t, ok := bySink[sp.Name()]
		if !ok {
			t = &totals{}
			bySink[sp.Name()] = t
		}
		snap := sp.Stats()
		for i, level := range core.Levels {
			t.written[i] += snap.Written[level]
			t.failed[i] += snap.Failed[level]
		}
		t.filtered += snap.Filtered
	}

	names := make([]string, 0, len(bySink))
	for name := range bySink {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := bySink[name]
		for i, level := range core.Levels {
			ch <- prometheus.MustNewConstMetric(c.written, prometheus.CounterValue, float64(t.written[i]), name, level.String())
			ch <- prometheus.MustNewConstMetric(c.failed, prometheus.CounterValue, float64(t.failed[i]), name, level.String())
		}
		ch <- prometheus.MustNewConstMetric(c.filtered, prometheus.CounterValue, float64(t.filtered), name)
	}
}
