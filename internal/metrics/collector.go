package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector counts conversion activity on its own registry.
// Collector 在独立的 registry 上统计转换活动。
type Collector struct {
	registry *prometheus.Registry

	LinesTotal        prometheus.Counter
	RowsTotal         prometheus.Counter
	SkippedTotal      prometheus.Counter
	InvalidTimestamps prometheus.Counter
	HeaderRenamed     prometheus.Counter
	LastRunTimestamp  prometheus.Gauge
}

// NewCollector registers the shieldevt metrics on a fresh registry.
// NewCollector 在新的 registry 上注册 shieldevt 指标。
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		LinesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "shieldevt_lines_total",
			Help: "Total input lines read, including the header and skipped blank lines",
		}),
		RowsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "shieldevt_rows_converted_total",
			Help: "Total data rows written with a derived timestamp column",
		}),
		SkippedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "shieldevt_lines_skipped_total",
			Help: "Total trailing blank input lines dropped",
		}),
		InvalidTimestamps: factory.NewCounter(prometheus.CounterOpts{
			Name: "shieldevt_timestamp_invalid_total",
			Help: "Total data rows whose timestamp could not be derived and received 0",
		}),
		HeaderRenamed: factory.NewCounter(prometheus.CounterOpts{
			Name: "shieldevt_header_renamed_total",
			Help: "Total headers in which the EVENT_TYPE column was renamed",
		}),
		LastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "shieldevt_last_run_timestamp_seconds",
			Help: "Unix time at which the last conversion finished",
		}),
	}
}

// ObserveHeader implements converter.Observer.
func (c *Collector) ObserveHeader(renamed bool) {
	c.LinesTotal.Inc()
	if renamed {
		c.HeaderRenamed.Inc()
	}
}

// ObserveRow implements converter.Observer.
func (c *Collector) ObserveRow(validTimestamp bool) {
	c.LinesTotal.Inc()
	c.RowsTotal.Inc()
	if !validTimestamp {
		c.InvalidTimestamps.Inc()
	}
}

// ObserveSkipped implements converter.Observer.
func (c *Collector) ObserveSkipped() {
	c.LinesTotal.Inc()
	c.SkippedTotal.Inc()
}

// MarkRun records when a conversion finished.
func (c *Collector) MarkRun(t time.Time) {
	c.LastRunTimestamp.Set(float64(t.Unix()))
}

// Gatherer exposes the registry for exporters.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}
