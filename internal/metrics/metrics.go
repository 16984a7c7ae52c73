// package metrics collects Prometheus counters and latency histograms for backend calls.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// OutcomeOK labels successful calls; failures are labelled with their error kind.
const OutcomeOK = "ok"

// Recorder is what the backend client reports to.
type Recorder interface {
	RecordCall(op, outcome string, d time.Duration)
	RecordThrottled(op string)
	SetLists(n int)
}

// Collector is the Prometheus implementation of [Recorder].
type Collector struct {
	calls     *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	throttled *prometheus.CounterVec
	lists     prometheus.Gauge
}

// NewCollector builds a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fivhter_backend_calls_total",
			Help: "Backend calls by operation and outcome",
		}, []string{"operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fivhter_backend_call_duration_seconds",
			Help:    "Backend call latency including simulated network delay",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		throttled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fivhter_backend_throttled_total",
			Help: "Mutations that waited on the per-user write quota",
		}, []string{"operation"}),
		lists: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fivhter_store_lists",
			Help: "Lists currently held by the store",
		}),
	}

	reg.MustRegister(c.calls, c.latency, c.throttled, c.lists)

	return c
}

// RecordCall counts one call and observes its duration.
func (c *Collector) RecordCall(op, outcome string, d time.Duration) {
	c.calls.WithLabelValues(op, outcome).Inc()
	c.latency.WithLabelValues(op).Observe(d.Seconds())
}

// RecordThrottled counts a mutation that had to wait for quota.
func (c *Collector) RecordThrottled(op string) {
	c.throttled.WithLabelValues(op).Inc()
}

// SetLists reports the store size.
func (c *Collector) SetLists(n int) {
	c.lists.Set(float64(n))
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordCall(string, string, time.Duration) {}
func (Nop) RecordThrottled(string)                   {}
func (Nop) SetLists(int)                             {}

// WriteText writes every metric family in g using the Prometheus text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
