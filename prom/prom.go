// Package prom exports engine metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	c, _ := prom.NewCollector(reg, "lookup")
//	eng := lookup.New(lookup.WithMetricsCollector(c))
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/lookup"
)

const (
	opCreate     = "create"
	opInsert     = "insert"
	opFind       = "find"
	opLoad       = "load"
	opReduceJoin = "reduce_join"
)

// Collector implements lookup.MetricsCollector with Prometheus metrics.
type Collector struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	keys       *prometheus.CounterVec
	lines      prometheus.Counter
	created    prometheus.Counter
}

var _ lookup.MetricsCollector = (*Collector)(nil)

// NewCollector creates the metrics under namespace and registers them with
// reg. A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total engine operations by kind and outcome.",
		}, []string{"op", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of engine operations.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op"}),
		keys: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "find_keys_total",
			Help:      "Keys looked up, split into hits and misses.",
		}, []string{"result"}),
		lines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_lines_total",
			Help:      "Vocabulary lines read by text file loads.",
		}),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tables_created_total",
			Help:      "Tables constructed by Create.",
		}),
	}

	for _, m := range []prometheus.Collector{c.operations, c.latency, c.keys, c.lines, c.created} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (c *Collector) observe(op string, d time.Duration, err error) {
	c.operations.WithLabelValues(op, status(err)).Inc()
	c.latency.WithLabelValues(op).Observe(d.Seconds())
}

// RecordCreate implements lookup.MetricsCollector.
func (c *Collector) RecordCreate(created bool, err error) {
	c.operations.WithLabelValues(opCreate, status(err)).Inc()
	if created {
		c.created.Inc()
	}
}

// RecordInsert implements lookup.MetricsCollector.
func (c *Collector) RecordInsert(_ int, d time.Duration, err error) {
	c.observe(opInsert, d, err)
}

// RecordFind implements lookup.MetricsCollector.
func (c *Collector) RecordFind(count, misses int, d time.Duration, err error) {
	c.observe(opFind, d, err)
	if err != nil {
		return
	}
	c.keys.WithLabelValues("hit").Add(float64(count - misses))
	c.keys.WithLabelValues("miss").Add(float64(misses))
}

// RecordLoad implements lookup.MetricsCollector.
func (c *Collector) RecordLoad(lines int64, d time.Duration, err error) {
	c.observe(opLoad, d, err)
	c.lines.Add(float64(lines))
}

// RecordReduceJoin implements lookup.MetricsCollector.
func (c *Collector) RecordReduceJoin(_ int, d time.Duration, err error) {
	c.observe(opReduceJoin, d, err)
}
