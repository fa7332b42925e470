// Package metrics exposes Prometheus metrics for the ledger server: RPC
// counters and latencies from a Connect interceptor, and group, user and
// transaction counts read from the ledger at scrape time.
package metrics

import (
	"context"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/splitledger/internal/ledger"
)

const namespace = "splitledger"

// StatsSource reports current ledger sizes. *ledger.Store implements it.
type StatsSource interface {
	Stats() ledger.Stats
}

// Metrics owns a Prometheus registry with every splitledger metric.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the metrics registry. When source is non-nil, ledger sizes are
// exported as gauges.
func New(source StatsSource) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC requests by procedure and result code.",
		}, []string{"procedure", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"procedure"}),
	}
	reg.MustRegister(m.requests, m.duration)

	if source != nil {
		reg.MustRegister(newLedgerCollector(source))
	}
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Interceptor returns a Connect interceptor counting and timing every call.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.requests.WithLabelValues(procedure, code).Inc()
			m.duration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}

// ledgerCollector reads ledger sizes on every scrape.
type ledgerCollector struct {
	source       StatsSource
	groups       *prometheus.Desc
	users        *prometheus.Desc
	transactions *prometheus.Desc
}

func newLedgerCollector(source StatsSource) *ledgerCollector {
	return &ledgerCollector{
		source:       source,
		groups:       prometheus.NewDesc(namespace+"_groups", "Number of groups.", nil, nil),
		users:        prometheus.NewDesc(namespace+"_users", "Number of users across all groups.", nil, nil),
		transactions: prometheus.NewDesc(namespace+"_transactions", "Number of transactions across all groups.", nil, nil),
	}
}

func (c *ledgerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.groups
	ch <- c.users
	ch <- c.transactions
}

func (c *ledgerCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.groups, prometheus.GaugeValue, float64(stats.Groups))
	ch <- prometheus.MustNewConstMetric(c.users, prometheus.GaugeValue, float64(stats.Users))
	ch <- prometheus.MustNewConstMetric(c.transactions, prometheus.GaugeValue, float64(stats.Transactions))
}
