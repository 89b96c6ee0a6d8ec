// Package metrics exposes Prometheus metrics for graph edits, coloring
// requests and HTTP traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Coloring request results
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultStale    = "stale"
	ResultRejected = "rejected"
)

// Collector holds all metrics on a private registry
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	NodesAdded   prometheus.Counter
	NodesRemoved prometheus.Counter
	EdgesAdded   *prometheus.CounterVec
	EdgesRemoved prometheus.Counter
	EditErrors   *prometheus.CounterVec

	ColoringRequests *prometheus.CounterVec
	ColoringDuration prometheus.Histogram

	GraphNodes prometheus.Gauge
	GraphEdges prometheus.Gauge
}

// NewCollector creates a collector with metrics under namespace
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		NodesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_added_total",
			Help:      "Total number of nodes added",
		}),
		NodesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_removed_total",
			Help:      "Total number of nodes removed",
		}),
		EdgesAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edges_added_total",
			Help:      "Total number of edges added, by origin (text, drag, random, import)",
		}, []string{"origin"}),
		EdgesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edges_removed_total",
			Help:      "Total number of edges removed, including cascades",
		}),
		EditErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edit_errors_total",
			Help:      "Rejected edit commands by kind",
		}, []string{"kind"}),
		ColoringRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coloring_requests_total",
			Help:      "Coloring requests by result",
		}, []string{"result"}),
		ColoringDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "coloring_request_duration_seconds",
			Help:      "Coloring request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		GraphNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Current number of nodes",
		}),
		GraphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Current number of edges",
		}),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.NodesAdded,
		c.NodesRemoved,
		c.EdgesAdded,
		c.EdgesRemoved,
		c.EditErrors,
		c.ColoringRequests,
		c.ColoringDuration,
		c.GraphNodes,
		c.GraphEdges,
		collectors.NewGoCollector(),
	)

	return c
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveColoring records one coloring request
func (c *Collector) ObserveColoring(result string, elapsed time.Duration) {
	c.ColoringRequests.WithLabelValues(result).Inc()
	if result == ResultSuccess || result == ResultFailure {
		c.ColoringDuration.Observe(elapsed.Seconds())
	}
}

// SetGraphSize records the current graph size
func (c *Collector) SetGraphSize(nodes, edges int) {
	c.GraphNodes.Set(float64(nodes))
	c.GraphEdges.Set(float64(edges))
}
