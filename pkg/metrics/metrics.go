package metrics

import (
	"net/http"

	"github.com/kage-cloud/routemap/pkg/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const MetricsKey = "Metrics"

const namespace = "routemap"

type Metrics struct {
	Registry *prometheus.Registry

	Runs       *prometheus.CounterVec
	Documents  prometheus.Counter
	Warnings   prometheus.Counter
	GraphNodes *prometheus.CounterVec
	GraphSize  prometheus.Histogram
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visualize_runs_total",
			Help:      "Visualize pipeline runs partitioned by outcome.",
		}, []string{"outcome"}),
		Documents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_parsed_total",
			Help:      "Configuration documents parsed successfully.",
		}),
		Warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_warnings_total",
			Help:      "Dangling references reported in built graphs.",
		}),
		GraphNodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_nodes_total",
			Help:      "Nodes emitted in built graphs partitioned by node type.",
		}, []string{"type"}),
		GraphSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_size_nodes",
			Help:      "Number of nodes per built graph.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}

	m.Registry.MustRegister(m.Runs, m.Documents, m.Warnings, m.GraphNodes, m.GraphSize)
	return m
}

func (m *Metrics) ObserveFailure(reason string) {
	m.Runs.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveGraph(docs int, result *model.GraphResult) {
	m.Runs.WithLabelValues("ok").Inc()
	m.Documents.Add(float64(docs))
	m.Warnings.Add(float64(len(result.Warnings)))
	m.GraphSize.Observe(float64(len(result.Nodes)))
	for _, n := range result.Nodes {
		m.GraphNodes.WithLabelValues(string(n.Type)).Inc()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
