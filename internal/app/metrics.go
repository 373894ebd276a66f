package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the Prometheus collectors of the HTTP service
type Metrics struct {
	registry    *prometheus.Registry
	TablesBuilt prometheus.Counter
	CacheHits   prometheus.Counter
	Exports     *prometheus.CounterVec
	TablesSaved prometheus.Counter
	Throttled   prometheus.Counter
}

// NewMetrics registers all collectors on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		TablesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payday_tables_built_total",
			Help: "Year tables computed (cache misses).",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payday_table_cache_hits_total",
			Help: "Year tables served from the in-memory cache.",
		}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payday_exports_total",
			Help: "Downloads by export format.",
		}, []string{"format"}),
		TablesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payday_tables_saved_total",
			Help: "Year tables written to the tables directory.",
		}),
		Throttled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payday_http_throttled_total",
			Help: "Requests rejected by the rate limiter.",
		}),
	}
	m.registry.MustRegister(
		m.TablesBuilt,
		m.CacheHits,
		m.Exports,
		m.TablesSaved,
		m.Throttled,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
