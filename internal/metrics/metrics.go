// Package metrics expone los contadores de negocio del inventario en formato Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "item_manager"

// Metrics agrupa los collectors de la app sobre un registry propio,
// así los tests pueden crear instancias sin chocar con el registry global.
type Metrics struct {
	registry *prometheus.Registry

	itemsAdded         prometheus.Counter
	itemsRemoved       prometheus.Counter
	validationFailures *prometheus.CounterVec
	activeSessions     prometheus.Gauge
}

// New crea y registra los collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	metrics := &Metrics{
		registry: registry,
		itemsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_added_total",
			Help:      "Items added after passing validation.",
		}),
		itemsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_removed_total",
			Help:      "Delete requests that removed an existing item.",
		}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Rejected add attempts by validation code.",
		}, []string{"code"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Sessions currently held in memory.",
		}),
	}

	registry.MustRegister(
		metrics.itemsAdded,
		metrics.itemsRemoved,
		metrics.validationFailures,
		metrics.activeSessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return metrics
}

func (metrics *Metrics) ItemAdded() {
	metrics.itemsAdded.Inc()
}

func (metrics *Metrics) ItemRemoved() {
	metrics.itemsRemoved.Inc()
}

func (metrics *Metrics) ValidationFailed(code string) {
	metrics.validationFailures.WithLabelValues(code).Inc()
}

func (metrics *Metrics) SessionOpened() {
	metrics.activeSessions.Inc()
}

func (metrics *Metrics) SessionClosed() {
	metrics.activeSessions.Dec()
}

// Registry permite leer los valores desde tests.
func (metrics *Metrics) Registry() *prometheus.Registry {
	return metrics.registry
}

// Handler sirve /metrics.
func (metrics *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{Registry: metrics.registry})
}
