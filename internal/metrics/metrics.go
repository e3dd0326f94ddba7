// Package metrics exposes catalog load counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"starmap/internal/catalog"
)

// LoaderMetrics counts decoded and malformed records. It implements
// catalog.Observer.
type LoaderMetrics struct {
	decoded   *prometheus.CounterVec
	malformed *prometheus.CounterVec
	duration  prometheus.Histogram
	entities  *prometheus.GaugeVec
}

// NewLoaderMetrics registers the loader collectors with reg.
func NewLoaderMetrics(reg prometheus.Registerer) *LoaderMetrics {
	m := &LoaderMetrics{
		decoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starmap_records_decoded_total",
				Help: "Total number of catalog records decoded, by entity kind",
			},
			[]string{"kind"},
		),
		malformed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starmap_records_malformed_total",
				Help: "Total number of catalog records skipped as malformed",
			},
			[]string{"reason"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "starmap_catalog_load_seconds",
				Help:    "Time taken to decode a catalog",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
			},
		),
		entities: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "starmap_catalog_entities",
				Help: "Entities held by the most recently loaded catalog",
			},
			[]string{"kind"},
		),
	}
	reg.MustRegister(m.decoded, m.malformed, m.duration, m.entities)
	return m
}

// Decoded counts a decoded entity by kind.
func (m *LoaderMetrics) Decoded(_ int, e catalog.Entity) {
	m.decoded.WithLabelValues(e.Kind().String()).Inc()
}

// Malformed counts a skipped record by failure reason.
func (m *LoaderMetrics) Malformed(_ int, err error) {
	m.malformed.WithLabelValues(catalog.KindOf(err).String()).Inc()
}

// ObserveLoad records the duration and final size of a finished load.
func (m *LoaderMetrics) ObserveLoad(cat *catalog.Catalog, took time.Duration) {
	m.duration.Observe(took.Seconds())
	m.entities.WithLabelValues(catalog.KindStar.String()).Set(float64(len(cat.Stars())))
	m.entities.WithLabelValues(catalog.KindPlanet.String()).Set(float64(len(cat.Planets())))
}
