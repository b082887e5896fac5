// Package metrics expone contadores Prometheus de descargos e importaciones WB.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Atelier-api/internal/application/production"
	"github.com/jhoicas/Atelier-api/internal/application/wb"
)

var (
	_ production.WriteOffObserver = (*Metrics)(nil)
	_ wb.ImportObserver           = (*Metrics)(nil)
)

// Metrics registro propio con los colectores de la aplicación.
type Metrics struct {
	registry   *prometheus.Registry
	writeOffs  *prometheus.CounterVec
	duration   prometheus.Histogram
	importRows *prometheus.CounterVec
}

// New registra los colectores (incluidos los de proceso y runtime de Go).
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		writeOffs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atelier_writeoffs_total",
			Help: "Intentos de descargo por ficha técnica, por resultado.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "atelier_writeoff_duration_seconds",
			Help:    "Duración de un intento de descargo.",
			Buckets: prometheus.DefBuckets,
		}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atelier_wb_import_rows_total",
			Help: "Filas importadas de reportes de stock WB, por estado.",
		}, []string{"status"}),
	}
	m.registry.MustRegister(
		m.writeOffs,
		m.duration,
		m.importRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveWriteOff cuenta el intento y registra su duración.
func (m *Metrics) ObserveWriteOff(outcome string, elapsed time.Duration) {
	m.writeOffs.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// ObserveImportRow cuenta una fila importada.
func (m *Metrics) ObserveImportRow(status string) {
	m.importRows.WithLabelValues(status).Inc()
}

// Registry para exponer o inspeccionar en tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler handler HTTP de /metrics sobre el registro propio.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
