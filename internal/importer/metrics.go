package importer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	rowCreated = "created"
	rowUpdated = "updated"
	rowSkipped = "skipped"
	rowFailed  = "failed"
)

// Metrics are import Prometheus metrics.
type Metrics struct {
	tasks          *prometheus.CounterVec
	rows           *prometheus.CounterVec
	imagesUploaded prometheus.Counter
	inFlight       prometheus.Gauge
}

// NewMetrics registers import metrics in reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		tasks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_import_tasks_total",
			Help: "Number of finished import tasks by final status.",
		}, []string{"status"}),
		rows: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_import_rows_total",
			Help: "Number of processed spreadsheet rows by outcome.",
		}, []string{"outcome"}),
		imagesUploaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "catalog_import_images_uploaded_total",
			Help: "Number of product images uploaded to object storage.",
		}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_import_tasks_in_flight",
			Help: "Number of import tasks being processed.",
		}),
	}
}
