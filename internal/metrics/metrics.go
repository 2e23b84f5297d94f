package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
)

var (
	Registry = prometheus.NewRegistry()

	OperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bookshelf_operations_total",
		Help: "Total number of catalog operations",
	}, []string{"op", "status"})

	OperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookshelf_operation_duration_seconds",
		Help:    "Duration of catalog operations in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	Books = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bookshelf_books",
		Help: "Books in the library by read state",
	}, []string{"state"})

	ImportRecordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bookshelf_import_records_total",
		Help: "Records seen by the importer",
	}, []string{"status"})
)

func init() {
	Registry.MustRegister(OperationsTotal, OperationDuration, Books, ImportRecordsTotal)
}

// ObserveLibrary updates the book gauges from st.
func ObserveLibrary(st catalog.Stats) {
	Books.WithLabelValues("read").Set(float64(st.Read))
	Books.WithLabelValues("unread").Set(float64(st.Unread()))
}

// Flush writes the registry to the configured textfile and pushes it to the
// pushgateway. Either target is skipped when unset.
func Flush(cfg config.MetricsConfig) error {
	var errs []error
	if cfg.Textfile != "" {
		if err := prometheus.WriteToTextfile(cfg.Textfile, Registry); err != nil {
			errs = append(errs, fmt.Errorf("write textfile: %w", err))
		}
	}
	if cfg.PushgatewayURL != "" {
		job := cfg.Job
		if job == "" {
			job = "bookshelf"
		}
		if err := push.New(cfg.PushgatewayURL, job).Gatherer(Registry).Push(); err != nil {
			errs = append(errs, fmt.Errorf("push metrics: %w", err))
		}
	}
	return errors.Join(errs...)
}
