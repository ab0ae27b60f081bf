package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/expenses-tracker/internal/domain"
	"github.com/iho/expenses-tracker/internal/usecase"
)

// Metrics holds all Prometheus metrics of the tracker. It implements usecase.Metrics.
type Metrics struct {
	// Entry metrics
	EntriesAdded   *prometheus.CounterVec
	EntriesRemoved prometheus.Counter
	EntriesTotal   prometheus.Gauge

	// State metrics
	StateLoads        *prometheus.CounterVec
	StateSaves        *prometheus.CounterVec
	StateSaveDuration prometheus.Histogram
	LastSaveTimestamp prometheus.Gauge
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EntriesAdded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_entries_added_total",
				Help: "Total number of entries added",
			},
			[]string{"entry_type"},
		),
		EntriesRemoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "tracker_entries_removed_total",
			Help: "Total number of entries removed",
		}),
		EntriesTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tracker_entries",
			Help: "Number of entries currently tracked",
		}),
		StateLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_state_loads_total",
				Help: "State loads by outcome",
			},
			[]string{"status"},
		),
		StateSaves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_state_saves_total",
				Help: "State saves by outcome",
			},
			[]string{"status"},
		),
		StateSaveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tracker_state_save_duration_seconds",
			Help:    "Duration of state saves",
			Buckets: prometheus.DefBuckets,
		}),
		LastSaveTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tracker_state_last_save_timestamp_seconds",
			Help: "Unix time of the last successful save",
		}),
	}
}

func (m *Metrics) EntryAdded(entryType domain.EntryType) {
	m.EntriesAdded.WithLabelValues(entryType.String()).Inc()
}

func (m *Metrics) EntryRemoved() {
	m.EntriesRemoved.Inc()
}

func (m *Metrics) EntriesTracked(count int) {
	m.EntriesTotal.Set(float64(count))
}

// StateLoaded counts a load as ok, empty (nothing saved yet) or error.
func (m *Metrics) StateLoaded(err error) {
	label := status(err)
	if errors.Is(err, usecase.ErrStateNotFound) {
		label = "empty"
	}
	m.StateLoads.WithLabelValues(label).Inc()
}

func (m *Metrics) StateSaved(duration time.Duration, err error) {
	m.StateSaves.WithLabelValues(status(err)).Inc()
	m.StateSaveDuration.Observe(duration.Seconds())
	if err == nil {
		m.LastSaveTimestamp.SetToCurrentTime()
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
