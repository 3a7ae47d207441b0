package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/octofit/dashboard/internal/loader"
	"github.com/octofit/dashboard/internal/models"
	"github.com/octofit/dashboard/internal/normalize"
)

// Load outcomes used as the outcome label
const (
	OutcomeSuccess   = "success"
	OutcomeEmpty     = "empty"
	OutcomeDegraded  = "degraded"
	OutcomeError     = "error"
	OutcomeDiscarded = "discarded"
)

var (
	loadsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "octofit_dashboard",
		Subsystem: "loader",
		Name:      "loads_total",
		Help:      "Number of finished resource loads grouped by resource and outcome.",
	}, []string{"resource", "outcome"})

	loadDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "octofit_dashboard",
		Subsystem: "loader",
		Name:      "load_duration_seconds",
		Help:      "Time from request start to terminal state per resource.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"resource"})

	recordsGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "octofit_dashboard",
		Subsystem: "loader",
		Name:      "last_record_count",
		Help:      "Record count of the most recent successful load per resource.",
	}, []string{"resource"})

	upstreamGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "octofit_dashboard",
		Subsystem: "upstream",
		Name:      "up",
		Help:      "1 when the fitness API root answered the last probe, 0 otherwise.",
	})
)

func init() {
	prometheus.MustRegister(loadsCounter, loadDuration, recordsGauge, upstreamGauge)
}

// Outcome classifies a terminal event; non-terminal events return ""
func Outcome(ev loader.Event) string {
	switch {
	case ev.Discarded:
		return OutcomeDiscarded
	case ev.Phase == models.PhaseError:
		return OutcomeError
	case ev.Phase != models.PhaseSuccess:
		return ""
	case ev.Shape == normalize.ShapeUnrecognized:
		return OutcomeDegraded
	case ev.Records == 0:
		return OutcomeEmpty
	default:
		return OutcomeSuccess
	}
}

// MetricsObserver is a loader observer exporting Prometheus metrics
type MetricsObserver struct{}

// NewMetricsObserver creates a metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// Observe implements loader.Observer
func (MetricsObserver) Observe(_ context.Context, ev loader.Event) {
	outcome := Outcome(ev)
	if outcome == "" {
		return
	}

	loadsCounter.WithLabelValues(ev.Resource, outcome).Inc()
	if ev.Duration > 0 {
		loadDuration.WithLabelValues(ev.Resource).Observe(ev.Duration.Seconds())
	}
	if outcome != OutcomeDiscarded && ev.Phase == models.PhaseSuccess {
		recordsGauge.WithLabelValues(ev.Resource).Set(float64(ev.Records))
	}
}

// RecordUpstream updates the upstream availability gauge.
func RecordUpstream(up bool) {
	if up {
		upstreamGauge.Set(1)
		return
	}
	upstreamGauge.Set(0)
}
