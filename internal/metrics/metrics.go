package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// Registry holds every client metric. The CLI never serves /metrics; the debug
// screen reads the registry directly.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// Backend Metrics
var (
	BackendRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameBackendRequestsTotal,
			Help:      HelpTextBackendRequestsTotal,
		},
		[]string{LabelComponent, LabelOperation, LabelStatus},
	)

	BackendRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameBackendRequestDuration,
			Help:      HelpTextBackendRequestDuration,
			Buckets:   BackendLatencyBuckets,
		},
		[]string{LabelComponent, LabelOperation},
	)

	BackendInFlight = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameBackendInFlight,
			Help:      HelpTextBackendInFlight,
		},
	)

	HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      HelpTextHTTPRequestsTotal,
		},
		[]string{LabelHost, LabelMethod, LabelStatus},
	)

	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      HelpTextHTTPRequestDuration,
			Buckets:   BackendLatencyBuckets,
		},
		[]string{LabelHost, LabelMethod},
	)
)

// Event Metrics
var (
	EventsPublished = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventsPublished,
			Help:      HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventHandlerErrors,
			Help:      HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	VisitsLogged = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameVisitsLogged,
			Help:      HelpTextVisitsLogged,
		},
	)

	BathingSeconds = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameBathingSeconds,
			Help:      HelpTextBathingSeconds,
		},
	)

	QuestsCompleted = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameQuestsCompleted,
			Help:      HelpTextQuestsCompleted,
		},
	)

	AccessoriesGranted = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameAccessoriesGranted,
			Help:      HelpTextAccessoriesGranted,
		},
		[]string{LabelGranted},
	)

	AccessoryEquips = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameAccessoryEquips,
			Help:      HelpTextAccessoryEquips,
		},
		[]string{LabelAction},
	)

	CompanionLevelUps = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCompanionLevelUps,
			Help:      HelpTextCompanionLevelUps,
		},
	)
)

// ObserveBackend records one backend call. Use it with defer:
//
//	defer metrics.ObserveBackend(metrics.ComponentDatabase, "get_companion", time.Now(), &err)
func ObserveBackend(component, operation string, start time.Time, errp *error) {
	BackendRequestDuration.WithLabelValues(component, operation).Observe(time.Since(start).Seconds())
	BackendRequestsTotal.WithLabelValues(component, operation, statusOf(errp)).Inc()
}

// TrackInFlight increments the in-flight gauge and returns the matching decrement:
//
//	defer metrics.TrackInFlight()()
func TrackInFlight() func() {
	BackendInFlight.Inc()
	return BackendInFlight.Dec
}

func statusOf(errp *error) string {
	if errp == nil || *errp == nil {
		return StatusOK
	}
	// Expected outcomes the callers branch on, not backend failures
	switch {
	case errors.Is(*errp, domain.ErrCompanionNotFound), errors.Is(*errp, domain.ErrQuestNotFound):
		return StatusNotFound
	case errors.Is(*errp, domain.ErrAlreadyOwned), errors.Is(*errp, domain.ErrAlreadyCompleted):
		return StatusConflict
	}
	if errors.Is(*errp, context.DeadlineExceeded) {
		return StatusTimeout
	}
	var target interface{ Timeout() bool }
	if errors.As(*errp, &target) && target.Timeout() {
		return StatusTimeout
	}
	return StatusError
}
