package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventsDeadLettered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsDeadLettered,
			Help: HelpTextEventsDeadLettered,
		},
		[]string{LabelType},
	)
)

// Progression Metrics
var (
	XPAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameXPAwarded,
			Help: HelpTextXPAwarded,
		},
		[]string{LabelProfession},
	)

	LevelUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
		[]string{LabelProfession},
	)

	AbilityEffectsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAbilityEffects,
			Help: HelpTextAbilityEffects,
		},
		[]string{LabelTier},
	)

	Reconciliations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReconciliations,
			Help: HelpTextReconciliations,
		},
	)

	Deaths = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDeaths,
			Help: HelpTextDeaths,
		},
	)

	PenaltyXPLost = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePenaltyXPLost,
			Help: HelpTextPenaltyXPLost,
		},
		[]string{LabelProfession},
	)
)

// Persistence Metrics
var (
	ProfessionSaves = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameProfessionSaves,
			Help: HelpTextProfessionSaves,
		},
	)

	ProfessionSaveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameProfessionSaveErrs,
			Help: HelpTextProfessionSaveErrs,
		},
	)
)
