package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	ticksTotal    prometheus.Counter
	boardSize     prometheus.Gauge
	transitions   *prometheus.CounterVec
	picksResolved *prometheus.CounterVec
	logins        *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		ticksTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "jaxspot_feed_ticks_total",
				Help: "Total number of feed simulation ticks",
			},
		),
		boardSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "jaxspot_board_instruments",
				Help: "Number of instruments on the board",
			},
		),
		transitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jaxspot_stage_transitions_total",
				Help: "Total number of stage transitions by direction",
			},
			[]string{"direction"},
		),
		picksResolved: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jaxspot_picks_resolved_total",
				Help: "Total number of picks resolved by final status",
			},
			[]string{"status"},
		),
		logins: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jaxspot_logins_total",
				Help: "Total number of login attempts by outcome",
			},
			[]string{"outcome"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jaxspot_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jaxspot_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordTick records one feed tick over the given board size.
func (r *Recorder) RecordTick(instruments int) {
	r.ticksTotal.Inc()
	r.boardSize.Set(float64(instruments))
}

// RecordTransition records a stage transition.
func (r *Recorder) RecordTransition(direction string) {
	r.transitions.WithLabelValues(direction).Inc()
}

// RecordPickResolved records a pick reaching a terminal status.
func (r *Recorder) RecordPickResolved(status string) {
	r.picksResolved.WithLabelValues(status).Inc()
}

// RecordLogin records a login attempt outcome.
func (r *Recorder) RecordLogin(outcome string) {
	r.logins.WithLabelValues(outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
