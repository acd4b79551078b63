package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service collectors. A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	completionRequests *prometheus.CounterVec
	completionDuration *prometheus.HistogramVec
	sessionsStarted    *prometheus.CounterVec
	answersScored      prometheus.Counter
	httpRequests       *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		completionRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_completion_requests_total",
			Help: "Completion calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		completionDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "interview_completion_duration_seconds",
			Help:    "Completion call latency.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		}, []string{"operation"}),
		sessionsStarted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_sessions_started_total",
			Help: "Sessions created, by question source (generated, resume, supplied).",
		}, []string{"source"}),
		answersScored: f.NewCounter(prometheus.CounterOpts{
			Name: "interview_answers_scored_total",
			Help: "Answers scored and persisted.",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) ObserveCompletion(operation string, err error, took time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.completionRequests.WithLabelValues(operation, outcome).Inc()
	m.completionDuration.WithLabelValues(operation).Observe(took.Seconds())
}

func (m *Metrics) SessionStarted(source string) {
	if m == nil {
		return
	}
	m.sessionsStarted.WithLabelValues(source).Inc()
}

func (m *Metrics) AnswerScored() {
	if m == nil {
		return
	}
	m.answersScored.Inc()
}

func (m *Metrics) HTTPRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
