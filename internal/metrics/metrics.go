// Package metrics exposes prometheus counters for engine events.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Review outcomes.
const (
	OutcomeInitialized = "initialized"
	OutcomeRecall      = "recall"
	OutcomeLapse       = "lapse"
)

type Metrics struct {
	reviews              *prometheus.CounterVec
	gradingEvents        prometheus.Counter
	adaptiveAssignments  prometheus.Counter
	practiceSessions     prometheus.Counter
	transitionRejections prometheus.Counter
	requests             *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reviews: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adaptlearn_reviews_total",
				Help: "Total number of spaced repetition reviews by outcome",
			},
			[]string{"outcome"},
		),
		gradingEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adaptlearn_grading_events_total",
			Help: "Total number of student assignments graded",
		}),
		adaptiveAssignments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adaptlearn_adaptive_assignments_total",
			Help: "Total number of adaptive follow-up assignments created",
		}),
		practiceSessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adaptlearn_practice_sessions_total",
			Help: "Total number of practice sessions generated",
		}),
		transitionRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adaptlearn_transition_rejections_total",
			Help: "Total number of student assignment transitions rejected for an unexpected status",
		}),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adaptlearn_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "adaptlearn_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2},
			},
			[]string{"method", "path"},
		),
	}
	reg.MustRegister(
		m.reviews,
		m.gradingEvents,
		m.adaptiveAssignments,
		m.practiceSessions,
		m.transitionRejections,
		m.requests,
		m.requestDuration,
	)
	return m
}

func (m *Metrics) ReviewRecorded(outcome string) {
	if m == nil {
		return
	}
	m.reviews.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AssignmentGraded() {
	if m == nil {
		return
	}
	m.gradingEvents.Inc()
}

func (m *Metrics) AdaptiveAssignmentCreated() {
	if m == nil {
		return
	}
	m.adaptiveAssignments.Inc()
}

func (m *Metrics) PracticeSessionGenerated() {
	if m == nil {
		return
	}
	m.practiceSessions.Inc()
}

func (m *Metrics) TransitionRejected() {
	if m == nil {
		return
	}
	m.transitionRejections.Inc()
}

// Middleware counts and times every request served by next.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		m.requests.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps streaming responses working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
