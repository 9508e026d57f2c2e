// Package metrics exposes the portal's Prometheus collectors on a private registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const namespace = "feedback_portal"

// Submission outcomes
const (
	ResultSuccess    = "success"
	ResultValidation = "validation"
	ResultConflict   = "conflict"
	ResultNotFound   = "not_found"
	ResultError      = "error"
)

// Metrics holds the collectors used by services and middleware
type Metrics struct {
	Registry *prometheus.Registry

	FeedbackSubmissions *prometheus.CounterVec
	LoginAttempts       *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
}

// New builds and registers the collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		FeedbackSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_submissions_total",
			Help:      "Feedback submission attempts by outcome.",
		}, []string{"result"}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by account kind and outcome.",
		}, []string{"kind", "result"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status class.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}

	reg.MustRegister(
		m.FeedbackSubmissions,
		m.LoginAttempts,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSubmission records one submission outcome. Safe on a nil receiver.
func (m *Metrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.FeedbackSubmissions.WithLabelValues(result).Inc()
}

// ObserveLogin records one login attempt. Safe on a nil receiver.
func (m *Metrics) ObserveLogin(kind string, ok bool) {
	if m == nil {
		return
	}
	result := "failure"
	if ok {
		result = "success"
	}
	m.LoginAttempts.WithLabelValues(kind, result).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler(lgr zerolog.Logger) http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{
		ErrorLog:      promLogger{lgr},
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// promLogger adapts zerolog to promhttp.Logger
type promLogger struct {
	lgr zerolog.Logger
}

func (l promLogger) Println(v ...interface{}) {
	l.lgr.Error().Interface("details", v).Msg("metrics handler error")
}
