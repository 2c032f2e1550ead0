package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы регистрации.
const (
	OutcomeCreated          = "created"
	OutcomeValidationFailed = "validation_failed"
	OutcomeConflict         = "conflict"
	OutcomeError            = "error"
	OutcomeOK               = "ok"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry      *prometheus.Registry
	Registrations *prometheus.CounterVec
	UserListings  *prometheus.CounterVec
	HTTPRequests  *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on a dedicated registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "userregistry_registrations_total",
			Help: "Registration attempts by outcome",
		}, []string{"outcome"}),
		UserListings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "userregistry_user_listings_total",
			Help: "User listing requests by outcome",
		}, []string{"outcome"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "userregistry_http_requests_total",
			Help: "HTTP requests by method and status code",
		}, []string{"method", "status"}),
	}
}

// ObserveRegistration increments the registration counter for outcome
func (m *Metrics) ObserveRegistration(outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(outcome).Inc()
}

// ObserveListing increments the listing counter for outcome
func (m *Metrics) ObserveListing(outcome string) {
	if m == nil {
		return
	}
	m.UserListings.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
