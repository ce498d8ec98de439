package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the API. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	CampaignTransitions   *prometheus.CounterVec
	ApplicationsSubmitted prometheus.Counter
	ApplicationsDecided   *prometheus.CounterVec
	ProfilesCreated       *prometheus.CounterVec
	Signups               *prometheus.CounterVec
	NotificationFailures  prometheus.Counter
	HealthCheckStatus     *prometheus.GaugeVec
}

// New registers every collector on its own registry so repeated construction
// in tests never collides with the global one.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaignhub_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campaignhub_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "campaignhub_http_requests_in_flight",
				Help: "Current number of HTTP requests being processed",
			},
			[]string{"method"},
		),

		CampaignTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaignhub_campaign_transitions_total",
				Help: "Campaign status changes by target status",
			},
			[]string{"status"},
		),
		ApplicationsSubmitted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "campaignhub_applications_submitted_total",
				Help: "Applications accepted for recruiting campaigns",
			},
		),
		ApplicationsDecided: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaignhub_applications_decided_total",
				Help: "Applications moved out of pending by bulk selection",
			},
			[]string{"status"},
		),
		ProfilesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaignhub_profiles_created_total",
				Help: "Profiles created by role",
			},
			[]string{"role"},
		),
		Signups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaignhub_signups_total",
				Help: "Accounts created by role",
			},
			[]string{"role"},
		),
		NotificationFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "campaignhub_notification_failures_total",
				Help: "Selection emails that could not be delivered",
			},
		),
		HealthCheckStatus: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "campaignhub_health_check_status",
				Help: "Health check status (1 = healthy, 0 = unhealthy)",
			},
			[]string{"check_type"},
		),
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) RecordHTTPRequest(method, route, statusCode string, duration float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}

func (m *Metrics) IncRequestsInFlight(method string) {
	if m == nil {
		return
	}
	m.HTTPRequestsInFlight.WithLabelValues(method).Inc()
}

func (m *Metrics) DecRequestsInFlight(method string) {
	if m == nil {
		return
	}
	m.HTTPRequestsInFlight.WithLabelValues(method).Dec()
}

func (m *Metrics) RecordCampaignTransition(status string) {
	if m == nil {
		return
	}
	m.CampaignTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordApplicationSubmitted() {
	if m == nil {
		return
	}
	m.ApplicationsSubmitted.Inc()
}

func (m *Metrics) RecordSelection(selected, rejected int) {
	if m == nil {
		return
	}
	m.ApplicationsDecided.WithLabelValues("selected").Add(float64(selected))
	m.ApplicationsDecided.WithLabelValues("rejected").Add(float64(rejected))
}

func (m *Metrics) RecordProfileCreated(role string) {
	if m == nil {
		return
	}
	m.ProfilesCreated.WithLabelValues(role).Inc()
}

func (m *Metrics) RecordSignup(role string) {
	if m == nil {
		return
	}
	m.Signups.WithLabelValues(role).Inc()
}

func (m *Metrics) RecordNotificationFailure() {
	if m == nil {
		return
	}
	m.NotificationFailures.Inc()
}

// SetHealthCheckStatus sets the health check status
func (m *Metrics) SetHealthCheckStatus(checkType string, healthy bool) {
	if m == nil {
		return
	}
	status := 0.0
	if healthy {
		status = 1.0
	}
	m.HealthCheckStatus.WithLabelValues(checkType).Set(status)
}
