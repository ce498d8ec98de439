package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewCanBeCalledRepeatedly(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}

func TestRecordersUpdateCollectors(t *testing.T) {
	m := New()

	m.RecordCampaignTransition("closed")
	m.RecordCampaignTransition("closed")
	m.RecordSelection(2, 3)
	m.RecordApplicationSubmitted()
	m.SetHealthCheckStatus("database", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CampaignTransitions.WithLabelValues("closed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ApplicationsDecided.WithLabelValues("selected")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ApplicationsDecided.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ApplicationsSubmitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HealthCheckStatus.WithLabelValues("database")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/", "200", 0.1)
		m.RecordSelection(1, 1)
		m.RecordNotificationFailure()
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.RecordSignup("advertiser")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `campaignhub_signups_total{role="advertiser"} 1`)
}
