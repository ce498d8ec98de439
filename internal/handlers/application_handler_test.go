package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignhub/internal/models"
	"campaignhub/internal/services"
)

var influencer = models.Caller{UserID: "inf-1", Email: "inf@example.com", Role: models.RoleInfluencer}

type stubApplications struct {
	submitted models.CreateApplicationRequest
	selected  []int64
	status    models.ApplicationStatus
	err       error
}

func (s *stubApplications) Submit(_ context.Context, _ models.Caller, req models.CreateApplicationRequest) (*models.CreateApplicationResponse, error) {
	s.submitted = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.CreateApplicationResponse{ApplicationID: 9, Status: models.ApplicationStatusPending}, nil
}

func (s *stubApplications) ListMine(_ context.Context, _ models.Caller, status models.ApplicationStatus) (*models.ApplicationListResponse, error) {
	s.status = status
	return &models.ApplicationListResponse{Applications: []models.Application{}}, s.err
}

func (s *stubApplications) ListForCampaign(context.Context, models.Caller, int64) (*models.CampaignApplicationListResponse, error) {
	return &models.CampaignApplicationListResponse{Applications: []models.ApplicationDetail{}}, s.err
}

func (s *stubApplications) Select(_ context.Context, _ models.Caller, campaignID int64, ids []int64) (*models.SelectionResponse, error) {
	s.selected = ids
	if s.err != nil {
		return nil, s.err
	}
	return &models.SelectionResponse{Success: true, SelectionResult: models.SelectionResult{
		CampaignID: campaignID, Selected: ids, Rejected: 2,
	}}, nil
}

func (s *stubApplications) Status(context.Context, models.Caller, int64) (*models.ApplicationStatusResponse, error) {
	return &models.ApplicationStatusResponse{HasApplied: false}, s.err
}

func applicationRouter(svc ApplicationService, caller models.Caller) http.Handler {
	h := NewApplicationHandler(svc, NewValidator(), log.NewNopLogger())
	r := chi.NewRouter()
	r.Use(as(caller))
	r.Post("/applications", h.Submit)
	r.Get("/applications/me", h.ListMine)
	r.Get("/campaigns/{id}/applications", h.ListForCampaign)
	r.Post("/campaigns/{id}/select", h.Select)
	r.Get("/campaigns/{id}/application-status", h.Status)
	return r
}

func TestSubmitApplicationHandler(t *testing.T) {
	svc := &stubApplications{}
	body := `{"campaignId":3,"motivation":"I love brunch","visitDate":"2025-01-05"}`
	w := httptest.NewRecorder()
	applicationRouter(svc, influencer).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"applicationId":9,"status":"pending"}`, string(decode(t, w).Data))
	assert.Equal(t, int64(3), svc.submitted.CampaignID)
}

func TestSubmitDuplicateApplication(t *testing.T) {
	svc := &stubApplications{err: services.ConflictError(services.CodeDuplicateApplication, "You have already applied to this campaign")}
	body := `{"campaignId":3,"motivation":"again","visitDate":"2025-01-05"}`
	w := httptest.NewRecorder()
	applicationRouter(svc, influencer).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(body)))

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, services.CodeDuplicateApplication, decode(t, w).Error.Code)
}

func TestSelectHandler(t *testing.T) {
	svc := &stubApplications{}
	w := httptest.NewRecorder()
	applicationRouter(svc, advertiser).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/campaigns/5/select",
		strings.NewReader(`{"selectedApplicationIds":[11,12]}`)))

	require.Equal(t, http.StatusOK, w.Code)
	var data map[string]any
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, true, data["success"])
	assert.Equal(t, float64(5), data["campaignId"])
	assert.Equal(t, float64(2), data["rejectedCount"])
	assert.Equal(t, []int64{11, 12}, svc.selected)
}

func TestSelectHandlerRequiresIDs(t *testing.T) {
	w := httptest.NewRecorder()
	applicationRouter(&stubApplications{}, advertiser).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/campaigns/5/select",
		strings.NewReader(`{"selectedApplicationIds":[]}`)))

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, services.CodeApplicationValidationError, env.Error.Code)
	assert.Equal(t, "min=1", env.Error.Details["selectedApplicationIds"])
}

func TestListMyApplicationsStatusQuery(t *testing.T) {
	svc := &stubApplications{}
	w := httptest.NewRecorder()
	applicationRouter(svc, influencer).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/applications/me?status=selected", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ApplicationStatusSelected, svc.status)
}

func TestApplicationStatusHandler(t *testing.T) {
	w := httptest.NewRecorder()
	applicationRouter(&stubApplications{}, influencer).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/campaigns/5/application-status", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"hasApplied":false}`, string(decode(t, w).Data))
}
